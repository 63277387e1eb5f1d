package model

import "github.com/argusdag/argusd/domain/consensus/model/externalapi"

// BlockStore represents the arena of every block the DAG knows about,
// along with their relations and the current tips.
// It is NOT safe for concurrent access.
type BlockStore interface {
	Has(blockHash *externalapi.DomainHash) bool
	Header(blockHash *externalapi.DomainHash) (externalapi.BlockHeader, error)
	GHOSTDAGData(blockHash *externalapi.DomainHash) (*externalapi.BlockGHOSTDAGData, error)
	Children(blockHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error)
	Record(blockHash *externalapi.DomainHash) (*externalapi.BlockRecord, error)
	HashAt(insertionIndex uint64) (*externalapi.DomainHash, error)
	Insert(blockHash *externalapi.DomainHash, header externalapi.BlockHeader,
		ghostdagData *externalapi.BlockGHOSTDAGData) (*externalapi.BlockRecord, error)

	Tips() []*externalapi.DomainHash
	Genesis() *externalapi.DomainHash
	Count() uint64
}
