package model

import "github.com/argusdag/argusd/domain/consensus/model/externalapi"

// GHOSTDAGManager resolves and manages GHOSTDAG block data
type GHOSTDAGManager interface {
	GHOSTDAG(blockParents []*externalapi.DomainHash) (*externalapi.BlockGHOSTDAGData, error)
	GenesisGHOSTDAGData() *externalapi.BlockGHOSTDAGData
	ChooseSelectedParent(blockHashes ...*externalapi.DomainHash) (*externalapi.DomainHash, error)
	Less(blockHashA *externalapi.DomainHash, ghostdagDataA *externalapi.BlockGHOSTDAGData,
		blockHashB *externalapi.DomainHash, ghostdagDataB *externalapi.BlockGHOSTDAGData) bool
	K() externalapi.KType
}
