package model

import "github.com/argusdag/argusd/domain/consensus/model/externalapi"

// DAGTraversalManager exposes methods for traversing blocks
// in the DAG according to their GHOSTDAG ordering
type DAGTraversalManager interface {
	// OrderIterator iterates over the blue ordering of highHash, after lowHash (exclusive).
	// A nil lowHash starts at the genesis.
	OrderIterator(lowHash *externalapi.DomainHash, highHash *externalapi.DomainHash) (externalapi.BlockIterator, error)
	// VirtualOrderIterator is like OrderIterator over a block that isn't in the store,
	// which is left out of the iteration.
	VirtualOrderIterator(lowHash *externalapi.DomainHash,
		virtualGHOSTDAGData *externalapi.BlockGHOSTDAGData) (externalapi.BlockIterator, error)
	ChainBlockAtBlueScore(highGHOSTDAGData *externalapi.BlockGHOSTDAGData, blueScore uint64) (*externalapi.DomainHash, error)
	IsBlueInView(blockHash *externalapi.DomainHash, viewGHOSTDAGData *externalapi.BlockGHOSTDAGData) (bool, error)
	IsInSelectedChain(blockHash *externalapi.DomainHash, viewGHOSTDAGData *externalapi.BlockGHOSTDAGData) (bool, error)
}
