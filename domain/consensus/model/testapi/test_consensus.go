package testapi

import (
	"github.com/argusdag/argusd/domain/consensus/model"
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/dagconfig"
)

// TestConsensus wraps the Consensus interface with some methods that are needed by tests only
type TestConsensus interface {
	externalapi.Consensus

	DAGParams() *dagconfig.Params

	// AddBlock builds a block over the given parents with a timestamp that's
	// unique within this consensus, and adds it to the DAG.
	// Returns the hash of the added block
	AddBlock(parentHashes ...*externalapi.DomainHash) (*externalapi.DomainHash, *externalapi.BlockInsertionResult, error)

	BlockStore() model.BlockStore
	BlockHeaderStore() model.BlockHeaderStore

	BlockProcessor() model.BlockProcessor
	DAGTopologyManager() model.DAGTopologyManager
	DAGTraversalManager() model.DAGTraversalManager
	GHOSTDAGManager() model.GHOSTDAGManager
}
