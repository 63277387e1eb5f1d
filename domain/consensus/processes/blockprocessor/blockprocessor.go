package blockprocessor

import (
	"github.com/argusdag/argusd/domain/consensus/model"
)

// blockProcessor is responsible for processing incoming block headers
// and inserting them into the DAG
type blockProcessor struct {
	blockStore         model.BlockStore
	blockHeaderStore   model.BlockHeaderStore
	dagTopologyManager model.DAGTopologyManager
	ghostdagManager    model.GHOSTDAGManager
}

// New instantiates a new BlockProcessor.
// blockHeaderStore may be nil, in which case nothing is persisted.
func New(
	blockStore model.BlockStore,
	blockHeaderStore model.BlockHeaderStore,
	dagTopologyManager model.DAGTopologyManager,
	ghostdagManager model.GHOSTDAGManager) model.BlockProcessor {

	return &blockProcessor{
		blockStore:         blockStore,
		blockHeaderStore:   blockHeaderStore,
		dagTopologyManager: dagTopologyManager,
		ghostdagManager:    ghostdagManager,
	}
}
