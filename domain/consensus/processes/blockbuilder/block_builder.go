package blockbuilder

import (
	"sort"

	"github.com/argusdag/argusd/domain/consensus/model"
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/ruleerrors"
	"github.com/argusdag/argusd/domain/consensus/utils/blockheader"
	"github.com/argusdag/argusd/infrastructure/logger"
	"github.com/pkg/errors"
)

type blockBuilder struct {
	blockStore      model.BlockStore
	ghostdagManager model.GHOSTDAGManager
}

// New instantiates a new BlockBuilder
func New(blockStore model.BlockStore, ghostdagManager model.GHOSTDAGManager) model.BlockBuilder {
	return &blockBuilder{
		blockStore:      blockStore,
		ghostdagManager: ghostdagManager,
	}
}

// BuildBlockHeader builds a header over the parentCount best tips of the DAG.
// The tips are ranked the same way a selected parent is chosen.
func (bb *blockBuilder) BuildBlockHeader(parentCount int, timestamp int64) (externalapi.BlockHeader, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "BuildBlockHeader")
	defer onEnd()

	if parentCount < 1 {
		return nil, errors.Errorf("a block needs at least one parent, got a parent count of %d", parentCount)
	}
	if bb.blockStore.Genesis() == nil {
		return nil, errors.Wrapf(ruleerrors.ErrNotFound, "cannot build a block over a DAG without a genesis")
	}

	parents, err := bb.bestTips(parentCount)
	if err != nil {
		return nil, err
	}
	return blockheader.NewImmutableBlockHeader(parents, timestamp), nil
}

func (bb *blockBuilder) bestTips(maxTips int) ([]*externalapi.DomainHash, error) {
	tips := bb.blockStore.Tips()
	tipsGHOSTDAGData := make(map[externalapi.DomainHash]*externalapi.BlockGHOSTDAGData, len(tips))
	for _, tip := range tips {
		tipGHOSTDAGData, err := bb.blockStore.GHOSTDAGData(tip)
		if err != nil {
			return nil, err
		}
		tipsGHOSTDAGData[*tip] = tipGHOSTDAGData
	}

	sort.Slice(tips, func(i, j int) bool {
		return bb.ghostdagManager.Less(tips[j], tipsGHOSTDAGData[*tips[j]], tips[i], tipsGHOSTDAGData[*tips[i]])
	})

	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}
	return tips, nil
}
