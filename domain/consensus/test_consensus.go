package consensus

import (
	"github.com/argusdag/argusd/domain/consensus/model"
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/model/testapi"
	"github.com/argusdag/argusd/domain/consensus/utils/blockheader"
	"github.com/argusdag/argusd/domain/dagconfig"
	"github.com/argusdag/argusd/infrastructure/db/database"
)

type testConsensus struct {
	*consensus
	dagParams     *dagconfig.Params
	nextTimestamp int64
}

// NewTestConsensus instantiates a consensus and adds the configured genesis to it,
// unless db already holds one
func (f *factory) NewTestConsensus(config *Config, db database.Database) (testapi.TestConsensus, error) {
	c, err := f.newConsensus(config, db)
	if err != nil {
		return nil, err
	}
	if c.blockStore.Genesis() == nil {
		_, err = c.Init(config.GenesisHeader)
		if err != nil {
			return nil, err
		}
	}

	params := config.Params
	return &testConsensus{
		consensus:     c,
		dagParams:     &params,
		nextTimestamp: config.GenesisHeader.Timestamp() + int64(c.blockStore.Count()),
	}, nil
}

func (tc *testConsensus) DAGParams() *dagconfig.Params {
	return tc.dagParams
}

func (tc *testConsensus) AddBlock(parentHashes ...*externalapi.DomainHash) (
	*externalapi.DomainHash, *externalapi.BlockInsertionResult, error) {

	header := blockheader.NewImmutableBlockHeader(parentHashes, tc.nextTimestamp)
	tc.nextTimestamp++

	result, err := tc.ValidateAndInsertBlock(header)
	if err != nil {
		return nil, nil, err
	}
	return result.Record.Hash, result, nil
}

func (tc *testConsensus) BlockStore() model.BlockStore {
	return tc.blockStore
}

func (tc *testConsensus) BlockHeaderStore() model.BlockHeaderStore {
	return tc.blockHeaderStore
}

func (tc *testConsensus) BlockProcessor() model.BlockProcessor {
	return tc.blockProcessor
}

func (tc *testConsensus) DAGTopologyManager() model.DAGTopologyManager {
	return tc.dagTopologyManager
}

func (tc *testConsensus) DAGTraversalManager() model.DAGTraversalManager {
	return tc.dagTraversalManager
}

func (tc *testConsensus) GHOSTDAGManager() model.GHOSTDAGManager {
	return tc.ghostdagManager
}
