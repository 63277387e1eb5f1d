package consensus

import (
	"sync"

	"github.com/argusdag/argusd/domain/consensus/datastructures/blockheaderstore"
	"github.com/argusdag/argusd/domain/consensus/datastructures/blockstore"
	"github.com/argusdag/argusd/domain/consensus/model"
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/model/testapi"
	"github.com/argusdag/argusd/domain/consensus/processes/blockbuilder"
	"github.com/argusdag/argusd/domain/consensus/processes/blockprocessor"
	"github.com/argusdag/argusd/domain/consensus/processes/dagtopologymanager"
	"github.com/argusdag/argusd/domain/consensus/processes/dagtraversalmanager"
	"github.com/argusdag/argusd/domain/consensus/processes/ghostdagmanager"
	"github.com/argusdag/argusd/domain/consensus/ruleerrors"
	"github.com/argusdag/argusd/infrastructure/db/database"
	"github.com/argusdag/argusd/infrastructure/logger"
	"github.com/pkg/errors"
)

// Factory instantiates new Consensuses
type Factory interface {
	NewConsensus(config *Config, db database.Database) (externalapi.Consensus, error)
	NewTestConsensus(config *Config, db database.Database) (testapi.TestConsensus, error)
}

type factory struct{}

// NewFactory creates a new Consensus factory
func NewFactory() Factory {
	return &factory{}
}

// NewConsensus instantiates a new Consensus.
// If db is not nil, every accepted header is persisted to it, and the headers
// it already holds are replayed before the consensus is returned.
// The returned consensus still needs Init when db held no genesis.
func (f *factory) NewConsensus(config *Config, db database.Database) (externalapi.Consensus, error) {
	return f.newConsensus(config, db)
}

func (f *factory) newConsensus(config *Config, db database.Database) (*consensus, error) {
	if config.K > externalapi.MaxK {
		return nil, errors.Wrapf(ruleerrors.ErrInvalidK, "K %d is above the maximum of %d", config.K, externalapi.MaxK)
	}

	ancestryCacheSize := config.AncestryCacheSize
	if ancestryCacheSize == 0 {
		ancestryCacheSize = dagtopologymanager.DefaultAncestryCacheSize
	}

	// Data Structures
	blockStore := blockstore.New()
	var blockHeaderStore model.BlockHeaderStore
	if db != nil {
		var err error
		blockHeaderStore, err = newBlockHeaderStore(db, config.K)
		if err != nil {
			return nil, err
		}
	}

	// Processes
	dagTopologyManager, err := dagtopologymanager.New(
		blockStore,
		ancestryCacheSize)
	if err != nil {
		return nil, err
	}
	ghostdagManager := ghostdagmanager.New(
		blockStore,
		dagTopologyManager,
		config.K)
	dagTraversalManager := dagtraversalmanager.New(
		blockStore,
		dagTopologyManager)
	blockBuilder := blockbuilder.New(
		blockStore,
		ghostdagManager)

	if blockHeaderStore != nil {
		// Replayed headers are already stored, so they go through a
		// processor that doesn't persist
		replayProcessor := blockprocessor.New(
			blockStore,
			nil,
			dagTopologyManager,
			ghostdagManager)
		err := replayHeaders(blockHeaderStore, replayProcessor)
		if err != nil {
			return nil, err
		}
	}

	blockProcessor := blockprocessor.New(
		blockStore,
		blockHeaderStore,
		dagTopologyManager,
		ghostdagManager)

	c := &consensus{
		lock: &sync.RWMutex{},
		k:    config.K,

		blockProcessor:      blockProcessor,
		blockBuilder:        blockBuilder,
		ghostdagManager:     ghostdagManager,
		dagTopologyManager:  dagTopologyManager,
		dagTraversalManager: dagTraversalManager,

		blockStore:       blockStore,
		blockHeaderStore: blockHeaderStore,
	}

	if blockStore.Genesis() != nil {
		err := c.updateVirtual()
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

func newBlockHeaderStore(db database.Database, k externalapi.KType) (model.BlockHeaderStore, error) {
	blockHeaderStore, err := blockheaderstore.New(db)
	if err != nil {
		return nil, err
	}

	storedK, found, err := blockHeaderStore.K()
	if err != nil {
		return nil, err
	}
	if !found {
		err := blockHeaderStore.SetK(k)
		if err != nil {
			return nil, err
		}
		return blockHeaderStore, nil
	}
	if storedK != k {
		return nil, errors.Wrapf(ruleerrors.ErrInvalidK,
			"the database was created with K %d, but K is configured to %d", storedK, k)
	}
	return blockHeaderStore, nil
}

// replayHeaders inserts every stored header into the in-memory DAG in
// insertion order, which re-validates all of them
func replayHeaders(blockHeaderStore model.BlockHeaderStore, blockProcessor model.BlockProcessor) error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "replayHeaders")
	defer onEnd()

	headers, err := readHeaders(blockHeaderStore)
	if err != nil {
		return err
	}

	for i, header := range headers {
		if i == 0 {
			_, err := blockProcessor.AddGenesis(header)
			if err != nil {
				return errors.Wrapf(err, "failed to replay the genesis")
			}
			continue
		}
		result, err := blockProcessor.ValidateAndInsertBlock(header)
		if err != nil {
			return errors.Wrapf(err, "failed to replay the header at index %d", i)
		}
		if !result.IsNew {
			return errors.Errorf("the header at index %d is stored more than once", i)
		}
	}

	if len(headers) > 0 {
		log.Infof("Replayed %d blocks from the database", len(headers))
	}
	return nil
}

// readHeaders reads all the stored headers before any of them is inserted,
// so that no database iteration is open while the DAG is being written
func readHeaders(blockHeaderStore model.BlockHeaderStore) ([]externalapi.BlockHeader, error) {
	count, err := blockHeaderStore.Count()
	if err != nil {
		return nil, err
	}

	iterator, err := blockHeaderStore.Iterator()
	if err != nil {
		return nil, err
	}
	defer iterator.Close()

	headers := make([]externalapi.BlockHeader, 0, count)
	for ok := iterator.First(); ok; ok = iterator.Next() {
		insertionIndex, header, err := iterator.Get()
		if err != nil {
			return nil, err
		}
		if insertionIndex != uint64(len(headers)) {
			return nil, errors.Errorf("expected the header at index %d, got index %d",
				len(headers), insertionIndex)
		}
		headers = append(headers, header)
	}
	if uint64(len(headers)) != count {
		return nil, errors.Errorf("expected %d stored headers, found %d", count, len(headers))
	}
	return headers, nil
}
