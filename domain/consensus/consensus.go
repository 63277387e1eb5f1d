package consensus

import (
	"sync"

	"github.com/argusdag/argusd/domain/consensus/model"
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

type consensus struct {
	lock *sync.RWMutex
	k    externalapi.KType

	blockProcessor      model.BlockProcessor
	blockBuilder        model.BlockBuilder
	ghostdagManager     model.GHOSTDAGManager
	dagTopologyManager  model.DAGTopologyManager
	dagTraversalManager model.DAGTraversalManager

	blockStore       model.BlockStore
	blockHeaderStore model.BlockHeaderStore

	// virtualGHOSTDAGData is nil until the genesis is added
	virtualGHOSTDAGData *externalapi.BlockGHOSTDAGData
	integrityFault      error
}

// Init adds the given genesis to an empty DAG
func (s *consensus) Init(genesisHeader externalapi.BlockHeader) (*externalapi.DomainHash, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	// A DAG with a genesis is initialized even when it's faulted
	if genesisHash := s.blockStore.Genesis(); genesisHash != nil {
		return nil, errors.Wrapf(ruleerrors.ErrAlreadyInitialized, "the DAG already has genesis %s", genesisHash)
	}

	err := s.checkWritable()
	if err != nil {
		return nil, err
	}

	record, err := s.blockProcessor.AddGenesis(genesisHeader)
	if err != nil {
		return nil, s.handleWriteError(err)
	}

	err = s.updateVirtual()
	if err != nil {
		return nil, err
	}
	return record.Hash, nil
}

// ValidateAndInsertBlock classifies the given header and, if it's valid,
// adds it to the DAG and recomputes the virtual block
func (s *consensus) ValidateAndInsertBlock(header externalapi.BlockHeader) (*externalapi.BlockInsertionResult, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	err := s.checkWritable()
	if err != nil {
		return nil, err
	}

	result, err := s.blockProcessor.ValidateAndInsertBlock(header)
	if err != nil {
		return nil, s.handleWriteError(err)
	}

	if result.IsNew {
		err = s.updateVirtual()
		if err != nil {
			return nil, err
		}
	}
	result.VirtualInfo = s.virtualInfo()
	return result, nil
}

// BuildBlockHeader builds a header over the parentCount best tips of the DAG
func (s *consensus) BuildBlockHeader(parentCount int, timestamp int64) (externalapi.BlockHeader, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.blockBuilder.BuildBlockHeader(parentCount, timestamp)
}

func (s *consensus) checkWritable() error {
	if s.integrityFault != nil {
		return errors.Wrap(s.integrityFault, "the DAG refuses writes after an integrity fault")
	}
	return nil
}

// handleWriteError puts the DAG into its integrity-fault state if err
// means the in-memory DAG can no longer be trusted
func (s *consensus) handleWriteError(err error) error {
	switch {
	case errors.Is(err, ruleerrors.ErrIntegrityFault):
		s.integrityFault = err
		log.Criticalf("Integrity fault, refusing further writes: %+v", err)
	case errors.Is(err, ruleerrors.ErrDuplicateBlock):
		s.integrityFault = ruleerrors.NewErrIntegrity(err)
		log.Criticalf("Integrity fault, refusing further writes: %+v", err)
	}
	return err
}

func (s *consensus) updateVirtual() error {
	virtualGHOSTDAGData, err := s.ghostdagManager.GHOSTDAG(s.blockStore.Tips())
	if err != nil {
		return s.handleWriteError(ruleerrors.NewErrIntegrity(
			errors.Wrap(err, "failed to classify the virtual block")))
	}
	s.virtualGHOSTDAGData = virtualGHOSTDAGData
	return nil
}

func (s *consensus) checkInitialized() error {
	if s.virtualGHOSTDAGData == nil {
		return errors.Wrap(ruleerrors.ErrNotFound, "the DAG has no genesis yet")
	}
	return nil
}

func (s *consensus) virtualInfo() *externalapi.VirtualInfo {
	if s.virtualGHOSTDAGData == nil {
		return nil
	}
	return &externalapi.VirtualInfo{
		ParentHashes:   s.blockStore.Tips(),
		SelectedParent: s.virtualGHOSTDAGData.SelectedParent(),
		BlueScore:      s.virtualGHOSTDAGData.BlueScore(),
	}
}

// GetBlock returns a copy of the record of the given block
func (s *consensus) GetBlock(blockHash *externalapi.DomainHash) (*externalapi.BlockRecord, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.blockStore.Record(blockHash)
}

// Tips returns the blocks without children, sorted by hash
func (s *consensus) Tips() ([]*externalapi.DomainHash, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.blockStore.Tips(), nil
}

// TipsWithBlueScores returns the tips along with their blue scores, sorted by hash
func (s *consensus) TipsWithBlueScores() ([]*externalapi.TipWithBlueScore, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	tips := s.blockStore.Tips()
	tipsWithBlueScores := make([]*externalapi.TipWithBlueScore, len(tips))
	for i, tip := range tips {
		tipGHOSTDAGData, err := s.blockStore.GHOSTDAGData(tip)
		if err != nil {
			return nil, err
		}
		tipsWithBlueScores[i] = &externalapi.TipWithBlueScore{
			Hash:      tip,
			BlueScore: tipGHOSTDAGData.BlueScore(),
		}
	}
	return tipsWithBlueScores, nil
}

// GetVirtualInfo returns the parents, selected parent and blue score of the virtual block
func (s *consensus) GetVirtualInfo() (*externalapi.VirtualInfo, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	err := s.checkInitialized()
	if err != nil {
		return nil, err
	}
	return s.virtualInfo(), nil
}

// IsBlue returns whether blockHash is in the blue set of viewHash.
// A nil viewHash stands for the virtual block.
func (s *consensus) IsBlue(blockHash *externalapi.DomainHash, viewHash *externalapi.DomainHash) (bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	viewGHOSTDAGData, err := s.viewGHOSTDAGData(viewHash)
	if err != nil {
		return false, err
	}
	return s.dagTraversalManager.IsBlueInView(blockHash, viewGHOSTDAGData)
}

// BlueSet returns the blue set of viewHash in order.
// A nil viewHash stands for the virtual block.
func (s *consensus) BlueSet(viewHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	// The order of a block is its blue set followed by the block itself
	if viewHash == nil {
		return s.virtualOrder()
	}
	order, err := s.linearizeToSlice(nil, viewHash)
	if err != nil {
		return nil, err
	}
	return order[:len(order)-1], nil
}

// IsChainBlock returns whether blockHash is in the selected parent chain of the virtual block
func (s *consensus) IsChainBlock(blockHash *externalapi.DomainHash) (bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	err := s.checkInitialized()
	if err != nil {
		return false, err
	}
	return s.dagTraversalManager.IsInSelectedChain(blockHash, s.virtualGHOSTDAGData)
}

func (s *consensus) viewGHOSTDAGData(viewHash *externalapi.DomainHash) (*externalapi.BlockGHOSTDAGData, error) {
	if viewHash == nil {
		err := s.checkInitialized()
		if err != nil {
			return nil, err
		}
		return s.virtualGHOSTDAGData, nil
	}
	if !s.blockStore.Has(viewHash) {
		return nil, errors.Wrapf(ruleerrors.ErrUnknownBlock, "block %s is not in the DAG", viewHash)
	}
	return s.blockStore.GHOSTDAGData(viewHash)
}

// Snapshot returns the last maxBlocks inserted blocks in insertion order,
// annotated with their standing in the view of the virtual block
func (s *consensus) Snapshot(maxBlocks int) ([]*externalapi.BlockRecordWithBlueness, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if maxBlocks < 0 {
		return nil, errors.Errorf("cannot take a snapshot of %d blocks", maxBlocks)
	}
	err := s.checkInitialized()
	if err != nil {
		return nil, err
	}

	count := s.blockStore.Count()
	start := uint64(0)
	if count > uint64(maxBlocks) {
		start = count - uint64(maxBlocks)
	}

	snapshot := make([]*externalapi.BlockRecordWithBlueness, 0, count-start)
	for insertionIndex := start; insertionIndex < count; insertionIndex++ {
		blockHash, err := s.blockStore.HashAt(insertionIndex)
		if err != nil {
			return nil, err
		}
		record, err := s.blockStore.Record(blockHash)
		if err != nil {
			return nil, err
		}
		isBlue, err := s.dagTraversalManager.IsBlueInView(blockHash, s.virtualGHOSTDAGData)
		if err != nil {
			return nil, err
		}
		isChainBlock, err := s.dagTraversalManager.IsInSelectedChain(blockHash, s.virtualGHOSTDAGData)
		if err != nil {
			return nil, err
		}
		snapshot = append(snapshot, &externalapi.BlockRecordWithBlueness{
			BlockRecord:  record,
			IsBlue:       isBlue,
			IsChainBlock: isChainBlock,
		})
	}
	return snapshot, nil
}

// Health summarizes the state of the DAG
func (s *consensus) Health() *externalapi.Health {
	s.lock.RLock()
	defer s.lock.RUnlock()

	health := &externalapi.Health{
		K:              s.k,
		BlockCount:     s.blockStore.Count(),
		TipCount:       len(s.blockStore.Tips()),
		IntegrityFault: s.integrityFault,
	}
	if s.virtualGHOSTDAGData != nil {
		health.VirtualBlueScore = s.virtualGHOSTDAGData.BlueScore()
	}
	return health
}
