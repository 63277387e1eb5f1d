package consensus

import (
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

// Linearize returns an iterator over the order of toHash after fromHash.
// A nil fromHash starts at the genesis, and a nil toHash stands for the
// virtual block, which is itself left out.
func (s *consensus) Linearize(fromHash *externalapi.DomainHash, toHash *externalapi.DomainHash) (
	externalapi.BlockIterator, error) {

	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.linearize(fromHash, toHash)
}

// LinearizeToSlice is like Linearize, but collects the whole order
func (s *consensus) LinearizeToSlice(fromHash *externalapi.DomainHash, toHash *externalapi.DomainHash) (
	[]*externalapi.DomainHash, error) {

	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.linearizeToSlice(fromHash, toHash)
}

// VirtualOrder returns the order of the whole DAG
func (s *consensus) VirtualOrder() ([]*externalapi.DomainHash, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.virtualOrder()
}

// OrderByBlueScoreRange returns the blocks at positions lowBlueScore to
// highBlueScore, inclusive, of the order of the whole DAG
func (s *consensus) OrderByBlueScoreRange(lowBlueScore uint64, highBlueScore uint64) ([]*externalapi.DomainHash, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if lowBlueScore > highBlueScore {
		return nil, errors.Wrapf(ruleerrors.ErrInvalidRange,
			"the low end of the range %d is above its high end %d", lowBlueScore, highBlueScore)
	}
	err := s.checkInitialized()
	if err != nil {
		return nil, err
	}

	// The virtual block is at position virtualBlueScore and isn't part of the order
	virtualBlueScore := s.virtualGHOSTDAGData.BlueScore()
	if lowBlueScore >= virtualBlueScore {
		return []*externalapi.DomainHash{}, nil
	}
	if highBlueScore >= virtualBlueScore {
		highBlueScore = virtualBlueScore - 1
	}

	// A chain block's position equals its blue score, so start right after
	// the highest chain block positioned before lowBlueScore
	var startHash *externalapi.DomainHash
	position := uint64(0)
	if lowBlueScore > 0 {
		startHash, err = s.dagTraversalManager.ChainBlockAtBlueScore(s.virtualGHOSTDAGData, lowBlueScore-1)
		if err != nil {
			return nil, err
		}
		startGHOSTDAGData, err := s.blockStore.GHOSTDAGData(startHash)
		if err != nil {
			return nil, err
		}
		position = startGHOSTDAGData.BlueScore() + 1
	}

	iterator, err := s.dagTraversalManager.VirtualOrderIterator(startHash, s.virtualGHOSTDAGData)
	if err != nil {
		return nil, err
	}
	defer iterator.Close()

	blockHashes := make([]*externalapi.DomainHash, 0, highBlueScore-lowBlueScore+1)
	for ok := iterator.First(); ok && position <= highBlueScore; ok = iterator.Next() {
		if position >= lowBlueScore {
			blockHash, err := iterator.Get()
			if err != nil {
				return nil, err
			}
			blockHashes = append(blockHashes, blockHash)
		}
		position++
	}
	return blockHashes, nil
}

func (s *consensus) linearize(fromHash *externalapi.DomainHash, toHash *externalapi.DomainHash) (
	externalapi.BlockIterator, error) {

	if fromHash != nil && !s.blockStore.Has(fromHash) {
		return nil, errors.Wrapf(ruleerrors.ErrUnknownBlock, "block %s is not in the DAG", fromHash)
	}
	if toHash == nil {
		err := s.checkInitialized()
		if err != nil {
			return nil, err
		}
		return s.dagTraversalManager.VirtualOrderIterator(fromHash, s.virtualGHOSTDAGData)
	}
	if !s.blockStore.Has(toHash) {
		return nil, errors.Wrapf(ruleerrors.ErrUnknownBlock, "block %s is not in the DAG", toHash)
	}
	return s.dagTraversalManager.OrderIterator(fromHash, toHash)
}

func (s *consensus) linearizeToSlice(fromHash *externalapi.DomainHash, toHash *externalapi.DomainHash) (
	[]*externalapi.DomainHash, error) {

	iterator, err := s.linearize(fromHash, toHash)
	if err != nil {
		return nil, err
	}
	defer iterator.Close()

	var blockHashes []*externalapi.DomainHash
	for ok := iterator.First(); ok; ok = iterator.Next() {
		blockHash, err := iterator.Get()
		if err != nil {
			return nil, err
		}
		blockHashes = append(blockHashes, blockHash)
	}
	return blockHashes, nil
}

func (s *consensus) virtualOrder() ([]*externalapi.DomainHash, error) {
	return s.linearizeToSlice(nil, nil)
}
