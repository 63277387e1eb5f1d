package dagtraversalmanager

import (
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

// chainEntry is a single block of a selected parent chain segment.
// hash is nil for a block that isn't in the store, such as the virtual.
type chainEntry struct {
	hash         *externalapi.DomainHash
	ghostdagData *externalapi.BlockGHOSTDAGData
}

// orderIterator yields, for every chain block of its segment from low to high,
// the blues it merged besides its selected parent followed by the block itself.
// Committed GHOSTDAG data never changes, so the iterator remains valid without
// holding any lock.
type orderIterator struct {
	segment    []chainEntry
	chainIndex int
	blueIndex  int
	current    *externalapi.DomainHash
	isClosed   bool
}

func (it *orderIterator) First() bool {
	if it.isClosed {
		panic("Tried using a closed OrderIterator")
	}
	it.chainIndex = 0
	it.blueIndex = 0
	it.current = nil
	return it.Next()
}

func (it *orderIterator) Next() bool {
	if it.isClosed {
		panic("Tried using a closed OrderIterator")
	}
	for it.chainIndex < len(it.segment) {
		entry := it.segment[it.chainIndex]
		blues := entry.ghostdagData.MergeSetBluesWithoutSelectedParent()
		if it.blueIndex < len(blues) {
			it.current = blues[it.blueIndex]
			it.blueIndex++
			return true
		}

		it.chainIndex++
		it.blueIndex = 0
		if entry.hash != nil {
			it.current = entry.hash
			return true
		}
	}
	it.current = nil
	return false
}

func (it *orderIterator) Get() (*externalapi.DomainHash, error) {
	if it.isClosed {
		return nil, errors.New("Tried using a closed OrderIterator")
	}
	if it.current == nil {
		return nil, errors.New("OrderIterator is not positioned on a block")
	}
	return it.current, nil
}

func (it *orderIterator) Close() error {
	if it.isClosed {
		return errors.New("Tried using a closed OrderIterator")
	}
	it.isClosed = true
	it.segment = nil
	it.current = nil
	return nil
}

// OrderIterator returns a BlockIterator over the blue ordering of highHash
// that starts right after lowHash. lowHash must be in the selected parent
// chain of highHash. A nil lowHash starts the iteration at the genesis.
func (dtm *dagTraversalManager) OrderIterator(lowHash *externalapi.DomainHash,
	highHash *externalapi.DomainHash) (externalapi.BlockIterator, error) {

	highGHOSTDAGData, err := dtm.ghostdagData(highHash)
	if err != nil {
		return nil, err
	}
	return dtm.newOrderIterator(lowHash, chainEntry{hash: highHash, ghostdagData: highGHOSTDAGData})
}

// VirtualOrderIterator returns a BlockIterator over the blue ordering of a
// block that isn't in the store, excluding that block itself
func (dtm *dagTraversalManager) VirtualOrderIterator(lowHash *externalapi.DomainHash,
	virtualGHOSTDAGData *externalapi.BlockGHOSTDAGData) (externalapi.BlockIterator, error) {

	if virtualGHOSTDAGData.SelectedParent() == nil {
		return nil, errors.New("the virtual must have a selected parent")
	}
	return dtm.newOrderIterator(lowHash, chainEntry{ghostdagData: virtualGHOSTDAGData})
}

func (dtm *dagTraversalManager) newOrderIterator(lowHash *externalapi.DomainHash,
	high chainEntry) (externalapi.BlockIterator, error) {

	if lowHash != nil {
		_, err := dtm.ghostdagData(lowHash)
		if err != nil {
			return nil, err
		}
		if high.hash != nil && lowHash.Equal(high.hash) {
			return &orderIterator{}, nil
		}

		chainTop := high.hash
		if chainTop == nil {
			chainTop = high.ghostdagData.SelectedParent()
		}
		isInSelectedParentChain, err := dtm.dagTopologyManager.IsInSelectedParentChainOf(lowHash, chainTop)
		if err != nil {
			return nil, err
		}
		if !isInSelectedParentChain {
			return nil, errors.Wrapf(ruleerrors.ErrDisconnected,
				"%s is not in the selected parent chain of %s", lowHash, chainTop)
		}
	}

	segment, err := dtm.chainSegment(lowHash, high)
	if err != nil {
		return nil, err
	}
	return &orderIterator{segment: segment}, nil
}

// chainSegment collects the selected parent chain from high down to lowHash
// (exclusive), or down to the genesis (inclusive) if lowHash is nil, and
// returns it sorted from low to high
func (dtm *dagTraversalManager) chainSegment(lowHash *externalapi.DomainHash,
	high chainEntry) ([]chainEntry, error) {

	segment := []chainEntry{high}
	current := high.ghostdagData.SelectedParent()
	for current != nil && (lowHash == nil || !current.Equal(lowHash)) {
		currentGHOSTDAGData, err := dtm.blockStore.GHOSTDAGData(current)
		if err != nil {
			return nil, err
		}
		segment = append(segment, chainEntry{hash: current, ghostdagData: currentGHOSTDAGData})
		current = currentGHOSTDAGData.SelectedParent()
	}

	for i, j := 0, len(segment)-1; i < j; i, j = i+1, j-1 {
		segment[i], segment[j] = segment[j], segment[i]
	}
	return segment, nil
}
