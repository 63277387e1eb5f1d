package dagtraversalmanager

import (
	"github.com/argusdag/argusd/domain/consensus/model"
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

// dagTraversalManager exposes methods for traversing blocks
// in the DAG according to their GHOSTDAG ordering
type dagTraversalManager struct {
	blockStore         model.BlockStore
	dagTopologyManager model.DAGTopologyManager
}

// New instantiates a new DAGTraversalManager
func New(
	blockStore model.BlockStore,
	dagTopologyManager model.DAGTopologyManager) model.DAGTraversalManager {

	return &dagTraversalManager{
		blockStore:         blockStore,
		dagTopologyManager: dagTopologyManager,
	}
}

func (dtm *dagTraversalManager) ghostdagData(blockHash *externalapi.DomainHash) (*externalapi.BlockGHOSTDAGData, error) {
	if !dtm.blockStore.Has(blockHash) {
		return nil, errors.Wrapf(ruleerrors.ErrUnknownBlock, "block %s is not in the DAG", blockHash)
	}
	return dtm.blockStore.GHOSTDAGData(blockHash)
}

// ChainBlockAtBlueScore returns the highest block in the selected parent chain
// below highGHOSTDAGData whose blue score is not above the given blue score
func (dtm *dagTraversalManager) ChainBlockAtBlueScore(highGHOSTDAGData *externalapi.BlockGHOSTDAGData,
	blueScore uint64) (*externalapi.DomainHash, error) {

	currentHash := highGHOSTDAGData.SelectedParent()
	if currentHash == nil {
		return nil, errors.New("cannot look for a chain block below the genesis")
	}
	for {
		currentGHOSTDAGData, err := dtm.blockStore.GHOSTDAGData(currentHash)
		if err != nil {
			return nil, err
		}
		if currentGHOSTDAGData.BlueScore() <= blueScore || currentGHOSTDAGData.SelectedParent() == nil {
			return currentHash, nil
		}
		currentHash = currentGHOSTDAGData.SelectedParent()
	}
}

// IsBlueInView returns whether blockHash is in the blue set of the block
// with the given GHOSTDAG data. The blue set is resolved by walking down the
// selected parent chain until reaching the chain block that merged blockHash.
func (dtm *dagTraversalManager) IsBlueInView(blockHash *externalapi.DomainHash,
	viewGHOSTDAGData *externalapi.BlockGHOSTDAGData) (bool, error) {

	blockGHOSTDAGData, err := dtm.ghostdagData(blockHash)
	if err != nil {
		return false, err
	}

	current := viewGHOSTDAGData
	for current.BlueScore() > blockGHOSTDAGData.BlueScore() {
		for _, blue := range current.MergeSetBlues() {
			if blue.Equal(blockHash) {
				return true, nil
			}
		}
		for _, red := range current.MergeSetReds() {
			if red.Equal(blockHash) {
				return false, nil
			}
		}

		if current.SelectedParent() == nil {
			break
		}
		current, err = dtm.blockStore.GHOSTDAGData(current.SelectedParent())
		if err != nil {
			return false, err
		}
	}
	return false, nil
}

// IsInSelectedChain returns whether blockHash is in the selected parent
// chain below the block with the given GHOSTDAG data
func (dtm *dagTraversalManager) IsInSelectedChain(blockHash *externalapi.DomainHash,
	viewGHOSTDAGData *externalapi.BlockGHOSTDAGData) (bool, error) {

	if viewGHOSTDAGData.SelectedParent() == nil {
		return false, nil
	}
	if _, err := dtm.ghostdagData(blockHash); err != nil {
		return false, err
	}
	return dtm.dagTopologyManager.IsInSelectedParentChainOf(blockHash, viewGHOSTDAGData.SelectedParent())
}
