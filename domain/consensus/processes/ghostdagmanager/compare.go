package ghostdagmanager

import (
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// ChooseSelectedParent returns the block with the highest blue score out of
// the given blocks. Ties are broken in favor of the smaller hash.
func (gm *ghostdagManager) ChooseSelectedParent(blockHashes ...*externalapi.DomainHash) (*externalapi.DomainHash, error) {
	if len(blockHashes) == 0 {
		return nil, errors.New("cannot choose a selected parent out of zero blocks")
	}
	selectedParent := blockHashes[0]
	selectedParentGHOSTDAGData, err := gm.blockStore.GHOSTDAGData(selectedParent)
	if err != nil {
		return nil, err
	}
	for _, blockHash := range blockHashes[1:] {
		blockGHOSTDAGData, err := gm.blockStore.GHOSTDAGData(blockHash)
		if err != nil {
			return nil, err
		}

		if gm.Less(selectedParent, selectedParentGHOSTDAGData, blockHash, blockGHOSTDAGData) {
			selectedParent = blockHash
			selectedParentGHOSTDAGData = blockGHOSTDAGData
		}
	}

	return selectedParent, nil
}

// Less returns true if blockB should be preferred over blockA as a selected parent
func (gm *ghostdagManager) Less(blockHashA *externalapi.DomainHash, ghostdagDataA *externalapi.BlockGHOSTDAGData,
	blockHashB *externalapi.DomainHash, ghostdagDataB *externalapi.BlockGHOSTDAGData) bool {

	blueScoreA := ghostdagDataA.BlueScore()
	blueScoreB := ghostdagDataB.BlueScore()
	if blueScoreA == blueScoreB {
		return blockHashB.Less(blockHashA)
	}

	return blueScoreA < blueScoreB
}
