package blockprocessor

import (
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/hashset"
	"github.com/pkg/errors"
)

// validateGHOSTDAGData checks the classifier's output against the DAG
// invariants before it's committed
func (bp *blockProcessor) validateGHOSTDAGData(blockHash *externalapi.DomainHash, header externalapi.BlockHeader,
	ghostdagData *externalapi.BlockGHOSTDAGData) error {

	parents := hashset.NewFromSlice(header.Parents()...)
	if ghostdagData.SelectedParent() == nil || !parents.Contains(ghostdagData.SelectedParent()) {
		return errors.Errorf("block %s: selected parent %s is not one of its parents",
			blockHash, ghostdagData.SelectedParent())
	}

	for _, parent := range header.Parents() {
		parentGHOSTDAGData, err := bp.blockStore.GHOSTDAGData(parent)
		if err != nil {
			return err
		}
		if ghostdagData.BlueScore() <= parentGHOSTDAGData.BlueScore() {
			return errors.Errorf("block %s: blue score %d is not above the blue score %d of parent %s",
				blockHash, ghostdagData.BlueScore(), parentGHOSTDAGData.BlueScore(), parent)
		}
	}

	k := bp.ghostdagManager.K()
	for blue, anticoneSize := range ghostdagData.BluesAnticoneSizes() {
		if anticoneSize > k {
			return errors.Errorf("block %s: blue %s has anticone size %d, above k=%d",
				blockHash, blue, anticoneSize, k)
		}
	}

	blues := hashset.NewFromSlice(ghostdagData.MergeSetBlues()...)
	for _, red := range ghostdagData.MergeSetReds() {
		if blues.Contains(red) {
			return errors.Errorf("block %s: %s is both blue and red", blockHash, red)
		}
		hasBlueDescendant, err := bp.dagTopologyManager.IsAncestorOfAny(red, ghostdagData.MergeSetBlues())
		if err != nil {
			return err
		}
		if hasBlueDescendant {
			return errors.Errorf("block %s: red %s is in the past of one of its blues", blockHash, red)
		}
	}

	return bp.validateMergeSet(blockHash, header, ghostdagData)
}

// validateMergeSet checks that every mergeset block is in the past of the new
// block and outside the past of its selected parent
func (bp *blockProcessor) validateMergeSet(blockHash *externalapi.DomainHash, header externalapi.BlockHeader,
	ghostdagData *externalapi.BlockGHOSTDAGData) error {

	parents := hashset.NewFromSlice(header.Parents()...)
	selectedParent := ghostdagData.SelectedParent()
	for _, block := range ghostdagData.MergeSet() {
		if !parents.Contains(block) {
			isInPast, err := bp.dagTopologyManager.IsAncestorOfAny(block, header.Parents())
			if err != nil {
				return err
			}
			if !isInPast {
				return errors.Errorf("block %s: mergeset block %s is not in its past", blockHash, block)
			}
		}
		if block.Equal(selectedParent) {
			continue
		}
		isInSelectedParentPast, err := bp.dagTopologyManager.IsAncestorOf(block, selectedParent)
		if err != nil {
			return err
		}
		if isInSelectedParentPast {
			return errors.Errorf("block %s: mergeset block %s is in the past of selected parent %s",
				blockHash, block, selectedParent)
		}
	}
	return nil
}
