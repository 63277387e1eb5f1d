package ghostdagmanager

import (
	"sort"

	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/hashset"
)

// mergeSetWithoutSelectedParent returns every block in the past of blockParents
// that is neither the selected parent nor in its past, sorted topologically.
func (gm *ghostdagManager) mergeSetWithoutSelectedParent(selectedParent *externalapi.DomainHash,
	blockParents []*externalapi.DomainHash) ([]*externalapi.DomainHash, error) {

	mergeSetMap := hashset.New()
	mergeSetSlice := make([]*externalapi.DomainHash, 0, gm.k)
	selectedParentPast := hashset.New()
	selectedParentPast.Add(selectedParent)

	queue := make([]*externalapi.DomainHash, 0, len(blockParents))
	visit := func(block *externalapi.DomainHash) error {
		if mergeSetMap.Contains(block) || selectedParentPast.Contains(block) {
			return nil
		}
		isAncestorOfSelectedParent, err := gm.dagTopologyManager.IsAncestorOf(block, selectedParent)
		if err != nil {
			return err
		}
		if isAncestorOfSelectedParent {
			selectedParentPast.Add(block)
			return nil
		}
		mergeSetMap.Add(block)
		mergeSetSlice = append(mergeSetSlice, block)
		queue = append(queue, block)
		return nil
	}

	for _, parent := range blockParents {
		err := visit(parent)
		if err != nil {
			return nil, err
		}
	}

	for len(queue) > 0 {
		var current *externalapi.DomainHash
		current, queue = queue[0], queue[1:]
		currentParents, err := gm.dagTopologyManager.Parents(current)
		if err != nil {
			return nil, err
		}
		for _, parent := range currentParents {
			err := visit(parent)
			if err != nil {
				return nil, err
			}
		}
	}

	err := gm.sortMergeSet(mergeSetSlice)
	if err != nil {
		return nil, err
	}

	return mergeSetSlice, nil
}

// sortMergeSet sorts by blue score and then by hash, both ascending. Since blue
// scores strictly grow along every edge, this order puts ancestors first.
func (gm *ghostdagManager) sortMergeSet(mergeSetSlice []*externalapi.DomainHash) error {
	blueScores := make(map[externalapi.DomainHash]uint64, len(mergeSetSlice))
	for _, block := range mergeSetSlice {
		ghostdagData, err := gm.blockStore.GHOSTDAGData(block)
		if err != nil {
			return err
		}
		blueScores[*block] = ghostdagData.BlueScore()
	}

	sort.Slice(mergeSetSlice, func(i, j int) bool {
		blueScoreI, blueScoreJ := blueScores[*mergeSetSlice[i]], blueScores[*mergeSetSlice[j]]
		if blueScoreI == blueScoreJ {
			return mergeSetSlice[i].Less(mergeSetSlice[j])
		}
		return blueScoreI < blueScoreJ
	})
	return nil
}
