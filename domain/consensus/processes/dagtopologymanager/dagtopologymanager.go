package dagtopologymanager

import (
	"github.com/argusdag/argusd/domain/consensus/model"
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/hashset"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// DefaultAncestryCacheSize is the number of IsAncestorOf results kept in memory
const DefaultAncestryCacheSize = 10_000

type ancestryKey struct {
	ancestor   externalapi.DomainHash
	descendant externalapi.DomainHash
}

// dagTopologyManager exposes methods for querying relationships
// between blocks in the DAG
type dagTopologyManager struct {
	blockStore    model.BlockStore
	ancestryCache *lru.Cache
}

// New instantiates a new DAGTopologyManager
func New(blockStore model.BlockStore, ancestryCacheSize int) (model.DAGTopologyManager, error) {
	ancestryCache, err := lru.New(ancestryCacheSize)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create an ancestry cache of size %d", ancestryCacheSize)
	}
	return &dagTopologyManager{
		blockStore:    blockStore,
		ancestryCache: ancestryCache,
	}, nil
}

// Parents returns the DAG parents of the given blockHash
func (dtm *dagTopologyManager) Parents(blockHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error) {
	header, err := dtm.blockStore.Header(blockHash)
	if err != nil {
		return nil, err
	}
	return header.Parents(), nil
}

// Children returns the DAG children of the given blockHash
func (dtm *dagTopologyManager) Children(blockHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error) {
	return dtm.blockStore.Children(blockHash)
}

// IsAncestorOf returns true if blockHashA is a DAG ancestor of blockHashB.
// A block is not considered an ancestor of itself.
func (dtm *dagTopologyManager) IsAncestorOf(blockHashA *externalapi.DomainHash, blockHashB *externalapi.DomainHash) (bool, error) {
	if blockHashA.Equal(blockHashB) {
		return false, nil
	}

	key := ancestryKey{ancestor: *blockHashA, descendant: *blockHashB}
	if cached, ok := dtm.ancestryCache.Get(key); ok {
		return cached.(bool), nil
	}

	isAncestor, err := dtm.isAncestorOf(blockHashA, blockHashB)
	if err != nil {
		return false, err
	}
	dtm.ancestryCache.Add(key, isAncestor)
	return isAncestor, nil
}

// isAncestorOf walks the past of blockHashB looking for blockHashA. Since blue
// scores strictly grow along every edge, any block whose blue score isn't
// above blockHashA's can't have it in its past, and is not expanded.
func (dtm *dagTopologyManager) isAncestorOf(blockHashA *externalapi.DomainHash, blockHashB *externalapi.DomainHash) (bool, error) {
	ghostdagDataA, err := dtm.blockStore.GHOSTDAGData(blockHashA)
	if err != nil {
		return false, err
	}
	ghostdagDataB, err := dtm.blockStore.GHOSTDAGData(blockHashB)
	if err != nil {
		return false, err
	}
	if ghostdagDataB.BlueScore() <= ghostdagDataA.BlueScore() {
		return false, nil
	}

	queue, err := dtm.Parents(blockHashB)
	if err != nil {
		return false, err
	}
	visited := hashset.New()
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.Equal(blockHashA) {
			return true, nil
		}
		if visited.Contains(current) {
			continue
		}
		visited.Add(current)

		currentGHOSTDAGData, err := dtm.blockStore.GHOSTDAGData(current)
		if err != nil {
			return false, err
		}
		if currentGHOSTDAGData.BlueScore() <= ghostdagDataA.BlueScore() {
			continue
		}

		if cached, ok := dtm.ancestryCache.Get(ancestryKey{ancestor: *blockHashA, descendant: *current}); ok {
			if cached.(bool) {
				return true, nil
			}
			continue
		}

		parents, err := dtm.Parents(current)
		if err != nil {
			return false, err
		}
		queue = append(queue, parents...)
	}
	return false, nil
}

// IsAncestorOfAny returns true if `blockHash` is an ancestor of at least one of `potentialDescendants`
func (dtm *dagTopologyManager) IsAncestorOfAny(blockHash *externalapi.DomainHash,
	potentialDescendants []*externalapi.DomainHash) (bool, error) {

	for _, potentialDescendant := range potentialDescendants {
		isAncestorOf, err := dtm.IsAncestorOf(blockHash, potentialDescendant)
		if err != nil {
			return false, err
		}
		if isAncestorOf {
			return true, nil
		}
	}
	return false, nil
}

// IsInSelectedParentChainOf returns true if blockHashA is in the selected parent chain of blockHashB.
// Every block is in its own selected parent chain.
func (dtm *dagTopologyManager) IsInSelectedParentChainOf(blockHashA *externalapi.DomainHash,
	blockHashB *externalapi.DomainHash) (bool, error) {

	ghostdagDataA, err := dtm.blockStore.GHOSTDAGData(blockHashA)
	if err != nil {
		return false, err
	}

	current := blockHashB
	for current != nil {
		if current.Equal(blockHashA) {
			return true, nil
		}
		currentGHOSTDAGData, err := dtm.blockStore.GHOSTDAGData(current)
		if err != nil {
			return false, err
		}
		if currentGHOSTDAGData.BlueScore() <= ghostdagDataA.BlueScore() {
			return false, nil
		}
		current = currentGHOSTDAGData.SelectedParent()
	}
	return false, nil
}

// Tips returns the current tips of the DAG
func (dtm *dagTopologyManager) Tips() []*externalapi.DomainHash {
	return dtm.blockStore.Tips()
}
