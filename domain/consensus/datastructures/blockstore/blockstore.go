package blockstore

import (
	"github.com/argusdag/argusd/domain/consensus/model"
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/ruleerrors"
	"github.com/argusdag/argusd/domain/consensus/utils/hashset"
	"github.com/pkg/errors"
)

// blockNode is the arena entry of a single block. Nodes reference each
// other only by hash.
type blockNode struct {
	hash           *externalapi.DomainHash
	header         externalapi.BlockHeader
	ghostdagData   *externalapi.BlockGHOSTDAGData
	children       []*externalapi.DomainHash
	insertionIndex uint64
}

// blockStore represents an in-memory arena of blocks
type blockStore struct {
	nodes   []*blockNode
	index   map[externalapi.DomainHash]uint64
	tips    hashset.HashSet
	genesis *externalapi.DomainHash
}

// New instantiates a new, empty BlockStore
func New() model.BlockStore {
	return &blockStore{
		index: make(map[externalapi.DomainHash]uint64),
		tips:  hashset.New(),
	}
}

func (bs *blockStore) node(blockHash *externalapi.DomainHash) (*blockNode, error) {
	insertionIndex, ok := bs.index[*blockHash]
	if !ok {
		return nil, errors.Wrapf(ruleerrors.ErrNotFound, "block %s does not exist in the DAG", blockHash)
	}
	return bs.nodes[insertionIndex], nil
}

// Has returns whether the given block exists in the store
func (bs *blockStore) Has(blockHash *externalapi.DomainHash) bool {
	_, ok := bs.index[*blockHash]
	return ok
}

// Header returns the header of the given block
func (bs *blockStore) Header(blockHash *externalapi.DomainHash) (externalapi.BlockHeader, error) {
	node, err := bs.node(blockHash)
	if err != nil {
		return nil, err
	}
	return node.header, nil
}

// GHOSTDAGData returns the GHOSTDAG data of the given block.
// The returned data is shared and must not be modified.
func (bs *blockStore) GHOSTDAGData(blockHash *externalapi.DomainHash) (*externalapi.BlockGHOSTDAGData, error) {
	node, err := bs.node(blockHash)
	if err != nil {
		return nil, err
	}
	return node.ghostdagData, nil
}

// Children returns a copy of the known children of the given block
func (bs *blockStore) Children(blockHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error) {
	node, err := bs.node(blockHash)
	if err != nil {
		return nil, err
	}
	return externalapi.CloneHashes(node.children), nil
}

// Record returns a detached copy of everything known about the given block
func (bs *blockStore) Record(blockHash *externalapi.DomainHash) (*externalapi.BlockRecord, error) {
	node, err := bs.node(blockHash)
	if err != nil {
		return nil, err
	}
	return node.toRecord(), nil
}

func (node *blockNode) toRecord() *externalapi.BlockRecord {
	return &externalapi.BlockRecord{
		Hash:           node.hash,
		Header:         node.header,
		Children:       externalapi.CloneHashes(node.children),
		GHOSTDAGData:   node.ghostdagData.Clone(),
		InsertionIndex: node.insertionIndex,
	}
}

// HashAt returns the hash of the block inserted at the given position
func (bs *blockStore) HashAt(insertionIndex uint64) (*externalapi.DomainHash, error) {
	if insertionIndex >= uint64(len(bs.nodes)) {
		return nil, errors.Wrapf(ruleerrors.ErrNotFound, "no block at insertion index %d", insertionIndex)
	}
	return bs.nodes[insertionIndex].hash, nil
}

// Insert commits a fully classified block: it adds it to the arena, appends
// it to the children of each of its parents and updates the tips.
// All parents are expected to already exist in the store.
func (bs *blockStore) Insert(blockHash *externalapi.DomainHash, header externalapi.BlockHeader,
	ghostdagData *externalapi.BlockGHOSTDAGData) (*externalapi.BlockRecord, error) {

	if bs.Has(blockHash) {
		return nil, errors.Wrapf(ruleerrors.ErrDuplicateBlock, "block %s is already in the store", blockHash)
	}
	parents := header.Parents()
	for _, parent := range parents {
		if !bs.Has(parent) {
			return nil, errors.Errorf("cannot insert block %s: parent %s is missing", blockHash, parent)
		}
	}
	if len(parents) == 0 && bs.genesis != nil {
		return nil, errors.Wrapf(ruleerrors.ErrAlreadyInitialized, "cannot insert a second genesis %s", blockHash)
	}

	node := &blockNode{
		hash:           blockHash,
		header:         header,
		ghostdagData:   ghostdagData,
		insertionIndex: uint64(len(bs.nodes)),
	}
	bs.nodes = append(bs.nodes, node)
	bs.index[*blockHash] = node.insertionIndex

	for _, parent := range parents {
		parentNode := bs.nodes[bs.index[*parent]]
		parentNode.children = append(parentNode.children, blockHash)
		bs.tips.Remove(parent)
	}
	bs.tips.Add(blockHash)

	if len(parents) == 0 {
		bs.genesis = blockHash
	}

	return node.toRecord(), nil
}

// Tips returns the blocks with no known children, sorted by hash
func (bs *blockStore) Tips() []*externalapi.DomainHash {
	return bs.tips.ToSlice()
}

// Genesis returns the genesis hash, or nil if there's no genesis yet
func (bs *blockStore) Genesis() *externalapi.DomainHash {
	return bs.genesis
}

// Count returns the number of blocks in the store
func (bs *blockStore) Count() uint64 {
	return uint64(len(bs.nodes))
}
