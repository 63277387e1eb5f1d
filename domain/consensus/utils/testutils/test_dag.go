package testutils

import (
	"testing"

	"github.com/argusdag/argusd/domain/consensus/datastructures/blockstore"
	"github.com/argusdag/argusd/domain/consensus/model"
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/processes/dagtopologymanager"
	"github.com/argusdag/argusd/domain/consensus/processes/dagtraversalmanager"
	"github.com/argusdag/argusd/domain/consensus/processes/ghostdagmanager"
	"github.com/argusdag/argusd/domain/consensus/utils/blockheader"
)

// TestDAG wires the consensus processes over a bare block store, bypassing
// hashing so that tests can name their blocks
type TestDAG struct {
	t *testing.T

	BlockStore          model.BlockStore
	DAGTopologyManager  model.DAGTopologyManager
	GHOSTDAGManager     model.GHOSTDAGManager
	DAGTraversalManager model.DAGTraversalManager
}

// NewTestDAG returns an empty TestDAG classifying with the given k
func NewTestDAG(t *testing.T, k externalapi.KType) *TestDAG {
	blockStore := blockstore.New()
	dagTopologyManager, err := dagtopologymanager.New(blockStore, dagtopologymanager.DefaultAncestryCacheSize)
	if err != nil {
		t.Fatalf("dagtopologymanager.New: %+v", err)
	}
	ghostdagManager := ghostdagmanager.New(blockStore, dagTopologyManager, k)
	dagTraversalManager := dagtraversalmanager.New(blockStore, dagTopologyManager)

	return &TestDAG{
		t:                   t,
		BlockStore:          blockStore,
		DAGTopologyManager:  dagTopologyManager,
		GHOSTDAGManager:     ghostdagManager,
		DAGTraversalManager: dagTraversalManager,
	}
}

// AddBlock classifies and stores a block with the given name and parents.
// A block with no parents is the genesis.
func (td *TestDAG) AddBlock(blockHash *externalapi.DomainHash,
	parents ...*externalapi.DomainHash) *externalapi.BlockGHOSTDAGData {

	header := blockheader.NewImmutableBlockHeader(parents, 0)
	ghostdagData, err := td.GHOSTDAGManager.GHOSTDAG(header.Parents())
	if err != nil {
		td.t.Fatalf("GHOSTDAG(%s): %+v", blockHash, err)
	}
	_, err = td.BlockStore.Insert(blockHash, header, ghostdagData)
	if err != nil {
		td.t.Fatalf("Insert(%s): %+v", blockHash, err)
	}
	return ghostdagData
}

// GHOSTDAGData returns the stored GHOSTDAG data of the given block
func (td *TestDAG) GHOSTDAGData(blockHash *externalapi.DomainHash) *externalapi.BlockGHOSTDAGData {
	ghostdagData, err := td.BlockStore.GHOSTDAGData(blockHash)
	if err != nil {
		td.t.Fatalf("GHOSTDAGData(%s): %+v", blockHash, err)
	}
	return ghostdagData
}

// Hash returns a hash whose first byte is b and the rest are zero.
// Hashes made this way compare in the order of b.
func Hash(b byte) *externalapi.DomainHash {
	var hashArray [externalapi.DomainHashSize]byte
	hashArray[0] = b
	return externalapi.NewDomainHashFromByteArray(&hashArray)
}

// Hashes maps Hash over bs
func Hashes(bs ...byte) []*externalapi.DomainHash {
	hashes := make([]*externalapi.DomainHash, len(bs))
	for i, b := range bs {
		hashes[i] = Hash(b)
	}
	return hashes
}
