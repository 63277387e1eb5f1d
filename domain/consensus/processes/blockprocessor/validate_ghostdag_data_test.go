package blockprocessor

import (
	"strings"
	"testing"

	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/blockheader"
	"github.com/argusdag/argusd/domain/consensus/utils/testutils"
)

func TestValidateGHOSTDAGDataRejectsForgedMergeSets(t *testing.T) {
	dag := testutils.NewTestDAG(t, 3)
	genesis, a, b, c, d := testutils.Hash(1), testutils.Hash(2), testutils.Hash(3), testutils.Hash(4), testutils.Hash(5)
	dag.AddBlock(genesis)
	dag.AddBlock(a, genesis)
	dag.AddBlock(b, a)
	dag.AddBlock(c, genesis)
	dag.AddBlock(d, c)

	bp := &blockProcessor{
		blockStore:         dag.BlockStore,
		dagTopologyManager: dag.DAGTopologyManager,
		ghostdagManager:    dag.GHOSTDAGManager,
	}
	newBlock := testutils.Hash(6)
	forged := func(blues []*externalapi.DomainHash, reds []*externalapi.DomainHash) *externalapi.BlockGHOSTDAGData {
		anticoneSizes := make(map[externalapi.DomainHash]externalapi.KType, len(blues))
		for _, blue := range blues {
			anticoneSizes[*blue] = 0
		}
		return externalapi.NewBlockGHOSTDAGData(100, b, blues, reds, anticoneSizes)
	}

	tests := []struct {
		name          string
		parents       []*externalapi.DomainHash
		ghostdagData  *externalapi.BlockGHOSTDAGData
		expectedError string
	}{
		{
			name:          "blue outside the past",
			parents:       []*externalapi.DomainHash{b, c},
			ghostdagData:  forged([]*externalapi.DomainHash{b, d}, nil),
			expectedError: "is not in its past",
		},
		{
			name:          "blue inside the selected parent past",
			parents:       []*externalapi.DomainHash{b, c},
			ghostdagData:  forged([]*externalapi.DomainHash{b, a}, []*externalapi.DomainHash{c}),
			expectedError: "is in the past of selected parent",
		},
		{
			name:          "red ancestor of a blue",
			parents:       []*externalapi.DomainHash{b, d},
			ghostdagData:  forged([]*externalapi.DomainHash{b, d}, []*externalapi.DomainHash{c}),
			expectedError: "is in the past of one of its blues",
		},
	}

	for _, test := range tests {
		header := blockheader.NewImmutableBlockHeader(test.parents, 0)
		err := bp.validateGHOSTDAGData(newBlock, header, test.ghostdagData)
		if err == nil || !strings.Contains(err.Error(), test.expectedError) {
			t.Fatalf("%s: expected an error containing %q, got %v", test.name, test.expectedError, err)
		}
	}

	for _, parents := range [][]*externalapi.DomainHash{{b, c}, {b, d}, {d, a}} {
		header := blockheader.NewImmutableBlockHeader(parents, 0)
		ghostdagData, err := dag.GHOSTDAGManager.GHOSTDAG(header.Parents())
		if err != nil {
			t.Fatalf("GHOSTDAG: %+v", err)
		}
		err = bp.validateGHOSTDAGData(newBlock, header, ghostdagData)
		if err != nil {
			t.Fatalf("the classifier output for parents %v was rejected: %+v", parents, err)
		}
	}
}
