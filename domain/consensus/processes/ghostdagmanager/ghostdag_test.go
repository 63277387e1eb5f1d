package ghostdagmanager_test

import (
	"testing"

	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/testutils"
	"github.com/davecgh/go-spew/spew"
)

func TestGHOSTDAG(t *testing.T) {
	type testBlockData struct {
		id                     byte
		parents                []byte
		expectedBlueScore      uint64
		expectedSelectedParent byte
		expectedMergeSetBlues  []byte
		expectedMergeSetReds   []byte
	}

	type testDAG struct {
		name   string
		k      externalapi.KType
		blocks []testBlockData
	}

	const genesis = 0

	tests := []testDAG{
		{
			name: "chain with k=0",
			k:    0,
			blocks: []testBlockData{
				{id: 1, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 2, parents: []byte{1}, expectedBlueScore: 2, expectedSelectedParent: 1,
					expectedMergeSetBlues: []byte{1}},
				{id: 3, parents: []byte{2}, expectedBlueScore: 3, expectedSelectedParent: 2,
					expectedMergeSetBlues: []byte{2}},
			},
		},
		{
			name: "three parents with k=3",
			k:    3,
			blocks: []testBlockData{
				{id: 1, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 2, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 3, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 4, parents: []byte{1, 2, 3}, expectedBlueScore: 4, expectedSelectedParent: 1,
					expectedMergeSetBlues: []byte{1, 2, 3}},
			},
		},
		{
			name: "three parents with k=0",
			k:    0,
			blocks: []testBlockData{
				{id: 1, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 2, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 3, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 4, parents: []byte{1, 2, 3}, expectedBlueScore: 2, expectedSelectedParent: 1,
					expectedMergeSetBlues: []byte{1}, expectedMergeSetReds: []byte{2, 3}},
			},
		},
		{
			name: "three parents with k=1",
			k:    1,
			blocks: []testBlockData{
				{id: 1, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 2, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 3, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 4, parents: []byte{1, 2, 3}, expectedBlueScore: 3, expectedSelectedParent: 1,
					expectedMergeSetBlues: []byte{1, 2}, expectedMergeSetReds: []byte{3}},
			},
		},
		{
			name: "same blue score picks the smaller hash",
			k:    3,
			blocks: []testBlockData{
				{id: 2, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 1, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 3, parents: []byte{2, 1}, expectedBlueScore: 3, expectedSelectedParent: 1,
					expectedMergeSetBlues: []byte{1, 2}},
			},
		},
		{
			name: "higher blue score beats the smaller hash",
			k:    3,
			blocks: []testBlockData{
				{id: 1, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 5, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 6, parents: []byte{5}, expectedBlueScore: 2, expectedSelectedParent: 5,
					expectedMergeSetBlues: []byte{5}},
				{id: 7, parents: []byte{1, 6}, expectedBlueScore: 4, expectedSelectedParent: 6,
					expectedMergeSetBlues: []byte{6, 1}},
			},
		},
		{
			// The longest chain (6-9) is not the heaviest one, and everything
			// mined on top of a red block is red as well
			name: "long concurrent chain is red",
			k:    3,
			blocks: []testBlockData{
				{id: 1, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 2, parents: []byte{1}, expectedBlueScore: 2, expectedSelectedParent: 1,
					expectedMergeSetBlues: []byte{1}},
				{id: 3, parents: []byte{1}, expectedBlueScore: 2, expectedSelectedParent: 1,
					expectedMergeSetBlues: []byte{1}},
				{id: 4, parents: []byte{1}, expectedBlueScore: 2, expectedSelectedParent: 1,
					expectedMergeSetBlues: []byte{1}},
				{id: 5, parents: []byte{2, 3, 4}, expectedBlueScore: 5, expectedSelectedParent: 2,
					expectedMergeSetBlues: []byte{2, 3, 4}},
				{id: 6, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 7, parents: []byte{6}, expectedBlueScore: 2, expectedSelectedParent: 6,
					expectedMergeSetBlues: []byte{6}},
				{id: 8, parents: []byte{7}, expectedBlueScore: 3, expectedSelectedParent: 7,
					expectedMergeSetBlues: []byte{7}},
				{id: 9, parents: []byte{8}, expectedBlueScore: 4, expectedSelectedParent: 8,
					expectedMergeSetBlues: []byte{8}},
				{id: 10, parents: []byte{5, 9}, expectedBlueScore: 6, expectedSelectedParent: 5,
					expectedMergeSetBlues: []byte{5}, expectedMergeSetReds: []byte{6, 7, 8, 9}},
			},
		},
		{
			name: "mergeset reaches below the direct parents",
			k:    3,
			blocks: []testBlockData{
				{id: 1, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 2, parents: []byte{1}, expectedBlueScore: 2, expectedSelectedParent: 1,
					expectedMergeSetBlues: []byte{1}},
				{id: 3, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 4, parents: []byte{3}, expectedBlueScore: 2, expectedSelectedParent: 3,
					expectedMergeSetBlues: []byte{3}},
				{id: 5, parents: []byte{2, 4}, expectedBlueScore: 5, expectedSelectedParent: 2,
					expectedMergeSetBlues: []byte{2, 3, 4}},
			},
		},
		{
			name: "parent in the past of the selected parent is not merged",
			k:    3,
			blocks: []testBlockData{
				{id: 1, parents: []byte{genesis}, expectedBlueScore: 1, expectedSelectedParent: genesis,
					expectedMergeSetBlues: []byte{genesis}},
				{id: 2, parents: []byte{1}, expectedBlueScore: 2, expectedSelectedParent: 1,
					expectedMergeSetBlues: []byte{1}},
				{id: 3, parents: []byte{1, 2}, expectedBlueScore: 3, expectedSelectedParent: 2,
					expectedMergeSetBlues: []byte{2}},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dag := testutils.NewTestDAG(t, test.k)
			genesisData := dag.AddBlock(testutils.Hash(genesis))
			if genesisData.BlueScore() != 0 || genesisData.SelectedParent() != nil ||
				len(genesisData.MergeSetBlues()) != 0 || len(genesisData.MergeSetReds()) != 0 {
				t.Fatalf("unexpected genesis GHOSTDAG data: %s", spew.Sdump(genesisData))
			}

			for _, block := range test.blocks {
				ghostdagData := dag.AddBlock(testutils.Hash(block.id), testutils.Hashes(block.parents...)...)

				if ghostdagData.BlueScore() != block.expectedBlueScore {
					t.Fatalf("block %d: expected blue score %d but got %d",
						block.id, block.expectedBlueScore, ghostdagData.BlueScore())
				}
				if !ghostdagData.SelectedParent().Equal(testutils.Hash(block.expectedSelectedParent)) {
					t.Fatalf("block %d: expected selected parent %d but got %s",
						block.id, block.expectedSelectedParent, ghostdagData.SelectedParent())
				}
				if !externalapi.HashesEqual(ghostdagData.MergeSetBlues(), testutils.Hashes(block.expectedMergeSetBlues...)) {
					t.Fatalf("block %d: expected merge set blues %v but got %s",
						block.id, block.expectedMergeSetBlues, spew.Sdump(ghostdagData.MergeSetBlues()))
				}
				if !externalapi.HashesEqual(ghostdagData.MergeSetReds(), testutils.Hashes(block.expectedMergeSetReds...)) {
					t.Fatalf("block %d: expected merge set reds %v but got %s",
						block.id, block.expectedMergeSetReds, spew.Sdump(ghostdagData.MergeSetReds()))
				}
				for _, blue := range ghostdagData.MergeSetBlues() {
					anticoneSize, ok := ghostdagData.BluesAnticoneSizes()[*blue]
					if !ok {
						t.Fatalf("block %d: blue %s has no anticone size", block.id, blue)
					}
					if anticoneSize > test.k {
						t.Fatalf("block %d: blue %s has anticone size %d above k", block.id, blue, anticoneSize)
					}
				}
			}
		})
	}
}

func TestGHOSTDAGDoesNotDependOnParentOrder(t *testing.T) {
	build := func(lastParents []byte) *externalapi.BlockGHOSTDAGData {
		dag := testutils.NewTestDAG(t, 2)
		dag.AddBlock(testutils.Hash(0))
		dag.AddBlock(testutils.Hash(1), testutils.Hash(0))
		dag.AddBlock(testutils.Hash(2), testutils.Hash(0))
		dag.AddBlock(testutils.Hash(3), testutils.Hash(0))
		dag.AddBlock(testutils.Hash(4), testutils.Hash(3))
		return dag.AddBlock(testutils.Hash(5), testutils.Hashes(lastParents...)...)
	}

	expected := build([]byte{1, 2, 4})
	for _, parents := range [][]byte{{4, 2, 1}, {2, 4, 1}, {1, 4, 2}} {
		ghostdagData := build(parents)
		if ghostdagData.BlueScore() != expected.BlueScore() ||
			!externalapi.HashesEqual(ghostdagData.MergeSetBlues(), expected.MergeSetBlues()) ||
			!externalapi.HashesEqual(ghostdagData.MergeSetReds(), expected.MergeSetReds()) {
			t.Fatalf("parents %v: expected %s but got %s", parents, spew.Sdump(expected), spew.Sdump(ghostdagData))
		}
	}
}

func TestChooseSelectedParent(t *testing.T) {
	dag := testutils.NewTestDAG(t, 3)
	dag.AddBlock(testutils.Hash(0))
	dag.AddBlock(testutils.Hash(3), testutils.Hash(0))
	dag.AddBlock(testutils.Hash(1), testutils.Hash(0))
	dag.AddBlock(testutils.Hash(2), testutils.Hash(3))

	selectedParent, err := dag.GHOSTDAGManager.ChooseSelectedParent(testutils.Hashes(1, 3)...)
	if err != nil {
		t.Fatalf("ChooseSelectedParent: %+v", err)
	}
	if !selectedParent.Equal(testutils.Hash(1)) {
		t.Fatalf("expected the smaller hash to be selected on equal blue scores, got %s", selectedParent)
	}

	selectedParent, err = dag.GHOSTDAGManager.ChooseSelectedParent(testutils.Hashes(1, 2)...)
	if err != nil {
		t.Fatalf("ChooseSelectedParent: %+v", err)
	}
	if !selectedParent.Equal(testutils.Hash(2)) {
		t.Fatalf("expected the higher blue score to be selected, got %s", selectedParent)
	}

	_, err = dag.GHOSTDAGManager.ChooseSelectedParent()
	if err == nil {
		t.Fatalf("expected an error when choosing out of no blocks")
	}
}
