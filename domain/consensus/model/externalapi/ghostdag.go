package externalapi

// KType defines the size of GHOSTDAG consensus algorithm K parameter.
type KType uint8

// MaxK is the largest K a consensus instance accepts
const MaxK KType = 64

// BlockGHOSTDAGData represents GHOSTDAG data for some block
type BlockGHOSTDAGData struct {
	blueScore          uint64
	selectedParent     *DomainHash
	mergeSetBlues      []*DomainHash
	mergeSetReds       []*DomainHash
	bluesAnticoneSizes map[DomainHash]KType
}

// NewBlockGHOSTDAGData creates a new instance of BlockGHOSTDAGData
func NewBlockGHOSTDAGData(
	blueScore uint64,
	selectedParent *DomainHash,
	mergeSetBlues []*DomainHash,
	mergeSetReds []*DomainHash,
	bluesAnticoneSizes map[DomainHash]KType) *BlockGHOSTDAGData {

	return &BlockGHOSTDAGData{
		blueScore:          blueScore,
		selectedParent:     selectedParent,
		mergeSetBlues:      mergeSetBlues,
		mergeSetReds:       mergeSetReds,
		bluesAnticoneSizes: bluesAnticoneSizes,
	}
}

// BlueScore returns the BlueScore of the block
func (bgd *BlockGHOSTDAGData) BlueScore() uint64 {
	return bgd.blueScore
}

// SelectedParent returns the SelectedParent of the block, or nil for the genesis
func (bgd *BlockGHOSTDAGData) SelectedParent() *DomainHash {
	return bgd.selectedParent
}

// MergeSetBlues returns the MergeSetBlues of the block. The selected parent is always first.
func (bgd *BlockGHOSTDAGData) MergeSetBlues() []*DomainHash {
	return bgd.mergeSetBlues
}

// MergeSetReds returns the MergeSetReds of the block
func (bgd *BlockGHOSTDAGData) MergeSetReds() []*DomainHash {
	return bgd.mergeSetReds
}

// BluesAnticoneSizes returns a map between the blocks in its MergeSetBlues and the size of their anticone
func (bgd *BlockGHOSTDAGData) BluesAnticoneSizes() map[DomainHash]KType {
	return bgd.bluesAnticoneSizes
}

// MergeSet returns the whole MergeSet of the block (equivalent to MergeSetBlues+MergeSetReds)
func (bgd *BlockGHOSTDAGData) MergeSet() []*DomainHash {
	mergeSet := make([]*DomainHash, len(bgd.mergeSetBlues)+len(bgd.mergeSetReds))
	copy(mergeSet, bgd.mergeSetBlues)
	if len(bgd.mergeSetReds) > 0 {
		copy(mergeSet[len(bgd.mergeSetBlues):], bgd.mergeSetReds)
	}

	return mergeSet
}

// MergeSetBluesWithoutSelectedParent returns the blues this block merged besides its selected parent
func (bgd *BlockGHOSTDAGData) MergeSetBluesWithoutSelectedParent() []*DomainHash {
	if len(bgd.mergeSetBlues) == 0 {
		return nil
	}
	return bgd.mergeSetBlues[1:]
}

// Clone returns a clone of BlockGHOSTDAGData
func (bgd *BlockGHOSTDAGData) Clone() *BlockGHOSTDAGData {
	bluesAnticoneSizesClone := make(map[DomainHash]KType, len(bgd.bluesAnticoneSizes))
	for hash, size := range bgd.bluesAnticoneSizes {
		bluesAnticoneSizesClone[hash] = size
	}

	return &BlockGHOSTDAGData{
		blueScore:          bgd.blueScore,
		selectedParent:     bgd.selectedParent,
		mergeSetBlues:      CloneHashes(bgd.mergeSetBlues),
		mergeSetReds:       CloneHashes(bgd.mergeSetReds),
		bluesAnticoneSizes: bluesAnticoneSizesClone,
	}
}
