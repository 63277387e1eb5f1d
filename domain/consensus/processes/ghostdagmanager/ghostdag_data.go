package ghostdagmanager

import (
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
)

// ghostdagDataReader is what the chain walk needs from both committed
// GHOSTDAG data and the data of the block being classified
type ghostdagDataReader interface {
	SelectedParent() *externalapi.DomainHash
	MergeSetBlues() []*externalapi.DomainHash
	BluesAnticoneSizes() map[externalapi.DomainHash]externalapi.KType
}

// blockGHOSTDAGData is the GHOSTDAG data of a block while it is being classified
type blockGHOSTDAGData struct {
	blueScore          uint64
	selectedParent     *externalapi.DomainHash
	mergeSetBlues      []*externalapi.DomainHash
	mergeSetReds       []*externalapi.DomainHash
	bluesAnticoneSizes map[externalapi.DomainHash]externalapi.KType
}

func newBlockGHOSTDAGData(selectedParent *externalapi.DomainHash, k externalapi.KType) *blockGHOSTDAGData {
	data := &blockGHOSTDAGData{
		selectedParent:     selectedParent,
		mergeSetBlues:      make([]*externalapi.DomainHash, 0, k+1),
		mergeSetReds:       make([]*externalapi.DomainHash, 0),
		bluesAnticoneSizes: make(map[externalapi.DomainHash]externalapi.KType, k),
	}
	data.mergeSetBlues = append(data.mergeSetBlues, selectedParent)
	data.bluesAnticoneSizes[*selectedParent] = 0
	return data
}

func (bgd *blockGHOSTDAGData) SelectedParent() *externalapi.DomainHash {
	return bgd.selectedParent
}

func (bgd *blockGHOSTDAGData) MergeSetBlues() []*externalapi.DomainHash {
	return bgd.mergeSetBlues
}

func (bgd *blockGHOSTDAGData) BluesAnticoneSizes() map[externalapi.DomainHash]externalapi.KType {
	return bgd.bluesAnticoneSizes
}

func (bgd *blockGHOSTDAGData) toExternal() *externalapi.BlockGHOSTDAGData {
	return externalapi.NewBlockGHOSTDAGData(
		bgd.blueScore,
		bgd.selectedParent,
		bgd.mergeSetBlues,
		bgd.mergeSetReds,
		bgd.bluesAnticoneSizes,
	)
}
