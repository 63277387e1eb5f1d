package ghostdagmanager

import (
	"github.com/argusdag/argusd/domain/consensus/model"
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
)

// ghostdagManager resolves and manages GHOSTDAG block data
type ghostdagManager struct {
	blockStore         model.BlockStore
	dagTopologyManager model.DAGTopologyManager
	k                  externalapi.KType
}

// New instantiates a new GHOSTDAGManager
func New(
	blockStore model.BlockStore,
	dagTopologyManager model.DAGTopologyManager,
	k externalapi.KType) model.GHOSTDAGManager {

	return &ghostdagManager{
		blockStore:         blockStore,
		dagTopologyManager: dagTopologyManager,
		k:                  k,
	}
}

// K returns the K parameter this manager classifies with
func (gm *ghostdagManager) K() externalapi.KType {
	return gm.k
}

// GenesisGHOSTDAGData returns the GHOSTDAG data of a block with no parents
func (gm *ghostdagManager) GenesisGHOSTDAGData() *externalapi.BlockGHOSTDAGData {
	return externalapi.NewBlockGHOSTDAGData(
		0,
		nil,
		[]*externalapi.DomainHash{},
		[]*externalapi.DomainHash{},
		map[externalapi.DomainHash]externalapi.KType{},
	)
}
