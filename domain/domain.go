package domain

import (
	"github.com/argusdag/argusd/domain/consensus"
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/ruleerrors"
	"github.com/argusdag/argusd/domain/dagconfig"
	infrastructuredatabase "github.com/argusdag/argusd/infrastructure/db/database"
	"github.com/pkg/errors"
)

// Domain provides a reference to the domain's external aps
type Domain interface {
	Consensus() externalapi.Consensus
	Params() *dagconfig.Params
}

type domain struct {
	consensus       externalapi.Consensus
	consensusConfig *consensus.Config
}

func (d *domain) Consensus() externalapi.Consensus {
	return d.consensus
}

func (d *domain) Params() *dagconfig.Params {
	return &d.consensusConfig.Params
}

// New instantiates a new instance of a Domain object.
// db may be nil, in which case nothing is persisted.
// A fresh DAG is initialized with the configured genesis, and a DAG loaded
// from db must have been created with that same genesis.
func New(consensusConfig *consensus.Config, db infrastructuredatabase.Database) (Domain, error) {
	consensusFactory := consensus.NewFactory()
	consensusInstance, err := consensusFactory.NewConsensus(consensusConfig, db)
	if err != nil {
		return nil, err
	}

	err = initGenesis(consensusInstance, &consensusConfig.Params)
	if err != nil {
		return nil, err
	}

	return &domain{
		consensus:       consensusInstance,
		consensusConfig: consensusConfig,
	}, nil
}

func initGenesis(consensusInstance externalapi.Consensus, params *dagconfig.Params) error {
	_, err := consensusInstance.Init(params.GenesisHeader)
	if err == nil {
		log.Infof("Initialized a new DAG with genesis %s", params.GenesisHash)
		return nil
	}
	if !errors.Is(err, ruleerrors.ErrAlreadyInitialized) {
		return err
	}

	_, err = consensusInstance.GetBlock(params.GenesisHash)
	if errors.Is(err, ruleerrors.ErrNotFound) {
		return errors.Errorf("the database was created with a genesis other than %s", params.GenesisHash)
	}
	if err != nil {
		return err
	}
	log.Infof("Loaded a DAG of %d blocks", consensusInstance.Health().BlockCount)
	return nil
}
