package model

import "github.com/argusdag/argusd/domain/consensus/model/externalapi"

// BlockProcessor is responsible for processing incoming block headers
// and inserting them into the DAG
type BlockProcessor interface {
	AddGenesis(header externalapi.BlockHeader) (*externalapi.BlockRecord, error)
	ValidateAndInsertBlock(header externalapi.BlockHeader) (*externalapi.BlockInsertionResult, error)
}
