package model

import "github.com/argusdag/argusd/domain/consensus/model/externalapi"

// BlockBuilder is responsible for creating block headers over the current tips
type BlockBuilder interface {
	BuildBlockHeader(parentCount int, timestamp int64) (externalapi.BlockHeader, error)
}
