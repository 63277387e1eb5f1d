package model

import "github.com/argusdag/argusd/domain/consensus/model/externalapi"

// BlockHeaderStore persists accepted headers so that the DAG can be rebuilt
// after a restart
type BlockHeaderStore interface {
	K() (k externalapi.KType, found bool, err error)
	SetK(k externalapi.KType) error
	Append(insertionIndex uint64, header externalapi.BlockHeader) error
	Count() (uint64, error)
	Iterator() (BlockHeaderIterator, error)
}

// BlockHeaderIterator iterates over persisted headers in insertion order
type BlockHeaderIterator interface {
	First() bool
	Next() bool
	Get() (insertionIndex uint64, header externalapi.BlockHeader, err error)
	Close() error
}
