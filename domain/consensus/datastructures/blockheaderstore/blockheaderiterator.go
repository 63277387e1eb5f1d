package blockheaderstore

import (
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/serialization"
	"github.com/argusdag/argusd/infrastructure/db/database"
	"github.com/pkg/errors"
)

type blockHeaderIterator struct {
	cursor   database.Cursor
	isClosed bool
}

func (b *blockHeaderIterator) First() bool {
	if b.isClosed {
		panic("Tried using a closed blockHeaderIterator")
	}
	return b.cursor.First()
}

func (b *blockHeaderIterator) Next() bool {
	if b.isClosed {
		panic("Tried using a closed blockHeaderIterator")
	}
	return b.cursor.Next()
}

func (b *blockHeaderIterator) Get() (insertionIndex uint64, header externalapi.BlockHeader, err error) {
	if b.isClosed {
		return 0, nil, errors.New("Tried using a closed blockHeaderIterator")
	}
	key, err := b.cursor.Key()
	if err != nil {
		return 0, nil, err
	}
	insertionIndex, err = keyAsIndex(key)
	if err != nil {
		return 0, nil, err
	}
	headerBytes, err := b.cursor.Value()
	if err != nil {
		return 0, nil, err
	}
	header, err = serialization.DBHeaderToHeader(headerBytes)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "failed to decode the header at index %d", insertionIndex)
	}
	return insertionIndex, header, nil
}

func (b *blockHeaderIterator) Close() error {
	if b.isClosed {
		return errors.New("Tried using a closed blockHeaderIterator")
	}
	b.isClosed = true
	err := b.cursor.Close()
	if err != nil {
		return err
	}
	b.cursor = nil
	return nil
}
