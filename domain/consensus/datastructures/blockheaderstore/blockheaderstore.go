package blockheaderstore

import (
	"encoding/binary"

	"github.com/argusdag/argusd/domain/consensus/model"
	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/utils/serialization"
	"github.com/argusdag/argusd/infrastructure/db/database"
	"github.com/pkg/errors"
)

var bucketName = []byte("block-headers")
var countKeyName = []byte("block-headers-count")
var kKeyName = []byte("k")
var metaBucketName = []byte("meta")

// blockHeaderStore represents a store of block headers, keyed by their insertion index
type blockHeaderStore struct {
	db          database.Database
	countCached uint64
	bucket      *database.Bucket
	countKey    *database.Key
	kKey        *database.Key
}

// New instantiates a new BlockHeaderStore
func New(db database.Database) (model.BlockHeaderStore, error) {
	metaBucket := database.MakeBucket(metaBucketName)
	blockHeaderStore := &blockHeaderStore{
		db:       db,
		bucket:   database.MakeBucket(bucketName),
		countKey: metaBucket.Key(countKeyName),
		kKey:     metaBucket.Key(kKeyName),
	}

	err := blockHeaderStore.initializeCount()
	if err != nil {
		return nil, err
	}

	return blockHeaderStore, nil
}

func (bhs *blockHeaderStore) initializeCount() error {
	count := uint64(0)
	hasCountBytes, err := bhs.db.Has(bhs.countKey)
	if err != nil {
		return err
	}
	if hasCountBytes {
		countBytes, err := bhs.db.Get(bhs.countKey)
		if err != nil {
			return err
		}
		count, err = serialization.DBCountToCount(countBytes)
		if err != nil {
			return err
		}
	}
	bhs.countCached = count
	return nil
}

// K returns the GHOSTDAG K parameter the stored headers were classified with
func (bhs *blockHeaderStore) K() (k externalapi.KType, found bool, err error) {
	kBytes, err := bhs.db.Get(bhs.kKey)
	if database.IsNotFoundError(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	k, err = serialization.DBKToK(kBytes)
	if err != nil {
		return 0, false, err
	}
	return k, true, nil
}

// SetK records the GHOSTDAG K parameter
func (bhs *blockHeaderStore) SetK(k externalapi.KType) error {
	return bhs.db.Put(bhs.kKey, serialization.KToDBK(k))
}

// Append stores the header of the block inserted at insertionIndex.
// Headers must be appended in insertion order.
func (bhs *blockHeaderStore) Append(insertionIndex uint64, header externalapi.BlockHeader) error {
	if insertionIndex != bhs.countCached {
		return errors.Errorf("expected to append the header at index %d, got index %d",
			bhs.countCached, insertionIndex)
	}

	dbTx, err := bhs.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		rollbackErr := dbTx.RollbackUnlessClosed()
		if rollbackErr != nil {
			log.Warnf("Failed rolling back a block header transaction: %s", rollbackErr)
		}
	}()

	err = dbTx.Put(bhs.indexAsKey(insertionIndex), serialization.HeaderToDBHeader(header))
	if err != nil {
		return err
	}
	err = dbTx.Put(bhs.countKey, serialization.CountToDBCount(insertionIndex+1))
	if err != nil {
		return err
	}
	err = dbTx.Commit()
	if err != nil {
		return err
	}

	bhs.countCached = insertionIndex + 1
	return nil
}

// Count returns the number of stored headers
func (bhs *blockHeaderStore) Count() (uint64, error) {
	return bhs.countCached, nil
}

// Iterator returns an iterator over the stored headers in insertion order
func (bhs *blockHeaderStore) Iterator() (model.BlockHeaderIterator, error) {
	cursor, err := bhs.db.Cursor(bhs.bucket)
	if err != nil {
		return nil, err
	}
	return &blockHeaderIterator{cursor: cursor}, nil
}

// indexAsKey encodes the index as big endian so that the database's
// byte ordering of the keys is the insertion order
func (bhs *blockHeaderStore) indexAsKey(insertionIndex uint64) *database.Key {
	var keyBytes [8]byte
	binary.BigEndian.PutUint64(keyBytes[:], insertionIndex)
	return bhs.bucket.Key(keyBytes[:])
}

func keyAsIndex(key *database.Key) (uint64, error) {
	suffix := key.Suffix()
	if len(suffix) != 8 {
		return 0, errors.Errorf("block header key %s has a suffix of %d bytes instead of 8", key, len(suffix))
	}
	return binary.BigEndian.Uint64(suffix), nil
}
