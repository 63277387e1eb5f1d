package bolt

import (
	"time"

	"github.com/argusdag/argusd/infrastructure/db/database"
	"github.com/pkg/errors"
	bbolt "go.etcd.io/bbolt"
)

// rootBucket holds every key. Buckets of the database package are
// key prefixes inside it, the same way they are in leveldb.
var rootBucket = []byte("argus")

// BoltDB defines a thin wrapper around bbolt.
type BoltDB struct {
	bolt *bbolt.DB
}

// NewBoltDB opens a bbolt instance at the given file path.
func NewBoltDB(path string) (*BoltDB, error) {
	boltDB, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "failed opening bolt database at %s", path)
	}

	err = boltDB.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(rootBucket)
		return err
	})
	if err != nil {
		closeErr := boltDB.Close()
		if closeErr != nil {
			log.Warnf("Failed closing bolt database at %s: %s", path, closeErr)
		}
		return nil, errors.WithStack(err)
	}

	return &BoltDB{bolt: boltDB}, nil
}

// Close closes the bbolt instance.
func (db *BoltDB) Close() error {
	return errors.WithStack(db.bolt.Close())
}

// Put sets the value for the given key. It overwrites
// any previous value for that key.
func (db *BoltDB) Put(key *database.Key, value []byte) error {
	err := db.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(rootBucket).Put(key.Bytes(), value)
	})
	return errors.WithStack(err)
}

// Get gets the value for the given key. It returns
// ErrNotFound if the given key does not exist.
func (db *BoltDB) Get(key *database.Key) ([]byte, error) {
	var data []byte
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		var err error
		data, err = get(tx, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Has returns true if the database does contains the
// given key.
func (db *BoltDB) Has(key *database.Key) (bool, error) {
	var exists bool
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		exists = tx.Bucket(rootBucket).Get(key.Bytes()) != nil
		return nil
	})
	return exists, errors.WithStack(err)
}

// Delete deletes the value for the given key. Will not
// return an error if the key doesn't exist.
func (db *BoltDB) Delete(key *database.Key) error {
	err := db.bolt.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(rootBucket).Delete(key.Bytes())
	})
	return errors.WithStack(err)
}

// Cursor begins a new cursor over the given bucket.
// The cursor holds a read transaction open until it is closed.
func (db *BoltDB) Cursor(bucket *database.Bucket) (database.Cursor, error) {
	tx, err := db.bolt.Begin(false)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return newCursor(tx, bucket, true), nil
}

// get copies the value out of bbolt's memory map, since it's only
// valid for the lifetime of the bbolt transaction
func get(tx *bbolt.Tx, key *database.Key) ([]byte, error) {
	value := tx.Bucket(rootBucket).Get(key.Bytes())
	if value == nil {
		return nil, errors.Wrapf(database.ErrNotFound, "key %s not found", key)
	}
	data := make([]byte, len(value))
	copy(data, value)
	return data, nil
}
