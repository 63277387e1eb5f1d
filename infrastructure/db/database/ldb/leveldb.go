package ldb

import (
	"github.com/argusdag/argusd/infrastructure/db/database"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldbErrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// LevelDB is a database.Database backed by a leveldb directory.
type LevelDB struct {
	ldb *leveldb.DB
}

func openOptions(cacheSizeMiB int) *opt.Options {
	return &opt.Options{
		Compression:            opt.NoCompression,
		BlockCacheCapacity:     cacheSizeMiB * opt.MiB,
		WriteBuffer:            cacheSizeMiB * opt.MiB / 2,
		DisableSeeksCompaction: true,
	}
}

// NewLevelDB opens or creates the leveldb directory at path. A corrupted
// directory is recovered in place before giving up.
func NewLevelDB(path string, cacheSizeMiB int) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, openOptions(cacheSizeMiB))
	if ldbErrors.IsCorrupted(err) {
		log.Warnf("Recovering corrupted leveldb at %s: %s", path, err)
		db, err = leveldb.RecoverFile(path, openOptions(cacheSizeMiB))
		if err != nil {
			return nil, errors.Wrapf(err, "could not recover leveldb at %s", path)
		}
		log.Infof("Recovered leveldb at %s", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not open leveldb at %s", path)
	}
	return &LevelDB{ldb: db}, nil
}

// Close closes the leveldb instance.
func (db *LevelDB) Close() error {
	return errors.WithStack(db.ldb.Close())
}

// Put sets the value for the given key. It overwrites
// any previous value for that key.
func (db *LevelDB) Put(key *database.Key, value []byte) error {
	err := db.ldb.Put(key.Bytes(), value, nil)
	return errors.WithStack(err)
}

// Get gets the value for the given key. It returns
// ErrNotFound if the given key does not exist.
func (db *LevelDB) Get(key *database.Key) ([]byte, error) {
	data, err := db.ldb.Get(key.Bytes(), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, errors.Wrapf(database.ErrNotFound,
				"key %s not found", key)
		}
		return nil, errors.WithStack(err)
	}
	return data, nil
}

// Has returns true if the database does contains the
// given key.
func (db *LevelDB) Has(key *database.Key) (bool, error) {
	exists, err := db.ldb.Has(key.Bytes(), nil)
	if err != nil {
		return false, errors.WithStack(err)
	}
	return exists, nil
}

// Delete deletes the value for the given key. Will not
// return an error if the key doesn't exist.
func (db *LevelDB) Delete(key *database.Key) error {
	err := db.ldb.Delete(key.Bytes(), nil)
	return errors.WithStack(err)
}

// Cursor begins a new cursor over the given bucket.
func (db *LevelDB) Cursor(bucket *database.Bucket) (database.Cursor, error) {
	ldbIterator := db.ldb.NewIterator(util.BytesPrefix(bucket.Path()), nil)
	return &LevelDBCursor{
		ldbIterator: ldbIterator,
		bucket:      bucket,
		isClosed:    false,
	}, nil
}
