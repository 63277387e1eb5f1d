package bolt

import (
	"github.com/argusdag/argusd/infrastructure/db/database"
	"github.com/pkg/errors"
	bbolt "go.etcd.io/bbolt"
)

// BoltTransaction is a thin wrapper around a writable bbolt transaction.
//
// Note: unlike leveldb transactions, data put into a BoltTransaction
// is visible to gets within the same transaction.
type BoltTransaction struct {
	tx       *bbolt.Tx
	isClosed bool
}

// Begin begins a new transaction.
// bbolt allows a single writable transaction at a time, so Begin blocks
// until any other open transaction is closed.
func (db *BoltDB) Begin() (database.Transaction, error) {
	tx, err := db.bolt.Begin(true)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &BoltTransaction{tx: tx}, nil
}

// Commit commits whatever changes were made to the database
// within this transaction.
func (tx *BoltTransaction) Commit() error {
	if tx.isClosed {
		return errors.New("cannot commit a closed transaction")
	}
	tx.isClosed = true
	return errors.WithStack(tx.tx.Commit())
}

// Rollback rolls back whatever changes were made to the
// database within this transaction.
func (tx *BoltTransaction) Rollback() error {
	if tx.isClosed {
		return errors.New("cannot rollback a closed transaction")
	}
	tx.isClosed = true
	return errors.WithStack(tx.tx.Rollback())
}

// RollbackUnlessClosed rolls back changes that were made to
// the database within the transaction, unless the transaction
// had already been closed using either Rollback or Commit.
func (tx *BoltTransaction) RollbackUnlessClosed() error {
	if tx.isClosed {
		return nil
	}
	return tx.Rollback()
}

// Put sets the value for the given key. It overwrites
// any previous value for that key.
func (tx *BoltTransaction) Put(key *database.Key, value []byte) error {
	if tx.isClosed {
		return errors.New("cannot put into a closed transaction")
	}
	return errors.WithStack(tx.tx.Bucket(rootBucket).Put(key.Bytes(), value))
}

// Get gets the value for the given key. It returns
// ErrNotFound if the given key does not exist.
func (tx *BoltTransaction) Get(key *database.Key) ([]byte, error) {
	if tx.isClosed {
		return nil, errors.New("cannot get from a closed transaction")
	}
	return get(tx.tx, key)
}

// Has returns true if the database does contains the
// given key.
func (tx *BoltTransaction) Has(key *database.Key) (bool, error) {
	if tx.isClosed {
		return false, errors.New("cannot has from a closed transaction")
	}
	return tx.tx.Bucket(rootBucket).Get(key.Bytes()) != nil, nil
}

// Delete deletes the value for the given key. Will not
// return an error if the key doesn't exist.
func (tx *BoltTransaction) Delete(key *database.Key) error {
	if tx.isClosed {
		return errors.New("cannot delete from a closed transaction")
	}
	return errors.WithStack(tx.tx.Bucket(rootBucket).Delete(key.Bytes()))
}

// Cursor begins a new cursor over the given bucket. The cursor
// is only valid until the transaction is closed.
func (tx *BoltTransaction) Cursor(bucket *database.Bucket) (database.Cursor, error) {
	if tx.isClosed {
		return nil, errors.New("cannot open a cursor from a closed transaction")
	}
	return newCursor(tx.tx, bucket, false), nil
}
