package ldb

import (
	"testing"

	"github.com/argusdag/argusd/infrastructure/db/database"
	"github.com/stretchr/testify/require"
)

func openTestLevelDB(t *testing.T, path string) *LevelDB {
	db, err := NewLevelDB(path, 8)
	require.NoError(t, err)
	return db
}

func TestLevelDBReopenKeepsData(t *testing.T) {
	path := t.TempDir()
	blocks := database.MakeBucket([]byte("blocks"))

	db := openTestLevelDB(t, path)
	require.NoError(t, db.Put(blocks.Key([]byte("genesis")), []byte{1}))
	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, tx.Put(blocks.Key([]byte("child")), []byte{2}))
	require.NoError(t, tx.Commit())
	require.NoError(t, db.Close())

	db = openTestLevelDB(t, path)
	defer func() { require.NoError(t, db.Close()) }()

	value, err := db.Get(blocks.Key([]byte("genesis")))
	require.NoError(t, err)
	require.Equal(t, []byte{1}, value)

	cursor, err := db.Cursor(blocks)
	require.NoError(t, err)
	defer cursor.Close()
	count := 0
	for ok := cursor.First(); ok; ok = cursor.Next() {
		count++
	}
	require.Equal(t, 2, count)
}

func TestLevelDBTransactionReadsSnapshot(t *testing.T) {
	db := openTestLevelDB(t, t.TempDir())
	defer func() { require.NoError(t, db.Close()) }()

	key := database.MakeBucket(nil).Key([]byte("tip"))
	tx, err := db.Begin()
	require.NoError(t, err)

	require.NoError(t, db.Put(key, []byte("written after begin")))
	_, err = tx.Get(key)
	require.True(t, database.IsNotFoundError(err), "transaction saw a write made after it began: %v", err)

	require.NoError(t, tx.Put(key, []byte("from transaction")))
	require.NoError(t, tx.Commit())
	require.Error(t, tx.Commit())
	require.NoError(t, tx.RollbackUnlessClosed())

	value, err := db.Get(key)
	require.NoError(t, err)
	require.Equal(t, []byte("from transaction"), value)
}
