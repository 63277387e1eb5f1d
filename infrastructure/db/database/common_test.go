package database_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/argusdag/argusd/infrastructure/db/database"
	"github.com/argusdag/argusd/infrastructure/db/database/bolt"
	"github.com/argusdag/argusd/infrastructure/db/database/ldb"
	"github.com/stretchr/testify/require"
)

// drivers opens a fresh instance of every database driver under dir.
var drivers = map[string]func(dir string) (database.Database, error){
	"ldb": func(dir string) (database.Database, error) {
		return ldb.NewLevelDB(dir, 8)
	},
	"bolt": func(dir string) (database.Database, error) {
		return bolt.NewBoltDB(filepath.Join(dir, "argus.db"))
	},
}

// testForAllDatabaseTypes runs testFunc once per driver so every driver is
// held to the same Database contract.
func testForAllDatabaseTypes(t *testing.T, testName string,
	testFunc func(t *testing.T, db database.Database, testName string)) {

	for driverName, open := range drivers {
		t.Run(driverName, func(t *testing.T) {
			db, err := open(t.TempDir())
			require.NoError(t, err)
			defer func() { require.NoError(t, db.Close()) }()

			testFunc(t, db, fmt.Sprintf("%s: %s", driverName, testName))
		})
	}
}

type keyValuePair struct {
	key   *database.Key
	value []byte
}

func populateDatabaseForTest(t *testing.T, db database.Database, testName string) []keyValuePair {
	entries := make([]keyValuePair, 10)
	for i := range entries {
		entries[i] = keyValuePair{
			key:   database.MakeBucket(nil).Key([]byte(fmt.Sprintf("key%d", i))),
			value: []byte("value"),
		}
		require.NoError(t, db.Put(entries[i].key, entries[i].value), testName)
	}
	return entries
}
