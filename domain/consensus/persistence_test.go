package consensus

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/consensus/ruleerrors"
	"github.com/argusdag/argusd/domain/dagconfig"
	"github.com/argusdag/argusd/infrastructure/db/database"
	"github.com/argusdag/argusd/infrastructure/db/database/bolt"
	"github.com/argusdag/argusd/infrastructure/db/database/ldb"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

func testForAllDatabaseTypes(t *testing.T, testName string,
	testFunc func(t *testing.T, openDatabase func() database.Database)) {

	openers := map[string]func(t *testing.T, path string) database.Database{
		"ldb": func(t *testing.T, path string) database.Database {
			db, err := ldb.NewLevelDB(path, 8)
			if err != nil {
				t.Fatalf("NewLevelDB: %+v", err)
			}
			return db
		},
		"bolt": func(t *testing.T, path string) database.Database {
			db, err := bolt.NewBoltDB(filepath.Join(path, "argus.db"))
			if err != nil {
				t.Fatalf("NewBoltDB: %+v", err)
			}
			return db
		},
	}

	for name, open := range openers {
		path, err := os.MkdirTemp("", testName+"-"+name)
		if err != nil {
			t.Fatalf("MkdirTemp: %s", err)
		}
		t.Run(name, func(t *testing.T) {
			testFunc(t, func() database.Database { return open(t, path) })
		})
		os.RemoveAll(path)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	testForAllDatabaseTypes(t, "TestPersistenceRoundTrip", func(t *testing.T, openDatabase func() database.Database) {
		config := &Config{Params: *dagconfig.SimnetParams.WithK(3)}

		db := openDatabase()
		tc, err := NewFactory().NewTestConsensus(config, db)
		if err != nil {
			t.Fatalf("NewTestConsensus: %+v", err)
		}
		blocks := buildRandomDAG(t, tc, 5, 80)
		expectedRecords := make([]*externalapi.BlockRecord, len(blocks))
		for i, blockHash := range blocks {
			expectedRecords[i] = getBlock(t, tc, blockHash)
		}
		expectedOrder, err := tc.VirtualOrder()
		if err != nil {
			t.Fatalf("VirtualOrder: %+v", err)
		}
		expectedHealth := tc.Health()
		err = db.Close()
		if err != nil {
			t.Fatalf("Close: %+v", err)
		}

		db = openDatabase()
		defer db.Close()
		reloaded, err := NewFactory().NewTestConsensus(config, db)
		if err != nil {
			t.Fatalf("NewTestConsensus after reopen: %+v", err)
		}

		for i, blockHash := range blocks {
			record := getBlock(t, reloaded, blockHash)
			expected := expectedRecords[i]
			if !record.Hash.Equal(expected.Hash) || !record.Header.Equal(expected.Header) ||
				!externalapi.HashesEqual(record.Children, expected.Children) ||
				!reflect.DeepEqual(record.GHOSTDAGData, expected.GHOSTDAGData) ||
				record.InsertionIndex != expected.InsertionIndex {
				t.Fatalf("block %s was reloaded differently.\nexpected: %s\ngot: %s",
					blockHash, spew.Sdump(expected), spew.Sdump(record))
			}
		}
		order, err := reloaded.VirtualOrder()
		if err != nil {
			t.Fatalf("VirtualOrder: %+v", err)
		}
		if !externalapi.HashesEqual(order, expectedOrder) {
			t.Fatalf("the virtual order changed after reloading")
		}
		if !reflect.DeepEqual(reloaded.Health(), expectedHealth) {
			t.Fatalf("expected health %s, got %s", spew.Sdump(expectedHealth), spew.Sdump(reloaded.Health()))
		}

		// New blocks keep being persisted after a reload
		newBlock := addBlock(t, reloaded, blocks[len(blocks)-1])
		count, err := reloaded.BlockHeaderStore().Count()
		if err != nil {
			t.Fatalf("Count: %+v", err)
		}
		if count != uint64(len(blocks)+1) {
			t.Fatalf("expected %d stored headers, got %d", len(blocks)+1, count)
		}
		getBlock(t, reloaded, newBlock)
	})
}

func TestPersistedKMismatch(t *testing.T) {
	testForAllDatabaseTypes(t, "TestPersistedKMismatch", func(t *testing.T, openDatabase func() database.Database) {
		db := openDatabase()
		defer db.Close()

		_, err := NewFactory().NewTestConsensus(&Config{Params: *dagconfig.SimnetParams.WithK(3)}, db)
		if err != nil {
			t.Fatalf("NewTestConsensus: %+v", err)
		}
		_, err = NewFactory().NewConsensus(&Config{Params: *dagconfig.SimnetParams.WithK(4)}, db)
		if !errors.Is(err, ruleerrors.ErrInvalidK) {
			t.Fatalf("expected ErrInvalidK, got %+v", err)
		}
	})
}
