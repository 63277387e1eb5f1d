package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/argusdag/argusd/infrastructure/config"
	infrastructuredatabase "github.com/argusdag/argusd/infrastructure/db/database"
	"github.com/argusdag/argusd/infrastructure/db/database/bolt"
	"github.com/argusdag/argusd/infrastructure/db/database/ldb"
	"github.com/argusdag/argusd/infrastructure/logger"
	"github.com/argusdag/argusd/infrastructure/os/signal"
	"github.com/argusdag/argusd/util/panics"
	"github.com/argusdag/argusd/util/profiling"
	"github.com/argusdag/argusd/version"
	"github.com/pkg/errors"
)

const (
	leveldbCacheSizeMiB = 256
	boltFileName        = "argus.db"
)

type argusdApp struct {
	cfg *config.Config
}

// StartApp starts the argusd app, and blocks until it finishes running
func StartApp() error {
	// Load configuration and parse command line. This function also
	// initializes logging and configures it accordingly.
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	logger.InitLog(cfg.LogFile(), cfg.ErrLogFile())
	err = logger.ParseAndSetLogLevels(cfg.DebugLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		logger.BackendLog.Close()
		return err
	}
	defer logger.BackendLog.Close()
	defer panics.HandlePanic(log, "MAIN", nil)

	app := &argusdApp{cfg: cfg}
	return app.main(nil)
}

func (app *argusdApp) main(startedChan chan<- struct{}) error {
	// Get a channel that will be closed when a shutdown signal has been
	// triggered either from an OS signal such as SIGINT (Ctrl+C) or from
	// another subsystem such as the RPC server.
	interrupt := signal.InterruptListener()
	defer log.Info("Shutdown complete")

	// Show version at startup.
	log.Infof("Version %s", version.Version())
	log.Infof("Using %s with k=%d", app.cfg.ActiveNetParams.Name, app.cfg.K)

	// Enable http profiling server if requested.
	if app.cfg.ProfileListen != "" {
		profiling.Start(app.cfg.ProfileListen, log)
	}

	// Return now if an interrupt signal was triggered.
	if interruptRequested(interrupt) {
		return nil
	}

	// Open the database
	databaseContext, err := openDB(app.cfg)
	if err != nil {
		log.Errorf("Loading database failed: %+v", err)
		return err
	}
	defer func() {
		if databaseContext == nil {
			return
		}
		log.Infof("Gracefully shutting down the database...")
		err := databaseContext.Close()
		if err != nil {
			log.Errorf("Failed to close the database: %s", err)
		}
	}()

	// Return now if an interrupt signal was triggered.
	if interruptRequested(interrupt) {
		return nil
	}

	// Create componentManager and start it.
	componentManager, err := NewComponentManager(app.cfg, databaseContext)
	if err != nil {
		log.Errorf("Unable to start argusd: %+v", err)
		return err
	}

	defer func() {
		log.Infof("Gracefully shutting down argusd...")

		shutdownDone := make(chan struct{})
		spawn("argusdApp.main-componentManager.Stop", func() {
			componentManager.Stop()
			shutdownDone <- struct{}{}
		})

		const shutdownTimeout = 2 * time.Minute

		select {
		case <-shutdownDone:
		case <-time.After(shutdownTimeout):
			log.Criticalf("Graceful shutdown timed out %s. Terminating...", shutdownTimeout)
		}
		log.Infof("argusd shutdown complete")
	}()

	componentManager.Start()

	if startedChan != nil {
		startedChan <- struct{}{}
	}

	// Wait until the interrupt signal is received from an OS signal or
	// shutdown is requested through one of the subsystems such as the RPC
	// server.
	<-interrupt
	return nil
}

// openDB opens the database backend selected by cfg.DbType. A nil database
// with a nil error means the DAG is kept in memory only.
func openDB(cfg *config.Config) (infrastructuredatabase.Database, error) {
	if cfg.DbType == config.DbTypeMemory {
		log.Warnf("Using an in-memory database. The DAG will be lost on shutdown")
		return nil, nil
	}

	dbPath := cfg.DatabasePath()
	err := os.MkdirAll(dbPath, 0700)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create the database directory %s", dbPath)
	}
	err = checkDatabaseVersion(dbPath)
	if err != nil {
		return nil, err
	}

	log.Infof("Loading %s database from '%s'", cfg.DbType, dbPath)
	switch cfg.DbType {
	case config.DbTypeLevelDB:
		return ldb.NewLevelDB(dbPath, leveldbCacheSizeMiB)
	case config.DbTypeBolt:
		return bolt.NewBoltDB(filepath.Join(dbPath, boltFileName))
	default:
		return nil, errors.Errorf("unknown database type %s", cfg.DbType)
	}
}

// interruptRequested returns true when the channel returned by
// InterruptListener was closed. This simplifies early shutdown slightly since
// the caller can just use an if statement instead of a select.
func interruptRequested(interrupted <-chan struct{}) bool {
	select {
	case <-interrupted:
		return true
	default:
	}

	return false
}
