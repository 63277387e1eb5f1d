// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/infrastructure/logger"
	"github.com/argusdag/argusd/version"
	"github.com/btcsuite/btcutil"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// Supported database types
const (
	DbTypeLevelDB = "leveldb"
	DbTypeBolt    = "bolt"
	DbTypeMemory  = "memory"
)

const (
	defaultConfigFilename  = "argusd.conf"
	defaultDataDirname     = "data"
	defaultLogLevel        = "info"
	defaultLogDirname      = "logs"
	defaultLogFilename     = "argusd.log"
	defaultErrLogFilename  = "argusd_err.log"
	defaultRPCListen       = "127.0.0.1:9293"
	defaultStreamListen    = "127.0.0.1:9292"
	defaultDbType          = DbTypeLevelDB
	networkDefaultK        = -1
	sampleConfigFileHeader = "; argusd configuration file. Command line options take precedence.\n"
)

var (
	// DefaultAppDir is the default home directory for argusd.
	DefaultAppDir = btcutil.AppDataDir("argusd", false)

	defaultConfigFile = filepath.Join(DefaultAppDir, defaultConfigFilename)
	defaultLogDir     = filepath.Join(DefaultAppDir, defaultLogDirname)
	knownDbTypes      = []string{DbTypeLevelDB, DbTypeBolt, DbTypeMemory}
)

// Flags defines the configuration options for argusd.
//
// See loadConfig for details on the configuration load process.
type Flags struct {
	ShowVersion      bool   `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile       string `short:"C" long:"configfile" description:"Path to configuration file"`
	AppDir           string `short:"b" long:"appdir" description:"Directory to store data"`
	LogDir           string `long:"logdir" description:"Directory to log output."`
	DebugLevel       string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	K                int    `short:"k" long:"k" description:"GHOSTDAG anticone bound of the DAG (default: the network's k, 3 on mainnet). Fixed for the lifetime of the database"`
	RPCListen        string `long:"rpclisten" description:"Interface/port to listen for JSON-RPC connections"`
	StreamListen     string `long:"streamlisten" description:"Interface/port to listen for gRPC notification streams"`
	MetricsListen    string `long:"metricslisten" description:"Interface/port to serve Prometheus metrics on (disabled if empty)"`
	DbType           string `long:"dbtype" description:"Database backend {leveldb, bolt, memory}"`
	GenesisTimestamp int64  `long:"genesistimestamp" description:"Timestamp of the genesis block, for running a DAG separate from the network's"`
	ProfileListen    string `long:"profile" description:"Enable HTTP profiling on given interface/port"`
	NetworkFlags
}

// Config defines the configuration options for argusd.
//
// See loadConfig for details on the configuration load process.
type Config struct {
	*Flags
}

// DatabasePath returns the path of the database directory for the configured DbType
func (cfg *Config) DatabasePath() string {
	return filepath.Join(cfg.AppDir, defaultDataDirname, cfg.DbType)
}

// LogFile returns the path of the main log file
func (cfg *Config) LogFile() string {
	return filepath.Join(cfg.LogDir, defaultLogFilename)
}

// ErrLogFile returns the path of the error log file
func (cfg *Config) ErrLogFile() string {
	return filepath.Join(cfg.LogDir, defaultErrLogFilename)
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(DefaultAppDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// validDbType returns whether or not dbType is a supported database type.
func validDbType(dbType string) bool {
	for _, knownType := range knownDbTypes {
		if dbType == knownType {
			return true
		}
	}
	return false
}

func defaultFlags() *Flags {
	return &Flags{
		ConfigFile:   defaultConfigFile,
		AppDir:       DefaultAppDir,
		LogDir:       defaultLogDir,
		DebugLevel:   defaultLogLevel,
		K:            networkDefaultK,
		RPCListen:    defaultRPCListen,
		StreamListen: defaultStreamListen,
		DbType:       defaultDbType,
	}
}

// LoadConfig initializes and parses the config using a config file and command
// line options.
func LoadConfig() (*Config, error) {
	return loadConfig(os.Args[1:])
}

// loadConfig initializes and parses the config using a config file and the
// given command line arguments.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in argusd functioning properly without any config settings
// while still allowing the user to override settings with config files and
// command line options. Command line options always take precedence.
func loadConfig(args []string) (*Config, error) {
	cfgFlags := defaultFlags()

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified. Any errors aside from the
	// help message error can be ignored here since they will be caught by
	// the final parse below.
	preCfg := *cfgFlags
	preParser := flags.NewParser(&preCfg, flags.HelpFlag)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
			return nil, err
		}
	}

	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	usageMessage := fmt.Sprintf("Use %s -h to show usage", appName)
	if preCfg.ShowVersion {
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	parser := flags.NewParser(cfgFlags, flags.Default)
	cfg := &Config{
		Flags: cfgFlags,
	}

	preCfg.ConfigFile = cleanAndExpandPath(preCfg.ConfigFile)
	if _, err := os.Stat(preCfg.ConfigFile); os.IsNotExist(err) {
		if preCfg.ConfigFile == cleanAndExpandPath(defaultConfigFile) {
			err := createDefaultConfigFile(preCfg.ConfigFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating a default config file: %s\n", err)
			}
		}
	}
	err = flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
	if err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			fmt.Fprintf(os.Stderr, "Error parsing config file: %s\n", err)
			fmt.Fprintln(os.Stderr, usageMessage)
			return nil, err
		}
		log.Debugf("No config file at %s: %s", preCfg.ConfigFile, err)
	}

	// Parse command line options again to ensure they take precedence.
	_, err = parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if !errors.As(err, &flagsErr) || flagsErr.Type != flags.ErrHelp {
			fmt.Fprintln(os.Stderr, usageMessage)
		}
		return nil, err
	}

	err = cfg.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	err = cfg.resolveAndValidate()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usageMessage)
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) resolveAndValidate() error {
	funcName := "loadConfig"

	k := cfg.K
	if k == networkDefaultK {
		k = int(cfg.ActiveNetParams.K)
	}
	if k < 0 || k > int(externalapi.MaxK) {
		return errors.Errorf("%s: k must be between 0 and %d, got %d", funcName, externalapi.MaxK, k)
	}
	cfg.K = k
	params := cfg.ActiveNetParams.WithK(externalapi.KType(k))
	if cfg.GenesisTimestamp != 0 {
		params = params.WithGenesisTimestamp(cfg.GenesisTimestamp)
	}
	cfg.ActiveNetParams = params

	if !validDbType(cfg.DbType) {
		return errors.Errorf("%s: the specified database type [%s] is invalid -- supported types: %s",
			funcName, cfg.DbType, strings.Join(knownDbTypes, ", "))
	}

	for name, address := range map[string]string{"rpclisten": cfg.RPCListen, "streamlisten": cfg.StreamListen} {
		if address == "" {
			return errors.Errorf("%s: %s cannot be empty", funcName, name)
		}
		_, _, err := net.SplitHostPort(address)
		if err != nil {
			return errors.Errorf("%s: invalid %s address %s: %s", funcName, name, address, err)
		}
	}
	if cfg.MetricsListen != "" {
		_, _, err := net.SplitHostPort(cfg.MetricsListen)
		if err != nil {
			return errors.Errorf("%s: invalid metricslisten address %s: %s", funcName, cfg.MetricsListen, err)
		}
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", logger.SupportedSubsystems())
		os.Exit(0)
	}
	err := validateDebugLevel(cfg.DebugLevel)
	if err != nil {
		return errors.Wrap(err, funcName)
	}

	// Namespace the app and log directories per network so separate DAGs
	// never share a database.
	cfg.AppDir = filepath.Join(cleanAndExpandPath(cfg.AppDir), cfg.ActiveNetParams.Name)
	cfg.LogDir = filepath.Join(cleanAndExpandPath(cfg.LogDir), cfg.ActiveNetParams.Name)
	return nil
}

// validateDebugLevel checks the debug level syntax without applying it
func validateDebugLevel(debugLevel string) error {
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		if !logger.ValidateLogLevel(debugLevel) {
			return errors.Errorf("the specified debug level [%s] is invalid", debugLevel)
		}
		return nil
	}
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		fields := strings.Split(logLevelPair, "=")
		if len(fields) != 2 || fields[0] == "" {
			return errors.Errorf("the specified debug level contains an invalid "+
				"subsystem/level pair [%s]", logLevelPair)
		}
		if !logger.ValidateLogLevel(fields[1]) {
			return errors.Errorf("the specified debug level [%s] is invalid", fields[1])
		}
	}
	return nil
}

// createDefaultConfigFile creates a config file at the given path listing
// every option with its default value, commented out.
func createDefaultConfigFile(destinationPath string) error {
	err := os.MkdirAll(filepath.Dir(destinationPath), 0700)
	if err != nil {
		return err
	}

	var builder strings.Builder
	builder.WriteString(sampleConfigFileHeader)
	builder.WriteString("\n[Application Options]\n")
	parser := flags.NewParser(defaultFlags(), flags.None)
	for _, option := range parser.Command.Options() {
		if option.LongName == "configfile" || option.LongName == "version" {
			continue
		}
		fmt.Fprintf(&builder, "\n; %s\n; %s=\n", option.Description, option.LongName)
	}

	return os.WriteFile(destinationPath, []byte(builder.String()), 0600)
}
