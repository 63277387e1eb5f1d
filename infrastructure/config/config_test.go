package config

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/argusdag/argusd/domain/consensus/model/externalapi"
	"github.com/argusdag/argusd/domain/dagconfig"
	"github.com/stretchr/testify/require"
)

func testArgs(t *testing.T, args ...string) []string {
	appDir := t.TempDir()
	return append([]string{
		"--appdir=" + appDir,
		"--logdir=" + filepath.Join(appDir, "logs"),
		"--configfile=" + filepath.Join(appDir, "missing.conf"),
	}, args...)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(testArgs(t))
	require.NoError(t, err)

	require.Equal(t, int(dagconfig.DefaultK), cfg.K)
	require.Equal(t, dagconfig.DefaultK, cfg.ActiveNetParams.K)
	require.Equal(t, dagconfig.MainnetParams.Name, cfg.ActiveNetParams.Name)
	require.Equal(t, defaultRPCListen, cfg.RPCListen)
	require.Equal(t, defaultStreamListen, cfg.StreamListen)
	require.Empty(t, cfg.MetricsListen)
	require.Equal(t, DbTypeLevelDB, cfg.DbType)
	require.Equal(t, dagconfig.MainnetParams.Name, filepath.Base(cfg.AppDir))
	require.Equal(t, filepath.Join(cfg.AppDir, "data", DbTypeLevelDB), cfg.DatabasePath())
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := loadConfig(testArgs(t, "--k=10", "--dbtype=bolt", "--genesistimestamp=42",
		"--metricslisten=127.0.0.1:9294", "--debuglevel=BDAG=debug,RPCS=trace"))
	require.NoError(t, err)

	require.Equal(t, 10, cfg.K)
	require.EqualValues(t, 10, cfg.ActiveNetParams.K)
	require.Equal(t, DbTypeBolt, cfg.DbType)
	require.Equal(t, "127.0.0.1:9294", cfg.MetricsListen)
	require.Equal(t, dagconfig.MainnetParams.WithGenesisTimestamp(42).GenesisHash, cfg.ActiveNetParams.GenesisHash)
	require.NotEqual(t, dagconfig.MainnetParams.GenesisHash, cfg.ActiveNetParams.GenesisHash)
}

func TestLoadConfigNetworkDefaultK(t *testing.T) {
	cfg, err := loadConfig(testArgs(t, "--simnet"))
	require.NoError(t, err)
	require.Equal(t, 0, cfg.K)
	require.Equal(t, dagconfig.SimnetParams.Name, cfg.ActiveNetParams.Name)

	cfg, err = loadConfig(testArgs(t, "--simnet", "--k=5"))
	require.NoError(t, err)
	require.Equal(t, 5, cfg.K)
}

func TestLoadConfigFile(t *testing.T) {
	appDir := t.TempDir()
	configFile := filepath.Join(appDir, "argusd.conf")
	require.NoError(t, os.WriteFile(configFile, []byte("[Application Options]\nk=7\nrpclisten=127.0.0.1:1111\n"), 0600))

	args := []string{"--appdir=" + appDir, "--logdir=" + appDir, "--configfile=" + configFile}
	cfg, err := loadConfig(args)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.K)
	require.Equal(t, "127.0.0.1:1111", cfg.RPCListen)

	// The command line takes precedence over the config file
	cfg, err = loadConfig(append(args, "--k=9"))
	require.NoError(t, err)
	require.Equal(t, 9, cfg.K)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "k above max", args: []string{"--k=" + strconv.Itoa(int(externalapi.MaxK)+1)}},
		{name: "negative k", args: []string{"--k=-2"}},
		{name: "unknown db type", args: []string{"--dbtype=postgres"}},
		{name: "empty rpc listen", args: []string{"--rpclisten="}},
		{name: "malformed stream listen", args: []string{"--streamlisten=localhost"}},
		{name: "malformed metrics listen", args: []string{"--metricslisten=9294"}},
		{name: "bad debug level", args: []string{"--debuglevel=loud"}},
		{name: "bad subsystem pair", args: []string{"--debuglevel=BDAG"}},
		{name: "multiple networks", args: []string{"--simnet", "--devnet"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := loadConfig(testArgs(t, test.args...))
			require.Error(t, err)
		})
	}
}

func TestCreateDefaultConfigFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "nested", "argusd.conf")
	require.NoError(t, createDefaultConfigFile(configFile))

	content, err := os.ReadFile(configFile)
	require.NoError(t, err)
	require.Contains(t, string(content), "; rpclisten=")
	require.NotContains(t, string(content), "; configfile=")
}

func TestCleanAndExpandPath(t *testing.T) {
	t.Setenv("ARGUS_TEST_DIR", "/tmp/argus")
	require.Equal(t, "/tmp/argus/data", cleanAndExpandPath("$ARGUS_TEST_DIR/./data"))
	require.Equal(t, filepath.Join(filepath.Dir(DefaultAppDir), "x"), cleanAndExpandPath("~/x"))
}
