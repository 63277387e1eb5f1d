package main

import (
	"testing"

	"github.com/argusdag/argusd/app/appmessage"
	"github.com/stretchr/testify/require"
)

func TestParseCommandLine(t *testing.T) {
	cfg, subCommand, subConfig, err := parseCommandLine([]string{"--rpcserver=10.0.0.1:1", "submit", "1000", "aa", "bb"})
	require.NoError(t, err)
	require.Equal(t, "10.0.0.1:1", cfg.RPCServer)
	require.Equal(t, defaultStreamServer, cfg.StreamServer)
	require.Equal(t, submitSubCmd, subCommand)
	submitConf := subConfig.(*submitConfig)
	require.EqualValues(t, 1000, submitConf.Args.Timestamp)
	require.Equal(t, []string{"aa", "bb"}, submitConf.Args.Parents)

	_, subCommand, subConfig, err = parseCommandLine([]string{"order", "--from", "aa", "bb"})
	require.NoError(t, err)
	require.Equal(t, orderSubCmd, subCommand)
	require.Equal(t, "aa", subConfig.(*orderConfig).From)
	require.Equal(t, "bb", subConfig.(*orderConfig).Args.To)

	_, _, subConfig, err = parseCommandLine([]string{"snapshot"})
	require.NoError(t, err)
	require.Equal(t, appmessage.DefaultSnapshotSize, subConfig.(*snapshotConfig).Args.N)

	_, _, subConfig, err = parseCommandLine([]string{"snapshot", "7"})
	require.NoError(t, err)
	require.Equal(t, 7, subConfig.(*snapshotConfig).Args.N)
}

func TestParseCommandLineErrors(t *testing.T) {
	tests := [][]string{
		{},
		{"submit", "1000"},
		{"block"},
		{"range", "1"},
		{"no-such-command"},
	}
	for _, args := range tests {
		_, _, _, err := parseCommandLine(args)
		require.Error(t, err, "args %v", args)
	}
}
