package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/argusdag/argusd/infrastructure/network/rpcclient"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

func main() {
	cfg, subCommand, subConfig, err := parseCommandLine(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(0)
		}
		printErrorAndExit(errors.Wrap(err, "error parsing command-line arguments"))
	}

	if subCommand == subscribeSubCmd {
		err := subscribe(cfg)
		if err != nil {
			printErrorAndExit(err)
		}
		return
	}

	client, err := rpcclient.NewRPCClient(cfg.RPCServer)
	if err != nil {
		printErrorAndExit(errors.Wrap(err, "error connecting to the RPC server"))
	}
	defer client.Close()
	client.SetTimeout(time.Duration(cfg.Timeout) * time.Second)

	response, err := runCommand(client, subCommand, subConfig)
	if err != nil {
		printErrorAndExit(err)
	}
	err = printJSON(response)
	if err != nil {
		printErrorAndExit(err)
	}
}

func printJSON(response interface{}) error {
	responseBytes, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return errors.Wrap(err, "error formatting the response")
	}
	fmt.Println(string(responseBytes))
	return nil
}

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
