package main

import (
	"github.com/argusdag/argusd/app/appmessage"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	checkSubCmd     = "check"
	tipsSubCmd      = "tips"
	blockSubCmd     = "block"
	submitSubCmd    = "submit"
	orderSubCmd     = "order"
	tipOrderSubCmd  = "tip-order"
	rangeSubCmd     = "range"
	snapshotSubCmd  = "snapshot"
	subscribeSubCmd = "subscribe"
)

var (
	defaultRPCServer           = "127.0.0.1:9293"
	defaultStreamServer        = "127.0.0.1:9292"
	defaultTimeout      uint64 = 30
)

type configFlags struct {
	RPCServer    string `short:"s" long:"rpcserver" description:"RPC server to connect to"`
	StreamServer string `long:"streamserver" description:"Stream server to connect to, used by subscribe"`
	Timeout      uint64 `short:"t" long:"timeout" description:"Timeout for the request (in seconds)"`
}

type checkConfig struct{}

type tipsConfig struct{}

type blockConfig struct {
	Args struct {
		Hash string `positional-arg-name:"hash" required:"true"`
	} `positional-args:"yes"`
}

type submitConfig struct {
	Args struct {
		Timestamp int64    `positional-arg-name:"timestamp" required:"true"`
		Parents   []string `positional-arg-name:"parent" required:"1"`
	} `positional-args:"yes"`
}

type orderConfig struct {
	From string `long:"from" description:"Return only the part of the order after this block"`
	Args struct {
		To string `positional-arg-name:"to" required:"true"`
	} `positional-args:"yes"`
}

type tipOrderConfig struct{}

type rangeConfig struct {
	Args struct {
		From uint64 `positional-arg-name:"from" required:"true"`
		To   uint64 `positional-arg-name:"to" required:"true"`
	} `positional-args:"yes"`
}

type snapshotConfig struct {
	Args struct {
		N int `positional-arg-name:"n"`
	} `positional-args:"yes"`
}

type subscribeConfig struct{}

// parseCommandLine parses args into the global flags, the name of the
// selected sub-command and that sub-command's config
func parseCommandLine(args []string) (cfg *configFlags, subCommand string, subConfig interface{}, err error) {
	cfg = &configFlags{
		RPCServer:    defaultRPCServer,
		StreamServer: defaultStreamServer,
		Timeout:      defaultTimeout,
	}
	parser := flags.NewParser(cfg, flags.HelpFlag)
	parser.Usage = "argusctl [OPTIONS] <command> [COMMAND PARAMETERS]"

	subConfigs := map[string]interface{}{}
	addCommand := func(name, description string, data interface{}) {
		subConfigs[name] = data
		_, addErr := parser.AddCommand(name, description, description, data)
		if addErr != nil {
			panic(addErr)
		}
	}

	addCommand(checkSubCmd, "Checks the health of the node, failing when it's unreachable or faulted", &checkConfig{})
	addCommand(tipsSubCmd, "Lists the current tips with their blue scores", &tipsConfig{})
	addCommand(blockSubCmd, "Shows a block and its GHOSTDAG data", &blockConfig{})
	addCommand(submitSubCmd, "Submits a block with the given timestamp and parents", &submitConfig{})
	addCommand(orderSubCmd, "Shows the linear order of a block's past", &orderConfig{})
	addCommand(tipOrderSubCmd, "Shows the linear order of the whole DAG", &tipOrderConfig{})
	addCommand(rangeSubCmd, "Shows the blocks whose blue score is within [from, to)", &rangeConfig{})
	snapshotConf := &snapshotConfig{}
	snapshotConf.Args.N = appmessage.DefaultSnapshotSize
	addCommand(snapshotSubCmd, "Shows the most recently inserted blocks", snapshotConf)
	addCommand(subscribeSubCmd, "Prints a line for every block added to the DAG", &subscribeConfig{})

	_, err = parser.ParseArgs(args)
	if err != nil {
		return nil, "", nil, err
	}
	if parser.Active == nil {
		return nil, "", nil, errors.New("a command must be specified")
	}

	subCommand = parser.Active.Name
	return cfg, subCommand, subConfigs[subCommand], nil
}
