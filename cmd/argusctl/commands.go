package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/argusdag/argusd/app/appmessage"
	"github.com/argusdag/argusd/infrastructure/network/rpcclient"
	"github.com/argusdag/argusd/infrastructure/os/signal"
	"github.com/pkg/errors"
)

// rpcClient is the part of rpcclient.RPCClient that argusctl commands use
type rpcClient interface {
	SubmitBlock(parents []string, timestamp int64) (*appmessage.SubmitBlockResponse, error)
	GetBlock(hash string) (*appmessage.GetBlockResponse, error)
	GetTips() (*appmessage.GetTipsResponse, error)
	GetOrder(from string, to string) (*appmessage.OrderResponse, error)
	GetTipOrder() (*appmessage.GetTipOrderResponse, error)
	LinearizeRange(fromScore uint64, toScore uint64) (*appmessage.OrderResponse, error)
	GetSnapshot(n int) (*appmessage.GetSnapshotResponse, error)
	GetHealth() (*appmessage.GetHealthResponse, error)
}

// errUnhealthy is returned by check when the node answers but isn't healthy
var errUnhealthy = errors.New("node is unhealthy")

func runCommand(client rpcClient, subCommand string, subConfig interface{}) (interface{}, error) {
	switch subCommand {
	case checkSubCmd:
		return check(client)
	case tipsSubCmd:
		return client.GetTips()
	case blockSubCmd:
		return client.GetBlock(subConfig.(*blockConfig).Args.Hash)
	case submitSubCmd:
		conf := subConfig.(*submitConfig)
		return client.SubmitBlock(conf.Args.Parents, conf.Args.Timestamp)
	case orderSubCmd:
		conf := subConfig.(*orderConfig)
		return client.GetOrder(conf.From, conf.Args.To)
	case tipOrderSubCmd:
		return client.GetTipOrder()
	case rangeSubCmd:
		conf := subConfig.(*rangeConfig)
		return client.LinearizeRange(conf.Args.From, conf.Args.To)
	case snapshotSubCmd:
		return client.GetSnapshot(subConfig.(*snapshotConfig).Args.N)
	default:
		return nil, errors.Errorf("unknown command '%s'", subCommand)
	}
}

func check(client rpcClient) (*appmessage.GetHealthResponse, error) {
	health, err := client.GetHealth()
	if err != nil {
		return nil, errors.Wrap(err, "node is unreachable")
	}
	if health.Status != appmessage.HealthStatusOK {
		return nil, errors.Wrapf(errUnhealthy, "status %s %s", health.Status, health.IntegrityFault)
	}
	return health, nil
}

func subscribe(cfg *configFlags) error {
	client, err := rpcclient.NewStreamClient(cfg.StreamServer)
	if err != nil {
		return errors.Wrap(err, "error connecting to the stream server")
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	interrupt := signal.InterruptListener()
	go func() {
		<-interrupt
		cancel()
	}()

	err = client.NotifyBlockAdded(ctx, func(notification *appmessage.BlockAddedNotification) error {
		notificationBytes, err := json.Marshal(notification)
		if err != nil {
			return errors.WithStack(err)
		}
		fmt.Printf("%s %s\n", time.Now().Format(time.RFC3339), notificationBytes)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
