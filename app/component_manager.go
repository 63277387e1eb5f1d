package app

import (
	"sync/atomic"

	"github.com/argusdag/argusd/app/rpc"
	"github.com/argusdag/argusd/domain"
	"github.com/argusdag/argusd/domain/consensus"
	"github.com/argusdag/argusd/infrastructure/config"
	infrastructuredatabase "github.com/argusdag/argusd/infrastructure/db/database"
	"github.com/argusdag/argusd/infrastructure/metrics"
	"github.com/argusdag/argusd/infrastructure/network/grpcserver"
	"github.com/argusdag/argusd/infrastructure/network/jsonrpcserver"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ComponentManager is a wrapper for all the argusd services
type ComponentManager struct {
	cfg           *config.Config
	domain        domain.Domain
	rpcManager    *rpc.Manager
	rpcServer     *jsonrpcserver.Server
	streamServer  *grpcserver.GRPCServer
	metricsServer *metrics.Server

	started, shutdown int32
}

// Start launches all the argusd services.
func (a *ComponentManager) Start() {
	// Already started?
	if atomic.AddInt32(&a.started, 1) != 1 {
		return
	}

	log.Trace("Starting argusd")

	if a.metricsServer != nil {
		a.metricsServer.Start()
	}
	a.streamServer.Start()
	a.rpcServer.Start()
}

// Stop gracefully shuts down all the argusd services, in the reverse order of Start.
func (a *ComponentManager) Stop() {
	// Make sure this only happens once.
	if atomic.AddInt32(&a.shutdown, 1) != 1 {
		log.Infof("argusd is already in the process of shutting down")
		return
	}

	log.Warnf("argusd shutting down")

	err := a.rpcServer.Stop()
	if err != nil {
		log.Errorf("Error stopping the RPC server: %+v", err)
	}

	// Open notification streams must end before the stream server can
	// stop gracefully.
	a.rpcManager.Close()

	stopGroup := errgroup.Group{}
	stopGroup.Go(func() error {
		return errors.Wrap(a.streamServer.Stop(), "error stopping the stream server")
	})
	if a.metricsServer != nil {
		stopGroup.Go(func() error {
			return errors.Wrap(a.metricsServer.Stop(), "error stopping the metrics server")
		})
	}
	err = stopGroup.Wait()
	if err != nil {
		log.Errorf("%+v", err)
	}
}

// NewComponentManager returns a new ComponentManager instance.
// Use Start() to begin all services within this ComponentManager
func NewComponentManager(cfg *config.Config, db infrastructuredatabase.Database) (*ComponentManager, error) {
	consensusConfig := consensus.Config{
		Params: *cfg.ActiveNetParams,
	}

	domain, err := domain.New(&consensusConfig, db)
	if err != nil {
		return nil, err
	}
	virtualInfo, err := domain.Consensus().GetVirtualInfo()
	if err != nil {
		return nil, err
	}
	metrics.SetVirtual(virtualInfo)

	rpcManager := rpc.NewManager(domain)

	componentManager := &ComponentManager{
		cfg:        cfg,
		domain:     domain,
		rpcManager: rpcManager,
	}

	bindGroup := errgroup.Group{}
	bindGroup.Go(func() error {
		var err error
		componentManager.rpcServer, err = jsonrpcserver.NewServer(cfg.RPCListen, rpcManager.Assigner())
		return err
	})
	bindGroup.Go(func() error {
		var err error
		componentManager.streamServer, err = grpcserver.NewGRPCServer(cfg.StreamListen, rpcManager)
		return err
	})
	if cfg.MetricsListen != "" {
		bindGroup.Go(func() error {
			var err error
			componentManager.metricsServer, err = metrics.NewServer(cfg.MetricsListen)
			return err
		})
	}
	err = bindGroup.Wait()
	if err != nil {
		componentManager.releaseListeners()
		return nil, err
	}

	return componentManager, nil
}

// releaseListeners frees the addresses bound before another listener failed to bind
func (a *ComponentManager) releaseListeners() {
	var stoppers []func() error
	if a.rpcServer != nil {
		stoppers = append(stoppers, a.rpcServer.Stop)
	}
	if a.streamServer != nil {
		stoppers = append(stoppers, a.streamServer.Stop)
	}
	if a.metricsServer != nil {
		stoppers = append(stoppers, a.metricsServer.Stop)
	}
	for _, stop := range stoppers {
		err := stop()
		if err != nil {
			log.Warnf("Error releasing a listener: %s", err)
		}
	}
}

// Domain returns the Domain associated with this ComponentManager
func (a *ComponentManager) Domain() domain.Domain {
	return a.domain
}

// RPCAddress returns the address the JSON-RPC server is bound to
func (a *ComponentManager) RPCAddress() string {
	return a.rpcServer.Address()
}

// StreamAddress returns the address the gRPC stream server is bound to
func (a *ComponentManager) StreamAddress() string {
	return a.streamServer.Address()
}
