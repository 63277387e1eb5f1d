package metrics

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/argusdag/argusd/util/panics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 2 * time.Second

// Server exposes the registered metrics over HTTP at /metrics
type Server struct {
	listener   net.Listener
	httpServer *http.Server
}

// NewServer binds a metrics server to listenAddress. Call Start to begin serving.
func NewServer(listenAddress string) (*Server, error) {
	listener, err := net.Listen("tcp", listenAddress)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to listen on %s", listenAddress)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &Server{
		listener: listener,
		httpServer: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Address returns the address the server listens on
func (s *Server) Address() string {
	return s.listener.Addr().String()
}

// Start serves metrics in the background
func (s *Server) Start() {
	spawn("metrics.Server.Start", func() {
		log.Infof("Metrics server listening on %s", s.listener.Addr())
		err := s.httpServer.Serve(s.listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			panics.Exit(log, errors.Wrap(err, "metrics server failed").Error())
		}
	})
}

// Stop shuts the server down, waiting up to a short timeout for in-flight scrapes
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.httpServer.Shutdown(ctx)
	// Shutdown only closes the listener once Serve has picked it up
	closeErr := s.listener.Close()
	if err == nil && closeErr != nil && !errors.Is(closeErr, net.ErrClosed) {
		err = closeErr
	}
	return err
}
