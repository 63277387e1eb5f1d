package grpcserver

import (
	"net"
	"time"

	"github.com/argusdag/argusd/util/panics"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
)

// MaxMessageSize is the max message size for the stream server to send and receive
const MaxMessageSize = 16 * 1024 * 1024

// GRPCServer serves the argus.StreamService over gRPC
type GRPCServer struct {
	listener net.Listener
	server   *grpc.Server
}

// NewGRPCServer binds a gRPC server serving service to listenAddress.
// Call Start to begin serving.
func NewGRPCServer(listenAddress string, service StreamService) (*GRPCServer, error) {
	listener, err := net.Listen("tcp", listenAddress)
	if err != nil {
		return nil, errors.Wrapf(err, "stream server error listening on %s", listenAddress)
	}

	server := grpc.NewServer(grpc.MaxRecvMsgSize(MaxMessageSize), grpc.MaxSendMsgSize(MaxMessageSize))
	server.RegisterService(&streamServiceDesc, service)
	log.Debugf("Created new stream server with maxMessageSize %d", MaxMessageSize)

	return &GRPCServer{
		listener: listener,
		server:   server,
	}, nil
}

// Address returns the address the server listens on
func (s *GRPCServer) Address() string {
	return s.listener.Addr().String()
}

// Start serves in the background
func (s *GRPCServer) Start() {
	spawn("grpcserver.GRPCServer.Start-Serve", func() {
		err := s.server.Serve(s.listener)
		if err != nil {
			panics.Exit(log, errors.Wrapf(err, "error serving streams on %s", s.listener.Addr()).Error())
		}
	})
	log.Infof("Stream server listening on %s", s.listener.Addr())
}

// Stop stops the server gracefully, or forcefully if open streams don't end in time
func (s *GRPCServer) Stop() error {
	const stopTimeout = 2 * time.Second

	stopChan := make(chan interface{})
	spawn("grpcserver.GRPCServer.Stop", func() {
		s.server.GracefulStop()
		close(stopChan)
	})

	select {
	case <-stopChan:
	case <-time.After(stopTimeout):
		log.Warnf("Could not gracefully stop the stream server: timed out after %s", stopTimeout)
		s.server.Stop()
		<-stopChan
	}
	// The listener is only owned by the grpc server once Serve was called
	err := s.listener.Close()
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return errors.Wrap(err, "error closing the stream listener")
	}
	return nil
}
