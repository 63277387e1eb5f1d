package jsonrpcserver

import (
	"net"
	"sync"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/pkg/errors"
)

// Server serves JSON-RPC 2.0 over raw TCP. Every accepted connection gets
// its own jrpc2 server, and requests are framed as consecutive JSON values.
type Server struct {
	listener net.Listener
	assigner jrpc2.Assigner
	options  *jrpc2.ServerOptions

	lock        sync.Mutex
	connections map[*jrpc2.Server]struct{}
	stopped     bool
	waitGroup   sync.WaitGroup
}

// NewServer binds a JSON-RPC server to listenAddress. Call Start to begin serving.
func NewServer(listenAddress string, assigner jrpc2.Assigner) (*Server, error) {
	listener, err := net.Listen("tcp", listenAddress)
	if err != nil {
		return nil, errors.Wrapf(err, "JSON-RPC server error listening on %s", listenAddress)
	}
	return &Server{
		listener: listener,
		assigner: assigner,
		options: &jrpc2.ServerOptions{
			Logger: func(text string) {
				log.Tracef("jrpc2: %s", text)
			},
		},
		connections: make(map[*jrpc2.Server]struct{}),
	}, nil
}

// Address returns the address the server listens on
func (s *Server) Address() string {
	return s.listener.Addr().String()
}

// Start accepts connections in the background
func (s *Server) Start() {
	spawn("jsonrpcserver.Server.acceptConnections", s.acceptConnections)
	log.Infof("JSON-RPC server listening on %s", s.listener.Addr())
}

func (s *Server) acceptConnections() {
	for {
		connection, err := s.listener.Accept()
		if err != nil {
			if s.isStopped() || errors.Is(err, net.ErrClosed) {
				return
			}
			log.Warnf("Error accepting a JSON-RPC connection: %s", err)
			continue
		}
		s.serve(connection)
	}
}

func (s *Server) serve(connection net.Conn) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.stopped {
		_ = connection.Close()
		return
	}

	server := jrpc2.NewServer(s.assigner, s.options).Start(channel.RawJSON(connection, connection))
	s.connections[server] = struct{}{}
	s.waitGroup.Add(1)
	log.Debugf("Accepted a JSON-RPC connection from %s", connection.RemoteAddr())

	spawn("jsonrpcserver.Server.serve", func() {
		defer s.waitGroup.Done()

		err := server.Wait()
		if err != nil {
			log.Debugf("JSON-RPC connection from %s closed: %s", connection.RemoteAddr(), err)
		}

		s.lock.Lock()
		defer s.lock.Unlock()
		delete(s.connections, server)
	})
}

func (s *Server) isStopped() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.stopped
}

// ConnectionCount returns the number of open connections
func (s *Server) ConnectionCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.connections)
}

// Stop closes the listener and every open connection, and waits for
// in-flight requests to finish
func (s *Server) Stop() error {
	s.lock.Lock()
	s.stopped = true
	servers := make([]*jrpc2.Server, 0, len(s.connections))
	for server := range s.connections {
		servers = append(servers, server)
	}
	s.lock.Unlock()

	err := s.listener.Close()
	for _, server := range servers {
		server.Stop()
	}
	s.waitGroup.Wait()
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return errors.Wrap(err, "error closing the JSON-RPC listener")
	}
	return nil
}
