package rpcclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/argusdag/argusd/app/appmessage"
	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/pkg/errors"
)

const (
	defaultTimeout = 30 * time.Second
	dialTimeout    = 10 * time.Second
)

// RPCClient is a JSON-RPC client of an argusd node
type RPCClient struct {
	client     *jrpc2.Client
	rpcAddress string
	timeout    time.Duration
}

// NewRPCClient creates a new RPC client
func NewRPCClient(rpcAddress string) (*RPCClient, error) {
	connection, err := net.DialTimeout("tcp", rpcAddress, dialTimeout)
	if err != nil {
		return nil, errors.Wrapf(err, "error connecting to address %s", rpcAddress)
	}
	client := jrpc2.NewClient(channel.RawJSON(connection, connection), nil)

	log.Debugf("Connected to server %s", rpcAddress)

	return &RPCClient{
		client:     client,
		rpcAddress: rpcAddress,
		timeout:    defaultTimeout,
	}, nil
}

// SetTimeout sets the timeout by which to wait for RPC responses
func (c *RPCClient) SetTimeout(timeout time.Duration) {
	c.timeout = timeout
}

// Close closes the RPC client
func (c *RPCClient) Close() error {
	return c.client.Close()
}

// Address returns the address the RPC client connected to
func (c *RPCClient) Address() string {
	return c.rpcAddress
}

// ErrRPC is an error in the RPC protocol
var ErrRPC = errors.New("rpc error")

// RPCError is an error response from the RPC server.
// errors.Is(err, ErrRPC) holds for every RPCError.
type RPCError struct {
	Code    int
	Message string
	Data    json.RawMessage
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s: %s (code %d)", ErrRPC, e.Message, e.Code)
}

// Is makes errors.Is(err, ErrRPC) true for every RPCError
func (e *RPCError) Is(target error) bool {
	return target == ErrRPC
}

func (c *RPCClient) convertRPCError(err error) error {
	var jrpc2Error *jrpc2.Error
	if !errors.As(err, &jrpc2Error) {
		return err
	}
	return errors.WithStack(&RPCError{
		Code:    int(jrpc2Error.Code),
		Message: jrpc2Error.Message,
		Data:    jrpc2Error.Data,
	})
}

func (c *RPCClient) call(command appmessage.MessageCommand, params any, result any) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	err := c.client.CallResult(ctx, command.String(), params, result)
	if err != nil {
		return c.convertRPCError(err)
	}
	return nil
}
