package rpcclient

import (
	"context"
	"io"

	"github.com/argusdag/argusd/app/appmessage"
	"github.com/argusdag/argusd/infrastructure/network/grpcserver"
	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// StreamClient is a gRPC client of an argusd node's notification streams
type StreamClient struct {
	connection    *grpc.ClientConn
	streamAddress string
}

// NewStreamClient creates a new stream client. The connection is established lazily.
func NewStreamClient(streamAddress string) (*StreamClient, error) {
	connection, err := grpc.NewClient(streamAddress,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(
			grpc.CallContentSubtype(grpcserver.CodecName),
			grpc.MaxCallRecvMsgSize(grpcserver.MaxMessageSize)))
	if err != nil {
		return nil, errors.Wrapf(err, "error creating a stream client for %s", streamAddress)
	}
	return &StreamClient{
		connection:    connection,
		streamAddress: streamAddress,
	}, nil
}

// Close closes the stream client
func (c *StreamClient) Close() error {
	return c.connection.Close()
}

// Address returns the address of the stream server
func (c *StreamClient) Address() string {
	return c.streamAddress
}

// NotifyBlockAdded subscribes to block-added notifications and calls onBlockAdded
// for each one until ctx is done, the server ends the stream, or onBlockAdded fails.
// It returns nil when the server ends the stream.
func (c *StreamClient) NotifyBlockAdded(ctx context.Context,
	onBlockAdded func(notification *appmessage.BlockAddedNotification) error) error {

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := c.connection.NewStream(ctx, grpcserver.NotifyBlockAddedStreamDesc(),
		appmessage.CmdNotifyBlockAddedRequest.String())
	if err != nil {
		return errors.Wrapf(err, "error opening a block-added stream to %s", c.streamAddress)
	}
	err = stream.SendMsg(&appmessage.NotifyBlockAddedRequest{})
	if err != nil {
		return errors.Wrap(err, "error sending the block-added request")
	}
	err = stream.CloseSend()
	if err != nil {
		return errors.Wrap(err, "error closing the send side of the block-added stream")
	}

	for {
		notification := &appmessage.BlockAddedNotification{}
		err := stream.RecvMsg(notification)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Wrap(err, "error receiving a block-added notification")
		}
		err = onBlockAdded(notification)
		if err != nil {
			return err
		}
	}
}
