package grpcserver

import (
	"context"

	"github.com/argusdag/argusd/app/appmessage"
	"google.golang.org/grpc"
)

// Service and method names of the block-added stream
const (
	ServiceName                = "argus.StreamService"
	NotifyBlockAddedStreamName = "NotifyBlockAdded"
)

// BlockAddedStream is the server side of a NotifyBlockAdded stream
type BlockAddedStream interface {
	Send(notification *appmessage.BlockAddedNotification) error
	Context() context.Context
}

// StreamService serves the argus.StreamService gRPC service
type StreamService interface {
	NotifyBlockAdded(request *appmessage.NotifyBlockAddedRequest, stream BlockAddedStream) error
}

type blockAddedStream struct {
	grpc.ServerStream
}

func (s *blockAddedStream) Send(notification *appmessage.BlockAddedNotification) error {
	return s.ServerStream.SendMsg(notification)
}

func notifyBlockAddedHandler(service any, stream grpc.ServerStream) error {
	request := &appmessage.NotifyBlockAddedRequest{}
	err := stream.RecvMsg(request)
	if err != nil {
		return err
	}
	return service.(StreamService).NotifyBlockAdded(request, &blockAddedStream{stream})
}

// NotifyBlockAddedStreamDesc describes the NotifyBlockAdded stream for clients
func NotifyBlockAddedStreamDesc() *grpc.StreamDesc {
	return &grpc.StreamDesc{
		StreamName:    NotifyBlockAddedStreamName,
		ServerStreams: true,
	}
}

var streamServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StreamService)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    NotifyBlockAddedStreamName,
			Handler:       notifyBlockAddedHandler,
			ServerStreams: true,
		},
	},
}
