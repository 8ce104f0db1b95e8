// Package proto describes the netconf.Netconf gRPC service over well-known
// protobuf types, so no generated code is needed on either side.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "netconf.Netconf"

	MethodOpenSession  = "/" + ServiceName + "/OpenSession"
	MethodCloseSession = "/" + ServiceName + "/CloseSession"
	MethodDeleteConfig = "/" + ServiceName + "/DeleteConfig"
)

// NetconfServer is the server API of the netconf.Netconf service.
type NetconfServer interface {
	OpenSession(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	CloseSession(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	DeleteConfig(context.Context, *structpb.Struct) (*emptypb.Empty, error)
}

func RegisterNetconfServer(s grpc.ServiceRegistrar, srv NetconfServer) {
	s.RegisterService(&NetconfServiceDesc, srv)
}

func openSessionHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NetconfServer).OpenSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodOpenSession}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NetconfServer).OpenSession(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func closeSessionHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NetconfServer).CloseSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodCloseSession}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NetconfServer).CloseSession(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func deleteConfigHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NetconfServer).DeleteConfig(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodDeleteConfig}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NetconfServer).DeleteConfig(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var NetconfServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NetconfServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "OpenSession", Handler: openSessionHandler},
		{MethodName: "CloseSession", Handler: closeSessionHandler},
		{MethodName: "DeleteConfig", Handler: deleteConfigHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "netconf.proto",
}

// NetconfClient calls the netconf.Netconf service.
type NetconfClient struct {
	cc grpc.ClientConnInterface
}

func NewNetconfClient(cc grpc.ClientConnInterface) *NetconfClient {
	return &NetconfClient{cc: cc}
}

func (c *NetconfClient) OpenSession(ctx context.Context, opts ...grpc.CallOption) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, MethodOpenSession, &emptypb.Empty{}, out, opts...); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

func (c *NetconfClient) CloseSession(ctx context.Context, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, MethodCloseSession, &emptypb.Empty{}, new(emptypb.Empty), opts...)
}

func (c *NetconfClient) DeleteConfig(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, MethodDeleteConfig, req, new(emptypb.Empty), opts...)
}
