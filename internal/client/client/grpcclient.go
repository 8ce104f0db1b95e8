// Package client talks to a netconfd server over gRPC.
package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/netconfd/internal/common"
	pb "github.com/dmitrijs2005/netconfd/internal/proto"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      *pb.NetconfClient
	accessToken string
	sessionID   string
}

// withMetadata sets key on the outgoing metadata, replacing any earlier value.
func withMetadata(ctx context.Context, key, value string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Set(key, value)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) credentialsInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	ctx = withMetadata(ctx, common.AccessTokenHeaderName, s.accessToken)
	if s.sessionID != "" {
		ctx = withMetadata(ctx, common.SessionIDHeaderName, s.sessionID)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewNetconfClientService dials endpointURL. Extra dial options are appended
// after the defaults.
func NewNetconfClientService(endpointURL, accessToken string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.credentialsInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewNetconfClient(conn)
	return c, nil
}

func (s *GRPCClient) SessionID() string {
	return s.sessionID
}

func (s *GRPCClient) OpenSession(ctx context.Context) error {
	id, err := s.client.OpenSession(ctx)
	if err != nil {
		return s.mapError(err)
	}
	s.sessionID = id
	return nil
}

func (s *GRPCClient) CloseSession(ctx context.Context) error {
	if s.sessionID == "" {
		return ErrNoSession
	}
	if err := s.client.CloseSession(ctx); err != nil {
		return s.mapError(err)
	}
	s.sessionID = ""
	return nil
}

// DeleteConfig wipes the startup datastore, or validates the document at
// url when url is not empty.
func (s *GRPCClient) DeleteConfig(ctx context.Context, target string, url string) error {
	if s.sessionID == "" {
		return ErrNoSession
	}

	var value any
	if url != "" {
		value = url
	}
	req, err := structpb.NewStruct(map[string]any{"target": map[string]any{target: value}})
	if err != nil {
		return err
	}

	if err := s.client.DeleteConfig(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)

	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == "netconf" {
			reply := &ReplyError{
				Kind:    info.GetReason(),
				Tag:     info.GetMetadata()["error-tag"],
				Message: st.Message(),
			}
			for _, d := range st.Details() {
				if lm, ok := d.(*errdetails.LocalizedMessage); ok {
					reply.Message = lm.GetMessage()
					reply.Lang = lm.GetLocale()
				}
			}
			return reply
		}
	}

	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
