package grpc

import (
	"context"

	"github.com/dmitrijs2005/netconfd/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func (s *GRPCServer) OpenSession(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {

	user, ok := UserFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	}

	sess, err := s.sessions.Open(ctx, user)
	if err != nil {
		s.logger.Error(ctx, "open session failed", "user", user, "error", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Session opened", "session", sess.ID(), "user", user)
	return wrapperspb.String(sess.ID()), nil
}

func (s *GRPCServer) CloseSession(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {

	sess, ok := sessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "missing session id")
	}

	if err := s.sessions.Close(ctx, sess.ID()); err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Session closed", "session", sess.ID())
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) DeleteConfig(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {

	sess, ok := sessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "missing session id")
	}

	req, err := decodeDeleteConfig(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	// requests on one session run one at a time
	sess.Lock()
	defer sess.Unlock()

	if err := s.deleteConfig.DeleteConfig(ctx, sess, req); err != nil {
		s.logger.Info(ctx, "delete-config failed", "session", sess.ID(), "target", req.Target.Branch, "error", err)
		return nil, toStatus(err)
	}

	return &emptypb.Empty{}, nil
}
