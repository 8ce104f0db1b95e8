package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/netconfd/internal/auth"
	"github.com/dmitrijs2005/netconfd/internal/common"
	pb "github.com/dmitrijs2005/netconfd/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	userKey    ctxKey = "user"
	sessionKey ctxKey = "session"
)

// UserFromContext returns the user authenticated by the access token.
func UserFromContext(ctx context.Context) (string, bool) {
	u, ok := ctx.Value(userKey).(string)
	return u, ok
}

func sessionFromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionKey).(Session)
	return sess, ok
}

func metadataValue(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func isNetconfMethod(fullMethod string) bool {
	return strings.HasPrefix(fullMethod, "/"+pb.ServiceName+"/")
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if !isNetconfMethod(info.FullMethod) {
		return handler(ctx, req)
	}

	accessToken := metadataValue(ctx, common.AccessTokenHeaderName)
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	user, err := auth.GetUsernameFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "token expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	return handler(context.WithValue(ctx, userKey, user), req)
}

// sessionInterceptor binds the session named by the session-id metadata to
// the context. The session must belong to the authenticated user.
func (s *GRPCServer) sessionInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if !isNetconfMethod(info.FullMethod) || info.FullMethod == pb.MethodOpenSession {
		return handler(ctx, req)
	}

	id := metadataValue(ctx, common.SessionIDHeaderName)
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "missing session id")
	}

	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, toStatus(err)
	}

	if user, _ := UserFromContext(ctx); sess.User() != user {
		s.logger.Warn(ctx, "session used by another user", "session", id, "user", user)
		return nil, status.Error(codes.NotFound, common.ErrSessionNotFound.Error())
	}

	return handler(context.WithValue(ctx, sessionKey, sess), req)
}
