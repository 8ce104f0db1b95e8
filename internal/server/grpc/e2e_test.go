package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/netconfd/internal/auth"
	"github.com/dmitrijs2005/netconfd/internal/common"
	"github.com/dmitrijs2005/netconfd/internal/logging"
	pb "github.com/dmitrijs2005/netconfd/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func startBufServer(t *testing.T, s *GRPCServer) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serve(ctx, lis) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestEndToEnd_SessionLifecycle(t *testing.T) {
	store := newFakeStore()
	runner := &fakeRunner{}
	s, _ := NewGRPCServer("", logging.Nop{}, store, runner, "k")
	conn := startBufServer(t, s)
	client := pb.NewNetconfClient(conn)

	token, err := auth.GenerateToken("admin", []byte("k"), time.Hour)
	require.NoError(t, err)
	ctx := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, token)

	id, err := client.OpenSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	sctx := metadata.AppendToOutgoingContext(ctx, common.SessionIDHeaderName, id)
	req, err := structpb.NewStruct(map[string]any{"target": map[string]any{"startup": nil}})
	require.NoError(t, err)
	require.NoError(t, client.DeleteConfig(sctx, req))
	require.Len(t, runner.got, 1)

	require.NoError(t, client.CloseSession(sctx))
	err = client.DeleteConfig(sctx, req)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestEndToEnd_Unauthenticated(t *testing.T) {
	s, _, _ := newTestServer("k")
	client := pb.NewNetconfClient(startBufServer(t, s))

	_, err := client.OpenSession(context.Background())
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestEndToEnd_HealthNeedsNoToken(t *testing.T) {
	s, _, _ := newTestServer("k")
	conn := startBufServer(t, s)

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: pb.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
