// Package grpc serves the netconf.Netconf service: session management and
// the <delete-config> operation.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/netconfd/internal/logging"
	pb "github.com/dmitrijs2005/netconfd/internal/proto"
	"github.com/dmitrijs2005/netconfd/internal/server/models"
	"github.com/dmitrijs2005/netconfd/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Session is a protocol session as the transport sees it.
type Session interface {
	services.Session
	ID() string
	Lock()
	Unlock()
}

type SessionStore interface {
	Open(ctx context.Context, user string) (Session, error)
	Get(id string) (Session, error)
	Close(ctx context.Context, id string) error
}

type DeleteConfigRunner interface {
	DeleteConfig(ctx context.Context, sess services.Session, req models.DeleteConfigRequest) error
}

type GRPCServer struct {
	address      string
	sessions     SessionStore
	deleteConfig DeleteConfigRunner
	logger       logging.Logger
	jwtSecret    []byte
}

func NewGRPCServer(a string, l logging.Logger, ss SessionStore, dc DeleteConfigRunner, secretKey string) (*GRPCServer, error) {
	return &GRPCServer{
		address:      a,
		logger:       l.With("module", "grpc_server"),
		sessions:     ss,
		deleteConfig: dc,
		jwtSecret:    []byte(secretKey),
	}, nil
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.accessTokenInterceptor,
		s.sessionInterceptor,
	))

	pb.RegisterNetconfServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(pb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
