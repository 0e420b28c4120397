// Package grpc exposes the credential service over gRPC using the JSON codec
// and service descriptor from internal/api.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/bioauth/internal/api"
	"github.com/dmitrijs2005/bioauth/internal/logging"
	"github.com/dmitrijs2005/bioauth/internal/server/models"
	"github.com/dmitrijs2005/bioauth/internal/server/services"
	"google.golang.org/grpc"
)

type userSvc interface {
	Register(ctx context.Context, email, password string, biometricKey *string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	BiometricLogin(ctx context.Context, biometricKey string) (*services.AuthResult, error)
	UpdateBiometricKey(ctx context.Context, userID, newBiometricKey string) (*models.User, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type GRPCServer struct {
	address string
	users   userSvc
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us userSvc) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	// registers service
	api.RegisterAuthServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
