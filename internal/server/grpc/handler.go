package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bioauth/internal/api"
	"github.com/dmitrijs2005/bioauth/internal/common"
	"github.com/dmitrijs2005/bioauth/internal/server/auth"
	"github.com/dmitrijs2005/bioauth/internal/server/models"
	"github.com/dmitrijs2005/bioauth/internal/server/services"
	"github.com/dmitrijs2005/bioauth/internal/server/validation"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.AuthResponse, error) {

	email := validation.NormalizeEmail(req.Email)
	if err := validation.ValidateRegister(email, req.Password, req.BiometricKey); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	result, err := s.users.Register(ctx, email, req.Password, req.BiometricKey)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "user_id", result.User.ID)
	return toAuthResponse(result), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.AuthResponse, error) {

	email := validation.NormalizeEmail(req.Email)
	if err := validation.ValidateLogin(email, req.Password); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	result, err := s.users.Login(ctx, email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return toAuthResponse(result), nil
}

func (s *GRPCServer) BiometricLogin(ctx context.Context, req *api.BiometricLoginRequest) (*api.AuthResponse, error) {

	if err := validation.ValidateBiometricKey(req.BiometricKey); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	result, err := s.users.BiometricLogin(ctx, req.BiometricKey)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return toAuthResponse(result), nil
}

func (s *GRPCServer) UpdateBiometricKey(ctx context.Context, req *api.UpdateBiometricKeyRequest) (*api.UpdateBiometricKeyResponse, error) {

	user, err := s.authenticate(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	if err := validation.ValidateBiometricKey(req.NewBiometricKey); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	updated, err := s.users.UpdateBiometricKey(ctx, user.ID, req.NewBiometricKey)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Biometric key updated", "user_id", updated.ID)
	return &api.UpdateBiometricKeyResponse{User: toAPIUser(updated)}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}

// authenticate resolves the bearer token from the incoming metadata.
func (s *GRPCServer) authenticate(ctx context.Context) (*models.User, error) {
	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
			header = values[0]
		}
	}

	token, err := auth.BearerToken(header)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	return s.users.Authenticate(ctx, token)
}

func toAuthResponse(r *services.AuthResult) *api.AuthResponse {
	return &api.AuthResponse{Token: r.Token, User: toAPIUser(r.User)}
}

func toAPIUser(u *models.User) api.User {
	return api.User{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

// toStatus maps service errors to gRPC status codes. Internal causes are
// logged and replaced with a generic message.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Message)
	case errors.Is(err, common.ErrDuplicateIdentity):
		return status.Error(codes.AlreadyExists, common.ErrDuplicateIdentity.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, common.ErrInvalidCredentials.Error())
	case errors.Is(err, common.ErrInvalidBiometricKey):
		return status.Error(codes.Unauthenticated, common.ErrInvalidBiometricKey.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, common.ErrorNotFound.Error())
	default:
		s.logger.Error(ctx, "request failed", "error", err.Error())
		return status.Error(codes.Internal, "internal error")
	}
}
