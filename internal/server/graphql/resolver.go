package graphql

import (
	"context"

	"github.com/dmitrijs2005/bioauth/internal/common"
	"github.com/dmitrijs2005/bioauth/internal/logging"
	"github.com/dmitrijs2005/bioauth/internal/server/auth"
	"github.com/dmitrijs2005/bioauth/internal/server/models"
	"github.com/dmitrijs2005/bioauth/internal/server/services"
	"github.com/dmitrijs2005/bioauth/internal/server/validation"
	"github.com/graphql-go/graphql"
)

// rootAuthorization is the root value key holding the raw Authorization
// header of the HTTP request.
const rootAuthorization = "authorization"

type userSvc interface {
	Register(ctx context.Context, email, password string, biometricKey *string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	BiometricLogin(ctx context.Context, biometricKey string) (*services.AuthResult, error)
	UpdateBiometricKey(ctx context.Context, userID, newBiometricKey string) (*models.User, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Resolver implements the schema's field resolvers on top of the
// credential service.
type Resolver struct {
	users  userSvc
	logger logging.Logger
}

func NewResolver(us userSvc, l logging.Logger) *Resolver {
	return &Resolver{users: us, logger: l}
}

func (r *Resolver) Health(p graphql.ResolveParams) (interface{}, error) {
	return "ok", nil
}

func (r *Resolver) Register(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p)
	email := validation.NormalizeEmail(stringField(in, "email"))
	password := stringField(in, "password")

	var biometricKey *string
	if v, ok := in["biometricKey"].(string); ok {
		biometricKey = &v
	}

	if err := validation.ValidateRegister(email, password, biometricKey); err != nil {
		return nil, toGraphQLError(p.Context, r.logger, err)
	}

	result, err := r.users.Register(p.Context, email, password, biometricKey)
	if err != nil {
		return nil, toGraphQLError(p.Context, r.logger, err)
	}

	r.logger.Info(p.Context, "Registered", "user_id", result.User.ID)
	return authPayload(result), nil
}

func (r *Resolver) Login(p graphql.ResolveParams) (interface{}, error) {
	in := inputArg(p)
	email := validation.NormalizeEmail(stringField(in, "email"))
	password := stringField(in, "password")

	if err := validation.ValidateLogin(email, password); err != nil {
		return nil, toGraphQLError(p.Context, r.logger, err)
	}

	result, err := r.users.Login(p.Context, email, password)
	if err != nil {
		return nil, toGraphQLError(p.Context, r.logger, err)
	}
	return authPayload(result), nil
}

func (r *Resolver) BiometricLogin(p graphql.ResolveParams) (interface{}, error) {
	key := stringField(inputArg(p), "biometricKey")

	if err := validation.ValidateBiometricKey(key); err != nil {
		return nil, toGraphQLError(p.Context, r.logger, err)
	}

	result, err := r.users.BiometricLogin(p.Context, key)
	if err != nil {
		return nil, toGraphQLError(p.Context, r.logger, err)
	}
	return authPayload(result), nil
}

// UpdateBiometricKey requires a bearer token; the caller is resolved here
// and passed to the service explicitly.
func (r *Resolver) UpdateBiometricKey(p graphql.ResolveParams) (interface{}, error) {
	user, err := r.currentUser(p)
	if err != nil {
		return nil, toGraphQLError(p.Context, r.logger, err)
	}

	key, _ := p.Args["newBiometricKey"].(string)
	if err := validation.ValidateBiometricKey(key); err != nil {
		return nil, toGraphQLError(p.Context, r.logger, err)
	}

	updated, err := r.users.UpdateBiometricKey(p.Context, user.ID, key)
	if err != nil {
		return nil, toGraphQLError(p.Context, r.logger, err)
	}

	r.logger.Info(p.Context, "Biometric key updated", "user_id", updated.ID)
	return userPayload(updated), nil
}

func (r *Resolver) currentUser(p graphql.ResolveParams) (*models.User, error) {
	var header string
	if root, ok := p.Info.RootValue.(map[string]interface{}); ok {
		header, _ = root[rootAuthorization].(string)
	}

	token, err := auth.BearerToken(header)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	return r.users.Authenticate(p.Context, token)
}

func inputArg(p graphql.ResolveParams) map[string]interface{} {
	in, _ := p.Args["input"].(map[string]interface{})
	return in
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func authPayload(r *services.AuthResult) map[string]interface{} {
	return map[string]interface{}{
		"token": r.Token,
		"user":  userPayload(r.User),
	}
}

func userPayload(u *models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":        u.ID,
		"email":     u.Email,
		"createdAt": u.CreatedAt,
		"updatedAt": u.UpdatedAt,
	}
}
