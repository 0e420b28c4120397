package graphql

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bioauth/internal/common"
	"github.com/dmitrijs2005/bioauth/internal/logging"
	"github.com/dmitrijs2005/bioauth/internal/server/validation"
)

// Error codes placed under extensions.code.
const (
	CodeDuplicateIdentity   = "DUPLICATE_IDENTITY"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInvalidBiometricKey = "INVALID_BIOMETRIC_KEY"
	CodeNotFound            = "NOT_FOUND"
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeBadUserInput        = "BAD_USER_INPUT"
	CodeInternal            = "INTERNAL_SERVER_ERROR"
	CodeBadRequest          = "BAD_REQUEST"
	CodeValidationFailed    = "GRAPHQL_VALIDATION_FAILED"
)

// Error is a client-facing resolver error. It satisfies
// gqlerrors.ExtendedError so graphql-go copies the code into extensions.
type Error struct {
	Message string
	Code    string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

// toGraphQLError maps a service or validation error to its public form.
// Unknown errors are logged and reported as internal.
func toGraphQLError(ctx context.Context, logger logging.Logger, err error) *Error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return &Error{Message: verr.Message, Code: CodeBadUserInput}
	case errors.Is(err, common.ErrDuplicateIdentity):
		return &Error{Message: common.ErrDuplicateIdentity.Error(), Code: CodeDuplicateIdentity}
	case errors.Is(err, common.ErrInvalidCredentials):
		return &Error{Message: common.ErrInvalidCredentials.Error(), Code: CodeInvalidCredentials}
	case errors.Is(err, common.ErrInvalidBiometricKey):
		return &Error{Message: common.ErrInvalidBiometricKey.Error(), Code: CodeInvalidBiometricKey}
	case errors.Is(err, common.ErrorUnauthorized):
		return &Error{Message: common.ErrorUnauthorized.Error(), Code: CodeUnauthenticated}
	case errors.Is(err, common.ErrorNotFound):
		return &Error{Message: common.ErrorNotFound.Error(), Code: CodeNotFound}
	default:
		logger.Error(ctx, "request failed", "error", err.Error())
		return &Error{Message: common.ErrorInternal.Error(), Code: CodeInternal}
	}
}
