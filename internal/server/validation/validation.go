// Package validation checks transport input before it reaches the
// credential service.
package validation

import (
	"errors"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/bioauth/internal/common"
	"github.com/go-playground/validator/v10"
)

const (
	MsgInvalidEmail      = "Invalid email address"
	MsgWeakPassword      = "Password must be at least 8 characters long and contain upper-case, lower-case letters and a digit"
	MsgPasswordRequired  = "Password is required"
	MsgPasswordTooLong   = "Password must be at most 72 bytes long"
	MsgBiometricKeyEmpty = "Biometric key must not be empty"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// MaxPasswordBytes is the longest password, in bytes, that bcrypt can hash.
const MaxPasswordBytes = 72

// Error is a failed input rule. It matches common.ErrorValidation.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == common.ErrorValidation
}

type registerInput struct {
	Email        string  `validate:"required,email"`
	Password     string  `validate:"password_bytes,strong_password"`
	BiometricKey *string `validate:"omitnil,biometric_key"`
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type biometricInput struct {
	BiometricKey string `validate:"biometric_key"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	must(v.RegisterValidation("password_bytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	}))
	must(v.RegisterValidation("strong_password", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	}))
	must(v.RegisterValidation("biometric_key", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// StrongPassword reports whether p is at least MinPasswordLength characters
// and has a lower-case letter, an upper-case letter and a digit.
func StrongPassword(p string) bool {
	if len([]rune(p)) < MinPasswordLength {
		return false
	}
	var lower, upper, digit bool
	for _, r := range p {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// ValidateRegister checks registration input. email must already be
// normalized.
func ValidateRegister(email, password string, biometricKey *string) error {
	return check(registerInput{Email: email, Password: password, BiometricKey: biometricKey})
}

// ValidateLogin checks password login input. The strength policy is not
// applied so that accounts are never locked out by a policy change.
func ValidateLogin(email, password string) error {
	return check(loginInput{Email: email, Password: password})
}

// ValidateBiometricKey checks a biometric key used for login or rotation.
func ValidateBiometricKey(key string) error {
	return check(biometricInput{BiometricKey: key})
}

func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	return &Error{Field: fieldName(fe.Field()), Message: message(fe)}
}

func fieldName(structField string) string {
	switch structField {
	case "Email":
		return "email"
	case "Password":
		return "password"
	case "BiometricKey":
		return "biometricKey"
	default:
		return structField
	}
}

func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "Email":
		return MsgInvalidEmail
	case "Password":
		switch fe.Tag() {
		case "required":
			return MsgPasswordRequired
		case "password_bytes":
			return MsgPasswordTooLong
		}
		return MsgWeakPassword
	case "BiometricKey":
		return MsgBiometricKeyEmpty
	default:
		return fe.Error()
	}
}
