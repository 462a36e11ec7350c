package domain

import "github.com/pkg/errors"

// ErrorKind classifies request scoped failures
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindAuthorization ErrorKind = "authorization"
	KindNotFound      ErrorKind = "not_found"
)

// Error is a user facing failure. It never implies a state change.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func Unauthorized(code, message string) *Error {
	return &Error{Kind: KindAuthorization, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

// AsError extracts a *Error from the chain
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsKind reports whether err carries a domain error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	de, ok := AsError(err)
	return ok && de.Kind == kind
}

// Common error codes
const (
	CodeDateRangeInvalid     = "DATE_RANGE_INVALID"
	CodeDateRangeUnavailable = "DATE_RANGE_UNAVAILABLE"
	CodeRoleRequired         = "ROLE_REQUIRED"
	CodeNotOwner             = "NOT_OWNER"
	CodeInvalidFilter        = "INVALID_FILTER"
)
