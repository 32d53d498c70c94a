package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller could not be authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// Kind discriminates the failures produced by the banking core and its adapters.
type Kind string

const (
	KindAccountNotFound         Kind = "ACCOUNT_NOT_FOUND"
	KindSenderAccountNotFound   Kind = "SENDER_ACCOUNT_NOT_FOUND"
	KindReceiverAccountNotFound Kind = "RECEIVER_ACCOUNT_NOT_FOUND"
	KindInsufficientBalance     Kind = "INSUFFICIENT_BALANCE"
	KindStoreFailure            Kind = "STORE_FAILURE"
	KindValidation              Kind = "VALIDATION"
	KindDuplicate               Kind = "DUPLICATE"
	KindUnauthorized            Kind = "UNAUTHORIZED"
	KindIdentityProvider        Kind = "IDENTITY_PROVIDER"
)

// AppError carries a Kind, a user facing message and an optional cause.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

// NewAppError creates an AppError of the given kind.
func NewAppError(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError of the same kind, so the kind sentinels below work with errors.Is.
// Validation, duplicate and unauthorized kinds also match their legacy sentinels.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return t.Kind == e.Kind
	}
	switch e.Kind {
	case KindValidation:
		return target == ErrValidation
	case KindDuplicate:
		return target == ErrDuplicate
	case KindUnauthorized:
		return target == ErrUnauthorized
	case KindAccountNotFound, KindSenderAccountNotFound, KindReceiverAccountNotFound:
		return target == ErrNotFound
	}
	return false
}

// Kind sentinels for use with errors.Is.
var (
	ErrAccountNotFound         = &AppError{Kind: KindAccountNotFound}
	ErrSenderAccountNotFound   = &AppError{Kind: KindSenderAccountNotFound}
	ErrReceiverAccountNotFound = &AppError{Kind: KindReceiverAccountNotFound}
	ErrInsufficientBalance     = &AppError{Kind: KindInsufficientBalance}
	ErrStoreFailure            = &AppError{Kind: KindStoreFailure}
	ErrIdentityProvider        = &AppError{Kind: KindIdentityProvider}
)

// KindOf returns the kind of the first AppError in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// NewStoreFailure wraps a persistence error.
func NewStoreFailure(message string, err error) *AppError {
	return NewAppError(KindStoreFailure, message, err)
}

// NewValidationError reports invalid caller input.
func NewValidationError(message string) *AppError {
	return NewAppError(KindValidation, message, nil)
}
