package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates the caller could not be authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidAmount indicates a non-positive (or otherwise unusable) money amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInsufficientFunds indicates a debit would take the wallet balance below zero.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidTransition indicates a shipment status change that the lifecycle does not allow.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrInvalidWeight indicates a parcel weight outside the accepted range.
var ErrInvalidWeight = errors.New("invalid weight")

// ErrOperationInProgress indicates another request holding the same idempotency key is still running.
var ErrOperationInProgress = errors.New("operation in progress")

// ErrConflict indicates an idempotency key was reused with a different payload.
var ErrConflict = errors.New("idempotency key reused with a different payload")

// ErrTxConflict is returned by repositories when the database aborted a transaction
// because of a lock or serialization conflict. Services retry on it.
var ErrTxConflict = errors.New("transaction conflict")

// ErrTransient indicates the operation gave up after repeated transaction conflicts.
var ErrTransient = errors.New("temporarily unavailable, retry later")

// ErrInternal is the generic failure surfaced for unexpected persistence errors.
var ErrInternal = errors.New("internal error")

// AppError carries a status-like code and a safe message alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Kind is the client-facing error category.
type Kind string

const (
	KindInvalidAmount       Kind = "InvalidAmount"
	KindInsufficientFunds   Kind = "InsufficientFunds"
	KindInvalidTransition   Kind = "InvalidTransition"
	KindInvalidWeight       Kind = "InvalidWeight"
	KindOperationInProgress Kind = "OperationInProgress"
	KindNotFound            Kind = "NotFound"
	KindConflict            Kind = "Conflict"
	KindValidation          Kind = "Validation"
	KindUnauthorized        Kind = "Unauthorized"
	KindForbidden           Kind = "Forbidden"
	KindTransient           Kind = "Transient"
	KindInternal            Kind = "Internal"
)

// kindOrder lists sentinels from most to least specific. The first match wins,
// so a wrapped ErrInvalidWeight that also wraps ErrValidation reports InvalidWeight.
var kindOrder = []struct {
	err  error
	kind Kind
}{
	{ErrInvalidAmount, KindInvalidAmount},
	{ErrInsufficientFunds, KindInsufficientFunds},
	{ErrInvalidTransition, KindInvalidTransition},
	{ErrInvalidWeight, KindInvalidWeight},
	{ErrOperationInProgress, KindOperationInProgress},
	{ErrConflict, KindConflict},
	{ErrNotFound, KindNotFound},
	{ErrUnauthorized, KindUnauthorized},
	{ErrForbidden, KindForbidden},
	{ErrTransient, KindTransient},
	{ErrTxConflict, KindTransient},
	{ErrValidation, KindValidation},
}

// KindOf resolves err to its taxonomy kind. Unknown errors are Internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	for _, k := range kindOrder {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

// IsRetryable reports whether a client may retry the same request unchanged.
func IsRetryable(kind Kind) bool {
	switch kind {
	case KindOperationInProgress, KindTransient, KindInternal:
		return true
	default:
		return false
	}
}
