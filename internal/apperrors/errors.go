package apperrors

import "errors"

// Error kinds. Every error returned by the service layer unwraps to exactly one
// of these.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrIllegalTransition = errors.New("illegal state transition")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrStorage           = errors.New("storage failure")
)

// Error is a coded application error with a human readable message.
type Error struct {
	Kind    error
	Code    string
	Message string
}

func New(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// StorageError wraps a persistence fault. It matches both ErrStorage and the
// original cause.
type StorageError struct {
	Cause error
}

// Storage wraps err as a storage failure. Errors that already carry a kind are
// returned unchanged so that precondition failures raised inside a transaction
// keep their meaning.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != nil {
		return err
	}
	return &StorageError{Cause: err}
}

func (e *StorageError) Error() string {
	return "storage failure: " + e.Cause.Error()
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Cause}
}

var kinds = []error{
	ErrNotFound,
	ErrInvalidArgument,
	ErrIllegalTransition,
	ErrPermissionDenied,
	ErrUnauthenticated,
	ErrStorage,
}

// KindOf returns the kind sentinel err unwraps to, or nil.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Code returns the machine readable code of err, if any.
func Code(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	if errors.Is(err, ErrStorage) {
		return "STORAGE_FAILURE"
	}
	return ""
}
