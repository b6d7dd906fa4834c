package hyper

import (
	"fmt"

	herrors "github.com/vango-dev/hyper/internal/errors"
)

// Error is the structured error type returned by the renderer and drivers.
type Error = herrors.Error

// Sentinels for the failure taxonomy. They match any error carrying the same
// code, so callers compare with errors.Is:
//
//	if errors.Is(err, hyper.ErrMalformedTag) { ... }
var (
	ErrInvalidDriver     = herrors.New("H001")
	ErrInvalidExpression = herrors.New("H002")
	ErrInvalidRoot       = herrors.New("H003")
	ErrMalformedTag      = herrors.New("H004")
	ErrDuplicateID       = herrors.New("H005")
	ErrInvalidAttribute  = herrors.New("H006")
)

// fail returns a fresh, mutable error with the sentinel's code.
func fail(sentinel *Error) *Error {
	return herrors.New(sentinel.Code)
}

// NewInvalidRootError reports a render target lacking the facilities a
// driver needs. Drivers call it while validating their root.
func NewInvalidRootError(detail string) error {
	return fail(ErrInvalidRoot).WithDetail(detail)
}

// atPath attaches the failing node's path to structured errors.
func atPath(err error, path Path) error {
	if he, ok := err.(*herrors.Error); ok {
		return he.WithPath(path)
	}
	return err
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
