package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Category represents the type of error.
type Category string

const (
	CategoryDriver     Category = "driver"
	CategoryExpression Category = "expression"
	CategoryTag        Category = "tag"
	CategoryProps      Category = "props"
	CategoryRoot       Category = "root"
	CategoryConfig     Category = "config"
	CategoryIO         Category = "io"
	CategoryLive       Category = "live"
	CategoryCLI        Category = "cli"
)

// Error is a structured error with a tree location, suggestions, and documentation.
type Error struct {
	// Code is a unique error identifier (e.g., "H004").
	Code string

	// Category is the error type (tag, driver, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Path is the tree path of the node being traversed when the error occurred.
	Path []int

	// Token is the offending input (tag token, file name, ...).
	Token string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Token != "" {
		fmt.Fprintf(&b, " %q", e.Token)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Path != nil {
		b.WriteString(" at ")
		b.WriteString(FormatPath(e.Path))
	}
	if e.Wrapped != nil {
		b.WriteString(": ")
		b.WriteString(e.Wrapped.Error())
	}
	return b.String()
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithPath records the tree path of the failing node. The first path
// recorded wins, so errors bubbling out of nested traversals keep the
// innermost location.
func (e *Error) WithPath(path []int) *Error {
	if e.Path == nil && path != nil {
		e.Path = append([]int(nil), path...)
	}
	return e
}

// WithToken records the offending input.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// FormatPath renders a tree path as "[0,2,1]".
func FormatPath(path []int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, idx := range path {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(idx))
	}
	b.WriteByte(']')
	return b.String()
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &Error{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new Error with a formatted message (no code).
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an Error.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	if he, ok := err.(*Error); ok {
		return he
	}
	return New(code).Wrap(err)
}
