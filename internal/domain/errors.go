package domain

import (
	"errors"
	"fmt"
)

var (
	ErrGameNotFound       = errors.New("game not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileExists      = errors.New("profile already exists")
	ErrInvalidProfileName = errors.New("invalid profile name")
	ErrNoActiveProfile    = errors.New("no active profile")
	ErrInstallDirNotFound = errors.New("install directory not found")
	ErrGameRunning        = errors.New("game is running")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// Kinds of link and reset failures. An *Error always carries exactly one.
var (
	ErrDirectoryInvalid = errors.New("directory invalid")
	ErrDeleteFailure    = errors.New("delete failure")
	ErrReadFailure      = errors.New("read failure")
	ErrCopyFailure      = errors.New("copy failure")
	ErrTriggerFailure   = errors.New("trigger failure")
)

// Error is a user-presentable failure of a link or reset operation.
type Error struct {
	Kind   error  // One of the failure kinds above
	Title  string // Short headline, e.g. "Unable to delete file"
	Detail string // Underlying system error message
	Hint   string // Remediation for the user; may be empty
	Err    error  // Underlying cause
}

// NewError builds an Error of the given kind from an underlying cause.
func NewError(kind error, title string, cause error, hint string) *Error {
	e := &Error{Kind: kind, Title: title, Hint: hint, Err: cause}
	if cause != nil {
		e.Detail = cause.Error()
	}
	return e
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Title
	}
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
