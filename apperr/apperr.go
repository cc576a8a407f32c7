// Package apperr defines the kernel's error kinds (spec.md §7) as a closed
// set of sentinel-wrapped values, following the same AppError-with-Unwrap
// shape the teacher's utils package uses for its HTTP error surface —
// adapted here so callers identify kinds with errors.Is/errors.As instead
// of matching on message strings.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is one of the named error kinds from spec.md §7.
type Kind string

const (
	Unbalanced             Kind = "UNBALANCED"
	UnknownAccount         Kind = "UNKNOWN_ACCOUNT"
	InactiveAccount        Kind = "INACTIVE_ACCOUNT"
	PeriodClosed           Kind = "PERIOD_CLOSED"
	CodeConflict           Kind = "CODE_CONFLICT"
	ParseNoAmount          Kind = "PARSE_NO_AMOUNT"
	ParseMalformedDate     Kind = "PARSE_MALFORMED_DATE"
	RegexInvalid           Kind = "REGEX_INVALID"
	TrialBalanceUnbalanced Kind = "TRIAL_BALANCE_UNBALANCED"
)

// Error is the kernel's error type: a Kind plus a human message plus an
// optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, apperr.New(kind, "")) match any *Error of the same
// Kind regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// New builds an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an *Error of the given kind around a lower-level cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Of returns a sentinel usable with errors.Is for the given kind, e.g.
// errors.Is(err, apperr.Of(apperr.Unbalanced)).
func Of(kind Kind) error { return &Error{Kind: kind} }

// KindOf extracts the Kind from err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
