// Package shuffleerr defines the error taxonomy shared by every layer of the
// shuffle-with-differential-privacy protocol: field arithmetic, secret
// sharing, the offline correlation generator and the online phase all
// surface errors through this package so that a caller can switch on Kind
// regardless of which layer produced the failure.
package shuffleerr

import (
	"errors"
	"fmt"
)

// Kind identifies the class of failure. It is intentionally flat: field
// errors, sharing errors and protocol errors all live on the same enum so
// that bubbling an error up through a wrapping layer never loses the
// original classification.
type Kind int

const (
	// Unknown is the zero value and should never be produced deliberately.
	Unknown Kind = iota
	ModulusMismatch
	DivisionByZero
	NoInverse
	NonPrimeModulus
	DimensionMismatch
	InsufficientShares
	InvalidConfiguration
	ServerNotFound
	SharingFailed
	NetworkError
	Timeout
	EmptyInput
	FieldOperationFailed
)

// Error lets a bare Kind be used as an errors.Is sentinel, e.g.
// errors.Is(err, shuffleerr.ModulusMismatch).
func (k Kind) Error() string { return k.String() }

func (k Kind) String() string {
	switch k {
	case ModulusMismatch:
		return "modulus mismatch"
	case DivisionByZero:
		return "division by zero"
	case NoInverse:
		return "no multiplicative inverse"
	case NonPrimeModulus:
		return "non-prime modulus"
	case DimensionMismatch:
		return "dimension mismatch"
	case InsufficientShares:
		return "insufficient shares"
	case InvalidConfiguration:
		return "invalid configuration"
	case ServerNotFound:
		return "party not found"
	case SharingFailed:
		return "sharing failed"
	case NetworkError:
		return "network error"
	case Timeout:
		return "timeout"
	case EmptyInput:
		return "empty input"
	case FieldOperationFailed:
		return "field operation failed"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type produced by every package in this
// module. It carries a Kind for programmatic dispatch, an Op naming the
// failing operation (in the style of "offline.Run" / "sign.Create" in
// the teacher's error wrapping), and an optional wrapped cause.
type Error struct {
	Kind  Kind
	Op    string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is allows errors.Is(err, shuffleerr.ModulusMismatch) style comparisons by
// treating a bare Kind as a sentinel.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && e.Kind == k
}

// New builds an *Error with no wrapped cause.
func New(op string, kind Kind) error {
	return &Error{Op: op, Kind: kind}
}

// Wrap builds an *Error wrapping cause. If cause is nil, Wrap returns nil so
// that `return shuffleerr.Wrap(op, kind, err)` is safe to use unconditionally
// after an `if err != nil` check is skipped by callers that prefer it.
func Wrap(op string, kind Kind, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Op: op, Kind: kind, Cause: cause}
}

// KindOf extracts the Kind from err if it (or something it wraps) is an
// *Error, and reports ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return Unknown, false
}
