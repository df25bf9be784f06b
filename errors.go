// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package robdd

import (
	"github.com/pkg/errors"
)

// Sentinel errors. Callers can recover one of these from a wrapped error
// returned by the package using errors.Is or errors.Cause.
var (
	// ErrMemory is returned when the node table cannot grow any further,
	// either because Maxnodesize was reached or because the host ran out of
	// memory while resizing.
	ErrMemory = errors.New("unable to free memory or resize BDD")

	// ErrInvalidNode is returned when an operation is given a Node that does
	// not belong to the BDD it is called on, or that refers to a reclaimed
	// slot in the node table.
	ErrInvalidNode = errors.New("invalid or unknown node")

	// ErrBadVariable is returned when a variable index lies outside
	// [0..Varnum) or a variable count is otherwise malformed.
	ErrBadVariable = errors.New("bad variable index")

	// ErrNoSolution is returned by operations that expect at least one
	// satisfying assignment, such as AnySat, when called on the constant
	// False.
	ErrNoSolution = errors.New("no satisfying assignment")
)

// Error returns the error status of the BDD, or an empty string if there
// have been no errors so far.
func (b *BDD) Error() string {
	if b.error == nil {
		return ""
	}
	return b.error.Error()
}

// Errored returns true if an operation on b has previously failed. The error
// is not sticky: it records the first failure for inspection via Error, but
// operations do not check it on entry, so later calls on b keep running
// normally rather than short-circuiting.
func (b *BDD) Errored() bool {
	return b.error != nil
}

// seterror records the first error encountered by b, wrapping cause with a
// stack trace, and returns a nil Node so call sites can write
// `return b.seterror(...)`. Once an error is set we keep the original cause
// and just annotate subsequent seterror calls, so the first failure is never
// lost.
func (b *BDD) seterror(cause error, format string, a ...interface{}) Node {
	wrapped := errors.Wrapf(cause, format, a...)
	if b.error != nil {
		b.log.WithError(wrapped).Debug("error raised while BDD already in error state")
		return nil
	}
	b.error = wrapped
	b.log.WithError(wrapped).Error("BDD operation failed")
	return nil
}
