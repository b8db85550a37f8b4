// Package apperrors defines the machine-checkable error kinds returned by
// the domain services. Callers match them with errors.Is; the wrapped
// message carries the human-readable reason.
package apperrors

import "errors"

// ErrNotFound indicates that a requested account or transaction does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput indicates a malformed date, period, or other primitive value.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidAmount indicates an amount that fails validation for the operation.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInvalidPosting indicates a posting that violates double-entry rules:
// same account on both sides, or a disallowed category combination.
var ErrInvalidPosting = errors.New("invalid posting")

// ErrPeriodLocked indicates a mutation on a transaction dated inside a
// locked period. Reversals posted into an open period are the sanctioned
// correction path.
var ErrPeriodLocked = errors.New("period locked")

// ErrInvalidField indicates an unknown field name in a modify request.
var ErrInvalidField = errors.New("invalid field")

// ErrDuplicateAccount indicates an account with the same (name, type)
// already exists. Batch import surfaces this only as a skip count.
var ErrDuplicateAccount = errors.New("duplicate account")

// ErrNoValidAccounts indicates a chart import whose input contained no
// valid rows at all.
var ErrNoValidAccounts = errors.New("no valid accounts found")
