// Package errors defines all exported error sentinels for the pwnedcheck
// library.
//
// This is the single source of truth for error values. The top-level
// pwnedcheck package and its commands import from here, ensuring errors.Is
// checks work across package boundaries.
package errors

import "errors"

// Credential pipeline errors
var (
	// ErrNoValidCredentials is returned when every input row was malformed
	// or empty. There is nothing to search for, so the scan phase is never
	// entered.
	ErrNoValidCredentials = errors.New("pwnedcheck: no valid credentials to check")
)

// Digest codec errors
var (
	// ErrMalformedDigest is returned when a hex digest is not exactly 40
	// hex characters.
	ErrMalformedDigest = errors.New("pwnedcheck: malformed hex digest")
)

// Database scan errors. Any of these aborts the run: the scanner's
// sequential decoding contract is broken and continuing would risk silent
// false negatives.
var (
	// ErrMalformedEntry is returned when a database line does not match
	// <40 hex chars>:<decimal count>.
	ErrMalformedEntry = errors.New("pwnedcheck: malformed database entry")

	// ErrOrderingViolation is returned when the database yields a digest
	// smaller than its predecessor. The merge invariant no longer holds.
	ErrOrderingViolation = errors.New("pwnedcheck: database entries out of order")

	// ErrEmptyDatabase is returned when the database file contains no
	// entries.
	ErrEmptyDatabase = errors.New("pwnedcheck: database file is empty")

	// ErrScannerClosed is returned by scanner operations after Close.
	ErrScannerClosed = errors.New("pwnedcheck: scanner is closed")
)
