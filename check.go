package pwnedcheck

import (
	"context"
	"errors"
	"io"

	pcerrors "github.com/tamirms/pwnedcheck/errors"
)

// Result is the outcome of a completed check.
type Result struct {
	Matches []Match
	Summary Summary
}

// Check runs the whole pipeline: read the export, hash and sort the
// credentials, then merge-join them against the database in a single pass.
// The two phases are strictly sequential; hashing fully completes and sorts
// before the scan begins.
//
// Matches are collected into the Result; use NewFinder directly to consume
// them as a stream instead. Any error touching the database scan path
// aborts the run with no partial results.
func Check(ctx context.Context, export io.Reader, dbPath string, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	creds, stats, err := ReadCredentials(export)
	if err != nil {
		return nil, err
	}

	hashed, err := HashCredentials(ctx, creds, cfg.workers)
	if err != nil {
		return nil, err
	}

	sc, err := OpenDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	defer sc.Close()

	finder := NewFinder(ctx, sc, hashed, opts...)
	var matches []Match
	for m := range finder.Matches() {
		matches = append(matches, m)
	}
	if err := finder.Err(); err != nil {
		return nil, err
	}

	return &Result{
		Matches: matches,
		Summary: Summary{
			Checked:      len(hashed),
			Skipped:      stats.Skipped,
			Duplicates:   stats.Duplicates,
			Matches:      len(matches),
			BytesScanned: sc.Offset(),
		},
	}, nil
}

// IsFatalScanError reports whether err indicates the database scan itself
// failed (corrupt line or ordering violation), as opposed to a setup
// problem. Operators use this to tell a corrupt download from a permissions
// or path mistake.
func IsFatalScanError(err error) bool {
	return errors.Is(err, pcerrors.ErrMalformedEntry) || errors.Is(err, pcerrors.ErrOrderingViolation)
}
