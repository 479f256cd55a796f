package pwnedcheck

import (
	"context"
	"fmt"
	"iter"

	pcerrors "github.com/tamirms/pwnedcheck/errors"
)

// progressInterval is how many scanned bytes pass between progress
// callbacks and context checks during the merge.
const progressInterval = 64 << 20

// Finder merge-joins a sorted slice of hashed credentials against a
// database scanner in a single left-to-right pass. Both sides only ever
// move forward, giving O(n+m) comparisons for n credentials and m database
// lines.
//
// The credential slice must be sorted ascending by digest (the order
// HashCredentials produces) and is treated as read-only. A Finder is
// single-use: construct a new one, with a fresh Scanner, to search again.
type Finder struct {
	sc    *Scanner
	creds []HashedCredential

	ctx      context.Context
	progress func(offset, total int64)

	matches int
	started bool
	err     error
}

// NewFinder creates a Finder over sc and creds. ctx is checked at progress
// cadence during the scan; cancelling it aborts the merge with the context
// error. Only WithProgress among the options affects a Finder.
func NewFinder(ctx context.Context, sc *Scanner, creds []HashedCredential, opts ...Option) *Finder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Finder{
		sc:       sc,
		creds:    creds,
		ctx:      ctx,
		progress: cfg.progress,
	}
}

// Matches returns the lazy sequence of match events, one per credential
// whose digest appears in the database. Events are yielded as the merge
// produces them; nothing is buffered, so a credential list full of widely
// reused passwords still runs in bounded memory. The sequence can be
// consumed once. Check Err after iteration: a partially consumed sequence
// with a non-nil Err means the results are incomplete.
func (f *Finder) Matches() iter.Seq[Match] {
	return func(yield func(Match) bool) {
		if f.started {
			return
		}
		f.started = true

		var (
			u            int
			prev         Digest
			havePrev     bool
			nextProgress = int64(progressInterval)
		)
		for u < len(f.creds) && f.sc.Next() {
			ent := f.sc.Entry()

			// The merge relies entirely on the documented sort order. A
			// decreasing digest means results would be silently incomplete.
			if havePrev && Compare(&ent.Digest, &prev) < 0 {
				f.err = fmt.Errorf("%w near byte offset %d", pcerrors.ErrOrderingViolation, f.sc.Offset())
				return
			}
			prev, havePrev = ent.Digest, true

			for u < len(f.creds) {
				c := Compare(&f.creds[u].Digest, &ent.Digest)
				if c > 0 {
					// Database entry sorts before every remaining
					// credential; advance the cursor.
					break
				}
				if c == 0 {
					n, err := ent.Count()
					if err != nil {
						f.err = fmt.Errorf("%w near byte offset %d", err, f.sc.Offset())
						return
					}
					f.matches++
					if !yield(Match{Label: f.creds[u].Label, Count: n}) {
						return
					}
				}
				// c < 0: this credential sorts before the current database
				// position and can never be reached again. Either way only
				// u advances here, so the next credential can still hit the
				// same database digest.
				u++
			}

			if off := f.sc.Offset(); off >= nextProgress {
				nextProgress = off + progressInterval
				if f.progress != nil {
					f.progress(off, f.sc.Size())
				}
				if f.ctx != nil {
					if err := f.ctx.Err(); err != nil {
						f.err = err
						return
					}
				}
			}
		}

		// Credentials left over when the database runs out are definitive
		// non-matches; nothing more to do.
		if err := f.sc.Err(); err != nil {
			f.err = err
			return
		}
		if f.progress != nil {
			f.progress(f.sc.Offset(), f.sc.Size())
		}
	}
}

// Err returns the first fatal error the merge hit, or nil. Valid after the
// Matches sequence has stopped.
func (f *Finder) Err() error {
	return f.err
}

// MatchCount returns the number of match events emitted so far.
func (f *Finder) MatchCount() int {
	return f.matches
}
