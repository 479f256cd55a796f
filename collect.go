package pwnedcheck

import (
	"context"
	"crypto/sha1"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	pcerrors "github.com/tamirms/pwnedcheck/errors"
)

// HashedCredential pairs an account label with the digest of its secret.
// The plaintext is gone by the time one of these exists.
type HashedCredential struct {
	Label  string
	Digest Digest
}

// HashSecret computes the digest of a secret and wipes the plaintext before
// returning, on every exit path.
func HashSecret(secret []byte) Digest {
	defer WipeBytes(secret)
	return sha1.Sum(secret)
}

// HashCredentials turns credentials into a slice of hashed records sorted
// ascending by digest.
//
// The rows are already collected in memory (bounded by the export size,
// which is always small next to the database), so the phase is a plain
// fork-join: the slice is split into one contiguous chunk per worker, each
// worker writes digests into its own range of the output, and no
// synchronization is needed on the hot path beyond the final barrier.
// Sorting happens only after every worker has joined; no partial result is
// ever visible. Duplicate digests (reused passwords) stay as distinct
// entries.
//
// workers < 1 selects the logical CPU count, read once on entry. If ctx is
// cancelled mid-phase the partial output is discarded and the context error
// returned.
func HashCredentials(ctx context.Context, creds []Credential, workers int) ([]HashedCredential, error) {
	if len(creds) == 0 {
		return nil, pcerrors.ErrNoValidCredentials
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(creds) {
		workers = len(creds)
	}

	out := make([]HashedCredential, len(creds))
	chunk := (len(creds) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(creds); start += chunk {
		end := min(start+chunk, len(creds))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				out[i] = HashedCredential{
					Label:  creds[i].Label,
					Digest: HashSecret(creds[i].Secret),
				}
				creds[i].Secret = nil
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Whole-pipeline cancellation: wipe what the failed run left behind
		// and return nothing.
		for i := range creds {
			WipeBytes(creds[i].Secret)
			creds[i].Secret = nil
		}
		return nil, err
	}

	slices.SortFunc(out, func(a, b HashedCredential) int {
		return Compare(&a.Digest, &b.Digest)
	})
	return out, nil
}
