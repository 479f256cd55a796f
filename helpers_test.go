package pwnedcheck

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	randv2 "math/rand/v2"
	"slices"
	"testing"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *randv2.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return randv2.New(randv2.NewPCG(testSeed1^s1, testSeed2^s2))
}

// randomDigest fills a digest with pseudo-random bytes from rng.
func randomDigest(rng *randv2.Rand) Digest {
	var d Digest
	binary.LittleEndian.PutUint64(d[0:8], rng.Uint64())
	binary.LittleEndian.PutUint64(d[8:16], rng.Uint64())
	binary.LittleEndian.PutUint32(d[16:20], rng.Uint32())
	return d
}

// dbLine holds one database line for test file construction.
type dbLine struct {
	digest Digest
	count  uint64
}

// sortLines orders lines ascending by digest, the order a published
// database uses.
func sortLines(lines []dbLine) {
	slices.SortFunc(lines, func(a, b dbLine) int {
		return Compare(&a.digest, &b.digest)
	})
}

// buildDatabase renders lines into the on-disk text format. The caller is
// responsible for sorting if the test wants a well-formed database.
func buildDatabase(lines []dbLine) []byte {
	var buf bytes.Buffer
	for _, l := range lines {
		fmt.Fprintf(&buf, "%s:%d\n", EncodeHex(l.digest), l.count)
	}
	return buf.Bytes()
}

// sha1Of is a readable alias for digesting test passwords.
func sha1Of(password string) Digest {
	return sha1.Sum([]byte(password))
}

// collectMatches drains a finder and returns the emitted matches.
func collectMatches(f *Finder) []Match {
	var out []Match
	for m := range f.Matches() {
		out = append(out, m)
	}
	return out
}
