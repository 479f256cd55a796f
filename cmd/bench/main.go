// Bench measures pwnedcheck hashing and scan throughput against a synthetic
// sorted database.
//
// Usage:
//
//	go run ./cmd/bench -lines 50000000 -creds 200
//
// Flags:
//
//	-lines   Number of database lines to generate (default: 10,000,000)
//	-creds   Number of synthetic credentials to search for (default: 100)
//	-keep    Keep the generated database file instead of deleting it
package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"syscall"
	"time"

	"github.com/spaolacci/murmur3"

	"github.com/tamirms/pwnedcheck"
)

const digestSeed = 0x9e3779b9

// getMaxRSS returns the maximum resident set size in bytes.
// Uses getrusage(RUSAGE_SELF) which tracks peak RSS since process start.
func getMaxRSS() uint64 {
	var rusage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &rusage); err != nil {
		return 0
	}
	// On macOS, MaxRss is in bytes. On Linux, it's in kilobytes.
	maxRSS := uint64(rusage.Maxrss)
	if runtime.GOOS == "linux" {
		maxRSS *= 1024
	}
	return maxRSS
}

// syntheticDigest derives a deterministic 20-byte digest from a counter.
// Murmur3's 128-bit output covers 16 bytes; the 32-bit variant tops up the
// remaining 4.
func syntheticDigest(i uint64) pwnedcheck.Digest {
	var seed [8]byte
	binary.LittleEndian.PutUint64(seed[:], i)
	h1, h2 := murmur3.Sum128WithSeed(seed[:], digestSeed)

	var d pwnedcheck.Digest
	binary.BigEndian.PutUint64(d[0:8], h1)
	binary.BigEndian.PutUint64(d[8:16], h2)
	binary.BigEndian.PutUint32(d[16:20], murmur3.Sum32WithSeed(seed[:], digestSeed))
	return d
}

func main() {
	linesFlag := flag.Int("lines", 10_000_000, "number of database lines to generate")
	credsFlag := flag.Int("creds", 100, "number of synthetic credentials")
	keepFlag := flag.Bool("keep", false, "keep the generated database file")
	flag.Parse()

	numLines := *linesFlag
	numCreds := *credsFlag

	fmt.Println("Generating digests...")
	digests := make([]pwnedcheck.Digest, numLines)
	for i := range digests {
		digests[i] = syntheticDigest(uint64(i))
	}

	fmt.Println("Sorting digests...")
	sortStart := time.Now()
	slices.SortFunc(digests, func(a, b pwnedcheck.Digest) int {
		return pwnedcheck.Compare(&a, &b)
	})
	sortDuration := time.Since(sortStart)

	fmt.Println("Writing database file...")
	dir, err := os.MkdirTemp("", "pwnedcheck-bench")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	dbPath := filepath.Join(dir, "pwned.txt")
	if !*keepFlag {
		defer os.RemoveAll(dir)
	}

	writeStart := time.Now()
	var buf bytes.Buffer
	buf.Grow(numLines * (pwnedcheck.EncodedDigestSize + 8))
	for i, d := range digests {
		buf.WriteString(pwnedcheck.EncodeHex(d))
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(i%100000 + 1))
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(dbPath, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	writeDuration := time.Since(writeStart)
	dbSize := int64(buf.Len())
	buf = bytes.Buffer{}

	// Every numLines/numCreds-th digest becomes a credential, so matches are
	// spread across the whole file and every one should hit.
	hashed := make([]pwnedcheck.HashedCredential, 0, numCreds)
	stride := max(numLines/max(numCreds, 1), 1)
	for i := 0; i < numLines && len(hashed) < numCreds; i += stride {
		hashed = append(hashed, pwnedcheck.HashedCredential{
			Label:  fmt.Sprintf("user%d@bench", i),
			Digest: digests[i],
		})
	}
	slices.SortFunc(hashed, func(a, b pwnedcheck.HashedCredential) int {
		return pwnedcheck.Compare(&a.Digest, &b.Digest)
	})

	fmt.Println("Scanning...")
	sc, err := pwnedcheck.OpenDatabase(dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer sc.Close()

	scanStart := time.Now()
	finder := pwnedcheck.NewFinder(context.Background(), sc, hashed)
	matches := 0
	for range finder.Matches() {
		matches++
	}
	scanDuration := time.Since(scanStart)
	if err := finder.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("\nDatabase:    %d lines, %.1f MiB\n", numLines, float64(dbSize)/(1<<20))
	fmt.Printf("Sort:        %v\n", sortDuration)
	fmt.Printf("Write:       %v\n", writeDuration)
	fmt.Printf("Scan:        %v (%.1f MiB/s)\n", scanDuration,
		float64(dbSize)/(1<<20)/scanDuration.Seconds())
	fmt.Printf("Matches:     %d / %d expected\n", matches, len(hashed))
	fmt.Printf("Peak RSS:    %.1f MiB\n", float64(getMaxRSS())/(1<<20))
	if *keepFlag {
		fmt.Printf("Database kept at %s\n", dbPath)
	}
}
