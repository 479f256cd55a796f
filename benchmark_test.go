package pwnedcheck

import (
	"context"
	"fmt"
	"slices"
	"testing"
)

func BenchmarkCompare(b *testing.B) {
	rng := newTestRNG(b)
	x := randomDigest(rng)
	y := x
	y[19] ^= 1
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Compare(&x, &y)
	}
}

func BenchmarkCompareScalar(b *testing.B) {
	rng := newTestRNG(b)
	x := randomDigest(rng)
	y := x
	y[19] ^= 1
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = compareScalar(&x, &y)
	}
}

func BenchmarkDecodeHexInto(b *testing.B) {
	rng := newTestRNG(b)
	src := []byte(EncodeHex(randomDigest(rng)))
	var d Digest
	b.SetBytes(EncodedDigestSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := DecodeHexInto(&d, src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkScan(b *testing.B) {
	rng := newTestRNG(b)
	lines := make([]dbLine, 100_000)
	for i := range lines {
		lines[i] = dbLine{digest: randomDigest(rng), count: uint64(i + 1)}
	}
	sortLines(lines)
	data := buildDatabase(lines)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sc := ScanBytes(data)
		for sc.Next() {
		}
		if err := sc.Err(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMerge(b *testing.B) {
	rng := newTestRNG(b)
	lines := make([]dbLine, 100_000)
	for i := range lines {
		lines[i] = dbLine{digest: randomDigest(rng), count: uint64(i + 1)}
	}
	sortLines(lines)
	data := buildDatabase(lines)

	for _, numCreds := range []int{10, 1000} {
		b.Run(fmt.Sprintf("creds=%d", numCreds), func(b *testing.B) {
			creds := make([]HashedCredential, numCreds)
			for i := range creds {
				creds[i] = HashedCredential{
					Label:  fmt.Sprintf("user%d@bench", i),
					Digest: lines[(i*997)%len(lines)].digest,
				}
			}
			slices.SortFunc(creds, func(x, y HashedCredential) int {
				return Compare(&x.Digest, &y.Digest)
			})

			b.SetBytes(int64(len(data)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				f := NewFinder(context.Background(), ScanBytes(data), creds)
				n := 0
				for range f.Matches() {
					n++
				}
				if err := f.Err(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
