package pwnedcheck

import (
	"cmp"
	"crypto/sha1"
	"encoding/binary"

	pcerrors "github.com/tamirms/pwnedcheck/errors"
)

// Digest length constants.
const (
	// DigestSize is the length of a SHA-1 digest in bytes.
	DigestSize = sha1.Size

	// EncodedDigestSize is the hex-encoded length. Two text bytes per one
	// binary byte.
	EncodedDigestSize = DigestSize * 2
)

// Digest is the raw 20-byte SHA-1 value of a credential secret.
type Digest [DigestSize]byte

const lowerHexDigits = "0123456789abcdef"

// hexValues maps an ASCII byte to its nibble value. 0xff marks bytes that
// are not hex digits. Both cases are accepted per character; ordering
// decisions are always made on decoded bytes, never on the text form.
var hexValues = func() (t [256]byte) {
	for i := range t {
		t[i] = 0xff
	}
	for c := byte('0'); c <= '9'; c++ {
		t[c] = c - '0'
	}
	for c := byte('a'); c <= 'f'; c++ {
		t[c] = c - 'a' + 10
	}
	for c := byte('A'); c <= 'F'; c++ {
		t[c] = c - 'A' + 10
	}
	return t
}()

// EncodeHex returns the fixed-width lowercase hex form of d.
func EncodeHex(d Digest) string {
	var buf [EncodedDigestSize]byte
	for i, b := range d {
		buf[i*2] = lowerHexDigits[b>>4]
		buf[i*2+1] = lowerHexDigits[b&0x0f]
	}
	return string(buf[:])
}

// DecodeHexInto decodes exactly EncodedDigestSize hex characters from src
// into dst. It allocates nothing; the scan path calls it once per database
// line. Returns pcerrors.ErrMalformedDigest if src has the wrong length or
// contains a non-hex byte.
func DecodeHexInto(dst *Digest, src []byte) error {
	if len(src) != EncodedDigestSize {
		return pcerrors.ErrMalformedDigest
	}
	for i := 0; i < DigestSize; i++ {
		hi := hexValues[src[i*2]]
		lo := hexValues[src[i*2+1]]
		// Valid nibbles are <= 0x0f, so any invalid byte trips the OR.
		if hi|lo > 0x0f {
			return pcerrors.ErrMalformedDigest
		}
		dst[i] = hi<<4 | lo
	}
	return nil
}

// Compare orders a and b by unsigned byte-wise comparison, returning -1, 0
// or 1. The 20-byte digest is compared as two 64-bit lanes plus one 32-bit
// lane; big-endian loads make word order match byte order, so the result is
// identical to a byte-at-a-time loop with a fraction of the comparisons.
func Compare(a, b *Digest) int {
	if x, y := binary.BigEndian.Uint64(a[0:8]), binary.BigEndian.Uint64(b[0:8]); x != y {
		return cmp.Compare(x, y)
	}
	if x, y := binary.BigEndian.Uint64(a[8:16]), binary.BigEndian.Uint64(b[8:16]); x != y {
		return cmp.Compare(x, y)
	}
	return cmp.Compare(binary.BigEndian.Uint32(a[16:20]), binary.BigEndian.Uint32(b[16:20]))
}

// compareScalar is the byte-at-a-time reference implementation. It must
// agree with Compare on every input; tests cross-check the two so the merge
// algorithm's correctness never depends on the lane width.
func compareScalar(a, b *Digest) int {
	for i := range a {
		if a[i] != b[i] {
			return cmp.Compare(a[i], b[i])
		}
	}
	return 0
}
