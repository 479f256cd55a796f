package pwnedcheck

import (
	"bytes"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"

	pcerrors "github.com/tamirms/pwnedcheck/errors"
)

// maxCountDigits bounds the decimal occurrence count to what fits a uint64.
const maxCountDigits = 19

// Entry is the decoded form of one database line. The scanner re-uses a
// single Entry; it is valid only until the next call to Next and must never
// be collected into a container.
type Entry struct {
	// Digest is the decoded 20-byte hash value.
	Digest Digest

	countText []byte // raw decimal bytes, a view into the mapping
	count     uint64
	decoded   bool
}

// Count decodes the decimal occurrence count. Decoding is deferred until a
// merge hit confirms the line matters; the vast majority of scanned lines
// are never decoded. The result is cached for repeated hits on the same
// line (duplicate user passwords).
func (e *Entry) Count() (uint64, error) {
	if e.decoded {
		return e.count, nil
	}
	if len(e.countText) == 0 || len(e.countText) > maxCountDigits {
		return 0, pcerrors.ErrMalformedEntry
	}
	var n uint64
	for _, c := range e.countText {
		if c < '0' || c > '9' {
			return 0, pcerrors.ErrMalformedEntry
		}
		n = n*10 + uint64(c-'0')
	}
	e.count = n
	e.decoded = true
	return n, nil
}

// Scanner is a forward-only cursor over a breach database file. The file is
// memory-mapped rather than read through buffered I/O: it is consumed start
// to finish exactly once, and mapping avoids the kernel-to-user copy.
// Sequential-access advisories are issued immediately after mapping.
//
// A Scanner cannot be rewound; open a new one to scan again.
// Not safe for concurrent use.
type Scanner struct {
	mm     mmap.MMap
	data   []byte
	off    int
	entry  Entry
	err    error
	closed bool
}

// OpenDatabase opens and maps the database file at path. The file
// descriptor is closed after mapping, per POSIX mmap(2) semantics.
func OpenDatabase(path string) (*Scanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat database: %w", err)
	}
	if stat.Size() == 0 {
		return nil, pcerrors.ErrEmptyDatabase
	}

	fadviseSequential(int(f.Fd()), 0, stat.Size())

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap database: %w", err)
	}

	data := []byte(mm)
	madviseSequential(data)

	return &Scanner{mm: mm, data: data}, nil
}

// ScanBytes creates a Scanner over an in-memory byte slice. No file is
// mapped; Close is a no-op. The caller must not modify data while the
// Scanner is in use.
func ScanBytes(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Next advances to the next database entry. It returns false at end of
// input or on the first error; check Err to tell the two apart. Each line
// must be <40 hex chars>:<decimal count>, terminated by \n or \r\n; a
// corrupt line is fatal because it breaks the sequential decoding offsets
// every later line depends on.
func (s *Scanner) Next() bool {
	if s.err != nil || s.closed || s.off >= len(s.data) {
		return false
	}

	lineStart := s.off
	var line []byte
	if nl := bytes.IndexByte(s.data[s.off:], '\n'); nl >= 0 {
		line = s.data[s.off : s.off+nl]
		s.off += nl + 1
	} else {
		line = s.data[s.off:]
		s.off = len(s.data)
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}

	// Minimum line: 40 hex chars, a colon, one count digit.
	if len(line) < EncodedDigestSize+2 || line[EncodedDigestSize] != ':' {
		s.err = s.malformed(lineStart)
		return false
	}
	if err := DecodeHexInto(&s.entry.Digest, line[:EncodedDigestSize]); err != nil {
		s.err = s.malformed(lineStart)
		return false
	}
	s.entry.countText = line[EncodedDigestSize+1:]
	s.entry.decoded = false
	return true
}

func (s *Scanner) malformed(offset int) error {
	return fmt.Errorf("%w at byte offset %d", pcerrors.ErrMalformedEntry, offset)
}

// Entry returns the current entry. It is overwritten by the next call to
// Next.
func (s *Scanner) Entry() *Entry {
	return &s.entry
}

// Err returns the first error encountered while scanning, or nil if the
// scan ended at end of input.
func (s *Scanner) Err() error {
	return s.err
}

// Offset returns the byte offset of the cursor, for progress reporting.
func (s *Scanner) Offset() int64 {
	return int64(s.off)
}

// Size returns the total size of the database in bytes.
func (s *Scanner) Size() int64 {
	return int64(len(s.data))
}

// Checksum returns the xxHash64 fingerprint of the entire database,
// comparable against a published checksum before committing to a long scan.
// It reads the whole mapping, so calling it mid-scan disturbs the
// sequential access pattern; call it before Next.
func (s *Scanner) Checksum() (uint64, error) {
	if s.closed {
		return 0, pcerrors.ErrScannerClosed
	}
	return xxhash.Sum64(s.data), nil
}

// Close unmaps the database. The cursor and any outstanding Entry views
// become invalid. Safe to call more than once.
func (s *Scanner) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.data = nil
	if s.mm != nil {
		return s.mm.Unmap()
	}
	return nil
}
