package pwnedcheck

import "fmt"

// Match is one confirmed hit: a credential whose secret's digest appears in
// the breach database.
type Match struct {
	// Label identifies the account, typically username@url.
	Label string

	// Count is how many times the password was seen in known breaches.
	Count uint64
}

// String renders the match for display.
func (m Match) String() string {
	return fmt.Sprintf("%s: password seen %d times in breaches", m.Label, m.Count)
}

// Summary describes a completed run.
type Summary struct {
	Checked      int   // credentials hashed and searched
	Skipped      int   // malformed export rows dropped
	Duplicates   int   // export rows identical to an earlier row
	Matches      int   // match events emitted
	BytesScanned int64 // database bytes walked by the cursor
}

// String renders the summary as a single completion line.
func (s Summary) String() string {
	return fmt.Sprintf("checked %d credentials: %d compromised, %d rows skipped, %d duplicate rows, %d database bytes scanned",
		s.Checked, s.Matches, s.Skipped, s.Duplicates, s.BytesScanned)
}
