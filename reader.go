package pwnedcheck

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zeebo/xxh3"
)

// Credential is one row of a browser password export. Secret holds the
// plaintext password bytes; the hashing pipeline wipes it the moment its
// digest has been computed.
type Credential struct {
	Label  string
	Secret []byte
}

// ReadStats summarizes what ReadCredentials consumed.
type ReadStats struct {
	Rows       int // data rows seen, valid or not
	Skipped    int // malformed rows dropped
	Duplicates int // rows identical to an earlier row (kept, but counted)
}

// Export column names. Chromium emits name,url,username,password; Firefox
// emits url,username,password followed by metadata columns. Both are
// resolved by header name, so column order does not matter.
const (
	columnURL      = "url"
	columnUsername = "username"
	columnPassword = "password"
)

// ReadCredentials parses a CSV password export into credentials. Malformed
// rows are skipped and counted, never fatal: a single broken row in a
// browser export must not abort the whole check. Rows that repeat an
// earlier row byte for byte are kept (each occurrence is searched) but
// counted in Duplicates.
//
// The label is username@url, matching how password managers display an
// entry. A missing header row or a header without a password column is a
// setup error.
func ReadCredentials(r io.Reader) ([]Credential, ReadStats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ReadStats{}, fmt.Errorf("credential export: empty input")
	}
	if err != nil {
		return nil, ReadStats{}, fmt.Errorf("credential export: read header: %w", err)
	}

	urlIdx, userIdx, passIdx := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case columnURL:
			urlIdx = i
		case columnUsername:
			userIdx = i
		case columnPassword:
			passIdx = i
		}
	}
	if passIdx < 0 {
		return nil, ReadStats{}, fmt.Errorf("credential export: no %q column in header", columnPassword)
	}

	var (
		creds []Credential
		stats ReadStats
		seen  = make(map[uint64]struct{})
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		stats.Rows++
		if err != nil {
			// Quoting or field-count damage in one row; skip it.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				stats.Skipped++
				continue
			}
			return nil, stats, fmt.Errorf("credential export: read row: %w", err)
		}
		if passIdx >= len(record) || record[passIdx] == "" {
			stats.Skipped++
			continue
		}

		var url, user string
		if urlIdx >= 0 && urlIdx < len(record) {
			url = record[urlIdx]
		}
		if userIdx >= 0 && userIdx < len(record) {
			user = record[userIdx]
		}
		secret := record[passIdx]

		key := rowKey(url, user, secret)
		if _, dup := seen[key]; dup {
			stats.Duplicates++
		} else {
			seen[key] = struct{}{}
		}

		creds = append(creds, Credential{
			Label:  formatLabel(url, user),
			Secret: []byte(secret),
		})
	}
	return creds, stats, nil
}

// rowKey hashes the identifying fields of a row into a single value for the
// duplicate-detection set, so the set never retains plaintext.
func rowKey(url, user, secret string) uint64 {
	h := xxh3.New()
	_, _ = h.WriteString(url)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(user)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(secret)
	return h.Sum64()
}

// formatLabel renders the user-facing identity of a credential row.
func formatLabel(url, user string) string {
	if user == "" {
		return url
	}
	return user + "@" + url
}
