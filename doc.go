// Package pwnedcheck checks exported browser credentials against a large,
// pre-sorted list of breached password hashes, offline and in a single pass.
//
// The database file (tens of gigabytes) is memory-mapped and scanned exactly
// once; no auxiliary index is built. Peak memory is bounded by the number of
// user credentials, not by the database size.
//
// # Basic Usage
//
//	f, err := os.Open("passwords.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	res, err := pwnedcheck.Check(ctx, f, "pwned-passwords-sha1.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, m := range res.Matches {
//	    fmt.Println(m)
//	}
//
// For streaming consumption of matches while the scan is still running, use
// the pieces directly: ReadCredentials, HashCredentials, OpenDatabase and
// NewFinder. Finder.Matches yields each match as the merge produces it.
//
// # Package Structure
//
//   - Digest codec: digest.go (EncodeHex, DecodeHexInto, Compare)
//   - Credential input: reader.go (ReadCredentials), secret.go (WipeBytes)
//   - Hashing pipeline: collect.go (HashCredentials)
//   - Database scanner: scanner.go (OpenDatabase), advise_*.go (OS hints)
//   - Merge-search: find.go (NewFinder, Finder.Matches)
//   - Reporting: report.go (Match, Summary)
//   - Orchestration: check.go (Check), options.go (Option, With* functions)
package pwnedcheck
