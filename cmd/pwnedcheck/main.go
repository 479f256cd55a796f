// Pwnedcheck checks a browser password export against a pre-sorted breach
// database of SHA-1 hashes, offline and in a single pass.
//
// Usage:
//
//	pwnedcheck [-v] [-workers N] <passwords.csv> <pwned-hashes.txt>
//
// Flags:
//
//	-v         Verbose output (debug logging)
//	-workers   Number of hashing workers (default: all logical CPUs)
//	-checksum  Print the xxHash64 fingerprint of the database before scanning
//
// The passwords file is a Chromium or Firefox CSV export. The hash file is
// a list of <40 hex chars>:<count> lines sorted ascending by hash, as
// published by Have I Been Pwned.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/term"

	"github.com/tamirms/pwnedcheck"
)

func main() {
	verbose := flag.Bool("v", false, "verbose output")
	workers := flag.Int("workers", 0, "number of hashing workers (0 = all logical CPUs)")
	checksum := flag.Bool("checksum", false, "print the database fingerprint before scanning")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <passwords.csv> <pwned-hashes.txt>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, logger, flag.Arg(0), flag.Arg(1), *workers, *checksum); err != nil {
		logger.Error("check failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, exportPath, dbPath string, workers int, checksum bool) error {
	logger.Debug("using passwords file", "path", exportPath)
	logger.Debug("using hash file", "path", dbPath)

	export, err := os.Open(exportPath)
	if err != nil {
		return fmt.Errorf("open passwords file: %w", err)
	}
	defer export.Close()

	creds, stats, err := pwnedcheck.ReadCredentials(export)
	if err != nil {
		return err
	}
	if stats.Skipped > 0 {
		logger.Warn("skipped malformed export rows", "count", stats.Skipped)
	}
	if stats.Duplicates > 0 {
		logger.Warn("export contains duplicate rows", "count", stats.Duplicates)
	}

	hashed, err := pwnedcheck.HashCredentials(ctx, creds, workers)
	if err != nil {
		return err
	}
	logger.Debug("hashed credentials", "count", len(hashed))

	sc, err := pwnedcheck.OpenDatabase(dbPath)
	if err != nil {
		return err
	}
	defer sc.Close()

	if checksum {
		sum, err := sc.Checksum()
		if err != nil {
			return err
		}
		logger.Info("database fingerprint", "xxh64", fmt.Sprintf("%016x", sum))
	}

	// Progress rendering is only worth the escape codes on a real terminal.
	var opts []pwnedcheck.Option
	interactive := term.IsTerminal(int(os.Stderr.Fd()))
	if interactive {
		opts = append(opts, pwnedcheck.WithProgress(func(offset, total int64) {
			fmt.Fprintf(os.Stderr, "\rscanning... %3d%% (%d/%d MiB)", offset*100/total, offset>>20, total>>20)
		}))
	}

	finder := pwnedcheck.NewFinder(ctx, sc, hashed, opts...)
	matches := 0
	for m := range finder.Matches() {
		if interactive {
			fmt.Fprint(os.Stderr, "\r\033[K")
		}
		fmt.Println(m)
		matches++
	}
	if interactive {
		fmt.Fprint(os.Stderr, "\r\033[K")
	}
	if err := finder.Err(); err != nil {
		return err
	}

	summary := pwnedcheck.Summary{
		Checked:      len(hashed),
		Skipped:      stats.Skipped,
		Duplicates:   stats.Duplicates,
		Matches:      matches,
		BytesScanned: sc.Offset(),
	}
	fmt.Println(summary)
	return nil
}
