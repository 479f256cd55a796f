package pwnedcheck

// Option is a functional option for configuring a check run.
type Option func(*config)

type config struct {
	workers  int // 0 selects the logical CPU count at phase entry
	progress func(offset, total int64)
}

func defaultConfig() *config {
	return &config{}
}

// WithWorkers sets the number of hashing workers. Values below 1 select the
// logical CPU count, read once when the hashing phase starts. The scan
// phase is always single-threaded; its access pattern is bandwidth-bound
// sequential I/O and the merge invariant is inherently sequential.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithProgress registers a callback invoked with the scanner's byte offset
// roughly every 64 MiB of scanned database bytes, and once at completion.
// The callback runs on the scanning goroutine and should return quickly.
func WithProgress(fn func(offset, total int64)) Option {
	return func(c *config) {
		c.progress = fn
	}
}
