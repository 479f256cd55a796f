//go:build !linux

package pwnedcheck

// fadviseSequential is a no-op on non-Linux platforms.
func fadviseSequential(fd int, offset, length int64) {
	// No-op
}

// madviseSequential is a no-op on non-Linux platforms.
func madviseSequential(data []byte) {
	// No-op
}
