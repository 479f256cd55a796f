//go:build linux

package pwnedcheck

import "golang.org/x/sys/unix"

// fadviseSequential hints to the kernel that the file will be read start to
// finish. Applied before the database file is mapped.
// Best-effort: errors are silently ignored.
func fadviseSequential(fd int, offset, length int64) {
	_ = unix.Fadvise(fd, offset, length, unix.FADV_SEQUENTIAL)
}

// madviseSequential hints that the mapped region will be read sequentially,
// biasing page-cache read-ahead and eviction in the scan's favor.
// Best-effort: errors are silently ignored.
func madviseSequential(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
}
