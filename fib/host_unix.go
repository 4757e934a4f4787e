//go:build unix

package fib

import "golang.org/x/sys/unix"

// MmapHost is a Host backed by anonymous mmap regions instead of the Go
// heap: chunks live outside the garbage collector's reach entirely, at
// the cost of being unix-only. Acquire rounds up to whole pages, same as
// any mmap-backed arena.
type MmapHost struct{}

func (MmapHost) Acquire(n int) []byte {
	mem, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		panic("fib: mmap failed: " + err.Error())
	}
	return mem
}

func (MmapHost) Release(mem []byte) {
	if err := unix.Munmap(mem); err != nil {
		panic("fib: munmap failed: " + err.Error())
	}
}
