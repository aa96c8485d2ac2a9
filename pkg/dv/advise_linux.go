//go:build linux

package dv

import (
	"os"

	"golang.org/x/sys/unix"
)

// adviseSequential hints the kernel that sections are read front to back.
// Errors are ignored.
func adviseSequential(f *os.File) {
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
}
