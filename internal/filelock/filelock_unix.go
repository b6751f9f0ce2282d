//go:build !windows

package filelock

import (
	"os"

	"golang.org/x/sys/unix"
)

func acquire(f *os.File) error {
	for {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX)
		if err != unix.EINTR {
			return err
		}
	}
}

func release(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
