// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:build unix

package vaultfile

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// lockExclusive acquires a non-blocking advisory exclusive lock on f.
// Another process already holding the lock yields ErrLockWouldBlock;
// any other failure yields ErrLockUnavailable.
func lockExclusive(f *os.File) error {
	err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err == nil {
		return nil
	}
	if errors.Is(err, unix.EWOULDBLOCK) {
		return ErrLockWouldBlock
	}
	return ErrLockUnavailable
}

// unlock releases the advisory lock held by lockExclusive, ignoring a
// lock that was never held.
func unlock(f *os.File) {
	_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
