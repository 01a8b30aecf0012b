// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:build !unix

package vaultfile

import "os"

// lockExclusive is a no-op on platforms without flock(2): vaultfile takes
// no advisory lock there, so nothing in this package guards db.bin against
// a concurrent writer in another process.
func lockExclusive(f *os.File) error {
	return nil
}

func unlock(f *os.File) {}
