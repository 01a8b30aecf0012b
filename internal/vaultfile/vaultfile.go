// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vaultfile

import (
	"bytes"
	"crypto/sha512"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	dbFileName  = "db.bin"
	dbBakSuffix = ".bak"

	lockRetryInterval = 20 * time.Millisecond
)

// File wraps the two on-disk paths (db.bin, db.bin.bak) under a vault
// directory.
type File struct {
	dir     string
	dbPath  string
	bakPath string

	// lockTimeout bounds how long acquireLock retries a would-block lock
	// before giving up with ErrLockWouldBlock. Zero means try once.
	lockTimeout time.Duration
}

// Open returns a File rooted at dir. dir must already exist; Open does not
// create it.
func Open(dir string) *File {
	return &File{
		dir:     dir,
		dbPath:  filepath.Join(dir, dbFileName),
		bakPath: filepath.Join(dir, dbFileName+dbBakSuffix),
	}
}

// SetLockTimeout configures how long Load/Save retry acquiring the
// advisory exclusive lock while another process holds it before giving up
// with ErrLockWouldBlock. The zero value (the default) tries once.
func (f *File) SetLockTimeout(timeout time.Duration) {
	f.lockTimeout = timeout
}

// acquireLock retries lockExclusive at lockRetryInterval until it
// succeeds, a non-would-block error occurs, or f.lockTimeout elapses.
func (f *File) acquireLock(fh *os.File) error {
	deadline := time.Now().Add(f.lockTimeout)
	for {
		err := lockExclusive(fh)
		if err == nil || !errors.Is(err, ErrLockWouldBlock) || f.lockTimeout <= 0 {
			return err
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(lockRetryInterval)
	}
}

// Load implements the load protocol (spec §4.E): reconcile an ungraceful
// exit by preferring db.bin.bak, then read db.bin with up to three
// checksum-verified attempts. Returns the header, the ciphertext body (nil
// if none yet), and a non-nil warning when recovery or a reset occurred.
func (f *File) Load() (Header, []byte, error, error) {
	dbExists, err := exists(f.dbPath)
	if err != nil {
		return Header{}, nil, nil, ErrFileOpenFailed
	}
	bakExists, err := exists(f.bakPath)
	if err != nil {
		return Header{}, nil, nil, ErrFileOpenFailed
	}

	var warn error
	if bakExists {
		warn = WarnRevertedForUngracefulExit
		if dbExists {
			if err := os.Remove(f.dbPath); err != nil {
				return Header{}, nil, nil, ErrFileDeleteFailed
			}
		}
		if err := os.Rename(f.bakPath, f.dbPath); err != nil {
			return Header{}, nil, nil, ErrFileRenameFailed
		}
	} else if !dbExists {
		return Empty(), nil, nil, nil
	}

	fh, err := os.OpenFile(f.dbPath, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return Header{}, nil, nil, ErrFileOpenFailed
	}
	defer fh.Close()

	if lockErr := f.acquireLock(fh); lockErr != nil {
		return Header{}, nil, nil, lockErr
	}
	defer unlock(fh)

	const readTrials = 3
	for i := 0; i < readTrials; i++ {
		if _, err := fh.Seek(0, io.SeekStart); err != nil {
			return Header{}, nil, nil, ErrFileReadFailed
		}
		data, err := io.ReadAll(fh)
		if err != nil {
			return Header{}, nil, nil, ErrFileReadFailed
		}

		header, ciphertext, err := ParseHeader(data)
		if errors.Is(err, ErrInvalidHeader) {
			return Empty(), nil, WarnResetDBForCorruptedFile, nil
		}
		if err != nil {
			return Header{}, nil, nil, err
		}

		sum := sha512.Sum512(ciphertext)
		if !bytes.Equal(sum[:], header.ChecksumSHA512[:]) {
			continue
		}

		return header, ciphertext, warn, nil
	}

	return Empty(), nil, WarnResetDBForCorruptedFile, nil
}

// Save implements the save protocol (spec §4.E): rotate db.bin to
// db.bin.bak as the commit point, write the new header+ciphertext, verify
// by reading back, and on success delete the backup.
func (f *File) Save(salt [32]byte, ciphertext []byte) error {
	dbExists, err := exists(f.dbPath)
	if err != nil {
		return ErrFileReadFailed
	}
	bakExists, err := exists(f.bakPath)
	if err != nil {
		return ErrFileReadFailed
	}

	if dbExists {
		if bakExists {
			if err := os.Remove(f.dbPath); err != nil {
				return ErrFileDeleteFailed
			}
		} else if err := os.Rename(f.dbPath, f.bakPath); err != nil {
			return ErrFileRenameFailed
		}
	}

	fh, err := os.OpenFile(f.dbPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return ErrFileOpenFailed
	}
	defer fh.Close()

	if lockErr := f.acquireLock(fh); lockErr != nil {
		return lockErr
	}
	defer unlock(fh)

	sum := sha512.Sum512(ciphertext)
	header := Header{
		Salt:           salt,
		ChecksumSHA512: sum,
		CiphertextLen:  uint64(len(ciphertext)),
	}
	payload := header.Marshal()
	payload = append(payload, ciphertext...)

	const writeTrials, checkCounters = 2, 3
	success := false
	for i := 0; i < writeTrials && !success; i++ {
		if _, err := fh.Seek(0, io.SeekStart); err != nil {
			return ErrFileWriteFailed
		}
		if _, err := fh.Write(payload); err != nil {
			return ErrFileWriteFailed
		}
		if err := fh.Sync(); err != nil {
			return ErrFileSyncFailed
		}

		for j := 0; j < checkCounters; j++ {
			info, err := fh.Stat()
			if err != nil {
				return ErrFileReadFailed
			}
			if info.Size() != int64(len(payload)) {
				continue
			}

			if _, err := fh.Seek(0, io.SeekStart); err != nil {
				return ErrFileReadFailed
			}
			readBack, err := io.ReadAll(fh)
			if err != nil {
				return ErrFileReadFailed
			}

			if bytes.Equal(payload, readBack) {
				success = true
				break
			}
		}
	}
	if !success {
		return ErrPersistentIntegrityFailure
	}

	if bakExists2, err := exists(f.bakPath); err != nil {
		return ErrFileReadFailed
	} else if bakExists2 {
		if err := os.Remove(f.bakPath); err != nil {
			return ErrFileDeleteFailed
		}
	}

	return nil
}

// MarkUngraceful records that in-memory changes have not been fully
// committed: called after every mutating operation, before the caller
// reports success. Idempotent: a pre-existing backup is left untouched.
func (f *File) MarkUngraceful() error {
	bakExists, err := exists(f.bakPath)
	if err != nil {
		return ErrFileReadFailed
	}
	if bakExists {
		return nil
	}

	dbExists, err := exists(f.dbPath)
	if err != nil {
		return ErrFileReadFailed
	}
	if dbExists {
		if err := os.Rename(f.dbPath, f.bakPath); err != nil {
			return ErrFileRenameFailed
		}
		return nil
	}

	fh, err := os.OpenFile(f.bakPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return ErrFileWriteFailed
	}
	return fh.Close()
}

// MarkGraceful clears the dirty marker after a successful save, atomically
// swapping in the backup as the current file.
func (f *File) MarkGraceful() error {
	dbExists, err := exists(f.dbPath)
	if err != nil {
		return ErrFileReadFailed
	}
	bakExists, err := exists(f.bakPath)
	if err != nil {
		return ErrFileReadFailed
	}

	switch {
	case dbExists && bakExists:
		if err := os.Remove(f.dbPath); err != nil {
			return ErrFileDeleteFailed
		}
		if err := os.Rename(f.bakPath, f.dbPath); err != nil {
			return ErrFileRenameFailed
		}
	case !dbExists && bakExists:
		if err := os.Rename(f.bakPath, f.dbPath); err != nil {
			return ErrFileRenameFailed
		}
	}
	return nil
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
