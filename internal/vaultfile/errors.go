// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vaultfile

import "errors"

// File I/O errors.
var (
	// ErrLockUnavailable is returned when the advisory exclusive lock
	// cannot be acquired for a reason other than contention.
	ErrLockUnavailable = errors.New("vaultfile: failed to acquire file lock")

	// ErrLockWouldBlock is returned when another process already holds
	// the advisory exclusive lock.
	ErrLockWouldBlock = errors.New("vaultfile: file is locked by another process")

	// ErrFileOpenFailed is returned when db.bin or db.bin.bak cannot be
	// opened.
	ErrFileOpenFailed = errors.New("vaultfile: failed to open file")

	// ErrFileReadFailed is returned when reading the file contents fails.
	ErrFileReadFailed = errors.New("vaultfile: failed to read file")

	// ErrFileWriteFailed is returned when writing the file contents fails.
	ErrFileWriteFailed = errors.New("vaultfile: failed to write file")

	// ErrFileSyncFailed is returned when flushing the file to durable
	// storage fails.
	ErrFileSyncFailed = errors.New("vaultfile: failed to sync file")

	// ErrFileRenameFailed is returned when the commit-point rename between
	// db.bin and db.bin.bak fails.
	ErrFileRenameFailed = errors.New("vaultfile: failed to rename file")

	// ErrFileDeleteFailed is returned when deleting db.bin or db.bin.bak
	// fails.
	ErrFileDeleteFailed = errors.New("vaultfile: failed to delete file")

	// ErrInvalidHeader is returned when the file is too short or its magic
	// does not match.
	ErrInvalidHeader = errors.New("vaultfile: invalid header")

	// ErrDBVersionMismatch is returned when the magic matches but the
	// version does not.
	ErrDBVersionMismatch = errors.New("vaultfile: unsupported db version")

	// ErrPersistentIntegrityFailure is returned when save's write-then-
	// verify loop fails on every attempt.
	ErrPersistentIntegrityFailure = errors.New("vaultfile: failed to write a verifiable db after retries")
)

// Warnings, returned alongside success to be surfaced to the user.
var (
	// WarnRevertedForUngracefulExit indicates the previous process did not
	// exit gracefully and the backup was restored as the current file.
	WarnRevertedForUngracefulExit = errors.New("vaultfile: reverted to the last backup after an ungraceful exit")

	// WarnResetDBForCorruptedFile indicates the file was unreadable or
	// failed its checksum after all retries and has been treated as empty.
	WarnResetDBForCorruptedFile = errors.New("vaultfile: reset the database because the file is corrupted")
)
