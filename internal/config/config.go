// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// StructuredConfig is the top-level configuration container for the
// go-pass-keeper vault core. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Storage holds file-system settings for the vault's durable files.
	Storage Storage `envPrefix:"STORAGE_"`

	// Crypto holds Argon2id tuning overrides. Production code should leave
	// these at their zero value, which selects the parameters mandated by
	// the on-disk format; tests may lower them to keep derivation fast.
	Crypto Crypto `envPrefix:"CRYPTO_"`

	// Lock holds advisory file-lock timing settings.
	Lock Lock `envPrefix:"LOCK_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups file-system settings for the vault's two on-disk files
// (db.bin and db.bin.bak).
type Storage struct {
	// VaultDir is the directory holding db.bin and db.bin.bak. Defaults to
	// the current working directory when empty.
	// Env: STORAGE_VAULT_DIR
	VaultDir string `env:"VAULT_DIR"`
}

// Crypto holds overrides for the Argon2id parameters used by the master KDF.
// The user-key and per-record nonce derivations have no overrides. A zero
// value in any field means "use the format-mandated default" (see
// internal/crypto).
type Crypto struct {
	// MasterKDFMemoryKiB overrides the master-KDF memory cost in KiB.
	// Env: CRYPTO_MASTER_KDF_MEMORY_KIB
	MasterKDFMemoryKiB uint32 `env:"MASTER_KDF_MEMORY_KIB"`

	// MasterKDFIterations overrides the master-KDF iteration count.
	// Env: CRYPTO_MASTER_KDF_ITERATIONS
	MasterKDFIterations uint32 `env:"MASTER_KDF_ITERATIONS"`

	// MasterKDFParallelism overrides the master-KDF parallelism.
	// Env: CRYPTO_MASTER_KDF_PARALLELISM
	MasterKDFParallelism uint8 `env:"MASTER_KDF_PARALLELISM"`
}

// Lock holds timing settings for the advisory exclusive file lock acquired
// around db.bin during load and save.
type Lock struct {
	// AcquireTimeout bounds how long Load/Save wait for the advisory lock
	// before returning ErrLockUnavailable.
	// Env: LOCK_ACQUIRE_TIMEOUT
	AcquireTimeout time.Duration `env:"ACQUIRE_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
