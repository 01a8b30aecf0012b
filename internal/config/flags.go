// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-vault-dir directory holding db.bin and db.bin.bak
//	-lock-timeout advisory file lock acquire timeout (e.g. "2s")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var vaultDir string
	var lockTimeout time.Duration
	var jsonConfigPath string

	flag.StringVar(&vaultDir, "vault-dir", "", "Directory holding db.bin and db.bin.bak")
	flag.DurationVar(&lockTimeout, "lock-timeout", 0, "Advisory file lock acquire timeout (e.g. 2s)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Storage: Storage{
			VaultDir: vaultDir,
		},
		Lock: Lock{
			AcquireTimeout: lockTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}
