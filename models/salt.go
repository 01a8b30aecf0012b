// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Salt is the 32-byte random value persisted in the file header and fed to
// the master KDF alongside the passphrase. A fresh Salt is drawn on first
// login and on every master-password change.
type Salt [32]byte
