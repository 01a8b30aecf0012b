// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// PubKey is the 65-byte uncompressed secp256k1 public key produced for a
// session. Unlike the secret key it derives from, PubKey is not sensitive
// and may be compared, logged, or passed by value freely.
type PubKey [65]byte
