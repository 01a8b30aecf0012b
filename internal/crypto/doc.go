// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the vault's key hierarchy and authenticated
// encryption: master-passphrase key derivation, the secp256k1 session key
// pair, the machine-bound wrapped user key, per-record deterministic-nonce
// AES-256-GCM encryption, and the ECIES construction used to seal the
// serialized Store blob under the session's public key.
//
// # Key hierarchy
//
//  1. Master secret — 32 bytes, Argon2id over the passphrase and a
//     per-vault salt. Doubles as a secp256k1 private key once validated
//     against the curve's group order. See [DeriveMasterSecret].
//
//  2. Session key pair — the secp256k1 public key derived from the master
//     secret is retained for the process lifetime; the secret key is
//     retired as soon as the Store blob has been decrypted. See [Session].
//
//  3. User key — a second 32-byte symmetric key, derived from the master
//     secret via Argon2id over a fixed salt distinct from the master KDF's.
//     It never touches disk in the clear: it is always carried wrapped
//     under a machine-derived key (see [Session.WrappedUserKey]).
//
//  4. Per-record key use — [EncryptRecord] / [DecryptRecord] take an
//     already unwrapped user key (obtained once via [UnwrapUserKey]) and
//     apply it with a deterministic nonce derived from the record's
//     (site, id) pair, so records never need a stored nonce. They do not
//     unwrap or zero the user key themselves; the caller holds it and
//     zeroes it.
//
// # Flows
//
//   - First login / master-password change: [FirstLogin] derives a brand
//     new identity (salt, key pair, wrapped user key).
//   - Normal login: [Login] re-derives the identity from the persisted
//     salt; callers must call [Session.RetireSecretKey] once the Store
//     blob has been decrypted with [Session.SecretKey] and [DecryptBlob].
//   - Store blob sealing: [EncryptBlob] / [DecryptBlob].
package crypto
