// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package secret provides fixed-size and length-erased byte containers for
// cryptographic key material. Every type here guarantees three things:
// bytes are overwritten with zero before the container is released on any
// exit path the caller controls, byte access happens only through explicit
// accessors, and none of the types derive a String/GoString/MarshalJSON
// representation that could leak plaintext into a log or error message.
//
// Go has no destructors, so the zeroing is best-effort: it covers every
// known-live location of a secret (the container itself), not copies made
// by garbage-collector moves or compiler-introduced temporaries. Reuse the
// same container across an operation instead of reassigning through
// intermediate variables to keep the number of live copies to the minimum.
package secret

import "runtime"

// Zero overwrites b with zero bytes. runtime.KeepAlive pins b so the
// compiler cannot prove the store is dead and elide it — a real risk here
// since the slice is usually unused after this call.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// Bytes is a length-erased secret byte container, used for values whose
// size is not known at compile time (wrapped keys, ciphertext blobs passed
// through the cipher layer for immediate retirement).
type Bytes []byte

// Zero overwrites the underlying bytes with zero. Safe to call on a nil or
// already-zeroed value.
func (b Bytes) Zero() {
	Zero(b)
}

// Expose returns the raw bytes for read-only use in a single cryptographic
// operation. The caller must not retain the returned slice past the
// operation's scope.
func (b Bytes) Expose() []byte {
	return b
}

// Array32 is a fixed 32-byte secret: a master secret key, a derived user
// key, or the corresponding secp256k1 private key bytes.
type Array32 [32]byte

// Zero overwrites a with zero bytes.
func (a *Array32) Zero() {
	Zero(a[:])
}

// Expose returns a read-only view of the 32 bytes.
func (a *Array32) Expose() []byte {
	return a[:]
}

// ExposeMut returns a mutable view of the 32 bytes for in-place derivation.
func (a *Array32) ExposeMut() []byte {
	return a[:]
}

// Array12 is a fixed 12-byte secret: an AES-GCM nonce, either the
// deterministic per-record nonce or the session's wrap nonce.
type Array12 [12]byte

// Zero overwrites a with zero bytes.
func (a *Array12) Zero() {
	Zero(a[:])
}

// Expose returns a read-only view of the 12 bytes.
func (a *Array12) Expose() []byte {
	return a[:]
}

// ExposeMut returns a mutable view of the 12 bytes for in-place derivation.
func (a *Array12) ExposeMut() []byte {
	return a[:]
}
