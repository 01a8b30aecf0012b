// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/argon2"

	"github.com/rkhiriev/go-pass-keeper/internal/secret"
	"github.com/rkhiriev/go-pass-keeper/models"
)

const masterKDFKeyLen = 32

// Default master-KDF cost parameters mandated by the on-disk format.
// [SetMasterKDFParams] lets a caller lower these for fast tests; cmd/vault
// passes its configured overrides, which are zero (keeping these defaults)
// unless explicitly set.
const (
	defaultMasterKDFMemoryKiB   = 128 * 1024
	defaultMasterKDFIterations  = 2
	defaultMasterKDFParallelism = 12
)

var (
	masterKDFMemoryKiB   uint32 = defaultMasterKDFMemoryKiB
	masterKDFIterations  uint32 = defaultMasterKDFIterations
	masterKDFParallelism uint8  = defaultMasterKDFParallelism
)

// SetMasterKDFParams overrides the master-KDF Argon2id cost parameters.
// Zero fields are left at their current value, so a config struct that was
// never explicitly tuned (the production default) is a no-op. Tests call
// this to trade format-mandated memory/time cost for speed; the on-disk
// format itself does not record which cost was used, so a mismatched
// override between FirstLogin and Login silently derives a different
// secret key and fails as [models.ErrIncorrectPW].
func SetMasterKDFParams(memoryKiB, iterations uint32, parallelism uint8) {
	if memoryKiB != 0 {
		masterKDFMemoryKiB = memoryKiB
	}
	if iterations != 0 {
		masterKDFIterations = iterations
	}
	if parallelism != 0 {
		masterKDFParallelism = parallelism
	}
}

// DeriveMasterSecret runs the master KDF (Argon2id, m=128MiB, t=2, p=12)
// over passphrase and salt, then checks the candidate against the
// secp256k1 validity rule: non-zero and strictly less than the curve's
// group order N. An invalid candidate is reported as
// [models.ErrIncorrectPW] — callers with a fixed, persisted salt (login)
// treat this the same as a wrong password rather than retrying, since a
// retry over the same salt would reproduce the same candidate.
func DeriveMasterSecret(passphrase string, salt models.Salt) (secret.Array32, error) {
	derived := argon2.IDKey([]byte(passphrase), salt[:], masterKDFIterations, masterKDFMemoryKiB, masterKDFParallelism, masterKDFKeyLen)
	defer secret.Zero(derived)

	var out secret.Array32
	copy(out.ExposeMut(), derived)

	if !isValidSecretKey(&out) {
		out.Zero()
		return secret.Array32{}, models.ErrIncorrectPW
	}
	return out, nil
}

// isValidSecretKey reports whether key is usable as a secp256k1 private
// key: non-zero and strictly less than the curve's group order N.
func isValidSecretKey(key *secret.Array32) bool {
	var scalar secp256k1.ModNScalar
	overflow := scalar.SetByteSlice(key.Expose())
	valid := overflow == false && !scalar.IsZero()
	scalar.Zero()
	return valid
}
