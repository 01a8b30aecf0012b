// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/rkhiriev/go-pass-keeper/internal/secret"
	"github.com/rkhiriev/go-pass-keeper/models"
)

const (
	recordNonceMemoryKiB   = 64 * 1024
	recordNonceIterations  = 1
	recordNonceParallelism = 1
	recordNonceLen         = 12
)

// recordNonceHalo is the hard-coded Argon2id salt mixed into per-record
// nonce derivation. Format-fixed; see userKeyHalo.
var recordNonceHalo = [32]byte{
	203, 118, 6, 1, 225, 226, 197, 127, 221, 214, 24, 5, 239, 38, 75, 82,
	65, 111, 91, 110, 158, 25, 48, 178, 116, 137, 136, 49, 57, 192, 56, 52,
}

// deriveRecordNonce derives the deterministic 12-byte GCM nonce for one
// (site, user id) record: the two byte strings are XORed byte-for-byte,
// truncated to the length of the shorter one, and the result is run
// through Argon2id over recordNonceHalo. Same (site, id) pair always
// yields the same nonce. Every record is sealed under the same user key
// (see [EncryptRecord]), so nonce uniqueness rests on each (site, id) pair
// naming exactly one record, which an update overwrites in place, and on
// the user key changing with the master password.
func deriveRecordNonce(site models.SiteName, id models.UserID) secret.Array12 {
	a, b := []byte(site.Full), []byte(id)
	if len(b) > len(a) {
		a, b = b, a
	}
	mixed := make([]byte, len(b))
	for i := range b {
		mixed[i] = a[i] ^ b[i]
	}

	derived := argon2.IDKey(mixed, recordNonceHalo[:], recordNonceIterations, recordNonceMemoryKiB, recordNonceParallelism, recordNonceLen)
	defer secret.Zero(derived)

	var out secret.Array12
	copy(out.ExposeMut(), derived)
	return out
}

// EncryptRecord encrypts pw with AES-256-GCM under userKey, using the
// nonce deterministically derived from (site, id). The ciphertext carries
// no separate nonce field on disk: [DecryptRecord] re-derives the same
// nonce from the same (site, id) pair.
func EncryptRecord(userKey *secret.Array32, site models.SiteName, id models.UserID, pw models.UserPW) (models.EncryptedUserPW, error) {
	block, err := aes.NewCipher(userKey.Expose())
	if err != nil {
		return nil, fmt.Errorf("crypto: new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: new gcm: %w", err)
	}

	nonce := deriveRecordNonce(site, id)
	defer nonce.Zero()

	sealed := gcm.Seal(nil, nonce.Expose(), []byte(pw), nil)
	return models.EncryptedUserPW(sealed), nil
}

// DecryptRecord reverses [EncryptRecord]. An AEAD tag failure (wrong key,
// wrong (site, id) pair, or tampered ciphertext) surfaces as
// [models.ErrInvalidSession] rather than a password-specific error: the
// master passphrase was already accepted by the time a record is decrypted.
func DecryptRecord(userKey *secret.Array32, site models.SiteName, id models.UserID, encrypted models.EncryptedUserPW) (models.UserPW, error) {
	block, err := aes.NewCipher(userKey.Expose())
	if err != nil {
		return "", fmt.Errorf("crypto: new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("crypto: new gcm: %w", err)
	}

	nonce := deriveRecordNonce(site, id)
	defer nonce.Zero()

	plain, err := gcm.Open(nil, nonce.Expose(), []byte(encrypted), nil)
	if err != nil {
		return "", models.ErrInvalidSession
	}
	defer secret.Zero(plain)

	return models.UserPW(plain), nil
}

// UnwrapUserKey unwraps a Session's wrapped user key for use with
// [EncryptRecord] / [DecryptRecord]. Callers must Zero the returned key
// once done with it.
func UnwrapUserKey(sess *Session) (secret.Array32, error) {
	return unwrapUserKey(sess.WrappedUserKey, sess.wrapNonce)
}
