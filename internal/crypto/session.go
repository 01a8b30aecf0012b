// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/rkhiriev/go-pass-keeper/internal/secret"
	"github.com/rkhiriev/go-pass-keeper/models"
)

// Session is the process-lifetime key material produced by a successful
// login. PubKey is retained for the process lifetime so saves never need
// to re-prompt for the passphrase; the secret key is retained only until
// the caller has decrypted the Store blob, after which
// [Session.RetireSecretKey] must be called; WrappedUserKey is the
// per-record symmetric key, wrapped under this process's machine-derived
// wrapper key.
//
// wrapNonce stands in for the thread-local wrap nonce of the system this
// vault's format originates from: Go has no goroutine-local storage, so the
// nonce that unwrapping needs travels as an explicit Session field instead.
// This is a deliberate adaptation of the original design, not an oversight.
type Session struct {
	PubKey         models.PubKey
	WrappedUserKey secret.Bytes

	secretKey *secret.Array32
	wrapNonce secret.Array12
}

// FirstLogin derives a brand-new identity from passphrase: it draws a
// random salt and runs the master KDF, retrying with a fresh salt whenever
// the candidate secret fails the secp256k1 validity check (vanishingly
// rare). It then derives the secp256k1 key pair and the wrapped user key,
// and discards the secret key before returning, since the caller is about
// to encrypt a (possibly empty) Store under PubKey alone, not decrypt one.
//
// Also used for master-password changes: the caller treats the result as a
// brand new identity, re-encrypts every Store record under it, and on
// success adopts it via [Session.Replace].
func FirstLogin(passphrase string) (*Session, models.Salt, error) {
	for {
		var salt models.Salt
		if _, err := io.ReadFull(rand.Reader, salt[:]); err != nil {
			return nil, models.Salt{}, err
		}

		master, err := DeriveMasterSecret(passphrase, salt)
		if err != nil {
			continue // invalid scalar candidate: redraw the salt and retry
		}

		sess, err := newSessionFromMasterSecret(&master)
		master.Zero()
		if err != nil {
			return nil, models.Salt{}, err
		}
		sess.RetireSecretKey()
		return sess, salt, nil
	}
}

// Login derives the identity for an existing vault from passphrase and its
// persisted salt. The returned Session retains its secret key until the
// caller calls [Session.RetireSecretKey], which must happen as soon as the
// Store blob has been decrypted with it. An invalid KDF candidate is
// reported as [models.ErrIncorrectPW]: the salt is fixed here, so retrying
// would only reproduce the same (wrong) candidate.
func Login(passphrase string, salt models.Salt) (*Session, error) {
	master, err := DeriveMasterSecret(passphrase, salt)
	if err != nil {
		return nil, models.ErrIncorrectPW
	}
	defer master.Zero()

	return newSessionFromMasterSecret(&master)
}

// SecretKey exposes the session's secret key for decrypting the Store
// blob. Returns ok=false once the key has been retired.
func (s *Session) SecretKey() (key [32]byte, ok bool) {
	if s.secretKey == nil {
		return [32]byte{}, false
	}
	return [32]byte(*s.secretKey), true
}

// RetireSecretKey zeroes and releases the session's secret key. Safe to
// call more than once.
func (s *Session) RetireSecretKey() {
	if s.secretKey == nil {
		return
	}
	s.secretKey.Zero()
	s.secretKey = nil
}

// WrapNonce returns the nonce paired with WrappedUserKey, required to
// unwrap the user key (see [UnwrapUserKey]).
func (s *Session) WrapNonce() secret.Array12 {
	return s.wrapNonce
}

// Replace overwrites s's key material with other's, zeroing s's previous
// wrapped user key and nonce first. Used by master-password change to
// adopt the new identity in place once every record has been re-encrypted
// successfully.
func (s *Session) Replace(other *Session) {
	s.WrappedUserKey.Zero()
	s.wrapNonce.Zero()

	s.PubKey = other.PubKey
	s.WrappedUserKey = other.WrappedUserKey
	s.wrapNonce = other.wrapNonce
	s.secretKey = other.secretKey
}

// Close zeroes every piece of key material held by the session. Call on
// logout or process exit.
func (s *Session) Close() {
	s.RetireSecretKey()
	s.WrappedUserKey.Zero()
	s.wrapNonce.Zero()
}

// newSessionFromMasterSecret derives the secp256k1 key pair and the
// wrapped user key from an already-validated master secret.
func newSessionFromMasterSecret(master *secret.Array32) (*Session, error) {
	var scalar secp256k1.ModNScalar
	scalar.SetByteSlice(master.Expose()) // already validated by DeriveMasterSecret
	priv := secp256k1.NewPrivateKey(&scalar)
	defer priv.Zero()

	var pub models.PubKey
	copy(pub[:], priv.PubKey().SerializeUncompressed())

	userKey := deriveUserKey(master)
	wrapped, nonce, err := wrapUserKey(&userKey)
	userKey.Zero()
	if err != nil {
		return nil, err
	}

	secretCopy := *master
	return &Session{
		PubKey:         pub,
		WrappedUserKey: wrapped,
		secretKey:      &secretCopy,
		wrapNonce:      nonce,
	}, nil
}
