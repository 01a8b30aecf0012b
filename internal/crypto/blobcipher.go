// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/rkhiriev/go-pass-keeper/internal/secret"
	"github.com/rkhiriev/go-pass-keeper/models"
)

// EncryptBlob seals plaintext (the serialized Store) for pubKey using
// ECIES over secp256k1: a fresh ephemeral key pair is generated, its
// shared point with pubKey is computed via ECDH, and SHA-256 of the
// shared X coordinate becomes the AES-256-GCM key. The ephemeral public
// key and the GCM nonce are prepended to the returned blob so
// [DecryptBlob] needs nothing but the recipient's secret key to open it.
//
// Layout: ephemeral pubkey (65 bytes, uncompressed) ‖ nonce (12 bytes) ‖
// ciphertext+tag.
func EncryptBlob(pubKey models.PubKey, plaintext []byte) ([]byte, error) {
	recipient, err := secp256k1.ParsePubKey(pubKey[:])
	if err != nil {
		return nil, fmt.Errorf("crypto: parse recipient public key: %w", err)
	}

	ephemeral, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("crypto: generate ephemeral key: %w", err)
	}
	defer ephemeral.Zero()

	aesKey := ecdhAESKey(ephemeral, recipient)
	defer secret.Zero(aesKey[:])

	block, err := aes.NewCipher(aesKey[:])
	if err != nil {
		return nil, fmt.Errorf("crypto: new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: new gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("crypto: generate nonce: %w", err)
	}

	ephemeralPub := ephemeral.PubKey().SerializeUncompressed()
	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	blob := make([]byte, 0, len(ephemeralPub)+len(nonce)+len(ciphertext))
	blob = append(blob, ephemeralPub...)
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)
	return blob, nil
}

// DecryptBlob reverses [EncryptBlob] using the recipient's secret key.
func DecryptBlob(secKey [32]byte, blob []byte) ([]byte, error) {
	const pubKeyLen = 65
	const nonceLen = 12
	if len(blob) < pubKeyLen+nonceLen {
		return nil, fmt.Errorf("crypto: blob too short")
	}

	ephemeralPub, err := secp256k1.ParsePubKey(blob[:pubKeyLen])
	if err != nil {
		return nil, fmt.Errorf("crypto: parse ephemeral public key: %w", err)
	}
	nonce := blob[pubKeyLen : pubKeyLen+nonceLen]
	ciphertext := blob[pubKeyLen+nonceLen:]

	var scalar secp256k1.ModNScalar
	scalar.SetBytes(&secKey)
	priv := secp256k1.NewPrivateKey(&scalar)
	defer priv.Zero()

	aesKey := ecdhAESKey(priv, ephemeralPub)
	defer secret.Zero(aesKey[:])

	block, err := aes.NewCipher(aesKey[:])
	if err != nil {
		return nil, fmt.Errorf("crypto: new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: new gcm: %w", err)
	}

	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, models.ErrIncorrectPW
	}
	return plain, nil
}

// ecdhAESKey computes the ECDH shared secret between priv and pub (the
// affine X coordinate of priv*pub) and returns SHA-256 of it as an
// AES-256 key.
func ecdhAESKey(priv *secp256k1.PrivateKey, pub *secp256k1.PublicKey) [32]byte {
	var pubJacobian secp256k1.JacobianPoint
	pub.AsJacobian(&pubJacobian)

	var shared secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&priv.Key, &pubJacobian, &shared)
	shared.ToAffine()

	xBytes := shared.X.Bytes()
	return sha256.Sum256(xBytes[:])
}
