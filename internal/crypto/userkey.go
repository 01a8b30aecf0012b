// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/sha3"

	"github.com/rkhiriev/go-pass-keeper/internal/secret"
	"github.com/rkhiriev/go-pass-keeper/models"
)

const (
	userKeyMemoryKiB   = 64 * 1024
	userKeyIterations  = 1
	userKeyParallelism = 6
	userKeyLen         = 32
)

// userKeyHalo is the hard-coded Argon2id salt used to derive the per-record
// symmetric user key from the master secret. Part of the on-disk format:
// changing it invalidates every previously wrapped user key and requires a
// version bump.
var userKeyHalo = [32]byte{
	40, 167, 39, 179, 72, 65, 122, 230, 190, 236, 125, 99, 81, 178, 50, 71,
	35, 205, 141, 170, 74, 54, 227, 7, 92, 208, 212, 206, 126, 216, 55, 37,
}

// wrapperSalt is the hard-coded salt mixed into the machine-binding wrapper
// key alongside live system facts. Format-fixed; see userKeyHalo.
var wrapperSalt = [72]byte{
	248, 106, 27, 141, 130, 70, 18, 189, 65, 15, 132, 220, 144, 144, 143, 196,
	57, 128, 134, 145, 197, 235, 192, 209, 150, 152, 201, 113, 12, 189, 100, 93,
	92, 69, 244, 146, 157, 57, 131, 56, 143, 160, 17, 233, 114, 23, 32, 13,
	68, 9, 116, 95, 26, 104, 73, 81, 7, 7, 103, 206, 63, 251, 161, 223,
	226, 125, 184, 225, 6, 164, 65, 13,
}

// deriveUserKey derives the 32-byte symmetric user key from the master
// secret via Argon2id over the fixed userKeyHalo salt.
func deriveUserKey(master *secret.Array32) secret.Array32 {
	derived := argon2.IDKey(master.Expose(), userKeyHalo[:], userKeyIterations, userKeyMemoryKiB, userKeyParallelism, userKeyLen)
	defer secret.Zero(derived)

	var out secret.Array32
	copy(out.ExposeMut(), derived)
	return out
}

// wrapperKey derives the 32-byte machine-binding wrapper key: SHA3-256 over
// wrapperSalt followed by live process/host facts (combined pid/ppid,
// process start time, hostname, kernel version, total memory plus core
// count). Any change to those facts between wrap and unwrap — a different
// process, a different host, a restarted kernel — changes the key and
// causes unwrap to fail closed rather than silently falling back.
func wrapperKey() (secret.Array32, error) {
	h := sha3.New256()
	h.Write(wrapperSalt[:])

	var pidWord [8]byte
	binary.LittleEndian.PutUint32(pidWord[0:4], uint32(os.Getpid()))
	binary.LittleEndian.PutUint32(pidWord[4:8], uint32(os.Getppid()))
	h.Write(pidWord[:])

	startTime, err := processStartTime()
	if err != nil {
		return secret.Array32{}, fmt.Errorf("crypto: process start time: %w", err)
	}
	var startBuf [8]byte
	binary.LittleEndian.PutUint64(startBuf[:], uint64(startTime.UnixNano()))
	h.Write(startBuf[:])

	hostname, err := os.Hostname()
	if err != nil {
		return secret.Array32{}, fmt.Errorf("crypto: hostname: %w", err)
	}
	h.Write([]byte(hostname))
	h.Write([]byte(kernelVersion()))

	totalMemory, cores := memoryAndCores()
	var memBuf [8]byte
	binary.LittleEndian.PutUint64(memBuf[:], totalMemory+uint64(cores))
	h.Write(memBuf[:])

	sum := h.Sum(nil)
	defer secret.Zero(sum)

	var out secret.Array32
	copy(out.ExposeMut(), sum)
	return out, nil
}

// wrapUserKey encrypts key with AES-256-GCM under the machine-derived
// wrapper key using a fresh random nonce. Returns the wrapped blob
// (ciphertext ‖ 16-byte tag) and the nonce, which must travel alongside the
// wrapped key (on [Session]) for the matching unwrapUserKey call.
func wrapUserKey(key *secret.Array32) (secret.Bytes, secret.Array12, error) {
	wrapper, err := wrapperKey()
	if err != nil {
		return nil, secret.Array12{}, err
	}
	defer wrapper.Zero()

	block, err := aes.NewCipher(wrapper.Expose())
	if err != nil {
		return nil, secret.Array12{}, fmt.Errorf("crypto: new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, secret.Array12{}, fmt.Errorf("crypto: new gcm: %w", err)
	}

	var nonce secret.Array12
	if _, err := io.ReadFull(rand.Reader, nonce.ExposeMut()); err != nil {
		return nil, secret.Array12{}, fmt.Errorf("crypto: generate nonce: %w", err)
	}

	wrapped := gcm.Seal(nil, nonce.Expose(), key.Expose(), nil)
	return secret.Bytes(wrapped), nonce, nil
}

// unwrapUserKey decrypts wrapped with the current machine-derived wrapper
// key and the nonce produced by the matching wrapUserKey call. Any failure
// — different machine, different process invocation, or a tampered blob —
// surfaces as [models.ErrInvalidSession].
func unwrapUserKey(wrapped secret.Bytes, nonce secret.Array12) (secret.Array32, error) {
	wrapper, err := wrapperKey()
	if err != nil {
		return secret.Array32{}, models.ErrInvalidSession
	}
	defer wrapper.Zero()

	block, err := aes.NewCipher(wrapper.Expose())
	if err != nil {
		return secret.Array32{}, models.ErrInvalidSession
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return secret.Array32{}, models.ErrInvalidSession
	}

	plain, err := gcm.Open(nil, nonce.Expose(), wrapped.Expose(), nil)
	if err != nil {
		return secret.Array32{}, models.ErrInvalidSession
	}
	defer secret.Zero(plain)

	var out secret.Array32
	copy(out.ExposeMut(), plain)
	return out, nil
}
