// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EncryptedUserPW is an opaque AEAD ciphertext-plus-tag blob. It is bound to
// the (SiteName, UserID) pair that supplied its nonce at encryption time and
// cannot be decrypted standalone.
type EncryptedUserPW []byte

// Clone returns a copy of e so callers can retire the original (e.g. zero
// it) without affecting stored state.
func (e EncryptedUserPW) Clone() EncryptedUserPW {
	if e == nil {
		return nil
	}
	out := make(EncryptedUserPW, len(e))
	copy(out, e)
	return out
}
