// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vaultstore

import (
	"github.com/rkhiriev/go-pass-keeper/internal/crypto"
	"github.com/rkhiriev/go-pass-keeper/models"
)

// ChangeMasterPassword rotates sess's identity to one derived from
// newPassphrase: it decrypts every record under the current user key and
// re-encrypts it under the new one, all in a scratch copy, so a mid-way
// failure leaves s and sess untouched. Only on full success does it adopt
// the new identity via [crypto.Session.Replace] and return the new salt to
// persist.
//
// "Proceed only if confirmation equals the new password" is the driver's
// responsibility (cmd/vault); this function only performs the rotation
// once the driver has already confirmed the new passphrase.
func ChangeMasterPassword(sess *crypto.Session, s *Store, newPassphrase string) (models.Salt, error) {
	oldUserKey, err := crypto.UnwrapUserKey(sess)
	if err != nil {
		return models.Salt{}, err
	}
	defer oldUserKey.Zero()

	newSess, salt, err := crypto.FirstLogin(newPassphrase)
	if err != nil {
		return models.Salt{}, err
	}

	newUserKey, err := crypto.UnwrapUserKey(newSess)
	if err != nil {
		newSess.Close()
		return models.Salt{}, err
	}
	defer newUserKey.Zero()

	rotated := make([]siteEntry, len(s.entries))
	for i, entry := range s.entries {
		inner := make(map[models.UserID]models.EncryptedUserPW, len(entry.inner))
		for id, encrypted := range entry.inner {
			pw, err := crypto.DecryptRecord(&oldUserKey, entry.site, id, encrypted)
			if err != nil {
				newSess.Close()
				return models.Salt{}, models.ErrInvalidSession
			}
			reencrypted, err := crypto.EncryptRecord(&newUserKey, entry.site, id, pw)
			if err != nil {
				newSess.Close()
				return models.Salt{}, models.ErrInvalidSession
			}
			inner[id] = reencrypted
		}
		rotated[i] = siteEntry{site: entry.site, inner: inner}
	}

	for _, entry := range s.entries {
		for _, encrypted := range entry.inner {
			zeroEncrypted(encrypted)
		}
	}
	s.entries = rotated
	sess.Replace(newSess)

	return salt, nil
}
