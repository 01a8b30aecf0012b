// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vaultstore

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/rkhiriev/go-pass-keeper/internal/crypto"
	"github.com/rkhiriev/go-pass-keeper/models"
)

// gobEntry is the wire shape of one outer entry: encoding/gob cannot
// encode a map keyed by a struct as cleanly as a flat slice, and keeping
// the wire format independent of siteEntry's internal layout lets the
// in-memory representation change without a version bump.
type gobEntry struct {
	Site  models.SiteName
	Users map[models.UserID]models.EncryptedUserPW
}

// Marshal serializes the store with encoding/gob, the closest stdlib
// analogue available in this codebase's dependency surface to the
// reference implementation's zero-copy rkyv archive (no archive-format
// library appears anywhere in the retrieved example pack).
func (s *Store) Marshal() ([]byte, error) {
	entries := make([]gobEntry, len(s.entries))
	for i, e := range s.entries {
		entries[i] = gobEntry{Site: e.site, Users: e.inner}
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(entries); err != nil {
		return nil, fmt.Errorf("vaultstore: marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal replaces s's contents with the store encoded in data. Format
// mismatches are reported as [models.ErrInvalidSession] per the store
// boundary's error contract.
func (s *Store) Unmarshal(data []byte) error {
	var entries []gobEntry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&entries); err != nil {
		return models.ErrInvalidSession
	}

	s.entries = make([]siteEntry, len(entries))
	for i, e := range entries {
		s.entries[i] = siteEntry{site: e.Site, inner: e.Users}
	}
	return nil
}

// EncryptStore serializes s and ECIES-encrypts the result under pubKey.
func EncryptStore(s *Store, pubKey models.PubKey) ([]byte, error) {
	plain, err := s.Marshal()
	if err != nil {
		return nil, err
	}
	return crypto.EncryptBlob(pubKey, plain)
}

// DecryptStore ECIES-decrypts blob under secKey and deserializes the
// result into a new Store. Any failure, cryptographic or structural,
// collapses to [models.ErrIncorrectPW] so a wrong key is indistinguishable
// from corrupt input.
func DecryptStore(secKey [32]byte, blob []byte) (*Store, error) {
	plain, err := crypto.DecryptBlob(secKey, blob)
	if err != nil {
		return nil, models.ErrIncorrectPW
	}

	s := New()
	if err := s.Unmarshal(plain); err != nil {
		return nil, models.ErrIncorrectPW
	}
	return s, nil
}
