// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vaultstore implements the in-memory credential store: an ordered
// outer mapping of SiteName to an unordered inner mapping of UserID to
// EncryptedUserPW, plus serialization and ECIES blob encryption of the
// whole structure under a session's key pair.
//
// Go has no ordered map, so the outer mapping is a slice of entries kept
// sorted by [models.SiteName.Less] on every mutation — the direct
// equivalent of the Rust reference implementation's
// BTreeMap<SiteName, HashMap<UserID, EncryptedUserPW>>
// (original_source/engine/src/data_base.rs).
package vaultstore

import (
	"sort"

	"github.com/rkhiriev/go-pass-keeper/internal/crypto"
	"github.com/rkhiriev/go-pass-keeper/internal/secret"
	"github.com/rkhiriev/go-pass-keeper/models"
)

type siteEntry struct {
	site  models.SiteName
	inner map[models.UserID]models.EncryptedUserPW
}

// Store is the ordered credential store. The zero value is an empty,
// ready-to-use store, matching the "created empty on first login"
// lifecycle.
type Store struct {
	entries []siteEntry
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

func (s *Store) find(site models.SiteName) (int, bool) {
	i := sort.Search(len(s.entries), func(i int) bool {
		return !s.entries[i].site.Less(site)
	})
	if i < len(s.entries) && s.entries[i].site.Equal(site) {
		return i, true
	}
	return i, false
}

// Add encrypts pw under userKey and inserts a new record for (site, id).
// Returns [models.ErrUserAlreadyExists] if the pair is already present.
func (s *Store) Add(userKey *secret.Array32, site models.SiteName, id models.UserID, pw models.UserPW) error {
	i, found := s.find(site)
	if found {
		if _, exists := s.entries[i].inner[id]; exists {
			return models.ErrUserAlreadyExists
		}
	}

	encrypted, err := crypto.EncryptRecord(userKey, site, id, pw)
	if err != nil {
		return err
	}

	if !found {
		entry := siteEntry{site: site, inner: map[models.UserID]models.EncryptedUserPW{id: encrypted}}
		s.entries = append(s.entries, siteEntry{})
		copy(s.entries[i+1:], s.entries[i:])
		s.entries[i] = entry
		return nil
	}

	s.entries[i].inner[id] = encrypted
	return nil
}

// Change re-encrypts pw under userKey, replacing the existing record for
// (site, id) and zeroing the superseded ciphertext. Returns
// [models.ErrSiteNotFound] / [models.ErrUserNotFound] if absent.
func (s *Store) Change(userKey *secret.Array32, site models.SiteName, id models.UserID, pw models.UserPW) error {
	i, found := s.find(site)
	if !found {
		return models.ErrSiteNotFound
	}
	old, exists := s.entries[i].inner[id]
	if !exists {
		return models.ErrUserNotFound
	}

	encrypted, err := crypto.EncryptRecord(userKey, site, id, pw)
	if err != nil {
		return err
	}

	zeroEncrypted(old)
	s.entries[i].inner[id] = encrypted
	return nil
}

// Remove deletes the record for (site, id). If the inner mapping becomes
// empty, the outer entry is pruned too (invariant: no site with zero
// users). Returns [models.ErrSiteNotFound] / [models.ErrUserNotFound] if
// absent.
func (s *Store) Remove(site models.SiteName, id models.UserID) error {
	i, found := s.find(site)
	if !found {
		return models.ErrSiteNotFound
	}
	old, exists := s.entries[i].inner[id]
	if !exists {
		return models.ErrUserNotFound
	}

	zeroEncrypted(old)
	delete(s.entries[i].inner, id)

	if len(s.entries[i].inner) == 0 {
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
	}
	return nil
}

// Get decrypts and returns the password for (site, id) under userKey.
// Returns [models.ErrSiteNotFound] / [models.ErrUserNotFound] if absent, or
// [models.ErrInvalidSession] if decryption fails (wrong key, tampered
// ciphertext).
func (s *Store) Get(userKey *secret.Array32, site models.SiteName, id models.UserID) (models.UserPW, error) {
	i, found := s.find(site)
	if !found {
		return "", models.ErrSiteNotFound
	}
	encrypted, exists := s.entries[i].inner[id]
	if !exists {
		return "", models.ErrUserNotFound
	}

	return crypto.DecryptRecord(userKey, site, id, encrypted)
}

// PrefixRangeEntry is one result row of [Store.PrefixRange].
type PrefixRangeEntry struct {
	Site  models.SiteName
	Users map[models.UserID]models.EncryptedUserPW
}

// PrefixRange returns every entry whose SiteName.Reg starts with prefix, in
// ascending (Reg, Full) order. An empty prefix matches every entry.
func (s *Store) PrefixRange(prefix string) []PrefixRangeEntry {
	start := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].site.Reg >= prefix
	})

	var out []PrefixRangeEntry
	for i := start; i < len(s.entries); i++ {
		if !hasPrefix(s.entries[i].site.Reg, prefix) {
			break
		}
		out = append(out, PrefixRangeEntry{Site: s.entries[i].site, Users: s.entries[i].inner})
	}
	return out
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func zeroEncrypted(e models.EncryptedUserPW) {
	for i := range e {
		e[i] = 0
	}
}
