// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vaultstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkhiriev/go-pass-keeper/internal/secret"
	"github.com/rkhiriev/go-pass-keeper/models"
)

func testUserKey(t *testing.T) secret.Array32 {
	t.Helper()
	var key secret.Array32
	copy(key.ExposeMut(), "0123456789abcdef0123456789abcdef")
	return key
}

func testSite(full string, reg ...string) models.SiteName {
	r := full
	if len(reg) > 0 {
		r = reg[0]
	}
	return models.SiteName{Full: full, Reg: r}
}

func TestStore_AddGet(t *testing.T) {
	key := testUserKey(t)
	s := New()
	site := models.SiteName{Full: "example.com", Reg: "example.com"}

	require.NoError(t, s.Add(&key, site, "alice", "s3cret!"))

	pw, err := s.Get(&key, site, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.UserPW("s3cret!"), pw)
}

func TestStore_AddDuplicateFails(t *testing.T) {
	key := testUserKey(t)
	s := New()
	site := models.SiteName{Full: "example.com", Reg: "example.com"}

	require.NoError(t, s.Add(&key, site, "alice", "s3cret!"))
	err := s.Add(&key, site, "alice", "other")
	assert.ErrorIs(t, err, models.ErrUserAlreadyExists)
}

func TestStore_Change(t *testing.T) {
	key := testUserKey(t)
	s := New()
	site := models.SiteName{Full: "example.com", Reg: "example.com"}

	require.NoError(t, s.Add(&key, site, "alice", "s3cret!"))
	require.NoError(t, s.Change(&key, site, "alice", "newpw"))

	pw, err := s.Get(&key, site, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.UserPW("newpw"), pw)
}

func TestStore_ChangeMissingSite(t *testing.T) {
	key := testUserKey(t)
	s := New()
	err := s.Change(&key, models.SiteName{Full: "example.com", Reg: "example.com"}, "alice", "newpw")
	assert.ErrorIs(t, err, models.ErrSiteNotFound)
}

func TestStore_RemovePrunesEmptySite(t *testing.T) {
	key := testUserKey(t)
	s := New()
	site := models.SiteName{Full: "example.com", Reg: "example.com"}

	require.NoError(t, s.Add(&key, site, "alice", "s3cret!"))
	require.NoError(t, s.Remove(site, "alice"))

	_, err := s.Get(&key, site, "alice")
	assert.ErrorIs(t, err, models.ErrSiteNotFound)
}

func TestStore_RemoveKeepsSiblingUser(t *testing.T) {
	key := testUserKey(t)
	s := New()
	site := models.SiteName{Full: "example.com", Reg: "example.com"}

	require.NoError(t, s.Add(&key, site, "alice", "pw1"))
	require.NoError(t, s.Add(&key, site, "bob", "pw2"))
	require.NoError(t, s.Remove(site, "alice"))

	_, err := s.Get(&key, site, "bob")
	assert.NoError(t, err)
}

func TestStore_RemoveNotFound(t *testing.T) {
	s := New()
	err := s.Remove(models.SiteName{Full: "example.com", Reg: "example.com"}, "alice")
	assert.ErrorIs(t, err, models.ErrSiteNotFound)
}

func TestStore_PrefixRange(t *testing.T) {
	key := testUserKey(t)
	s := New()
	require.NoError(t, s.Add(&key, models.SiteName{Full: "example.com", Reg: "example.com"}, "alice", "pw"))
	require.NoError(t, s.Add(&key, models.SiteName{Full: "accounts.google.com", Reg: "google.com"}, "alice", "pw"))
	require.NoError(t, s.Add(&key, models.SiteName{Full: "example.co.uk", Reg: "example.co.uk"}, "alice", "pw"))

	results := s.PrefixRange("exa")
	require.Len(t, results, 2)
	assert.Equal(t, "example.co.uk", results[0].Site.Reg)
	assert.Equal(t, "example.com", results[1].Site.Reg)
}

func TestStore_PrefixRangeEmptyMatchesAll(t *testing.T) {
	key := testUserKey(t)
	s := New()
	require.NoError(t, s.Add(&key, models.SiteName{Full: "example.com", Reg: "example.com"}, "alice", "pw"))
	require.NoError(t, s.Add(&key, models.SiteName{Full: "accounts.google.com", Reg: "google.com"}, "alice", "pw"))

	results := s.PrefixRange("")
	assert.Len(t, results, 2)
}

func TestStore_GetWrongUserKeyFails(t *testing.T) {
	key := testUserKey(t)
	s := New()
	site := models.SiteName{Full: "example.com", Reg: "example.com"}
	require.NoError(t, s.Add(&key, site, "alice", "s3cret!"))

	var wrongKey secret.Array32
	copy(wrongKey.ExposeMut(), "fedcba9876543210fedcba9876543210")
	_, err := s.Get(&wrongKey, site, "alice")
	assert.ErrorIs(t, err, models.ErrInvalidSession)
}
