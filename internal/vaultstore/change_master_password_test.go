// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package vaultstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkhiriev/go-pass-keeper/internal/crypto"
)

func TestChangeMasterPassword_RotatesRecords(t *testing.T) {
	_, salt, err := crypto.FirstLogin("correct horse battery staple")
	require.NoError(t, err)
	sess, err := crypto.Login("correct horse battery staple", salt)
	require.NoError(t, err)
	defer sess.RetireSecretKey()

	userKey, err := crypto.UnwrapUserKey(sess)
	require.NoError(t, err)
	defer userKey.Zero()

	s := New()
	require.NoError(t, s.Add(&userKey, testSite("example.com"), "alice", "s3cret!"))

	newSalt, err := ChangeMasterPassword(sess, s, "RosebudDaisy9")
	require.NoError(t, err)
	assert.NotEqual(t, salt, newSalt)

	newUserKey, err := crypto.UnwrapUserKey(sess)
	require.NoError(t, err)
	defer newUserKey.Zero()

	pw, err := s.Get(&newUserKey, testSite("example.com"), "alice")
	require.NoError(t, err)
	assert.Equal(t, "s3cret!", string(pw))

	_, err = s.Get(&userKey, testSite("example.com"), "alice")
	assert.Error(t, err)
}
