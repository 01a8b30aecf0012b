// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rkhiriev/go-pass-keeper/models"
)

func TestCredentialsValidator_Valid(t *testing.T) {
	v := NewCredentialsValidator()
	err := v.Validate(context.Background(), RawCredentials{Site: "example.com", ID: "alice", PW: "s3cret!"})
	assert.NoError(t, err)
}

func TestCredentialsValidator_EmptySite(t *testing.T) {
	v := NewCredentialsValidator()
	err := v.Validate(context.Background(), RawCredentials{Site: "  ", ID: "alice", PW: "s3cret!"})
	assert.ErrorIs(t, err, models.ErrEmptySiteName)
}

func TestCredentialsValidator_EmptyID(t *testing.T) {
	v := NewCredentialsValidator()
	err := v.Validate(context.Background(), RawCredentials{Site: "example.com", ID: "  ", PW: "s3cret!"})
	assert.ErrorIs(t, err, models.ErrEmptyUserID)
}

func TestCredentialsValidator_EmptyPW(t *testing.T) {
	v := NewCredentialsValidator()
	err := v.Validate(context.Background(), RawCredentials{Site: "example.com", ID: "alice", PW: ""})
	assert.ErrorIs(t, err, models.ErrEmptyUserPW)
}

func TestCredentialsValidator_PointerForm(t *testing.T) {
	v := NewCredentialsValidator()
	creds := &RawCredentials{Site: "example.com", ID: "alice", PW: "s3cret!"}
	assert.NoError(t, v.Validate(context.Background(), creds))
}

func TestCredentialsValidator_UnsupportedType(t *testing.T) {
	v := NewCredentialsValidator()
	err := v.Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
