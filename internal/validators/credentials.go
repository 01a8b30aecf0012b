// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"

	"github.com/rkhiriev/go-pass-keeper/internal/sitename"
)

// RawCredentials is the unvalidated (site, id, pw) triple as typed by the
// driver before construction of models.SiteName / models.UserID /
// models.UserPW.
type RawCredentials struct {
	Site string
	ID   string
	PW   string
}

// Field name constants for CredentialsValidator.
const (
	FieldCredentialsSite = "site"
	FieldCredentialsID   = "id"
	FieldCredentialsPW   = "pw"
)

// CredentialsValidator implements Validator for RawCredentials, delegating
// each field to its constructor in internal/sitename so the same
// canonicalization and error set applies whether the caller goes through
// the validator or constructs the models directly.
type CredentialsValidator struct{}

// NewCredentialsValidator constructs a CredentialsValidator.
func NewCredentialsValidator() Validator {
	return &CredentialsValidator{}
}

// Validate checks obj, which must be a RawCredentials, against the default
// field set (site, id, pw) unless fields restricts it.
func (v *CredentialsValidator) Validate(_ context.Context, obj any, fields ...string) error {
	creds, ok := obj.(RawCredentials)
	if !ok {
		if p, ok2 := obj.(*RawCredentials); ok2 {
			creds = *p
		} else {
			return ErrUnsupportedType
		}
	}

	if len(fields) == 0 {
		fields = []string{FieldCredentialsSite, FieldCredentialsID, FieldCredentialsPW}
	}

	for _, f := range fields {
		switch f {
		case FieldCredentialsSite:
			if _, err := sitename.New(creds.Site); err != nil {
				return err
			}
		case FieldCredentialsID:
			if _, err := sitename.NewUserID(creds.ID); err != nil {
				return err
			}
		case FieldCredentialsPW:
			if _, err := sitename.NewUserPW(creds.PW); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
