// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"unicode"

	"github.com/rkhiriev/go-pass-keeper/models"
)

// minMasterPWLength is the shortest accepted master passphrase.
const minMasterPWLength = 8

// Field name constants for MasterPWValidator.
const (
	FieldMasterPWEmpty      = "empty"
	FieldMasterPWLength     = "length"
	FieldMasterPWWhitespace = "whitespace"
	FieldMasterPWASCII      = "ascii"
)

// MasterPWValidator implements Validator for the master passphrase.
//
// Whitespace is deliberately NOT rejected: the reference this vault's
// format derives from defines an error variant for it
// (models.ErrMasterPWContainsWhitespace) but never wires it into its own
// passphrase check. Rather than guess at the omission, this validator
// keeps the variant available for callers that want stricter policy but
// does not enforce it by default (see FieldMasterPWWhitespace).
type MasterPWValidator struct{}

// NewMasterPWValidator constructs a MasterPWValidator.
func NewMasterPWValidator() Validator {
	return &MasterPWValidator{}
}

// Validate checks obj, which must be a string, against the default field
// set (empty, length, ASCII) unless fields restricts it. Pass
// FieldMasterPWWhitespace explicitly to additionally reject whitespace.
func (v *MasterPWValidator) Validate(_ context.Context, obj any, fields ...string) error {
	pw, ok := obj.(string)
	if !ok {
		return ErrUnsupportedType
	}

	if len(fields) == 0 {
		fields = []string{FieldMasterPWEmpty, FieldMasterPWLength, FieldMasterPWASCII}
	}

	for _, f := range fields {
		switch f {
		case FieldMasterPWEmpty:
			if pw == "" {
				return models.ErrEmptyMasterPW
			}
		case FieldMasterPWLength:
			if len(pw) < minMasterPWLength {
				return models.ErrMasterPWTooShort
			}
		case FieldMasterPWWhitespace:
			for _, r := range pw {
				if unicode.IsSpace(r) {
					return models.ErrMasterPWContainsWhitespace
				}
			}
		case FieldMasterPWASCII:
			for _, r := range pw {
				if r > unicode.MaxASCII {
					return models.ErrMasterPWNonASCII
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
