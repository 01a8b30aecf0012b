// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "errors"

// Master-passphrase errors.
var (
	// ErrEmptyMasterPW is returned when the master passphrase is empty.
	ErrEmptyMasterPW = errors.New("master passphrase is empty")

	// ErrMasterPWTooShort is returned when the master passphrase is shorter
	// than the minimum required length.
	ErrMasterPWTooShort = errors.New("master passphrase is too short")

	// ErrMasterPWContainsWhitespace is returned when the master passphrase
	// contains whitespace. The default master-passphrase policy does not
	// reject on this condition; internal/validators.MasterPWValidator returns
	// it only when FieldMasterPWWhitespace is requested (see DESIGN.md).
	ErrMasterPWContainsWhitespace = errors.New("master passphrase contains whitespace")

	// ErrMasterPWNonASCII is returned when the master passphrase contains
	// non-ASCII bytes.
	ErrMasterPWNonASCII = errors.New("master passphrase contains non-ASCII characters")

	// ErrIncorrectPW is returned whenever decryption under a candidate
	// master secret fails, whether due to a wrong passphrase or a tampered
	// ciphertext. The two causes are deliberately indistinguishable.
	ErrIncorrectPW = errors.New("incorrect master password")

	// ErrInvalidSession is returned when a session operation (unwrap,
	// record decrypt) fails because the session's key material no longer
	// matches what produced the ciphertext — wrong machine, wrong process,
	// or a stale wrapped key.
	ErrInvalidSession = errors.New("invalid session")
)

// SiteName errors.
var (
	// ErrEmptySiteName is returned when the raw site string is empty.
	ErrEmptySiteName = errors.New("site name is empty")

	// ErrSiteNameContainsWhitespace is returned when the raw site string
	// contains whitespace.
	ErrSiteNameContainsWhitespace = errors.New("site name contains whitespace")

	// ErrInvalidSiteURL is returned when the site string cannot be parsed
	// as a URL even after prefixing a dummy scheme.
	ErrInvalidSiteURL = errors.New("site name is not a valid url")

	// ErrInvalidHost is returned when a parsed site URL has no host
	// component.
	ErrInvalidHost = errors.New("site name has no host")

	// ErrInvalidDomain is returned when the registrable domain of a site's
	// host cannot be determined from the public suffix list.
	ErrInvalidDomain = errors.New("site name has no registrable domain")
)

// UserID / UserPW errors.
var (
	// ErrEmptyUserID is returned when a UserID is empty after trimming.
	ErrEmptyUserID = errors.New("user id is empty")

	// ErrEmptyUserPW is returned when a UserPW is empty after trimming.
	ErrEmptyUserPW = errors.New("user password is empty")
)

// Store errors.
var (
	// ErrUserNotFound is returned when no record exists for the given
	// UserID under a SiteName that is itself present.
	ErrUserNotFound = errors.New("user not found")

	// ErrSiteNotFound is returned when no entry exists for the given
	// SiteName at all.
	ErrSiteNotFound = errors.New("site not found")

	// ErrUserAlreadyExists is returned by Add when a record already exists
	// for the given (SiteName, UserID) pair.
	ErrUserAlreadyExists = errors.New("user already exists for site")
)
