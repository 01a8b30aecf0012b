// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package sitename constructs and validates the vault's three user-facing
// identifier types: [models.SiteName], [models.UserID], and [models.UserPW].
package sitename

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/net/publicsuffix"

	"github.com/rkhiriev/go-pass-keeper/models"
)

// New parses raw into a canonical [models.SiteName]. raw may be a bare host
// ("example.com"), a host with path ("example.com/login"), or a full URL
// ("https://www.Example.COM/login"); a dummy scheme is prefixed when none is
// present so bare hosts still parse. The host is lowercased and a leading
// "www." is stripped before the registrable domain is computed from the
// public suffix list.
//
// Returns [models.ErrEmptySiteName] or [models.ErrSiteNameContainsWhitespace]
// for malformed raw input, [models.ErrInvalidSiteURL] if the string (even
// with a dummy scheme) cannot be parsed as a URL, [models.ErrInvalidHost] if
// the parsed URL has no host, and [models.ErrInvalidDomain] if no
// registrable domain can be derived for the host.
func New(raw string) (models.SiteName, error) {
	if strings.TrimSpace(raw) == "" {
		return models.SiteName{}, models.ErrEmptySiteName
	}
	if strings.IndexFunc(raw, unicode.IsSpace) >= 0 {
		return models.SiteName{}, models.ErrSiteNameContainsWhitespace
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		parsed, err = url.Parse("dummy://" + raw)
		if err != nil {
			return models.SiteName{}, fmt.Errorf("%w: %v", models.ErrInvalidSiteURL, err)
		}
	}

	host := parsed.Hostname()
	if host == "" {
		return models.SiteName{}, models.ErrInvalidHost
	}
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")

	reg, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return models.SiteName{}, fmt.Errorf("%w: %v", models.ErrInvalidDomain, err)
	}

	return models.SiteName{Full: host, Reg: reg}, nil
}

// FromUnchecked builds a [models.SiteName] directly from already-normalized
// full/reg values without running any of [New]'s validation. The result is
// not canonicalized or checked in any way. Store.PrefixRange in
// internal/vaultstore compares Reg strings directly and does not use it.
func FromUnchecked(full, reg string) models.SiteName {
	return models.SiteName{Full: full, Reg: reg}
}

// NewUserID trims raw and returns it as a [models.UserID]. Returns
// [models.ErrEmptyUserID] if the trimmed result is empty.
func NewUserID(raw string) (models.UserID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", models.ErrEmptyUserID
	}
	return models.UserID(trimmed), nil
}

// NewUserPW trims raw and returns it as a [models.UserPW]. Returns
// [models.ErrEmptyUserPW] if the trimmed result is empty.
func NewUserPW(raw string) (models.UserPW, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", models.ErrEmptyUserPW
	}
	return models.UserPW(trimmed), nil
}
