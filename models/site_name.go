// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SiteName is a normalized host identifier under which credentials are
// filed. Full is the canonical lowercased host (www-stripped); Reg is its
// registrable domain (e.g. "example.co.uk"). Both are populated by
// [internal/sitename.New]; zero-value SiteName is never valid input to the
// store.
type SiteName struct {
	Full string
	Reg  string
}

// Less reports whether s sorts strictly before other under the Store's
// ordering: ascending (Reg, Full) lexicographic, matching the registrable
// domain as the primary sort/search key.
func (s SiteName) Less(other SiteName) bool {
	if s.Reg != other.Reg {
		return s.Reg < other.Reg
	}
	return s.Full < other.Full
}

// Equal reports whether s and other name the same site.
func (s SiteName) Equal(other SiteName) bool {
	return s.Reg == other.Reg && s.Full == other.Full
}
