// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// UserID identifies an account within a site. It is opaque and
// case-sensitive; construct it with [internal/sitename.NewUserID] so the
// non-empty-after-trim invariant holds.
type UserID string
