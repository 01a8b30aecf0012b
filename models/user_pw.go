// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// UserPW is a plaintext password held only transiently in memory; it is
// never serialized in the clear. Construct it with
// [internal/sitename.NewUserPW].
type UserPW string
