// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vaultfile implements the durable on-disk file layout: the fixed
// header, the db.bin/db.bin.bak rename-based crash-recovery protocol, and
// the advisory exclusive lock guarding concurrent writers.
package vaultfile

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/rkhiriev/go-pass-keeper/models"
)

const (
	magicLen     = 28
	versionLen   = 4
	saltLen      = 32
	checksumLen  = 64
	lengthLen    = 8
	HeaderLen    = magicLen + versionLen + saltLen + checksumLen + lengthLen
)

var (
	magic   = [magicLen]byte{'[', ' ', 'D', 'B', ' ', 'f', 'i', 'l', 'e', ' ', 'o', 'f', ' ', 't', 'e', 'a', 'm', '5', ' ', 'p', 'r', 'o', 'j', 'e', 'c', 't', ' ', ']'}
	version = [versionLen]byte{0x00, 0x01, 0x00, 0x00}
)

// Header is the 136-byte fixed-layout record prefixed to every ciphertext
// body. The on-disk length field is pinned to 64-bit little-endian
// regardless of host width, unlike the native-width field in the format
// this vault's layout is ported from — a deliberate fix for cross-platform
// portability (see the open-question resolution in DESIGN.md).
type Header struct {
	Salt           models.Salt
	ChecksumSHA512 [checksumLen]byte
	CiphertextLen  uint64
}

// Empty returns a valid, empty header: zero salt, zero checksum, zero
// length. Used as the "no ciphertext yet" result of a first-login load.
func Empty() Header {
	return Header{}
}

// Marshal writes the full 136-byte header to out.
func (h Header) Marshal() []byte {
	out := make([]byte, 0, HeaderLen)
	out = append(out, magic[:]...)
	out = append(out, version[:]...)
	out = append(out, h.Salt[:]...)
	out = append(out, h.ChecksumSHA512[:]...)

	var lenBuf [lengthLen]byte
	binary.LittleEndian.PutUint64(lenBuf[:], h.CiphertextLen)
	out = append(out, lenBuf[:]...)
	return out
}

// ParseHeader validates and decodes the header prefix of data, returning
// the header and the remaining ciphertext body. Returns ErrInvalidHeader
// if data is too short or the magic doesn't match, ErrDBVersionMismatch if
// the magic matches but the version doesn't.
func ParseHeader(data []byte) (Header, []byte, error) {
	if len(data) < HeaderLen {
		return Header{}, nil, ErrInvalidHeader
	}

	head, body := data[:HeaderLen], data[HeaderLen:]
	offset := 0

	if !bytes.Equal(head[offset:offset+magicLen], magic[:]) {
		return Header{}, nil, ErrInvalidHeader
	}
	offset += magicLen

	if !bytes.Equal(head[offset:offset+versionLen], version[:]) {
		return Header{}, nil, ErrDBVersionMismatch
	}
	offset += versionLen

	var h Header
	copy(h.Salt[:], head[offset:offset+saltLen])
	offset += saltLen

	copy(h.ChecksumSHA512[:], head[offset:offset+checksumLen])
	offset += checksumLen

	h.CiphertextLen = binary.LittleEndian.Uint64(head[offset : offset+lengthLen])

	return h, body, nil
}

func init() {
	if HeaderLen != 136 {
		panic(fmt.Sprintf("vaultfile: header length invariant violated: %d", HeaderLen))
	}
}
