// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/hex"

	"github.com/bitmark-inc/cryptocurrency/storage"
)

// TagType - type code for transactions
type TagType uint16

// enumerate the possible transaction record types
// this is encoded as a big endian uint16 in the "Packed" header
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	CreateWalletTag = TagType(iota) // reserved: wallets are created outside this service
	TransferTag     = TagType(iota) // move funds between two wallets

	// this item must be last
	InvalidTag = TagType(iota)
)

// envelope header values shared by all nodes
const (
	NetworkId       = 0x00
	ProtocolVersion = 0x00
	ServiceId       = 42
)

// byte sizes for the envelope
const (
	headerLength    = 1 + 1 + 2 + 2
	signatureLength = 64
)

// Packed - packed records are just a byte slice
type Packed []byte

// Transaction - generic transaction interface
//
// the set of implementations is closed: Unpack only produces the
// types enumerated by TagType
type Transaction interface {
	// IsValid - structural check, independent of any state
	IsValid() bool

	// Execute - apply to a view; business rule failures are not
	// errors, only storage failures are returned
	Execute(view storage.View) error

	// Info - canonical JSON description
	Info() string

	// Pack - the unsigned envelope
	Pack() Packed
}

// Type - returns the record type code
func (record Packed) Type() TagType {
	if len(record) < headerLength {
		return NullTag
	}
	tag := TagType(uint16(record[4])<<8 | uint16(record[5]))
	if tag >= InvalidTag {
		return InvalidTag
	}
	return tag
}

// RecordName - returns the name of a transaction record as a string
func RecordName(record interface{}) (string, bool) {
	switch record.(type) {
	case *TransferTx, TransferTx:
		return "Transfer", true

	default:
		return "*unknown*", false
	}
}

// MarshalText - convert a packed to its hex JSON form
func (record Packed) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(record))
	b := make([]byte, size)
	hex.Encode(b, record)
	return b, nil
}

// UnmarshalText - convert a packed to its hex JSON form
func (record *Packed) UnmarshalText(s []byte) error {
	size := hex.DecodedLen(len(s))
	*record = make([]byte, size)
	_, err := hex.Decode(*record, s)
	return err
}
