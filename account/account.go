// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/cryptocurrency/fault"
)

// PublicKeyLength - bytes in an ed25519 public key
const PublicKeyLength = ed25519.PublicKeySize

// PublicKey - a wallet owner's public key
//
// a value type: compare with == and use directly as a map key
type PublicKey [PublicKeyLength]byte

// PublicKeyFromBytes - validate and copy a raw key
func PublicKeyFromBytes(buffer []byte) (PublicKey, error) {
	var key PublicKey
	if PublicKeyLength != len(buffer) {
		return key, fault.ErrMalformedKey
	}
	copy(key[:], buffer)
	return key, nil
}

// PublicKeyFromHex - decode a key from hex text
func PublicKeyFromHex(s string) (PublicKey, error) {
	buffer, err := hex.DecodeString(s)
	if nil != err {
		return PublicKey{}, fault.ErrMalformedKey
	}
	return PublicKeyFromBytes(buffer)
}

// PublicKeyFromBase58 - decode a key from its base58 display form
func PublicKeyFromBase58(s string) (PublicKey, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return PublicKey{}, fault.ErrMalformedKey
	}
	return PublicKeyFromBytes(buffer)
}

// Bytes - copy of the key bytes
func (key PublicKey) Bytes() []byte {
	b := make([]byte, PublicKeyLength)
	copy(b, key[:])
	return b
}

// IsZero - the all zero key is never a valid owner
func (key PublicKey) IsZero() bool {
	return PublicKey{} == key
}

// String - base58 form for use by the fmt package (for %s)
func (key PublicKey) String() string {
	return base58.Encode(key[:])
}

// GoString - hex form for use by the fmt package (for %#v)
func (key PublicKey) GoString() string {
	return "<ed25519:" + hex.EncodeToString(key[:]) + ">"
}

// MarshalText - keys are lower case hex in JSON
func (key PublicKey) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(PublicKeyLength))
	hex.Encode(buffer, key[:])
	return buffer, nil
}

// UnmarshalText - decode lower or upper case hex
func (key *PublicKey) UnmarshalText(s []byte) error {
	if hex.EncodedLen(PublicKeyLength) != len(s) {
		return fault.ErrMalformedKey
	}
	buffer := make([]byte, PublicKeyLength)
	if _, err := hex.Decode(buffer, s); nil != err {
		return fault.ErrMalformedKey
	}
	copy(key[:], buffer)
	return nil
}

// CheckSignature - verify an ed25519 signature made by this key
func (key PublicKey) CheckSignature(message []byte, signature Signature) error {
	if !ed25519.Verify(ed25519.PublicKey(key[:]), message, signature[:]) {
		return fault.ErrInvalidSignature
	}
	return nil
}
