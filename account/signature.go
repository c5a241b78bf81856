// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/cryptocurrency/fault"
)

// SignatureLength - bytes in an ed25519 signature
const SignatureLength = ed25519.SignatureSize

// Signature - fixed width signature as carried in an envelope
type Signature [SignatureLength]byte

// SignatureFromBytes - validate and copy a raw signature
func SignatureFromBytes(buffer []byte) (Signature, error) {
	var signature Signature
	if SignatureLength != len(buffer) {
		return signature, fault.ErrInvalidSignature
	}
	copy(signature[:], buffer)
	return signature, nil
}

// IsZero - an unsigned envelope carries the zero signature
func (signature Signature) IsZero() bool {
	return Signature{} == signature
}

// String - hex string for use by the fmt package (for %s)
func (signature Signature) String() string {
	return hex.EncodeToString(signature[:])
}

// GoString - for use by the fmt package (for %#v)
func (signature Signature) GoString() string {
	return "<signature:" + hex.EncodeToString(signature[:]) + ">"
}

// MarshalText - convert signature to hex text
func (signature Signature) MarshalText() ([]byte, error) {
	b := make([]byte, hex.EncodedLen(SignatureLength))
	hex.Encode(b, signature[:])
	return b, nil
}

// UnmarshalText - convert hex text into a signature
func (signature *Signature) UnmarshalText(s []byte) error {
	if hex.EncodedLen(SignatureLength) != len(s) {
		return fault.ErrInvalidSignature
	}
	buffer := make([]byte, SignatureLength)
	if _, err := hex.Decode(buffer, s); nil != err {
		return fault.ErrInvalidSignature
	}
	copy(signature[:], buffer)
	return nil
}
