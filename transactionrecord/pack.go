// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/binary"

	"github.com/bitmark-inc/cryptocurrency/account"
	"github.com/bitmark-inc/cryptocurrency/fault"
)

// TransferPackedLength - bytes in a packed transfer including the signature
const TransferPackedLength = transferBodyLength + signatureLength

const transferBodyLength = headerLength + 8 + account.PublicKeyLength + account.PublicKeyLength + 8

// TransferConverter - codec between a transfer and its envelope
type TransferConverter struct{}

// Converter - the transfer codec
func Converter() TransferConverter {
	return TransferConverter{}
}

// ToMessage - envelope with a zero signature
func (TransferConverter) ToMessage(tx *TransferTx) Packed {
	return tx.Pack()
}

// FromMessage - decode an envelope holding exactly one transfer
func (TransferConverter) FromMessage(record Packed) (*TransferTx, error) {
	t, n, err := record.Unpack()
	if nil != err {
		return nil, err
	}
	if n != len(record) {
		return nil, fault.ErrMalformedEnvelope
	}
	tx, ok := t.(*TransferTx)
	if !ok {
		return nil, fault.ErrUnknownTransactionTag
	}
	return tx, nil
}

// pack Transfer
//
// header followed by fields in order as struct above, all big endian,
// then a zero signature
func (tx *TransferTx) Pack() Packed {
	message := make([]byte, 0, TransferPackedLength)
	message = append(message, tx.body()...)
	return append(message, make([]byte, signatureLength)...)
}

// the signed part of the envelope
func (tx *TransferTx) body() []byte {
	message := appendHeader(make([]byte, 0, transferBodyLength), TransferTag)
	message = appendUint64(message, uint64(tx.Seed))
	message = append(message, tx.From[:]...)
	message = append(message, tx.To[:]...)
	return appendUint64(message, tx.Sum)
}

// Sign - return a copy of a packed transfer signed by its source
func (record Packed) Sign(keyPair *account.KeyPair) (Packed, error) {
	tx, err := Converter().FromMessage(record)
	if nil != err {
		return nil, err
	}
	if tx.From != keyPair.PublicKey {
		return nil, fault.ErrSignerIsNotSource
	}

	signed := make(Packed, 0, TransferPackedLength)
	signed = append(signed, record[:transferBodyLength]...)
	signature := keyPair.Sign(signed)
	return append(signed, signature[:]...), nil
}

// Signature - the signature carried in the envelope
func (record Packed) Signature() (account.Signature, error) {
	if TransferPackedLength != len(record) {
		return account.Signature{}, fault.ErrMalformedEnvelope
	}
	return account.SignatureFromBytes(record[transferBodyLength:])
}

// VerifySignature - check the envelope is signed by the transfer source
func (record Packed) VerifySignature() error {
	tx, err := Converter().FromMessage(record)
	if nil != err {
		return err
	}
	signature, err := record.Signature()
	if nil != err {
		return err
	}
	if signature.IsZero() {
		return fault.ErrMissingSignature
	}
	return tx.From.CheckSignature(record[:transferBodyLength], signature)
}

func appendHeader(buffer []byte, tag TagType) []byte {
	buffer = append(buffer, NetworkId, ProtocolVersion)
	buffer = appendUint16(buffer, ServiceId)
	return appendUint16(buffer, uint16(tag))
}

func appendUint16(buffer []byte, value uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], value)
	return append(buffer, b[:]...)
}

func appendUint64(buffer []byte, value uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], value)
	return append(buffer, b[:]...)
}
