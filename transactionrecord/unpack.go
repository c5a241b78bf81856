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

// Unpack - turn a byte slice into a record
//
// returns the record and the number of bytes it used, so a buffer of
// several records can be unpacked one after another
//
// must cast result to correct type
//
// e.g.
//
//	switch tx := result.(type) {
//	case *transactionrecord.TransferTx:
func (record Packed) Unpack() (t Transaction, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			t = nil
			n = 0
			e = fault.ErrMalformedEnvelope
		}
	}()

	if len(record) < headerLength {
		return nil, 0, fault.ErrMalformedEnvelope
	}
	if NetworkId != record[0] || ProtocolVersion != record[1] {
		return nil, 0, fault.ErrMalformedEnvelope
	}
	if ServiceId != binary.BigEndian.Uint16(record[2:4]) {
		return nil, 0, fault.ErrUnknownTransactionTag
	}
	n = headerLength

	switch TagType(binary.BigEndian.Uint16(record[4:6])) {

	case TransferTag:
		if len(record) < TransferPackedLength {
			return nil, 0, fault.ErrMalformedEnvelope
		}

		seed := int64(binary.BigEndian.Uint64(record[n:]))
		n += 8

		from, err := transferKey(record[n : n+account.PublicKeyLength])
		if nil != err {
			return nil, 0, err
		}
		n += account.PublicKeyLength

		to, err := transferKey(record[n : n+account.PublicKeyLength])
		if nil != err {
			return nil, 0, err
		}
		n += account.PublicKeyLength

		sum := binary.BigEndian.Uint64(record[n:])
		n += 8

		// signature is carried, not interpreted
		n += signatureLength

		tx := &TransferTx{
			Seed: seed,
			From: from,
			To:   to,
			Sum:  sum,
		}
		return tx, n, nil

	default: // also NullTag and the reserved CreateWalletTag
		return nil, 0, fault.ErrUnknownTransactionTag
	}
}

// transferKey - key of a transfer endpoint, the zero key is not a key
func transferKey(buffer []byte) (account.PublicKey, error) {
	key, err := account.PublicKeyFromBytes(buffer)
	if nil != err {
		return key, err
	}
	if key.IsZero() {
		return key, fault.ErrMalformedKey
	}
	return key, nil
}
