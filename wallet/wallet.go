// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wallet - the balance record held for each owner
package wallet

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/cryptocurrency/fault"
)

// PackedLength - bytes in a packed wallet
const PackedLength = 8

// Wallet - funds held by an owner
type Wallet struct {
	Balance uint64 `json:"balance"`
}

// New - a wallet with an initial balance
func New(balance uint64) Wallet {
	return Wallet{Balance: balance}
}

// Pack - fixed width big endian encoding
func (w Wallet) Pack() []byte {
	buffer := make([]byte, PackedLength)
	binary.BigEndian.PutUint64(buffer, w.Balance)
	return buffer
}

// Unpack - inverse of Pack
func Unpack(buffer []byte) (Wallet, error) {
	if PackedLength != len(buffer) {
		return Wallet{}, errors.Wrapf(fault.ErrMalformedWallet, "length: %d", len(buffer))
	}
	return Wallet{
		Balance: binary.BigEndian.Uint64(buffer),
	}, nil
}

// Debit - remove funds, false if the balance is too low
func (w Wallet) Debit(amount uint64) (Wallet, bool) {
	if w.Balance < amount {
		return w, false
	}
	return Wallet{Balance: w.Balance - amount}, true
}

// Credit - add funds, false if the balance would overflow
func (w Wallet) Credit(amount uint64) (Wallet, bool) {
	balance := w.Balance + amount
	if balance < w.Balance {
		return w, false
	}
	return Wallet{Balance: balance}, true
}
