// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/cryptocurrency/account"
	"github.com/bitmark-inc/cryptocurrency/merkle"
	"github.com/bitmark-inc/cryptocurrency/schema"
	"github.com/bitmark-inc/cryptocurrency/storage"
)

// TransferTx - move Sum from one wallet to another
//
// a value type: two transfers are equal when all four fields are equal
type TransferTx struct {
	Seed int64             // distinguishes otherwise identical transfers
	From account.PublicKey // wallet to debit, signs the envelope
	To   account.PublicKey // wallet to credit
	Sum  uint64            // amount, zero is allowed
}

// Status - the rule that decided the outcome of an execution
type Status int

// possible execution outcomes, only Applied changes the state
const (
	Applied = Status(iota)
	SelfTransfer
	MissingSource
	MissingDestination
	InsufficientFunds
	BalanceOverflow
)

var statusNames = []string{
	Applied:            "applied",
	SelfTransfer:       "self transfer",
	MissingSource:      "missing source wallet",
	MissingDestination: "missing destination wallet",
	InsufficientFunds:  "insufficient funds",
	BalanceOverflow:    "destination balance overflow",
}

// String - readable status
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "*unknown*"
	}
	return statusNames[s]
}

// MarshalText - status name in JSON
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// NewTransfer - build a transfer from raw key bytes
//
// keys must be 32 bytes and not all zero
func NewTransfer(seed int64, from []byte, to []byte, sum uint64) (*TransferTx, error) {
	fromKey, err := transferKey(from)
	if nil != err {
		return nil, err
	}
	toKey, err := transferKey(to)
	if nil != err {
		return nil, err
	}
	return &TransferTx{
		Seed: seed,
		From: fromKey,
		To:   toKey,
		Sum:  sum,
	}, nil
}

// IsValid - both keys present
//
// wallet existence and balances are checked by Execute
func (tx *TransferTx) IsValid() bool {
	return nil != tx && !tx.From.IsZero() && !tx.To.IsZero()
}

// Execute - apply the transfer to the wallets in the view
func (tx *TransferTx) Execute(view storage.View) error {
	_, err := tx.Apply(view)
	return err
}

// Apply - as Execute and also report which rule decided the outcome
//
// rules in order: a self transfer, a missing source, a missing
// destination, insufficient funds or an overflowing destination leave
// the view untouched. Otherwise the source is debited and the
// destination credited
func (tx *TransferTx) Apply(view storage.View) (Status, error) {
	if tx.From == tx.To {
		return SelfTransfer, nil
	}

	wallets, err := schema.New(view).Wallets()
	if nil != err {
		return Applied, err
	}

	src, found, err := wallets.Get(tx.From)
	if nil != err {
		return Applied, err
	}
	if !found {
		return MissingSource, nil
	}

	dst, found, err := wallets.Get(tx.To)
	if nil != err {
		return Applied, err
	}
	if !found {
		return MissingDestination, nil
	}

	debited, ok := src.Debit(tx.Sum)
	if !ok {
		return InsufficientFunds, nil
	}
	credited, ok := dst.Credit(tx.Sum)
	if !ok {
		return BalanceOverflow, nil
	}

	// a failure between the two writes leaves a partial fork which the
	// caller must discard
	err = wallets.Put(tx.From, debited)
	if nil != err {
		return Applied, err
	}
	err = wallets.Put(tx.To, credited)
	if nil != err {
		return Applied, err
	}
	return Applied, nil
}

// Equal - same four fields, nil only equals nil
func (tx *TransferTx) Equal(other *TransferTx) bool {
	if nil == tx || nil == other {
		return tx == other
	}
	return *tx == *other
}

// Hash - digest of the unsigned envelope, equal transfers have equal hashes
func (tx *TransferTx) Hash() merkle.Digest {
	return merkle.NewDigest(tx.body())
}
