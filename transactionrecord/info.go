// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/cryptocurrency/account"
	"github.com/bitmark-inc/cryptocurrency/fault"
)

// JSON form of a transfer, field order fixes the key order
type transferInfo struct {
	Seed       int64             `json:"seed"`
	FromWallet account.PublicKey `json:"fromWallet"` // hex
	ToWallet   account.PublicKey `json:"toWallet"`   // hex
	Sum        uint64            `json:"sum"`
}

// Info - canonical JSON description
func (tx *TransferTx) Info() string {
	info := transferInfo{
		Seed:       tx.Seed,
		FromWallet: tx.From,
		ToWallet:   tx.To,
		Sum:        tx.Sum,
	}
	b, err := json.Marshal(info)
	fault.PanicIfError("transfer info", err)
	return string(b)
}

// ParseInfo - inverse of Info
//
// integers are decoded directly into 64 bit fields so the full range
// survives; unknown, missing, duplicate or null fields are rejected
func ParseInfo(s string) (*TransferTx, error) {
	err := checkInfoFields([]byte(s))
	if nil != err {
		return nil, err
	}

	info := transferInfo{}
	decoder := json.NewDecoder(bytes.NewReader([]byte(s)))
	decoder.DisallowUnknownFields()
	err = decoder.Decode(&info)
	if nil != err {
		if fault.IsErrInvalid(err) {
			return nil, err
		}
		return nil, errors.Wrapf(fault.ErrMalformedInfo, "%s", err)
	}

	from, err := transferKey(info.FromWallet.Bytes())
	if nil != err {
		return nil, err
	}
	to, err := transferKey(info.ToWallet.Bytes())
	if nil != err {
		return nil, err
	}

	return &TransferTx{
		Seed: info.Seed,
		From: from,
		To:   to,
		Sum:  info.Sum,
	}, nil
}

// walk the top level object once: each required field exactly once
// and never null
func checkInfoFields(buffer []byte) error {
	required := map[string]bool{
		"seed":       false,
		"fromWallet": false,
		"toWallet":   false,
		"sum":        false,
	}

	decoder := json.NewDecoder(bytes.NewReader(buffer))
	token, err := decoder.Token()
	if nil != err {
		return errors.Wrapf(fault.ErrMalformedInfo, "%s", err)
	}
	if delim, ok := token.(json.Delim); !ok || '{' != delim {
		return errors.Wrap(fault.ErrMalformedInfo, "not an object")
	}

	for decoder.More() {
		token, err := decoder.Token()
		if nil != err {
			return errors.Wrapf(fault.ErrMalformedInfo, "%s", err)
		}
		name, ok := token.(string)
		if !ok {
			return errors.Wrap(fault.ErrMalformedInfo, "field name")
		}

		var value json.RawMessage
		err = decoder.Decode(&value)
		if nil != err {
			return errors.Wrapf(fault.ErrMalformedInfo, "%s", err)
		}

		seen, known := required[name]
		if !known {
			return errors.Wrapf(fault.ErrMalformedInfo, "unknown: %q", name)
		}
		if seen {
			return errors.Wrapf(fault.ErrMalformedInfo, "duplicate: %q", name)
		}
		if "null" == string(bytes.TrimSpace(value)) {
			return errors.Wrapf(fault.ErrMalformedInfo, "null: %q", name)
		}
		required[name] = true
	}

	_, err = decoder.Token()
	if nil != err {
		return errors.Wrapf(fault.ErrMalformedInfo, "%s", err)
	}
	if decoder.More() {
		return errors.Wrap(fault.ErrMalformedInfo, "trailing data")
	}

	for name, seen := range required {
		if !seen {
			return errors.Wrapf(fault.ErrMalformedInfo, "missing: %q", name)
		}
	}
	return nil
}
