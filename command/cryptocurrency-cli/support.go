// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"

	"github.com/bitmark-inc/cryptocurrency/account"
	"github.com/bitmark-inc/cryptocurrency/fault"
	"github.com/bitmark-inc/cryptocurrency/storage"
	"github.com/bitmark-inc/cryptocurrency/transactionrecord"
	"github.com/bitmark-inc/cryptocurrency/util"
)

// common errors - keep in alphabetic order
const (
	ErrMissingOwner  = fault.InvalidError("owner key is required")
	ErrMissingPacked = fault.InvalidError("packed transaction is required")
	ErrMissingSeed   = fault.InvalidError("sender seed is required")
)

// accept hex or base58
func parseKey(s string) (account.PublicKey, error) {
	if "" == s {
		return account.PublicKey{}, ErrMissingOwner
	}
	if hex.EncodedLen(account.PublicKeyLength) == len(s) {
		if key, err := account.PublicKeyFromHex(s); nil == err {
			return key, nil
		}
	}
	return account.PublicKeyFromBase58(s)
}

func parsePacked(s string) (transactionrecord.Packed, error) {
	if "" == s {
		return nil, ErrMissingPacked
	}
	var packed transactionrecord.Packed
	err := packed.UnmarshalText([]byte(s))
	if nil != err {
		return nil, fault.ErrMalformedEnvelope
	}
	return packed, nil
}

// open the configured database, registering its close on the cleaner
func openDatabase(m *metadata, readOnly bool, cleaner *storage.Cleaner) (*storage.Database, error) {
	if readOnly {
		err := util.RequireExisting("database", m.config.DatabaseFile())
		if nil != err {
			return nil, err
		}
	}
	database, err := storage.Open(m.config.DatabaseFile(), readOnly)
	if nil != err {
		return nil, err
	}
	err = cleaner.Add("database", database.Close)
	if nil != err {
		return nil, err
	}
	return database, nil
}
