// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/cryptocurrency/configuration"
	"github.com/bitmark-inc/cryptocurrency/fault"
	"github.com/bitmark-inc/cryptocurrency/fixtures"
	"github.com/bitmark-inc/cryptocurrency/storage"
	"github.com/bitmark-inc/cryptocurrency/transactionrecord"
)

func TestParseKey(t *testing.T) {
	expected := fixtures.FirstOwnerKey

	key, err := parseKey("5a4d6bd172cfaa9f01e2ec4895e4abc598c51e60e41b7d9995c2e41b416e8414")
	assert.Nil(t, err, "hex")
	assert.Equal(t, expected, key, "hex key")

	key, err = parseKey(expected.String())
	assert.Nil(t, err, "base58")
	assert.Equal(t, expected, key, "base58 key")

	_, err = parseKey("")
	assert.Equal(t, ErrMissingOwner, err, "empty")

	_, err = parseKey("not-a-key")
	assert.Equal(t, fault.ErrMalformedKey, err, "garbage")
}

func TestParsePacked(t *testing.T) {
	tx := &transactionrecord.TransferTx{Seed: 3, From: fixtures.FirstOwnerKey, To: fixtures.SecondOwnerKey, Sum: 9}
	text, err := tx.Pack().MarshalText()
	assert.Nil(t, err, "marshal")

	packed, err := parsePacked(string(text))
	assert.Nil(t, err, "parse")
	assert.Equal(t, tx.Pack(), packed, "packed")

	_, err = parsePacked("")
	assert.Equal(t, ErrMissingPacked, err, "empty")

	_, err = parsePacked("abc")
	assert.Equal(t, fault.ErrMalformedEnvelope, err, "odd length")
}

func TestOpenDatabaseReadOnlyMissing(t *testing.T) {
	m := &metadata{
		config: &configuration.Configuration{
			Database: configuration.DatabaseType{
				Name: "/no/such/directory/wallets.leveldb",
			},
		},
	}
	cleaner := storage.NewCleaner("test")
	defer cleaner.Close()

	database, err := openDatabase(m, true, cleaner)
	assert.Nil(t, database, "database")
	assert.True(t, fault.IsErrNotFound(err), "error: %v", err)
	assert.Equal(t, 0, cleaner.Count(), "nothing to release")
}

func TestPrintJson(t *testing.T) {
	buffer := &bytes.Buffer{}
	m := &metadata{w: buffer}

	tx := &transactionrecord.TransferTx{Seed: 1, From: fixtures.FirstOwnerKey, To: fixtures.SecondOwnerKey, Sum: 50}
	err := m.printJson(map[string]string{"info": tx.Info()})
	assert.Nil(t, err, "print")

	expected := "{\n" +
		"  \"info\": \"{\\\"seed\\\":1,\\\"fromWallet\\\":\\\"5a4d6bd172cfaa9f01e2ec4895e4abc598c51e60e41b7d9995c2e41b416e8414\\\",\\\"toWallet\\\":\\\"20b142f2d55415c993ebe05c8ea888421f5144ea078d18e7a290f2e5cec68949\\\",\\\"sum\\\":50}\"\n" +
		"}\n"
	assert.Equal(t, expected, buffer.String(), "output")
}
