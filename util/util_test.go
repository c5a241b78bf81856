// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/cryptocurrency/fault"
	"github.com/bitmark-inc/cryptocurrency/util"
)

func TestFormatBytes(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0xfe, 0xff}

	expected := "expected := []byte{\n" +
		"\t0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,\n" +
		"\t0xfe, 0xff,\n" +
		"}"
	assert.Equal(t, expected, util.FormatBytes("expected", data), "formatted")
	assert.Equal(t, "empty := []byte{}", util.FormatBytes("empty", nil), "empty")
}

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/wallets.leveldb", util.EnsureAbsolute("/data", "wallets.leveldb"), "relative")
	assert.Equal(t, "/other/wallets.leveldb", util.EnsureAbsolute("/data", "/other/../other/wallets.leveldb"), "absolute")
}

func TestRequireExisting(t *testing.T) {
	assert.Nil(t, util.RequireExisting("directory", os.TempDir()), "temp dir")

	err := util.RequireExisting("database", "/no/such/wallets.leveldb")
	assert.True(t, fault.IsErrNotFound(err), "missing file: %v", err)
	assert.Equal(t, fault.ErrFileNotFound, errors.Cause(err), "cause")
	assert.Contains(t, err.Error(), "database", "kind in message")
}
