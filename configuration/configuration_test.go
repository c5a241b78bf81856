// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/cryptocurrency/configuration"
	"github.com/bitmark-inc/cryptocurrency/fault"
)

// write a configuration file into a fresh directory
func writeConfiguration(t *testing.T, content string) (string, string) {
	dir, err := ioutil.TempDir("", "configuration-test")
	require.Nil(t, err, "temp dir")

	name := filepath.Join(dir, "cryptocurrency.conf")
	err = ioutil.WriteFile(name, []byte(content), 0600)
	require.Nil(t, err, "write configuration")
	return dir, name
}

func TestGet(t *testing.T) {
	dir, name := writeConfiguration(t, `
local m = {}
m.data_directory = "."
m.verify_signatures = false
m.database = {
    directory = "db",
    name = "test.leveldb",
}
m.logging = {
    directory = "logs",
    file = "test.log",
    size = 2048,
    count = 2,
    levels = {
        main = "DEBUG",
    },
}
return m
`)
	defer os.RemoveAll(dir)

	c, err := configuration.Get(name)
	require.Nil(t, err, "get")

	assert.Equal(t, filepath.Clean(dir), c.DataDirectory, "data directory")
	assert.False(t, c.VerifySignatures, "verify signatures")
	assert.Equal(t, filepath.Join(dir, "db"), c.Database.Directory, "database directory")
	assert.Equal(t, filepath.Join(dir, "db", "test.leveldb"), c.DatabaseFile(), "database file")
	assert.Equal(t, filepath.Join(dir, "logs"), c.Logging.Directory, "log directory")
	assert.Equal(t, "test.log", c.Logging.File, "log file")
	assert.EqualValues(t, 2048, c.Logging.Size, "log size")
	assert.EqualValues(t, 2, c.Logging.Count, "log count")
	assert.Equal(t, "debug", c.Logging.Levels["main"], "main level")
	assert.Equal(t, "info", c.Logging.Levels["storage"], "default level kept")

	assert.True(t, dirExists(c.Database.Directory), "database directory not created")
	assert.True(t, dirExists(c.Logging.Directory), "log directory not created")
}

func TestGetDefaults(t *testing.T) {
	dir, name := writeConfiguration(t, `return { data_directory = "." }`)
	defer os.RemoveAll(dir)

	c, err := configuration.Get(name)
	require.Nil(t, err, "get")

	assert.True(t, c.VerifySignatures, "verify signatures")
	assert.Equal(t, filepath.Join(dir, "data", "wallets.leveldb"), c.DatabaseFile(), "database file")
	assert.Equal(t, "cryptocurrency.log", c.Logging.File, "log file")
}

func TestGetErrors(t *testing.T) {
	items := []struct {
		name    string
		content string
	}{
		{"no data directory", `return {}`},
		{"not a table", `return 5`},
		{"lua error", `return {`},
		{"database name is a path", `return { data_directory = ".", database = { name = "a/b.leveldb" } }`},
		{"log file is a path", `return { data_directory = ".", logging = { file = "/tmp/x.log" } }`},
		{"missing data directory", `return { data_directory = "/no/such/directory" }`},
	}

	for _, item := range items {
		dir, name := writeConfiguration(t, item.content)
		_, err := configuration.Get(name)
		assert.NotNil(t, err, "%s: expected error", item.name)
		os.RemoveAll(dir)
	}
}

func TestGetMissingFile(t *testing.T) {
	_, err := configuration.Get("/no/such/directory/cryptocurrency.conf")
	assert.True(t, fault.IsErrNotFound(err), "error: %v", err)
}

func TestParseConfigurationFileTarget(t *testing.T) {
	dir, name := writeConfiguration(t, `return { data_directory = "." }`)
	defer os.RemoveAll(dir)

	c := configuration.Configuration{}
	assert.Equal(t, fault.ErrInvalidStructPointer, configuration.ParseConfigurationFile(name, c), "not a pointer")

	s := "text"
	assert.Equal(t, fault.ErrInvalidStructPointer, configuration.ParseConfigurationFile(name, &s), "not a struct")

	assert.Nil(t, configuration.ParseConfigurationFile(name, &c), "struct pointer")
	assert.Equal(t, ".", c.DataDirectory, "data directory")
}

func dirExists(name string) bool {
	info, err := os.Stat(name)
	return nil == err && info.IsDir()
}
