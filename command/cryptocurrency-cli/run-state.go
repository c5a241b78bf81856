// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/cryptocurrency/merkle"
	"github.com/bitmark-inc/cryptocurrency/schema"
	"github.com/bitmark-inc/cryptocurrency/storage"
)

func runState(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	cleaner := storage.NewCleaner("state")
	defer cleaner.Close()

	database, err := openDatabase(m, true, cleaner)
	if nil != err {
		return err
	}

	snapshot, err := database.CreateSnapshot(cleaner)
	if nil != err {
		return err
	}

	hashes, err := schema.New(snapshot).StateHashes()
	if nil != err {
		return err
	}

	state := make(map[string]merkle.Digest, len(hashes))
	for i, name := range schema.IndexNames() {
		state[name] = hashes[i]
	}
	return m.printJson(state)
}
