// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/cryptocurrency/schema"
	"github.com/bitmark-inc/cryptocurrency/storage"
	"github.com/bitmark-inc/cryptocurrency/wallet"
)

func runFund(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := parseKey(c.String("owner"))
	if nil != err {
		return err
	}
	amount := c.Uint64("amount")

	cleaner := storage.NewCleaner("fund")
	defer cleaner.Close()

	database, err := openDatabase(m, false, cleaner)
	if nil != err {
		return err
	}

	fork, err := database.CreateFork(cleaner)
	if nil != err {
		return err
	}

	wallets, err := schema.New(fork).Wallets()
	if nil != err {
		return err
	}
	err = wallets.Put(owner, wallet.New(amount))
	if nil != err {
		return err
	}

	err = database.Merge(fork)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "funded: %s\n", owner)
	}
	return m.printJson(map[string]interface{}{
		"owner":   owner,
		"balance": amount,
	})
}
