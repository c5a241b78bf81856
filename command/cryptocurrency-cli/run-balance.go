// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/cryptocurrency/account"
	"github.com/bitmark-inc/cryptocurrency/merkle"
	"github.com/bitmark-inc/cryptocurrency/schema"
	"github.com/bitmark-inc/cryptocurrency/storage"
)

type balanceDisplay struct {
	Owner    account.PublicKey `json:"owner"`
	Account  string            `json:"account"`
	Found    bool              `json:"found"`
	Balance  uint64            `json:"balance"`
	Root     merkle.Digest     `json:"root"`
	Proof    *storage.MapProof `json:"proof,omitempty"`
	Verified bool              `json:"verified"`
}

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner, err := parseKey(c.String("owner"))
	if nil != err {
		return err
	}

	cleaner := storage.NewCleaner("balance")
	defer cleaner.Close()

	database, err := openDatabase(m, true, cleaner)
	if nil != err {
		return err
	}

	snapshot, err := database.CreateSnapshot(cleaner)
	if nil != err {
		return err
	}

	wallets, err := schema.New(snapshot).Wallets()
	if nil != err {
		return err
	}

	w, found, err := wallets.Get(owner)
	if nil != err {
		return err
	}

	root, err := wallets.RootHash()
	if nil != err {
		return err
	}

	display := balanceDisplay{
		Owner:   owner,
		Account: owner.String(),
		Found:   found,
		Balance: w.Balance,
		Root:    root,
	}

	if found {
		proof, err := wallets.Proof(owner)
		if nil != err {
			return err
		}
		display.Proof = proof
		display.Verified = proof.Verify(root)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s  found: %t\n", owner, found)
	}

	return m.printJson(display)
}
