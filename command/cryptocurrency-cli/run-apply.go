// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/cryptocurrency/executor"
	"github.com/bitmark-inc/cryptocurrency/storage"
	"github.com/bitmark-inc/cryptocurrency/transactionrecord"
)

func runApply(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	records := []transactionrecord.Packed(nil)
	for _, s := range c.StringSlice("packed") {
		packed, err := parsePacked(s)
		if nil != err {
			return err
		}
		records = append(records, packed)
	}

	if file := c.String("file"); "" != file {
		buffer, err := ioutil.ReadFile(file)
		if nil != err {
			return err
		}
		split, err := executor.Split(buffer)
		if nil != err {
			return err
		}
		records = append(records, split...)
	}

	if 0 == len(records) {
		return ErrMissingPacked
	}

	cleaner := storage.NewCleaner("apply")
	defer cleaner.Close()

	database, err := openDatabase(m, false, cleaner)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "applying: %d records  verify signatures: %t\n", len(records), m.config.VerifySignatures)
	}

	summary, err := executor.New(database, m.config.VerifySignatures).Apply(records)
	if nil != err {
		return err
	}

	return m.printJson(summary)
}
