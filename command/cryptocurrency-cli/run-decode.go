// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/cryptocurrency/merkle"
	"github.com/bitmark-inc/cryptocurrency/transactionrecord"
)

type decodeDisplay struct {
	Type      string        `json:"type"`
	TxId      merkle.Digest `json:"txId"`
	Valid     bool          `json:"valid"`
	Signature string        `json:"signature"`
	Info      string        `json:"info"`
}

func runDecode(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	packed, err := parsePacked(c.String("packed"))
	if nil != err {
		return err
	}

	tx, err := transactionrecord.Converter().FromMessage(packed)
	if nil != err {
		return err
	}

	name, _ := transactionrecord.RecordName(tx)

	signature := "ok"
	if err := packed.VerifySignature(); nil != err {
		signature = err.Error()
	}

	if m.verbose {
		fmt.Fprintf(m.e, "packed length: %d\n", len(packed))
	}

	return m.printJson(decodeDisplay{
		Type:      name,
		TxId:      tx.Hash(),
		Valid:     tx.IsValid(),
		Signature: signature,
		Info:      tx.Info(),
	})
}
