// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/cryptocurrency/account"
	"github.com/bitmark-inc/cryptocurrency/merkle"
	"github.com/bitmark-inc/cryptocurrency/transactionrecord"
)

type transferDisplay struct {
	TxId   merkle.Digest            `json:"txId"`
	Packed transactionrecord.Packed `json:"packed"`
	Info   string                   `json:"info"`
}

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	seed := c.String("seed")
	if "" == seed {
		return ErrMissingSeed
	}
	keyPair, err := account.KeyPairFromHexSeed(seed)
	if nil != err {
		return err
	}

	receiver, err := parseKey(c.String("receiver"))
	if nil != err {
		return err
	}

	nonce := c.Int64("nonce")
	if !c.IsSet("nonce") {
		var b [8]byte
		if _, err := rand.Read(b[:]); nil != err {
			return err
		}
		nonce = int64(binary.BigEndian.Uint64(b[:]))
	}

	tx := &transactionrecord.TransferTx{
		Seed: nonce,
		From: keyPair.PublicKey,
		To:   receiver,
		Sum:  c.Uint64("amount"),
	}
	if !tx.IsValid() {
		return fmt.Errorf("invalid transfer: %s", tx.Info())
	}

	if m.verbose {
		fmt.Fprintf(m.e, "sender: %s\n", tx.From)
		fmt.Fprintf(m.e, "receiver: %s\n", tx.To)
		fmt.Fprintf(m.e, "amount: %d\n", tx.Sum)
	}

	packed, err := transactionrecord.Converter().ToMessage(tx).Sign(keyPair)
	if nil != err {
		return err
	}

	return m.printJson(transferDisplay{
		TxId:   tx.Hash(),
		Packed: packed,
		Info:   tx.Info(),
	})
}
