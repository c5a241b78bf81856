// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/cryptocurrency/account"
)

type keyPairDisplay struct {
	Seed      string            `json:"seed"`
	PublicKey account.PublicKey `json:"publicKey"`
	Account   string            `json:"account"`
}

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	var keyPair *account.KeyPair
	var err error
	if seed := c.String("seed"); "" != seed {
		keyPair, err = account.KeyPairFromHexSeed(seed)
	} else {
		keyPair, err = account.NewKeyPair(rand.Reader)
	}
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "public key: %#v\n", keyPair.PublicKey)
	}

	return m.printJson(keyPairDisplay{
		Seed:      hex.EncodeToString(keyPair.Seed()),
		PublicKey: keyPair.PublicKey,
		Account:   keyPair.PublicKey.String(),
	})
}
