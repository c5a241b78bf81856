// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/cryptocurrency/configuration"
	"github.com/bitmark-inc/cryptocurrency/fault"
	"github.com/bitmark-inc/cryptocurrency/storage"
)

type metadata struct {
	config  *configuration.Configuration
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "cryptocurrency-cli"
	app.Usage = "sign, inspect and apply wallet transfers"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "cryptocurrency.conf",
			Usage: " configuration `FILE` for commands that access the database",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate key pair",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: " derive from an existing 32 byte `HEX` seed",
				},
			},
			Action: runGenerate,
		},
		{
			Name:      "transfer",
			Usage:     "create a signed transfer",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: "*sender key seed `HEX`",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*receiver public key `KEY` (hex or base58)",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*amount to transfer `AMOUNT`",
				},
				cli.Int64Flag{
					Name:  "nonce, n",
					Value: 0,
					Usage: " transfer seed value to distinguish identical transfers `NONCE` (default random)",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "decode",
			Usage:     "decode a packed transaction",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "packed, p",
					Value: "",
					Usage: "*packed transaction `HEX`",
				},
			},
			Action: runDecode,
		},
		{
			Name:      "fund",
			Usage:     "set a wallet balance directly (administrative, not a transaction)",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*wallet owner `KEY` (hex or base58)",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: " balance `AMOUNT`",
				},
			},
			Action: runFund,
		},
		{
			Name:      "apply",
			Usage:     "execute packed transactions against the database",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringSliceFlag{
					Name:  "packed, p",
					Usage: "+packed transaction `HEX`, may be repeated",
				},
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "+binary `FILE` of concatenated packed transactions",
				},
			},
			Action: runApply,
		},
		{
			Name:      "balance",
			Usage:     "display a wallet balance and its proof",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*wallet owner `KEY` (hex or base58)",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "state",
			Usage:     "display the root hashes of the service indices",
			ArgsUsage: " ",
			Action:    runState,
		},
		{
			Name: "version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		m := &metadata{
			verbose: verbose,
			e:       e,
			w:       w,
		}
		c.App.Metadata["config"] = m

		// only database commands need the configuration
		switch c.Args().Get(0) {
		case "fund", "apply", "balance", "state":
		default:
			return nil
		}

		file := c.GlobalString("config")
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		config, err := configuration.Get(file)
		if nil != err {
			return err
		}
		m.config = config

		err = logger.Initialise(config.Logging)
		if nil != err {
			return err
		}
		err = fault.Initialise()
		if nil != err {
			return err
		}
		storage.Initialise()

		return nil
	}

	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if ok && nil != m.config {
			fault.Finalise()
			logger.Finalise()
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
