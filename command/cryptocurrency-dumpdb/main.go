// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/cryptocurrency/account"
	"github.com/bitmark-inc/cryptocurrency/fault"
	"github.com/bitmark-inc/cryptocurrency/schema"
	"github.com/bitmark-inc/cryptocurrency/storage"
	"github.com/bitmark-inc/cryptocurrency/util"
	"github.com/bitmark-inc/cryptocurrency/wallet"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// colours
const (
	keyColour   = "\033[1;36m"
	valColour   = "\033[1;33m"
	errColour   = "\033[1;31m"
	rootColour  = "\033[1;32m"
	endColour   = "\033[0m"
	emptyColour = ""
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "list", HasArg: getoptions.NO_ARGUMENT, Short: 'l'},
		{Long: "colour", HasArg: getoptions.NO_ARGUMENT, Short: 'g'},
		{Long: "file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["list"]) > 0 {
		fmt.Printf(" indices:\n")
		for _, name := range schema.IndexNames() {
			fmt.Printf("       %s\n", name)
		}
		return
	}

	if len(options["help"]) > 0 || 1 != len(options["file"]) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--colour] [--count=N] --file=FILE [--list] [key-prefix]", program)
	}

	colour := len(options["colour"]) > 0
	verbose := len(options["verbose"]) > 0

	count := 10
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err {
			exitwithstatus.Message("%s: convert count error: %s", program, err)
		}
		if count < 1 {
			exitwithstatus.Message("%s: invalid count: %d", program, count)
		}
	}

	filename := options["file"][0]
	if verbose {
		fmt.Printf("read index: %s from file: %q\n", schema.WalletsName, filename)
	}

	prefix := []byte(nil)
	if len(arguments) > 0 {
		prefix, err = hex.DecodeString(arguments[0])
		if nil != err {
			exitwithstatus.Message("%s: convert prefix error: %s", program, err)
		}
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "cryptocurrency-dumpdb.log",
		Size:      1048576,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// start of main processing
	storage.Initialise()
	if err = util.RequireExisting("database", filename); nil != err {
		exitwithstatus.Message("%s: %s", program, err)
	}
	database, err := storage.Open(filename, true)
	if nil != err {
		exitwithstatus.Message("%s: storage setup failed with error: %s", program, err)
	}
	defer database.Close()

	cleaner := storage.NewCleaner("dumpdb")
	defer cleaner.Close()

	snapshot, err := database.CreateSnapshot(cleaner)
	if nil != err {
		exitwithstatus.Message("%s: snapshot error: %s", program, err)
	}

	m, err := storage.NewProofMap(schema.WalletsName, snapshot)
	if nil != err {
		exitwithstatus.Message("%s: index error: %s", program, err)
	}

	kc, vc, ec, rc, end := emptyColour, emptyColour, emptyColour, emptyColour, emptyColour
	if colour {
		kc, vc, ec, rc, end = keyColour, valColour, errColour, rootColour, endColour
	}

	n := 0
	err = m.Iterate(func(key []byte, value []byte) bool {
		if !bytes.HasPrefix(key, prefix) {
			return true
		}

		owner, _ := account.PublicKeyFromBytes(key)
		fmt.Printf("%s%x%s (%s)\n", kc, key, end, owner)

		w, err := wallet.Unpack(value)
		if nil != err {
			fmt.Printf("  %s%x%s  %s\n", ec, value, end, err)
		} else {
			fmt.Printf("  %sbalance: %d%s\n", vc, w.Balance, end)
		}

		n += 1
		return n < count
	})
	if nil != err {
		exitwithstatus.Message("%s: iterate error: %s", program, err)
	}

	root, err := m.RootHash()
	if nil != err {
		exitwithstatus.Message("%s: root hash error: %s", program, err)
	}
	fmt.Printf("%sroot: %s%s\n", rc, root, end)
}
