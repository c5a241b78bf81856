// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test setup: predefined owner keys and a
// throwaway log directory
package fixtures

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/cryptocurrency/account"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// predefined owners, derived from fixed seeds so every run sees the
// same public keys
var (
	FirstOwner  = mustKeyPair("e2b6d1b4b2a13a4f8a9ad5b87d6c2ee0f3f20b4e7c1a1c2f3e4d5c6b7a8f9e0d")
	SecondOwner = mustKeyPair("5f9a8b7c6d5e4f3a2b1c0d9e8f7a6b5c4d3e2f1a0b9c8d7e6f5a4b3c2d1e0f9a")
	ThirdOwner  = mustKeyPair("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")

	FirstOwnerKey  = FirstOwner.PublicKey
	SecondOwnerKey = SecondOwner.PublicKey
	ThirdOwnerKey  = ThirdOwner.PublicKey
)

func mustKeyPair(seed string) *account.KeyPair {
	keyPair, err := account.KeyPairFromHexSeed(seed)
	if nil != err {
		panic(fmt.Sprintf("fixture seed: %q error: %s", seed, err))
	}
	return keyPair
}

// SetupTestLogger - start logging into a scratch directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
