// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"
	"io"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/cryptocurrency/fault"
)

// SeedLength - bytes of entropy needed to derive a key pair
const SeedLength = ed25519.SeedSize

// KeyPair - an owner's signing key and its public key
type KeyPair struct {
	PublicKey  PublicKey
	privateKey ed25519.PrivateKey
}

// NewKeyPair - generate a fresh key pair from the random source
func NewKeyPair(random io.Reader) (*KeyPair, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(random)
	if nil != err {
		return nil, err
	}
	return makeKeyPair(publicKey, privateKey), nil
}

// KeyPairFromSeed - deterministic key pair, same seed gives same keys
func KeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if SeedLength != len(seed) {
		return nil, fault.ErrInvalidKeyLength
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	publicKey := privateKey.Public().(ed25519.PublicKey)
	return makeKeyPair(publicKey, privateKey), nil
}

// KeyPairFromHexSeed - as KeyPairFromSeed with hex input
func KeyPairFromHexSeed(s string) (*KeyPair, error) {
	seed, err := hex.DecodeString(s)
	if nil != err {
		return nil, fault.ErrInvalidKeyLength
	}
	return KeyPairFromSeed(seed)
}

func makeKeyPair(publicKey ed25519.PublicKey, privateKey ed25519.PrivateKey) *KeyPair {
	keyPair := &KeyPair{
		privateKey: privateKey,
	}
	copy(keyPair.PublicKey[:], publicKey)
	return keyPair
}

// Seed - the seed that regenerates this pair
func (keyPair *KeyPair) Seed() []byte {
	return keyPair.privateKey.Seed()
}

// Sign - ed25519 signature over the message
func (keyPair *KeyPair) Sign(message []byte) Signature {
	var signature Signature
	copy(signature[:], ed25519.Sign(keyPair.privateKey, message))
	return signature
}
