// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package schema - typed access to the service's indices inside a view
package schema

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/cryptocurrency/account"
	"github.com/bitmark-inc/cryptocurrency/fault"
	"github.com/bitmark-inc/cryptocurrency/merkle"
	"github.com/bitmark-inc/cryptocurrency/storage"
	"github.com/bitmark-inc/cryptocurrency/wallet"
)

// index names
const (
	ServiceName = "cryptocurrency"
	WalletsName = ServiceName + ".wallets"
)

// IndexNames - names of all indices in the order of StateHashes
func IndexNames() []string {
	return []string{WalletsName}
}

// Schema - stateless adapter over a view
type Schema struct {
	view storage.View
}

// New - bind to a view, a fork gives write access
func New(view storage.View) *Schema {
	return &Schema{
		view: view,
	}
}

// Wallets - the owner to wallet proof map
//
// every call returns an index over the same data
func (s *Schema) Wallets() (*WalletIndex, error) {
	m, err := storage.NewProofMap(WalletsName, s.view)
	if nil != err {
		return nil, err
	}
	return &WalletIndex{m: m}, nil
}

// StateHashes - root hashes of all indices, in a fixed order
func (s *Schema) StateHashes() ([]merkle.Digest, error) {
	wallets, err := s.Wallets()
	if nil != err {
		return nil, err
	}
	root, err := wallets.RootHash()
	if nil != err {
		return nil, err
	}
	return []merkle.Digest{root}, nil
}

// WalletIndex - wallets keyed by owner public key
type WalletIndex struct {
	m *storage.ProofMap
}

// Get - the wallet for an owner, false if there is none
func (w *WalletIndex) Get(owner account.PublicKey) (wallet.Wallet, bool, error) {
	value, found, err := w.m.Get(owner.Bytes())
	if nil != err || !found {
		return wallet.Wallet{}, false, err
	}
	wt, err := wallet.Unpack(value)
	if nil != err {
		return wallet.Wallet{}, false, errors.Wrapf(fault.ErrStorageFailure, "wallet: %x  error: %s", owner.Bytes(), err)
	}
	return wt, true, nil
}

// Has - check if an owner has a wallet
func (w *WalletIndex) Has(owner account.PublicKey) (bool, error) {
	return w.m.Has(owner.Bytes())
}

// Put - store an owner's wallet
func (w *WalletIndex) Put(owner account.PublicKey, wt wallet.Wallet) error {
	return w.m.Put(owner.Bytes(), wt.Pack())
}

// Remove - delete an owner's wallet
func (w *WalletIndex) Remove(owner account.PublicKey) error {
	return w.m.Remove(owner.Bytes())
}

// Iterate - visit wallets in owner key order until fn returns false
//
// an undecodable entry stops the iteration with a storage error
func (w *WalletIndex) Iterate(fn func(owner account.PublicKey, wt wallet.Wallet) bool) error {
	var decodeErr error
	err := w.m.Iterate(func(key []byte, value []byte) bool {
		owner, err := account.PublicKeyFromBytes(key)
		if nil != err {
			decodeErr = errors.Wrapf(fault.ErrStorageFailure, "owner: %x  error: %s", key, err)
			return false
		}
		wt, err := wallet.Unpack(value)
		if nil != err {
			decodeErr = errors.Wrapf(fault.ErrStorageFailure, "wallet: %x  error: %s", key, err)
			return false
		}
		return fn(owner, wt)
	})
	if nil != err {
		return err
	}
	return decodeErr
}

// RootHash - root of the wallets proof map
func (w *WalletIndex) RootHash() (merkle.Digest, error) {
	return w.m.RootHash()
}

// Proof - evidence of an owner's wallet against RootHash
func (w *WalletIndex) Proof(owner account.PublicKey) (*storage.MapProof, error) {
	return w.m.Proof(owner.Bytes())
}
