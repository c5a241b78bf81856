// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/cryptocurrency/fault"
	"github.com/bitmark-inc/cryptocurrency/merkle"
	"github.com/bitmark-inc/cryptocurrency/storage"
)

func TestProofMapNames(t *testing.T) {
	db := openMemory(t)
	defer db.Close()

	cleaner := storage.NewCleaner("test")
	defer cleaner.Close()
	fork, err := db.CreateFork(cleaner)
	require.Nil(t, err, "fork")

	for _, name := range []string{"", "Wallets", "wal lets", "a/b", string(make([]byte, 65))} {
		_, err := storage.NewProofMap(name, fork)
		assert.Equal(t, fault.ErrInvalidIndexName, err, "name: %q", name)
	}

	m, err := storage.NewProofMap("cryptocurrency.wallets", fork)
	require.Nil(t, err, "valid name")
	assert.Equal(t, "cryptocurrency.wallets", m.Name(), "name")
}

func TestProofMapKeyLength(t *testing.T) {
	db := openMemory(t)
	defer db.Close()

	cleaner := storage.NewCleaner("test")
	defer cleaner.Close()
	fork, err := db.CreateFork(cleaner)
	require.Nil(t, err, "fork")

	m, err := storage.NewProofMap("wallets", fork)
	require.Nil(t, err, "map")

	_, _, err = m.Get([]byte("short"))
	assert.Equal(t, fault.ErrInvalidKeyLength, err, "get")
	assert.Equal(t, fault.ErrInvalidKeyLength, m.Put([]byte("short"), nil), "put")
	assert.Equal(t, fault.ErrInvalidKeyLength, m.Remove([]byte("short")), "remove")
	_, err = m.Proof([]byte("short"))
	assert.Equal(t, fault.ErrInvalidKeyLength, err, "proof")
}

func TestProofMapSharedAcrossInstances(t *testing.T) {
	db := openMemory(t)
	defer db.Close()

	cleaner := storage.NewCleaner("test")
	defer cleaner.Close()
	fork, err := db.CreateFork(cleaner)
	require.Nil(t, err, "fork")

	one, err := storage.NewProofMap("wallets", fork)
	require.Nil(t, err, "map")
	two, err := storage.NewProofMap("wallets", fork)
	require.Nil(t, err, "map")
	other, err := storage.NewProofMap("other", fork)
	require.Nil(t, err, "map")

	require.Nil(t, one.Put(key(1), []byte("one")), "put")

	value, found, err := two.Get(key(1))
	require.Nil(t, err, "get")
	assert.True(t, found, "write not shared")
	assert.Equal(t, []byte("one"), value, "value")

	has, err := other.Has(key(1))
	require.Nil(t, err, "has")
	assert.False(t, has, "index names not separated")

	require.Nil(t, two.Remove(key(1)), "remove")
	has, err = one.Has(key(1))
	require.Nil(t, err, "has")
	assert.False(t, has, "remove not shared")
}

func TestProofMapReadOnly(t *testing.T) {
	db := openMemory(t)
	defer db.Close()

	cleaner := storage.NewCleaner("test")
	defer cleaner.Close()
	snapshot, err := db.CreateSnapshot(cleaner)
	require.Nil(t, err, "snapshot")

	m, err := storage.NewProofMap("wallets", snapshot)
	require.Nil(t, err, "map")

	assert.Equal(t, fault.ErrReadOnlyView, m.Put(key(1), []byte("x")), "put")
	assert.Equal(t, fault.ErrReadOnlyView, m.Remove(key(1)), "remove")

	_, found, err := m.Get(key(1))
	require.Nil(t, err, "get")
	assert.False(t, found, "found")
}

func TestProofMapRootHash(t *testing.T) {
	db := openMemory(t)
	defer db.Close()

	cleaner := storage.NewCleaner("test")
	defer cleaner.Close()

	forward, err := db.CreateFork(cleaner)
	require.Nil(t, err, "fork")
	backward, err := db.CreateFork(cleaner)
	require.Nil(t, err, "fork")

	f, _ := storage.NewProofMap("wallets", forward)
	b, _ := storage.NewProofMap("wallets", backward)

	empty, err := f.RootHash()
	require.Nil(t, err, "root")
	assert.Equal(t, merkle.Digest{}, empty, "empty root")

	for i := byte(1); i <= 5; i += 1 {
		require.Nil(t, f.Put(key(i), []byte{i}), "put")
		require.Nil(t, b.Put(key(6-i), []byte{6 - i}), "put")
	}

	rootF, err := f.RootHash()
	require.Nil(t, err, "root")
	rootB, err := b.RootHash()
	require.Nil(t, err, "root")
	assert.Equal(t, rootF, rootB, "insertion order changed root")

	require.Nil(t, b.Put(key(3), []byte{0xff}), "put")
	changed, err := b.RootHash()
	require.Nil(t, err, "root")
	assert.NotEqual(t, rootF, changed, "value change kept root")

	entries, err := f.Entries()
	require.Nil(t, err, "entries")
	require.Equal(t, 5, len(entries), "entries")
	for i, e := range entries {
		assert.Equal(t, key(byte(i+1)), e.Key, "entry key order")
	}
}

func TestProofMapProof(t *testing.T) {
	db := openMemory(t)
	defer db.Close()

	cleaner := storage.NewCleaner("test")
	defer cleaner.Close()
	fork, err := db.CreateFork(cleaner)
	require.Nil(t, err, "fork")

	m, _ := storage.NewProofMap("wallets", fork)
	for i := byte(1); i <= 7; i += 1 {
		require.Nil(t, m.Put(key(i), []byte{i, i}), "put")
	}
	root, err := m.RootHash()
	require.Nil(t, err, "root")

	proof, err := m.Proof(key(4))
	require.Nil(t, err, "proof")
	assert.Equal(t, []byte{4, 4}, proof.Value, "value")
	assert.True(t, proof.Verify(root), "verify")

	proof.Value = []byte{4, 5}
	assert.False(t, proof.Verify(root), "tampered value verified")

	_, err = m.Proof(key(9))
	assert.True(t, fault.IsErrNotFound(err), "absent key: %v", err)
}
