// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/cryptocurrency/fault"
	"github.com/bitmark-inc/cryptocurrency/merkle"
)

// ProofMapKeyLength - keys of a proof map are fixed width
const ProofMapKeyLength = 32

const maxIndexNameLength = 64

// ProofMap - authenticated index inside a view
//
// the map holds no state of its own: two maps with the same name over
// the same view see each other's writes
type ProofMap struct {
	name   string
	prefix []byte
	view   View
}

// MapProof - evidence that an entry is in a map with a given root
type MapProof struct {
	Key   []byte       `json:"key"`
	Value []byte       `json:"value"`
	Proof merkle.Proof `json:"proof"`
}

// NewProofMap - bind a named index to a view
func NewProofMap(name string, view View) (*ProofMap, error) {
	if !validIndexName(name) {
		return nil, fault.ErrInvalidIndexName
	}
	if nil == view {
		return nil, fault.ErrViewClosed
	}

	prefix := make([]byte, 0, len(name)+1)
	prefix = append(prefix, name...)
	prefix = append(prefix, 0x00)

	return &ProofMap{
		name:   name,
		prefix: prefix,
		view:   view,
	}, nil
}

func validIndexName(name string) bool {
	if 0 == len(name) || len(name) > maxIndexNameLength {
		return false
	}
	for _, c := range []byte(name) {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case '_' == c || '-' == c || '.' == c:
		default:
			return false
		}
	}
	return true
}

// Name - the index name
func (m *ProofMap) Name() string {
	return m.name
}

func (m *ProofMap) prefixKey(key []byte) ([]byte, error) {
	if ProofMapKeyLength != len(key) {
		return nil, fault.ErrInvalidKeyLength
	}
	prefixedKey := make([]byte, 0, len(m.prefix)+len(key))
	prefixedKey = append(prefixedKey, m.prefix...)
	return append(prefixedKey, key...), nil
}

func (m *ProofMap) mutable() (Mutable, error) {
	mutable, ok := m.view.(Mutable)
	if !ok {
		return nil, fault.ErrReadOnlyView
	}
	return mutable, nil
}

// Get - read the value for a key, false if absent
func (m *ProofMap) Get(key []byte) ([]byte, bool, error) {
	k, err := m.prefixKey(key)
	if nil != err {
		return nil, false, err
	}
	return m.view.Get(k)
}

// Has - check if a key is present
func (m *ProofMap) Has(key []byte) (bool, error) {
	k, err := m.prefixKey(key)
	if nil != err {
		return false, err
	}
	return m.view.Has(k)
}

// Put - store a value
func (m *ProofMap) Put(key []byte, value []byte) error {
	k, err := m.prefixKey(key)
	if nil != err {
		return err
	}
	mutable, err := m.mutable()
	if nil != err {
		return err
	}
	return mutable.Put(k, value)
}

// Remove - delete a key, absent keys are ignored
func (m *ProofMap) Remove(key []byte) error {
	k, err := m.prefixKey(key)
	if nil != err {
		return err
	}
	mutable, err := m.mutable()
	if nil != err {
		return err
	}
	return mutable.Delete(k)
}

// Iterate - visit entries in key order until fn returns false
func (m *ProofMap) Iterate(fn func(key []byte, value []byte) bool) error {
	n := len(m.prefix)
	return m.view.Scan(m.prefix, func(key []byte, value []byte) bool {
		return fn(key[n:], value)
	})
}

// Entries - all entries in key order
func (m *ProofMap) Entries() ([]Element, error) {
	elements := []Element(nil)
	err := m.Iterate(func(key []byte, value []byte) bool {
		elements = append(elements, Element{Key: key, Value: value})
		return true
	})
	return elements, err
}

func leaves(elements []Element) []merkle.Digest {
	digests := make([]merkle.Digest, len(elements))
	for i, e := range elements {
		digests[i] = merkle.LeafDigest(e.Key, e.Value)
	}
	return digests
}

// RootHash - merkle root over the key ordered entries
//
// the empty map has the zero digest
func (m *ProofMap) RootHash() (merkle.Digest, error) {
	elements, err := m.Entries()
	if nil != err {
		return merkle.Digest{}, err
	}
	return merkle.Root(leaves(elements)), nil
}

// Proof - audit path for a present key
func (m *ProofMap) Proof(key []byte) (*MapProof, error) {
	if ProofMapKeyLength != len(key) {
		return nil, fault.ErrInvalidKeyLength
	}

	elements, err := m.Entries()
	if nil != err {
		return nil, err
	}
	for i, e := range elements {
		if !bytes.Equal(e.Key, key) {
			continue
		}
		proof, err := merkle.NewProof(leaves(elements), i)
		if nil != err {
			return nil, err
		}
		return &MapProof{
			Key:   e.Key,
			Value: e.Value,
			Proof: *proof,
		}, nil
	}
	return nil, errors.Wrapf(fault.ErrKeyNotFound, "map: %s  key: %x", m.name, key)
}

// Verify - check the proof against a map root
func (p *MapProof) Verify(root merkle.Digest) bool {
	return p.Proof.Verify(merkle.LeafDigest(p.Key, p.Value), root)
}
