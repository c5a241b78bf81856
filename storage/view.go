// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"

	"github.com/syndtr/goleveldb/leveldb/iterator"
)

// View - read access to a state
type View interface {
	// Get returns a copy of the value and true, or nil and false if the
	// key is absent
	Get(key []byte) ([]byte, bool, error)
	Has(key []byte) (bool, error)
	// Scan calls fn for each entry whose key starts with prefix, in key
	// order, until fn returns false
	Scan(prefix []byte, fn func(key []byte, value []byte) bool) error
}

// Mutable - a view whose changes are staged
type Mutable interface {
	View
	Put(key []byte, value []byte) error
	Delete(key []byte) error
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// staged operation codes, first byte of a staged value
const (
	opPut    = 0x01
	opDelete = 0x02
)

func duplicate(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

// merge committed entries with staged operations in key order
//
// staged may be nil; staged values carry an op code prefix
func mergeScan(base iterator.Iterator, staged iterator.Iterator, fn func(key []byte, value []byte) bool) {
	baseOk := base.Next()
	stagedOk := nil != staged && staged.Next()

	for baseOk || stagedOk {
		var key, value []byte
		deleted := false

		order := 1
		if baseOk && stagedOk {
			order = bytes.Compare(staged.Key(), base.Key())
		} else if stagedOk {
			order = -1
		}

		if order <= 0 {
			key = duplicate(staged.Key())
			op := staged.Value()
			deleted = opDelete == op[0]
			value = duplicate(op[1:])
			stagedOk = staged.Next()
			if 0 == order {
				baseOk = base.Next() // staged value replaces committed
			}
		} else {
			key = duplicate(base.Key())
			value = duplicate(base.Value())
			baseOk = base.Next()
		}

		if deleted {
			continue
		}
		if !fn(key, value) {
			return
		}
	}
}
