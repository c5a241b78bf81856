// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/comparer"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/memdb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/cryptocurrency/fault"
)

const stagedCapacity = 64 * 1024

// ordered set of changes not yet written to the database
type stagedChanges struct {
	changes *memdb.DB
}

func newStagedChanges() *stagedChanges {
	return &stagedChanges{
		changes: memdb.New(comparer.DefaultComparer, stagedCapacity),
	}
}

// returns value, found, staged
func (c *stagedChanges) get(key []byte) ([]byte, bool, bool) {
	op, err := c.changes.Get(key)
	if nil != err {
		return nil, false, false
	}
	if opDelete == op[0] {
		return nil, false, true
	}
	return op[1:], true, true
}

func (c *stagedChanges) put(key []byte, value []byte) error {
	op := make([]byte, 0, 1+len(value))
	op = append(op, opPut)
	op = append(op, value...)
	return c.changes.Put(key, op)
}

func (c *stagedChanges) remove(key []byte) error {
	return c.changes.Put(key, []byte{opDelete})
}

func (c *stagedChanges) iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return c.changes.NewIterator(searchRange)
}

// convert to a LevelDB batch in key order
func (c *stagedChanges) batch() *leveldb.Batch {
	batch := new(leveldb.Batch)
	iter := c.changes.NewIterator(nil)
	defer iter.Release()
	for iter.Next() {
		op := iter.Value()
		switch op[0] {
		case opPut:
			batch.Put(iter.Key(), op[1:])
		case opDelete:
			batch.Delete(iter.Key())
		}
	}
	return batch
}

// Fork - a snapshot with staged changes
//
// a fork is owned by a single caller; it is not safe to interleave
// reads and writes from several goroutines
type Fork struct {
	sync.Mutex
	database *Database
	base     *Snapshot
	staged   *stagedChanges
	closed   bool
}

func newFork(database *Database, base *Snapshot) *Fork {
	return &Fork{
		database: database,
		base:     base,
		staged:   newStagedChanges(),
	}
}

// Get - read a value, staged changes take precedence
func (f *Fork) Get(key []byte) ([]byte, bool, error) {
	f.Lock()
	defer f.Unlock()

	if f.closed {
		return nil, false, fault.ErrViewClosed
	}
	if value, found, staged := f.staged.get(key); staged {
		return duplicate(value), found, nil
	}
	return f.base.Get(key)
}

// Has - check if a key exists
func (f *Fork) Has(key []byte) (bool, error) {
	_, found, err := f.Get(key)
	return found, err
}

// Put - stage a write
func (f *Fork) Put(key []byte, value []byte) error {
	f.Lock()
	defer f.Unlock()

	if f.closed {
		return fault.ErrViewClosed
	}
	if err := f.staged.put(key, value); nil != err {
		return errors.Wrapf(fault.ErrStorageFailure, "put: %x  error: %s", key, err)
	}
	return nil
}

// Delete - stage a removal
func (f *Fork) Delete(key []byte) error {
	f.Lock()
	defer f.Unlock()

	if f.closed {
		return fault.ErrViewClosed
	}
	if err := f.staged.remove(key); nil != err {
		return errors.Wrapf(fault.ErrStorageFailure, "delete: %x  error: %s", key, err)
	}
	return nil
}

// Scan - visit entries with the prefix in key order, including staged changes
func (f *Fork) Scan(prefix []byte, fn func(key []byte, value []byte) bool) error {
	f.Lock()
	defer f.Unlock()

	if f.closed {
		return fault.ErrViewClosed
	}
	f.base.Lock()
	defer f.base.Unlock()
	return f.base.scan(prefix, f.staged, fn)
}

// StagedCount - number of keys changed in this fork
func (f *Fork) StagedCount() int {
	f.Lock()
	defer f.Unlock()
	return f.staged.changes.Len()
}

// detach the staged changes for merging, closing the fork
func (f *Fork) detach() (*leveldb.Batch, error) {
	f.Lock()
	defer f.Unlock()

	if f.closed {
		return nil, fault.ErrViewClosed
	}
	batch := f.staged.batch()
	f.closed = true
	f.staged.changes.Reset()
	return batch, f.base.release()
}

func (f *Fork) release() error {
	f.Lock()
	defer f.Unlock()

	f.closed = true
	f.staged.changes.Reset()
	return f.base.release()
}
