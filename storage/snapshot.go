// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/cryptocurrency/fault"
)

// Snapshot - read only view of the database at a point in time
type Snapshot struct {
	sync.Mutex
	snapshot *leveldb.Snapshot
	cache    Cache
}

func newSnapshot(db *leveldb.DB) (*Snapshot, error) {
	snapshot, err := db.GetSnapshot()
	if nil != err {
		return nil, errors.Wrapf(fault.ErrStorageFailure, "snapshot: %s", err)
	}
	return &Snapshot{
		snapshot: snapshot,
		cache:    newCache(),
	}, nil
}

// Get - read a copy of a value
func (s *Snapshot) Get(key []byte) ([]byte, bool, error) {
	s.Lock()
	defer s.Unlock()

	value, found, err := s.get(key)
	if nil != err || !found {
		return nil, found, err
	}
	return duplicate(value), true, nil
}

func (s *Snapshot) get(key []byte) ([]byte, bool, error) {
	if nil == s.snapshot {
		return nil, false, fault.ErrViewClosed
	}

	if value, found, cached := s.cache.Get(string(key)); cached {
		return value, found, nil
	}

	value, err := s.snapshot.Get(key, nil)
	if leveldb.ErrNotFound == err {
		s.cache.SetAbsent(string(key))
		return nil, false, nil
	}
	if nil != err {
		return nil, false, errors.Wrapf(fault.ErrStorageFailure, "get: %x  error: %s", key, err)
	}
	s.cache.Set(string(key), value)
	return value, true, nil
}

// Has - check if a key exists
func (s *Snapshot) Has(key []byte) (bool, error) {
	_, found, err := s.Get(key)
	return found, err
}

// Scan - visit entries with the prefix in key order
func (s *Snapshot) Scan(prefix []byte, fn func(key []byte, value []byte) bool) error {
	s.Lock()
	defer s.Unlock()

	return s.scan(prefix, nil, fn)
}

// scan the committed entries merged with optional staged changes
func (s *Snapshot) scan(prefix []byte, staged *stagedChanges, fn func(key []byte, value []byte) bool) error {
	if nil == s.snapshot {
		return fault.ErrViewClosed
	}

	searchRange := ldb_util.BytesPrefix(prefix)
	base := s.snapshot.NewIterator(searchRange, nil)
	defer base.Release()

	if nil == staged {
		mergeScan(base, nil, fn)
	} else {
		changes := staged.iterator(searchRange)
		defer changes.Release()
		mergeScan(base, changes, fn)
	}

	if err := base.Error(); nil != err {
		return errors.Wrapf(fault.ErrStorageFailure, "scan: %x  error: %s", prefix, err)
	}
	return nil
}

func (s *Snapshot) release() error {
	s.Lock()
	defer s.Unlock()

	if nil == s.snapshot {
		return nil
	}
	s.snapshot.Release()
	s.snapshot = nil
	s.cache.Clear()
	return nil
}
