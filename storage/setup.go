// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/cryptocurrency/fault"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDatabaseVersion = 0x100
)

// process wide state
var globalData struct {
	once sync.Once
	log  *logger.L
}

// Initialise - one time setup of the storage layer
//
// the first call creates the logger channel, later calls do nothing.
// requires logger.Initialise to have been called
func Initialise() {
	globalData.once.Do(func() {
		globalData.log = logger.New("storage")
		globalData.log.Info("initialised")
	})
}

// Database - a LevelDB instance that forks are created from
type Database struct {
	sync.RWMutex
	name string
	db   *leveldb.DB
	log  *logger.L
}

// Open - open up the database in a directory, creating it if necessary
func Open(name string, readOnly bool) (*Database, error) {
	if nil == globalData.log {
		return nil, fault.ErrNotInitialised
	}

	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, errors.Wrapf(fault.ErrStorageFailure, "open: %q  error: %s", name, err)
	}
	return setup(name, db, readOnly)
}

// OpenMemory - a database that lives only as long as the process
func OpenMemory() (*Database, error) {
	if nil == globalData.log {
		return nil, fault.ErrNotInitialised
	}

	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, errors.Wrapf(fault.ErrStorageFailure, "open memory: %s", err)
	}
	return setup("memory", db, false)
}

func setup(name string, db *leveldb.DB, readOnly bool) (*Database, error) {
	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDatabaseVersion {
		db.Close()
		fault.Criticalf("database: %q version: %d > current version: %d", name, version, currentDatabaseVersion)
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDatabaseVersion)
	}

	if 0 == version && !readOnly {
		err = putVersion(db, currentDatabaseVersion)
		if nil != err {
			db.Close()
			return nil, err
		}
	}

	d := &Database{
		name: name,
		db:   db,
		log:  globalData.log,
	}
	d.log.Infof("opened: %q  version: %d", name, version)
	return d, nil
}

// Close - close the database, outstanding views become unusable
func (d *Database) Close() error {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	d.log.Infof("closed: %q", d.name)
	if nil != err {
		return errors.Wrapf(fault.ErrStorageFailure, "close: %q  error: %s", d.name, err)
	}
	return nil
}

// CreateSnapshot - a read only view of the current state
func (d *Database) CreateSnapshot(cleaner *Cleaner) (*Snapshot, error) {
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return nil, fault.ErrDatabaseClosed
	}

	s, err := newSnapshot(d.db)
	if nil != err {
		return nil, err
	}
	err = cleaner.Add("snapshot", s.release)
	if nil != err {
		return nil, err
	}
	return s, nil
}

// CreateFork - a mutable view of the current state
func (d *Database) CreateFork(cleaner *Cleaner) (*Fork, error) {
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return nil, fault.ErrDatabaseClosed
	}

	base, err := newSnapshot(d.db)
	if nil != err {
		return nil, err
	}
	f := newFork(d, base)
	err = cleaner.Add("fork", f.release)
	if nil != err {
		return nil, err
	}
	return f, nil
}

// Merge - atomically write the changes staged in the fork
//
// the fork cannot be used afterwards
func (d *Database) Merge(f *Fork) error {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return fault.ErrDatabaseClosed
	}
	if f.database != d {
		return fault.ErrNotForkOfDatabase
	}

	batch, err := f.detach()
	if nil != err {
		return err
	}

	err = d.db.Write(batch, nil)
	if nil != err {
		return errors.Wrapf(fault.ErrStorageFailure, "merge: %q  error: %s", d.name, err)
	}
	d.log.Debugf("merged: %d changes into: %q", batch.Len(), d.name)
	return nil
}

// return the stored version or zero for an empty database
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, errors.Wrapf(fault.ErrStorageFailure, "read version: %s", err)
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	err := db.Put(versionKey, currentVersion, nil)
	if nil != err {
		return errors.Wrapf(fault.ErrStorageFailure, "write version: %s", err)
	}
	return nil
}
