// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
)

// Cache - remembers reads from an immutable snapshot
type Cache interface {
	Get(string) ([]byte, bool, bool)
	Set(string, []byte)
	SetAbsent(string)
	Clear()
}

type readResult int

const (
	present readResult = iota
	absent
)

type snapshotCache struct {
	cache *cache.Cache
}

type cacheData struct {
	result readResult
	value  []byte
}

// snapshots never change so entries do not expire
func newCache() *snapshotCache {
	return &snapshotCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Get - returns value, found in database, found in cache
func (c *snapshotCache) Get(key string) ([]byte, bool, bool) {
	obj, cached := c.cache.Get(key)
	if !cached {
		return nil, false, false
	}

	data := obj.(cacheData)
	if absent == data.result {
		return nil, false, true
	}
	return data.value, true, true
}

func (c *snapshotCache) Set(key string, value []byte) {
	c.cache.Set(key, cacheData{result: present, value: value}, cache.NoExpiration)
}

// SetAbsent - remember that the key was not in the database
func (c *snapshotCache) SetAbsent(key string) {
	c.cache.Set(key, cacheData{result: absent}, cache.NoExpiration)
}

func (c *snapshotCache) Clear() {
	c.cache.Flush()
}
