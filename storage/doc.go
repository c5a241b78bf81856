// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - forkable key->value store
//
// A Database wraps a LevelDB instance (on disk or in memory).
// State is read through views:
//
//	Snapshot - read only, sees the database as it was when created
//	Fork     - a snapshot plus a set of staged changes; the changes
//	           become visible to others only when the fork is merged
//
// Views are acquired against a Cleaner which releases them, in
// reverse order, when it is closed.
//
// Indexes are named key ranges inside a view:
//
//	name ++ 0x00 ++ key          - entry of index "name"
//
// A ProofMap is an index with 32 byte keys whose contents can be
// summarised by a merkle root and proven by an audit path.
//
// Notes:
//  1. ++    = concatenation of byte data
//  2. names are lower case ASCII letters, digits, '_', '-' and '.'
//  3. 0x00 ++ 'V' 'E' 'R' 'S' 'I' 'O' 'N' holds the big endian
//     uint32 database version
package storage
