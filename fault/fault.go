// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"github.com/pkg/errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError
type StorageError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised    = ExistsError("already initialised")
	ErrCleanerClosed         = ProcessError("cleaner is closed")
	ErrCloseFailures         = ProcessError("one or more resources failed to close")
	ErrDatabaseClosed        = ProcessError("database is closed")
	ErrFileNotFound          = NotFoundError("file not found")
	ErrInvalidIndexName      = InvalidError("invalid index name")
	ErrInvalidKeyLength      = LengthError("invalid key length")
	ErrInvalidLoggerChannel  = ProcessError("invalid logger channel")
	ErrInvalidSignature      = InvalidError("invalid signature")
	ErrInvalidStructPointer  = InvalidError("invalid struct pointer")
	ErrKeyNotFound           = NotFoundError("key not found")
	ErrMalformedEnvelope     = RecordError("malformed envelope")
	ErrMalformedInfo         = RecordError("malformed transaction info")
	ErrMalformedKey          = InvalidError("malformed key")
	ErrMalformedWallet       = RecordError("malformed wallet")
	ErrMissingSignature      = InvalidError("missing signature")
	ErrNotForkOfDatabase     = InvalidError("fork does not belong to this database")
	ErrNotInitialised        = NotFoundError("not initialised")
	ErrReadOnlyView          = InvalidError("view is read only")
	ErrSignerIsNotSource     = InvalidError("signer is not the transfer source")
	ErrStorageFailure        = StorageError("storage failure")
	ErrUnknownTransactionTag = RecordError("unknown transaction tag")
	ErrViewClosed            = InvalidError("view is closed")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }
func (e StorageError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := errors.Cause(e).(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := errors.Cause(e).(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := errors.Cause(e).(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := errors.Cause(e).(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := errors.Cause(e).(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := errors.Cause(e).(RecordError); return ok }
func IsErrStorage(e error) bool  { _, ok := errors.Cause(e).(StorageError); return ok }
