// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/cryptocurrency/fault"
)

var (
	ErrExistsOne   = fault.ExistsError("exists one ")
	ErrInvalidOne  = fault.InvalidError("invalid one")
	ErrLengthOne   = fault.LengthError("length one")
	ErrNotFoundOne = fault.NotFoundError("not found one")
	ErrProcessOne  = fault.ProcessError("process one")
	ErrRecordOne   = fault.RecordError("record one")
	ErrStorageOne  = fault.StorageError("storage one")
)

// test that the error classes are distinct, including when wrapped
func TestClasses(t *testing.T) {
	errorList := []struct {
		err      error
		exists   bool
		invalid  bool
		length   bool
		notFound bool
		process  bool
		record   bool
		storage  bool
	}{
		{ErrExistsOne, true, false, false, false, false, false, false},
		{ErrInvalidOne, false, true, false, false, false, false, false},
		{ErrLengthOne, false, false, true, false, false, false, false},
		{ErrNotFoundOne, false, false, false, true, false, false, false},
		{ErrProcessOne, false, false, false, false, true, false, false},
		{ErrRecordOne, false, false, false, false, false, true, false},
		{ErrStorageOne, false, false, false, false, false, false, true},
		{fault.ErrMalformedKey, false, true, false, false, false, false, false},
		{fault.ErrMalformedEnvelope, false, false, false, false, false, true, false},
		{fault.ErrUnknownTransactionTag, false, false, false, false, false, true, false},
		{errors.Wrap(fault.ErrStorageFailure, "get"), false, false, false, false, false, false, true},
		{errors.Wrapf(fault.ErrKeyNotFound, "key: %x", []byte{1}), false, false, false, true, false, false, false},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrLength(err) != e.length {
			t.Errorf("%d: expected 'length' == %v for err = %v", i, e.length, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrRecord(err) != e.record {
			t.Errorf("%d: expected 'record' == %v for err = %v", i, e.record, err)
		}
		if fault.IsErrStorage(err) != e.storage {
			t.Errorf("%d: expected 'storage' == %v for err = %v", i, e.storage, err)
		}
	}
}

func TestPanicIfError(t *testing.T) {
	fault.PanicIfError("no error", nil)

	defer func() {
		if r := recover(); nil == r {
			t.Fatal("expected a panic")
		}
	}()
	fault.PanicIfError("test", fault.ErrStorageFailure)
}
