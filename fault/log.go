// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/bitmark-inc/logger"
)

// channel for the last words of a failing node
var critical struct {
	sync.Mutex
	log *logger.L
}

// Initialise - setup a log channel for critical messages
//
// requires logger.Initialise to have been called
func Initialise() error {
	critical.Lock()
	defer critical.Unlock()

	if nil != critical.log {
		return ErrAlreadyInitialised
	}
	critical.log = logger.New("CRITICAL")
	if nil == critical.log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush any data and detach from the logger
func Finalise() {
	critical.Lock()
	defer critical.Unlock()

	if nil != critical.log {
		critical.log.Flush()
		critical.log = nil
	}
}

// Criticalf - log a formatted message prefixed by the caller's
// location, falls back to stdout if Initialise was not called
func Criticalf(format string, arguments ...interface{}) {
	if _, file, line, ok := runtime.Caller(1); ok {
		a := make([]interface{}, 2, 2+len(arguments))
		a[0] = file
		a[1] = line
		a = append(a, arguments...)
		criticalf("(%q:%d) "+format, a...)
	} else {
		criticalf(format, arguments...)
	}
}

// PanicIfError - log and panic if err is not nil
func PanicIfError(message string, err error) {
	if nil == err {
		return
	}
	s := fmt.Sprintf("%s failed with error: %+v", message, err)
	criticalf("%s", s)
	panic(s)
}

func criticalf(format string, arguments ...interface{}) {
	critical.Lock()
	defer critical.Unlock()

	if nil == critical.log {
		fmt.Printf("*** "+format+"\n", arguments...)
		return
	}
	critical.log.Criticalf(format, arguments...)
	critical.log.Flush()
}
