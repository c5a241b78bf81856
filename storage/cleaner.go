// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/cryptocurrency/fault"
)

// Cleaner - releases resources acquired in a scope
//
// usage:
//
//	cleaner := storage.NewCleaner("apply")
//	defer cleaner.Close()
//	fork, err := database.CreateFork(cleaner)
type Cleaner struct {
	sync.Mutex
	description string
	actions     []cleanAction
	closed      bool
}

type cleanAction struct {
	name    string
	release func() error
}

// NewCleaner - an empty cleaner
func NewCleaner(description string) *Cleaner {
	return &Cleaner{
		description: description,
	}
}

// Add - register a release action
//
// a closed cleaner runs the action immediately and returns an error
func (c *Cleaner) Add(name string, release func() error) error {
	c.Lock()
	if !c.closed {
		c.actions = append(c.actions, cleanAction{name: name, release: release})
		c.Unlock()
		return nil
	}
	c.Unlock()

	if err := release(); nil != err {
		return errors.Wrapf(fault.ErrCleanerClosed, "%s: %s release error: %s", c.description, name, err)
	}
	return errors.Wrapf(fault.ErrCleanerClosed, "%s: %s", c.description, name)
}

// Count - number of registered actions
func (c *Cleaner) Count() int {
	c.Lock()
	defer c.Unlock()
	return len(c.actions)
}

// Close - run all actions in reverse order of registration
//
// every action is run even if some fail; closing twice does nothing
func (c *Cleaner) Close() error {
	c.Lock()
	if c.closed {
		c.Unlock()
		return nil
	}
	c.closed = true
	actions := c.actions
	c.actions = nil
	c.Unlock()

	failures := []string(nil)
	for i := len(actions) - 1; i >= 0; i -= 1 {
		if err := runAction(actions[i]); nil != err {
			failures = append(failures, fmt.Sprintf("%s: %s", actions[i].name, err))
		}
	}

	if 0 == len(failures) {
		return nil
	}
	if nil != globalData.log {
		globalData.log.Errorf("cleaner: %s  failures: %v", c.description, failures)
	}
	return errors.Wrapf(fault.ErrCloseFailures, "%s: %s", c.description, strings.Join(failures, "; "))
}

// a panicking action is reported as a failure
func runAction(action cleanAction) (err error) {
	defer func() {
		if r := recover(); nil != r {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return action.release()
}
