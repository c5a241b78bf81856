// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/bitmark-inc/cryptocurrency/fault"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// RequireExisting - fail unless the file or directory is present
//
// kind names the item in the error, e.g. "configuration" or "database"
func RequireExisting(kind string, name string) error {
	_, err := os.Stat(name)
	if os.IsNotExist(err) {
		return errors.Wrapf(fault.ErrFileNotFound, "%s: %q", kind, name)
	}
	if nil != err {
		return errors.Wrapf(err, "%s: %q", kind, name)
	}
	return nil
}
