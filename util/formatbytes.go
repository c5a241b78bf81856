// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"strings"
)

// FormatBytes - for dumping the expected hex used by some test
// routines, output is a Go byte slice literal, eight bytes per line
func FormatBytes(name string, data []byte) string {
	if 0 == len(data) {
		return name + " := []byte{}"
	}
	s := strings.Builder{}
	s.WriteString(name + " := []byte{")
	for i, b := range data {
		if 0 == i%8 {
			s.WriteString("\n\t")
		} else {
			s.WriteString(" ")
		}
		s.WriteString(fmt.Sprintf("0x%02x,", b))
	}
	s.WriteString("\n}")
	return s.String()
}
