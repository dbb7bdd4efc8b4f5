// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

//go:build !linux

package mbr

import (
	"fmt"
	"os"
)

// ProbePath returns the disk report for the specified path.
func ProbePath(devpath string, opts ...ProbeOption) (*Info, error) {
	return nil, fmt.Errorf("not implemented")
}

// Probe returns the disk report for the specified file.
func Probe(f *os.File, opts ...ProbeOption) (*Info, error) {
	return nil, fmt.Errorf("not implemented")
}
