// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package probe defines the reader contract for partition table probing.
package probe

import (
	"io"
)

// Reader is a positioned reader over a device with known geometry.
//
// Implementations must not short-read silently: ReadAt either fills the
// buffer or returns an error.
type Reader interface {
	io.ReaderAt

	GetSectorSize() uint
	GetSize() uint64
}
