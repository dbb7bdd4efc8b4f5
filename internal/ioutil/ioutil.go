// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package ioutil provides IO utility functions.
package ioutil

import (
	"fmt"
	"io"
)

// ReadFullAt reads exactly len(buf) bytes at the absolute offset.
//
// Truncated reads are reported as errors annotated with the requested
// offset, with io.EOF converted to io.ErrUnexpectedEOF so that callers
// treat any truncation uniformly.
func ReadFullAt(r io.ReaderAt, buf []byte, offset int64) error {
	for read := 0; read < len(buf); {
		n, err := r.ReadAt(buf[read:], offset+int64(read))

		read += n

		switch {
		case err == io.EOF && read == len(buf):
			return nil
		case err == io.EOF:
			return fmt.Errorf("short read of %d bytes at offset %d: %w", len(buf), offset, io.ErrUnexpectedEOF)
		case err != nil:
			return fmt.Errorf("reading %d bytes at offset %d: %w", len(buf), offset, err)
		}
	}

	return nil
}
