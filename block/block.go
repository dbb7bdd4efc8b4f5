// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package block provides support for read-only operations on blockdevices.
package block

import "os"

// Device wraps blockdevice operations.
type Device struct {
	f *os.File

	ownedFile bool
}

// NewFromFile returns a new Device from the specified file.
//
// The file is not owned by the Device and should be closed by the caller.
func NewFromFile(f *os.File) *Device {
	return &Device{f: f}
}

// Close the device if the file is owned by the Device.
func (d *Device) Close() error {
	if !d.ownedFile {
		return nil
	}

	return d.f.Close()
}

// File returns the underlying os.File.
func (d *Device) File() *os.File {
	return d.f
}

// DefaultBlockSize is the default block size in bytes.
const DefaultBlockSize = 512

func isPowerOf2[T uint8 | uint16 | uint32 | uint64 | uint](num T) bool {
	return (num != 0 && ((num & (num - 1)) == 0))
}
