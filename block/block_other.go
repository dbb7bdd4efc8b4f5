// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

//go:build !linux

package block

import "fmt"

// NewFromPath returns a new Device from the specified path.
func NewFromPath(path string) (*Device, error) {
	return nil, fmt.Errorf("not implemented")
}

// GetSize returns blockdevice size in bytes.
func (d *Device) GetSize() (uint64, error) {
	return 0, fmt.Errorf("not implemented")
}

// GetSectorSize returns blockdevice logical sector size in bytes.
func (d *Device) GetSectorSize() uint {
	return DefaultBlockSize
}

// GetPhysicalSectorSize returns blockdevice physical sector size in bytes.
func (d *Device) GetPhysicalSectorSize() uint {
	return DefaultBlockSize
}

// GetIOSize returns blockdevice optimal I/O size in bytes.
func (d *Device) GetIOSize() (uint, error) {
	return DefaultBlockSize, nil
}

// GetMinIOSize returns blockdevice minimum I/O size in bytes.
func (d *Device) GetMinIOSize() (uint, error) {
	return DefaultBlockSize, nil
}

// IsReadOnly returns true if the blockdevice is read-only.
func (d *Device) IsReadOnly() (bool, error) {
	return false, fmt.Errorf("not implemented")
}

// Lock (and block until the lock is acquired) for the block device.
func (d *Device) Lock(exclusive bool) error {
	return fmt.Errorf("not implemented")
}

// TryLock (and return an error if failed).
func (d *Device) TryLock(exclusive bool) error {
	return fmt.Errorf("not implemented")
}

// Unlock releases any lock.
func (d *Device) Unlock() error {
	return fmt.Errorf("not implemented")
}
