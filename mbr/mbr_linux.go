// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

//go:build linux

package mbr

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/diskutils/go-mbr/block"
)

// ProbePath returns the disk report for the specified path.
func ProbePath(devpath string, opts ...ProbeOption) (*Info, error) {
	f, err := os.OpenFile(devpath, os.O_RDONLY|unix.O_CLOEXEC|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, err
	}

	defer f.Close() //nolint:errcheck

	return Probe(f, opts...)
}

// Probe returns the disk report for the specified file.
func Probe(f *os.File, opts ...ProbeOption) (*Info, error) {
	options := applyProbeOptions(opts...)

	unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_RANDOM) //nolint:errcheck // best-effort: we don't care if this fails

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat: %w", err)
	}

	info := &Info{
		Path: f.Name(),
	}

	sysStat := st.Sys().(*syscall.Stat_t) //nolint:errcheck,forcetypeassert // we know it's a syscall.Stat_t

	switch sysStat.Mode & unix.S_IFMT {
	case unix.S_IFBLK:
		// block device, initialize full support
		info.BlockDevice = block.NewFromFile(f)

		if info.Size, err = info.BlockDevice.GetSize(); err != nil {
			return nil, fmt.Errorf("failed to get block device size: %w", err)
		}

		if info.IOSize, err = info.BlockDevice.GetIOSize(); err != nil {
			return nil, fmt.Errorf("failed to get block device I/O size: %w", err)
		}

		if info.MinIOSize, err = info.BlockDevice.GetMinIOSize(); err != nil {
			return nil, fmt.Errorf("failed to get block device minimum I/O size: %w", err)
		}

		info.SectorSize = info.BlockDevice.GetSectorSize()
		info.PhysicalSectorSize = info.BlockDevice.GetPhysicalSectorSize()
	case unix.S_IFREG:
		// regular file (an image?), so use different settings
		info.Size = uint64(st.Size())
		info.IOSize = block.DefaultBlockSize
		info.MinIOSize = block.DefaultBlockSize
		info.SectorSize = block.DefaultBlockSize
		info.PhysicalSectorSize = block.DefaultBlockSize
	default:
		return nil, fmt.Errorf("unsupported file type: %s", st.Mode().Type())
	}

	info.Sectors = info.Size / uint64(info.SectorSize)

	if !options.SkipLocking && info.BlockDevice != nil {
		if err = info.BlockDevice.TryLock(false); err != nil {
			if errors.Is(err, unix.EWOULDBLOCK) {
				return nil, ErrFailedLock
			}

			return nil, fmt.Errorf("failed to lock blockdevice: %w", err)
		}

		defer info.BlockDevice.Unlock() //nolint:errcheck
	}

	if err := info.fillReport(&reader{ReaderAt: f, sectorSize: info.SectorSize, size: info.Size}, options); err != nil {
		return nil, fmt.Errorf("failed to probe: %w", err)
	}

	return info, nil
}
