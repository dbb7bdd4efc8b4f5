// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package mbr reports the size, geometry, and MBR partition layout of
// blockdevices and disk images.
package mbr

import (
	"errors"
	"fmt"
	"io"

	"github.com/siderolabs/go-pointer"
	"go.uber.org/zap"

	"github.com/diskutils/go-mbr/block"
	"github.com/diskutils/go-mbr/mbr/internal/dos"
	"github.com/diskutils/go-mbr/mbr/internal/probe"
)

// Common errors.
var (
	ErrFailedLock = errors.New("failed to acquire shared lock while probing blockdevice")

	// ErrInvalidSignature means the device is not MBR-partitioned: the
	// boot signature of sector 0 does not match.
	ErrInvalidSignature = dos.ErrInvalidSignature

	// ErrMalformedChain means the EBR chain of an extended partition
	// exceeds the iteration limit (a cyclic or corrupted chain).
	ErrMalformedChain = dos.ErrMalformedChain
)

// Info represents the result of probing a disk.
type Info struct { //nolint:govet
	// Link to the block device, only if the probed file is a blockdevice.
	BlockDevice *block.Device

	// Path of the probed device or image.
	Path string

	// Overall size of the probed device (in bytes).
	Size uint64

	// Total addressable sectors of the device.
	Sectors uint64

	// Logical sector size of the device (in bytes).
	SectorSize uint

	// Physical sector size of the device (in bytes).
	PhysicalSectorSize uint

	// Minimum I/O size for the device (in bytes).
	MinIOSize uint

	// Optimal I/O size for the device (in bytes).
	IOSize uint

	// DiskID is the 32-bit disk identifier of the MBR.
	DiskID uint32

	// Protective is true when the MBR is a protective one in front of a
	// GPT disk. The report still describes the protective entry; GPT
	// contents are not inspected.
	Protective bool

	// Partitions in report order: primary partitions at indices 1-4 in
	// table order, each extended container immediately followed by its
	// logical partitions numbered from 5.
	Partitions []Partition
}

// Partition is a single row of the disk report.
type Partition struct { //nolint:govet
	// Index is 1-based; logical partitions are numbered from 5.
	Index uint

	Bootable bool

	// Type is the partition type byte; TypeName is set for well-known
	// types.
	Type     byte
	TypeName *string

	// FirstLBA and LastLBA are absolute sector addresses.
	FirstLBA uint64
	LastLBA  uint64

	// Sectors is the partition length in sectors, Size in bytes.
	Sectors uint64
	Size    uint64
}

// ProbeOptions is the options for probing.
type ProbeOptions struct {
	// Logger to use for logging.
	Logger *zap.Logger
	// SkipLocking blockdevices in shared mode.
	SkipLocking bool
}

// ProbeOption is an option for probing.
type ProbeOption func(*ProbeOptions)

// WithProbeLogger sets the logger for the probe.
func WithProbeLogger(logger *zap.Logger) ProbeOption {
	return func(o *ProbeOptions) {
		o.Logger = logger
	}
}

// WithSkipLocking skips locking blockdevices in shared mode.
func WithSkipLocking(skip bool) ProbeOption {
	return func(o *ProbeOptions) {
		o.SkipLocking = skip
	}
}

func applyProbeOptions(opts ...ProbeOption) ProbeOptions {
	o := ProbeOptions{
		Logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// reader adapts an io.ReaderAt to the probing contract.
type reader struct {
	io.ReaderAt

	sectorSize uint
	size       uint64
}

func (r *reader) GetSectorSize() uint { return r.sectorSize }

func (r *reader) GetSize() uint64 { return r.size }

// fillReport loads the partition table and assembles the ordered list of
// partitions, walking the EBR chain of every extended slot.
func (i *Info) fillReport(r probe.Reader, options ProbeOptions) error {
	table, err := dos.ReadTable(r)
	if err != nil {
		return err
	}

	i.DiskID = table.DiskID()
	i.Protective = table.IsProtective()

	sectorSize := r.GetSectorSize()

	// logical partition numbering starts at 5 and is global across all
	// extended slots
	nextLogical := uint(5)

	for slot, entry := range table.Entries() {
		if entry.IsEmpty() {
			continue
		}

		index := uint(slot + 1)

		i.Partitions = append(i.Partitions, newPartition(index, entry, uint64(entry.FirstLBA()), sectorSize))

		if !entry.IsExtended() {
			continue
		}

		options.Logger.Debug("walking extended partition",
			zap.Uint("slot", index),
			zap.Uint32("start", entry.FirstLBA()),
		)

		if err := dos.WalkExtended(r, uint64(entry.FirstLBA()), func(l dos.Logical) error {
			options.Logger.Debug("discovered logical partition",
				zap.Uint("index", nextLogical),
				zap.Uint64("start", l.AbsoluteLBA),
				zap.Uint32("sectors", l.Entry.Sectors()),
			)

			i.Partitions = append(i.Partitions, newPartition(nextLogical, l.Entry, l.AbsoluteLBA, sectorSize))
			nextLogical++

			return nil
		}); err != nil {
			return fmt.Errorf("walking extended partition %d: %w", index, err)
		}
	}

	return nil
}

func newPartition(index uint, e dos.Entry, firstLBA uint64, sectorSize uint) Partition {
	sectors := uint64(e.Sectors())

	p := Partition{
		Index:    index,
		Bootable: e.Bootable(),
		Type:     e.Type(),
		FirstLBA: firstLBA,
		LastLBA:  firstLBA + sectors - 1,
		Sectors:  sectors,
		Size:     sectors * uint64(sectorSize),
	}

	if name := dos.TypeName(e.Type()); name != "" {
		p.TypeName = pointer.To(name)
	}

	return p
}
