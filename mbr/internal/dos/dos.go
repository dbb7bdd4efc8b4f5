// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package dos parses DOS (MBR) partition tables.
package dos

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/diskutils/go-mbr/internal/ioutil"
	"github.com/diskutils/go-mbr/mbr/internal/probe"
)

// Layout of the MBR sector.
const (
	// SectorSize is the size of the MBR and EBR sectors.
	//
	// The partition table layout is defined in 512-byte terms even on
	// devices with larger logical sectors.
	SectorSize = 512

	// NumEntries is the number of slots in the primary partition table.
	NumEntries = 4

	entrySize       = 16
	diskIDOffset    = 440
	tableOffset     = 446
	signatureOffset = 510

	// signature is the boot signature 0x55 0xaa, a little-endian uint16.
	signature = 0xaa55
)

// Well-known partition type bytes.
const (
	TypeEmpty         = 0x00
	TypeExtendedCHS   = 0x05
	TypeExtendedLBA   = 0x0f
	TypeGPTProtective = 0xee
)

// maxEBRChain bounds the EBR chain walk, so that a disk with a
// self-referencing chain fails instead of looping forever.
const maxEBRChain = 4096

// Common errors.
var (
	// ErrInvalidSignature is returned when sector 0 does not carry the
	// 0x55 0xaa boot signature: the device is not MBR-partitioned.
	ErrInvalidSignature = errors.New("invalid MBR boot signature")

	// ErrMalformedChain is returned when the EBR chain exceeds the
	// iteration limit.
	ErrMalformedChain = errors.New("EBR chain exceeds iteration limit")
)

// Entry is a single 16-byte partition table slot.
//
// Fields are accessed at fixed byte offsets with little-endian encoding;
// the legacy CHS fields at offsets 1-3 and 5-7 are ignored, LBA addressing
// is authoritative.
type Entry []byte

// Bootable returns true if the status byte has the active flag set.
func (e Entry) Bootable() bool {
	return e[0]&0x80 != 0
}

// Type returns the partition type byte.
func (e Entry) Type() byte {
	return e[4]
}

// FirstLBA returns the first sector of the partition.
//
// The value is absolute for primary slots and relative for slots inside
// an EBR.
func (e Entry) FirstLBA() uint32 {
	return binary.LittleEndian.Uint32(e[8:12])
}

// Sectors returns the length of the partition in sectors.
func (e Entry) Sectors() uint32 {
	return binary.LittleEndian.Uint32(e[12:16])
}

// IsEmpty returns true if the slot is unused.
//
// A slot with a zero sector count carries no meaningful geometry and is
// skipped by all consumers.
func (e Entry) IsEmpty() bool {
	return e.Sectors() == 0
}

// IsExtended returns true if the slot is an extended partition container
// (CHS- or LBA-addressed).
func (e Entry) IsExtended() bool {
	return e.Type() == TypeExtendedCHS || e.Type() == TypeExtendedLBA
}

// Table is the primary partition table read from sector 0.
type Table struct {
	sector []byte
}

// ReadTable reads and validates sector 0 of the device.
func ReadTable(r probe.Reader) (*Table, error) {
	if size := r.GetSize(); size < SectorSize {
		return nil, fmt.Errorf("device size %d is smaller than a single %d-byte sector: %w", size, SectorSize, io.ErrUnexpectedEOF)
	}

	buf := make([]byte, SectorSize)

	if err := ioutil.ReadFullAt(r, buf, 0); err != nil {
		return nil, fmt.Errorf("reading MBR sector: %w", err)
	}

	if binary.LittleEndian.Uint16(buf[signatureOffset:signatureOffset+2]) != signature {
		return nil, ErrInvalidSignature
	}

	return &Table{sector: buf}, nil
}

// DiskID returns the 32-bit disk identifier.
func (t *Table) DiskID() uint32 {
	return binary.LittleEndian.Uint32(t.sector[diskIDOffset : diskIDOffset+4])
}

// Entries returns the four primary partition table slots in table order.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, NumEntries)

	for i := 0; i < NumEntries; i++ {
		offset := tableOffset + i*entrySize
		entries = append(entries, Entry(t.sector[offset:offset+entrySize]))
	}

	return entries
}

// IsProtective returns true if the table is a protective MBR in front of
// a GPT disk.
func (t *Table) IsProtective() bool {
	return t.Entries()[0].Type() == TypeGPTProtective
}

// TypeName returns a human-readable name for well-known partition type
// bytes, and an empty string otherwise.
func TypeName(typ byte) string {
	switch typ {
	case TypeEmpty:
		return "Empty"
	case TypeExtendedCHS:
		return "Extended"
	case 0x07:
		return "HPFS/NTFS/exFAT"
	case 0x0b:
		return "W95 FAT32"
	case 0x0c:
		return "W95 FAT32 (LBA)"
	case TypeExtendedLBA:
		return "W95 Ext'd (LBA)"
	case 0x82:
		return "Linux swap / Solaris"
	case 0x83:
		return "Linux"
	case 0x8e:
		return "Linux LVM"
	case TypeGPTProtective:
		return "GPT"
	case 0xfd:
		return "Linux raid autodetect"
	default:
		return ""
	}
}
