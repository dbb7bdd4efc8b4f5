// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package mbr

import (
	"fmt"
	"io"
	"strings"

	"github.com/siderolabs/gen/xslices"

	"github.com/diskutils/go-mbr/partitioning"
)

const gib = 1 << 30

// Render writes an fdisk-style textual report of the disk layout.
func (i *Info) Render(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Disk %s: %s, %d bytes, %d sectors\n", i.Path, humanGiB(i.Size), i.Size, i.Sectors)
	fmt.Fprintf(&b, "Sector size (logical/physical): %d bytes / %d bytes\n", i.SectorSize, i.PhysicalSectorSize)
	fmt.Fprintf(&b, "I/O size (minimum/optimal): %d bytes / %d bytes\n", i.MinIOSize, i.IOSize)
	b.WriteString("Disklabel type: dos\n")
	fmt.Fprintf(&b, "Disk identifier: 0x%08x\n", i.DiskID)

	if len(i.Partitions) > 0 {
		b.WriteByte('\n')

		names := xslices.Map(i.Partitions, func(p Partition) string {
			return partitioning.DevName(i.Path, p.Index)
		})

		deviceWidth := len("Device")

		for _, name := range names {
			deviceWidth = max(deviceWidth, len(name))
		}

		fmt.Fprintf(&b, "%-*s %-4s %10s %10s %9s %6s %2s %s\n",
			deviceWidth, "Device", "Boot", "Start", "End", "Sectors", "Size", "Id", "Type")

		for idx, p := range i.Partitions {
			boot := ""
			if p.Bootable {
				boot = "*"
			}

			name := "unknown"
			if p.TypeName != nil {
				name = *p.TypeName
			}

			fmt.Fprintf(&b, "%-*s %-4s %10d %10d %9d %6s %2x %s\n",
				deviceWidth, names[idx], boot, p.FirstLBA, p.LastLBA, p.Sectors, sizeGiB(p.Size), p.Type, name)
		}
	}

	_, err := io.WriteString(w, b.String())

	return err
}

func humanGiB(size uint64) string {
	return fmt.Sprintf("%.1f GiB", float64(size)/gib)
}

func sizeGiB(size uint64) string {
	return fmt.Sprintf("%.1fG", float64(size)/gib)
}
