// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package dos

import (
	"fmt"
	"slices"

	"github.com/diskutils/go-mbr/internal/ioutil"
	"github.com/diskutils/go-mbr/mbr/internal/probe"
)

// Logical is a logical partition discovered while walking the EBR chain.
type Logical struct {
	// Entry is the slot 0 record of the EBR describing the partition.
	Entry Entry

	// AbsoluteLBA is the first sector of the partition on the disk:
	// the EBR's own sector plus the record's relative offset.
	AbsoluteLBA uint64
}

// WalkExtended walks the chain of EBRs rooted at the first sector of an
// extended partition, calling visit for each logical partition in chain
// order.
//
// Each EBR carries up to two meaningful slots: slot 0 describes the
// logical partition relative to the EBR's own sector, slot 1 links to the
// next EBR relative to the start of the extended partition. Slots 2-3 are
// reserved.
//
// The walk is iterative and bounded: a chain longer than the iteration
// limit fails with ErrMalformedChain.
func WalkExtended(r probe.Reader, extendedStart uint64, visit func(Logical) error) error {
	sectorSize := uint64(r.GetSectorSize())
	buf := make([]byte, SectorSize)

	current := extendedStart

	for iterations := 0; current != 0; iterations++ {
		if iterations >= maxEBRChain {
			return fmt.Errorf("%w: more than %d EBRs in the chain at sector %d", ErrMalformedChain, maxEBRChain, extendedStart)
		}

		if err := ioutil.ReadFullAt(r, buf, int64(current*sectorSize)); err != nil {
			return fmt.Errorf("reading EBR at sector %d: %w", current, err)
		}

		partition := Entry(buf[tableOffset : tableOffset+entrySize])
		link := Entry(buf[tableOffset+entrySize : tableOffset+2*entrySize])

		if !partition.IsEmpty() {
			logical := Logical{
				// the buffer is reused for the next EBR
				Entry:       slices.Clone(partition),
				AbsoluteLBA: current + uint64(partition.FirstLBA()),
			}

			if err := visit(logical); err != nil {
				return err
			}
		}

		if next := link.FirstLBA(); next != 0 {
			// the link is relative to the start of the extended
			// partition, not the current EBR
			current = extendedStart + uint64(next)
		} else {
			current = 0
		}
	}

	return nil
}
