// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package partitioning implements common partitioning functions.
package partitioning

import "strconv"

// DevName returns the devname for the partition on a disk.
//
// Disks whose name ends in a digit take a 'p' separator before the
// partition number: /dev/sda -> /dev/sda1, /dev/nvme0n1 -> /dev/nvme0n1p1.
func DevName(device string, part uint) string {
	sep := ""

	if len(device) > 0 && device[len(device)-1] >= '0' && device[len(device)-1] <= '9' {
		sep = "p"
	}

	return device + sep + strconv.FormatUint(uint64(part), 10)
}
