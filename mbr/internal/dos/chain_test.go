// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package dos_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diskutils/go-mbr/mbr/internal/dos"
)

func collectLogicals(t *testing.T, img *sectorImage, extendedStart uint64) []dos.Logical {
	t.Helper()

	var logicals []dos.Logical

	require.NoError(t, dos.WalkExtended(img, extendedStart, func(l dos.Logical) error {
		logicals = append(logicals, l)

		return nil
	}))

	return logicals
}

func TestWalkExtended(t *testing.T) {
	t.Parallel()

	t.Run("two-link chain", func(t *testing.T) {
		t.Parallel()

		const extendedStart = 1000000

		img := &sectorImage{
			sectors: map[uint64][]byte{
				extendedStart: buildSector(
					encodeEntry(false, 0x83, 2048, 204800),
					encodeEntry(false, dos.TypeExtendedCHS, 206848, 0),
				),
				extendedStart + 206848: buildSector(
					encodeEntry(false, 0x83, 2048, 102400),
					encodeEntry(false, 0, 0, 0),
				),
			},
			size: (extendedStart + 409600) * dos.SectorSize,
		}

		logicals := collectLogicals(t, img, extendedStart)

		require.Len(t, logicals, 2)

		assert.EqualValues(t, 1002048, logicals[0].AbsoluteLBA)
		assert.EqualValues(t, 204800, logicals[0].Entry.Sectors())

		assert.EqualValues(t, 1208896, logicals[1].AbsoluteLBA)
		assert.EqualValues(t, 102400, logicals[1].Entry.Sectors())
	})

	t.Run("single EBR", func(t *testing.T) {
		t.Parallel()

		img := &sectorImage{
			sectors: map[uint64][]byte{
				2048: buildSector(encodeEntry(false, 0x83, 16, 1000)),
			},
			size: 4096 * dos.SectorSize,
		}

		logicals := collectLogicals(t, img, 2048)

		require.Len(t, logicals, 1)
		assert.EqualValues(t, 2064, logicals[0].AbsoluteLBA)
	})

	t.Run("empty slot 0 is skipped", func(t *testing.T) {
		t.Parallel()

		// first EBR has no logical partition, only a link
		img := &sectorImage{
			sectors: map[uint64][]byte{
				2048: buildSector(
					encodeEntry(false, 0x83, 16, 0),
					encodeEntry(false, dos.TypeExtendedCHS, 64, 0),
				),
				2112: buildSector(encodeEntry(false, 0x83, 16, 500)),
			},
			size: 4096 * dos.SectorSize,
		}

		logicals := collectLogicals(t, img, 2048)

		require.Len(t, logicals, 1)
		assert.EqualValues(t, 2128, logicals[0].AbsoluteLBA)
	})

	t.Run("cyclic chain", func(t *testing.T) {
		t.Parallel()

		// two EBRs linking to each other
		img := &sectorImage{
			sectors: map[uint64][]byte{
				2064: buildSector(
					encodeEntry(false, 0x83, 8, 8),
					encodeEntry(false, dos.TypeExtendedCHS, 32, 0),
				),
				2080: buildSector(
					encodeEntry(false, 0x83, 8, 8),
					encodeEntry(false, dos.TypeExtendedCHS, 16, 0),
				),
			},
			size: 4096 * dos.SectorSize,
		}

		err := dos.WalkExtended(img, 2064, func(dos.Logical) error { return nil })

		require.Error(t, err)
		assert.ErrorIs(t, err, dos.ErrMalformedChain)
	})

	t.Run("link past the end of the device", func(t *testing.T) {
		t.Parallel()

		img := &sectorImage{
			sectors: map[uint64][]byte{
				2048: buildSector(
					encodeEntry(false, 0x83, 16, 100),
					encodeEntry(false, dos.TypeExtendedCHS, 100000, 0),
				),
			},
			size: 4096 * dos.SectorSize,
		}

		err := dos.WalkExtended(img, 2048, func(dos.Logical) error { return nil })

		require.Error(t, err)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("visit error aborts the walk", func(t *testing.T) {
		t.Parallel()

		img := &sectorImage{
			sectors: map[uint64][]byte{
				2048: buildSector(
					encodeEntry(false, 0x83, 16, 100),
					encodeEntry(false, dos.TypeExtendedCHS, 64, 0),
				),
				2112: buildSector(encodeEntry(false, 0x83, 16, 100)),
			},
			size: 4096 * dos.SectorSize,
		}

		errStop := errors.New("stop")

		visits := 0

		err := dos.WalkExtended(img, 2048, func(dos.Logical) error {
			visits++

			return errStop
		})

		assert.ErrorIs(t, err, errStop)
		assert.Equal(t, 1, visits)
	})
}
