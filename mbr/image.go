// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package mbr

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/diskutils/go-mbr/block"
)

// ProbeImage returns the disk report for a disk image file.
//
// Images compressed with zstd (a ".zst" suffix) are decompressed into
// memory before probing.
func ProbeImage(path string, opts ...ProbeOption) (*Info, error) {
	options := applyProbeOptions(opts...)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close() //nolint:errcheck

	info := &Info{
		Path:               path,
		SectorSize:         block.DefaultBlockSize,
		PhysicalSectorSize: block.DefaultBlockSize,
		MinIOSize:          block.DefaultBlockSize,
		IOSize:             block.DefaultBlockSize,
	}

	var src io.ReaderAt

	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening zstd image: %w", err)
		}

		defer zr.Close()

		data, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("decompressing zstd image: %w", err)
		}

		info.Size = uint64(len(data))
		src = bytes.NewReader(data)
	} else {
		st, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat: %w", err)
		}

		info.Size = uint64(st.Size())
		src = f
	}

	info.Sectors = info.Size / uint64(info.SectorSize)

	if err := info.fillReport(&reader{ReaderAt: src, sectorSize: info.SectorSize, size: info.Size}, options); err != nil {
		return nil, fmt.Errorf("failed to probe: %w", err)
	}

	return info, nil
}
