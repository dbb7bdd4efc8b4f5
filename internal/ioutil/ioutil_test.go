// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package ioutil_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diskutils/go-mbr/internal/ioutil"
)

func TestReadFullAt(t *testing.T) {
	t.Parallel()

	data := bytes.Repeat([]byte{0xa5}, 1024)

	t.Run("full read", func(t *testing.T) {
		t.Parallel()

		buf := make([]byte, 512)
		require.NoError(t, ioutil.ReadFullAt(bytes.NewReader(data), buf, 256))
		assert.Equal(t, data[256:768], buf)
	})

	t.Run("read up to EOF", func(t *testing.T) {
		t.Parallel()

		buf := make([]byte, 512)
		require.NoError(t, ioutil.ReadFullAt(bytes.NewReader(data), buf, 512))
	})

	t.Run("short read", func(t *testing.T) {
		t.Parallel()

		buf := make([]byte, 512)
		err := ioutil.ReadFullAt(bytes.NewReader(data), buf, 1000)

		require.Error(t, err)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Contains(t, err.Error(), "offset 1000")
	})

	t.Run("read past the end", func(t *testing.T) {
		t.Parallel()

		buf := make([]byte, 512)
		err := ioutil.ReadFullAt(bytes.NewReader(data), buf, 4096)

		require.Error(t, err)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}
