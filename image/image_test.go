// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package image_test

import (
	"bytes"
	stdimage "image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/gfx-retrace/image"
)

func solid(w, h int, c color.Color) *stdimage.NRGBA {
	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestWriteReadPNGRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "0000000042.png")
	orig := solid(4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	require.NoError(t, image.WritePNG(path, orig))
	got, err := image.ReadPNG(path)
	require.NoError(t, err)

	assert.Equal(t, 8.0, image.Compare(orig, got))
}

func TestReadPNGMissing(t *testing.T) {
	_, err := image.ReadPNG("/nonexistent/0000000001.png")
	assert.Error(t, err)
}

func TestCompareIdenticalVsDifferent(t *testing.T) {
	a := solid(4, 4, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	b := solid(4, 4, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	assert.Equal(t, 8.0, image.Compare(a, a))
	assert.Less(t, image.Compare(a, b), 8.0)
}

func TestWritePNM(t *testing.T) {
	img := solid(2, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	var buf bytes.Buffer
	require.NoError(t, image.WritePNM(&buf, img, "42"))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "P6\n# 42\n2 1\n255\n"))
}
