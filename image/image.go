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

// Package image provides the PNG/PNM codec and image-compare routine the
// snapshot stage needs: reading a reference PNG, writing a captured
// framebuffer as PNG or PNM, and scoring how closely two images match.
package image

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	stdpng "image/png"

	"github.com/pkg/errors"
)

// ReadPNG decodes the PNG file at path. It returns an error wrapping
// os.ErrNotExist for a missing file so callers can distinguish "no
// reference image" from a corrupt one.
func ReadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := stdpng.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding png %q", path)
	}
	return img, nil
}

// WritePNG encodes img as a PNG file at path. The parent directory must
// already exist; it is not created.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %q", path)
	}
	defer f.Close()
	if err := stdpng.Encode(f, img); err != nil {
		return errors.Wrapf(err, "encoding png %q", path)
	}
	return nil
}

// WritePNM writes img to w in raw (binary) PPM format (P6), with comment
// as a comment line — apitrace's stdout snapshot format, used for the
// "-s -" sentinel.
func WritePNM(w io.Writer, img image.Image, comment string) error {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if _, err := fmt.Fprintf(w, "P6\n# %s\n%d %d\n255\n", comment, width, height); err != nil {
		return err
	}
	buf := make([]byte, 0, width*height*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			buf = append(buf, byte(r>>8), byte(g>>8), byte(bl>>8))
		}
	}
	_, err := w.Write(buf)
	return err
}

// Compare scores how closely got matches ref, returning the "average
// precision" in bits: the number of significant bits both images agree on
// per channel, on average. Perfectly identical images score 8 (a full
// byte per channel); completely uncorrelated images trend toward 0.
// Modeled on the normalized mean-square-error compare gapid's own image
// package performs before turning a distance into a human-readable score.
func Compare(ref, got image.Image) float64 {
	rb, gb := ref.Bounds(), got.Bounds()
	if rb.Dx() != gb.Dx() || rb.Dy() != gb.Dy() {
		return 0
	}
	var sumSq float64
	var n float64
	for y := 0; y < rb.Dy(); y++ {
		for x := 0; x < rb.Dx(); x++ {
			rc := colorAt(ref, rb.Min.X+x, rb.Min.Y+y)
			gc := colorAt(got, gb.Min.X+x, gb.Min.Y+y)
			for ch := 0; ch < 3; ch++ {
				d := float64(rc[ch]) - float64(gc[ch])
				sumSq += d * d
				n++
			}
		}
	}
	if n == 0 {
		return 8
	}
	rms := math.Sqrt(sumSq / n)
	if rms < 1e-9 {
		return 8
	}
	// A perfectly matching byte-per-channel image has rms == 0, precision
	// 8 bits. Each doubling of (1+rms) costs one bit of precision, down
	// to 0 bits at rms 255.
	bits := 8 - math.Log2(1+rms)
	if bits < 0 {
		bits = 0
	}
	return bits
}

func colorAt(img image.Image, x, y int) [3]uint8 {
	r, g, b, _ := color.NRGBAModel.Convert(img.At(x, y)).RGBA()
	return [3]uint8{byte(r >> 8), byte(g >> 8), byte(b >> 8)}
}
