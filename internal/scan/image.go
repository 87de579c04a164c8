// Package scan locates and decodes a QR Code symbol in a greyscale view of
// an image: threshold sweep, 1:1:3:1:1 run detection, finder candidate
// ranking, symbol area assembly, module sampling, error correction and
// payload decoding.
package scan

import "image"

// Image is the decoder's read-only pixel accessor: sRGB with straight
// alpha, origin top-left. At must be O(1) and side-effect free.
type Image interface {
	Width() int
	Height() int
	At(x, y int) (r, g, b, a uint8)
}

// FromImage adapts a standard library image to the decoder's accessor.
func FromImage(img image.Image) Image {
	return stdImage{img: img}
}

type stdImage struct {
	img image.Image
}

func (s stdImage) Width() int  { return s.img.Bounds().Dx() }
func (s stdImage) Height() int { return s.img.Bounds().Dy() }

func (s stdImage) At(x, y int) (uint8, uint8, uint8, uint8) {
	b := s.img.Bounds()
	r, g, bl, a := s.img.At(b.Min.X+x, b.Min.Y+y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8), uint8(a >> 8)
}

// Matrixer is the subset of the encoder's matrix the wrapper below needs.
type Matrixer interface {
	Dim() int
	GetSelected(x, y int) bool
}

// MatrixImage exposes an encoded module matrix as a one-pixel-per-module
// image, dark 0x10 and light 0xF0. Used to feed encoder output straight
// back into the decoder.
type MatrixImage struct {
	m Matrixer
}

// NewMatrixImage wraps a module matrix.
func NewMatrixImage(m Matrixer) MatrixImage { return MatrixImage{m: m} }

func (mi MatrixImage) Width() int  { return mi.m.Dim() }
func (mi MatrixImage) Height() int { return mi.m.Dim() }

func (mi MatrixImage) At(x, y int) (uint8, uint8, uint8, uint8) {
	if mi.m.GetSelected(x, y) {
		return 0x10, 0x10, 0x10, 0xFF
	}
	return 0xF0, 0xF0, 0xF0, 0xFF
}
