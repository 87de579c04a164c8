// Package render writes an encoded QR module matrix as stdout text, ANSI
// escape art, or an 8-bit greyscale image.
package render

import (
	"bufio"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/dfbb/qrsnap/internal/qr"
)

// Greyscale levels for image output.
const (
	darkGray  = 48
	lightGray = 240
)

// Text writes the matrix as one character per module: '@' dark, '.' light,
// no quiet zone.
func Text(w io.Writer, m *qr.Matrix) error {
	bw := bufio.NewWriter(w)
	n := m.Dim()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if m.GetSelected(x, y) {
				bw.WriteByte('@')
			} else {
				bw.WriteByte('.')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ANSI writes the matrix using background-colour escape codes, two columns
// per module, with the standard 4-module quiet border.
func ANSI(w io.Writer, m *qr.Matrix) error {
	bw := bufio.NewWriter(w)
	n := m.Dim()
	side := strings.Repeat("\x1B[107m  ", qr.QuietZone)
	borderLine := strings.Repeat("\x1B[107m  ", n+2*qr.QuietZone) + "\x1B[0m\n"
	borderLines := strings.Repeat(borderLine, qr.QuietZone)
	bw.WriteString(borderLines)
	for y := 0; y < n; y++ {
		bw.WriteString(side)
		for x := 0; x < n; x++ {
			if m.GetSelected(x, y) {
				bw.WriteString("\x1B[40m  ")
			} else {
				bw.WriteString("\x1B[107m  ")
			}
		}
		bw.WriteString(side)
		bw.WriteString("\x1B[0m\n")
	}
	bw.WriteString(borderLines)
	return bw.Flush()
}

// Gray renders the matrix as an 8-bit greyscale image, dark 48 and light
// 240, with a 4-module quiet border, scaled by pixelsPerModule.
func Gray(m *qr.Matrix, pixelsPerModule int) *image.Gray {
	n := m.Dim()
	side := (n + 2*qr.QuietZone) * pixelsPerModule
	img := image.NewGray(image.Rect(0, 0, side, side))
	for i := range img.Pix {
		img.Pix[i] = lightGray
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if !m.GetSelected(x, y) {
				continue
			}
			px := (qr.QuietZone + x) * pixelsPerModule
			py := (qr.QuietZone + y) * pixelsPerModule
			for dy := 0; dy < pixelsPerModule; dy++ {
				row := (py+dy)*img.Stride + px
				for dx := 0; dx < pixelsPerModule; dx++ {
					img.Pix[row+dx] = darkGray
				}
			}
		}
	}
	return img
}

// PNG writes the greyscale rendering as a PNG stream.
func PNG(w io.Writer, m *qr.Matrix, pixelsPerModule int) error {
	return png.Encode(w, Gray(m, pixelsPerModule))
}
