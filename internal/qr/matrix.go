package qr

// Matrix is a square byte matrix where each cell carries one bit per mask
// plane: bit k holds the module colour under mask k. Functional modules are
// written 0xFF (dark) or 0x00 (light) so they read the same in every plane.
// A selected plane determines what GetSelected reports.
type Matrix struct {
	dim      int
	selected uint8
	data     []byte
}

// NewMatrix returns an all-light matrix with the given side length.
func NewMatrix(dim int) *Matrix {
	return &Matrix{dim: dim, data: make([]byte, dim*dim)}
}

// Dim returns the side length in modules.
func (m *Matrix) Dim() int { return m.dim }

// SetAll marks (x, y) dark in every plane.
func (m *Matrix) SetAll(x, y int) { m.data[x+y*m.dim] = 0xFF }

// Set stores the raw plane byte at (x, y).
func (m *Matrix) Set(x, y int, b byte) { m.data[x+y*m.dim] = b }

// Get returns the raw plane byte at (x, y).
func (m *Matrix) Get(x, y int) byte { return m.data[x+y*m.dim] }

// GetOne reports whether (x, y) is dark in plane i.
func (m *Matrix) GetOne(x, y int, i uint8) bool {
	return m.data[x+y*m.dim]&(1<<i) != 0
}

// Select chooses the plane reported by GetSelected.
func (m *Matrix) Select(i uint8) { m.selected = i }

// Selected returns the currently selected plane.
func (m *Matrix) Selected() uint8 { return m.selected }

// GetSelected reports whether (x, y) is dark in the selected plane.
func (m *Matrix) GetSelected(x, y int) bool {
	return m.data[x+y*m.dim]&(1<<m.selected) != 0
}
