package qr

// Snake walks the data module positions of a symbol in the order defined by
// the standard: starting at the bottom-right corner, upwards in two-column
// strips, zig-zagging, skipping the vertical timing column at x = 6 and
// every functional module. The same walk is used to write modules when
// encoding and to sample them when decoding.
type Snake struct {
	version  int
	nModules int
	marks    []bool
	first    bool
	x, y     int
	dx       int
	up       bool
}

// NewSnake returns a traversal over the data modules of a version.
func NewSnake(version int) *Snake {
	n := NModules(version)
	s := &Snake{
		version:  version,
		nModules: n,
		marks:    make([]bool, n*n),
		first:    true,
		x:        n - 2,
		y:        n - 1,
		dx:       1,
		up:       true,
	}
	s.mark()
	return s
}

func (s *Snake) marked(x, y int) bool {
	return s.marks[x*s.nModules+y]
}

func (s *Snake) markRect(x0, y0, w, h int) {
	for x := x0; x < x0+w; x++ {
		for y := y0; y < y0+h; y++ {
			s.marks[x*s.nModules+y] = true
		}
	}
}

// mark flags every functional module so the walk skips it.
func (s *Snake) mark() {
	n8 := s.nModules - 8

	// Finder and format areas
	s.markRect(0, 0, 9, 9)
	s.markRect(n8, 0, 8, 9)
	s.markRect(0, n8, 9, 8)

	// Timing
	s.markRect(8, 6, n8-8, 1)
	s.markRect(6, 8, 1, n8-8)

	// Version information
	if s.version >= 7 {
		n11 := s.nModules - 11
		s.markRect(0, n11, 6, 3)
		s.markRect(n11, 0, 3, 6)
	}

	// Alignment
	for _, p := range AlignmentPositions(s.version) {
		s.markRect(p[0]-2, p[1]-2, 5, 5)
	}
}

// Next returns the next data module position, or ok == false when the walk
// is complete.
func (s *Snake) Next() (x, y int, ok bool) {
	if s.first {
		s.first = false
		return s.x + s.dx, s.y, true
	}
	for {
		if s.dx == 1 {
			s.dx = 0
		} else {
			s.dx = 1
			turn := false
			if s.up {
				if s.y == 0 {
					turn = true
				} else {
					s.y--
				}
			} else {
				if s.y >= s.nModules-1 {
					turn = true
				} else {
					s.y++
				}
			}
			if turn {
				if s.x < 2 {
					return 0, 0, false
				}
				s.up = !s.up
				s.x -= 2
				if s.x == 5 {
					// The whole column holding the vertical timing
					// pattern is skipped.
					s.x--
				}
			}
		}
		x, y := s.x+s.dx, s.y
		if !s.marked(x, y) {
			return x, y, true
		}
	}
}
