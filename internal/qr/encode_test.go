package qr

import (
	"errors"
	"testing"

	"github.com/dfbb/qrsnap/internal/xorshift"
)

func TestEncodeRejectsInvalidNumericPayload(t *testing.T) {
	_, err := Encode([]byte("12a45"), 1, Numeric, ECM)
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("err = %v, want ErrInvalidPayload", err)
	}
}

func TestEncodeRejectsInvalidAlphaNumericPayload(t *testing.T) {
	_, err := Encode([]byte("hello"), 1, AlphaNumeric, ECM)
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("err = %v, want ErrInvalidPayload", err)
	}
}

func TestEncodeMatrixDimension(t *testing.T) {
	for _, version := range []int{1, 7, 10, 26, 27, 40} {
		m, err := Encode([]byte("HELLO"), version, EightBit, ECQ)
		if err != nil {
			t.Fatalf("Encode version %d: %v", version, err)
		}
		if m.Dim() != NModules(version) {
			t.Errorf("version %d: dim = %d, want %d", version, m.Dim(), NModules(version))
		}
	}
}

func TestEncodeFinderPatterns(t *testing.T) {
	m, err := Encode([]byte("12345"), 1, Numeric, ECH)
	if err != nil {
		t.Fatal(err)
	}
	n := m.Dim()
	for _, corner := range [3][2]int{{0, 0}, {n - 7, 0}, {0, n - 7}} {
		x0, y0 := corner[0], corner[1]
		for i := 0; i < 7; i++ {
			for j := 0; j < 7; j++ {
				ring := i == 0 || i == 6 || j == 0 || j == 6
				center := i >= 2 && i <= 4 && j >= 2 && j <= 4
				want := ring || center
				if got := m.GetSelected(x0+i, y0+j); got != want {
					t.Fatalf("finder at (%d, %d): module (%d, %d) = %v, want %v", x0, y0, i, j, got, want)
				}
			}
		}
	}
	// Always-dark module
	if !m.GetSelected(8, n-8) {
		t.Error("module (8, n-8) must be dark")
	}
}

func TestEncodeTimingPattern(t *testing.T) {
	m, err := Encode([]byte("HELLO WORLD"), 2, AlphaNumeric, ECM)
	if err != nil {
		t.Fatal(err)
	}
	n := m.Dim()
	for i := 8; i < n-8; i++ {
		want := i%2 == 0
		if got := m.GetSelected(i, 6); got != want {
			t.Errorf("horizontal timing module %d = %v, want %v", i, got, want)
		}
		if got := m.GetSelected(6, i); got != want {
			t.Errorf("vertical timing module %d = %v, want %v", i, got, want)
		}
	}
}

// TestEncodeFormatInfoReadable samples the format strip of the selected
// plane and checks it carries the codeword for the selected mask.
func TestEncodeFormatInfoReadable(t *testing.T) {
	for _, ec := range allECLevels {
		m, err := Encode([]byte("FORMAT TEST"), 3, AlphaNumeric, ec)
		if err != nil {
			t.Fatal(err)
		}
		n := m.Dim()
		for copyIdx := 0; copyIdx <= 1; copyIdx++ {
			pattern := uint16(0)
			for i := 0; i < NFormatBits; i++ {
				p := FormatBitPositions(i, n)[copyIdx]
				if m.GetSelected(p[0], p[1]) {
					pattern |= 1 << i
				}
			}
			want := FormatInfo(int(m.Selected()), ec)
			if pattern != want {
				t.Errorf("ec %s copy %d: format pattern %#04x, want %#04x (mask %d)",
					ec, copyIdx, pattern, want, m.Selected())
			}
		}
	}
}

// TestEncodeVersionInfoReadable samples both version information blocks.
func TestEncodeVersionInfoReadable(t *testing.T) {
	for _, version := range []int{7, 12, 23, 40} {
		m, err := Encode([]byte("V"), version, EightBit, ECL)
		if err != nil {
			t.Fatal(err)
		}
		n := m.Dim()
		for _, northEast := range []bool{true, false} {
			pattern := uint32(0)
			for b := 0; b < NVersionBits; b++ {
				a, bb := VersionBitPos(b)
				var x, y int
				if northEast {
					x, y = n-11+a, bb
				} else {
					x, y = bb, n-11+a
				}
				if m.GetSelected(x, y) {
					pattern |= 1 << b
				}
			}
			if pattern != VersionInfo(version) {
				t.Errorf("version %d (ne=%v): info pattern %#x, want %#x", version, northEast, pattern, VersionInfo(version))
			}
		}
	}
}

// byteForMode returns a random byte valid in the given payload mode.
func byteForMode(rng *xorshift.Rng, mode Mode) byte {
	u := rng.Byte()
	switch mode {
	case AlphaNumeric:
		return AlnumToASCII(u % 45)
	case Numeric:
		return '0' + u%10
	default:
		return u
	}
}

// TestEncodeLengthSweep encodes payloads of a few fixed lengths, up to the
// version 40 capacity, at the minimal fitting version.
func TestEncodeLengthSweep(t *testing.T) {
	for _, mode := range allModes {
		for _, ec := range allECLevels {
			rng := xorshift.New(uint32(100*int(mode) + int(ec) + 1))
			capMax := DataCapacity(VersionMax, mode, ec)
			var text []byte
			for _, length := range []int{0, 1, 2, 17, 100, 1000, capMax} {
				if length > capMax {
					continue
				}
				for len(text) < length {
					text = append(text, byteForMode(rng, mode))
				}
				version, ok := VersionFromLength(length, mode, ec)
				if !ok {
					t.Fatalf("no version for length %d mode %s ec %s", length, mode, ec)
				}
				if _, err := Encode(text[:length], version, mode, ec); err != nil {
					t.Fatalf("Encode(len=%d, v=%d, %s, %s): %v", length, version, mode, ec, err)
				}
			}
		}
	}
}
