package qr

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dfbb/qrsnap/internal/gf"
)

// ErrInvalidPayload reports a payload byte outside the mode's alphabet.
var ErrInvalidPayload = errors.New("invalid payload")

// maskPeriod is the side of the precomputed mask residue grid.
const maskPeriod = 12

// Encode builds the module matrix for text at the given version, mode and
// error correction level. All eight mask planes are populated (functional
// modules read the same in every plane) and the lowest-penalty mask is
// selected.
func Encode(text []byte, version int, mode Mode, ec ECLevel) (*Matrix, error) {
	nModules := NModules(version)
	nCodewords := NCodewords(version)
	nECCodewords := NECCodewords(version, ec)
	nDataCodewords := nCodewords - nECCodewords
	slog.Debug("qr: encode",
		"len", len(text), "version", version, "mode", mode.String(), "ec", ec.String(),
		"modules", nModules, "codewords", nCodewords, "ec_codewords", nECCodewords)

	matrix := NewMatrix(nModules)

	n7 := nModules - 7
	setFinderPattern(matrix, 0, 0)
	setFinderPattern(matrix, n7, 0)
	setFinderPattern(matrix, 0, n7)

	setTimingPatterns(matrix, nModules)

	if version >= 7 {
		setVersion(matrix, version, nModules)
	}

	setAlignmentPatterns(matrix, version)

	maskPlanes := maskPatternPlanes()

	setFormat(matrix, nModules, ec)

	textBits := NewBitSeq(nDataCodewords)
	textBits.AppendBits(uint16(mode), 4)
	textBits.AppendBits(uint16(len(text)), NCountBits(version, mode))
	var err error
	switch mode {
	case Numeric:
		err = encodeNumeric(textBits, text)
	case AlphaNumeric:
		err = encodeAlphaNumeric(textBits, text)
	default:
		encodeEightBit(textBits, text)
	}
	if err != nil {
		return nil, err
	}
	setPadding(textBits, version, ec)

	dataBytes := addErrorCorrection(textBits.Bytes(), version, ec)
	dataBits := BitSeqFrom(dataBytes)

	setDataSnaked(matrix, maskPlanes, dataBits, version)
	matrix.Select(bestMask(matrix, nModules))
	return matrix, nil
}

func setFinderPattern(matrix *Matrix, x, y int) {
	// Outer 7x7 dark boundary
	for i := 0; i <= 5; i++ {
		matrix.SetAll(x+i, y)
		matrix.SetAll(x+6, y+i)
		matrix.SetAll(x+6-i, y+6)
		matrix.SetAll(x, y+6-i)
	}
	// Inner 3x3 dark box
	for i := 2; i <= 4; i++ {
		for j := 2; j <= 4; j++ {
			matrix.SetAll(x+i, y+j)
		}
	}
}

func setTimingPatterns(matrix *Matrix, nModules int) {
	for i := 8; i < nModules-8; i++ {
		if i%2 == 0 {
			matrix.SetAll(i, 6)
			matrix.SetAll(6, i)
		}
	}
}

func setVersion(matrix *Matrix, version, nModules int) {
	pattern := VersionInfo(version)
	for i := 0; i < NVersionBits; i++ {
		a, b := VersionBitPos(i)
		x := nModules - 11 + a
		y := b
		if pattern&1 > 0 {
			matrix.SetAll(x, y)
			matrix.SetAll(y, x)
		}
		pattern /= 2
	}
}

func setAlignmentPatterns(matrix *Matrix, version int) {
	for _, p := range AlignmentPositions(version) {
		x := p[0] - 2
		y := p[1] - 2
		// Outer 5x5 dark boundary
		for i := 0; i <= 3; i++ {
			matrix.SetAll(x+i, y)
			matrix.SetAll(x+4, y+i)
			matrix.SetAll(x+4-i, y+4)
			matrix.SetAll(x, y+4-i)
		}
		matrix.SetAll(x+2, y+2)
	}
}

// setFormat writes the format information for all eight masks at once: each
// format cell stores, in plane k, the format bit of mask k.
func setFormat(matrix *Matrix, nModules int, ec ECLevel) {
	var formats [8]uint16
	for f := 0; f < 8; f++ {
		formats[f] = FormatInfo(f, ec)
	}
	var bytes [16]byte
	m := uint16(1)
	for i := 0; i < 16; i++ {
		var b byte
		for j := 0; j < 8; j++ {
			b |= byte((formats[j]&m)>>i) << j
		}
		bytes[i] = b
		m <<= 1
	}
	for i := 0; i < NFormatBits; i++ {
		p := FormatBitPositions(i, nModules)
		matrix.Set(p[0][0], p[0][1], bytes[i])
		matrix.Set(p[1][0], p[1][1], bytes[i])
	}
	xb, yb := FormatBitBlackPosition(nModules)
	matrix.SetAll(xb, yb)
}

func encodeNumeric(bits *BitSeq, text []byte) error {
	n := len(text)
	if n == 0 {
		return nil
	}
	for i := 0; i < n; i++ {
		if text[i] < '0' || text[i] > '9' {
			return fmt.Errorf("%w: byte %#02x at position %d is not a digit", ErrInvalidPayload, text[i], i)
		}
	}
	for i := 0; i+2 < n; i += 3 {
		val := 100*uint16(text[i]-'0') + 10*uint16(text[i+1]-'0') + uint16(text[i+2]-'0')
		bits.AppendBits(val, 10)
	}
	switch n % 3 {
	case 1:
		bits.AppendBits(uint16(text[n-1]-'0'), 4)
	case 2:
		bits.AppendBits(10*uint16(text[n-2]-'0')+uint16(text[n-1]-'0'), 7)
	}
	return nil
}

func encodeAlphaNumeric(bits *BitSeq, text []byte) error {
	n := len(text)
	if n == 0 {
		return nil
	}
	alnum := make([]byte, n)
	for i, c := range text {
		v, ok := ASCIIToAlnum(c)
		if !ok {
			return fmt.Errorf("%w: byte %#02x at position %d is not alphanumeric", ErrInvalidPayload, c, i)
		}
		alnum[i] = v
	}
	for i := 0; i+1 < n; i += 2 {
		bits.AppendBits(45*uint16(alnum[i])+uint16(alnum[i+1]), 11)
	}
	if n%2 == 1 {
		bits.AppendBits(uint16(alnum[n-1]), 6)
	}
	return nil
}

func encodeEightBit(bits *BitSeq, text []byte) {
	for _, c := range text {
		bits.AppendBits(uint16(c), 8)
	}
}

// setPadding appends the 0000 terminator when space remains (shortened
// when fewer than four bits are left), flushes to the byte boundary and
// fills the remaining data codewords with the alternating 0xEC/0x11 pad
// bytes.
func setPadding(bits *BitSeq, version int, ec ECLevel) {
	pad := [2]byte{0xEC, 0x11}
	pi := 0
	n := NCodewords(version) - NECCodewords(version, ec)
	if rem := 8*n - bits.idx; rem > 0 {
		bits.SkipBits(min(4, rem))
	}
	for i := bits.NextByteIdx(); i < n; i++ {
		bits.SetByte(pad[pi], i)
		pi = 1 - pi
	}
}

// maskPatternPlanes precomputes, for each cell of a 12×12 residue grid, a
// byte whose bit k says whether mask k inverts that cell. Every mask
// function is periodic in both axes with a period dividing 12 (mask 4 has
// period 4 along one axis, the rest divide 6).
func maskPatternPlanes() *Matrix {
	m := NewMatrix(maskPeriod)
	for i := 0; i < maskPeriod; i++ {
		for j := 0; j < maskPeriod; j++ {
			var val byte
			pat := byte(1)
			for n := 0; n < 8; n++ {
				if Mask(n, i, j) {
					val |= pat
				}
				pat <<= 1
			}
			m.Set(i, j, val)
		}
	}
	return m
}

// addErrorCorrection splits the data codewords into blocks, computes the
// parity of each, and emits the interleaved codeword stream: data bytes in
// round-robin across blocks, then the extra data byte of each long block,
// then parity bytes in the same round-robin order.
func addErrorCorrection(textBytes []byte, version int, ec ECLevel) []byte {
	ecb := ECBlocks(version, ec)
	ecb1, ecb2 := ecb[0], ecb[1]
	e1 := ecb1.C - ecb1.K
	e2 := ecb2.C - ecb2.K
	nECW := e1
	nDCW := ecb1.N*ecb1.K + ecb2.N*ecb2.K
	nBlocks := ecb1.N + ecb2.N
	nOutCodewords := ecb1.N*ecb1.C + ecb2.N*ecb2.C
	if e2 > 1 && e1 != e2 {
		slog.Warn("qr: inconsistent error correction word counts", "e1", e1, "e2", e2)
	}
	if len(textBytes) != nDCW {
		slog.Warn("qr: inconsistent input length", "len", len(textBytes), "n_dcw", nDCW)
	}
	rs1 := gf.NewEncoder(e1)
	rs2 := gf.NewEncoder(e2)
	ecCodewords := make([][]byte, 0, nBlocks)
	n := 0
	for b := 0; b < ecb1.N; b++ {
		ecCodewords = append(ecCodewords, rs1.Encode(textBytes[n:n+ecb1.K]))
		n += ecb1.K
	}
	for b := 0; b < ecb2.N; b++ {
		ecCodewords = append(ecCodewords, rs2.Encode(textBytes[n:n+ecb2.K]))
		n += ecb2.K
	}

	out := make([]byte, 0, nOutCodewords)
	for i := 0; i < ecb1.K; i++ {
		for j := 0; j < ecb1.N; j++ {
			out = append(out, textBytes[i+j*ecb1.K])
		}
		for j := 0; j < ecb2.N; j++ {
			out = append(out, textBytes[i+j+(j+ecb1.N)*ecb1.K])
		}
	}
	for j := 0; j < ecb2.N; j++ {
		out = append(out, textBytes[ecb1.N*ecb1.K+j*ecb2.K+ecb1.K])
	}
	for i := 0; i < nECW; i++ {
		for j := 0; j < nBlocks; j++ {
			out = append(out, ecCodewords[j][i])
		}
	}
	if len(out) != nOutCodewords {
		slog.Warn("qr: inconsistent output codeword count", "len", len(out), "expected", nOutCodewords)
	}
	return out
}

// setDataSnaked writes the codeword bits along the snake traversal into all
// mask planes at once. A wrong remainder count is a programming error.
func setDataSnaked(matrix *Matrix, maskPlanes *Matrix, bits *BitSeq, version int) {
	total := bits.Len()
	bitIdx := 0
	remBits := 0
	snake := NewSnake(version)
	for {
		x, y, ok := snake.Next()
		if !ok {
			break
		}
		m := maskPlanes.Get(x%maskPeriod, y%maskPeriod)
		if bitIdx >= total {
			matrix.Set(x, y, m)
			remBits++
			continue
		}
		b := m
		if bits.Bit(bitIdx) {
			b = ^m
		}
		matrix.Set(x, y, b)
		bitIdx++
	}
	if expected := NRemainderBits(version); remBits != expected {
		panic(fmt.Sprintf("qr: wrong number of remainder bits: got %d; expected %d", remBits, expected))
	}
}
