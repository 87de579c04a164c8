package scan_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfbb/qrsnap/internal/qr"
	"github.com/dfbb/qrsnap/internal/scan"
	"github.com/dfbb/qrsnap/internal/xorshift"
)

func encodeMatrix(t *testing.T, data []byte, version int, mode qr.Mode, ec qr.ECLevel) *qr.Matrix {
	t.Helper()
	m, err := qr.Encode(data, version, mode, ec)
	require.NoError(t, err)
	return m
}

func decodeMatrix(m *qr.Matrix) *scan.Result {
	return scan.Decode(scan.NewMatrixImage(m), true)
}

func TestDecodeNumericV1H(t *testing.T) {
	m := encodeMatrix(t, []byte("12345"), 1, qr.Numeric, qr.ECH)
	res := decodeMatrix(m)
	require.NoError(t, res.Err)
	assert.Equal(t, []byte("12345"), res.Data)
	assert.Equal(t, qr.Numeric, res.Mode)
	assert.Equal(t, 1, res.Version)
}

func TestDecodeAlphaNumericV1M(t *testing.T) {
	m := encodeMatrix(t, []byte("HELLO WORLD"), 1, qr.AlphaNumeric, qr.ECM)
	res := decodeMatrix(m)
	require.NoError(t, res.Err)
	assert.Equal(t, []byte("HELLO WORLD"), res.Data)
	assert.Equal(t, qr.AlphaNumeric, res.Mode)
}

func TestDecodeEightBitV8QClean(t *testing.T) {
	rng := xorshift.New(63)
	data := rng.Bytes(100)
	m := encodeMatrix(t, data, 8, qr.EightBit, qr.ECQ)
	res := decodeMatrix(m)
	require.NoError(t, res.Err)
	assert.Equal(t, data, res.Data)
	assert.Equal(t, 4.0, res.Grade(), "undamaged symbol must grade 4")
}

// seSquareDamage overwrites an L-shaped border in the south-east corner,
// growing a damaged square of the given side, alternating dark and light.
func seSquareDamage(m *qr.Matrix, side int) {
	dim := m.Dim()
	for idx := 1; idx <= side; idx++ {
		color := byte(0x00)
		if idx%2 == 1 {
			color = 0xFF
		}
		for x := dim - idx; x < dim; x++ {
			m.Set(x, dim-idx, color)
		}
		for y := dim - idx - 1; y < dim; y++ {
			if y >= 0 {
				m.Set(dim-idx, y, color)
			}
		}
	}
}

func TestDecodeSESquareDamage(t *testing.T) {
	cases := []struct {
		ec      qr.ECLevel
		divisor int
	}{
		{qr.ECM, 5},
		{qr.ECQ, 4},
		{qr.ECH, 3},
	}
	for _, tc := range cases {
		t.Run(tc.ec.String(), func(t *testing.T) {
			rng := xorshift.New(44)
			data := rng.Bytes(100)
			m := encodeMatrix(t, data, 10, qr.EightBit, tc.ec)
			seSquareDamage(m, m.Dim()/tc.divisor)
			res := decodeMatrix(m)
			require.NoError(t, res.Err)
			assert.Equal(t, data, res.Data)
			assert.Greater(t, res.Grade(), 0.0)
		})
	}
}

// At level L the same damage uses a larger share of the correction
// capacity: decoding may fail, but it must never return different data.
func TestDecodeSESquareDamageLevelL(t *testing.T) {
	rng := xorshift.New(44)
	data := rng.Bytes(100)
	m := encodeMatrix(t, data, 10, qr.EightBit, qr.ECL)
	seSquareDamage(m, m.Dim()/5)
	res := decodeMatrix(m)
	if res.Err == nil {
		assert.Equal(t, data, res.Data, "level L must not miscorrect")
	}
}

func TestDecodeRandomDamage(t *testing.T) {
	for _, version := range []int{1, 10, 20, 40} {
		for _, ec := range []qr.ECLevel{qr.ECL, qr.ECM, qr.ECQ, qr.ECH} {
			t.Run(fmt.Sprintf("v%d-%s", version, ec), func(t *testing.T) {
				rng := xorshift.New(uint32(8*version + int(ec) + 1))
				capacity := qr.DataCapacity(version, qr.EightBit, ec)
				data := rng.Bytes(capacity)
				m := encodeMatrix(t, data, version, qr.EightBit, ec)
				dim := m.Dim()
				flips := 2 + dim*dim/123
				for i := 1; i <= flips; i++ {
					color := byte(0x00)
					if i%2 == 1 {
						color = 0xFF
					}
					x := rng.IntClamped(0, dim-1)
					y := rng.IntClamped(0, dim-1)
					m.Set(x, y, color)
				}
				res := decodeMatrix(m)
				require.NoError(t, res.Err, "version %d ec %s", version, ec)
				assert.Equal(t, data, res.Data, "version %d ec %s", version, ec)
			})
		}
	}
}

func TestDecodeNumericCapacityV40L(t *testing.T) {
	rng := xorshift.New(213)
	capacity := qr.DataCapacity(40, qr.Numeric, qr.ECL)
	digits := make([]byte, capacity)
	for i := range digits {
		digits[i] = '0' + rng.Byte()%10
	}
	m := encodeMatrix(t, digits, 40, qr.Numeric, qr.ECL)
	res := decodeMatrix(m)
	require.NoError(t, res.Err)
	assert.Equal(t, digits, res.Data)
}

func TestDecodeLowContrast(t *testing.T) {
	res := scan.Decode(flatImage{w: 64, h: 64, v: 0x80}, false)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "contrast")
}

func TestDecodeNoFinder(t *testing.T) {
	res := scan.Decode(noiseImage{w: 64, h: 64}, false)
	require.Error(t, res.Err)
}

func TestResultWriteDiagnostics(t *testing.T) {
	m := encodeMatrix(t, []byte("12345"), 1, qr.Numeric, qr.ECH)
	res := decodeMatrix(m)
	require.NoError(t, res.Err)
	var sb strings.Builder
	res.Write(&sb)
	out := sb.String()
	assert.Contains(t, out, `data:    "12345"`)
	assert.Contains(t, out, "mode:    Numeric")
	assert.Contains(t, out, "version: 1")
	assert.Contains(t, out, "ec:      H")
	assert.Contains(t, out, "grade:   ")
	assert.Contains(t, out, "finder_grades:")
}

// flatImage is a uniform grey image: no contrast at all.
type flatImage struct {
	w, h int
	v    uint8
}

func (f flatImage) Width() int  { return f.w }
func (f flatImage) Height() int { return f.h }
func (f flatImage) At(x, y int) (uint8, uint8, uint8, uint8) {
	return f.v, f.v, f.v, 0xFF
}

// noiseImage is a deterministic checker-like pattern with plenty of
// contrast but no finder patterns.
type noiseImage struct {
	w, h int
}

func (n noiseImage) Width() int  { return n.w }
func (n noiseImage) Height() int { return n.h }
func (n noiseImage) At(x, y int) (uint8, uint8, uint8, uint8) {
	if (x+y)%2 == 0 {
		return 0x10, 0x10, 0x10, 0xFF
	}
	return 0xF0, 0xF0, 0xF0, 0xFF
}
