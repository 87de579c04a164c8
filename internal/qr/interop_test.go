package qr_test

import (
	"testing"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/require"

	"github.com/dfbb/qrsnap/internal/qr"
	"github.com/dfbb/qrsnap/internal/render"
)

// Symbols produced by the encoder must be readable by an independent
// decoder from the wider ecosystem.
func TestEncodeInteropGozxing(t *testing.T) {
	cases := []struct {
		name    string
		data    string
		version int
		mode    qr.Mode
		ec      qr.ECLevel
	}{
		{"byte-v1", "hello world", 1, qr.EightBit, qr.ECL},
		{"byte-v2-m", "https://example.com/qrsnap", 2, qr.EightBit, qr.ECM},
		{"alnum-v1-q", "HELLO WORLD", 1, qr.AlphaNumeric, qr.ECQ},
		{"numeric-v1-h", "31415926535", 1, qr.Numeric, qr.ECH},
		{"byte-v7-h", "version seven carries version information", 7, qr.EightBit, qr.ECH},
		{"byte-v10-q", "a somewhat longer payload that needs a bigger symbol to fit comfortably", 10, qr.EightBit, qr.ECQ},
	}
	reader := zxqrcode.NewQRCodeReader()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := qr.Encode([]byte(tc.data), tc.version, tc.mode, tc.ec)
			require.NoError(t, err)
			img := render.Gray(m, 4)
			bmp, err := gozxing.NewBinaryBitmapFromImage(img)
			require.NoError(t, err)
			result, err := reader.Decode(bmp, nil)
			require.NoError(t, err, "gozxing failed to decode our symbol")
			require.Equal(t, tc.data, result.GetText())
		})
	}
}
