package render_test

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/dfbb/qrsnap/internal/qr"
	"github.com/dfbb/qrsnap/internal/render"
)

func testMatrix(t *testing.T) *qr.Matrix {
	t.Helper()
	m, err := qr.Encode([]byte("RENDER"), 1, qr.EightBit, qr.ECM)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestText(t *testing.T) {
	m := testMatrix(t)
	var sb strings.Builder
	if err := render.Text(&sb, m); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 21 {
		t.Fatalf("got %d lines, want 21", len(lines))
	}
	for i, line := range lines {
		if len(line) != 21 {
			t.Fatalf("line %d has %d chars, want 21", i, len(line))
		}
		if strings.Trim(line, "@.") != "" {
			t.Fatalf("line %d contains characters other than '@' and '.': %q", i, line)
		}
	}
	// Top-left finder corner is dark
	if lines[0][0] != '@' {
		t.Error("module (0, 0) should render as '@'")
	}
}

func TestANSI(t *testing.T) {
	m := testMatrix(t)
	var sb strings.Builder
	if err := render.ANSI(&sb, m); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if !strings.Contains(out, "\x1B[40m") || !strings.Contains(out, "\x1B[107m") {
		t.Error("ANSI output missing colour escape codes")
	}
	if !strings.Contains(out, "\x1B[0m") {
		t.Error("ANSI output missing reset codes")
	}
}

func TestGray(t *testing.T) {
	m := testMatrix(t)
	ppm := 3
	img := render.Gray(m, ppm)
	wantSide := (21 + 2*qr.QuietZone) * ppm
	if img.Bounds().Dx() != wantSide || img.Bounds().Dy() != wantSide {
		t.Fatalf("image is %dx%d, want %dx%d", img.Bounds().Dx(), img.Bounds().Dy(), wantSide, wantSide)
	}
	// Quiet zone is light
	if img.GrayAt(0, 0).Y != 240 {
		t.Errorf("quiet zone pixel = %d, want 240", img.GrayAt(0, 0).Y)
	}
	// First finder module is dark, scaled by ppm
	x := qr.QuietZone * ppm
	if img.GrayAt(x, x).Y != 48 {
		t.Errorf("finder pixel = %d, want 48", img.GrayAt(x, x).Y)
	}
}

func TestPNGRoundTrip(t *testing.T) {
	m := testMatrix(t)
	var buf bytes.Buffer
	if err := render.PNG(&buf, m, 2); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	wantSide := (21 + 2*qr.QuietZone) * 2
	if img.Bounds().Dx() != wantSide {
		t.Errorf("decoded PNG is %d wide, want %d", img.Bounds().Dx(), wantSide)
	}
}
