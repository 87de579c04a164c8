package scan

import (
	"fmt"
	"log/slog"
	"math"
)

// grayMatrix holds the luma (lightness) of every image pixel, its min, max
// and average, and the light/dark threshold currently in force. The
// threshold is swept by the decoder; everything else is immutable.
type grayMatrix struct {
	width, height int
	data          []float64
	minLuma       float64
	maxLuma       float64
	avgLuma       float64
	threshold     float64
}

// minContrast is the smallest usable luma dynamic range.
const minContrast = 0.1

func newGrayMatrix(img Image) (*grayMatrix, error) {
	width := img.Width()
	height := img.Height()
	n := width * height
	data := make([]float64, 0, n)
	minLuma := 1.0
	maxLuma := 0.0
	sum := 0.0
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			l := luma(img.At(x, y))
			sum += l
			if l > maxLuma {
				maxLuma = l
			}
			if l < minLuma {
				minLuma = l
			}
			data = append(data, l)
		}
	}
	if maxLuma-minLuma < minContrast {
		return nil, fmt.Errorf("too little contrast: luma difference %.2f found; expected at least %.2f",
			maxLuma-minLuma, minContrast)
	}
	avgLuma := sum / float64(n)
	mid := (minLuma + maxLuma) / 2
	slog.Debug("scan: gray matrix", "min", minLuma, "max", maxLuma, "mid", mid, "avg", avgLuma)
	return &grayMatrix{
		width:     width,
		height:    height,
		data:      data,
		minLuma:   minLuma,
		maxLuma:   maxLuma,
		avgLuma:   avgLuma,
		threshold: mid,
	}, nil
}

// luma is the REC 709 brightness of an sRGB pixel, from 0 for black to
// just above 1 for opaque white (the weights sum to 1.0036). A fully
// transparent pixel reads as light (1.0).
func luma(r, g, b, a uint8) float64 {
	if a == 0 {
		return 1.0
	}
	return float64(a) / 255.0 * (0.2162/255.0*float64(r) + 0.7152/255.0*float64(g) + 0.0722/255.0*float64(b))
}

func (gm *grayMatrix) get(x, y int) float64 {
	return gm.data[x*gm.height+y]
}

func (gm *grayMatrix) isDark(x, y int) bool {
	return gm.get(x, y) <= gm.threshold
}

// lightness returns the average luma over the w×h rectangle at (x, y)
// minus the threshold, so positive means light. Pixels outside the image
// count as fully light.
func (gm *grayMatrix) lightness(x, y, w, h int) float64 {
	l := 0.0
	for i := x; i < x+w; i++ {
		if i < 0 || i >= gm.width {
			l += float64(h)
			continue
		}
		ii := i*gm.height + max(y, 0)
		for j := y; j < y+h; j++ {
			if j < 0 || j >= gm.height {
				l += 1.0
			} else {
				l += gm.data[ii]
				ii++
			}
		}
	}
	return l/float64(w*h) - gm.threshold
}

// isLight reports whether the rectangle between the two points averages
// lighter than the threshold.
func (gm *grayMatrix) isLight(x1, y1, x2, y2 float64) bool {
	return gm.lightness(int(math.Round(x1)), int(math.Round(y1)),
		int(math.Round(x2-x1)), int(math.Round(y2-y1))) > 0
}

// evalCandidate grades a potential finder pattern centred at (cx, cy) with
// the given module width. Four concentric sums are taken: the 3×3 dark
// centre, the 5×5 light ring, the 7×7 dark ring and the 9×9 surrounding
// ring. The integer part follows the standard (4 minus one per wrongly
// coloured module); a fractional quality term orders candidates with the
// same integer grade.
func (gm *grayMatrix) evalCandidate(cx, cy, dimension, difficulty int, aggressive bool) (FinderCandidate, bool) {
	dd := dimension
	xx := cx - dd/2
	yy := cy - dd/2
	var l1, l2, l3, l4, c float64

	// inner 3x3 dark centre
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			light := gm.lightness(xx+i*dd, yy+j*dd, dd, dd)
			l1 += light
			if light <= 0 {
				c++
			}
		}
	}

	// intermediary 5x5 light ring
	for k := -2; k < 2; k++ {
		for _, p := range [4][2]int{{k, -2}, {2, k}, {-k, 2}, {-2, -k}} {
			light := gm.lightness(xx+p[0]*dd, yy+p[1]*dd, dd, dd)
			l2 += light
			if light > 0 {
				c++
			}
		}
	}

	// outer 7x7 dark ring
	for k := -3; k < 3; k++ {
		for _, p := range [4][2]int{{k, -3}, {3, k}, {-k, 3}, {-3, -k}} {
			light := gm.lightness(xx+p[0]*dd, yy+p[1]*dd, dd, dd)
			l3 += light
			if light <= 0 {
				c++
			}
		}
	}

	// surrounding 9x9 ring (quiet zone sample)
	for k := -4; k < 4; k++ {
		for _, p := range [4][2]int{{k, -4}, {4, k}, {-k, 4}, {-4, -k}} {
			light := gm.lightness(xx+p[0]*dd, yy+p[1]*dd, dd, dd)
			l4 += light
			if light > 0 {
				c++
			}
		}
	}

	grade := 4.0 + c - 81.0
	if grade < 0 {
		grade = 0
	}
	q := (-l1/9.0 + l2/16.0 - l3/24.0 + l4/32.0) / 4.0
	quality := c/(81.0+1.0)/2.0 + q/2.0
	grade += quality

	threshold := 2.0
	if aggressive {
		threshold = 0.2
	}
	if grade < threshold {
		return FinderCandidate{}, false
	}
	return FinderCandidate{
		CenterX:    cx,
		CenterY:    cy,
		Dimension:  dimension,
		Grade:      grade,
		Difficulty: difficulty,
	}, true
}
