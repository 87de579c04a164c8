package scan

import (
	"log/slog"
	"math"

	"github.com/dfbb/qrsnap/internal/qr"
)

// hitMatrix counts, per pixel, how often a 1:1:3:1:1 dark:light:dark:light:
// dark run sequence was found centred on it, scanning every row and column.
// It also records the minimal and maximal width of the middle "3" run seen
// at each pixel, which bounds the candidate module size there.
type hitMatrix struct {
	width, height int
	hits          []int
	min3s         []int
	max3s         []int
	hiscore       int
	aggressive    bool
}

func newHitMatrix(width, height int, aggressive bool) *hitMatrix {
	min3s := make([]int, width*height)
	for i := range min3s {
		min3s[i] = math.MaxInt
	}
	return &hitMatrix{
		width:      width,
		height:     height,
		hits:       make([]int, width*height),
		min3s:      min3s,
		max3s:      make([]int, width*height),
		aggressive: aggressive,
	}
}

// hitMatrixFor scans the thresholded gray matrix along rows and columns,
// feeding run lengths into the rotating finder-run detector.
func hitMatrixFor(gm *grayMatrix, aggressive bool) *hitMatrix {
	hm := newHitMatrix(gm.width, gm.height, aggressive)
	lo, hi := qr.ModulePixelBounds(gm.width, gm.height)
	slog.Debug("scan: hit matrix", "min_module_pixels", lo, "max_module_pixels", hi)
	pat := newFinderRuns(lo, hi, aggressive)
	for _, cols := range [2]bool{true, false} {
		ii := gm.height
		jj := gm.width
		if cols {
			ii = gm.width
			jj = gm.height
		}
		for i := 0; i < ii; i++ {
			pat.reset()
			countingDark := false
			n := 0
			for j := 0; j < jj; j++ {
				if i > ii/2 && j > jj/2 {
					break
				}
				var isDark bool
				if cols {
					isDark = gm.isDark(i, j)
				} else {
					isDark = gm.isDark(j, i)
				}
				if countingDark == isDark {
					n++
				} else {
					if start, three, ok := pat.push(countingDark, n); ok {
						if cols {
							hm.hit(i, j-start, 1, three)
						} else {
							hm.hit(j-start, i, three, 1)
						}
					}
					countingDark = !countingDark
					n = 1
				}
			}
			if start, three, ok := pat.push(countingDark, n); ok {
				if cols {
					hm.hit(i, jj-start, 1, three)
				} else {
					hm.hit(jj-start, i, three, 1)
				}
			}
		}
	}
	return hm
}

func (hm *hitMatrix) hitOne(x, y, dim3s int) {
	idx := x + y*hm.width
	hm.hits[idx]++
	if hm.hits[idx] > hm.hiscore {
		hm.hiscore = hm.hits[idx]
	}
	if dim3s < hm.min3s[idx] {
		hm.min3s[idx] = dim3s
	}
	if dim3s > hm.max3s[idx] {
		hm.max3s[idx] = dim3s
	}
}

// hit records a run sequence whose middle "3" run spans width3 × height3
// pixels starting at (x1, y1): the centre pixel, the centre third, and a
// small neighbourhood so a damaged finder still accumulates hits.
func (hm *hitMatrix) hit(x1, y1, width3, height3 int) {
	dim3s := max(width3, height3)

	x := min(hm.width-1, x1+width3/2)
	y := min(hm.height-1, y1+height3/2)
	hm.hitOne(x, y, dim3s)
	if width3%2 == 1 {
		hm.hitOne(min(hm.width-1, x1+width3/2+1), min(hm.height-1, y1+height3/2+1), dim3s)
	}
	xx1 := min(hm.width-1, x1+width3/3)
	yy1 := min(hm.height-1, y1+height3/3)
	xx2 := min(hm.width-1, x1+(2*width3)/3)
	yy2 := min(hm.height-1, y1+(2*height3)/3)
	for x := xx1; x <= xx2; x++ {
		for y := yy1; y <= yy2; y++ {
			hm.hitOne(x, y, dim3s)
		}
	}

	footprint := 1
	if hm.aggressive {
		footprint = 2
	}
	for f := 0; f <= footprint; f++ {
		xx1 := max(0, x1-f)
		yy1 := max(0, y1-f)
		xx2 := min(hm.width-1, x1+width3-1+f)
		yy2 := min(hm.height-1, y1+height3-1+f)
		for x := xx1; x <= xx2; x++ {
			for y := yy1; y <= yy2; y++ {
				hm.hitOne(x, y, dim3s)
			}
		}
	}
}

func (hm *hitMatrix) idx(i int) int     { return hm.hits[i] }
func (hm *hitMatrix) min3(x, y int) int { return hm.min3s[x+y*hm.width] }
func (hm *hitMatrix) max3(x, y int) int { return hm.max3s[x+y*hm.width] }

// finderRuns is a 6-slot rotating buffer of run lengths. After each dark
// run it checks whether the last five runs approximate a 1:1:3:1:1 ratio
// within the tolerance, and if so reports the distance back to the start of
// the middle run and that run's width.
type finderRuns struct {
	pat        [6]int
	idx        int
	cnt        int
	min        int
	max        int
	aggressive bool
}

func newFinderRuns(lo, hi int, aggressive bool) *finderRuns {
	return &finderRuns{min: (7 - 2) * lo, max: (7 + 2) * hi, aggressive: aggressive}
}

func (fr *finderRuns) reset() {
	fr.pat = [6]int{}
	fr.idx = 0
	fr.cnt = 0
}

func (fr *finderRuns) push(dark bool, n int) (start, three int, ok bool) {
	fr.cnt++
	if dark {
		return fr.pushDark(n)
	}
	return fr.pushLight(n)
}

func (fr *finderRuns) pushLight(n int) (int, int, bool) {
	fr.pat[fr.idx] = n
	fr.idx = (fr.idx + 1) % 6
	return 0, 0, false
}

func (fr *finderRuns) pushDark(n int) (int, int, bool) {
	fr.pat[fr.idx] = n
	fr.idx = (fr.idx + 1) % 6
	i := fr.idx
	if fr.cnt < 5 {
		return 0, 0, false
	}
	length := 0
	for j := 1; j <= 5; j++ {
		length += fr.pat[(i+j)%6]
	}
	flen := float64(length)
	delta := 0.5
	if fr.aggressive {
		delta = 0.7
	}
	oneLow := int(math.Ceil(flen / 7.0 * delta))
	oneHigh := int(math.Floor(flen / 7.0 * (1.0 + delta)))
	threeLow := int(math.Ceil(flen / 7.0 * (3.0 - delta)))
	threeHigh := int(math.Floor(flen / 7.0 * (3.0 + delta)))
	mid := fr.pat[(i+3)%6]
	if length < fr.min || length > fr.max || mid < threeLow || mid > threeHigh {
		return 0, 0, false
	}
	for _, j := range [4]int{1, 2, 4, 5} {
		if fr.pat[(i+j)%6] < oneLow || fr.pat[(i+j)%6] > oneHigh {
			return 0, 0, false
		}
	}
	start := fr.pat[(i+3)%6] + fr.pat[(i+4)%6] + fr.pat[(i+5)%6]
	return start, mid, true
}
