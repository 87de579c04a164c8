package scan

import (
	"errors"
	"math"
	"math/bits"

	"github.com/dfbb/qrsnap/internal/qr"
)

// Format information failures.
var (
	errFormatConflictEC   = errors.New("conflicting format (ec) information")
	errFormatConflictMask = errors.New("conflicting format (mask) information")
	errFormatUnreadable   = errors.New("unable to decode format (ec, mask) information")
)

// symbolArea is a finder area whose timing, alignment, version and format
// patterns verified against a concrete version, with the decoded EC level
// and mask and all component grades.
type symbolArea struct {
	x, y, w, h        float64
	ms                float64
	version           int
	ec                qr.ECLevel
	mask              uint8
	finderGrades      [3]float64
	timingGrades      [2]float64
	alignmentGrade    float64
	versionInfoGrades [2]float64
	formatInfoGrades  [2]float64
	difficulty        int
}

// grade is the minimum over all functional pattern grades, with the two
// version copies and the two format copies each averaged first.
func (sa *symbolArea) grade() float64 {
	grade := 4.0
	for _, g := range sa.finderGrades {
		grade = math.Min(grade, g)
	}
	for _, g := range sa.timingGrades {
		grade = math.Min(grade, g)
	}
	grade = math.Min(grade, sa.alignmentGrade)
	grade = math.Min(grade, (sa.versionInfoGrades[0]+sa.versionInfoGrades[1])/2)
	grade = math.Min(grade, (sa.formatInfoGrades[0]+sa.formatInfoGrades[1])/2)
	return grade
}

// symbolAreaIterator tries version candidates for one finder area: the
// rounded estimate from the area geometry, widened by ±1 and ±2 in
// aggressive mode.
type symbolAreaIterator struct {
	gray              *grayMatrix
	area              *finderArea
	aggressive        bool
	versionCandidates []int
	versionIdx        int
}

func newSymbolAreaIterator(gray *grayMatrix, area *finderArea, aggressive bool) *symbolAreaIterator {
	delta := 0
	if aggressive {
		delta = 2
	}
	nm := (area.w + area.h) / 2 / area.ms
	vf := math.Round((nm - 17) / 4)
	v0 := int(vf)
	if vf < qr.VersionMin {
		v0 = qr.VersionMin
	} else if vf > qr.VersionMax {
		v0 = qr.VersionMax
	}
	candidates := []int{v0}
	for i := 1; i <= delta; i++ {
		if v0 >= qr.VersionMin+i {
			candidates = append(candidates, v0-i)
		}
		if v0 <= qr.VersionMax-i {
			candidates = append(candidates, v0+i)
		}
	}
	return &symbolAreaIterator{gray: gray, area: area, aggressive: aggressive, versionCandidates: candidates}
}

func (it *symbolAreaIterator) next() (*symbolArea, bool) {
	for it.versionIdx < len(it.versionCandidates) {
		v := it.versionCandidates[it.versionIdx]
		it.versionIdx++
		if sa, ok := it.good(v); ok {
			return sa, true
		}
	}
	return nil, false
}

func (it *symbolAreaIterator) good(version int) (*symbolArea, bool) {
	gradeLimit := 1.0
	if it.aggressive {
		gradeLimit = 0.2
	}
	tgh := it.evalTiming(version, true)
	tgv := it.evalTiming(version, false)
	alignmentGrade := it.evalAlignment(version)
	if tgh < gradeLimit || tgv < gradeLimit || alignmentGrade < gradeLimit {
		return nil, false
	}
	versionInfoGrades := [2]float64{4, 4}
	if version >= 7 {
		gNE := it.evalVersion(version, true)
		gSW := it.evalVersion(version, false)
		versionInfoGrades = [2]float64{gNE, gSW}
		if it.aggressive {
			if gNE < gradeLimit && gSW < gradeLimit {
				return nil, false
			}
		} else if gNE < gradeLimit || gSW < gradeLimit {
			return nil, false
		}
	}
	ec, mask, formatInfoGrades, err := it.evalFormat(version)
	if err != nil {
		return nil, false
	}
	fa := it.area
	return &symbolArea{
		x:                 fa.x,
		y:                 fa.y,
		w:                 fa.w,
		h:                 fa.h,
		ms:                fa.ms,
		version:           version,
		ec:                ec,
		mask:              mask,
		finderGrades:      fa.grades,
		timingGrades:      [2]float64{tgh, tgv},
		alignmentGrade:    alignmentGrade,
		versionInfoGrades: versionInfoGrades,
		formatInfoGrades:  formatInfoGrades,
		difficulty:        fa.difficulty,
	}, true
}

// evalTiming reads the n−16 modules of one timing line and grades by the
// wrong-colour fraction in tiers of 7/11/14 percent; any 5-module window
// with two or more wrong cells demotes the grade below 1.
func (it *symbolAreaIterator) evalTiming(version int, horizontal bool) float64 {
	var damage [qr.ModulesMax - 8 - 8]bool
	damageCount := 0
	n := qr.NModules(version)
	m := n - 8 - 8
	nm := float64(n)
	fa := it.area
	var ms, x, y float64
	if horizontal {
		ms = fa.w / nm
		x = fa.x + ms*8
		y = fa.y + ms*6
	} else {
		ms = fa.h / nm
		x = fa.x + ms*6
		y = fa.y + ms*8
	}
	for i := 0; i < m; i++ {
		light := it.gray.isLight(x, y, x+ms, y+ms)
		if light == (i%2 == 0) {
			damage[i] = true
			damageCount++
		}
		if horizontal {
			x += ms
		} else {
			y += ms
		}
	}

	q := 1.0 - float64(damageCount)/float64(m)
	if 100*damageCount > 14*m {
		return q
	}
	g := 4.0
	switch {
	case 100*damageCount > 11*m:
		g = 1.0 + q
	case 100*damageCount > 7*m:
		g = 2.0 + q
	case damageCount > 0:
		g = 3.0 + q
	}
	for j := 0; j <= m-5; j++ {
		dc := 0
		for i := j; i < j+5; i++ {
			if damage[i] {
				dc++
			}
		}
		if dc >= 2 {
			return q / float64(dc)
		}
	}
	return g
}

// evalAlignment checks the centre, 1-ring and 2-ring colours of every
// alignment pattern and grades by the damage fraction in tiers of
// 10/20/30 percent.
func (it *symbolAreaIterator) evalAlignment(version int) float64 {
	if version <= 1 {
		return 4.0
	}
	damageCount := 0
	n := qr.NModules(version)
	m := 0
	nm := float64(n)
	fa := it.area
	gm := it.gray
	msx := fa.w / nm
	msy := fa.h / nm
	for _, p := range qr.AlignmentPositions(version) {
		m++
		x := fa.x + float64(p[0])*msx
		y := fa.y + float64(p[1])*msy
		if gm.isLight(x, y, x+msx, y+msy) {
			damageCount++
		}
		for k := -1; k < 1; k++ {
			for _, d := range [4][2]int{{k, -1}, {1, k}, {-k, 1}, {-1, -k}} {
				xx := x + msx*float64(d[0])
				yy := y + msy*float64(d[1])
				if !gm.isLight(xx, yy, xx+msx, yy+msy) {
					damageCount++
				}
			}
		}
		for k := -2; k < 2; k++ {
			for _, d := range [4][2]int{{k, -2}, {2, k}, {-k, 2}, {-2, -k}} {
				xx := x + msx*float64(d[0])
				yy := y + msy*float64(d[1])
				if gm.isLight(xx, yy, xx+msx, yy+msy) {
					damageCount++
				}
			}
		}
	}
	q := 1.0 - float64(damageCount)/(float64(m)*5*5)
	switch {
	case 100*damageCount > 30*m:
		return q
	case 100*damageCount > 20*m:
		return 1.0 + q
	case 100*damageCount > 10*m:
		return 2.0 + q
	case damageCount > 0:
		return 3.0 + q
	}
	return 4.0
}

// evalVersion samples one of the two 18-bit version information blocks and
// grades by Hamming distance to the codeword of the assumed version.
func (it *symbolAreaIterator) evalVersion(version int, northEast bool) float64 {
	refPat := qr.VersionInfo(version)
	pat := uint32(0)
	factor := uint32(1)

	n := qr.NModules(version)
	nm := float64(n)
	fa := it.area
	gm := it.gray
	msx := fa.w / nm
	msy := fa.h / nm

	for b := 0; b < qr.NVersionBits; b++ {
		a, bb := qr.VersionBitPos(b)
		var i, j int
		if northEast {
			i, j = n-11+a, bb
		} else {
			i, j = bb, n-11+a
		}
		x := fa.x + float64(i)*msx
		y := fa.y + float64(j)*msy
		if !gm.isLight(x, y, x+msx, y+msy) {
			pat += factor
		}
		factor *= 2
	}
	hamming := bits.OnesCount32(refPat ^ pat)
	switch {
	case hamming == 0:
		return 4.0
	case hamming > 3:
		return float64(hamming) / float64(qr.NVersionBits)
	default:
		return 4.0 - float64(hamming)
	}
}

// evalFormat samples both 15-bit format information copies and matches each
// against the 32 reference codewords by Hamming distance ≤ 3. Both copies
// must agree on (ec, mask).
func (it *symbolAreaIterator) evalFormat(version int) (qr.ECLevel, uint8, [2]float64, error) {
	var patterns [2]uint16
	n := qr.NModules(version)
	nm := float64(n)
	fa := it.area
	gm := it.gray
	msx := fa.w / nm
	msy := fa.h / nm
	factor := uint16(1)
	for b := 0; b < qr.NFormatBits; b++ {
		fbp := qr.FormatBitPositions(b, n)
		for p := 0; p <= 1; p++ {
			x := fa.x + float64(fbp[p][0])*msx
			y := fa.y + float64(fbp[p][1])*msy
			if !gm.isLight(x, y, x+msx, y+msy) {
				patterns[p] += factor
			}
		}
		factor *= 2
	}
	var grades [2]float64
	var found [2]bool
	var ecs [2]qr.ECLevel
	var masks [2]uint8
	for p := 0; p <= 1; p++ {
	pat:
		for _, ec := range [4]qr.ECLevel{qr.ECL, qr.ECM, qr.ECQ, qr.ECH} {
			for mask := 0; mask < 8; mask++ {
				refPat := qr.FormatInfo(mask, ec)
				if hamming := bits.OnesCount16(refPat ^ patterns[p]); hamming <= 3 {
					grades[p] = 4.0 - float64(hamming)
					found[p] = true
					ecs[p] = ec
					masks[p] = uint8(mask)
					break pat
				}
			}
		}
	}
	switch {
	case found[0] && found[1]:
		if ecs[0] != ecs[1] {
			return 0, 0, grades, errFormatConflictEC
		}
		if masks[0] != masks[1] {
			return 0, 0, grades, errFormatConflictMask
		}
		return ecs[0], masks[0], grades, nil
	case found[0]:
		return ecs[0], masks[0], grades, nil
	case found[1]:
		return ecs[1], masks[1], grades, nil
	}
	return 0, 0, grades, errFormatUnreadable
}
