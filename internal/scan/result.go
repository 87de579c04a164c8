package scan

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dfbb/qrsnap/internal/qr"
)

// Result is the outcome of a decode attempt. Either Err is set, or Data
// holds the decoded payload. The remaining fields describe the best symbol
// candidate found and may be partially populated even on failure. Grades
// follow the standard's 0..4 scale as floats, NaN when unavailable; the
// fractional part orders candidates sharing the same integer grade.
type Result struct {
	Err  error
	Data []byte

	HasSymbol bool
	Version   int
	EC        qr.ECLevel
	Mask      uint8
	HasMode   bool
	Mode      qr.Mode

	FinderGrades      [3]float64
	TimingGrades      [2]float64
	AlignmentGrade    float64
	VersionInfoGrades [2]float64
	FormatInfoGrades  [2]float64
	FunctionalGrade   float64
	DecodingGrade     float64
}

func newResult() *Result {
	nan := math.NaN()
	return &Result{
		FinderGrades:      [3]float64{nan, nan, nan},
		TimingGrades:      [2]float64{nan, nan},
		AlignmentGrade:    nan,
		VersionInfoGrades: [2]float64{nan, nan},
		FormatInfoGrades:  [2]float64{nan, nan},
		FunctionalGrade:   nan,
		DecodingGrade:     nan,
	}
}

func resultFromError(err error) *Result {
	r := newResult()
	r.Err = err
	return r
}

func resultFromSymbolArea(sa *symbolArea) *Result {
	r := newResult()
	r.HasSymbol = true
	r.Version = sa.version
	r.EC = sa.ec
	r.Mask = sa.mask
	r.FinderGrades = sa.finderGrades
	r.TimingGrades = sa.timingGrades
	r.AlignmentGrade = sa.alignmentGrade
	r.VersionInfoGrades = sa.versionInfoGrades
	r.FormatInfoGrades = sa.formatInfoGrades
	r.FunctionalGrade = sa.grade()
	return r
}

// Grade is the overall symbol grade: the minimum of the functional and
// decoding grades, or 0 when either is unavailable.
func (r *Result) Grade() float64 {
	if math.IsNaN(r.FunctionalGrade) || math.IsNaN(r.DecodingGrade) {
		return 0
	}
	return math.Min(r.FunctionalGrade, r.DecodingGrade)
}

// grade2 is the composite used to pick between candidates: decoded results
// rank a flat 10 above functional-only ones.
func (r *Result) grade2() float64 {
	if math.IsNaN(r.FunctionalGrade) {
		return 0
	}
	if math.IsNaN(r.DecodingGrade) {
		return r.FunctionalGrade
	}
	return 10.0 + r.FunctionalGrade + r.DecodingGrade
}

// Write emits the stable human-readable diagnostic block.
func (r *Result) Write(w io.Writer) {
	if r.Err != nil {
		fmt.Fprintf(w, "ERROR:   %v\n", r.Err)
	} else if r.Data != nil {
		if s := string(r.Data); utf8.ValidString(s) && !strings.ContainsFunc(s, unicode.IsControl) {
			fmt.Fprintf(w, "data:    %q\n", s)
		} else {
			fmt.Fprintf(w, "data:    %d bytes; hex=%02X\n", len(r.Data), r.Data)
		}
	}
	if r.HasMode {
		fmt.Fprintf(w, "mode:    %s\n", r.Mode)
	} else {
		fmt.Fprint(w, "mode:    n/a\n")
	}
	if r.HasSymbol {
		fmt.Fprintf(w, "mask:    %d\n", r.Mask)
		fmt.Fprintf(w, "version: %d\n", r.Version)
		fmt.Fprintf(w, "ec:      %s\n", r.EC)
	} else {
		fmt.Fprint(w, "mask:    n/a\n")
		fmt.Fprint(w, "version: n/a\n")
		fmt.Fprint(w, "ec:      n/a\n")
	}
	fmt.Fprintf(w, "grade:   %s\n", formatGrade(r.Grade()))
	fmt.Fprintf(w, "finder_grades:       %s\n", formatGrades(r.FinderGrades[:]))
	fmt.Fprintf(w, "timing_grades:       %s\n", formatGrades(r.TimingGrades[:]))
	fmt.Fprintf(w, "alignment_grade:     %s\n", formatGrade(r.AlignmentGrade))
	fmt.Fprintf(w, "version_info_grades: %s\n", formatGrades(r.VersionInfoGrades[:]))
	fmt.Fprintf(w, "format_info_grades:  %s\n", formatGrades(r.FormatInfoGrades[:]))
	fmt.Fprintf(w, "functional_grade:    %s\n", formatGrade(r.FunctionalGrade))
	fmt.Fprintf(w, "decoding_grade:      %s\n", formatGrade(r.DecodingGrade))
}

func formatGrade(g float64) string {
	if math.IsNaN(g) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", g)
}

func formatGrades(gs []float64) string {
	parts := make([]string, len(gs))
	for i, g := range gs {
		parts[i] = formatGrade(g)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
