package qr

import (
	"testing"
)

var allECLevels = []ECLevel{ECL, ECM, ECQ, ECH}
var allModes = []Mode{Numeric, AlphaNumeric, EightBit}

// versionFromLengthCalc is the slow reference: scan versions upward until
// the capacity fits.
func versionFromLengthCalc(length int, mode Mode, ec ECLevel) (int, bool) {
	for v := VersionMin; v <= VersionMax; v++ {
		if DataCapacity(v, mode, ec) >= length {
			return v, true
		}
	}
	return 0, false
}

func TestVersionFromLengthMatchesCapacitySearch(t *testing.T) {
	for length := 1; length < 8000; length++ {
		for _, mode := range allModes {
			for _, ec := range allECLevels {
				v1, ok1 := VersionFromLength(length, mode, ec)
				v2, ok2 := versionFromLengthCalc(length, mode, ec)
				if v1 != v2 || ok1 != ok2 {
					t.Fatalf("VersionFromLength(%d, %s, %s) = %d, %v; capacity search gives %d, %v",
						length, mode, ec, v1, ok1, v2, ok2)
				}
			}
		}
	}
}

func TestCodewordAccounting(t *testing.T) {
	for version := VersionMin; version <= VersionMax; version++ {
		for _, ec := range allECLevels {
			blocks := ECBlocks(version, ec)
			ecb1, ecb2 := blocks[0], blocks[1]
			total := ecb1.N*ecb1.C + ecb2.N*ecb2.C
			if total != NCodewords(version) {
				t.Errorf("version %d %s: block totals %d != %d codewords", version, ec, total, NCodewords(version))
			}
			data := ecb1.N*ecb1.K + ecb2.N*ecb2.K
			if total-data != NECCodewords(version, ec) {
				t.Errorf("version %d %s: ec codewords %d != %d", version, ec, total-data, NECCodewords(version, ec))
			}
			if ecb2.N > 0 {
				if ecb2.C != ecb1.C+1 {
					t.Errorf("version %d %s: ecb2.C = %d, want ecb1.C+1 = %d", version, ec, ecb2.C, ecb1.C+1)
				}
				if ecb2.K != ecb1.K+1 {
					t.Errorf("version %d %s: ecb2.K = %d, want ecb1.K+1 = %d", version, ec, ecb2.K, ecb1.K+1)
				}
				if e1, e2 := ecb1.C-ecb1.K, ecb2.C-ecb2.K; e2 > 1 && e1 != e2 {
					t.Errorf("version %d %s: parity length differs between groups: %d vs %d", version, ec, e1, e2)
				}
			}
		}
	}
}

func TestFormatInfoDistinct(t *testing.T) {
	seen := map[uint16]bool{}
	for _, ec := range allECLevels {
		for mask := 0; mask < 8; mask++ {
			f := FormatInfo(mask, ec)
			if seen[f] {
				t.Errorf("format codeword %#04x not unique", f)
			}
			seen[f] = true
		}
	}
}

func TestAlignmentPositionsExcludeFinderCorners(t *testing.T) {
	for version := 2; version <= VersionMax; version++ {
		n := NModules(version)
		for _, p := range AlignmentPositions(version) {
			x, y := p[0], p[1]
			if x <= 8 && y <= 8 {
				t.Errorf("version %d: alignment centre (%d, %d) overlaps NW finder", version, x, y)
			}
			if x <= 8 && y >= n-9 {
				t.Errorf("version %d: alignment centre (%d, %d) overlaps SW finder", version, x, y)
			}
			if x >= n-9 && y <= 8 {
				t.Errorf("version %d: alignment centre (%d, %d) overlaps NE finder", version, x, y)
			}
		}
	}
}

func TestAlnumTablesRoundTrip(t *testing.T) {
	// Values 0..43 round-trip; 44 is the ':' slot whose forward mapping
	// reads back as '0'.
	for v := byte(0); v < 44; v++ {
		c := AlnumToASCII(v)
		got, ok := ASCIIToAlnum(c)
		if !ok || got != v {
			t.Errorf("ASCIIToAlnum(AlnumToASCII(%d)) = %d, %v", v, got, ok)
		}
	}
	if got, ok := ASCIIToAlnum(':'); !ok || got != 44 {
		t.Errorf("ASCIIToAlnum(':') = %d, %v; want 44, true", got, ok)
	}
	if _, ok := ASCIIToAlnum('a'); ok {
		t.Error("lowercase letters are not alphanumeric")
	}
}
