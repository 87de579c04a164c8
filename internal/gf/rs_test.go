package gf_test

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfbb/qrsnap/internal/gf"
	"github.com/dfbb/qrsnap/internal/qr"
	"github.com/dfbb/qrsnap/internal/xorshift"
)

// ecbKinds returns every distinct (parity, data, capacity) block shape used
// by any (version, ec) combination.
func ecbKinds() []qr.ECB {
	var all []qr.ECB
	for version := qr.VersionMin; version <= qr.VersionMax; version++ {
		for _, ec := range []qr.ECLevel{qr.ECL, qr.ECM, qr.ECQ, qr.ECH} {
			blocks := qr.ECBlocks(version, ec)
			for _, b := range blocks {
				if b.C > 0 {
					all = append(all, b)
				}
			}
		}
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.C-a.K != b.C-b.K {
			return a.C-a.K < b.C-b.K
		}
		if a.K != b.K {
			return a.K < b.K
		}
		return a.R < b.R
	})
	kinds := all[:0]
	for i, b := range all {
		if i == 0 || b.C-b.K != kinds[len(kinds)-1].C-kinds[len(kinds)-1].K ||
			b.K != kinds[len(kinds)-1].K || b.R != kinds[len(kinds)-1].R {
			kinds = append(kinds, b)
		}
	}
	return kinds
}

func TestCorrectRoundTrip(t *testing.T) {
	testCorrect(t, true)
}

func TestCorrectTooManyErrors(t *testing.T) {
	testCorrect(t, false)
}

// testCorrect encodes random messages for every block shape, injects
// from 0 up to e/2−1 errors (ok) or from e/2+1 up to e−2 errors (!ok), and checks
// that correction either restores the message or refuses.
func testCorrect(t *testing.T, ok bool) {
	kinds := ecbKinds()
	for _, seed := range []uint32{1, 2, 3, 5, 7, 11, 13} {
		rng := xorshift.New(seed)
		for _, ecb := range kinds {
			e := ecb.C - ecb.K
			enc := gf.NewEncoder(e)
			data := rng.Bytes(ecb.K)
			parity := enc.Encode(data)
			require.Len(t, parity, e, "wrong number of parity bytes")

			nMin, nMax := 0, e/2
			if !ok {
				nMin, nMax = e/2+1, e-1
			}
			for nErrors := nMin; nErrors < nMax; nErrors++ {
				name := fmt.Sprintf("seed=%d c=%d k=%d e=%d errors=%d", seed, ecb.C, ecb.K, e, nErrors)
				noisyData := append([]byte(nil), data...)
				noisyParity := append([]byte(nil), parity...)
				for _, pos := range rng.UniqueInts(nErrors, 0, ecb.C-1) {
					noise := rng.ByteClamped(1, 255)
					if pos < ecb.K {
						noisyData[pos] ^= noise
					} else {
						noisyParity[pos-ecb.K] ^= noise
					}
				}
				grade, err := gf.Correct(noisyData, noisyParity)
				if ok {
					require.NoError(t, err, name)
					if nErrors == 0 {
						assert.Equal(t, 4, grade, "%s: expected grade 4 with no errors", name)
					} else {
						assert.Greater(t, grade, 0, "%s: expected positive grade", name)
					}
					assert.Equal(t, data, noisyData, "%s: errors not corrected", name)
				} else if err == nil {
					// Beyond capacity the decoder may still detect the
					// overload later; what it must never do is claim
					// success with wrong data.
					assert.Equal(t, data, noisyData, "%s: silent miscorrection", name)
				} else {
					isKnown := errors.Is(err, gf.ErrTooManyErrors) || errors.Is(err, gf.ErrWrongRootCount)
					assert.True(t, isKnown, "%s: unexpected error %v", name, err)
				}
			}
		}
	}
}
