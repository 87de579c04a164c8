package scan

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/dfbb/qrsnap/internal/gf"
	"github.com/dfbb/qrsnap/internal/qr"
)

// Payload decoding failures.
var (
	ErrUnsupportedMode     = errors.New("unsupported mode")
	ErrInconsistentLength  = errors.New("inconsistent data length")
	errUnableToDecodeImage = errors.New("unable to decode image")
)

// Decode searches img for a QR Code symbol and decodes it. When aggressive
// is false a clean symbol is identified fast; when true more thresholds,
// candidates and versions are tried at the cost of extra work on clean
// input.
func Decode(img Image, aggressive bool) *Result {
	var best *Result
	bestGrade2 := 0.0
	slog.Debug("scan: decode", "width", img.Width(), "height", img.Height(), "aggressive", aggressive)

	gray, err := newGrayMatrix(img)
	if err != nil {
		return resultFromError(err)
	}

	// Threshold sweep. The standard specifies the mid-point between the
	// minimum and maximum reflectance, but the average tends to behave
	// better on real images, so the first try is the mean of the two.
	mid := (gray.maxLuma + gray.minLuma) / 2
	lights := []float64{(mid + gray.avgLuma) / 2}
	if aggressive {
		lights = append(lights, mid, gray.avgLuma)
	}

lightLoop:
	for _, light := range lights {
		gray.threshold = light
		hm := hitMatrixFor(gray, aggressive)

		nwIter := newCandidateIterator(gray, hm, cornerNW, aggressive)
		var nwCandidates []FinderCandidate
		if c, ok := nwIter.next(); ok {
			nwCandidates = append(nwCandidates, c)
		} else {
			return resultFromError(fmt.Errorf("no %s finder pattern found", cornerNW))
		}

		swIter := newCandidateIterator(gray, hm, cornerSW, aggressive)
		var swCandidates []FinderCandidate
		if c, ok := swIter.next(); ok {
			swCandidates = append(swCandidates, c)
		} else {
			return resultFromError(fmt.Errorf("no %s finder pattern found", cornerSW))
		}

		neIter := newCandidateIterator(gray, hm, cornerNE, aggressive)
		var neCandidates []FinderCandidate
		if c, ok := neIter.next(); ok {
			neCandidates = append(neCandidates, c)
		} else {
			return resultFromError(fmt.Errorf("no %s finder pattern found", cornerNE))
		}

		// Once a good candidate exists only a bounded number of further
		// attempts is worth the work.
		nAfterGood := 0
		nAfterGoodMax := 0
		if aggressive {
			nAfterGoodMax = 4
		}

		currentCorner := cornerSW
	candidateLoop:
		for {
			areas := newFinderAreaIterator(nwCandidates, swCandidates, neCandidates, currentCorner, aggressive)
			for {
				area, ok := areas.next()
				if !ok {
					break
				}
				symbols := newSymbolAreaIterator(gray, &area, aggressive)
				for {
					sa, ok := symbols.next()
					if !ok {
						break
					}
					if g := sa.grade(); g > 0 {
						res := resultFromSymbolArea(sa)
						snaked := snakedData(sa, gray)
						raw, decGrade, err := correctErrors(snaked, qr.ECBlocks(sa.version, sa.ec))
						if err != nil {
							res.Err = fmt.Errorf("error correction failed: %w", err)
						} else {
							res.DecodingGrade = decGrade
							mode, data, err := decodeData(sa.version, sa.ec, raw)
							if err != nil {
								res.DecodingGrade = math.NaN()
								res.Err = err
							} else {
								res.HasMode = true
								res.Mode = mode
								res.Data = data
							}
						}
						if rg2 := res.grade2(); rg2 > bestGrade2 {
							bestGrade2 = rg2
							best = res
							threshold := 10.0 + 4.0 + 4.0
							if aggressive {
								threshold = 10.0 + 2.0 + 2.0
							}
							if rg2 >= threshold {
								slog.Debug("scan: good result found", "grade2", rg2)
								break lightLoop
							}
						}
					}

					if bestGrade2 >= 10 {
						nAfterGood++
						if nAfterGood > nAfterGoodMax {
							slog.Debug("scan: tried enough candidates after a good result", "n", nAfterGood-1)
							break lightLoop
						}
					}
				}
			}

			// Fetch one more finder candidate, preferably from a corner
			// other than the current one.
			nextTry := 0
			for {
				switch currentCorner {
				case cornerNW:
					currentCorner = cornerSW
					if c, ok := swIter.next(); ok {
						swCandidates = append(swCandidates, c)
					} else {
						nextTry++
						if nextTry >= 3 {
							break candidateLoop
						}
						continue
					}
				case cornerSW:
					currentCorner = cornerNE
					if c, ok := neIter.next(); ok {
						neCandidates = append(neCandidates, c)
					} else {
						nextTry++
						if nextTry >= 3 {
							break candidateLoop
						}
						continue
					}
				case cornerNE:
					currentCorner = cornerNW
					if c, ok := nwIter.next(); ok {
						nwCandidates = append(nwCandidates, c)
					} else {
						nextTry++
						if nextTry >= 3 {
							break candidateLoop
						}
						continue
					}
				}
				break
			}
		}
	}

	if best != nil {
		return best
	}
	return resultFromError(errUnableToDecodeImage)
}

// snakedData samples the image over every data module along the snake
// traversal, un-masks each bit and packs the codeword stream. A wrong
// remainder count means sampling and table data disagree, which is a
// programming error.
func snakedData(sa *symbolArea, gray *grayMatrix) []byte {
	n := qr.NCodewords(sa.version)
	nm := float64(qr.NModules(sa.version))
	x0, y0 := sa.x, sa.y
	dx, dy := sa.w/nm, sa.h/nm
	bs := qr.NewBitSeq(n)
	bits := 0
	remBits := 0
	snake := qr.NewSnake(sa.version)
	for {
		i, j, ok := snake.Next()
		if !ok {
			break
		}
		bits++
		if bits > 8*n {
			remBits++
			continue
		}
		ii := float64(i)
		jj := float64(j)
		bit := !gray.isLight(x0+ii*dx, y0+jj*dy, x0+(1+ii)*dx, y0+(1+jj)*dy)
		bs.PushBit(bit != qr.Mask(int(sa.mask), i, j))
	}
	if expected := qr.NRemainderBits(sa.version); remBits != expected {
		panic(fmt.Sprintf("scan: wrong number of remainder bits: got %d; expected %d", remBits, expected))
	}
	return bs.Bytes()
}

// correctErrors de-interleaves the codeword stream back into blocks, runs
// Reed–Solomon correction on each, and returns the data codewords with the
// minimum block grade. A codeword count mismatch is a programming error.
func correctErrors(codewords []byte, ecBlocks [2]qr.ECB) ([]byte, float64, error) {
	nCodewords := ecBlocks[0].N*ecBlocks[0].C + ecBlocks[1].N*ecBlocks[1].C
	if len(codewords) != nCodewords {
		panic(fmt.Sprintf("scan: wrong number of codewords: got %d; expected %d", len(codewords), nCodewords))
	}
	nDataCodewords := ecBlocks[0].N*ecBlocks[0].K + ecBlocks[1].N*ecBlocks[1].K
	dataCodewords := make([]byte, 0, nDataCodewords)
	nECPerBlock := ecBlocks[0].C - ecBlocks[0].K
	ecCodewordsBlock := make([]byte, nECPerBlock)
	nBlocks := ecBlocks[0].N + ecBlocks[1].N
	ecOffset := nDataCodewords
	grade := 4.0
	for e := 0; e <= 1; e++ {
		d0 := e * ecBlocks[0].K * ecBlocks[0].N
		b0 := e * ecBlocks[0].N
		for b := 0; b < ecBlocks[e].N; b++ {
			for i := 0; i < ecBlocks[e].K; i++ {
				db0 := b0
				if i > ecBlocks[0].K-1 {
					// The extra data byte of a long block sits after the
					// round-robin of the short-block columns.
					db0 = 0
				}
				dataCodewords = append(dataCodewords, codewords[i*nBlocks+(b+db0)])
			}
			for i := 0; i < nECPerBlock; i++ {
				ecCodewordsBlock[i] = codewords[ecOffset+i*nBlocks+(b+b0)]
			}
			d := d0 + b*ecBlocks[e].K
			g, err := gf.Correct(dataCodewords[d:d+ecBlocks[e].K], ecCodewordsBlock)
			if err != nil {
				return nil, 0, err
			}
			if fg := float64(g); fg < grade {
				grade = fg
			}
		}
	}
	return dataCodewords, grade, nil
}

// decodeData parses the corrected data codewords: 4-bit mode indicator,
// character count, then the payload per mode.
func decodeData(version int, ec qr.ECLevel, raw []byte) (qr.Mode, []byte, error) {
	bs := qr.BitSeqFrom(raw)
	m := bs.GetBits(0, 4)
	var mode qr.Mode
	switch m {
	case uint16(qr.EightBit):
		mode = qr.EightBit
	case uint16(qr.AlphaNumeric):
		mode = qr.AlphaNumeric
	case uint16(qr.Numeric):
		mode = qr.Numeric
	default:
		return 0, nil, fmt.Errorf("%w %#04b", ErrUnsupportedMode, m)
	}
	nc := qr.NCountBits(version, mode)
	payloadLen := int(bs.GetBits(4, nc))
	payloadLenMax := qr.DataCapacity(version, mode, ec)
	if payloadLen > payloadLenMax {
		return 0, nil, fmt.Errorf("%w: code has length %d encoded, but %d is the maximum",
			ErrInconsistentLength, payloadLen, payloadLenMax)
	}
	var data []byte
	switch mode {
	case qr.EightBit:
		data = decodeEightBit(bs, 4+nc, payloadLen)
	case qr.AlphaNumeric:
		data = decodeAlphaNumeric(bs, 4+nc, payloadLen)
	default:
		data = decodeNumeric(bs, 4+nc, payloadLen)
	}
	return mode, data, nil
}

func decodeEightBit(bs *qr.BitSeq, index0, length int) []byte {
	res := make([]byte, 0, length)
	for i := 0; i < length; i++ {
		res = append(res, byte(bs.GetBits(index0+i*8, 8)))
	}
	return res
}

func decodeAlphaNumeric(bs *qr.BitSeq, index0, length int) []byte {
	res := make([]byte, 0, length)
	for i := 0; i < length/2; i++ {
		x := bs.GetBits(index0+i*11, 11)
		res = append(res, qr.AlnumToASCII(byte(x/45)), qr.AlnumToASCII(byte(x%45)))
	}
	if length%2 > 0 {
		x := bs.GetBits(index0+(length/2)*11, 6)
		res = append(res, qr.AlnumToASCII(byte(x)))
	}
	return res
}

func decodeNumeric(bs *qr.BitSeq, index0, length int) []byte {
	res := make([]byte, 0, length)
	for i := 0; i < length/3; i++ {
		x := bs.GetBits(index0+i*10, 10)
		res = append(res, '0'+byte(x/100), '0'+byte((x%100)/10), '0'+byte(x%10))
	}
	switch length % 3 {
	case 1:
		x := bs.GetBits(index0+(length/3)*10, 4)
		res = append(res, '0'+byte(x))
	case 2:
		x := bs.GetBits(index0+(length/3)*10, 7)
		res = append(res, '0'+byte(x/10), '0'+byte(x%10))
	}
	return res
}
