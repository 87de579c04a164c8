package scan

import (
	"container/heap"
	"math"

	"github.com/dfbb/qrsnap/internal/qr"
)

// FinderCandidate is a possible finder pattern: centre pixel, module width
// in pixels, grade, and a difficulty counter preferring earlier discovery
// on grade ties.
type FinderCandidate struct {
	CenterX    int
	CenterY    int
	Dimension  int
	Grade      float64
	Difficulty int
}

// better orders candidates by grade descending, then difficulty ascending.
func (c FinderCandidate) better(o FinderCandidate) bool {
	if c.Grade != o.Grade {
		return c.Grade > o.Grade
	}
	return c.Difficulty < o.Difficulty
}

type candidateHeap []FinderCandidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return h[i].better(h[j]) }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)        { *h = append(*h, x.(FinderCandidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// candidateIterator returns finder candidates for one corner, best first.
// It pulls high-hit pixels from the hit matrix, tries the plausible module
// widths at each, and buffers graded candidates in a heap so a well-graded
// candidate with a slightly lower hit count still comes out early. The
// number of hits tried is bounded: every triple of candidates across three
// corners is later checked as a finder area, so candidate counts must stay
// small.
type candidateIterator struct {
	gray       *grayMatrix
	hits       *hitsIterator
	aggressive bool
	buffer     candidateHeap
	exhausted  bool
	minBuffer  int
	maxCount   int
	tryCount   int
}

func newCandidateIterator(gray *grayMatrix, hm *hitMatrix, c corner, aggressive bool) *candidateIterator {
	minBuffer, maxCount := 8, 16
	if aggressive {
		minBuffer, maxCount = 16, 22
	}
	return &candidateIterator{
		gray:       gray,
		hits:       newHitsIterator(hm, maxCount, c),
		aggressive: aggressive,
		buffer:     make(candidateHeap, 0, minBuffer+9),
		minBuffer:  minBuffer,
		maxCount:   maxCount,
	}
}

func (it *candidateIterator) fill() bool {
	if it.tryCount > it.maxCount {
		return false
	}
	x, y, min3, max3, ok := it.hits.next()
	if !ok {
		return false
	}
	diff := 0
	if it.aggressive {
		diff = 2
	}
	d0 := max(1, min3/3-diff)
	d1 := max(1, max3/3+diff)
	for d := d0; d <= d1; d++ {
		it.tryCount++
		if cand, ok := it.gray.evalCandidate(x, y, d, it.tryCount, it.aggressive); ok {
			heap.Push(&it.buffer, cand)
		}
	}
	return true
}

func (it *candidateIterator) next() (FinderCandidate, bool) {
	for !it.exhausted && len(it.buffer) < it.minBuffer {
		it.exhausted = !it.fill()
	}
	if len(it.buffer) == 0 {
		return FinderCandidate{}, false
	}
	return heap.Pop(&it.buffer).(FinderCandidate), true
}

// finderArea is the symbol bounding box derived from an accepted triple of
// finder candidates, in image coordinates, with the mean module size.
type finderArea struct {
	x, y       float64
	w, h       float64
	ms         float64
	grades     [3]float64
	difficulty int
}

// goodTriple checks a (NW, SW, NE) candidate triple for compatible module
// sizes, axis alignment, squareness and a plausible module count, and
// derives the symbol area.
func goodTriple(nw, sw, ne FinderCandidate, aggressive bool) (finderArea, bool) {
	d := (nw.Dimension + sw.Dimension + ne.Dimension) / 3
	dDiff := d / 21
	if aggressive {
		dDiff = d / 7
	}
	if absDiff(nw.Dimension, sw.Dimension) > dDiff ||
		absDiff(nw.Dimension, ne.Dimension) > dDiff ||
		absDiff(sw.Dimension, ne.Dimension) > dDiff {
		return finderArea{}, false
	}
	ms := float64(d)

	nwX, nwY := float64(nw.CenterX), float64(nw.CenterY)
	neX, neY := float64(ne.CenterX), float64(ne.CenterY)
	swX, swY := float64(sw.CenterX), float64(sw.CenterY)

	unaligned := ms / 3
	if aggressive {
		unaligned = ms
	}
	if math.Abs(nwX-swX) > unaligned {
		return finderArea{}, false
	}
	if math.Abs(nwY-neY) > unaligned {
		return finderArea{}, false
	}

	w := neX - nwX
	h := swY - nwY
	if math.Abs(w-h) > unaligned {
		return finderArea{}, false
	}
	if w/ms+7.0 < float64(qr.ModulesMin)-0.5 || h/ms+7.0 < float64(qr.ModulesMin)-0.5 {
		return finderArea{}, false
	}
	if w/ms+7.0 > float64(qr.ModulesMax)+0.5 || h/ms+7.0 > float64(qr.ModulesMax)+0.5 {
		return finderArea{}, false
	}

	return finderArea{
		x:          (nwX+swX)/2 - 3*ms - (ms-1)/2,
		y:          (nwY+neY)/2 - 3*ms - (ms-1)/2,
		w:          w + 7*ms,
		h:          h + 7*ms,
		ms:         ms,
		grades:     [3]float64{nw.Grade, sw.Grade, ne.Grade},
		difficulty: max(nw.Difficulty, max(sw.Difficulty, ne.Difficulty)),
	}, true
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// finderAreaIterator enumerates candidate triples. The index of the corner
// that most recently received a new candidate is pinned to that candidate,
// so each round only tries triples involving it.
type finderAreaIterator struct {
	nw, sw, ne          []FinderCandidate
	nwIdx, swIdx, neIdx int
	minNwIdx, minSwIdx  int
	aggressive          bool
	empty               bool
}

func newFinderAreaIterator(nw, sw, ne []FinderCandidate, c corner, aggressive bool) *finderAreaIterator {
	it := &finderAreaIterator{nw: nw, sw: sw, ne: ne, aggressive: aggressive}
	switch c {
	case cornerNW:
		it.nwIdx = len(nw) - 1
	case cornerSW:
		it.swIdx = len(sw) - 1
	case cornerNE:
		it.neIdx = len(ne) - 1
	}
	it.minNwIdx = it.nwIdx
	it.minSwIdx = it.swIdx
	return it
}

func (it *finderAreaIterator) next() (finderArea, bool) {
	if it.empty {
		return finderArea{}, false
	}
	for {
		area, ok := goodTriple(it.nw[it.nwIdx], it.sw[it.swIdx], it.ne[it.neIdx], it.aggressive)
		if it.nwIdx < len(it.nw)-1 {
			it.nwIdx++
		} else {
			it.nwIdx = it.minNwIdx
			if it.swIdx < len(it.sw)-1 {
				it.swIdx++
			} else {
				it.swIdx = it.minSwIdx
				if it.neIdx < len(it.ne)-1 {
					it.neIdx++
				} else {
					it.empty = true
					if !ok {
						return finderArea{}, false
					}
				}
			}
		}
		if ok {
			return area, true
		}
	}
}
