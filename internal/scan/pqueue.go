package scan

// corner names the image quadrant in which a finder pattern is sought.
type corner int

const (
	cornerNW corner = iota
	cornerSW
	cornerNE
)

func (c corner) String() string {
	switch c {
	case cornerNW:
		return "North-West"
	case cornerSW:
		return "South-West"
	default:
		return "North-East"
	}
}

type hitItem struct {
	x, y int
	pri  int
}

// boundedPriorityQueue keeps up to a fixed number of items per priority
// level between minPri and maxPri. Truncation prunes to the requested
// total size and raises a floor below which later pushes are refused, so a
// full scan over the hit matrix stays O(pixels) with a small constant.
type boundedPriorityQueue struct {
	levels   [][]hitItem
	capacity int
	minPri   int
	maxPri   int
	lowPri   int
	heads    []int
}

func newBoundedPriorityQueue(minPri, maxPri, capacity int) *boundedPriorityQueue {
	n := maxPri - minPri + 1
	return &boundedPriorityQueue{
		levels:   make([][]hitItem, n),
		heads:    make([]int, n),
		capacity: capacity,
		minPri:   minPri,
		maxPri:   maxPri,
		lowPri:   minPri,
	}
}

func (q *boundedPriorityQueue) pushBack(item hitItem) {
	if item.pri < q.lowPri {
		return
	}
	i := item.pri - q.minPri
	if len(q.levels[i]) < q.capacity {
		q.levels[i] = append(q.levels[i], item)
	}
}

func (q *boundedPriorityQueue) popFront() (hitItem, bool) {
	for pri := q.maxPri; pri >= q.lowPri; pri-- {
		i := pri - q.minPri
		if q.heads[i] < len(q.levels[i]) {
			item := q.levels[i][q.heads[i]]
			q.heads[i]++
			return item, true
		}
	}
	return hitItem{}, false
}

// truncate prunes to roughly length items, counting from the highest
// priority down, and raises the low-priority floor accordingly.
func (q *boundedPriorityQueue) truncate(length int) {
	n := 0
	pri := q.maxPri + 1
	for n < length && pri > q.lowPri {
		pri--
		n += len(q.levels[pri-q.minPri])
	}
	if q.lowPri != pri {
		for p := q.lowPri; p < pri; p++ {
			q.levels[p-q.minPri] = nil
		}
	}
	q.lowPri = pri
}

// hitsIterator walks the most-hit pixels of one quadrant of the hit matrix
// in descending hit count, considering only pixels with at least half the
// matrix hiscore.
type hitsIterator struct {
	hm *hitMatrix
	pq *boundedPriorityQueue
}

func newHitsIterator(hm *hitMatrix, maxHits int, c corner) *hitsIterator {
	maxScore := hm.hiscore
	minScore := maxScore / 2
	pq := newBoundedPriorityQueue(minScore, maxScore, maxHits)
	w, h := hm.width, hm.height
	var x0, y0, x1, y1 int
	var revX, revY bool
	switch c {
	case cornerNW:
		x0, y0, x1, y1 = 0, 0, w/2-1, h/2-1
	case cornerSW:
		x0, y0, x1, y1 = 0, h-1, w/2-1, h/2
		revY = true
	case cornerNE:
		x0, y0, x1, y1 = w-1, 0, w/2, h/2-1
		revX = true
	}
	y := y0
	for {
		yi := w * y
		x := x0
		for {
			if score := hm.idx(yi + x); score >= minScore {
				pq.pushBack(hitItem{x: x, y: y, pri: score})
			}
			if x == x1 {
				break
			}
			if revX {
				x--
			} else {
				x++
			}
		}
		pq.truncate(maxHits)
		if y == y1 {
			break
		}
		if revY {
			y--
		} else {
			y++
		}
	}
	return &hitsIterator{hm: hm, pq: pq}
}

// next returns the position and min/max "3"-run widths of the next hit.
func (it *hitsIterator) next() (x, y, min3, max3 int, ok bool) {
	item, ok := it.pq.popFront()
	if !ok {
		return 0, 0, 0, 0, false
	}
	return item.x, item.y, it.hm.min3(item.x, item.y), it.hm.max3(item.x, item.y), true
}
