package planar

import (
	"encoding/binary"
	"math"
	"sort"
	"sync"

	"github.com/akmonengine/planar/actor"
	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// CellKey is the integer coordinate of a grid cell
type CellKey struct {
	X, Y int
}

// Cell holds the indices of the bodies overlapping it
type Cell struct {
	bodyIndices []int
}

// Pair is two bodies whose bounding boxes overlap
type Pair struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

// SpatialGrid is a uniform grid hashed into a fixed number of buckets.
// Distinct cells may share a bucket, FindPairs confirms every candidate with an AABB test.
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// NewSpatialGrid creates a grid of square cells. numCells is rounded up to a power of two.
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].bodyIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++
	return n
}

// Insert registers bodyIndex in every cell covered by aabb
func (sg *SpatialGrid) Insert(bodyIndex int, aabb actor.AABB) {
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			cellIdx := sg.hashCell(CellKey{x, y})
			cell := &sg.cells[cellIdx]

			// a body spanning several cells hashed to the same bucket is stored once
			if n := len(cell.bodyIndices); n > 0 && cell.bodyIndices[n-1] == bodyIndex {
				continue
			}
			cell.bodyIndices = append(cell.bodyIndices, bodyIndex)
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].bodyIndices = sg.cells[i].bodyIndices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].bodyIndices) > 1 {
			sort.Ints(sg.cells[i].bodyIndices)
		}
	}
}

// FindPairs is the sequential version of FindPairsParallel.
// boxes[i] is the bounding box bodies[i] was inserted with.
func (sg *SpatialGrid) FindPairs(bodies []*actor.Body, boxes []actor.AABB) []Pair {
	pairs := make([]Pair, 0, len(bodies)/2)

	seen := make([]bool, len(bodies))
	for bodyIdx := range bodies {
		clear(seen)
		sg.visitCandidates(bodies, boxes, bodyIdx, seen, func(pair Pair) {
			pairs = append(pairs, pair)
		})
	}

	return pairs
}

// FindPairsParallel splits the bodies between numWorkers goroutines and streams the candidate pairs.
// The channel is closed once every body has been visited.
func (sg *SpatialGrid) FindPairsParallel(bodies []*actor.Body, boxes []actor.AABB, numWorkers int) <-chan Pair {
	var wg sync.WaitGroup
	numWorkers = max(1, numWorkers)
	pairsChan := make(chan Pair, numWorkers*10)

	bodiesPerWorker := len(bodies) / numWorkers
	if bodiesPerWorker == 0 {
		bodiesPerWorker = 1
	}

	for w := 0; w < numWorkers; w++ {
		startIdx := w * bodiesPerWorker
		if startIdx >= len(bodies) {
			break
		}
		endIdx := startIdx + bodiesPerWorker
		if w == numWorkers-1 {
			endIdx = len(bodies)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			seen := make([]bool, len(bodies))
			for bodyIdx := start; bodyIdx < end; bodyIdx++ {
				clear(seen)
				sg.visitCandidates(bodies, boxes, bodyIdx, seen, func(pair Pair) {
					pairsChan <- pair
				})
			}
		}(startIdx, endIdx)
	}

	go func() {
		wg.Wait()
		close(pairsChan)
	}()

	return pairsChan
}

// visitCandidates emits every body with a higher index sharing a cell and an AABB with bodies[bodyIdx]
func (sg *SpatialGrid) visitCandidates(bodies []*actor.Body, boxes []actor.AABB, bodyIdx int, seen []bool, emit func(Pair)) {
	bodyA := bodies[bodyIdx]
	minCell := sg.worldToCell(boxes[bodyIdx].Min)
	maxCell := sg.worldToCell(boxes[bodyIdx].Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			cellIdx := sg.hashCell(CellKey{x, y})

			for _, otherIdx := range sg.cells[cellIdx].bodyIndices {
				// Avoid duplicates: (A,B) and (B,A), or a pair sharing several cells
				if otherIdx <= bodyIdx || seen[otherIdx] {
					continue
				}
				seen[otherIdx] = true

				bodyB := bodies[otherIdx]
				if bodyA.IsStatic() && bodyB.IsStatic() {
					continue
				}

				if boxes[bodyIdx].Overlaps(boxes[otherIdx]) {
					emit(Pair{BodyA: bodyA, BodyB: bodyB})
				}
			}
		}
	}
}

// worldToCell converts a world position to cell coordinates
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec2) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
	}
}

// hashCell maps a cell to a bucket index
func (sg *SpatialGrid) hashCell(key CellKey) int {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(int64(key.X)))
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(key.Y)))

	return int(xxhash.Sum64(buf[:]) & uint64(sg.cellMask))
}
