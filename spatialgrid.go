package tindem

import (
	"math"

	"github.com/paulmach/orb"
)

// ============================================================================
// Types
// ============================================================================

// maxGridDim caps the number of cells along one axis
const maxGridDim = 2048

// CellKey - Coordinates of a cell in the planar grid
type CellKey struct {
	X, Y int
}

// SpatialGrid - Uniform planar grid bucketing item ids by bounding box.
// Buckets are stored contiguously (offsets + ids) and every bucket lists its
// ids in insertion order. Once built, a SpatialGrid is read-only and safe for
// concurrent queries.
type SpatialGrid struct {
	bound    orb.Bound
	cellSize float64
	cols     int
	rows     int
	slack    float64

	offsets []int32 // bucket i spans ids[offsets[i]:offsets[i+1]]
	ids     []int32
}

// ============================================================================
// Constructor
// ============================================================================

// NewSpatialGrid - Builds a grid over boxes; ids[i] is the item whose box is
// boxes[i]. Items are inserted in slice order.
func NewSpatialGrid(ids []int32, boxes []orb.Bound) *SpatialGrid {
	sg := &SpatialGrid{}
	if len(boxes) == 0 {
		return sg
	}

	sg.bound = boxes[0]
	for _, box := range boxes[1:] {
		sg.bound = sg.bound.Union(box)
	}
	sg.cellSize = chooseCellSize(sg.bound, len(boxes))
	sg.cols = int(math.Floor((sg.bound.Right()-sg.bound.Left())/sg.cellSize)) + 1
	sg.rows = int(math.Floor((sg.bound.Top()-sg.bound.Bottom())/sg.cellSize)) + 1
	sg.cols = min(sg.cols, maxGridDim)
	sg.rows = min(sg.rows, maxGridDim)

	extent := max(math.Abs(sg.bound.Left()), math.Abs(sg.bound.Right()),
		math.Abs(sg.bound.Bottom()), math.Abs(sg.bound.Top()))
	sg.slack = 1e-9 * (extent + sg.cellSize)

	// Counting pass, then fill pass
	counts := make([]int32, sg.cols*sg.rows+1)
	for _, box := range boxes {
		minCell, maxCell := sg.worldToCell(box.Min), sg.worldToCell(box.Max)
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for x := minCell.X; x <= maxCell.X; x++ {
				counts[sg.cellIndex(CellKey{x, y})+1]++
			}
		}
	}
	for i := 1; i < len(counts); i++ {
		counts[i] += counts[i-1]
	}
	sg.offsets = counts

	sg.ids = make([]int32, counts[len(counts)-1])
	cursor := make([]int32, sg.cols*sg.rows)
	copy(cursor, counts[:len(cursor)])
	for i, box := range boxes {
		minCell, maxCell := sg.worldToCell(box.Min), sg.worldToCell(box.Max)
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for x := minCell.X; x <= maxCell.X; x++ {
				cellIdx := sg.cellIndex(CellKey{x, y})
				sg.ids[cursor[cellIdx]] = ids[i]
				cursor[cellIdx]++
			}
		}
	}

	return sg
}

// chooseCellSize - Aims for about one item per cell
func chooseCellSize(bound orb.Bound, n int) float64 {
	width := bound.Right() - bound.Left()
	height := bound.Top() - bound.Bottom()

	var size float64
	switch {
	case width > 0 && height > 0:
		size = math.Sqrt(width * height / float64(n))
	case width > 0 || height > 0:
		size = max(width, height) / float64(n)
	}
	if !(size > 0) || math.IsInf(size, 0) {
		return 1
	}

	// Stay under maxGridDim cells per axis
	size = max(size, width/(maxGridDim-1), height/(maxGridDim-1))
	return size
}

// ============================================================================
// Queries
// ============================================================================

// Len returns the number of buckets
func (sg *SpatialGrid) Len() int {
	return sg.cols * sg.rows
}

// Candidates returns the ids bucketed in the cell containing (x, y), in
// insertion order. Every item whose box contains (x, y) is listed. The
// returned slice must not be modified.
func (sg *SpatialGrid) Candidates(x, y float64) []int32 {
	if sg.Len() == 0 || !sg.bound.Contains(orb.Point{x, y}) {
		return nil
	}
	return sg.bucket(sg.cellIndex(sg.worldToCell(orb.Point{x, y})))
}

// Nearest walks rings of cells around (x, y) and returns the id with the
// smallest distance, the lowest id on ties. Only meaningful when every box
// is a single point and distance is the planar distance to it.
func (sg *SpatialGrid) Nearest(x, y float64, distance func(id int32) float64) (int32, bool) {
	if sg.Len() == 0 {
		return 0, false
	}

	center := sg.worldToCell(orb.Point{x, y})
	best := int32(-1)
	bestDist := math.Inf(1)

	lastRing := max(sg.cols, sg.rows)
	for ring := 0; ring <= lastRing; ring++ {
		// Cells on this ring are at least (ring-1) cells away
		if best >= 0 && bestDist < float64(ring-1)*sg.cellSize-sg.slack {
			break
		}

		sg.visitRing(center, ring, func(cellIdx int) {
			for _, id := range sg.bucket(cellIdx) {
				d := distance(id)
				if d < bestDist || (d == bestDist && (best < 0 || id < best)) {
					best, bestDist = id, d
				}
			}
		})
	}

	return best, best >= 0
}

func (sg *SpatialGrid) visitRing(center CellKey, ring int, visit func(cellIdx int)) {
	if ring == 0 {
		visit(sg.cellIndex(center))
		return
	}

	for x := center.X - ring; x <= center.X+ring; x++ {
		for _, y := range [2]int{center.Y - ring, center.Y + ring} {
			if sg.inRange(CellKey{x, y}) {
				visit(sg.cellIndex(CellKey{x, y}))
			}
		}
	}
	for y := center.Y - ring + 1; y <= center.Y+ring-1; y++ {
		for _, x := range [2]int{center.X - ring, center.X + ring} {
			if sg.inRange(CellKey{x, y}) {
				visit(sg.cellIndex(CellKey{x, y}))
			}
		}
	}
}

func (sg *SpatialGrid) bucket(cellIdx int) []int32 {
	return sg.ids[sg.offsets[cellIdx]:sg.offsets[cellIdx+1]]
}

func (sg *SpatialGrid) inRange(key CellKey) bool {
	return key.X >= 0 && key.X < sg.cols && key.Y >= 0 && key.Y < sg.rows
}

// worldToCell - Converts a world position to cell coordinates, clamped to the grid
func (sg *SpatialGrid) worldToCell(pos orb.Point) CellKey {
	return CellKey{
		X: clampCell(math.Floor((pos.X()-sg.bound.Left())/sg.cellSize), sg.cols),
		Y: clampCell(math.Floor((pos.Y()-sg.bound.Bottom())/sg.cellSize), sg.rows),
	}
}

// cellIndex - Row-major index of a cell
func (sg *SpatialGrid) cellIndex(key CellKey) int {
	return key.Y*sg.cols + key.X
}

func clampCell(v float64, n int) int {
	if !(v > 0) {
		return 0
	}
	if v >= float64(n-1) {
		return n - 1
	}
	return int(v)
}
