package surface

import (
	"math"

	"github.com/paulmach/orb"
)

// Bounds represents the axis-aligned extent of a point set.
// Planar extents are double precision, elevations single precision.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float32
}

// NewBounds builds a Bounds from explicit extents
func NewBounds(minX, maxX, minY, maxY float64, minZ, maxZ float32) Bounds {
	return Bounds{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY, MinZ: minZ, MaxZ: maxZ}
}

// computeBounds - single linear min/max scan
func computeBounds(points []Point3D) Bounds {
	b := Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
		MinZ: float32(math.Inf(1)), MaxZ: float32(math.Inf(-1)),
	}

	for _, p := range points {
		b.MinX = math.Min(b.MinX, p.X)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxY = math.Max(b.MaxY, p.Y)
		b.MinZ = min(b.MinZ, p.Z)
		b.MaxZ = max(b.MaxZ, p.Z)
	}

	return b
}

func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

func (b Bounds) Height() float64 {
	return b.MaxY - b.MinY
}

func (b Bounds) ElevationRange() float32 {
	return b.MaxZ - b.MinZ
}

// Area returns the planar area, width × height
func (b Bounds) Area() float64 {
	return b.Width() * b.Height()
}

// GridSize returns the number of rows and columns needed to cover the
// bounds at the given resolution. Resolution must be positive.
func (b Bounds) GridSize(resolution float64) (rows, cols int) {
	cols = int(math.Ceil(b.Width() / resolution))
	rows = int(math.Ceil(b.Height() / resolution))
	return rows, cols
}

// Planar returns the 2-D extent as an orb.Bound
func (b Bounds) Planar() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.MinX, b.MinY},
		Max: orb.Point{b.MaxX, b.MaxY},
	}
}

// PlanarValid reports whether min <= max on both planar axes. NaN extents
// are invalid; elevations are not checked.
func (b Bounds) PlanarValid() bool {
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY
}
