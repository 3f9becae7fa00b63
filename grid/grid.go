// Package grid holds the regular elevation raster produced by rasterizing a
// surface model.
//
// Cells carry an explicit validity flag. The numeric NoData sentinel only
// appears at the serialization boundary (Values, FromValues), so a computed
// elevation of -9999.0 is never mistaken for a missing sample.
package grid

import (
	"math"

	"github.com/akmonengine/tindem/surface"
	"github.com/pkg/errors"
)

// NoData is the sentinel written for cells without a sample
const NoData float32 = -9999.0

// Geometry describes the placement of a grid. The origin is the upper-left
// corner of the upper-left cell; Y decreases as the row increases.
type Geometry struct {
	Rows, Cols       int
	OriginX, OriginY float64
	XRes, YRes       float64
}

// Len returns rows × cols
func (g Geometry) Len() int {
	return g.Rows * g.Cols
}

// CellCenter returns the world coordinate at the centre of a cell. Indices
// are not checked.
func (g Geometry) CellCenter(row, col int) (x, y float64) {
	x = g.OriginX + (float64(col)+0.5)*g.XRes
	y = g.OriginY - (float64(row)+0.5)*g.YRes
	return x, y
}

// GeoTransform returns the 6-value affine transform
// [origin_x, x_res, 0, origin_y, 0, -y_res], upper-left pixel corner based
func (g Geometry) GeoTransform() [6]float64 {
	return [6]float64{g.OriginX, g.XRes, 0, g.OriginY, 0, -g.YRes}
}

func (g Geometry) validateResolution() error {
	if !(g.XRes > 0) || !(g.YRes > 0) || math.IsInf(g.XRes, 0) || math.IsInf(g.YRes, 0) {
		return &ResolutionError{XRes: g.XRes, YRes: g.YRes}
	}
	return nil
}

// DemGrid is a row-major elevation raster
type DemGrid struct {
	Geometry

	values []float32
	valid  []bool
	bounds surface.Bounds
	epsg   *uint32
}

// New allocates a grid with every cell set to no data
func New(geometry Geometry, bounds surface.Bounds) (*DemGrid, error) {
	if geometry.Rows < 0 || geometry.Cols < 0 {
		return nil, errors.Wrapf(ErrInvalidGridSize, "rows=%d cols=%d", geometry.Rows, geometry.Cols)
	}
	if err := geometry.validateResolution(); err != nil {
		return nil, err
	}

	values := make([]float32, geometry.Len())
	for i := range values {
		values[i] = NoData
	}

	return &DemGrid{
		Geometry: geometry,
		values:   values,
		valid:    make([]bool, geometry.Len()),
		bounds:   bounds,
	}, nil
}

// FromCells wraps already computed cells. The grid takes ownership of both
// slices. Cells whose valid flag is false are reset to NoData.
func FromCells(geometry Geometry, values []float32, valid []bool, bounds surface.Bounds) (*DemGrid, error) {
	if len(values) != geometry.Len() {
		return nil, &SizeError{Expected: geometry.Len(), Actual: len(values)}
	}
	if len(valid) != geometry.Len() {
		return nil, &SizeError{Expected: geometry.Len(), Actual: len(valid)}
	}
	if err := geometry.validateResolution(); err != nil {
		return nil, err
	}

	for i, ok := range valid {
		if !ok {
			values[i] = NoData
		}
	}

	return &DemGrid{Geometry: geometry, values: values, valid: valid, bounds: bounds}, nil
}

// FromValues imports a sentinel-encoded raster: cells equal to NoData are
// treated as missing.
func FromValues(geometry Geometry, values []float32, bounds surface.Bounds) (*DemGrid, error) {
	valid := make([]bool, len(values))
	for i, v := range values {
		valid[i] = v != NoData
	}
	return FromCells(geometry, values, valid, bounds)
}

func (g *DemGrid) Bounds() surface.Bounds {
	return g.bounds
}

// EPSG returns the spatial-reference identifier, ok=false when unset
func (g *DemGrid) EPSG() (uint32, bool) {
	if g.epsg == nil {
		return 0, false
	}
	return *g.epsg, true
}

// SetEPSG annotates the grid. The code is neither validated nor interpreted.
func (g *DemGrid) SetEPSG(code uint32) {
	g.epsg = &code
}

func (g *DemGrid) index(row, col int) (int, error) {
	if g.Len() != len(g.values) || len(g.valid) != len(g.values) {
		return 0, &SizeError{Expected: g.Len(), Actual: len(g.values)}
	}
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return 0, &IndexError{Row: row, Col: col, MaxRow: g.Rows, MaxCol: g.Cols}
	}
	return row*g.Cols + col, nil
}

// Value returns the elevation of a cell. ok=false for no data, for indices
// outside the grid and when the geometry no longer matches the cells.
func (g *DemGrid) Value(row, col int) (float32, bool) {
	i, err := g.index(row, col)
	if err != nil || !g.valid[i] {
		return 0, false
	}
	return g.values[i], true
}

// SetValue stores an elevation and marks the cell valid, whatever its value
func (g *DemGrid) SetValue(row, col int, value float32) error {
	i, err := g.index(row, col)
	if err != nil {
		return err
	}
	g.values[i] = value
	g.valid[i] = true
	return nil
}

// ClearValue marks a cell as no data
func (g *DemGrid) ClearValue(row, col int) error {
	i, err := g.index(row, col)
	if err != nil {
		return err
	}
	g.values[i] = NoData
	g.valid[i] = false
	return nil
}

// ValidCount returns the number of cells holding a sample
func (g *DemGrid) ValidCount() int {
	n := 0
	for _, ok := range g.valid {
		if ok {
			n++
		}
	}
	return n
}

// Values returns a sentinel-encoded copy of the elevation array, row-major,
// for raster writers.
func (g *DemGrid) Values() []float32 {
	out := make([]float32, len(g.values))
	for i, v := range g.values {
		if g.valid[i] {
			out[i] = v
		} else {
			out[i] = NoData
		}
	}
	return out
}

// WorldToGrid maps a world coordinate to the cell containing it
func (g *DemGrid) WorldToGrid(x, y float64) (row, col int, ok bool) {
	c := math.Floor((x - g.OriginX) / g.XRes)
	r := math.Floor((g.OriginY - y) / g.YRes)

	if !(r >= 0 && r < float64(g.Rows) && c >= 0 && c < float64(g.Cols)) {
		return 0, 0, false
	}
	return int(r), int(c), true
}

// GridToWorld returns the centre of a cell, ok=false outside the grid
func (g *DemGrid) GridToWorld(row, col int) (x, y float64, ok bool) {
	if _, err := g.index(row, col); err != nil {
		return 0, 0, false
	}
	x, y = g.CellCenter(row, col)
	return x, y, true
}

// ValidPoints returns the centre of every valid cell with its elevation,
// in row-major order
func (g *DemGrid) ValidPoints() []surface.Point3D {
	points := make([]surface.Point3D, 0, g.ValidCount())
	for i, ok := range g.valid {
		if !ok {
			continue
		}
		x, y := g.CellCenter(i/g.Cols, i%g.Cols)
		points = append(points, surface.Point3D{X: x, Y: y, Z: g.values[i]})
	}
	return points
}

// Validate checks the size and resolution invariants
func (g *DemGrid) Validate() error {
	if g.Rows < 0 || g.Cols < 0 || len(g.values) != g.Len() {
		return &SizeError{Expected: g.Len(), Actual: len(g.values)}
	}
	if len(g.valid) != g.Len() {
		return &SizeError{Expected: g.Len(), Actual: len(g.valid)}
	}
	return g.validateResolution()
}
