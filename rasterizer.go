// Package tindem rasterizes triangulated irregular networks into regular
// elevation grids.
package tindem

import (
	"log/slog"
	"math"
	"runtime"
	"time"

	"github.com/akmonengine/tindem/grid"
	"github.com/akmonengine/tindem/surface"
	"github.com/pkg/errors"
)

// Rasterizer samples a surface model onto a regular grid, one interpolation
// per cell centre, spread over Workers goroutines.
type Rasterizer struct {
	// Number of goroutines; zero or less means runtime.NumCPU()
	Workers int
	// Optional, receives one debug record per generated grid
	Logger *slog.Logger
}

func (r *Rasterizer) workers() int {
	if r.Workers <= 0 {
		return runtime.NumCPU()
	}
	return r.Workers
}

// Generate rasterizes model at the given resolution over its own bounds, or
// over override when it is not nil. The grid origin is the upper-left corner
// (min x, max y) and rows = ceil(height/resolution), cols = ceil(width/resolution).
func (r *Rasterizer) Generate(model *surface.Model, resolution float64, override *surface.Bounds) (*grid.DemGrid, error) {
	if !(resolution > 0) || math.IsInf(resolution, 0) {
		return nil, &grid.ResolutionError{XRes: resolution, YRes: resolution}
	}

	bounds := model.Bounds()
	if override != nil {
		bounds = *override
	}
	if !bounds.PlanarValid() {
		return nil, errors.Wrapf(grid.ErrInvalidGridSize, "inverted bounds %+v", bounds)
	}

	start := time.Now()
	rows, cols := bounds.GridSize(resolution)
	geometry := grid.Geometry{
		Rows:    rows,
		Cols:    cols,
		OriginX: bounds.MinX,
		OriginY: bounds.MaxY,
		XRes:    resolution,
		YRes:    resolution,
	}

	ip := NewInterpolator(model)
	values := make([]float32, geometry.Len())
	valid := make([]bool, geometry.Len())

	workers := r.workers()
	parallelFor(workers, geometry.Len(), func(i int) {
		x, y := geometry.CellCenter(i/cols, i%cols)
		if z, ok := ip.Interpolate(x, y); ok {
			values[i] = z
			valid[i] = true
		} else {
			values[i] = grid.NoData
		}
	})

	dem, err := grid.FromCells(geometry, values, valid, bounds)
	if err != nil {
		return nil, errors.Wrap(err, "rasterize")
	}

	if r.Logger != nil {
		r.Logger.Debug("rasterized surface",
			slog.Int("rows", rows),
			slog.Int("cols", cols),
			slog.Int("triangles", model.TriangleCount()),
			slog.Int("workers", workers),
			slog.Duration("elapsed", time.Since(start)),
		)
	}

	return dem, nil
}

// Generate rasterizes model with a default Rasterizer
func Generate(model *surface.Model, resolution float64, override *surface.Bounds) (*grid.DemGrid, error) {
	r := Rasterizer{}
	return r.Generate(model, resolution, override)
}
