package grid

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidGridIndex  = errors.New("invalid grid index")
	ErrInvalidGridSize   = errors.New("invalid grid size")
	ErrInvalidResolution = errors.New("invalid resolution")
)

// IndexError reports a row/column outside the grid
type IndexError struct {
	Row, Col       int
	MaxRow, MaxCol int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("invalid grid index: row %d, col %d (max: %d, %d)", e.Row, e.Col, e.MaxRow, e.MaxCol)
}

func (e *IndexError) Unwrap() error {
	return ErrInvalidGridIndex
}

// SizeError reports an elevation array whose length is not rows × cols
type SizeError struct {
	Expected, Actual int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("invalid grid size: expected %d, got %d", e.Expected, e.Actual)
}

func (e *SizeError) Unwrap() error {
	return ErrInvalidGridSize
}

// ResolutionError reports a non-positive or non-finite cell size
type ResolutionError struct {
	XRes, YRes float64
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("invalid resolution: x_res=%g, y_res=%g", e.XRes, e.YRes)
}

func (e *ResolutionError) Unwrap() error {
	return ErrInvalidResolution
}
