package grid

import "gonum.org/v1/gonum/floats"

// Statistics summarises the valid cells of a grid
type Statistics struct {
	ValidCount int
	TotalCount int
	Min        float32
	Max        float32
	Mean       float32
}

// ValidRatio returns the fraction of cells holding a sample
func (s Statistics) ValidRatio() float64 {
	if s.TotalCount == 0 {
		return 0.0
	}
	return float64(s.ValidCount) / float64(s.TotalCount)
}

// Statistics computes min, max and mean over valid cells. All fields but
// TotalCount are zero when the grid has no valid cell.
func (g *DemGrid) Statistics() Statistics {
	valid := make([]float64, 0, len(g.values))
	for i, v := range g.values {
		if g.valid[i] {
			valid = append(valid, float64(v))
		}
	}

	stats := Statistics{TotalCount: len(g.values)}
	if len(valid) == 0 {
		return stats
	}

	stats.ValidCount = len(valid)
	stats.Min = float32(floats.Min(valid))
	stats.Max = float32(floats.Max(valid))
	stats.Mean = float32(floats.Sum(valid) / float64(len(valid)))
	return stats
}
