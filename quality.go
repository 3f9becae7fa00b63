package tindem

import (
	"math"

	"github.com/akmonengine/tindem/surface"
)

// QualityReport describes the density and completeness of a model
type QualityReport struct {
	PointCount        int
	TriangleCount     int
	ExpectedTriangles int     // 2n-5 for n >= 3 points, planar triangulation bound
	PointDensity      float64 // points per square unit of the bounds
	Bounds            surface.Bounds

	InvalidTriangles    int // reference a missing point
	DegenerateTriangles int // collinear vertices
	PlanarArea          float64
	SurfaceArea         float64
}

// AssessQuality computes the quality report of a model
func AssessQuality(model *surface.Model) QualityReport {
	report := QualityReport{
		PointCount:    model.PointCount(),
		TriangleCount: model.TriangleCount(),
		Bounds:        model.Bounds(),
	}

	if report.PointCount >= 3 {
		report.ExpectedTriangles = 2*report.PointCount - 5
	}

	if area := report.Bounds.Area(); area > 0 {
		report.PointDensity = float64(report.PointCount) / area
	}

	for _, t := range model.Triangles() {
		p1, p2, p3, ok := model.Vertices(t)
		if !ok {
			report.InvalidTriangles++
			continue
		}
		if Degenerate(p1, p2, p3) {
			report.DegenerateTriangles++
			continue
		}

		// Half the norm of the cross product of two edges
		e1 := p2.Vec3().Sub(p1.Vec3())
		e2 := p3.Vec3().Sub(p1.Vec3())
		report.SurfaceArea += e1.Cross(e2).Len() / 2
		report.PlanarArea += math.Abs(e1[0]*e2[1]-e1[1]*e2[0]) / 2
	}

	return report
}

// CompletenessRatio returns triangle_count / expected_triangles capped at 1,
// 0 when no triangle is expected
func (q QualityReport) CompletenessRatio() float64 {
	if q.ExpectedTriangles <= 0 {
		return 0.0
	}
	return min(1.0, float64(q.TriangleCount)/float64(q.ExpectedTriangles))
}
