package tindem

import (
	"math"
	"testing"

	"github.com/akmonengine/tindem/surface"
)

func TestAssessQuality_Square(t *testing.T) {
	report := AssessQuality(squareModel(t))

	if report.PointCount != 4 || report.TriangleCount != 2 {
		t.Errorf("counts = (%d, %d), want (4, 2)", report.PointCount, report.TriangleCount)
	}
	if report.ExpectedTriangles != 3 {
		t.Errorf("ExpectedTriangles = %d, want 3", report.ExpectedTriangles)
	}
	if report.PointDensity != 0.04 {
		t.Errorf("PointDensity = %v, want 0.04", report.PointDensity)
	}
	if got := report.CompletenessRatio(); math.Abs(got-2.0/3.0) > 1e-12 {
		t.Errorf("CompletenessRatio() = %v, want 2/3", got)
	}
	if math.Abs(report.PlanarArea-100) > 1e-9 {
		t.Errorf("PlanarArea = %v, want 100", report.PlanarArea)
	}
	// plane z = 10 + 0.2x + 0.1y
	if want := 100 * math.Sqrt(1.05); math.Abs(report.SurfaceArea-want) > 1e-6 {
		t.Errorf("SurfaceArea = %v, want %v", report.SurfaceArea, want)
	}
}

func TestAssessQuality_MalformedTriangles(t *testing.T) {
	points := []surface.Point3D{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 2, Y: 2, Z: 0},
		{X: 2, Y: 0, Z: 0},
	}
	model, _ := surface.FromSurface(points, []surface.Triangle{{0, 1, 2}, {0, 3, 9}, {0, 3, 2}})
	report := AssessQuality(model)

	if report.InvalidTriangles != 1 {
		t.Errorf("InvalidTriangles = %d, want 1", report.InvalidTriangles)
	}
	if report.DegenerateTriangles != 1 {
		t.Errorf("DegenerateTriangles = %d, want 1", report.DegenerateTriangles)
	}
	if report.TriangleCount != 3 {
		t.Errorf("TriangleCount = %d, want 3", report.TriangleCount)
	}
	if math.Abs(report.PlanarArea-2) > 1e-12 {
		t.Errorf("PlanarArea = %v, want 2", report.PlanarArea)
	}
}

func TestAssessQuality_FewPoints(t *testing.T) {
	tests := []struct {
		name    string
		points  []surface.Point3D
		density float64
	}{
		{"single point", []surface.Point3D{{X: 1, Y: 1, Z: 1}}, 0},
		{"vertical line", []surface.Point3D{{X: 1, Y: 0, Z: 1}, {X: 1, Y: 5, Z: 1}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, _ := surface.FromSurface(tt.points, []surface.Triangle{{0, 0, 0}})
			report := AssessQuality(model)

			if report.ExpectedTriangles != 0 {
				t.Errorf("ExpectedTriangles = %d, want 0", report.ExpectedTriangles)
			}
			if report.CompletenessRatio() != 0 {
				t.Errorf("CompletenessRatio() = %v, want 0", report.CompletenessRatio())
			}
			if report.PointDensity != tt.density {
				t.Errorf("PointDensity = %v, want %v", report.PointDensity, tt.density)
			}
		})
	}
}

func TestCompletenessRatio_Range(t *testing.T) {
	for points := 0; points <= 12; points++ {
		for triangles := 0; triangles <= 40; triangles++ {
			report := QualityReport{PointCount: points, TriangleCount: triangles}
			if points >= 3 {
				report.ExpectedTriangles = 2*points - 5
			}

			ratio := report.CompletenessRatio()
			if ratio < 0 || ratio > 1 {
				t.Errorf("CompletenessRatio(points=%d, triangles=%d) = %v, out of [0, 1]", points, triangles, ratio)
			}
		}
	}
}
