package tindem

import (
	"math"

	"github.com/akmonengine/tindem/surface"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulmach/orb"
)

const (
	// DegenerateEpsilon is the smallest barycentric denominator magnitude
	// accepted; below it the triangle's vertices are treated as collinear.
	DegenerateEpsilon = 1e-10
	// InsideTolerance admits points lying on a shared edge despite rounding.
	InsideTolerance = -1e-10
)

// edgeDenominator returns the edges p1-p3 and p2-p3 and the barycentric
// denominator, twice the signed area of the triangle.
// float64() conversions keep products from being fused, so results are
// identical on every architecture.
func edgeDenominator(p1, p2, p3 surface.Point3D) (a, b mgl64.Vec2, denom float64) {
	a = p1.XY().Sub(p3.XY()) // (x1-x3, y1-y3)
	b = p2.XY().Sub(p3.XY()) // (x2-x3, y2-y3)
	denom = float64(b[1]*a[0]) + float64(-b[0]*a[1])
	return a, b, denom
}

// Degenerate reports whether the planar triangle p1 p2 p3 has (nearly)
// collinear vertices
func Degenerate(p1, p2, p3 surface.Point3D) bool {
	_, _, denom := edgeDenominator(p1, p2, p3)
	return math.Abs(denom) < DegenerateEpsilon
}

// Barycentric returns the weights of (x, y) relative to the planar triangle
// p1 p2 p3. ok=false when the triangle is degenerate.
func Barycentric(p1, p2, p3 surface.Point3D, x, y float64) (l1, l2, l3 float64, ok bool) {
	a, b, denom := edgeDenominator(p1, p2, p3)
	if math.Abs(denom) < DegenerateEpsilon {
		return 0, 0, 0, false
	}

	q := mgl64.Vec2{x, y}.Sub(p3.XY())
	l1 = (float64(b[1]*q[0]) + float64(-b[0]*q[1])) / denom
	l2 = (float64(-a[1]*q[0]) + float64(a[0]*q[1])) / denom
	l3 = 1.0 - l1 - l2
	return l1, l2, l3, true
}

// InterpolateInTriangle returns the linearly interpolated elevation at
// (x, y), ok=false when the triangle is degenerate or (x, y) lies outside it.
func InterpolateInTriangle(p1, p2, p3 surface.Point3D, x, y float64) (float32, bool) {
	l1, l2, l3, ok := Barycentric(p1, p2, p3, x, y)
	if !ok {
		return 0, false
	}
	if l1 < InsideTolerance || l2 < InsideTolerance || l3 < InsideTolerance {
		return 0, false
	}

	z := float64(l1*float64(p1.Z)) + float64(l2*float64(p2.Z)) + float64(l3*float64(p3.Z))
	return float32(z), true
}

func planarDistance(x, y, px, py float64) float64 {
	dx := x - px
	dy := y - py
	return math.Sqrt(float64(dx*dx) + float64(dy*dy))
}

// Interpolator answers elevation queries over a Model.
//
// In triangle mode the first triangle, in model order, containing the query
// point wins. When none does, the elevation of the nearest triangle centroid
// is returned. In point-cloud mode the nearest point's elevation is returned.
// Ties on distance go to the lowest index.
//
// Candidate triangles, centroids and points are looked up through spatial
// grids; results are identical to a linear scan of the model.
// An Interpolator is read-only after construction and safe for concurrent use.
type Interpolator struct {
	model *surface.Model

	triangles *SpatialGrid // triangle bounding boxes
	centroids *SpatialGrid
	points    *SpatialGrid // point-cloud mode only

	centroidXY []orb.Point // indexed by triangle id
	centroidZ  []float32
}

// NewInterpolator indexes the model for point location
func NewInterpolator(model *surface.Model) *Interpolator {
	ip := &Interpolator{model: model}

	if !model.HasTriangles() {
		points := model.Points()
		ids := make([]int32, len(points))
		boxes := make([]orb.Bound, len(points))
		for i, p := range points {
			ids[i] = int32(i)
			boxes[i] = orb.Point{p.X, p.Y}.Bound()
		}
		ip.points = NewSpatialGrid(ids, boxes)
		return ip
	}

	triangles := model.Triangles()
	ip.centroidXY = make([]orb.Point, len(triangles))
	ip.centroidZ = make([]float32, len(triangles))

	ids := make([]int32, 0, len(triangles))
	boxes := make([]orb.Bound, 0, len(triangles))
	centroidBoxes := make([]orb.Bound, 0, len(triangles))
	for i, t := range triangles {
		p1, p2, p3, ok := model.Vertices(t)
		if !ok {
			continue
		}
		box, _ := model.TriangleBound(t)
		c := surface.Centroid(p1, p2, p3)

		ip.centroidXY[i] = orb.Point{c.X, c.Y}
		ip.centroidZ[i] = c.Z
		ids = append(ids, int32(i))
		boxes = append(boxes, box)
		centroidBoxes = append(centroidBoxes, ip.centroidXY[i].Bound())
	}
	ip.triangles = NewSpatialGrid(ids, boxes)
	ip.centroids = NewSpatialGrid(ids, centroidBoxes)

	return ip
}

// Interpolate returns the elevation at (x, y). ok=false only when the model
// offers nothing to sample, i.e. every triangle references missing points.
func (ip *Interpolator) Interpolate(x, y float64) (float32, bool) {
	if ip.points != nil {
		return ip.nearestPoint(x, y)
	}

	if z, ok := ip.locate(x, y); ok {
		return z, true
	}
	return ip.nearestCentroid(x, y)
}

// locate - first triangle, in model order, whose box and barycentric test accept (x, y)
func (ip *Interpolator) locate(x, y float64) (float32, bool) {
	triangles := ip.model.Triangles()
	query := orb.Point{x, y}

	for _, id := range ip.triangles.Candidates(x, y) {
		t := triangles[id]
		box, _ := ip.model.TriangleBound(t)
		if !box.Contains(query) {
			continue
		}
		p1, p2, p3, _ := ip.model.Vertices(t)
		if z, ok := InterpolateInTriangle(p1, p2, p3, x, y); ok {
			return z, true
		}
	}

	return 0, false
}

func (ip *Interpolator) nearestCentroid(x, y float64) (float32, bool) {
	id, ok := ip.centroids.Nearest(x, y, func(id int32) float64 {
		c := ip.centroidXY[id]
		return planarDistance(x, y, c[0], c[1])
	})
	if !ok {
		return 0, false
	}
	return ip.centroidZ[id], true
}

func (ip *Interpolator) nearestPoint(x, y float64) (float32, bool) {
	points := ip.model.Points()
	id, ok := ip.points.Nearest(x, y, func(id int32) float64 {
		return planarDistance(x, y, points[id].X, points[id].Y)
	})
	if !ok {
		return 0, false
	}
	return points[id].Z, true
}
