// Package surface holds the immutable TIN model: survey points, the
// triangles connecting them and their bounds.
package surface

import (
	"slices"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ErrEmptyPointCloud is returned when a model is built from no points
var ErrEmptyPointCloud = errors.New("empty point cloud")

// Model is a triangulated irregular network, or a bare point cloud when it
// has no triangles. A Model is never mutated after construction and is safe
// for concurrent use.
type Model struct {
	points    []Point3D
	triangles []Triangle
	bounds    Bounds
}

// FromPoints creates a point-cloud model without triangles
func FromPoints(points []Point3D) (*Model, error) {
	return FromSurface(points, nil)
}

// FromSurface creates a TIN model. Triangles are stored in the given order
// and their indices are resolved lazily: out of range triangles are skipped
// wherever they are met.
func FromSurface(points []Point3D, triangles []Triangle) (*Model, error) {
	if len(points) == 0 {
		return nil, ErrEmptyPointCloud
	}

	return &Model{
		points:    slices.Clone(points),
		triangles: slices.Clone(triangles),
		bounds:    computeBounds(points),
	}, nil
}

// Points returns the point array. The slice must not be modified.
func (m *Model) Points() []Point3D {
	return m.points
}

// Triangles returns the triangle array. The slice must not be modified.
func (m *Model) Triangles() []Triangle {
	return m.triangles
}

func (m *Model) Bounds() Bounds {
	return m.bounds
}

func (m *Model) PointCount() int {
	return len(m.points)
}

func (m *Model) TriangleCount() int {
	return len(m.triangles)
}

// HasTriangles reports false in point-cloud mode
func (m *Model) HasTriangles() bool {
	return len(m.triangles) > 0
}

// Point returns the point at index i, ok=false when i is out of range
func (m *Model) Point(i int) (Point3D, bool) {
	if i < 0 || i >= len(m.points) {
		return Point3D{}, false
	}
	return m.points[i], true
}

// Vertices resolves the three corners of a triangle.
// ok=false if any index does not reference an existing point.
func (m *Model) Vertices(t Triangle) (p1, p2, p3 Point3D, ok bool) {
	var ok1, ok2, ok3 bool
	p1, ok1 = m.Point(t[0])
	p2, ok2 = m.Point(t[1])
	p3, ok3 = m.Point(t[2])
	return p1, p2, p3, ok1 && ok2 && ok3
}

// TriangleBound returns the planar bounding box of a triangle
func (m *Model) TriangleBound(t Triangle) (orb.Bound, bool) {
	p1, p2, p3, ok := m.Vertices(t)
	if !ok {
		return orb.Bound{}, false
	}

	return orb.Bound{
		Min: orb.Point{min(p1.X, p2.X, p3.X), min(p1.Y, p2.Y, p3.Y)},
		Max: orb.Point{max(p1.X, p2.X, p3.X), max(p1.Y, p2.Y, p3.Y)},
	}, true
}

// UniquePoints removes points that coincide once x, y and z are rounded to
// the nearest millimetre. The first occurrence wins and the encounter order
// is kept.
func (m *Model) UniquePoints() []Point3D {
	unique := make([]Point3D, 0, len(m.points))
	seen := make(map[millimetreKey]struct{}, len(m.points))

	for _, p := range m.points {
		key := p.millimetreKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, p)
	}

	return unique
}

// TriangleVertices expands each triangle into its three points
func (m *Model) TriangleVertices() []Point3D {
	vertices := make([]Point3D, 0, 3*len(m.triangles))

	for _, t := range m.triangles {
		p1, p2, p3, ok := m.Vertices(t)
		if !ok {
			continue
		}
		vertices = append(vertices, p1, p2, p3)
	}

	return vertices
}

// TriangleCentroids returns one centroid per resolvable triangle
func (m *Model) TriangleCentroids() []Point3D {
	centroids := make([]Point3D, 0, len(m.triangles))

	for _, t := range m.triangles {
		p1, p2, p3, ok := m.Vertices(t)
		if !ok {
			continue
		}
		centroids = append(centroids, Centroid(p1, p2, p3))
	}

	return centroids
}

// PointsInBounds returns the points whose planar position lies inside b,
// edges included
func (m *Model) PointsInBounds(b Bounds) []Point3D {
	planar := b.Planar()

	var inside []Point3D
	for _, p := range m.points {
		if planar.Contains(orb.Point{p.X, p.Y}) {
			inside = append(inside, p)
		}
	}

	return inside
}
