package surface

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Point3D is a survey point. X and Y keep sub-millimetre horizontal
// precision, Z is stored in single precision.
type Point3D struct {
	X, Y float64
	Z    float32
}

// XY returns the planar projection of the point
func (p Point3D) XY() mgl64.Vec2 {
	return mgl64.Vec2{p.X, p.Y}
}

// Vec3 widens the point to a double precision vector
func (p Point3D) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, float64(p.Z)}
}

// millimetreKey identifies points that coincide once rounded to 1 mm
type millimetreKey struct {
	x, y int64
	z    int32
}

func (p Point3D) millimetreKey() millimetreKey {
	return millimetreKey{
		x: int64(math.Round(p.X * 1000.0)),
		y: int64(math.Round(p.Y * 1000.0)),
		z: int32(math.Round(float64(p.Z * 1000.0))),
	}
}

// Triangle holds three 0-based indices into the point array of a Model.
// Indices are not validated at construction time.
type Triangle [3]int

// Centroid returns the centroid of three points. X and Y are averaged in
// double precision, Z in single precision.
func Centroid(p1, p2, p3 Point3D) Point3D {
	return Point3D{
		X: (p1.X + p2.X + p3.X) / 3.0,
		Y: (p1.Y + p2.Y + p3.Y) / 3.0,
		Z: (p1.Z + p2.Z + p3.Z) / 3.0,
	}
}
