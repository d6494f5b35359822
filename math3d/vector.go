package math3d

import (
	"fmt"
	"math"
)

// Vector3 is a position or displacement in the world frame. Z is up.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

var (
	ZeroVector3 = Vector3{}
)

// FromSlice builds a vector from exactly three components, as they appear in
// config files.
func FromSlice(s []float64) (Vector3, error) {
	if len(s) != 3 {
		return ZeroVector3, fmt.Errorf("expected 3 components, got %d", len(s))
	}

	return Vector3{s[0], s[1], s[2]}, nil
}

func (v Vector3) String() string {
	return fmt.Sprintf("&Vec3{x=%0.3f y=%0.3f z=%0.3f}", v.X, v.Y, v.Z)
}

// Finite returns true if no component is NaN or infinite.
func (v Vector3) Finite() bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Add adds two vectors.
func (v Vector3) Add(vv Vector3) Vector3 {
	return Vector3{
		(v.X + vv.X),
		(v.Y + vv.Y),
		(v.Z + vv.Z),
	}
}

// Subtract returns the vector from vv to v.
func (v Vector3) Subtract(vv Vector3) Vector3 {
	return Vector3{
		(v.X - vv.X),
		(v.Y - vv.Y),
		(v.Z - vv.Z),
	}
}

// MultiplyByScalar scales each component by f.
func (v Vector3) MultiplyByScalar(f float64) Vector3 {
	return Vector3{v.X * f, v.Y * f, v.Z * f}
}

// Magnitude returns the length of the vector.
func (v Vector3) Magnitude() float64 {
	return math.Sqrt((v.X * v.X) + (v.Y * v.Y) + (v.Z * v.Z))
}

// Distance calculates and returns the distance between this vector and another,
// as a float64.
func (v Vector3) Distance(vv Vector3) float64 {
	return v.Subtract(vv).Magnitude()
}

// Lerp returns the point at ratio r along the line from v to vv. r is not
// clamped.
func (v Vector3) Lerp(vv Vector3, r float64) Vector3 {
	return v.Add(vv.Subtract(v).MultiplyByScalar(r))
}

// Horizontal returns the vector with Z dropped to zero.
func (v Vector3) Horizontal() Vector3 {
	return Vector3{v.X, v.Y, 0}
}
