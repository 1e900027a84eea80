package cadgeom

import (
	"fmt"
	"math"
)

// Matrix is an affine transform, with the same layout as the SVG
// matrix(a b c d e f) attribute:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

// IdentityMatrix is the neutral element of Mult.
var IdentityMatrix = Matrix{1, 0, 0, 1, 0, 0}

// Mult returns a * b, that is b applied first, then a.
func (a Matrix) Mult(b Matrix) Matrix {
	return Matrix{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate returns a translated by (x, y), in a's local coordinates.
func (a Matrix) Translate(x, y float64) Matrix {
	return a.Mult(Matrix{1, 0, 0, 1, x, y})
}

// Scale returns a scaled by (x, y), in a's local coordinates.
func (a Matrix) Scale(x, y float64) Matrix {
	return a.Mult(Matrix{x, 0, 0, y, 0, 0})
}

// Rotate returns a rotated by theta radians, in a's local coordinates.
func (a Matrix) Rotate(theta float64) Matrix {
	sin, cos := math.Sincos(theta)
	return a.Mult(Matrix{cos, sin, -sin, cos, 0, 0})
}

// Apply returns the image of p.
func (a Matrix) Apply(p Point) Point {
	return Point{
		X: a.A*p.X + a.C*p.Y + a.E,
		Y: a.B*p.X + a.D*p.Y + a.F,
	}
}

func (a Matrix) String() string {
	return fmt.Sprintf("matrix(%g %g %g %g %g %g)", a.A, a.B, a.C, a.D, a.E, a.F)
}
