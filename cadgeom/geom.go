// Package cadgeom provides the 2D geometry used to place drawing
// entities: points, the scale-rotate-translate transform of block
// instances, affine matrices for the output frame and rectangular viewports.
package cadgeom

import (
	"fmt"
	"math"
)

// Point is a location (or a vector) in the drawing plane.
type Point struct {
	X, Y float64
}

// Pt is a shortcut for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Radians converts an angle in degrees.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Polar returns the point at `radius` from `center`, in the direction
// `deg` (degrees, counter-clockwise from the positive X axis).
func Polar(center Point, radius, deg float64) Point {
	sin, cos := math.Sincos(Radians(deg))
	return Point{X: center.X + radius*cos, Y: center.Y + radius*sin}
}
