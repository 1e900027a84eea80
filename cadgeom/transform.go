package cadgeom

import "math"

// TransformPoint scales p componentwise, rotates the result by
// `rotation` degrees about the origin and finally adds `translation`.
func TransformPoint(p, scale Point, rotation float64, translation Point) Point {
	x, y := p.X*scale.X, p.Y*scale.Y
	sin, cos := math.Sincos(Radians(rotation))
	return Point{
		X: x*cos - y*sin + translation.X,
		Y: x*sin + y*cos + translation.Y,
	}
}

// Transform is the placement of a block instance.
// Transforms are applied by sequential evaluation, not by matrix
// products: a nested transform first applies itself, then its enclosing one.
type Transform struct {
	Scale       Point   // componentwise scale factors
	Rotation    float64 // in degrees, counter-clockwise
	Translation Point

	parent *Transform // enclosing instance, nil at top level
}

// Identity leaves every point unchanged.
var Identity = Transform{Scale: Point{1, 1}}

// NewTransform returns the single level transform with the given parameters.
func NewTransform(sx, sy, rotation float64, translation Point) Transform {
	return Transform{Scale: Point{sx, sy}, Rotation: rotation, Translation: translation}
}

// IsIdentity returns true if t leaves every point unchanged.
func (t Transform) IsIdentity() bool {
	return t.parent == nil && t.Scale == Point{1, 1} && t.Rotation == 0 && t.Translation == Point{}
}

// Apply returns the image of p.
func (t Transform) Apply(p Point) Point {
	p = TransformPoint(p, t.Scale, t.Rotation, t.Translation)
	if t.parent != nil {
		return t.parent.Apply(p)
	}
	return p
}

// ApplyAll maps every point of pts, returning a new slice.
func (t Transform) ApplyAll(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = t.Apply(p)
	}
	return out
}

// Radius scales a circle radius. Only the X scale is used: non uniform
// scaling of circles is not modeled.
func (t Transform) Radius(r float64) float64 {
	r *= t.Scale.X
	if t.parent != nil {
		return t.parent.Radius(r)
	}
	return r
}

// Angle adds the accumulated rotation to `deg`.
func (t Transform) Angle(deg float64) float64 {
	deg += t.Rotation
	if t.parent != nil {
		return t.parent.Angle(deg)
	}
	return deg
}

// Nest returns `inner` evaluated inside t: inner is applied first, then t.
func (t Transform) Nest(inner Transform) Transform {
	if t.IsIdentity() {
		return inner
	}
	inner.parent = &t
	return inner
}
