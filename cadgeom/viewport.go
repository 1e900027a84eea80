package cadgeom

import "math"

// Viewport is an axis aligned rectangle, in drawing coordinates.
type Viewport struct {
	MinX, MinY, MaxX, MaxY float64
}

// DefaultViewport is used when a drawing has no coordinate at all.
var DefaultViewport = Viewport{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}

// EmptyViewport returns the neutral element of Extend: it contains no point.
func EmptyViewport() Viewport {
	return Viewport{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// IsEmpty returns true if no point has been added to v.
func (v Viewport) IsEmpty() bool { return v.MinX > v.MaxX || v.MinY > v.MaxY }

// Extend grows v to include p.
func (v *Viewport) Extend(p Point) {
	v.MinX = math.Min(v.MinX, p.X)
	v.MinY = math.Min(v.MinY, p.Y)
	v.MaxX = math.Max(v.MaxX, p.X)
	v.MaxY = math.Max(v.MaxY, p.Y)
}

// Union returns the smallest viewport containing v and w.
func (v Viewport) Union(w Viewport) Viewport {
	return Viewport{
		MinX: math.Min(v.MinX, w.MinX), MinY: math.Min(v.MinY, w.MinY),
		MaxX: math.Max(v.MaxX, w.MaxX), MaxY: math.Max(v.MaxY, w.MaxY),
	}
}

func (v Viewport) Width() float64  { return v.MaxX - v.MinX }
func (v Viewport) Height() float64 { return v.MaxY - v.MinY }
