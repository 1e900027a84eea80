package caddraw

import (
	"math"

	"github.com/benoitkugler/cadsvg/cadgeom"
)

// Bounds returns the smallest viewport containing the recorded geometry:
// arcs contribute their actual sweep (not only their center), circles and
// markers their full disk. Text runs only contribute their anchor.
// The boolean is false if the recording has no geometry, in which case
// DefaultViewport is returned.
func (r *Recording) Bounds() (cadgeom.Viewport, bool) {
	vp := cadgeom.EmptyViewport()
	disk := func(center cadgeom.Point, radius float64) {
		diag := cadgeom.Pt(radius, radius)
		vp.Extend(center.Sub(diag))
		vp.Extend(center.Add(diag))
	}
	for _, ins := range r.Instructions {
		switch ins.Op {
		case OpMarker:
			disk(ins.Points[0], MarkerRadius)
		case OpLine, OpPolyline, OpPolygon:
			for _, p := range ins.Points {
				vp.Extend(p)
			}
		case OpCircle:
			disk(ins.Points[0], ins.Radius)
		case OpArc:
			vp = vp.Union(arcBounds(ins.Arc))
		case OpText:
			vp.Extend(ins.Text.Anchor)
		}
	}
	if vp.IsEmpty() {
		return cadgeom.DefaultViewport, false
	}
	return vp, true
}

func arcBounds(arc ArcPath) cadgeom.Viewport {
	vp := cadgeom.EmptyViewport()
	vp.Extend(arc.Start)
	vp.Extend(arc.End)
	from := arc.Start
	for _, cu := range arc.Cubics() {
		vp = vp.Union(cubicBounds(from, cu))
		from = cu.To
	}
	return vp
}

// cubicBounds returns the extent of the cubic bezier starting at `from`,
// evaluated at its end points and at the zeros of its derivative.
func cubicBounds(from cadgeom.Point, cu Cubic) cadgeom.Viewport {
	p0, p1, p2, p3 := from, cu.C1, cu.C2, cu.To
	ts := []float64{0, 1}
	ts = append(ts, quadraticRoots(cubicDerivative(p0.X, p1.X, p2.X, p3.X))...)
	ts = append(ts, quadraticRoots(cubicDerivative(p0.Y, p1.Y, p2.Y, p3.Y))...)

	vp := cadgeom.EmptyViewport()
	for _, t := range ts {
		if !(0 <= t && t <= 1) {
			continue
		}
		vp.Extend(cadgeom.Point{
			X: bezierSpline(p0.X, p1.X, p2.X, p3.X, t),
			Y: bezierSpline(p0.Y, p1.Y, p2.Y, p3.Y, t),
		})
	}
	return vp
}

// cubic polynomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		p0
}

// derivative of bezierSpline, as aT^2 + bT + c
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		// simple line
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}
