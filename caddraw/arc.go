package caddraw

import (
	"math"

	"github.com/benoitkugler/cadsvg/cadgeom"
)

// maxDx is the maximum angle (in radians) spanned by one cubic
// when approximating an arc.
const maxDx float64 = math.Pi / 8

// ArcPath is a circular arc in endpoint form, as in the SVG
// "A" path command.
type ArcPath struct {
	Start, End cadgeom.Point
	Radius     float64
	LargeArc   bool
	Sweep      bool // true for the positive (counter-clockwise in drawing space) direction
}

// NewArcPath returns the arc of `center` and `radius` going from
// `startDeg` to `endDeg`.
// LargeArc is set when endDeg - startDeg > 180 and Sweep is always true:
// arcs whose end angle is lower than their start angle by less than
// 180 degrees are drawn along their complement.
func NewArcPath(center cadgeom.Point, radius, startDeg, endDeg float64) ArcPath {
	return ArcPath{
		Start:    cadgeom.Polar(center, radius, startDeg),
		End:      cadgeom.Polar(center, radius, endDeg),
		Radius:   radius,
		LargeArc: endDeg-startDeg > 180,
		Sweep:    true,
	}
}

// Cubic is a cubic bezier segment, starting at the end of the previous one.
type Cubic struct {
	C1, C2, To cadgeom.Point
}

// Center returns the center of the arc, deduced from its endpoints
// and flags. If the radius is too small to join the endpoints, it is
// increased to half their distance, and the corrected value is returned.
func (arc ArcPath) Center() (center cadgeom.Point, radius float64) {
	radius = math.Abs(arc.Radius)

	// move the origin to the start point
	nx, ny := arc.End.X-arc.Start.X, arc.End.Y-arc.Start.Y
	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if radius*radius < midlenSq {
		radius = math.Sqrt(midlenSq)
	} else if midlenSq > 0 {
		hr = math.Sqrt(radius*radius-midlenSq) / math.Sqrt(midlenSq)
	}
	var cx, cy float64
	if arc.Sweep == arc.LargeArc {
		cx, cy = midX+midY*hr, midY-midX*hr
	} else {
		cx, cy = midX-midY*hr, midY+midX*hr
	}
	return cadgeom.Point{X: cx + arc.Start.X, Y: cy + arc.Start.Y}, radius
}

// Cubics approximates the arc by cubic beziers, starting at arc.Start,
// using the method of L. Maisonobe, "Drawing an elliptical arc using
// polylines, quadratic or cubic Bezier curves", 2003.
// It returns nil for a degenerated arc (same endpoints or null radius),
// which is not drawn.
func (arc ArcPath) Cubics() []Cubic {
	if arc.Radius == 0 || math.Hypot(arc.End.X-arc.Start.X, arc.End.Y-arc.Start.Y) <= 1e-9*math.Abs(arc.Radius) {
		return nil
	}
	c, r := arc.Center()
	startAngle := math.Atan2(arc.Start.Y-c.Y, arc.Start.X-c.X)
	endAngle := math.Atan2(arc.End.Y-c.Y, arc.End.X-c.X)
	delta := endAngle - startAngle
	if delta < 0 && arc.Sweep {
		delta += 2 * math.Pi
	} else if delta >= 0 && !arc.Sweep {
		delta -= 2 * math.Pi
	}

	segs := int(math.Abs(delta)/maxDx) + 1
	dEta := delta / float64(segs)
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3

	out := make([]Cubic, segs)
	last, lastD := arc.Start, tangent(r, startAngle)
	for i := 1; i <= segs; i++ {
		eta := startAngle + dEta*float64(i)
		p := arc.End // exact end point, no roundoff
		if i < segs {
			p = cadgeom.Polar(c, r, eta*180/math.Pi)
		}
		d := tangent(r, eta)
		out[i-1] = Cubic{
			C1: cadgeom.Point{X: last.X + alpha*lastD.X, Y: last.Y + alpha*lastD.Y},
			C2: cadgeom.Point{X: p.X - alpha*d.X, Y: p.Y - alpha*d.Y},
			To: p,
		}
		last, lastD = p, d
	}
	return out
}

// tangent returns the derivative of the circle parametrization at eta
func tangent(r, eta float64) cadgeom.Point {
	sin, cos := math.Sincos(eta)
	return cadgeom.Point{X: -r * sin, Y: r * cos}
}
