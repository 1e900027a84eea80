package caddraw

import (
	"math"
	"testing"

	"github.com/benoitkugler/cadsvg/cadgeom"
)

func TestLargeArcFlag(t *testing.T) {
	for _, test := range []struct {
		start, end float64
		large      bool
	}{
		{0, 200, true},
		{0, 90, false},
		{10, 350, true},
		{350, 10, false},
		{0, 180, false},
		{90, 0, false}, // drawn along the 270 degrees complement
	} {
		arc := NewArcPath(cadgeom.Point{}, 1, test.start, test.end)
		if arc.LargeArc != test.large {
			t.Errorf("arc %g -> %g: expected large arc %v", test.start, test.end, test.large)
		}
		if !arc.Sweep {
			t.Errorf("arc %g -> %g: expected a positive sweep", test.start, test.end)
		}
	}
}

func bezierAt(from cadgeom.Point, c Cubic, u float64) cadgeom.Point {
	v := 1 - u
	return cadgeom.Point{
		X: v*v*v*from.X + 3*v*v*u*c.C1.X + 3*v*u*u*c.C2.X + u*u*u*c.To.X,
		Y: v*v*v*from.Y + 3*v*v*u*c.C1.Y + 3*v*u*u*c.C2.Y + u*u*u*c.To.Y,
	}
}

// spannedAngle returns the angle covered by the cubics, checking
// that they stay on the circle.
func spannedAngle(t *testing.T, arc ArcPath, center cadgeom.Point) float64 {
	t.Helper()
	cubics := arc.Cubics()
	if len(cubics) == 0 {
		t.Fatal("no cubics")
	}
	if last := cubics[len(cubics)-1].To; last != arc.End {
		t.Fatalf("expected to end at %v, got %v", arc.End, last)
	}
	var total float64
	from := arc.Start
	for _, c := range cubics {
		for _, u := range []float64{0.25, 0.5, 0.75, 1} {
			p := bezierAt(from, c, u)
			if d := math.Hypot(p.X-center.X, p.Y-center.Y); math.Abs(d-arc.Radius) > 1e-3*arc.Radius {
				t.Fatalf("point %v is not on the circle (distance %g)", p, d)
			}
		}
		a1 := math.Atan2(from.Y-center.Y, from.X-center.X)
		a2 := math.Atan2(c.To.Y-center.Y, c.To.X-center.X)
		step := a2 - a1
		if step < -math.Pi {
			step += 2 * math.Pi
		} else if step > math.Pi {
			step -= 2 * math.Pi
		}
		total += step
		from = c.To
	}
	return total * 180 / math.Pi
}

func TestArcCubics(t *testing.T) {
	center := cadgeom.Pt(60, 10)
	for _, test := range []struct {
		start, end, span float64
		center           cadgeom.Point
	}{
		{0, 90, 90, center},
		{0, 200, 200, center},
		{350, 10, 20, center},
		{30, 300, 270, center},
		// known limitation: the small arc is drawn around the
		// center mirrored by the chord, instead of the 270 degrees arc
		{90, 0, 90, cadgeom.Pt(64, 14)},
	} {
		arc := NewArcPath(center, 4, test.start, test.end)
		c, r := arc.Center()
		if math.Abs(r-4) > 1e-6 || !closeTo(c, test.center) {
			t.Errorf("arc %g -> %g: unexpected center %v, radius %g", test.start, test.end, c, r)
		}
		if span := spannedAngle(t, arc, c); math.Abs(span-test.span) > 1e-6 {
			t.Errorf("arc %g -> %g: expected a span of %g, got %g", test.start, test.end, test.span, span)
		}
	}

	if c := NewArcPath(center, 4, 0, 360).Cubics(); c != nil {
		t.Errorf("expected a degenerated arc, got %v", c)
	}
}

func TestArcRadiusTooSmall(t *testing.T) {
	arc := ArcPath{Start: cadgeom.Pt(0, 0), End: cadgeom.Pt(10, 0), Radius: 1, Sweep: true}
	c, r := arc.Center()
	if r != 5 || !closeTo(c, cadgeom.Pt(5, 0)) {
		t.Errorf("unexpected center %v and radius %g", c, r)
	}
}

func TestTextMatrix(t *testing.T) {
	run := TextRun{Anchor: cadgeom.Pt(3, 4), Text: "A", Height: 2}
	m := run.Matrix()
	if got := m.Apply(run.Anchor); !closeTo(got, run.Anchor) {
		t.Errorf("the anchor should be fixed, got %v", got)
	}
	// glyphs go up (negative Y) in text space
	if got := m.Apply(cadgeom.Pt(3, 4-2)); !closeTo(got, cadgeom.Pt(3, 6)) {
		t.Errorf("unexpected glyph top %v", got)
	}
	if got := m.Apply(cadgeom.Pt(5, 4)); !closeTo(got, cadgeom.Pt(5, 4)) {
		t.Errorf("unexpected baseline %v", got)
	}

	run.Rotation = 90
	m = run.Matrix()
	if got := m.Apply(cadgeom.Pt(5, 4)); !closeTo(got, cadgeom.Pt(3, 6)) {
		t.Errorf("rotated baseline should go up, got %v", got)
	}
	if got := m.Apply(cadgeom.Pt(3, 2)); !closeTo(got, cadgeom.Pt(1, 4)) {
		t.Errorf("unexpected rotated glyph top %v", got)
	}

	// once framed, the text is upright
	vp := cadgeom.Viewport{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	run.Rotation = 0
	d := DeviceMatrix(vp, 1).Mult(run.Matrix())
	top, base := d.Apply(cadgeom.Pt(3, 2)), d.Apply(cadgeom.Pt(3, 4))
	if !(top.Y < base.Y) {
		t.Errorf("text is upside down: top %v, baseline %v", top, base)
	}
}

func TestFrame(t *testing.T) {
	vp := cadgeom.Viewport{MinX: 0, MinY: 0, MaxX: 10, MaxY: 20}
	f := Frame(vp)
	if got := f.Apply(cadgeom.Pt(0, 0)); !closeTo(got, cadgeom.Pt(0, 20)) {
		t.Errorf("unexpected origin image %v", got)
	}
	if got := f.Apply(cadgeom.Pt(4, 20)); !closeTo(got, cadgeom.Pt(4, 0)) {
		t.Errorf("unexpected top image %v", got)
	}

	vp = cadgeom.Viewport{MinX: -5, MinY: -4, MaxX: 95, MaxY: 46}
	d := DeviceMatrix(vp, 2)
	if got := d.Apply(cadgeom.Pt(-5, 46)); !closeTo(got, cadgeom.Pt(0, 0)) {
		t.Errorf("top left corner: got %v", got)
	}
	if got := d.Apply(cadgeom.Pt(95, -4)); !closeTo(got, cadgeom.Pt(200, 100)) {
		t.Errorf("bottom right corner: got %v", got)
	}
}
