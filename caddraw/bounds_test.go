package caddraw

import (
	"math"
	"testing"

	"github.com/benoitkugler/cadsvg/cadgeom"
	"github.com/benoitkugler/cadsvg/cadmodel"
)

func viewportClose(v, w cadgeom.Viewport, eps float64) bool {
	return math.Abs(v.MinX-w.MinX) < eps && math.Abs(v.MinY-w.MinY) < eps &&
		math.Abs(v.MaxX-w.MaxX) < eps && math.Abs(v.MaxY-w.MaxY) < eps
}

func TestQuadraticRoots(t *testing.T) {
	if r := quadraticRoots(1, 0, 1); len(r) != 0 {
		t.Errorf("expected no root, got %v", r)
	}
	if r := quadraticRoots(0, 2, -1); len(r) != 1 || r[0] != 0.5 {
		t.Errorf("expected 0.5, got %v", r)
	}
	if r := quadraticRoots(0, 0, 1); len(r) != 0 {
		t.Errorf("expected no root, got %v", r)
	}
	r := quadraticRoots(1, -3, 2)
	if len(r) != 2 || r[0] != 2 || r[1] != 1 {
		t.Errorf("expected 2 and 1, got %v", r)
	}
}

func TestBounds(t *testing.T) {
	for _, test := range []struct {
		entity cadmodel.Entity
		want   cadgeom.Viewport
	}{
		{cadmodel.Arc{Coordinates: cadgeom.Pt(0, 0), Radius: 1, StartAngle: 0, EndAngle: 90}, cadgeom.Viewport{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}},
		{cadmodel.Arc{Coordinates: cadgeom.Pt(0, 0), Radius: 1, StartAngle: 0, EndAngle: 180}, cadgeom.Viewport{MinX: -1, MinY: 0, MaxX: 1, MaxY: 1}},
		{cadmodel.Arc{Coordinates: cadgeom.Pt(10, 10), Radius: 2, StartAngle: 45, EndAngle: 315}, cadgeom.Viewport{MinX: 8, MinY: 8, MaxX: 10 + math.Sqrt2, MaxY: 12}},
		{cadmodel.Circle{Coordinates: cadgeom.Pt(5, 5), Radius: 3}, cadgeom.Viewport{MinX: 2, MinY: 2, MaxX: 8, MaxY: 8}},
		{cadmodel.Point{Coordinates: cadgeom.Pt(5, 5)}, cadgeom.Viewport{MinX: 3, MinY: 3, MaxX: 7, MaxY: 7}},
		{cadmodel.NewText(cadgeom.Pt(1, 2), "abc"), cadgeom.Viewport{MinX: 1, MinY: 2, MaxX: 1, MaxY: 2}},
	} {
		got, ok := record([]cadmodel.Entity{test.entity}).Bounds()
		if !ok || !viewportClose(got, test.want, 1e-4) {
			t.Errorf("%v: expected %v, got %v", test.entity, test.want, got)
		}
	}

	if vp, ok := new(Recording).Bounds(); ok || vp != cadgeom.DefaultViewport {
		t.Errorf("expected the default viewport, got %v", vp)
	}
}

func TestDrawFit(t *testing.T) {
	doc := cadmodel.Partition([]cadmodel.Entity{
		cadmodel.Block{Name: "B", Entities: []cadmodel.Entity{
			cadmodel.Line{Coordinates: [2]cadgeom.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}},
			cadmodel.Line{Coordinates: [2]cadgeom.Point{{X: 0, Y: 0}, {X: 0, Y: 100}}},
		}},
		cadmodel.Insert{Name: "B", Coordinates: cadgeom.Pt(200, 200), XScale: 1, YScale: 1, Rotation: 45},
		cadmodel.Line{Coordinates: [2]cadgeom.Point{{X: 0, Y: 0}, {X: 10, Y: 5}}},
	})
	d := 100 * math.Sqrt2 / 2
	want := cadgeom.Viewport{MinX: 0, MinY: 0, MaxX: 200 + d, MaxY: 200 + d}
	for _, workers := range []int{0, 4} {
		var drv testDriver
		if err := Draw(doc, &drv, Options{Fit: true, Workers: workers}); err != nil {
			t.Fatal(err)
		}
		if !viewportClose(drv.viewport, want, 1e-9) {
			t.Errorf("expected viewport %v, got %v", want, drv.viewport)
		}
		if n := drv.Finish().Count(OpLine); n != 3 {
			t.Errorf("expected 3 lines, got %d", n)
		}
	}
}
