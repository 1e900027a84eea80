// Package caddraw renders a decoded drawing: block instances are resolved
// against the block registry and every primitive is sent, in drawing
// coordinates, to a Surface.
//
// Concrete output formats are implemented by drivers
// (see cadsvg, cadraster and cadpdf), which register themselves
// by name, following the database/sql driver pattern.
package caddraw

import (
	"image/color"

	"github.com/benoitkugler/cadsvg/cadgeom"
)

// Fixed style of the output.
const (
	StrokeWidth  = 0.1 // in drawing units
	MarkerRadius = 2.  // radius of the dot drawn for POINT entities

	// MaxInsertDepth bounds the nesting of block instances,
	// so that a block inserting itself terminates.
	MaxInsertDepth = 32
)

var (
	StrokeColor = color.RGBA{0, 0, 0, 0xff}
	SolidColor  = color.RGBA{0x80, 0x80, 0x80, 0xff}
	MarkerColor = color.RGBA{0, 0, 0, 0xff}
)

// Surface receives the resolved primitives. All coordinates are
// in drawing space (Y up): the Y flip of the output is the responsibility
// of the implementation (see Frame).
type Surface interface {
	// Marker draws a filled dot of radius MarkerRadius.
	Marker(center cadgeom.Point)
	Line(a, b cadgeom.Point)
	// Polyline strokes an open path through points.
	Polyline(points []cadgeom.Point)
	// Polygon fills the polygon with SolidColor.
	Polygon(points []cadgeom.Point)
	Circle(center cadgeom.Point, radius float64)
	Arc(arc ArcPath)
	Text(run TextRun)
}

// Driver is a Surface producing a document.
type Driver interface {
	Surface

	// Begin is called once, before any primitive, with the
	// viewport of the drawing.
	Begin(vp cadgeom.Viewport) error
	// End flushes the document.
	End() error
}

// SymbolDriver is implemented by drivers which are able to store
// block definitions as reusable symbols.
// Between BeginSymbol and EndSymbol, primitives are expressed in the
// block coordinates, and vp is the extent of the block content.
type SymbolDriver interface {
	Driver

	BeginSymbol(name string, vp cadgeom.Viewport)
	EndSymbol()
}

// TextRun is a single line of text, anchored at the start of its baseline.
type TextRun struct {
	Anchor   cadgeom.Point
	Text     string
	Height   float64
	Rotation float64 // degrees, counter-clockwise
}

// Matrix returns the transform to apply to glyphs laid out at Anchor
// in a Y down text space (the usual font convention) so that they show
// upright once the whole drawing is flipped by Frame: the run is moved
// to the mirror of its anchor, flipped back and finally rotated
// about the anchor.
// In SVG syntax, this is
//
//	rotate(r, x, y) scale(1, -1) translate(0, -2y)
func (run TextRun) Matrix() cadgeom.Matrix {
	x, y := run.Anchor.X, run.Anchor.Y
	return cadgeom.IdentityMatrix.
		Translate(x, y).Rotate(cadgeom.Radians(run.Rotation)).Translate(-x, -y).
		Scale(1, -1).
		Translate(0, -2*y)
}

// Frame returns the transform mapping drawing space (Y up) to
// the display space (Y down) of a document whose origin is at (MinX, -MinY):
// a translation by the height followed by a vertical flip.
func Frame(vp cadgeom.Viewport) cadgeom.Matrix {
	return cadgeom.IdentityMatrix.Translate(0, vp.Height()).Scale(1, -1)
}

// DeviceMatrix maps drawing space to a device whose origin is the
// top left corner of vp, with `unit` device units per drawing unit.
func DeviceMatrix(vp cadgeom.Viewport, unit float64) cadgeom.Matrix {
	return cadgeom.IdentityMatrix.Scale(unit, unit).Translate(-vp.MinX, vp.MinY).Mult(Frame(vp))
}
