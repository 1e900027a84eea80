// Package cadraster implements a caddraw driver producing PNG images,
// by wrapping rasterx.
// Importing the package registers the driver under the name "png".
package cadraster

import (
	"image"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/cadsvg/caddraw"
	"github.com/benoitkugler/cadsvg/cadgeom"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

func init() {
	caddraw.Register("png", func(w io.Writer) caddraw.Driver { return NewDriver(w, Options{}) })
}

// DefaultSize is the size in pixels of the larger side of the image,
// used when Options.PixelsPerUnit is zero.
const DefaultSize = 1024

// maxSize bounds each side of the image.
const maxSize = 1 << 14

// Options tunes the output image. The zero value is valid.
type Options struct {
	// PixelsPerUnit is the number of pixels for one drawing unit.
	// If zero, it is chosen so that the image fits in DefaultSize pixels.
	PixelsPerUnit float64
}

var _ caddraw.Driver = (*Driver)(nil) // assert interface conformance

// Driver rasterizes the primitives into an RGBA image,
// encoded as PNG by End.
type Driver struct {
	out  io.Writer
	opts Options

	img    *image.RGBA
	device cadgeom.Matrix // drawing space to pixels

	filler *rasterx.Filler
	dasher *rasterx.Dasher // separated instance, sharing the scanner
}

// NewDriver returns a driver writing a PNG image to `out`.
func NewDriver(out io.Writer, opts Options) *Driver {
	return &Driver{out: out, opts: opts}
}

// imageSize returns the pixel density and the dimensions of the image
// for the viewport vp. Degenerated viewports still give a 1x1 image.
func imageSize(vp cadgeom.Viewport, opts Options) (unit float64, w, h int) {
	unit = opts.PixelsPerUnit
	if unit <= 0 {
		if m := math.Max(vp.Width(), vp.Height()); m > 0 {
			unit = DefaultSize / m
		} else {
			unit = 1
		}
	}
	clamp := func(v float64) int {
		n := int(math.Ceil(v * unit))
		return min(max(n, 1), maxSize)
	}
	return unit, clamp(vp.Width()), clamp(vp.Height())
}

func (d *Driver) Begin(vp cadgeom.Viewport) error {
	unit, w, h := imageSize(vp, d.opts)
	d.device = caddraw.DeviceMatrix(vp, unit)
	d.img = image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(d.img, d.img.Bounds(), image.White, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, d.img, d.img.Bounds())
	d.filler = rasterx.NewFiller(w, h, scanner)
	d.dasher = rasterx.NewDasher(w, h, scanner)
	lineWidth := math.Max(caddraw.StrokeWidth*unit, 1)
	d.dasher.SetStroke(fixed.Int26_6(lineWidth*64), fixed.Int26_6(4*64),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	return nil
}

// toFixedP converts a point already in pixels
func toFixedP(p cadgeom.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}

// adder is implemented by both rasterx.Filler and rasterx.Dasher
type adder interface {
	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	QuadBezier(b, c fixed.Point26_6)
	CubeBezier(b, c, d fixed.Point26_6)
}

// pather maps drawing coordinates to pixels before adding them
type pather struct {
	m cadgeom.Matrix
	a adder
}

func (p pather) start(pt cadgeom.Point) { p.a.Start(toFixedP(p.m.Apply(pt))) }
func (p pather) line(pt cadgeom.Point)  { p.a.Line(toFixedP(p.m.Apply(pt))) }

func (p pather) polyline(pts []cadgeom.Point) {
	p.start(pts[0])
	for _, pt := range pts[1:] {
		p.line(pt)
	}
}

func (p pather) cubics(cubics []caddraw.Cubic) {
	for _, c := range cubics {
		p.a.CubeBezier(toFixedP(p.m.Apply(c.C1)), toFixedP(p.m.Apply(c.C2)), toFixedP(p.m.Apply(c.To)))
	}
}

// circle adds a full circle, as two half arcs
func (p pather) circle(center cadgeom.Point, radius float64) {
	first := caddraw.NewArcPath(center, radius, 0, 180)
	second := caddraw.NewArcPath(center, radius, 180, 360)
	second.Start = first.End
	second.End = first.Start
	p.start(first.Start)
	p.cubics(first.Cubics())
	p.cubics(second.Cubics())
}

func (d *Driver) stroke(closed bool, path func(p pather)) {
	d.dasher.Clear()
	path(pather{m: d.device, a: d.dasher})
	d.dasher.Stop(closed)
	d.dasher.SetColor(caddraw.StrokeColor)
	d.dasher.Draw()
}

func (d *Driver) fill(clr interface{}, path func(p pather)) {
	d.filler.Clear()
	d.filler.SetWinding(true)
	path(pather{m: d.device, a: d.filler})
	d.filler.Stop(true)
	d.filler.SetColor(clr)
	d.filler.Draw()
}

func (d *Driver) Marker(center cadgeom.Point) {
	d.fill(caddraw.MarkerColor, func(p pather) { p.circle(center, caddraw.MarkerRadius) })
}

func (d *Driver) Line(a, b cadgeom.Point) {
	d.stroke(false, func(p pather) { p.start(a); p.line(b) })
}

func (d *Driver) Polyline(points []cadgeom.Point) {
	d.stroke(false, func(p pather) { p.polyline(points) })
}

func (d *Driver) Polygon(points []cadgeom.Point) {
	d.fill(caddraw.SolidColor, func(p pather) { p.polyline(points) })
	d.stroke(true, func(p pather) { p.polyline(points) })
}

func (d *Driver) Circle(center cadgeom.Point, radius float64) {
	d.stroke(true, func(p pather) { p.circle(center, radius) })
}

func (d *Driver) Arc(arc caddraw.ArcPath) {
	cubics := arc.Cubics()
	if len(cubics) == 0 {
		return
	}
	d.stroke(false, func(p pather) { p.start(arc.Start); p.cubics(cubics) })
}

func (d *Driver) Text(run caddraw.TextRun) {
	if err := d.drawText(run); err != nil {
		caddraw.Logger().Warn("text not rendered", "text", run.Text, "error", err)
	}
}

// End encodes the image.
func (d *Driver) End() error {
	return png.Encode(d.out, d.img)
}

// Image returns the image drawn so far, valid after Begin.
func (d *Driver) Image() *image.RGBA { return d.img }
