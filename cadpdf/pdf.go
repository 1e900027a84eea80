// Package cadpdf implements a caddraw driver producing single page PDF
// documents, by wrapping github.com/jung-kurt/gofpdf.
// Importing the package registers the driver under the name "pdf".
package cadpdf

import (
	"image/color"
	"io"
	"math"

	"github.com/benoitkugler/cadsvg/caddraw"
	"github.com/benoitkugler/cadsvg/cadgeom"
	"github.com/jung-kurt/gofpdf"
)

func init() {
	caddraw.Register("pdf", func(w io.Writer) caddraw.Driver { return NewDriver(w, Options{}) })
}

// DefaultSize is the size in points of the larger side of the page
// (the height of an A4 sheet), used when Options.PointsPerUnit is zero.
const DefaultSize = 841.89

// minSize is the smallest side of a page, in points.
const minSize = 1.

const defaultFont = "Helvetica"

// Options tunes the output document. The zero value is valid.
type Options struct {
	// PointsPerUnit is the number of points (1/72 inch) for one drawing unit.
	// If zero, it is chosen so that the page fits in DefaultSize.
	PointsPerUnit float64
	// FontFamily is one of the core PDF fonts
	// ("Courier", "Helvetica", "Times"). Defaults to Helvetica.
	FontFamily string
	// Uncompressed writes plain text content streams.
	Uncompressed bool
}

var _ caddraw.Driver = (*Driver)(nil) // assert interface conformance

// Driver writes the primitives on a page whose size is the
// viewport of the drawing. The document is written by End.
type Driver struct {
	out  io.Writer
	opts Options

	pdf       *gofpdf.Fpdf
	device    cadgeom.Matrix // drawing space to page space (points, Y down)
	unit      float64
	translate func(string) string // UTF-8 to the code page of the core fonts
}

// NewDriver returns a driver writing a PDF document to `out`.
func NewDriver(out io.Writer, opts Options) *Driver {
	return &Driver{out: out, opts: opts}
}

// PageSize returns the scale and the dimensions (in points)
// of the page for the viewport vp.
func PageSize(vp cadgeom.Viewport, opts Options) (unit, w, h float64) {
	unit = opts.PointsPerUnit
	if unit <= 0 {
		if m := math.Max(vp.Width(), vp.Height()); m > 0 {
			unit = DefaultSize / m
		} else {
			unit = 1
		}
	}
	return unit, math.Max(vp.Width()*unit, minSize), math.Max(vp.Height()*unit, minSize)
}

func (d *Driver) Begin(vp cadgeom.Viewport) error {
	unit, w, h := PageSize(vp, d.opts)
	d.unit = unit
	d.device = caddraw.DeviceMatrix(vp, unit)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: gofpdf.SizeType{Wd: w, Ht: h}})
	pdf.SetCompression(!d.opts.Uncompressed)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetLineWidth(caddraw.StrokeWidth * unit)
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	setDrawColor(pdf, caddraw.StrokeColor)

	family := d.opts.FontFamily
	if family == "" {
		family = defaultFont
	}
	pdf.SetFont(family, "", 12)
	d.translate = pdf.UnicodeTranslatorFromDescriptor("")
	d.pdf = pdf
	return pdf.Error()
}

func setDrawColor(pdf *gofpdf.Fpdf, c color.RGBA) { pdf.SetDrawColor(int(c.R), int(c.G), int(c.B)) }
func setFillColor(pdf *gofpdf.Fpdf, c color.RGBA) { pdf.SetFillColor(int(c.R), int(c.G), int(c.B)) }

// pather writes path commands, mapping drawing coordinates to the page
type pather struct {
	pdf *gofpdf.Fpdf
	m   cadgeom.Matrix
}

func (p pather) start(pt cadgeom.Point) {
	q := p.m.Apply(pt)
	p.pdf.MoveTo(q.X, q.Y)
}

func (p pather) line(pt cadgeom.Point) {
	q := p.m.Apply(pt)
	p.pdf.LineTo(q.X, q.Y)
}

func (p pather) polyline(pts []cadgeom.Point) {
	p.start(pts[0])
	for _, pt := range pts[1:] {
		p.line(pt)
	}
}

func (p pather) cubics(cubics []caddraw.Cubic) {
	for _, c := range cubics {
		c1, c2, to := p.m.Apply(c.C1), p.m.Apply(c.C2), p.m.Apply(c.To)
		p.pdf.CurveBezierCubicTo(c1.X, c1.Y, c2.X, c2.Y, to.X, to.Y)
	}
}

func (d *Driver) pather() pather { return pather{pdf: d.pdf, m: d.device} }

func (d *Driver) Marker(center cadgeom.Point) {
	c := d.device.Apply(center)
	setFillColor(d.pdf, caddraw.MarkerColor)
	d.pdf.Circle(c.X, c.Y, caddraw.MarkerRadius*d.unit, "F")
}

func (d *Driver) Line(a, b cadgeom.Point) {
	p := d.pather()
	p.start(a)
	p.line(b)
	d.pdf.DrawPath("D")
}

func (d *Driver) Polyline(points []cadgeom.Point) {
	d.pather().polyline(points)
	d.pdf.DrawPath("D")
}

func (d *Driver) Polygon(points []cadgeom.Point) {
	setFillColor(d.pdf, caddraw.SolidColor) // not allowed inside a path
	d.pather().polyline(points)
	d.pdf.ClosePath()
	d.pdf.DrawPath("FD")
}

func (d *Driver) Circle(center cadgeom.Point, radius float64) {
	c := d.device.Apply(center)
	d.pdf.Circle(c.X, c.Y, radius*d.unit, "D")
}

func (d *Driver) Arc(arc caddraw.ArcPath) {
	cubics := arc.Cubics()
	if len(cubics) == 0 {
		return
	}
	p := d.pather()
	p.start(arc.Start)
	p.cubics(cubics)
	d.pdf.DrawPath("D")
}

// Text uses a core font: characters outside of the
// Windows-1252 code page are not rendered.
func (d *Driver) Text(run caddraw.TextRun) {
	size := run.Height * d.unit
	if size <= 0 || run.Text == "" {
		return
	}
	at := d.device.Apply(run.Anchor)
	d.pdf.SetFontSize(size)
	d.pdf.TransformBegin()
	d.pdf.TransformRotate(run.Rotation, at.X, at.Y)
	d.pdf.Text(at.X, at.Y, d.translate(run.Text))
	d.pdf.TransformEnd()
}

// End writes the document.
func (d *Driver) End() error {
	return d.pdf.Output(d.out)
}
