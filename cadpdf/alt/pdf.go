// Package alt is an alternative implementation of the PDF driver,
// building the content stream and the document with
// github.com/benoitkugler/pdf instead of gofpdf.
// Importing the package registers the driver under the name "pdf-alt".
//
// Contrary to cadpdf, the page keeps the Y up orientation of the
// drawing and text is not restricted to the code page of gofpdf.
package alt

import (
	"fmt"
	"io"
	"math"

	"github.com/benoitkugler/cadsvg/caddraw"
	"github.com/benoitkugler/cadsvg/cadgeom"
	"github.com/benoitkugler/cadsvg/cadpdf"
	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/fonts"
	"github.com/benoitkugler/pdf/fonts/standardfonts"
	"github.com/benoitkugler/pdf/model"
)

// Name is the registered name of the driver.
const Name = "pdf-alt"

func init() {
	caddraw.Register(Name, func(w io.Writer) caddraw.Driver { return NewDriver(w, Options{}) })
}

const defaultFont = "Helvetica"

// Options tunes the output document. The zero value is valid.
type Options struct {
	// PointsPerUnit is the number of points for one drawing unit.
	// If zero, the page fits in cadpdf.DefaultSize.
	PointsPerUnit float64
	// FontFamily is the name of one of the 14 standard fonts
	// ("Courier", "Helvetica", "Times-Roman", ...). Defaults to Helvetica.
	FontFamily string
	// Uncompressed writes plain text content streams.
	Uncompressed bool
}

// assert interface conformance
var _ caddraw.Driver = (*Driver)(nil)

// Driver accumulates the page operations, and writes
// the document on End.
type Driver struct {
	out  io.Writer
	opts Options

	page cadgeom.Matrix // drawing space to page space (points, Y up)
	unit float64
	font fonts.BuiltFont
	ap   contentstream.Appearance
}

// NewDriver returns a driver writing a PDF document to `out`.
func NewDriver(out io.Writer, opts Options) *Driver {
	return &Driver{out: out, opts: opts}
}

// standardFont builds one of the 14 fonts every PDF reader provides.
func standardFont(name string) (fonts.BuiltFont, error) {
	if name == "" {
		name = defaultFont
	}
	metrics, ok := standardfonts.Fonts[name]
	if !ok {
		return fonts.BuiltFont{}, fmt.Errorf("pdf-alt: unknown standard font %q", name)
	}
	return fonts.BuildFont(&model.FontDict{Subtype: metrics.WesternType1Font()})
}

func (d *Driver) Begin(vp cadgeom.Viewport) error {
	font, err := standardFont(d.opts.FontFamily)
	if err != nil {
		return err
	}
	d.font = font

	unit, w, h := cadpdf.PageSize(vp, cadpdf.Options{PointsPerUnit: d.opts.PointsPerUnit})
	d.unit = unit
	d.page = cadgeom.IdentityMatrix.Scale(unit, unit).Translate(-vp.MinX, -vp.MinY)

	d.ap = contentstream.NewAppearance(w, h)
	d.ap.SetColorStroke(caddraw.StrokeColor)
	d.ap.Ops(
		contentstream.OpSetLineWidth{W: caddraw.StrokeWidth * unit},
		contentstream.OpSetLineCap{Style: 1},  // round
		contentstream.OpSetLineJoin{Style: 1}, // round
	)
	return nil
}

func (d *Driver) moveTo(p cadgeom.Point) {
	q := d.page.Apply(p)
	d.ap.Ops(contentstream.OpMoveTo{X: q.X, Y: q.Y})
}

func (d *Driver) lineTo(p cadgeom.Point) {
	q := d.page.Apply(p)
	d.ap.Ops(contentstream.OpLineTo{X: q.X, Y: q.Y})
}

func (d *Driver) polyline(points []cadgeom.Point) {
	d.moveTo(points[0])
	for _, p := range points[1:] {
		d.lineTo(p)
	}
}

func (d *Driver) cubics(cubics []caddraw.Cubic) {
	for _, c := range cubics {
		c1, c2, to := d.page.Apply(c.C1), d.page.Apply(c.C2), d.page.Apply(c.To)
		d.ap.Ops(contentstream.OpCubicTo{X1: c1.X, Y1: c1.Y, X2: c2.X, Y2: c2.Y, X3: to.X, Y3: to.Y})
	}
}

// circle writes a closed path made of two half arcs
func (d *Driver) circle(center cadgeom.Point, radius float64) {
	upper := caddraw.NewArcPath(center, radius, 0, 180)
	lower := caddraw.NewArcPath(center, radius, 180, 360)
	d.moveTo(upper.Start)
	d.cubics(upper.Cubics())
	d.cubics(lower.Cubics())
	d.ap.Ops(contentstream.OpClosePath{})
}

func (d *Driver) Marker(center cadgeom.Point) {
	d.ap.SetColorFill(caddraw.MarkerColor)
	d.circle(center, caddraw.MarkerRadius)
	d.ap.Ops(contentstream.OpFill{})
}

func (d *Driver) Line(a, b cadgeom.Point) {
	d.moveTo(a)
	d.lineTo(b)
	d.ap.Ops(contentstream.OpStroke{})
}

func (d *Driver) Polyline(points []cadgeom.Point) {
	d.polyline(points)
	d.ap.Ops(contentstream.OpStroke{})
}

func (d *Driver) Polygon(points []cadgeom.Point) {
	d.ap.SetColorFill(caddraw.SolidColor) // not allowed inside a path
	d.polyline(points)
	d.ap.Ops(contentstream.OpClosePath{}, contentstream.OpFillStroke{})
}

func (d *Driver) Circle(center cadgeom.Point, radius float64) {
	if radius <= 0 {
		return
	}
	d.circle(center, radius)
	d.ap.Ops(contentstream.OpStroke{})
}

func (d *Driver) Arc(arc caddraw.ArcPath) {
	cubics := arc.Cubics()
	if len(cubics) == 0 {
		return
	}
	d.moveTo(arc.Start)
	d.cubics(cubics)
	d.ap.Ops(contentstream.OpStroke{})
}

// Text uses a standard font with the WinAnsi encoding:
// unsupported characters are replaced by a dot.
func (d *Driver) Text(run caddraw.TextRun) {
	size := run.Height * d.unit
	if size <= 0 || run.Text == "" {
		return
	}
	at := d.page.Apply(run.Anchor)
	sin, cos := math.Sincos(cadgeom.Radians(run.Rotation))
	d.ap.SetColorFill(caddraw.StrokeColor)
	d.ap.BeginText()
	d.ap.SetFontAndSize(d.font, size)
	d.ap.SetTextMatrix(cos, sin, -sin, cos, at.X, at.Y)
	_ = d.ap.ShowText(run.Text) // the font is always set
	d.ap.EndText()
}

// End writes the document.
func (d *Driver) End() error {
	page := new(model.PageObject)
	d.ap.ApplyToPageObject(page, !d.opts.Uncompressed)

	var doc model.Document
	doc.Catalog.Pages.Kids = append(doc.Catalog.Pages.Kids, page)
	return doc.Write(d.out, nil)
}
