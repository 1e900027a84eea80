// Package cadsvg implements a caddraw driver writing SVG documents.
//
// The drawing keeps its own coordinates: the document viewBox is the
// viewport of the drawing, and every primitive is wrapped in a single
// group flipping the Y axis (see caddraw.Frame).
// Importing the package registers the driver under the name "svg".
package cadsvg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/benoitkugler/cadsvg/caddraw"
	"github.com/benoitkugler/cadsvg/cadgeom"
)

func init() {
	caddraw.Register("svg", func(w io.Writer) caddraw.Driver { return NewDriver(w) })
}

const (
	solidFill  = "gray"
	markerFill = "black"
)

var strokeAttrs = `stroke="black" stroke-width="` + num(caddraw.StrokeWidth) + `"`

// Driver accumulates the SVG elements, which are written by End.
// It implements caddraw.SymbolDriver: block definitions are
// written as <symbol> elements, with id "block-" + name.
type Driver struct {
	out io.Writer

	viewport cadgeom.Viewport
	defs     bytes.Buffer
	body     bytes.Buffer
	current  *bytes.Buffer // body or defs
}

var _ caddraw.SymbolDriver = (*Driver)(nil)

// NewDriver returns a driver writing to `out`.
func NewDriver(out io.Writer) *Driver {
	d := &Driver{out: out}
	d.current = &d.body
	return d
}

// num formats v with the minimal number of digits.
func num(v float64) string {
	if v == 0 { // avoid -0
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pair(p cadgeom.Point) string { return num(p.X) + "," + num(p.Y) }

func points(pts []cadgeom.Point) string {
	chunks := make([]string, len(pts))
	for i, p := range pts {
		chunks[i] = pair(p)
	}
	return strings.Join(chunks, " ")
}

func escape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

// viewBox returns the box of the flipped drawing
func viewBox(vp cadgeom.Viewport) string {
	return fmt.Sprintf("%s %s %s %s", num(vp.MinX), num(-vp.MinY), num(vp.Width()), num(vp.Height()))
}

// frameGroup returns the opening tag of the group flipping the Y axis
func frameGroup(vp cadgeom.Viewport) string {
	return fmt.Sprintf(`<g transform="translate(0, %s) scale(1, -1)">`, num(vp.Height()))
}

func (d *Driver) Begin(vp cadgeom.Viewport) error {
	d.viewport = vp
	return nil
}

func (d *Driver) BeginSymbol(name string, vp cadgeom.Viewport) {
	d.current = &d.defs
	fmt.Fprintf(d.current, "<symbol id=\"block-%s\" viewBox=\"%s\">\n%s\n", escape(name), viewBox(vp), frameGroup(vp))
}

func (d *Driver) EndSymbol() {
	d.current.WriteString("</g>\n</symbol>\n")
	d.current = &d.body
}

func (d *Driver) Marker(center cadgeom.Point) {
	fmt.Fprintf(d.current, "<circle cx=\"%s\" cy=\"%s\" r=\"%s\" fill=\"%s\"/>\n",
		num(center.X), num(center.Y), num(caddraw.MarkerRadius), markerFill)
}

func (d *Driver) Line(a, b cadgeom.Point) {
	fmt.Fprintf(d.current, "<line x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\" %s/>\n",
		num(a.X), num(a.Y), num(b.X), num(b.Y), strokeAttrs)
}

func (d *Driver) Polyline(pts []cadgeom.Point) {
	fmt.Fprintf(d.current, "<polyline points=\"%s\" fill=\"none\" %s/>\n", points(pts), strokeAttrs)
}

func (d *Driver) Polygon(pts []cadgeom.Point) {
	fmt.Fprintf(d.current, "<polygon points=\"%s\" fill=\"%s\" %s/>\n", points(pts), solidFill, strokeAttrs)
}

func (d *Driver) Circle(center cadgeom.Point, radius float64) {
	fmt.Fprintf(d.current, "<circle cx=\"%s\" cy=\"%s\" r=\"%s\" fill=\"none\" %s/>\n",
		num(center.X), num(center.Y), num(radius), strokeAttrs)
}

// PathData returns the SVG path data of the arc.
func PathData(arc caddraw.ArcPath) string {
	flag := func(b bool) string {
		if b {
			return "1"
		}
		return "0"
	}
	r := num(arc.Radius)
	return fmt.Sprintf("M %s A %s,%s 0 %s,%s %s", pair(arc.Start), r, r, flag(arc.LargeArc), flag(arc.Sweep), pair(arc.End))
}

func (d *Driver) Arc(arc caddraw.ArcPath) {
	fmt.Fprintf(d.current, "<path d=\"%s\" fill=\"none\" %s/>\n", PathData(arc), strokeAttrs)
}

func (d *Driver) Text(run caddraw.TextRun) {
	x, y := num(run.Anchor.X), num(run.Anchor.Y)
	fmt.Fprintf(d.current, "<text x=\"%s\" y=\"%s\" font-size=\"%s\" transform=\"rotate(%s, %s, %s) scale(1, -1) translate(0, %s)\">%s</text>\n",
		x, y, num(run.Height), num(run.Rotation), x, y, num(-2*run.Anchor.Y), escape(run.Text))
}

// End writes the complete document.
func (d *Driver) End() error {
	var doc bytes.Buffer
	doc.WriteString(xml.Header)
	fmt.Fprintf(&doc, "<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" viewBox=\"%s\">\n", viewBox(d.viewport))
	if d.defs.Len() != 0 {
		doc.WriteString("<defs>\n")
		doc.Write(d.defs.Bytes())
		doc.WriteString("</defs>\n")
	}
	doc.WriteString(frameGroup(d.viewport) + "\n")
	doc.Write(d.body.Bytes())
	doc.WriteString("</g>\n</svg>\n")

	_, err := d.out.Write(doc.Bytes())
	return err
}
