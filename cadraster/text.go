package cadraster

import (
	"sync"

	"github.com/benoitkugler/cadsvg/caddraw"
	"github.com/benoitkugler/cadsvg/cadgeom"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// glyphPPEM is the size at which glyph outlines are loaded,
// before being scaled to the text height.
const glyphPPEM = 1024

var loadFont = sync.OnceValues(func() (*sfnt.Font, error) {
	return sfnt.Parse(goregular.TTF)
})

// drawText fills the glyph outlines of the run, laid out with the
// Go regular font at the run height.
func (d *Driver) drawText(run caddraw.TextRun) error {
	f, err := loadFont()
	if err != nil {
		return err
	}
	var buf sfnt.Buffer
	ppem := fixed.I(glyphPPEM)
	scale := run.Height / glyphPPEM
	m := d.device.Mult(run.Matrix())
	origin := run.Anchor

	// maps a point of the glyph (in 26.6 units, Y down, relative to the pen)
	toDevice := func(pen float64, p fixed.Point26_6) fixed.Point26_6 {
		x := origin.X + (pen+float64(p.X)/64)*scale
		y := origin.Y + float64(p.Y)/64*scale
		return toFixedP(m.Apply(cadgeom.Point{X: x, Y: y}))
	}

	d.filler.Clear()
	d.filler.SetWinding(true)
	var (
		pen     float64 // in glyph units
		prev    sfnt.GlyphIndex
		started bool
	)
	for i, r := range run.Text {
		index, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return err
		}
		if i > 0 {
			if kern, err := f.Kern(&buf, prev, index, ppem, font.HintingNone); err == nil {
				pen += float64(kern) / 64
			}
		}
		segments, err := f.LoadGlyph(&buf, index, ppem, nil)
		if err != nil {
			return err
		}
		for _, seg := range segments {
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				if started {
					d.filler.Stop(true)
				}
				d.filler.Start(toDevice(pen, seg.Args[0]))
				started = true
			case sfnt.SegmentOpLineTo:
				d.filler.Line(toDevice(pen, seg.Args[0]))
			case sfnt.SegmentOpQuadTo:
				d.filler.QuadBezier(toDevice(pen, seg.Args[0]), toDevice(pen, seg.Args[1]))
			case sfnt.SegmentOpCubeTo:
				d.filler.CubeBezier(toDevice(pen, seg.Args[0]), toDevice(pen, seg.Args[1]), toDevice(pen, seg.Args[2]))
			}
		}
		advance, err := f.GlyphAdvance(&buf, index, ppem, font.HintingNone)
		if err != nil {
			return err
		}
		pen += float64(advance) / 64
		prev = index
	}
	if !started { // blank text
		return nil
	}
	d.filler.Stop(true)
	d.filler.SetColor(caddraw.StrokeColor)
	d.filler.Draw()
	return nil
}
