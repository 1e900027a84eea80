package caddraw

import (
	"github.com/benoitkugler/cadsvg/cadgeom"
	"github.com/benoitkugler/cadsvg/cadmodel"
)

// Render sends `entities` to `s`, mapping every coordinate through `ambient`
// (use cadgeom.Identity at the top level).
// Block instances are resolved against `blocks` and rendered recursively.
//
// Render never fails: instances of missing blocks, unknown kinds and empty
// polylines are skipped (see Logger).
// Neither the entities nor the registry are modified.
func Render(entities []cadmodel.Entity, s Surface, blocks cadmodel.Registry, ambient cadgeom.Transform) {
	r := renderer{surface: s, blocks: blocks}
	r.render(entities, ambient, 0)
}

type renderer struct {
	surface Surface
	blocks  cadmodel.Registry
}

func (r renderer) render(entities []cadmodel.Entity, t cadgeom.Transform, depth int) {
	for _, e := range entities {
		r.renderEntity(e, t, depth)
	}
}

func (r renderer) renderEntity(e cadmodel.Entity, t cadgeom.Transform, depth int) {
	s := r.surface
	switch e := e.(type) {
	case cadmodel.Point:
		s.Marker(t.Apply(e.Coordinates))
	case cadmodel.Line:
		s.Line(t.Apply(e.Coordinates[0]), t.Apply(e.Coordinates[1]))
	case cadmodel.Polyline:
		if len(e.Coordinates) == 0 {
			Logger().Warn("empty polyline skipped")
			return
		}
		s.Polyline(t.ApplyAll(e.Path()))
	case cadmodel.Solid:
		if len(e.Coordinates) == 0 {
			Logger().Warn("empty solid skipped")
			return
		}
		s.Polygon(t.ApplyAll(e.Coordinates))
	case cadmodel.Circle:
		s.Circle(t.Apply(e.Coordinates), t.Radius(e.Radius))
	case cadmodel.Arc:
		s.Arc(NewArcPath(t.Apply(e.Coordinates), t.Radius(e.Radius), t.Angle(e.StartAngle), t.Angle(e.EndAngle)))
	case cadmodel.Text:
		s.Text(TextRun{Anchor: t.Apply(e.Coordinates), Text: e.Text, Height: e.Height, Rotation: e.Rotation})
	case cadmodel.Insert:
		r.renderInsert(e, t, depth)
	case cadmodel.AttributeDefinition:
		// only meaningful inside a block instance, see renderInsert
	default:
		Logger().Debug("entity skipped", "kind", e.Kind())
	}
}

func (r renderer) renderInsert(ins cadmodel.Insert, t cadgeom.Transform, depth int) {
	entities, ok := r.blocks.Lookup(ins.Name)
	if !ok {
		Logger().Debug("missing block", "name", ins.Name)
		return
	}
	if depth >= MaxInsertDepth {
		Logger().Debug("block nesting too deep", "name", ins.Name, "depth", depth)
		return
	}

	inner := t.Nest(ins.Transform())
	for _, e := range entities {
		def, isDef := e.(cadmodel.AttributeDefinition)
		if !isDef {
			r.renderEntity(e, inner, depth+1)
			continue
		}
		attrib, ok := ins.Attrib(def.Tag)
		if !ok || attrib.Text == "" { // unset value
			continue
		}
		r.surface.Text(TextRun{
			Anchor:   inner.Apply(attrib.Coordinates),
			Text:     attrib.Text,
			Height:   def.Height,
			Rotation: attrib.Rotation,
		})
	}
}
