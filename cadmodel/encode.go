package cadmodel

import (
	"encoding/json"
	"io"

	"github.com/benoitkugler/cadsvg/cadgeom"
)

// WriteJSONL writes the normalized item list, one JSON object per line:
// blocks first (in definition order), then the top-level entities.
// Optional fields are written with their effective value.
func WriteJSONL(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	for _, name := range doc.Blocks.Names() {
		ents, _ := doc.Blocks.Lookup(name)
		if err := enc.Encode(encodeEntity(Block{Name: name, Entities: ents})); err != nil {
			return err
		}
	}
	for _, e := range doc.Entities {
		if err := enc.Encode(encodeEntity(e)); err != nil {
			return err
		}
	}
	return nil
}

type record map[string]interface{}

func pair(p cadgeom.Point) [2]float64 { return [2]float64{p.X, p.Y} }

func pairs(pts []cadgeom.Point) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = pair(p)
	}
	return out
}

func encodeEntity(e Entity) record {
	r := record{"type": string(e.Kind())}
	switch e := e.(type) {
	case Point:
		r["coordinates"] = pair(e.Coordinates)
	case Line:
		r["coordinates"] = pairs(e.Coordinates[:])
	case Polyline:
		r["coordinates"] = pairs(e.Coordinates)
		r["is_closed"] = e.IsClosed
	case Solid:
		r["coordinates"] = pairs(e.Coordinates)
	case Circle:
		r["coordinates"] = pair(e.Coordinates)
		r["radius"] = e.Radius
	case Arc:
		r["coordinates"] = pair(e.Coordinates)
		r["radius"] = e.Radius
		r["start_angle"] = e.StartAngle
		r["end_angle"] = e.EndAngle
	case Text:
		r["coordinates"] = pair(e.Coordinates)
		r["text"] = e.Text
		r["height"] = e.Height
		r["rotation"] = e.Rotation
	case Insert:
		r["coordinates"] = pair(e.Coordinates)
		r["name"] = e.Name
		r["xscale"] = e.XScale
		r["yscale"] = e.YScale
		r["rotation"] = e.Rotation
		attribs := make([]record, len(e.Attribs))
		for i, a := range e.Attribs {
			attribs[i] = encodeEntity(a)
		}
		r["attribs"] = attribs
	case AttributeDefinition:
		r["tag"] = e.Tag
		r["coordinates"] = pair(e.Coordinates)
		r["height"] = e.Height
		r["text"] = e.Text
	case Attrib:
		r["tag"] = e.Tag
		r["coordinates"] = pair(e.Coordinates)
		r["rotation"] = e.Rotation
		r["text"] = e.Text
	case Block:
		r["block_name"] = e.Name
		children := make([]record, len(e.Entities))
		for i, child := range e.Entities {
			children[i] = encodeEntity(child)
		}
		r["entities"] = children
	}
	return r
}
