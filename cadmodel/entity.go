// Package cadmodel defines the normalized entity list extracted from a
// CAD drawing: a closed set of primitives, block instances and the
// block definitions they refer to.
//
// Entities are plain values; a decoded document is never mutated by
// the packages consuming it.
package cadmodel

import "github.com/benoitkugler/cadsvg/cadgeom"

// Kind is the type tag of an entity, using the DXF names.
type Kind string

const (
	KindPoint    Kind = "POINT"
	KindLine     Kind = "LINE"
	KindPolyline Kind = "POLYLINE"
	KindSolid    Kind = "SOLID"
	KindCircle   Kind = "CIRCLE"
	KindArc      Kind = "ARC"
	KindText     Kind = "TEXT"
	KindInsert   Kind = "INSERT"
	KindAttDef   Kind = "ATTDEF"
	KindAttrib   Kind = "ATTRIB"
	KindBlock    Kind = "BLOCK"

	// kindLWPolyline is accepted on input and decoded as a Polyline.
	kindLWPolyline Kind = "LWPOLYLINE"
)

// Default values of the optional fields.
const (
	DefaultScale      = 1.
	DefaultRotation   = 0.
	DefaultTextHeight = 10.
)

// Entity is one of the types defined in this package:
// Point, Line, Polyline, Solid, Circle, Arc, Text, Insert,
// AttributeDefinition, Attrib, Block or Unknown.
type Entity interface {
	Kind() Kind
}

// Point is a single location, drawn as a small marker.
type Point struct {
	Coordinates cadgeom.Point
}

// Line is a straight segment.
type Line struct {
	Coordinates [2]cadgeom.Point
}

// Polyline is a connected sequence of segments.
type Polyline struct {
	Coordinates []cadgeom.Point
	IsClosed    bool
}

// Path returns the points to visit, repeating the first one at the end
// for a closed polyline.
func (p Polyline) Path() []cadgeom.Point {
	out := append([]cadgeom.Point(nil), p.Coordinates...)
	if p.IsClosed && len(out) > 0 {
		out = append(out, out[0])
	}
	return out
}

// Solid is a filled triangle or quadrilateral.
type Solid struct {
	Coordinates []cadgeom.Point
}

// Circle is defined by its center and radius.
type Circle struct {
	Coordinates cadgeom.Point
	Radius      float64
}

// Arc is a circular arc going counter-clockwise from
// StartAngle to EndAngle (in degrees).
type Arc struct {
	Coordinates          cadgeom.Point
	Radius               float64
	StartAngle, EndAngle float64
}

// Text is a single line of text, anchored at Coordinates.
type Text struct {
	Coordinates cadgeom.Point
	Text        string
	Height      float64
	Rotation    float64 // degrees
}

// NewText returns a text with default height and rotation.
func NewText(at cadgeom.Point, text string) Text {
	return Text{Coordinates: at, Text: text, Height: DefaultTextHeight, Rotation: DefaultRotation}
}

// Insert is an instance of the block Name, placed by
// scaling, then rotating, then translating to Coordinates.
type Insert struct {
	Coordinates    cadgeom.Point
	Name           string
	XScale, YScale float64
	Rotation       float64 // degrees
	Attribs        []Attrib
}

// NewInsert returns an instance of `name` at `at`, with no scaling,
// no rotation and no attributes.
func NewInsert(name string, at cadgeom.Point) Insert {
	return Insert{Coordinates: at, Name: name, XScale: DefaultScale, YScale: DefaultScale, Rotation: DefaultRotation}
}

// Transform returns the placement of the instance.
func (ins Insert) Transform() cadgeom.Transform {
	return cadgeom.NewTransform(ins.XScale, ins.YScale, ins.Rotation, ins.Coordinates)
}

// Attrib returns the attribute with the given tag, if any.
func (ins Insert) Attrib(tag string) (Attrib, bool) {
	for _, a := range ins.Attribs {
		if a.Tag == tag {
			return a, true
		}
	}
	return Attrib{}, false
}

// AttributeDefinition declares a text field in a block definition,
// filled by each instance with an Attrib of the same Tag.
type AttributeDefinition struct {
	Tag         string
	Coordinates cadgeom.Point
	Height      float64
	Text        string // default value
}

// Attrib is the value of an attribute for one Insert.
// An empty Text means the field was left unset.
type Attrib struct {
	Tag         string
	Coordinates cadgeom.Point
	Rotation    float64 // degrees
	Text        string
}

// Block is a named group of entities, only drawn through an Insert.
type Block struct {
	Name     string
	Entities []Entity
}

// Unknown is an entity whose type is outside of the supported set.
// Only its type is kept.
type Unknown struct {
	Type string
}

func (Point) Kind() Kind               { return KindPoint }
func (Line) Kind() Kind                { return KindLine }
func (Polyline) Kind() Kind            { return KindPolyline }
func (Solid) Kind() Kind               { return KindSolid }
func (Circle) Kind() Kind              { return KindCircle }
func (Arc) Kind() Kind                 { return KindArc }
func (Text) Kind() Kind                { return KindText }
func (Insert) Kind() Kind              { return KindInsert }
func (AttributeDefinition) Kind() Kind { return KindAttDef }
func (Attrib) Kind() Kind              { return KindAttrib }
func (Block) Kind() Kind               { return KindBlock }
func (u Unknown) Kind() Kind           { return Kind(u.Type) }
