package cadmodel

import "github.com/benoitkugler/cadsvg/cadgeom"

// anchors returns the points of e taken into account by the viewport:
// the center of circles and arcs (not their swept extent), the anchor of
// texts, every vertex of lines, polylines and solids.
// Inserts do not contribute.
func anchors(e Entity) []cadgeom.Point {
	switch e := e.(type) {
	case Point:
		return []cadgeom.Point{e.Coordinates}
	case Circle:
		return []cadgeom.Point{e.Coordinates}
	case Arc:
		return []cadgeom.Point{e.Coordinates}
	case Text:
		return []cadgeom.Point{e.Coordinates}
	case Line:
		return e.Coordinates[:]
	case Polyline:
		return e.Coordinates
	case Solid:
		return e.Coordinates
	default:
		return nil
	}
}

// Extent folds the coordinates of `entities` (without descending
// into blocks) into a bounding rectangle.
// If no entity has any coordinate, it returns cadgeom.DefaultViewport and false.
func Extent(entities []Entity) (cadgeom.Viewport, bool) {
	v := cadgeom.EmptyViewport()
	for _, e := range entities {
		for _, p := range anchors(e) {
			v.Extend(p)
		}
	}
	if v.IsEmpty() {
		return cadgeom.DefaultViewport, false
	}
	return v, true
}

// ComputeViewport returns the viewport of the drawing made of `entities`.
// The geometry of block instances is not included, so that instanced
// content may lie outside of the returned rectangle.
func ComputeViewport(entities []Entity) cadgeom.Viewport {
	v, _ := Extent(entities)
	return v
}
