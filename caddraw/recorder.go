package caddraw

import "github.com/benoitkugler/cadsvg/cadgeom"

// Op identifies a Surface method.
type Op uint8

const (
	OpMarker Op = iota
	OpLine
	OpPolyline
	OpPolygon
	OpCircle
	OpArc
	OpText
)

func (op Op) String() string {
	switch op {
	case OpMarker:
		return "Marker"
	case OpLine:
		return "Line"
	case OpPolyline:
		return "Polyline"
	case OpPolygon:
		return "Polygon"
	case OpCircle:
		return "Circle"
	case OpArc:
		return "Arc"
	case OpText:
		return "Text"
	default:
		return "<unknown Op>"
	}
}

// Instruction is one recorded call to a Surface.
// Only the fields relevant for Op are set.
type Instruction struct {
	Op     Op
	Points []cadgeom.Point // Marker, Line (2 points), Polyline, Polygon, Circle (center)
	Radius float64         // Circle
	Arc    ArcPath
	Text   TextRun
}

// Recorder is a Surface storing the primitives it receives,
// to be replayed later on another Surface.
// The zero value is ready to use.
type Recorder struct {
	instructions []Instruction
}

func (rec *Recorder) push(ins Instruction) { rec.instructions = append(rec.instructions, ins) }

func (rec *Recorder) Marker(center cadgeom.Point) {
	rec.push(Instruction{Op: OpMarker, Points: []cadgeom.Point{center}})
}

func (rec *Recorder) Line(a, b cadgeom.Point) {
	rec.push(Instruction{Op: OpLine, Points: []cadgeom.Point{a, b}})
}

func (rec *Recorder) Polyline(points []cadgeom.Point) {
	rec.push(Instruction{Op: OpPolyline, Points: append([]cadgeom.Point(nil), points...)})
}

func (rec *Recorder) Polygon(points []cadgeom.Point) {
	rec.push(Instruction{Op: OpPolygon, Points: append([]cadgeom.Point(nil), points...)})
}

func (rec *Recorder) Circle(center cadgeom.Point, radius float64) {
	rec.push(Instruction{Op: OpCircle, Points: []cadgeom.Point{center}, Radius: radius})
}

func (rec *Recorder) Arc(arc ArcPath) { rec.push(Instruction{Op: OpArc, Arc: arc}) }

func (rec *Recorder) Text(run TextRun) { rec.push(Instruction{Op: OpText, Text: run}) }

// Finish returns the instructions recorded so far and resets the recorder.
func (rec *Recorder) Finish() *Recording {
	out := &Recording{Instructions: rec.instructions}
	rec.instructions = nil
	return out
}

// Recording is an immutable sequence of primitives, in drawing order.
type Recording struct {
	Instructions []Instruction
}

// Count returns the number of instructions with the given Op.
func (r *Recording) Count(op Op) int {
	n := 0
	for _, ins := range r.Instructions {
		if ins.Op == op {
			n++
		}
	}
	return n
}

// Playback replays the recording on `s`, in order.
func (r *Recording) Playback(s Surface) {
	for _, ins := range r.Instructions {
		switch ins.Op {
		case OpMarker:
			s.Marker(ins.Points[0])
		case OpLine:
			s.Line(ins.Points[0], ins.Points[1])
		case OpPolyline:
			s.Polyline(ins.Points)
		case OpPolygon:
			s.Polygon(ins.Points)
		case OpCircle:
			s.Circle(ins.Points[0], ins.Radius)
		case OpArc:
			s.Arc(ins.Arc)
		case OpText:
			s.Text(ins.Text)
		}
	}
}
