package cadmodel

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/benoitkugler/cadsvg/cadgeom"
	"golang.org/x/net/html/charset"
)

// ErrMalformed is matched (with errors.Is) by every MalformedInputError.
var ErrMalformed = errors.New("malformed entity")

var (
	errMissing     = errors.New("missing required field")
	errNestedBlock = errors.New("block definitions can't be nested")
)

// MalformedInputError is returned when an entity lacks a field required
// by its own kind, or when a field has an unsupported shape.
type MalformedInputError struct {
	Path  string // location of the entity in the input, like [3].entities[0]
	Type  string
	Field string
	Err   error
}

func (e *MalformedInputError) Error() string {
	entity := "entity " + e.Path
	if e.Type != "" {
		entity = e.Type + " " + entity
	}
	if e.Field == "" {
		return fmt.Sprintf("cadmodel: %s: %v", entity, e.Err)
	}
	return fmt.Sprintf("cadmodel: %s: field %q: %v", entity, e.Field, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

func (e *MalformedInputError) Is(target error) bool { return target == ErrMalformed }

// DecodeOptions tunes the input decoding. The zero value is valid.
type DecodeOptions struct {
	// Charset is the label of the input encoding (like "windows-1252").
	// Empty means UTF-8.
	Charset string
}

// Decode reads the item list produced by the drawing extractor, either
// as a JSON array or as a stream of JSON objects (one per line).
func Decode(r io.Reader, opts DecodeOptions) ([]Entity, error) {
	if opts.Charset != "" {
		var err error
		r, err = charset.NewReaderLabel(opts.Charset, r)
		if err != nil {
			return nil, fmt.Errorf("cadmodel: input charset: %w", err)
		}
	}
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	dec := json.NewDecoder(br)
	if first == '[' {
		if err := dec.Decode(&raws); err != nil {
			return nil, fmt.Errorf("cadmodel: invalid json input: %w", err)
		}
	} else {
		for {
			var raw json.RawMessage
			err := dec.Decode(&raw)
			if err == io.EOF {
				break
			} else if err != nil {
				return nil, fmt.Errorf("cadmodel: invalid json line %d: %w", len(raws)+1, err)
			}
			raws = append(raws, raw)
		}
	}

	items := make([]Entity, 0, len(raws))
	for i, raw := range raws {
		item, err := decodeItem(raw, fmt.Sprintf("[%d]", i), true)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ReadDocument decodes and partitions a drawing.
func ReadDocument(r io.Reader, opts DecodeOptions) (*Document, error) {
	items, err := Decode(r, opts)
	if err != nil {
		return nil, err
	}
	return Partition(items), nil
}

// ReadFile is a convenience wrapper around ReadDocument.
func ReadFile(path string, opts DecodeOptions) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDocument(f, opts)
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		c, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return c, br.UnreadByte()
	}
}

// fieldReader extracts typed fields from one JSON object,
// remembering the first error.
type fieldReader struct {
	fields map[string]json.RawMessage
	path   string
	typ    string
	err    error
}

func (fr *fieldReader) fail(field string, err error) {
	if fr.err == nil {
		fr.err = &MalformedInputError{Path: fr.path, Type: fr.typ, Field: field, Err: err}
	}
}

// raw returns the value of `key`, treating null as absent.
func (fr *fieldReader) raw(key string) (json.RawMessage, bool) {
	v, ok := fr.fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	return v, true
}

func (fr *fieldReader) number(key string, required bool, def float64) float64 {
	v, ok := fr.raw(key)
	if !ok {
		if required {
			fr.fail(key, errMissing)
		}
		return def
	}
	f, err := parseScalar(v)
	if err != nil {
		fr.fail(key, err)
	}
	return f
}

func (fr *fieldReader) str(key string, required bool) string {
	v, ok := fr.raw(key)
	if !ok {
		if required {
			fr.fail(key, errMissing)
		}
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String()
	}
	fr.fail(key, fmt.Errorf("expected a string, got %s", v))
	return ""
}

func (fr *fieldReader) boolean(key string) bool {
	v, ok := fr.raw(key)
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}
	fr.fail(key, fmt.Errorf("expected a boolean, got %s", v))
	return false
}

func (fr *fieldReader) point(key string, required bool) cadgeom.Point {
	v, ok := fr.raw(key)
	if !ok {
		if required {
			fr.fail(key, errMissing)
		}
		return cadgeom.Point{}
	}
	p, err := parsePoint(v)
	if err != nil {
		fr.fail(key, err)
	}
	return p
}

func (fr *fieldReader) points(key string) []cadgeom.Point {
	v, ok := fr.raw(key)
	if !ok {
		fr.fail(key, errMissing)
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(v, &list); err != nil {
		fr.fail(key, fmt.Errorf("expected a list of points, got %s", v))
		return nil
	}
	out := make([]cadgeom.Point, len(list))
	for i, item := range list {
		p, err := parsePoint(item)
		if err != nil {
			fr.fail(fmt.Sprintf("%s[%d]", key, i), err)
			return nil
		}
		out[i] = p
	}
	return out
}

func (fr *fieldReader) list(key string) []json.RawMessage {
	v, ok := fr.raw(key)
	if !ok {
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(v, &list); err != nil {
		fr.fail(key, fmt.Errorf("expected a list, got %s", v))
	}
	return list
}

// parseScalar accepts a JSON number, or a string holding one
// (the extractor stringifies some numeric attributes).
func parseScalar(v json.RawMessage) (float64, error) {
	if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return 0, errors.New("expected a number, got null")
	}
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return 0, fmt.Errorf("expected a number, got %s", v)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("expected a finite number, got %q", s)
	}
	return f, nil
}

// parsePoint accepts [x, y], [x, y, z] or {"x": x, "y": y}.
// The Z component is dropped.
func parsePoint(v json.RawMessage) (cadgeom.Point, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(v, &list); err == nil {
		if len(list) != 2 && len(list) != 3 {
			return cadgeom.Point{}, fmt.Errorf("expected 2 or 3 coordinates, got %d", len(list))
		}
		x, err := parseScalar(list[0])
		if err != nil {
			return cadgeom.Point{}, err
		}
		y, err := parseScalar(list[1])
		if err != nil {
			return cadgeom.Point{}, err
		}
		return cadgeom.Point{X: x, Y: y}, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(v, &obj); err == nil {
		xv, okX := obj["x"]
		yv, okY := obj["y"]
		if !okX || !okY {
			return cadgeom.Point{}, fmt.Errorf("expected x and y keys, got %s", v)
		}
		x, err := parseScalar(xv)
		if err != nil {
			return cadgeom.Point{}, err
		}
		y, err := parseScalar(yv)
		if err != nil {
			return cadgeom.Point{}, err
		}
		return cadgeom.Point{X: x, Y: y}, nil
	}
	return cadgeom.Point{}, fmt.Errorf("expected a point, got %s", v)
}

// decodeItem converts one record. Blocks are only accepted
// at the top level.
func decodeItem(raw json.RawMessage, path string, topLevel bool) (Entity, error) {
	fr := fieldReader{path: path}
	if err := json.Unmarshal(raw, &fr.fields); err != nil {
		return nil, &MalformedInputError{Path: path, Err: fmt.Errorf("expected an object: %w", err)}
	}
	typeKey := "type"
	if _, ok := fr.raw(typeKey); !ok {
		if _, ok := fr.raw("kind"); ok {
			typeKey = "kind"
		}
	}
	fr.typ = fr.str(typeKey, true)
	if fr.err != nil {
		return nil, fr.err
	}
	kind := Kind(strings.ToUpper(strings.TrimSpace(fr.typ)))

	var e Entity
	switch kind {
	case KindPoint:
		e = Point{Coordinates: fr.point("coordinates", true)}
	case KindLine:
		pts := fr.points("coordinates")
		if fr.err == nil && len(pts) != 2 {
			fr.fail("coordinates", fmt.Errorf("expected 2 points, got %d", len(pts)))
		}
		var line Line
		copy(line.Coordinates[:], pts)
		e = line
	case KindPolyline, kindLWPolyline:
		e = Polyline{Coordinates: fr.points("coordinates"), IsClosed: fr.boolean("is_closed")}
	case KindSolid:
		e = Solid{Coordinates: fr.points("coordinates")}
	case KindCircle:
		e = Circle{
			Coordinates: fr.point("coordinates", true),
			Radius:      fr.number("radius", true, 0),
		}
	case KindArc:
		e = Arc{
			Coordinates: fr.point("coordinates", true),
			Radius:      fr.number("radius", true, 0),
			StartAngle:  fr.number("start_angle", true, 0),
			EndAngle:    fr.number("end_angle", true, 0),
		}
	case KindText:
		e = Text{
			Coordinates: fr.point("coordinates", true),
			Text:        fr.str("text", true),
			Height:      fr.number("height", false, DefaultTextHeight),
			Rotation:    fr.number("rotation", false, DefaultRotation),
		}
	case KindInsert:
		ins := Insert{
			Coordinates: fr.point("coordinates", true),
			Name:        fr.str("name", true),
			XScale:      fr.number("xscale", false, DefaultScale),
			YScale:      fr.number("yscale", false, DefaultScale),
			Rotation:    fr.number("rotation", false, DefaultRotation),
		}
		for i, rawAttrib := range fr.list("attribs") {
			a, err := decodeItem(rawAttrib, fmt.Sprintf("%s.attribs[%d]", path, i), false)
			if err != nil {
				return nil, err
			}
			attrib, ok := a.(Attrib)
			if !ok {
				return nil, &MalformedInputError{Path: path, Type: fr.typ, Field: "attribs",
					Err: fmt.Errorf("expected ATTRIB, got %s", a.Kind())}
			}
			ins.Attribs = append(ins.Attribs, attrib)
		}
		e = ins
	case KindAttDef:
		e = AttributeDefinition{
			Tag:         fr.str("tag", true),
			Coordinates: fr.point("coordinates", false),
			Height:      fr.number("height", false, DefaultTextHeight),
			Text:        fr.str("text", false),
		}
	case KindAttrib:
		e = Attrib{
			Tag:         fr.str("tag", true),
			Coordinates: fr.point("coordinates", true),
			Rotation:    fr.number("rotation", false, DefaultRotation),
			Text:        fr.str("text", false),
		}
	case KindBlock:
		if !topLevel {
			return nil, &MalformedInputError{Path: path, Type: fr.typ, Err: errNestedBlock}
		}
		name := fr.str("block_name", false)
		if name == "" {
			name = fr.str("name", true)
		}
		block := Block{Name: name}
		for i, rawChild := range fr.list("entities") {
			child, err := decodeItem(rawChild, fmt.Sprintf("%s.entities[%d]", path, i), false)
			if err != nil {
				return nil, err
			}
			block.Entities = append(block.Entities, child)
		}
		e = block
	default:
		e = Unknown{Type: string(kind)}
	}
	if fr.err != nil {
		return nil, fr.err
	}
	return e, nil
}
