package cadmodel

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/benoitkugler/cadsvg/cadgeom"
)

func readFixture(t *testing.T) *Document {
	t.Helper()
	doc, err := ReadFile("testdata/drawing.json", DecodeOptions{})
	if err != nil {
		t.Fatalf("can't read fixture: %s", err)
	}
	return doc
}

func TestReadFixture(t *testing.T) {
	doc := readFixture(t)

	if got := doc.Blocks.Names(); !reflect.DeepEqual(got, []string{"LAMP", "POLE", "SPARE"}) {
		t.Fatalf("unexpected blocks %v", got)
	}
	if len(doc.Entities) != 9 {
		t.Fatalf("expected 9 top-level entities, got %d", len(doc.Entities))
	}

	lamp, _ := doc.Blocks.Lookup("LAMP")
	attdef, ok := lamp[2].(AttributeDefinition)
	if !ok {
		t.Fatalf("expected an attribute definition, got %T", lamp[2])
	}
	if attdef.Height != 1.8 || attdef.Tag != "NUMBER" || attdef.Text != "?" {
		t.Errorf("unexpected attribute definition %+v", attdef)
	}

	pole, _ := doc.Blocks.Lookup("POLE")
	if pl, ok := pole[0].(Polyline); !ok || !pl.IsClosed || len(pl.Coordinates) != 4 {
		t.Errorf("LWPOLYLINE not decoded as a closed polyline: %#v", pole[0])
	}

	if p := doc.Entities[0].(Point); p.Coordinates != cadgeom.Pt(10, 20) {
		t.Errorf("unexpected point %v", p)
	}
	text := doc.Entities[6].(Text)
	if text.Height != 2.5 || text.Rotation != 15 || text.Text != "Kruispunt" {
		t.Errorf("unexpected text %+v", text)
	}
	ins := doc.Entities[7].(Insert)
	if ins.Name != "POLE" || ins.XScale != 2 || ins.Rotation != 45 || len(ins.Attribs) != 1 {
		t.Errorf("unexpected insert %+v", ins)
	}
	if a, ok := ins.Attrib("NUMBER"); !ok || a.Text != "K12" {
		t.Errorf("unexpected attrib %+v", a)
	}
	if u, ok := doc.Entities[8].(Unknown); !ok || u.Kind() != "HATCH" {
		t.Errorf("expected an unknown HATCH, got %#v", doc.Entities[8])
	}
}

func TestDefaults(t *testing.T) {
	items, err := Decode(strings.NewReader(`[
		{"type": "insert", "name": "B", "coordinates": [1, 2]},
		{"type": "text", "text": "t", "coordinates": {"x": 3, "y": 4}}
	]`), DecodeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if ins := items[0].(Insert); !reflect.DeepEqual(ins, NewInsert("B", cadgeom.Pt(1, 2))) {
		t.Errorf("unexpected defaults %+v", ins)
	}
	if text := items[1].(Text); !reflect.DeepEqual(text, NewText(cadgeom.Pt(3, 4), "t")) {
		t.Errorf("unexpected defaults %+v", text)
	}
}

func TestMalformed(t *testing.T) {
	for _, test := range []struct {
		input string
		field string
	}{
		{`[{"type": "LINE", "coordinates": [[0, 0]]}]`, "coordinates"},
		{`[{"type": "LINE"}]`, "coordinates"},
		{`[{"type": "POINT", "coordinates": "0,0"}]`, "coordinates"},
		{`[{"type": "POINT", "coordinates": [0, null]}]`, "coordinates"},
		{`[{"type": "CIRCLE", "coordinates": [0, 0]}]`, "radius"},
		{`[{"type": "ARC", "coordinates": [0, 0], "radius": 1, "start_angle": 0}]`, "end_angle"},
		{`[{"type": "ARC", "coordinates": [0, 0], "radius": "wide", "start_angle": 0, "end_angle": 1}]`, "radius"},
		{`[{"type": "TEXT", "coordinates": [0, 0]}]`, "text"},
		{`[{"type": "INSERT", "coordinates": [0, 0]}]`, "name"},
		{`[{"type": "SOLID", "coordinates": [[0, 0], [1]]}]`, "coordinates[1]"},
		{`[{"type": "POLYLINE", "coordinates": [[0, 0]], "is_closed": "maybe"}]`, "is_closed"},
		{`[{"coordinates": [0, 0]}]`, "type"},
		{`[{"type": "INSERT", "name": "B", "coordinates": [0, 0], "attribs": [{"type": "ATTRIB", "coordinates": [0, 0]}]}]`, "tag"},
		{`[{"type": "POINT", "coordinates": ["NaN", 0]}, {"type": "POINT", "coordinates": [1, 1]}]`, "coordinates"},
		{`[{"type": "CIRCLE", "coordinates": [0, 0], "radius": "Inf"}]`, "radius"},
		{`[{"type": "SOLID", "coordinates": [[0, 0], [" -Inf ", 1]]}]`, "coordinates[1]"},
		{`[{"type": "TEXT", "coordinates": [0, 0], "text": "a", "height": "1e400"}]`, "height"},
	} {
		_, err := Decode(strings.NewReader(test.input), DecodeOptions{})
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: expected a malformed input error, got %v", test.input, err)
			continue
		}
		var me *MalformedInputError
		if !errors.As(err, &me) || me.Field != test.field {
			t.Errorf("%s: expected an error on field %s, got %v", test.input, test.field, err)
		}
	}

	_, err := Decode(strings.NewReader(`[{"type": "BLOCK", "name": "A", "entities": [{"type": "BLOCK", "name": "B"}]}]`), DecodeOptions{})
	if !errors.Is(err, errNestedBlock) {
		t.Errorf("expected a nested block error, got %v", err)
	}
}

func TestMalformedMessage(t *testing.T) {
	for _, test := range []struct {
		input, message string
	}{
		{`[{"coordinates": [0, 0]}]`, `cadmodel: entity [0]: field "type": `},
		{`[{"type": "CIRCLE", "coordinates": [0, 0]}]`, `cadmodel: CIRCLE entity [0]: field "radius": `},
		{`[1]`, `cadmodel: entity [0]: expected an object`},
	} {
		_, err := Decode(strings.NewReader(test.input), DecodeOptions{})
		if err == nil || !strings.HasPrefix(err.Error(), test.message) {
			t.Errorf("%s: expected message starting with %q, got %v", test.input, test.message, err)
		}
		if err != nil && strings.Contains(err.Error(), "  ") {
			t.Errorf("%s: double space in %q", test.input, err)
		}
	}
}

func TestKindKey(t *testing.T) {
	input := `[
		{"kind": "block", "name": "B", "entities": [{"kind": "Point", "coordinates": [1, 1]}]},
		{"type": "INSERT", "name": "B", "coordinates": [0, 0]},
		{"type": "LINE", "kind": "block", "coordinates": [[0, 0], [1, 1]]}
	]`
	doc, err := ReadDocument(strings.NewReader(input), DecodeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	block, ok := doc.Blocks.Lookup("B")
	if !ok || len(block) != 1 {
		t.Fatalf("unexpected block %v", block)
	}
	if _, ok := block[0].(Point); !ok {
		t.Errorf("unexpected block content %T", block[0])
	}
	if len(doc.Entities) != 2 {
		t.Fatalf("unexpected entities %v", doc.Entities)
	}
	// type has precedence over kind
	if _, ok := doc.Entities[1].(Line); !ok {
		t.Errorf("unexpected entity %T", doc.Entities[1])
	}
}

func TestEmptyGeometryIsNotMalformed(t *testing.T) {
	items, err := Decode(strings.NewReader(`[{"type": "POLYLINE", "coordinates": []}, {"type": "SOLID", "coordinates": []}]`), DecodeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("unexpected items %v", items)
	}
}

func TestJSONLines(t *testing.T) {
	input := `{"type": "BLOCK", "name": "B", "entities": [{"type": "POINT", "coordinates": [1, 1]}]}
{"type": "INSERT", "name": "B", "coordinates": [0, 0]}

{"type": "POINT", "coordinates": [2, 2]}
`
	doc, err := ReadDocument(strings.NewReader(input), DecodeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if doc.Blocks.Len() != 1 || len(doc.Entities) != 2 {
		t.Errorf("unexpected document %+v", doc)
	}

	items, err := Decode(strings.NewReader("  \n"), DecodeOptions{})
	if err != nil || len(items) != 0 {
		t.Errorf("empty input: %v %v", items, err)
	}
}

func TestCharset(t *testing.T) {
	// "Café" in windows-1252
	input := []byte("[{\"type\": \"TEXT\", \"coordinates\": [0, 0], \"text\": \"Caf\xe9\"}]")
	items, err := Decode(bytes.NewReader(input), DecodeOptions{Charset: "windows-1252"})
	if err != nil {
		t.Fatal(err)
	}
	if got := items[0].(Text).Text; got != "Café" {
		t.Errorf("unexpected text %q", got)
	}

	if _, err := Decode(bytes.NewReader(input), DecodeOptions{Charset: "no-such-charset"}); err == nil {
		t.Error("expected an error for an unknown charset")
	}
}

func TestPartitionLastWins(t *testing.T) {
	doc := Partition([]Entity{
		Block{Name: "A", Entities: []Entity{Point{}}},
		Line{},
		Block{Name: "B"},
		Block{Name: "A", Entities: []Entity{Circle{Radius: 1}}},
	})
	ents, ok := doc.Blocks.Lookup("A")
	if !ok || len(ents) != 1 || ents[0].Kind() != KindCircle {
		t.Errorf("expected the last definition of A, got %v", ents)
	}
	if got := doc.Blocks.Names(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("unexpected names %v", got)
	}
	if len(doc.Entities) != 1 {
		t.Errorf("unexpected top-level entities %v", doc.Entities)
	}
	if _, ok := doc.Blocks.Lookup("C"); ok {
		t.Error("unexpected block C")
	}
}

func TestViewport(t *testing.T) {
	if v := ComputeViewport(nil); v != cadgeom.DefaultViewport {
		t.Errorf("empty input: %v", v)
	}
	if v, ok := Extent([]Entity{NewInsert("B", cadgeom.Pt(500, 500)), Unknown{Type: "HATCH"}}); ok || v != (cadgeom.Viewport{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}) {
		t.Errorf("inserts should not contribute: %v", v)
	}

	doc := readFixture(t)
	want := cadgeom.Viewport{MinX: 0, MinY: -4, MaxX: 100, MaxY: 50}
	if v := ComputeViewport(doc.Entities); v != want {
		t.Errorf("expected %v, got %v", want, v)
	}

	// order independence
	n := len(doc.Entities)
	reversed := make([]Entity, n)
	for i, e := range doc.Entities {
		reversed[n-1-i] = e
	}
	if v := ComputeViewport(reversed); v != want {
		t.Errorf("reversed input: expected %v, got %v", want, v)
	}
	rotated := append(append([]Entity(nil), doc.Entities[4:]...), doc.Entities[:4]...)
	if v := ComputeViewport(rotated); v != want {
		t.Errorf("rotated input: expected %v, got %v", want, v)
	}

	// circles contribute their center only
	if v := ComputeViewport([]Entity{Circle{Coordinates: cadgeom.Pt(1, 2), Radius: 50}}); v != (cadgeom.Viewport{MinX: 1, MinY: 2, MaxX: 1, MaxY: 2}) {
		t.Errorf("unexpected circle viewport %v", v)
	}
}

func TestBlockDiagnostics(t *testing.T) {
	doc := readFixture(t)
	if got := UnusedBlocks(doc); !reflect.DeepEqual(got, []string{"SPARE"}) {
		t.Errorf("unexpected unused blocks %v", got)
	}
	if got := EmptyBlocks(doc); len(got) != 0 {
		t.Errorf("unexpected empty blocks %v", got)
	}

	doc = Partition([]Entity{Block{Name: "Z"}, Block{Name: "A"}, Block{Name: "LOOP", Entities: []Entity{NewInsert("LOOP", cadgeom.Point{})}}})
	if got := EmptyBlocks(doc); !reflect.DeepEqual(got, []string{"A", "Z"}) {
		t.Errorf("unexpected empty blocks %v", got)
	}
	if got := UnusedBlocks(doc); !reflect.DeepEqual(got, []string{"A", "LOOP", "Z"}) {
		t.Errorf("unexpected unused blocks %v", got)
	}
}

func TestCountKinds(t *testing.T) {
	counts := CountKinds(readFixture(t))
	want := map[Kind]int{
		KindCircle: 2, KindLine: 2, KindAttDef: 1, KindPolyline: 2, KindInsert: 2,
		KindPoint: 2, KindSolid: 1, KindArc: 1, KindText: 1, "HATCH": 1,
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("expected %v, got %v", want, counts)
	}
}

func TestWriteJSONL(t *testing.T) {
	doc := readFixture(t)
	var buf bytes.Buffer
	if err := WriteJSONL(&buf, doc); err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 3+9 {
		t.Errorf("expected 12 lines, got %d", lines)
	}
	back, err := ReadDocument(&buf, DecodeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, doc) {
		t.Errorf("normalized document differs:\n%+v\n%+v", back, doc)
	}
}
