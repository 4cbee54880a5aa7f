package octpoly

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBinaryRoundTrip(t *testing.T) {
	p := NewPolygon(capContour(0.8, 0.2, 0.6, 18, 48))
	p.Union(NewPolygon(capContour(-0.3, 0.9, 0.2, 12, 48)))

	data, err := p.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error: %v", err)
	}

	var q Polygon
	if err := q.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary() error: %v", err)
	}

	if !reflect.DeepEqual(p.sides, q.sides) {
		t.Error("face contours changed across the round trip")
	}
	// Caches are rebuilt, not deserialized; the same sides must produce the
	// same derived state.
	if !reflect.DeepEqual(p.fill, q.fill) {
		t.Error("rebuilt fill cache differs")
	}
	if math.Abs(p.Area()-q.Area()) > 1e-12 {
		t.Errorf("area changed across the round trip: %g vs %g", p.Area(), q.Area())
	}
	if !vec3ApproxEqual(p.capN, q.capN, 1e-15) || math.Abs(p.capD-q.capD) > 1e-15 {
		t.Error("rebuilt bounding cap differs")
	}
}

func TestBinaryRoundTripEmpty(t *testing.T) {
	p := NewPolygon()
	data, err := p.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error: %v", err)
	}
	if len(data) != 8*4 {
		t.Errorf("empty polygon serialized to %d bytes, want 32 (eight zero counts)", len(data))
	}
	var q Polygon
	if err := q.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary() error: %v", err)
	}
	if !q.IsEmpty() {
		t.Error("deserialized empty polygon is not empty")
	}
}

func TestUnmarshalCorrupt(t *testing.T) {
	var q Polygon
	if err := q.UnmarshalBinary([]byte{0, 0, 0}); err == nil {
		t.Error("truncated stream accepted")
	}
	if err := q.UnmarshalBinary([]byte{0xff, 0xff, 0xff, 0xff}); err == nil {
		t.Error("absurd contour count accepted")
	}
	p := NewPolygon(capContour(0, 0, 1, 10, 16))
	data, err := p.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error: %v", err)
	}
	if err := q.UnmarshalBinary(append(data, 0)); err == nil {
		t.Error("trailing garbage accepted")
	}
}

func TestToJSON(t *testing.T) {
	p := NewPolygon(capContour(0, 0, 1, 15, 24))
	var faces [][][]any
	if err := json.Unmarshal([]byte(p.ToJSON()), &faces); err != nil {
		t.Fatalf("ToJSON() is not valid JSON: %v", err)
	}
	if len(faces) != 8 {
		t.Fatalf("got %d face arrays, want 8", len(faces))
	}
	seen := 0
	for fi, face := range faces {
		for _, contour := range face {
			for _, triple := range contour {
				entry, ok := triple.([]any)
				if !ok || len(entry) != 3 {
					t.Fatalf("face %d: entry %v is not an [ra, dec, flag] triple", fi, triple)
				}
				ra, ok1 := entry[0].(float64)
				dec, ok2 := entry[1].(float64)
				_, ok3 := entry[2].(bool)
				if !ok1 || !ok2 || !ok3 {
					t.Fatalf("face %d: entry %v has wrong field types", fi, entry)
				}
				if ra < -180 || ra > 360 || dec < -90 || dec > 90 {
					t.Errorf("face %d: angles out of range in %v", fi, entry)
				}
				// A 15 degree polar cap only produces vertices north of 74.
				if dec < 74 {
					t.Errorf("face %d: vertex at dec %g is off the polar cap", fi, dec)
				}
				seen++
			}
		}
	}
	if seen == 0 {
		t.Error("no vertices in the JSON dump")
	}
}

func TestPathContour(t *testing.T) {
	// An open path flags its endpoints as non-edges: the implicit closing
	// segment must not show up in the outline.
	pts := capContour(0, 0, 1, 20, 12)
	closed := NewPolygonFromPath(pts, true)
	open := NewPolygonFromPath(pts, false)

	if math.Abs(closed.Area()-open.Area()) > 1e-9 {
		t.Errorf("open/closed paths enclose different areas: %g vs %g", closed.Area(), open.Area())
	}
	if len(open.Outline()) >= len(closed.Outline()) {
		t.Errorf("open path outline (%d segments) should be shorter than closed (%d)",
			len(open.Outline())/2, len(closed.Outline())/2)
	}
}

func TestCopyIsolation(t *testing.T) {
	p := NewPolygon(capContour(0, 0, 1, 20, 32))
	q := p.Copy()
	q.Subtract(NewPolygon(capContour(0, 0, 1, 10, 32)))
	if math.Abs(p.Area()-refArea(capContour(0, 0, 1, 20, 32))) > areaTol {
		t.Error("mutating a copy changed the original")
	}
	if q.ContainsPoint(mgl64.Vec3{0, 0, 1}) {
		t.Error("copy did not pick up the subtraction")
	}
}
