package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestCircuitPath_FiveChainedSegments(t *testing.T) {
	cases := []struct{ a, b Point }{
		{Point{120, 80}, Point{400, 300}},
		{Point{700, 500}, Point{400, 300}},
		{Point{400, 300}, Point{400, 300}},
		{Point{-10, 50}, Point{30, -70}},
	}
	for _, c := range cases {
		p := CircuitPath(c.a, c.b)
		if len(p) != 5 {
			t.Fatalf("CircuitPath(%v, %v) has %d segments, want 5", c.a, c.b, len(p))
		}
		if p[0].Start != c.a {
			t.Errorf("first point = %v, want %v", p[0].Start, c.a)
		}
		if p[4].End != c.b {
			t.Errorf("last point = %v, want %v", p[4].End, c.b)
		}
		for i := 1; i < len(p); i++ {
			if p[i].Start != p[i-1].End {
				t.Errorf("segment %d starts at %v, previous ends at %v", i, p[i].Start, p[i-1].End)
			}
		}
	}
}

func TestCircuitPath_Fractions(t *testing.T) {
	p := CircuitPath(Point{0, 0}, Point{100, 200})
	want := []Point{{30, 0}, {30, 120}, {79, 120}, {79, 200}, {100, 200}}
	for i, w := range want {
		if !near(p[i].End.X, w.X) || !near(p[i].End.Y, w.Y) {
			t.Errorf("segment %d ends at %v, want %v", i, p[i].End, w)
		}
	}
	// Runs alternate horizontal / vertical.
	for i, s := range p {
		horizontal := s.Start.Y == s.End.Y
		if i%2 == 0 && !horizontal {
			t.Errorf("segment %d should be horizontal: %v", i, s)
		}
		if i%2 == 1 && s.Start.X != s.End.X {
			t.Errorf("segment %d should be vertical: %v", i, s)
		}
	}
}

func TestReverse_Twice(t *testing.T) {
	p := CircuitPath(Point{12, 34}, Point{400, 300})
	rr := Reverse(Reverse(p))
	if len(rr) != len(p) {
		t.Fatalf("len = %d, want %d", len(rr), len(p))
	}
	for i := range p {
		if rr[i] != p[i] {
			t.Errorf("segment %d = %v, want %v", i, rr[i], p[i])
		}
	}
}

func TestReverse_RetracesPath(t *testing.T) {
	p := CircuitPath(Point{12, 34}, Point{400, 300})
	r := Reverse(p)
	first, _ := r.First()
	last, _ := r.Last()
	if first != (Point{400, 300}) || last != (Point{12, 34}) {
		t.Errorf("reversed path runs %v -> %v", first, last)
	}
	if !near(r.Length(), p.Length()) {
		t.Errorf("reversed length %f, want %f", r.Length(), p.Length())
	}
	// The reverse must not alias the original.
	r[0].Start = Point{-1, -1}
	if p[4].End == (Point{-1, -1}) {
		t.Error("Reverse shares storage with its input")
	}
}

func TestSampleAt_Endpoints(t *testing.T) {
	p := CircuitPath(Point{120, 80}, Point{400, 300})
	s0, ok := SampleAt(p, 0)
	if !ok || s0.Point() != (Point{120, 80}) {
		t.Errorf("SampleAt(0) = %v, %v; want (120,80)", s0, ok)
	}
	s1, ok := SampleAt(p, 1)
	if !ok || s1.Point() != (Point{400, 300}) {
		t.Errorf("SampleAt(1) = %v, %v; want (400,300)", s1, ok)
	}
	s2, ok := SampleAt(p, 1.7)
	if !ok || s2.Point() != (Point{400, 300}) {
		t.Errorf("SampleAt(1.7) = %v, %v; want clamp to (400,300)", s2, ok)
	}
}

func TestSampleAt_Midpoint(t *testing.T) {
	p := Path{
		{Start: Point{0, 0}, End: Point{10, 0}},
		{Start: Point{10, 0}, End: Point{10, 10}},
	}
	s, ok := SampleAt(p, 0.75)
	if !ok {
		t.Fatal("SampleAt returned !ok")
	}
	if !near(s.X, 10) || !near(s.Y, 5) {
		t.Errorf("SampleAt(0.75) = (%f,%f), want (10,5)", s.X, s.Y)
	}
	if !near(s.Heading, math.Pi/2) {
		t.Errorf("heading = %f, want pi/2", s.Heading)
	}
}

func TestSampleAt_Empty(t *testing.T) {
	if _, ok := SampleAt(nil, 0.5); ok {
		t.Error("SampleAt(nil) reported ok")
	}
	degenerate := CircuitPath(Point{5, 5}, Point{5, 5})
	if _, ok := SampleAt(degenerate, 0.5); ok {
		t.Error("SampleAt(zero-length path) reported ok")
	}
}

func TestConcat_RoundTrip(t *testing.T) {
	there := CircuitPath(Point{120, 80}, Point{400, 300})
	trip := Concat(there, Reverse(there))
	if len(trip) != 10 {
		t.Fatalf("len = %d, want 10", len(trip))
	}
	first, _ := trip.First()
	last, _ := trip.Last()
	if first != last {
		t.Errorf("round trip starts %v ends %v", first, last)
	}
	mid, _ := SampleAt(trip, 0.5)
	if !near(mid.X, 400) || !near(mid.Y, 300) {
		t.Errorf("round trip midpoint = (%f,%f), want contract (400,300)", mid.X, mid.Y)
	}
}
