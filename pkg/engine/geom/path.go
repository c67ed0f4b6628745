// Package geom provides the circuit-trace geometry used to connect map nodes:
// orthogonal multi-segment paths and arc-length sampling along them.
package geom

import "math"

// Point is a position on the canvas.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Segment is a straight piece of a path.
type Segment struct {
	Start Point
	End   Point
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return Dist(s.Start, s.End)
}

// Heading returns the direction of travel in radians.
func (s Segment) Heading() float64 {
	return math.Atan2(s.End.Y-s.Start.Y, s.End.X-s.Start.X)
}

// Path is an ordered chain of segments.
type Path []Segment

// Length returns the sum of all segment lengths.
func (p Path) Length() float64 {
	total := 0.0
	for _, s := range p {
		total += s.Length()
	}
	return total
}

// First returns the starting point of the path.
func (p Path) First() (Point, bool) {
	if len(p) == 0 {
		return Point{}, false
	}
	return p[0].Start, true
}

// Last returns the final point of the path.
func (p Path) Last() (Point, bool) {
	if len(p) == 0 {
		return Point{}, false
	}
	return p[len(p)-1].End, true
}

// Circuit fractions. Connection lines and pulse paths are both built from
// these, so changing them moves every pulse off its drawn trace.
const (
	circuitFirstX  = 0.3
	circuitFirstY  = 0.6
	circuitSecondX = 0.7
)

// CircuitPath returns the fixed five-segment orthogonal route from a to b:
// a horizontal run, a vertical run, a second horizontal run, a vertical run
// to b's row and a final horizontal run to b.
func CircuitPath(a, b Point) Path {
	step1X := a.X + (b.X-a.X)*circuitFirstX
	step2Y := a.Y + (b.Y-a.Y)*circuitFirstY
	step3X := step1X + (b.X-step1X)*circuitSecondX

	return Path{
		{Start: a, End: Point{step1X, a.Y}},
		{Start: Point{step1X, a.Y}, End: Point{step1X, step2Y}},
		{Start: Point{step1X, step2Y}, End: Point{step3X, step2Y}},
		{Start: Point{step3X, step2Y}, End: Point{step3X, b.Y}},
		{Start: Point{step3X, b.Y}, End: b},
	}
}

// Reverse returns a path that retraces p from its end back to its start.
// The result shares no backing storage with p.
func Reverse(p Path) Path {
	out := make(Path, len(p))
	for i, s := range p {
		out[len(p)-1-i] = Segment{Start: s.End, End: s.Start}
	}
	return out
}

// Concat joins paths in order into a new path.
func Concat(paths ...Path) Path {
	n := 0
	for _, p := range paths {
		n += len(p)
	}
	out := make(Path, 0, n)
	for _, p := range paths {
		out = append(out, p...)
	}
	return out
}

// Sample is a position and heading along a path.
type Sample struct {
	X, Y    float64
	Heading float64
}

// Point returns the sampled position.
func (s Sample) Point() Point {
	return Point{s.X, s.Y}
}

// SampleAt walks the cumulative arc length of p and returns the position at
// progress (0..1) of the total length. It reports false for an empty path or
// one with no length, in which case there is nothing to draw.
func SampleAt(p Path, progress float64) (Sample, bool) {
	if len(p) == 0 {
		return Sample{}, false
	}
	total := p.Length()
	if total <= 0 {
		return Sample{}, false
	}

	if progress <= 0 {
		first := p[0]
		return Sample{X: first.Start.X, Y: first.Start.Y, Heading: headingOf(p, 0)}, true
	}
	if progress >= 1 {
		last := p[len(p)-1]
		return Sample{X: last.End.X, Y: last.End.Y, Heading: headingOf(p, len(p)-1)}, true
	}

	target := progress * total
	walked := 0.0
	for i, s := range p {
		l := s.Length()
		if walked+l >= target && l > 0 {
			t := (target - walked) / l
			return Sample{
				X:       s.Start.X + (s.End.X-s.Start.X)*t,
				Y:       s.Start.Y + (s.End.Y-s.Start.Y)*t,
				Heading: headingOf(p, i),
			}, true
		}
		walked += l
	}

	last := p[len(p)-1]
	return Sample{X: last.End.X, Y: last.End.Y, Heading: headingOf(p, len(p)-1)}, true
}

// headingOf returns the heading of segment i, or of the nearest segment with
// length when i is degenerate (circuit paths collapse a run when two points
// share a row or column).
func headingOf(p Path, i int) float64 {
	if p[i].Length() > 0 {
		return p[i].Heading()
	}
	for j := i - 1; j >= 0; j-- {
		if p[j].Length() > 0 {
			return p[j].Heading()
		}
	}
	for j := i + 1; j < len(p); j++ {
		if p[j].Length() > 0 {
			return p[j].Heading()
		}
	}
	return 0
}
