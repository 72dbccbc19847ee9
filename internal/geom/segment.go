package geom

// EndpointTolerance is the fraction of a segment's length, measured from
// either end, inside which crossings are not reported.
const EndpointTolerance = 0.01

// smallestNormal is the smallest positive normal float64, 2^-1022.
const smallestNormal = 0x1p-1022

// NoIntersection is the point returned alongside ok == false by
// Segment.Intersect. It is a marker, not a coordinate.
var NoIntersection = Point{X: smallestNormal, Y: smallestNormal}

// Segment is a directed line segment from P1 to P2.
type Segment struct {
	P1 Point
	P2 Point
}

func MakeSegment(p1, p2 Point) Segment { return Segment{P1: p1, P2: p2} }

// Vec returns the direction of the segment, P2 - P1.
func (s Segment) Vec() Vector { return s.P2.Sub(s.P1) }

func (s Segment) Len() float64 { return s.Vec().Len() }

// Intersect returns the point where s and o cross.
//
// Parallel and anti-parallel segments never intersect, even when collinear
// and overlapping. Crossings within EndpointTolerance of either end of
// either segment are rejected, so segments that merely touch at an endpoint
// do not intersect. Near-parallel segments are not guarded and may return a
// numerically unstable point.
func (s Segment) Intersect(o Segment) (Point, bool) {
	sn, on := s.Vec().Norm(), o.Vec().Norm()
	if sn.Equal(on) || sn.Equal(on.Neg()) {
		return NoIntersection, false
	}

	// Determinant form of the line-line intersection. The denominator is
	// non-zero once the parallel check above has passed.
	sx, sy := s.P1.X-s.P2.X, s.P1.Y-s.P2.Y
	ox, oy := o.P1.X-o.P2.X, o.P1.Y-o.P2.Y
	sc := s.P1.X*s.P2.Y - s.P1.Y*s.P2.X
	oc := o.P1.X*o.P2.Y - o.P1.Y*o.P2.X
	det := sx*oy - sy*ox
	p := Point{
		X: (sc*ox - sx*oc) / det,
		Y: (sc*oy - sy*oc) / det,
	}

	if !withinTolerance(o.lambda(p)) || !withinTolerance(s.lambda(p)) {
		return NoIntersection, false
	}
	return p, true
}

// lambda returns the parametric position of p along s, assuming p lies on
// the line through s. The X span is used unless the segment is vertical.
func (s Segment) lambda(p Point) float64 {
	dx := s.P2.X - s.P1.X
	if dx == 0 {
		return (p.Y - s.P1.Y) / (s.P2.Y - s.P1.Y)
	}
	return (p.X - s.P1.X) / dx
}

// withinTolerance is false for NaN, so degenerate segments never intersect.
func withinTolerance(lambda float64) bool {
	return lambda >= EndpointTolerance && lambda <= 1-EndpointTolerance
}
