package gjk

import (
	"math"
	"sync"

	"github.com/akmonengine/planar/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// degenerateEpsilon bounds squared lengths and cross products under which a
// simplex feature is treated as collapsed.
const degenerateEpsilon = 1e-18

// Vertex is a point of the Minkowski difference, tagged with the two support points it comes from.
// SupportB is already expressed in the frame of the first shape, so W = SupportA - SupportB.
type Vertex struct {
	W        mgl64.Vec2
	SupportA mgl64.Vec2
	SupportB mgl64.Vec2

	// barycentric weight of the vertex in the closest point, only meaningful during Distance
	u float64
}

// Simplex represents a set of 1-3 points in the Minkowski difference space.
// In 2D, a triangle is enough to enclose the origin.
// Size progression: 1 point → 2 points (line) → 3 points (triangle).
// The most recent point is always the last one.
type Simplex struct {
	Vertices [3]Vertex
	Count    int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

var SimplexPool = sync.Pool{
	New: func() interface{} {
		return &Simplex{}
	},
}

func (s *Simplex) push(v Vertex) {
	s.Vertices[s.Count] = v
	s.Count++
}

func (s *Simplex) last() Vertex {
	return s.Vertices[s.Count-1]
}

// contains reports whether the exact same pair of support points is already part of the simplex
func (s *Simplex) contains(v Vertex) bool {
	for i := 0; i < s.Count; i++ {
		if s.Vertices[i].SupportA == v.SupportA && s.Vertices[i].SupportB == v.SupportB {
			return true
		}
	}
	return false
}

// closestPoint returns the point of the simplex closest to the origin,
// from the weights computed by solve2 / solve3.
func (s *Simplex) closestPoint() mgl64.Vec2 {
	var p mgl64.Vec2
	for i := 0; i < s.Count; i++ {
		p = p.Add(s.Vertices[i].W.Mul(s.Vertices[i].u))
	}
	return p
}

// witnessPoints returns the closest points on each shape, in the frame of the first shape
func (s *Simplex) witnessPoints() (mgl64.Vec2, mgl64.Vec2) {
	var a, b mgl64.Vec2
	for i := 0; i < s.Count; i++ {
		a = a.Add(s.Vertices[i].SupportA.Mul(s.Vertices[i].u))
		b = b.Add(s.Vertices[i].SupportB.Mul(s.Vertices[i].u))
	}
	return a, b
}

// solve2 reduces a segment to the feature closest to the origin (one endpoint or the whole segment)
// and sets the barycentric weights.
func (s *Simplex) solve2() {
	w1 := s.Vertices[0].W
	w2 := s.Vertices[1].W
	e12 := w2.Sub(w1)

	// w1 region
	d12n2 := -w1.Dot(e12)
	if d12n2 <= 0 {
		s.Vertices[0].u = 1
		s.Count = 1
		return
	}

	// w2 region
	d12n1 := w2.Dot(e12)
	if d12n1 <= 0 {
		s.Vertices[1].u = 1
		s.Vertices[0] = s.Vertices[1]
		s.Count = 1
		return
	}

	// segment region
	inv := 1 / (d12n1 + d12n2)
	s.Vertices[0].u = d12n1 * inv
	s.Vertices[1].u = d12n2 * inv
	s.Count = 2
}

// solve3 reduces a triangle to the feature closest to the origin, testing the
// vertex, edge and face Voronoi regions. When the face region wins, the origin
// is inside the triangle and the Count stays at 3.
func (s *Simplex) solve3() {
	w1 := s.Vertices[0].W
	w2 := s.Vertices[1].W
	w3 := s.Vertices[2].W

	e12 := w2.Sub(w1)
	d12n1 := w2.Dot(e12)
	d12n2 := -w1.Dot(e12)

	e13 := w3.Sub(w1)
	d13n1 := w3.Dot(e13)
	d13n2 := -w1.Dot(e13)

	e23 := w3.Sub(w2)
	d23n1 := w3.Dot(e23)
	d23n2 := -w2.Dot(e23)

	n123 := geom.Cross(e12, e13)
	if math.Abs(n123) <= degenerateEpsilon {
		s.solveCollinear()
		return
	}

	d123n1 := n123 * geom.Cross(w2, w3)
	d123n2 := n123 * geom.Cross(w3, w1)
	d123n3 := n123 * geom.Cross(w1, w2)

	// w1 region
	if d12n2 <= 0 && d13n2 <= 0 {
		s.Vertices[0].u = 1
		s.Count = 1
		return
	}

	// e12
	if d12n1 > 0 && d12n2 > 0 && d123n3 <= 0 {
		inv := 1 / (d12n1 + d12n2)
		s.Vertices[0].u = d12n1 * inv
		s.Vertices[1].u = d12n2 * inv
		s.Count = 2
		return
	}

	// e13
	if d13n1 > 0 && d13n2 > 0 && d123n2 <= 0 {
		inv := 1 / (d13n1 + d13n2)
		s.Vertices[0].u = d13n1 * inv
		s.Vertices[2].u = d13n2 * inv
		s.Vertices[1] = s.Vertices[2]
		s.Count = 2
		return
	}

	// w2 region
	if d12n1 <= 0 && d23n2 <= 0 {
		s.Vertices[1].u = 1
		s.Vertices[0] = s.Vertices[1]
		s.Count = 1
		return
	}

	// w3 region
	if d13n1 <= 0 && d23n1 <= 0 {
		s.Vertices[2].u = 1
		s.Vertices[0] = s.Vertices[2]
		s.Count = 1
		return
	}

	// e23
	if d23n1 > 0 && d23n2 > 0 && d123n1 <= 0 {
		inv := 1 / (d23n1 + d23n2)
		s.Vertices[1].u = d23n1 * inv
		s.Vertices[2].u = d23n2 * inv
		s.Vertices[0] = s.Vertices[2]
		s.Count = 2
		return
	}

	// the origin is inside the triangle
	inv := 1 / (d123n1 + d123n2 + d123n3)
	s.Vertices[0].u = d123n1 * inv
	s.Vertices[1].u = d123n2 * inv
	s.Vertices[2].u = d123n3 * inv
	s.Count = 3
}

// solveCollinear handles a flat triangle: it keeps the edge whose closest point to the origin is the nearest.
func (s *Simplex) solveCollinear() {
	edges := [3][2]int{{0, 1}, {0, 2}, {1, 2}}

	best := 0
	bestT := 0.0
	bestDist := math.Inf(1)
	for i, e := range edges {
		p, t := geom.ClosestPointOnSegment(s.Vertices[e[0]].W, s.Vertices[e[1]].W, mgl64.Vec2{})
		if d := p.LenSqr(); d < bestDist {
			best, bestT, bestDist = i, t, d
		}
	}

	a := s.Vertices[edges[best][0]]
	b := s.Vertices[edges[best][1]]
	a.u = 1 - bestT
	b.u = bestT

	s.Vertices[0] = a
	s.Vertices[1] = b
	s.Count = 2
}
