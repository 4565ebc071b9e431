// Package geom provides the planar primitives the shapes and the GJK engine
// rely on: orientation of point sequences, convexity and segment intersection.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// AreaEpsilon is the signed area under which an outline is considered degenerate.
	AreaEpsilon = 1e-9

	// ParallelEpsilon is the cross product magnitude under which two directions
	// are considered parallel.
	ParallelEpsilon = 1e-9
)

// Winding is the rotational orientation of an ordered point sequence
type Winding int8

const (
	WindingNone Winding = iota
	WindingCCW
	WindingCW
)

func (w Winding) String() string {
	switch w {
	case WindingCCW:
		return "ccw"
	case WindingCW:
		return "cw"
	default:
		return "none"
	}
}

// Reverse returns the opposite orientation. WindingNone stays WindingNone.
func (w Winding) Reverse() Winding {
	switch w {
	case WindingCCW:
		return WindingCW
	case WindingCW:
		return WindingCCW
	}
	return WindingNone
}

// Cross returns the z component of the 3D cross product of a and b.
func Cross(a, b mgl64.Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// Perp returns a rotated by +90°.
func Perp(a mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{-a.Y(), a.X()}
}

// SignedArea computes the shoelace area of a closed outline.
// Counter-clockwise outlines have a positive area.
func SignedArea(points []mgl64.Vec2) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		sum += Cross(points[i], points[(i+1)%n])
	}

	return sum / 2
}

// WindingOf classifies the orientation of 3 or more points forming a polygon outline.
// Outlines whose area lies within AreaEpsilon of zero (collinear points) report WindingNone.
func WindingOf(points ...mgl64.Vec2) Winding {
	area := SignedArea(points)

	switch {
	case area > AreaEpsilon:
		return WindingCCW
	case area < -AreaEpsilon:
		return WindingCW
	default:
		return WindingNone
	}
}

// IsConvex reports whether the outline turns consistently in one direction and
// wraps around exactly once. Collinear consecutive vertices are tolerated,
// self-intersecting outlines (a pentagram) are not.
func IsConvex(points []mgl64.Vec2) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	if WindingOf(points...) == WindingNone {
		return false
	}

	sign := 0.0
	turning := 0.0
	for i := 0; i < n; i++ {
		e0 := points[(i+1)%n].Sub(points[i])
		e1 := points[(i+2)%n].Sub(points[(i+1)%n])

		c := Cross(e0, e1)
		if math.Abs(c) > ParallelEpsilon {
			if sign == 0 {
				sign = math.Copysign(1, c)
			} else if sign*c < 0 {
				return false
			}
		}

		turning += math.Atan2(c, e0.Dot(e1))
	}

	return math.Abs(math.Abs(turning)-2*math.Pi) < 1e-6
}

// TriangleContains tests whether p lies inside or on the boundary of the triangle abc,
// by checking the signs of the three sub-triangle areas are consistent.
// The triangle may be listed in either winding.
func TriangleContains(a, b, c, p mgl64.Vec2) bool {
	d1 := Cross(b.Sub(a), p.Sub(a))
	d2 := Cross(c.Sub(b), p.Sub(b))
	d3 := Cross(a.Sub(c), p.Sub(c))

	hasNegative := d1 < 0 || d2 < 0 || d3 < 0
	hasPositive := d1 > 0 || d2 > 0 || d3 > 0

	return !(hasNegative && hasPositive)
}
