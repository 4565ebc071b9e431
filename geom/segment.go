package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SegmentIntersect returns the intersection point of the segments (a0, a1) and (b0, b1).
// The second value is false when the segments are parallel (collinear overlaps included)
// or when the crossing point of their supporting lines falls outside either segment.
func SegmentIntersect(a0, a1, b0, b1 mgl64.Vec2) (mgl64.Vec2, bool) {
	r := a1.Sub(a0)
	s := b1.Sub(b0)

	denom := Cross(r, s)
	if math.Abs(denom) <= ParallelEpsilon {
		return mgl64.Vec2{}, false
	}

	ab := b0.Sub(a0)
	t := Cross(ab, s) / denom
	u := Cross(ab, r) / denom

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return mgl64.Vec2{}, false
	}

	return a0.Add(r.Mul(t)), true
}

// ClosestPointOnSegment projects p onto the segment (a, b), clamping the
// parameter to [0, 1]. It returns the point and its parameter along the segment.
func ClosestPointOnSegment(a, b, p mgl64.Vec2) (mgl64.Vec2, float64) {
	ab := b.Sub(a)
	lenSqr := ab.LenSqr()
	if lenSqr == 0 {
		return a, 0
	}

	t := mgl64.Clamp(p.Sub(a).Dot(ab)/lenSqr, 0, 1)

	return a.Add(ab.Mul(t)), t
}
