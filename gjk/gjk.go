// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) algorithm for planar convex shapes.
//
// GJK works on the Minkowski difference A ⊖ B: the shapes overlap exactly when it contains
// the origin, and their distance is the distance from the origin to it. The difference is
// never built, the algorithm only queries its support function and evolves a simplex of
// 1 to 3 points toward the origin, converging in a handful of iterations.
//
// Every query takes the second shape's placement relative to the first one: all the
// computations happen in the local frame of shape A, and B is brought into it with the
// relative transform. For two bodies placed in a world, that transform is
// posA.Inverse().Compose(posB).
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance Between
//     Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
//   - Catto: "Computing Distance using GJK", GDC 2010
package gjk

import (
	"math"

	"github.com/akmonengine/planar/actor"
	"github.com/akmonengine/planar/geom"
	"github.com/akmonengine/planar/internal/logging"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// MinkowskiSupport computes a support point in the Minkowski difference A ⊖ T(B).
//
// The Minkowski difference A ⊖ B is the set of all vectors (a - b) where a ∈ A and b ∈ B.
// For GJK, we only need the extreme points (support points) in any direction:
//
//	support(d) = A.Support(d) - T(B.Support(R⁻¹ · -d))
//
// The search direction is rotated into B's local frame, B's support point is mapped back
// into A's frame with the relative transform. Scaling does not change which point is extreme.
//
// This is the fundamental query that makes GJK work for any convex shape - shapes only
// need to implement a Support() function, not expose their full geometry.
func MinkowskiSupport(a, b actor.ShapeInterface, relative actor.Transform, direction mgl64.Vec2) Vertex {
	supportA := a.Support(direction)

	localDirection := direction.Mul(-1)
	if relative.Rotation != 0 {
		localDirection = mgl64.Rotate2D(-relative.Rotation).Mul2x1(localDirection)
	}
	supportB := relative.Transv(b.Support(localDirection))

	return Vertex{
		W:        supportA.Sub(supportB),
		SupportA: supportA,
		SupportB: supportB,
	}
}

// initialDirection starts the search from B toward A, through their centroids.
// Starting toward the other shape typically reduces iterations.
func initialDirection(a, b actor.ShapeInterface, relative actor.Transform) mgl64.Vec2 {
	direction := a.Centroid().Sub(relative.Transv(b.Centroid()))
	if direction.LenSqr() < 1e-12 {
		return mgl64.Vec2{1, 0} // Fallback if centroids are identical
	}
	return direction
}

// overlaps runs the boolean GJK.
//
// Algorithm overview:
//  1. Start with the support point along the initial direction
//  2. Search toward the origin from the closest simplex feature
//  3. If the new support point does not reach the origin → separated
//  4. If the new support point does not improve on the simplex → touching
//  5. If the triangle encloses the origin → overlap
//
// Touching shapes, within the tolerance, overlap.
func (s Solver) overlaps(a, b actor.ShapeInterface, relative actor.Transform, simplex *Simplex) bool {
	tolerance := s.tolerance()

	// Get first point of the simplex in the Minkowski difference
	simplex.push(MinkowskiSupport(a, b, relative, initialDirection(a, b, relative)))

	// New direction towards the origin from this first point
	direction := simplex.Vertices[0].W.Mul(-1)

	limit := s.iterationLimit(a, b)
	for i := 0; i < limit; i++ {
		// The closest feature reached the origin
		length := direction.Len()
		if length < tolerance {
			return true
		}
		normal := direction.Mul(1 / length)

		v := MinkowskiSupport(a, b, relative, direction)
		projection := v.W.Dot(normal)

		// Early exit test: If the new point doesn't reach the origin in the search direction,
		// the origin cannot be reached, therefore no overlap.
		if projection < -tolerance {
			return false
		}

		// No progress past the current simplex: the Minkowski boundary is within
		// the tolerance of the origin.
		if projection-simplex.last().W.Dot(normal) <= tolerance {
			return true
		}

		simplex.push(v)
		if containsOrigin(simplex, &direction, tolerance) {
			return true
		}
	}

	logging.L().Warn("gjk iteration limit reached",
		zap.String("query", "overlaps"),
		zap.Int("limit", limit),
	)

	return false
}

// containsOrigin tests if the simplex contains the origin and refines the simplex.
//
// It determines which feature of the simplex (point, edge, face) is closest to the origin,
// keeps only the relevant points, and updates the search direction.
func containsOrigin(simplex *Simplex, direction *mgl64.Vec2, tolerance float64) bool {
	switch simplex.Count {
	case 2:
		return line(simplex, direction, tolerance)
	case 3:
		return triangle(simplex, direction, tolerance)
	}
	return false
}

// line handles the line simplex case (2 points: A the newest, and B).
//
// Tests which Voronoi region contains the origin:
//   - Region A: Origin is closest to point A alone
//   - Region AB: Origin is closest to the line segment AB
//
// Returns true when the origin lies on the segment.
func line(simplex *Simplex, direction *mgl64.Vec2, tolerance float64) bool {
	a := simplex.Vertices[1]
	b := simplex.Vertices[0]
	ab := b.W.Sub(a.W)
	ao := a.W.Mul(-1)

	// Degenerate segment, or origin behind A
	if ab.LenSqr() < degenerateEpsilon || ab.Dot(ao) <= 0 {
		simplex.Vertices[0] = a
		simplex.Count = 1
		*direction = ao
		return false
	}

	// Origin is on the segment → touching
	if math.Abs(geom.Cross(ab, ao)) <= tolerance*ab.Len() {
		return true
	}

	// Search along the segment normal, on the origin side
	abPerp := geom.Perp(ab)
	if abPerp.Dot(ao) < 0 {
		abPerp = abPerp.Mul(-1)
	}
	*direction = abPerp

	return false
}

// triangle handles the triangle simplex case (3 points: A the newest, B, C).
//
// Tests which Voronoi region contains the origin:
//   - Region ABC: Origin inside the triangle → overlap
//   - Region AB: Origin closest to edge AB
//   - Region AC: Origin closest to edge AC
//
// The regions of B, C and BC were already excluded by the previous iterations.
// Degenerate case: If points are collinear (flat triangle), treats as line instead.
func triangle(simplex *Simplex, direction *mgl64.Vec2, tolerance float64) bool {
	a := simplex.Vertices[2] // Most recent point
	b := simplex.Vertices[1]
	c := simplex.Vertices[0]

	ab := b.W.Sub(a.W)
	ac := c.W.Sub(a.W)
	ao := a.W.Mul(-1)

	if math.Abs(geom.Cross(ab, ac)) < degenerateEpsilon {
		// Keep A and B (discard C which is furthest from recent history)
		simplex.Vertices[0] = b
		simplex.Vertices[1] = a
		simplex.Count = 2
		return line(simplex, direction, tolerance)
	}

	if geom.TriangleContains(a.W, b.W, c.W, mgl64.Vec2{}) {
		return true
	}

	// Region AB (edge), normal pointing away from C
	abPerp := geom.Perp(ab)
	if abPerp.Dot(ac) > 0 {
		abPerp = abPerp.Mul(-1)
	}
	if abPerp.Dot(ao) > 0 {
		simplex.Vertices[0] = b
		simplex.Vertices[1] = a
		simplex.Count = 2
		*direction = abPerp
		return false
	}

	// Region AC (edge), normal pointing away from B
	acPerp := geom.Perp(ac)
	if acPerp.Dot(ab) > 0 {
		acPerp = acPerp.Mul(-1)
	}
	if acPerp.Dot(ao) > 0 {
		simplex.Vertices[0] = c
		simplex.Vertices[1] = a
		simplex.Count = 2
		*direction = acPerp
		return false
	}

	return true
}
