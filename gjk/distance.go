package gjk

import (
	"github.com/akmonengine/planar/actor"
	"github.com/akmonengine/planar/internal/logging"
	"go.uber.org/zap"
)

// distance runs the distance GJK: the simplex is reduced to the feature closest to the origin
// with barycentric weights, and the next support point is searched along -v, v being that
// closest point.
//
// Termination:
//   - the simplex encloses the origin, or v is shorter than the tolerance → overlap
//   - the new support point does not get closer: |v|² - v·w <= tolerance·|v|
//   - the new support point is already in the simplex (no progress possible)
func (s Solver) distance(a, b actor.ShapeInterface, relative actor.Transform, simplex *Simplex) Result {
	tolerance := s.tolerance()

	first := MinkowskiSupport(a, b, relative, initialDirection(a, b, relative))
	first.u = 1
	simplex.push(first)

	var last Result
	limit := s.iterationLimit(a, b)
	for i := 1; i <= limit; i++ {
		switch simplex.Count {
		case 2:
			simplex.solve2()
		case 3:
			simplex.solve3()
		}

		// The triangle encloses the origin
		if simplex.Count == 3 {
			return overlapResult(i)
		}

		v := simplex.closestPoint()
		length := v.Len()
		if length < tolerance {
			return overlapResult(i)
		}

		pointA, pointB := simplex.witnessPoints()
		last = Result{
			Distance:   length,
			PointA:     pointA,
			PointB:     pointB,
			Iterations: i,
		}

		w := MinkowskiSupport(a, b, relative, v.Mul(-1))
		if v.Dot(v)-v.Dot(w.W) <= tolerance*length || simplex.contains(w) {
			last.Converged = true
			return last
		}

		simplex.push(w)
	}

	logging.L().Warn("gjk iteration limit reached",
		zap.String("query", "distance"),
		zap.Int("limit", limit),
		zap.Float64("distance", last.Distance),
	)

	return last
}

func overlapResult(iterations int) Result {
	return Result{
		Distance:    0,
		Overlapping: true,
		Iterations:  iterations,
		Converged:   true,
	}
}
