package gjk

import (
	"fmt"

	"github.com/akmonengine/planar/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultTolerance is the distance under which shapes are considered touching
const DefaultTolerance = 1e-6

// minIterations is the lower bound of the automatic iteration limit
const minIterations = 32

// Solver holds the GJK parameters. The zero value is usable and behaves like DefaultSolver.
type Solver struct {
	// MaxIterations caps the number of support queries.
	// When <= 0, the cap is max(32, 2 × (vertex count of A + vertex count of B)).
	MaxIterations int
	// Tolerance is the distance under which shapes touch. When <= 0, DefaultTolerance is used.
	Tolerance float64
}

func DefaultSolver() Solver {
	return Solver{Tolerance: DefaultTolerance}
}

// Result is the outcome of a proximity query
type Result struct {
	// Distance between the shapes, in the frame of the first shape. 0 when they overlap.
	Distance    float64
	Overlapping bool
	// PointA and PointB are the closest points of each shape, in the frame of the first shape.
	// They are left at zero when the shapes overlap.
	PointA mgl64.Vec2
	PointB mgl64.Vec2

	Iterations int
	// Converged is false when the iteration limit was reached before an answer was proven.
	Converged bool
}

// WitnessPoints returns the closest pair of points. ok is false when the shapes overlap.
func (r Result) WitnessPoints() (a, b mgl64.Vec2, ok bool) {
	if r.Overlapping {
		return mgl64.Vec2{}, mgl64.Vec2{}, false
	}
	return r.PointA, r.PointB, true
}

func (s Solver) tolerance() float64 {
	if s.Tolerance > 0 {
		return s.Tolerance
	}
	return DefaultTolerance
}

func (s Solver) iterationLimit(a, b actor.ShapeInterface) int {
	if s.MaxIterations > 0 {
		return s.MaxIterations
	}
	return max(minIterations, 2*(len(a.Vertices())+len(b.Vertices())))
}

// resolve returns the identity for a nil relative transform.
// It panics on a non-positive scale, which no valid placement can produce.
func resolve(relative *actor.Transform) actor.Transform {
	if relative == nil {
		return actor.Identity()
	}
	if err := relative.Validate(); err != nil {
		panic(fmt.Errorf("gjk: relative transform: %w", err))
	}
	return *relative
}

// Overlaps reports whether a and b, b being placed by relative in a's frame, share at least one point.
// Touching shapes overlap. A nil relative transform means the identity.
func (s Solver) Overlaps(a, b actor.ShapeInterface, relative *actor.Transform) bool {
	rel := resolve(relative)

	simplex := SimplexPool.Get().(*Simplex)
	defer SimplexPool.Put(simplex)
	simplex.Reset()

	return s.overlaps(a, b, rel, simplex)
}

// Distance returns the minimum distance between a and b, measured in a's frame. 0 means contact or overlap.
func (s Solver) Distance(a, b actor.ShapeInterface, relative *actor.Transform) float64 {
	return s.Query(a, b, relative).Distance
}

// Query computes the distance, the overlap status and the witness points of a and b.
func (s Solver) Query(a, b actor.ShapeInterface, relative *actor.Transform) Result {
	rel := resolve(relative)

	simplex := SimplexPool.Get().(*Simplex)
	defer SimplexPool.Put(simplex)
	simplex.Reset()

	return s.distance(a, b, rel, simplex)
}

// Overlaps runs Solver.Overlaps with DefaultSolver
func Overlaps(a, b actor.ShapeInterface, relative *actor.Transform) bool {
	return DefaultSolver().Overlaps(a, b, relative)
}

// Distance runs Solver.Distance with DefaultSolver
func Distance(a, b actor.ShapeInterface, relative *actor.Transform) float64 {
	return DefaultSolver().Distance(a, b, relative)
}

// Query runs Solver.Query with DefaultSolver
func Query(a, b actor.ShapeInterface, relative *actor.Transform) Result {
	return DefaultSolver().Query(a, b, relative)
}
