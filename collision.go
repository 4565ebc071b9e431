package planar

import (
	"bytes"
	"context"
	"slices"

	"github.com/akmonengine/planar/actor"
	"github.com/akmonengine/planar/gjk"
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

// Proximity is a pair of bodies closer than the world margin.
// BodyA always has the smaller ID.
type Proximity struct {
	BodyA *actor.Body
	BodyB *actor.Body

	// Distance in world units, 0 when the bodies overlap
	Distance    float64
	Overlapping bool
	// PointA and PointB are the closest points of each body, in world space.
	// Both are zero when the bodies overlap.
	PointA mgl64.Vec2
	PointB mgl64.Vec2
	// Converged is false when GJK hit its iteration limit for this pair
	Converged bool
}

// BroadPhase finds the pairs of bodies whose bounding boxes, grown by margin/2 on each side,
// overlap. Bodies closer than margin are always part of the result.
func BroadPhase(spatialGrid *SpatialGrid, bodies []*actor.Body, margin float64, workersCount int) <-chan Pair {
	boxes := make([]actor.AABB, len(bodies))
	for i, body := range bodies {
		boxes[i] = body.AABB().Expand(margin / 2)
	}

	spatialGrid.Clear()
	for i := range bodies {
		spatialGrid.Insert(i, boxes[i])
	}
	spatialGrid.SortCells()

	return spatialGrid.FindPairsParallel(bodies, boxes, workersCount)
}

// NarrowPhase runs GJK on every candidate pair with workersCount goroutines and keeps the
// pairs within margin, sorted by body IDs.
//
// When ctx is cancelled the remaining pairs are drained and ctx.Err() is returned.
func NarrowPhase(ctx context.Context, pairs <-chan Pair, solver gjk.Solver, margin float64, workersCount int) ([]Proximity, error) {
	g, gctx := errgroup.WithContext(ctx)
	results := make(chan Proximity, workersCount)

	for range max(1, workersCount) {
		g.Go(func() error {
			for pair := range pairs {
				if err := gctx.Err(); err != nil {
					drain(pairs)
					return err
				}

				proximity, ok := measure(solver, pair, margin)
				if !ok {
					continue
				}

				select {
				case results <- proximity:
				case <-gctx.Done():
					drain(pairs)
					return gctx.Err()
				}
			}
			return nil
		})
	}

	proximities := make([]Proximity, 0)
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for p := range results {
			proximities = append(proximities, p)
		}
	}()

	err := g.Wait()
	close(results)
	<-collected

	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, err
	}

	slices.SortFunc(proximities, func(a, b Proximity) int {
		if c := bytes.Compare(a.BodyA.ID[:], b.BodyA.ID[:]); c != 0 {
			return c
		}
		return bytes.Compare(a.BodyB.ID[:], b.BodyB.ID[:])
	})

	return proximities, nil
}

// measure queries GJK in the frame of the body with the smallest ID and converts the result to world space
func measure(solver gjk.Solver, pair Pair, margin float64) (Proximity, bool) {
	a, b := pair.BodyA, pair.BodyB
	if bytes.Compare(b.ID[:], a.ID[:]) < 0 {
		a, b = b, a
	}

	relative := a.Transform.Inverse().Compose(b.Transform)
	result := solver.Query(a.Shape, b.Shape, &relative)

	distance := result.Distance * a.Transform.Scale
	if distance > margin {
		return Proximity{}, false
	}

	proximity := Proximity{
		BodyA:       a,
		BodyB:       b,
		Distance:    distance,
		Overlapping: result.Overlapping,
		Converged:   result.Converged,
	}
	if pointA, pointB, ok := result.WitnessPoints(); ok {
		proximity.PointA = a.Transform.Transv(pointA)
		proximity.PointB = a.Transform.Transv(pointB)
	}

	return proximity, true
}

func drain(pairs <-chan Pair) {
	for range pairs {
	}
}
