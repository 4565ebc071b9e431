package planar

import (
	"testing"

	"github.com/akmonengine/planar/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func createRect(t testing.TB, position mgl64.Vec2, width, height float64, bodyType actor.BodyType) *actor.Body {
	t.Helper()
	rect, err := actor.NewRect(width, height)
	require.NoError(t, err)
	return createBody(t, rect, actor.Identity().Translate(position), bodyType)
}

func createCircle(t testing.TB, position mgl64.Vec2, radius float64) *actor.Body {
	t.Helper()
	circle, err := actor.NewCircle(radius)
	require.NoError(t, err)
	return createBody(t, circle, actor.Identity().Translate(position), actor.BodyTypeDynamic)
}

func createBody(t testing.TB, shape actor.ShapeInterface, transform actor.Transform, bodyType actor.BodyType) *actor.Body {
	t.Helper()
	body, err := actor.NewBody(transform, shape, bodyType)
	require.NoError(t, err)
	return body
}

// pairsOf collects a pair channel into a set of normalized keys
func pairsOf(ch <-chan Pair) map[pairKey]int {
	set := make(map[pairKey]int)
	for p := range ch {
		set[makePairKey(p.BodyA, p.BodyB)]++
	}
	return set
}
