package planar

import (
	"context"
	"math"
	"testing"

	"github.com/akmonengine/planar/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func hexagonBodies(t *testing.T, posA, posB actor.Transform) (*actor.Body, *actor.Body) {
	a, err := actor.NewConvexPolygon([]mgl64.Vec2{{2, 1}, {-2, 1}, {-3, 0}, {-3, -1}, {-1, -2}, {2, -1}})
	require.NoError(t, err)
	b, err := actor.NewConvexPolygon([]mgl64.Vec2{{2, 3}, {1, 3}, {-2, 1}, {-2, -1}, {-1, -2}, {0, -2}, {2, 0}})
	require.NoError(t, err)

	return createBody(t, a, posA, actor.BodyTypeDynamic), createBody(t, b, posB, actor.BodyTypeDynamic)
}

func TestWorld_AddRemove(t *testing.T) {
	world := NewWorld(DefaultConfig())
	a := createRect(t, mgl64.Vec2{}, 1, 1, actor.BodyTypeDynamic)
	a.Name = "crate"

	require.NoError(t, world.AddBody(a))
	assert.Error(t, world.AddBody(a), "duplicate ID")
	assert.ErrorIs(t, world.AddBody(nil), actor.ErrNilShape)
	assert.ErrorIs(t, world.AddBody(&actor.Body{}), actor.ErrNilShape)

	found, ok := world.Body("crate")
	assert.True(t, ok)
	assert.Same(t, a, found)
	_, ok = world.Body("missing")
	assert.False(t, ok)

	world.RemoveBody(a)
	assert.Empty(t, world.Bodies)
	world.RemoveBody(a)
}

func TestWorld_Detect(t *testing.T) {
	tests := []struct {
		name     string
		posA     actor.Transform
		posB     actor.Transform
		margin   float64
		found    bool
		overlaps bool
		distance float64
	}{
		{"apart, no margin", actor.Transform{Position: mgl64.Vec2{-2, 1}, Scale: 1}, actor.Transform{Position: mgl64.Vec2{3, 2}, Scale: 1}, 0, false, false, 0},
		{"apart, within margin", actor.Transform{Position: mgl64.Vec2{-2, 1}, Scale: 1}, actor.Transform{Position: mgl64.Vec2{3, 2}, Scale: 1}, 1.5, true, false, 1.0},
		{"rotated, within margin", actor.Transform{Position: mgl64.Vec2{-2, 1}, Scale: 1}, actor.Transform{Position: mgl64.Vec2{3, 2}, Rotation: 7 * math.Pi / 12, Scale: 1}, 0.1, true, false, 0.0389},
		{"rotated and scaled", actor.Transform{Position: mgl64.Vec2{-1, 3}, Rotation: 2 * math.Pi / 3, Scale: 0.5}, actor.Transform{Position: mgl64.Vec2{0, -2}, Scale: 2}, 0, true, true, 0},
		// 1.3496 in the frame of the half-scale body
		{"scaled, world distance", actor.Transform{Position: mgl64.Vec2{-5, 3}, Rotation: 2 * math.Pi / 3, Scale: 0.5}, actor.Transform{Position: mgl64.Vec2{0, -2}, Rotation: 7 * math.Pi / 12, Scale: 2}, 1, true, false, 0.6748},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.Margin = tt.margin
			config.Workers = 2
			world := NewWorld(config)

			a, b := hexagonBodies(t, tt.posA, tt.posB)
			require.NoError(t, world.AddBody(a))
			require.NoError(t, world.AddBody(b))

			proximities, err := world.Detect(context.Background())
			require.NoError(t, err)

			if !tt.found {
				assert.Empty(t, proximities)
				return
			}
			require.Len(t, proximities, 1)
			assert.Equal(t, tt.overlaps, proximities[0].Overlapping)
			assert.InDelta(t, tt.distance, proximities[0].Distance, 1e-4)
		})
	}
}

func TestWorld_DetectEvents(t *testing.T) {
	config := DefaultConfig()
	config.Margin = 0.5
	world := NewWorld(config)

	capture := subscribeAll(&world.Events)

	a := createRect(t, mgl64.Vec2{0, 0}, 2, 2, actor.BodyTypeDynamic)
	b := createRect(t, mgl64.Vec2{5, 0}, 2, 2, actor.BodyTypeDynamic)
	require.NoError(t, world.AddBody(a))
	require.NoError(t, world.AddBody(b))

	moves := []struct {
		x        float64
		expected []EventType
	}{
		{5, []EventType{}},
		{2.25, []EventType{PROXIMITY_ENTER}},
		{1.5, []EventType{OVERLAP_ENTER}},
		{1.8, []EventType{OVERLAP_STAY}},
		{2.4, []EventType{OVERLAP_EXIT}},
		{8, []EventType{PROXIMITY_EXIT}},
	}

	for _, move := range moves {
		require.NoError(t, b.SetTransform(actor.Identity().Translate(mgl64.Vec2{move.x, 0})))

		capture.reset()
		_, err := world.Detect(context.Background())
		require.NoError(t, err)
		assert.Equal(t, move.expected, capture.types(), "b at x=%v", move.x)
	}
}

func TestWorld_DetectRefreshesAABB(t *testing.T) {
	world := NewWorld(DefaultConfig())
	a := createRect(t, mgl64.Vec2{0, 0}, 2, 2, actor.BodyTypeDynamic)
	b := createRect(t, mgl64.Vec2{10, 0}, 2, 2, actor.BodyTypeDynamic)
	require.NoError(t, world.AddBody(a))
	require.NoError(t, world.AddBody(b))

	// moved without SetTransform
	b.Transform.Position = mgl64.Vec2{1, 0}

	proximities, err := world.Detect(context.Background())
	require.NoError(t, err)
	require.Len(t, proximities, 1)
	assert.True(t, proximities[0].Overlapping)
}

func TestWorld_DetectCancelled(t *testing.T) {
	world := NewWorld(DefaultConfig())
	require.NoError(t, world.AddBody(createRect(t, mgl64.Vec2{0, 0}, 2, 2, actor.BodyTypeDynamic)))
	require.NoError(t, world.AddBody(createRect(t, mgl64.Vec2{1, 0}, 2, 2, actor.BodyTypeDynamic)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := world.Detect(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorld_ZeroValue(t *testing.T) {
	var world World
	require.NoError(t, world.AddBody(createRect(t, mgl64.Vec2{0, 0}, 2, 2, actor.BodyTypeDynamic)))
	require.NoError(t, world.AddBody(createRect(t, mgl64.Vec2{1, 0}, 2, 2, actor.BodyTypeDynamic)))

	proximities, err := world.Detect(context.Background())
	require.NoError(t, err)
	assert.Len(t, proximities, 1)
	assert.Equal(t, DEFAULT_WORKERS, world.Workers)
}

func TestWorld_DetectLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	world := NewWorld(DefaultConfig())
	require.NoError(t, world.AddBody(createRect(t, mgl64.Vec2{0, 0}, 2, 2, actor.BodyTypeDynamic)))
	require.NoError(t, world.AddBody(createRect(t, mgl64.Vec2{1, 0}, 2, 2, actor.BodyTypeDynamic)))

	_, err := world.Detect(context.Background())
	require.NoError(t, err)

	entries := logs.FilterMessage("detect").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(2), fields["bodies"])
	assert.Equal(t, int64(1), fields["proximities"])
	assert.Equal(t, int64(1), fields["overlaps"])
}
