package planar

import (
	"context"
	"fmt"
	"time"

	"github.com/akmonengine/planar/actor"
	"github.com/akmonengine/planar/gjk"
	"github.com/akmonengine/planar/internal/logging"
	"go.uber.org/zap"
)

// World is a set of placed bodies queried in batches.
// It is not safe for concurrent use.
type World struct {
	// List of all bodies in the world
	Bodies      []*actor.Body
	SpatialGrid *SpatialGrid
	Workers     int
	// Margin is the distance under which two bodies are reported by Detect
	Margin float64
	Solver gjk.Solver
	// LogLevel is the level requested by the config, applied by whoever owns the logger
	LogLevel string

	Events Events
}

// NewWorld creates an empty world. The config is expected to be valid, see Config.Validate.
func NewWorld(config Config) *World {
	return &World{
		SpatialGrid: NewSpatialGrid(config.CellSize, config.Cells),
		Workers:     config.Workers,
		Margin:      config.Margin,
		Solver:      config.solver(),
		LogLevel:    config.LogLevel,
		Events:      NewEvents(),
	}
}

// AddBody adds a body to the world
func (w *World) AddBody(body *actor.Body) error {
	if body == nil || body.Shape == nil {
		return actor.ErrNilShape
	}
	for _, b := range w.Bodies {
		if b.ID == body.ID {
			return fmt.Errorf("body %s already added", body.ID)
		}
	}

	w.Bodies = append(w.Bodies, body)
	return nil
}

// RemoveBody removes a body from the world. Its pairs are forgotten without exit events.
func (w *World) RemoveBody(body *actor.Body) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	}

	w.Events.forget(body)
}

// Body returns the first body with the given name
func (w *World) Body(name string) (*actor.Body, bool) {
	for _, b := range w.Bodies {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// Detect reports every pair of bodies within Margin of each other, then dispatches the pair events.
//
// Phase 1: refresh the bounding boxes of all bodies
// Phase 2: broad phase, candidate pairs from the spatial grid
// Phase 3: narrow phase, GJK distance on every candidate
func (w *World) Detect(ctx context.Context) ([]Proximity, error) {
	start := time.Now()
	w.Workers = max(DEFAULT_WORKERS, w.Workers)
	if w.SpatialGrid == nil {
		w.SpatialGrid = NewSpatialGrid(DEFAULT_CELL_SIZE, DEFAULT_CELLS)
	}

	task(w.Workers, w.Bodies, func(body *actor.Body) {
		body.UpdateAABB()
	})

	pairs := BroadPhase(w.SpatialGrid, w.Bodies, w.Margin, w.Workers)
	proximities, err := NarrowPhase(ctx, pairs, w.Solver, w.Margin, w.Workers)
	if err != nil {
		return nil, err
	}

	w.Events.recordProximities(proximities)
	w.Events.flush()

	overlaps := 0
	for _, p := range proximities {
		if p.Overlapping {
			overlaps++
		}
	}
	logging.L().Debug("detect",
		zap.Int("bodies", len(w.Bodies)),
		zap.Int("proximities", len(proximities)),
		zap.Int("overlaps", overlaps),
		zap.Duration("elapsed", time.Since(start)),
	)

	return proximities, nil
}
