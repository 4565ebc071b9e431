package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akmonengine/planar"
	"github.com/akmonengine/planar/actor"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// defaultScene places the two reference polygons 1 unit apart, and a ball sliding towards a static floor
const defaultScene = `
world:
  margin: 1.5
  log_level: debug
bodies:
  - name: hexagon
    position: [-2, 1]
    shape:
      type: polygon
      vertices: [[2, 1], [-2, 1], [-3, 0], [-3, -1], [-1, -2], [2, -1]]
  - name: heptagon
    position: [3, 2]
    shape:
      type: polygon
      vertices: [[2, 3], [1, 3], [-2, 1], [-2, -1], [-1, -2], [0, -2], [2, 0]]
  - name: floor
    static: true
    position: [0, -6]
    shape: {type: rect, width: 20, height: 1}
  - name: ball
    position: [0, -2]
    shape: {type: circle, radius: 0.5}
`

func main() {
	scenePath := flag.String("scene", "", "YAML scene file (defaults to a built-in scene)")
	steps := flag.Int("steps", 8, "number of detection steps")
	flag.Parse()

	if err := run(*scenePath, *steps); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(scenePath string, steps int) error {
	var r io.Reader = strings.NewReader(defaultScene)
	if scenePath != "" {
		f, err := os.Open(scenePath)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	world, err := planar.LoadScene(r)
	if err != nil {
		return err
	}

	logger, err := planar.NewLogger(world.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()
	planar.SetLogger(logger)

	subscribe(world, logger)

	// the ball falls by half a unit each step
	ball, hasBall := world.Body("ball")
	for step := range steps {
		proximities, err := world.Detect(context.Background())
		if err != nil {
			return err
		}

		for _, p := range proximities {
			logger.Info("proximity",
				zap.Int("step", step),
				zap.String("a", p.BodyA.Name),
				zap.String("b", p.BodyB.Name),
				zap.Float64("distance", p.Distance),
				zap.Bool("overlapping", p.Overlapping),
				zap.Bool("converged", p.Converged),
			)
		}

		if hasBall {
			if err := ball.SetTransform(ball.Transform.Translate(mgl64.Vec2{0, -0.5})); err != nil {
				return err
			}
		}
	}

	return nil
}

func subscribe(world *planar.World, logger *zap.Logger) {
	pair := func(a, b *actor.Body) zap.Field {
		return zap.Strings("pair", []string{a.Name, b.Name})
	}

	world.Events.Subscribe(planar.OVERLAP_ENTER, func(e planar.Event) {
		ev := e.(planar.OverlapEnterEvent)
		logger.Info(e.Type().String(), pair(ev.BodyA, ev.BodyB))
	})
	world.Events.Subscribe(planar.OVERLAP_EXIT, func(e planar.Event) {
		ev := e.(planar.OverlapExitEvent)
		logger.Info(e.Type().String(), pair(ev.BodyA, ev.BodyB))
	})
	world.Events.Subscribe(planar.PROXIMITY_ENTER, func(e planar.Event) {
		ev := e.(planar.ProximityEnterEvent)
		logger.Info(e.Type().String(), pair(ev.BodyA, ev.BodyB), zap.Float64("distance", ev.Distance))
	})
	world.Events.Subscribe(planar.PROXIMITY_EXIT, func(e planar.Event) {
		ev := e.(planar.ProximityExitEvent)
		logger.Info(e.Type().String(), pair(ev.BodyA, ev.BodyB))
	})
}
