package planar

import (
	"errors"
	"fmt"
	"io"

	"github.com/akmonengine/planar/gjk"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DEFAULT_WORKERS   = 1
	DEFAULT_CELL_SIZE = 4.0
	DEFAULT_CELLS     = 1024
)

var ErrInvalidConfig = errors.New("invalid config")

type SolverConfig struct {
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`
}

// Config describes a World
type Config struct {
	Workers  int     `yaml:"workers"`
	CellSize float64 `yaml:"cell_size"`
	Cells    int     `yaml:"cells"`
	// Margin is the distance under which two bodies are reported as a proximity.
	// 0 only reports overlapping bodies.
	Margin   float64      `yaml:"margin"`
	LogLevel string       `yaml:"log_level"`
	Solver   SolverConfig `yaml:"solver"`
}

func DefaultConfig() Config {
	return Config{
		Workers:  DEFAULT_WORKERS,
		CellSize: DEFAULT_CELL_SIZE,
		Cells:    DEFAULT_CELLS,
		LogLevel: "info",
		Solver: SolverConfig{
			Tolerance: gjk.DefaultTolerance,
		},
	}
}

// LoadConfig decodes a YAML config. Missing keys keep their DefaultConfig value, unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c Config) Validate() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be >= 1, got %d", ErrInvalidConfig, c.Workers)
	case !(c.CellSize > 0):
		return fmt.Errorf("%w: cell_size must be > 0, got %v", ErrInvalidConfig, c.CellSize)
	case c.Cells < 1:
		return fmt.Errorf("%w: cells must be >= 1, got %d", ErrInvalidConfig, c.Cells)
	case !(c.Margin >= 0):
		return fmt.Errorf("%w: margin must be >= 0, got %v", ErrInvalidConfig, c.Margin)
	case c.Solver.MaxIterations < 0:
		return fmt.Errorf("%w: solver.max_iterations must be >= 0, got %d", ErrInvalidConfig, c.Solver.MaxIterations)
	case !(c.Solver.Tolerance >= 0):
		return fmt.Errorf("%w: solver.tolerance must be >= 0, got %v", ErrInvalidConfig, c.Solver.Tolerance)
	}

	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err)
		}
	}

	return nil
}

func (c Config) solver() gjk.Solver {
	return gjk.Solver{
		MaxIterations: c.Solver.MaxIterations,
		Tolerance:     c.Solver.Tolerance,
	}
}
