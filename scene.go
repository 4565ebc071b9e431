package planar

import (
	"errors"
	"fmt"
	"io"

	"github.com/akmonengine/planar/actor"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

var ErrUnknownShape = errors.New("unknown shape")

// SceneSpec is the YAML description of a world and its bodies
type SceneSpec struct {
	World  Config     `yaml:"world"`
	Bodies []BodySpec `yaml:"bodies"`
}

// ShapeSpec describes a shape in its local frame.
// Type is one of "polygon", "rect" or "circle".
type ShapeSpec struct {
	Type     string      `yaml:"type"`
	Vertices [][]float64 `yaml:"vertices,omitempty"`
	Width    float64     `yaml:"width,omitempty"`
	Height   float64     `yaml:"height,omitempty"`
	Radius   float64     `yaml:"radius,omitempty"`
}

type BodySpec struct {
	Name   string    `yaml:"name"`
	Static bool      `yaml:"static,omitempty"`
	Shape  ShapeSpec `yaml:"shape"`

	Position []float64 `yaml:"position,omitempty"`
	// Rotation is in radians, RotationDegrees takes precedence when set
	Rotation        float64  `yaml:"rotation,omitempty"`
	RotationDegrees *float64 `yaml:"rotation_degrees,omitempty"`
	// Scale defaults to 1
	Scale *float64 `yaml:"scale,omitempty"`
}

// LoadScene decodes a YAML scene and builds its world
func LoadScene(r io.Reader) (*World, error) {
	spec := SceneSpec{World: DefaultConfig()}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	return spec.Build()
}

// Build validates the world config and creates every body
func (s SceneSpec) Build() (*World, error) {
	if err := s.World.Validate(); err != nil {
		return nil, err
	}

	world := NewWorld(s.World)
	for i, bodySpec := range s.Bodies {
		body, err := bodySpec.Build()
		if err != nil {
			return nil, fmt.Errorf("body %d (%q): %w", i, bodySpec.Name, err)
		}
		if err := world.AddBody(body); err != nil {
			return nil, err
		}
	}

	return world, nil
}

func (b BodySpec) Build() (*actor.Body, error) {
	shape, err := b.Shape.Build()
	if err != nil {
		return nil, err
	}

	rotation := b.Rotation
	if b.RotationDegrees != nil {
		rotation = mgl64.DegToRad(*b.RotationDegrees)
	}
	scale := 1.0
	if b.Scale != nil {
		scale = *b.Scale
	}

	var position mgl64.Vec2
	if b.Position != nil {
		if position, err = toVec2(b.Position); err != nil {
			return nil, fmt.Errorf("position: %w", err)
		}
	}

	transform, err := actor.NewTransform(position, rotation, scale)
	if err != nil {
		return nil, err
	}

	bodyType := actor.BodyTypeDynamic
	if b.Static {
		bodyType = actor.BodyTypeStatic
	}

	body, err := actor.NewBody(transform, shape, bodyType)
	if err != nil {
		return nil, err
	}
	body.Name = b.Name

	return body, nil
}

func (s ShapeSpec) Build() (actor.ShapeInterface, error) {
	switch s.Type {
	case "polygon":
		vertices := make([]mgl64.Vec2, len(s.Vertices))
		for i, v := range s.Vertices {
			vertex, err := toVec2(v)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			vertices[i] = vertex
		}
		polygon, err := actor.NewConvexPolygon(vertices)
		if err != nil {
			return nil, err
		}
		return polygon, nil
	case "rect":
		rect, err := actor.NewRect(s.Width, s.Height)
		if err != nil {
			return nil, err
		}
		return rect, nil
	case "circle":
		circle, err := actor.NewCircle(s.Radius)
		if err != nil {
			return nil, err
		}
		return circle, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, s.Type)
	}
}

func toVec2(values []float64) (mgl64.Vec2, error) {
	if len(values) != 2 {
		return mgl64.Vec2{}, fmt.Errorf("expected 2 coordinates, got %d", len(values))
	}
	return mgl64.Vec2{values[0], values[1]}, nil
}
