package actor

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrNilShape = errors.New("body has no shape")

// BodyType represents how a body takes part in the proximity queries
type BodyType int

const (
	// BodyTypeDynamic bodies are tested against every other body
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies never move (e.g. walls, level geometry).
	// Two static bodies are never tested against each other.
	BodyTypeStatic
)

func (t BodyType) String() string {
	switch t {
	case BodyTypeDynamic:
		return "dynamic"
	case BodyTypeStatic:
		return "static"
	default:
		return fmt.Sprintf("BodyType(%d)", int(t))
	}
}

// Body is a convex shape placed in world space
type Body struct {
	ID        uuid.UUID
	Name      string
	BodyType  BodyType
	Transform Transform
	Shape     ShapeInterface

	aabb AABB
}

// NewBody creates a body with a fresh random ID and computes its world AABB
func NewBody(transform Transform, shape ShapeInterface, bodyType BodyType) (*Body, error) {
	if shape == nil {
		return nil, ErrNilShape
	}
	if err := transform.Validate(); err != nil {
		return nil, fmt.Errorf("new body: %w", err)
	}

	body := &Body{
		ID:        uuid.New(),
		BodyType:  bodyType,
		Transform: transform,
		Shape:     shape,
	}
	body.UpdateAABB()

	return body, nil
}

// SetTransform moves the body and refreshes its AABB
func (b *Body) SetTransform(transform Transform) error {
	if err := transform.Validate(); err != nil {
		return fmt.Errorf("body %s: %w", b.ID, err)
	}

	b.Transform = transform
	b.UpdateAABB()

	return nil
}

// UpdateAABB recomputes the cached world AABB from the current transform.
// Call it after mutating Transform directly.
func (b *Body) UpdateAABB() {
	b.aabb = b.Shape.AABB(b.Transform)
}

// AABB returns the cached world AABB
func (b *Body) AABB() AABB {
	return b.aabb
}

// IsStatic reports whether the body never moves
func (b *Body) IsStatic() bool {
	return b.BodyType == BodyTypeStatic
}
