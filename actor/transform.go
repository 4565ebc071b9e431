package actor

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidScale = errors.New("scale must be strictly positive")

// Transform is a 2D similarity transform: a uniform scale, then a rotation, then a translation.
// Transforms are values: every operation returns a new Transform and leaves the receiver untouched.
//
// The zero value is NOT the identity (its scale is 0), use Identity or NewTransform.
type Transform struct {
	Position mgl64.Vec2
	Rotation float64 // radians, counter-clockwise
	Scale    float64
}

// Identity returns the neutral transform {(0,0), 0, 1}
func Identity() Transform {
	return Transform{Scale: 1}
}

// NewTransform creates a transform, rejecting non-positive (or NaN) scales.
func NewTransform(position mgl64.Vec2, rotation, scale float64) (Transform, error) {
	t := Transform{Position: position, Rotation: rotation, Scale: scale}
	if err := t.Validate(); err != nil {
		return Transform{}, err
	}

	return t, nil
}

// TransformFromMatrix extracts the similarity transform from a homogeneous 2D matrix.
// The matrix must not carry shear, mirroring or non-uniform scaling.
func TransformFromMatrix(m mgl64.Mat3) (Transform, error) {
	t := Transform{
		Position: mgl64.Vec2{m.At(0, 2), m.At(1, 2)},
		Rotation: math.Atan2(m.At(1, 0), m.At(0, 0)),
		Scale:    math.Hypot(m.At(0, 0), m.At(1, 0)),
	}
	if err := t.Validate(); err != nil {
		return Transform{}, err
	}

	return t, nil
}

// Validate returns ErrInvalidScale when the scale is not strictly positive
func (t Transform) Validate() error {
	if !(t.Scale > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidScale, t.Scale)
	}
	return nil
}

// Translate moves the transform by v expressed in its local frame:
// v is rotated and scaled by the current transform before being added.
func (t Transform) Translate(v mgl64.Vec2) Transform {
	return Transform{
		Position: t.Position.Add(rotate(v, t.Rotation).Mul(t.Scale)),
		Rotation: t.Rotation,
		Scale:    t.Scale,
	}
}

// Rotate rotates the whole transform about the parent origin by angle.
func (t Transform) Rotate(angle float64) Transform {
	return Transform{
		Position: rotate(t.Position, angle),
		Rotation: t.Rotation + angle,
		Scale:    t.Scale,
	}
}

// ScaleBy scales the whole transform about the parent origin by factor.
// It panics if factor is not strictly positive.
func (t Transform) ScaleBy(factor float64) Transform {
	if !(factor > 0) {
		panic(fmt.Errorf("%w: factor %v", ErrInvalidScale, factor))
	}

	return Transform{
		Position: t.Position.Mul(factor),
		Rotation: t.Rotation,
		Scale:    t.Scale * factor,
	}
}

// Inverse returns the transform undoing t, so that t.Compose(t.Inverse()) is the identity
func (t Transform) Inverse() Transform {
	return Transform{
		Position: rotate(t.Position, -t.Rotation).Mul(-1 / t.Scale),
		Rotation: -t.Rotation,
		Scale:    1 / t.Scale,
	}
}

// Compose returns the transform applying other inside the frame produced by t:
// t.Compose(other).Transv(p) == t.Transv(other.Transv(p)).
func (t Transform) Compose(other Transform) Transform {
	return Transform{
		Position: t.Position.Add(rotate(other.Position.Mul(t.Scale), t.Rotation)),
		Rotation: t.Rotation + other.Rotation,
		Scale:    t.Scale * other.Scale,
	}
}

// Transv maps a local point to the parent frame
func (t Transform) Transv(point mgl64.Vec2) mgl64.Vec2 {
	return rotate(point, t.Rotation).Mul(t.Scale).Add(t.Position)
}

// InverseTransv maps a parent-frame point back to the local frame
func (t Transform) InverseTransv(point mgl64.Vec2) mgl64.Vec2 {
	return rotate(point.Sub(t.Position), -t.Rotation).Mul(1 / t.Scale)
}

// TransformDirection rotates a direction. Scale and translation do not apply to directions.
func (t Transform) TransformDirection(direction mgl64.Vec2) mgl64.Vec2 {
	return rotate(direction, t.Rotation)
}

// Matrix returns the homogeneous matrix T * R * S
func (t Transform) Matrix() mgl64.Mat3 {
	return mgl64.Translate2D(t.Position.X(), t.Position.Y()).
		Mul3(mgl64.HomogRotate2D(t.Rotation)).
		Mul3(mgl64.Scale2D(t.Scale, t.Scale))
}

// ApproxEqual compares two transforms component-wise with an absolute tolerance,
// rotations modulo 2π.
func (t Transform) ApproxEqual(other Transform, epsilon float64) bool {
	angle := math.Remainder(t.Rotation-other.Rotation, 2*math.Pi)

	return math.Abs(t.Position.X()-other.Position.X()) <= epsilon &&
		math.Abs(t.Position.Y()-other.Position.Y()) <= epsilon &&
		math.Abs(angle) <= epsilon &&
		math.Abs(t.Scale-other.Scale) <= epsilon
}

func rotate(v mgl64.Vec2, angle float64) mgl64.Vec2 {
	if angle == 0 {
		return v
	}
	return mgl64.Rotate2D(angle).Mul2x1(v)
}
