package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBody(t *testing.T) {
	rect, err := NewRect(2, 2)
	require.NoError(t, err)

	_, err = NewBody(Identity(), nil, BodyTypeDynamic)
	assert.ErrorIs(t, err, ErrNilShape)

	_, err = NewBody(Transform{}, rect, BodyTypeDynamic)
	assert.ErrorIs(t, err, ErrInvalidScale)

	a, err := NewBody(Identity().Translate(mgl64.Vec2{5, 0}), rect, BodyTypeDynamic)
	require.NoError(t, err)
	b, err := NewBody(Identity(), rect, BodyTypeStatic)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.IsStatic())
	assert.True(t, b.IsStatic())
	assert.Equal(t, AABB{Min: mgl64.Vec2{4, -1}, Max: mgl64.Vec2{6, 1}}, a.AABB())
}

func TestBodySetTransform(t *testing.T) {
	circle, err := NewCircle(1)
	require.NoError(t, err)
	body, err := NewBody(Identity(), circle, BodyTypeDynamic)
	require.NoError(t, err)

	require.NoError(t, body.SetTransform(Transform{Position: mgl64.Vec2{3, 3}, Scale: 2}))
	assert.Equal(t, AABB{Min: mgl64.Vec2{1, 1}, Max: mgl64.Vec2{5, 5}}, body.AABB())

	err = body.SetTransform(Transform{Scale: -1})
	assert.ErrorIs(t, err, ErrInvalidScale)
	assert.Equal(t, 2.0, body.Transform.Scale, "rejected transform is not applied")

	body.Transform.Position = mgl64.Vec2{}
	body.UpdateAABB()
	assert.Equal(t, AABB{Min: mgl64.Vec2{-2, -2}, Max: mgl64.Vec2{2, 2}}, body.AABB())
}

func TestBodyTypeString(t *testing.T) {
	assert.Equal(t, "dynamic", BodyTypeDynamic.String())
	assert.Equal(t, "static", BodyTypeStatic.String())
	assert.Equal(t, "BodyType(7)", BodyType(7).String())
}
