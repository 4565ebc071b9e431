package geom

import (
	"math"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestWindingOf(t *testing.T) {
	tests := []struct {
		name     string
		points   []mgl64.Vec2
		expected Winding
	}{
		{"ccw triangle", []mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}}, WindingCCW},
		{"cw triangle", []mgl64.Vec2{{0, 0}, {0, 1}, {1, 0}}, WindingCW},
		{"collinear", []mgl64.Vec2{{0, 0}, {1, 1}, {2, 2}}, WindingNone},
		{"duplicated point", []mgl64.Vec2{{1, 1}, {1, 1}, {3, 2}}, WindingNone},
		{"two points", []mgl64.Vec2{{0, 0}, {1, 0}}, WindingNone},
		{"ccw hexagon", []mgl64.Vec2{{2, -1}, {2, 1}, {-2, 1}, {-3, 0}, {-3, -1}, {-1, -2}}, WindingCCW},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WindingOf(tt.points...))
		})
	}
}

func TestWindingOf_Reversed(t *testing.T) {
	points := []mgl64.Vec2{{-1, -1}, {3, 0}, {1, 4}}
	reversed := slices.Clone(points)
	slices.Reverse(reversed)

	assert.Equal(t, WindingCCW, WindingOf(points...))
	assert.Equal(t, WindingCW, WindingOf(reversed...))
	assert.Equal(t, WindingOf(points...).Reverse(), WindingOf(reversed...))
}

func TestSignedArea(t *testing.T) {
	square := []mgl64.Vec2{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	assert.InDelta(t, 4.0, SignedArea(square), 1e-12)

	slices.Reverse(square)
	assert.InDelta(t, -4.0, SignedArea(square), 1e-12)

	assert.Zero(t, SignedArea(square[:2]))
}

func TestIsConvex(t *testing.T) {
	tests := []struct {
		name     string
		points   []mgl64.Vec2
		expected bool
	}{
		{"triangle", []mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}}, true},
		{"cw square", []mgl64.Vec2{{0, 0}, {0, 1}, {1, 1}, {1, 0}}, true},
		{"collinear vertex on edge", []mgl64.Vec2{{0, 0}, {1, 0}, {2, 0}, {2, 2}, {0, 2}}, true},
		{"arrow head", []mgl64.Vec2{{0, 0}, {2, 1}, {0, 2}, {1, 1}}, false},
		{"pentagram", pentagram(), false},
		{"collinear", []mgl64.Vec2{{0, 0}, {1, 0}, {2, 0}}, false},
		{"too few", []mgl64.Vec2{{0, 0}, {1, 0}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsConvex(tt.points))
		})
	}
}

func pentagram() []mgl64.Vec2 {
	points := make([]mgl64.Vec2, 5)
	for i := range points {
		angle := math.Pi/2 + float64(i)*4*math.Pi/5
		points[i] = mgl64.Vec2{math.Cos(angle), math.Sin(angle)}
	}
	return points
}

func TestTriangleContains(t *testing.T) {
	a, b, c := mgl64.Vec2{-1, -1}, mgl64.Vec2{2, -1}, mgl64.Vec2{0, 2}

	tests := []struct {
		name     string
		point    mgl64.Vec2
		expected bool
	}{
		{"inside", mgl64.Vec2{0, 0}, true},
		{"vertex", a, true},
		{"on edge", mgl64.Vec2{0.5, -1}, true},
		{"outside below", mgl64.Vec2{0, -2}, false},
		{"outside right", mgl64.Vec2{3, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TriangleContains(a, b, c, tt.point))
			// winding agnostic
			assert.Equal(t, tt.expected, TriangleContains(a, c, b, tt.point))
		})
	}
}
