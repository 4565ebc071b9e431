package actor

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/akmonengine/planar/geom"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrTooFewVertices   = errors.New("a convex polygon needs at least 3 vertices")
	ErrDegenerateShape  = errors.New("degenerate shape")
	ErrNotConvex        = errors.New("polygon is not convex")
	ErrInvalidDimension = errors.New("shape dimensions must be strictly positive")
)

// CircleSegments is the number of vertices of the polygon approximating a Circle
const CircleSegments = 64

// ShapeInterface is the interface that all convex shapes must implement.
// Shapes live in their local frame and are never mutated once built,
// so they can be shared between goroutines.
type ShapeInterface interface {
	// Support returns the point of the shape furthest along direction
	Support(direction mgl64.Vec2) mgl64.Vec2
	// Vertices lists the outline in order. Smooth shapes return an approximation.
	Vertices() []mgl64.Vec2
	// Centroid returns an interior point, used to seed the GJK search direction
	Centroid() mgl64.Vec2
	// AABB calculates the axis-aligned bounding box at the given transform
	AABB(transform Transform) AABB
}

// ConvexPolygon is a convex polygon given by its ordered vertices
type ConvexPolygon struct {
	vertices []mgl64.Vec2
	centroid mgl64.Vec2
	winding  geom.Winding
}

// NewConvexPolygon validates and copies the vertex list.
// The winding is kept as given: GJK only relies on the support function.
func NewConvexPolygon(vertices []mgl64.Vec2) (*ConvexPolygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewVertices, len(vertices))
	}

	winding := geom.WindingOf(vertices...)
	if winding == geom.WindingNone {
		return nil, fmt.Errorf("%w: vertices are collinear", ErrDegenerateShape)
	}
	if !geom.IsConvex(vertices) {
		return nil, ErrNotConvex
	}

	p := &ConvexPolygon{
		vertices: slices.Clone(vertices),
		winding:  winding,
	}
	p.centroid = areaCentroid(p.vertices)

	return p, nil
}

// areaCentroid returns the centre of mass of a non-degenerate polygon
func areaCentroid(vertices []mgl64.Vec2) mgl64.Vec2 {
	var cx, cy float64
	n := len(vertices)
	for i := 0; i < n; i++ {
		a, b := vertices[i], vertices[(i+1)%n]
		c := geom.Cross(a, b)
		cx += (a.X() + b.X()) * c
		cy += (a.Y() + b.Y()) * c
	}

	factor := 1 / (6 * geom.SignedArea(vertices))
	return mgl64.Vec2{cx * factor, cy * factor}
}

// Support scans the vertices and keeps the first one with the largest projection
func (p *ConvexPolygon) Support(direction mgl64.Vec2) mgl64.Vec2 {
	best := p.vertices[0]
	bestDot := best.Dot(direction)

	for _, v := range p.vertices[1:] {
		if d := v.Dot(direction); d > bestDot {
			best = v
			bestDot = d
		}
	}

	return best
}

func (p *ConvexPolygon) Vertices() []mgl64.Vec2 {
	return slices.Clone(p.vertices)
}

func (p *ConvexPolygon) Centroid() mgl64.Vec2 {
	return p.centroid
}

// Winding reports the orientation the vertices were listed in
func (p *ConvexPolygon) Winding() geom.Winding {
	return p.winding
}

func (p *ConvexPolygon) AABB(transform Transform) AABB {
	world := make([]mgl64.Vec2, len(p.vertices))
	for i, v := range p.vertices {
		world[i] = transform.Transv(v)
	}

	return AABBFromPoints(world)
}

// Rect represents an axis-aligned rectangle centred on its local origin
type Rect struct {
	HalfExtents mgl64.Vec2
}

// NewRect creates a width x height rectangle
func NewRect(width, height float64) (*Rect, error) {
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("%w: rect %vx%v", ErrInvalidDimension, width, height)
	}

	return &Rect{HalfExtents: mgl64.Vec2{width / 2, height / 2}}, nil
}

func (r *Rect) Support(direction mgl64.Vec2) mgl64.Vec2 {
	hx, hy := r.HalfExtents.X(), r.HalfExtents.Y()

	if direction.X() < 0 {
		hx = -hx
	}
	if direction.Y() < 0 {
		hy = -hy
	}

	return mgl64.Vec2{hx, hy}
}

// Vertices returns the 4 corners counter-clockwise, starting bottom-left
func (r *Rect) Vertices() []mgl64.Vec2 {
	hx, hy := r.HalfExtents.X(), r.HalfExtents.Y()

	return []mgl64.Vec2{
		{-hx, -hy},
		{hx, -hy},
		{hx, hy},
		{-hx, hy},
	}
}

func (r *Rect) Centroid() mgl64.Vec2 {
	return mgl64.Vec2{}
}

func (r *Rect) AABB(transform Transform) AABB {
	corners := r.Vertices()
	for i, c := range corners {
		corners[i] = transform.Transv(c)
	}

	return AABBFromPoints(corners)
}

// Circle represents a disc centred on its local origin
type Circle struct {
	Radius float64
}

func NewCircle(radius float64) (*Circle, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: radius %v", ErrInvalidDimension, radius)
	}

	return &Circle{Radius: radius}, nil
}

// Support returns the boundary point along direction, or (radius, 0) for a null direction
func (c *Circle) Support(direction mgl64.Vec2) mgl64.Vec2 {
	length := direction.Len()
	if length == 0 {
		return mgl64.Vec2{c.Radius, 0}
	}

	return direction.Mul(c.Radius / length)
}

// Vertices approximates the circle with CircleSegments points, counter-clockwise
func (c *Circle) Vertices() []mgl64.Vec2 {
	vertices := make([]mgl64.Vec2, CircleSegments)
	for i := range vertices {
		angle := 2 * math.Pi * float64(i) / CircleSegments
		vertices[i] = mgl64.Vec2{math.Cos(angle), math.Sin(angle)}.Mul(c.Radius)
	}

	return vertices
}

func (c *Circle) Centroid() mgl64.Vec2 {
	return mgl64.Vec2{}
}

// AABB of a disc only depends on the transformed centre and the scaled radius
func (c *Circle) AABB(transform Transform) AABB {
	center := transform.Transv(mgl64.Vec2{})
	r := c.Radius * transform.Scale

	return AABB{
		Min: center.Sub(mgl64.Vec2{r, r}),
		Max: center.Add(mgl64.Vec2{r, r}),
	}
}
