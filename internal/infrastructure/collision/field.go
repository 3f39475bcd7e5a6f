// Package collision answers geometry queries against a room's static
// colliders, backed by a Chipmunk space.
package collision

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/younwookim/grapple/internal/domain/entity"
)

// Field is a static collision world. It is not safe for concurrent use
// while colliders are being added; queries never mutate it.
type Field struct {
	space     *cp.Space
	colliders map[*cp.Shape]*entity.Collider
	shapes    []*entity.Collider
}

// NewField creates an empty field.
func NewField() *Field {
	return &Field{
		space:     cp.NewSpace(),
		colliders: make(map[*cp.Shape]*entity.Collider),
	}
}

// AddBox adds an axis-aligned box collider.
func (f *Field) AddBox(min, max entity.Vec2, layer entity.Layer, tag entity.Tag) *entity.Collider {
	c := &entity.Collider{Min: min, Max: max, Layer: layer, Tag: tag}
	shape := cp.NewBox2(f.space.StaticBody, cp.BB{L: min.X, B: min.Y, R: max.X, T: max.Y}, 0)
	f.add(shape, c)
	return c
}

// AddCircle adds a circular collider. spin is only used by spinners.
func (f *Field) AddCircle(center entity.Vec2, radius float64, layer entity.Layer, tag entity.Tag, spin *entity.Spin) *entity.Collider {
	c := &entity.Collider{
		Min:   entity.Vec2{X: center.X - radius, Y: center.Y - radius},
		Max:   entity.Vec2{X: center.X + radius, Y: center.Y + radius},
		Layer: layer,
		Tag:   tag,
		Spin:  spin,
	}
	shape := cp.NewCircle(f.space.StaticBody, radius, cp.Vector{X: center.X, Y: center.Y})
	f.add(shape, c)
	return c
}

func (f *Field) add(shape *cp.Shape, c *entity.Collider) {
	shape.SetFilter(cp.NewShapeFilter(0, layerBit(c.Layer), ^uint(0)))
	f.space.AddShape(shape)
	f.colliders[shape] = c
	f.shapes = append(f.shapes, c)
}

// Colliders returns every collider in insertion order.
func (f *Field) Colliders() []*entity.Collider {
	return f.shapes
}

func layerBit(l entity.Layer) uint {
	return uint(entity.MaskOf(l))
}

func queryFilter(mask entity.Mask) cp.ShapeFilter {
	return cp.NewShapeFilter(0, ^uint(0), uint(mask))
}

// Raycast returns the nearest hit along dir within maxDistance.
func (f *Field) Raycast(origin, dir entity.Vec2, maxDistance float64, mask entity.Mask) (entity.Hit, bool) {
	return f.segmentCast(origin, 0, dir, maxDistance, mask)
}

// minSweep is the shortest circle cast that is swept rather than
// treated as an overlap test.
const minSweep = 1e-9

// CircleCast sweeps a circle along dir. A zero-length cast reports
// whatever the circle overlaps at origin.
func (f *Field) CircleCast(origin entity.Vec2, radius float64, dir entity.Vec2, maxDistance float64, mask entity.Mask) (entity.Hit, bool) {
	if maxDistance < minSweep || dir.Len() == 0 {
		return f.overlapCircle(origin, radius, mask)
	}
	return f.segmentCast(origin, radius, dir, maxDistance, mask)
}

func (f *Field) segmentCast(origin entity.Vec2, radius float64, dir entity.Vec2, maxDistance float64, mask entity.Mask) (entity.Hit, bool) {
	dir = dir.Normalized()
	if maxDistance <= 0 || dir.Len() == 0 {
		return entity.Hit{}, false
	}

	end := origin.Add(dir.Scale(maxDistance))
	info := f.space.SegmentQueryFirst(
		cp.Vector{X: origin.X, Y: origin.Y},
		cp.Vector{X: end.X, Y: end.Y},
		radius,
		queryFilter(mask),
	)
	if info.Shape == nil {
		return entity.Hit{}, false
	}
	c := f.colliders[info.Shape]
	if c == nil {
		return entity.Hit{}, false
	}

	return entity.Hit{
		Distance: info.Alpha * maxDistance,
		Point:    entity.Vec2{X: info.Point.X, Y: info.Point.Y},
		Normal:   entity.Vec2{X: info.Normal.X, Y: info.Normal.Y},
		Layer:    c.Layer,
		Tag:      c.Tag,
		Collider: c,
	}, true
}

func (f *Field) overlapCircle(origin entity.Vec2, radius float64, mask entity.Mask) (entity.Hit, bool) {
	info := f.space.PointQueryNearest(cp.Vector{X: origin.X, Y: origin.Y}, radius, queryFilter(mask))
	if info == nil || info.Shape == nil {
		return entity.Hit{}, false
	}
	c := f.colliders[info.Shape]
	if c == nil {
		return entity.Hit{}, false
	}

	return entity.Hit{
		Point:    entity.Vec2{X: info.Point.X, Y: info.Point.Y},
		Normal:   entity.Vec2{X: info.Gradient.X, Y: info.Gradient.Y},
		Layer:    c.Layer,
		Tag:      c.Tag,
		Collider: c,
	}, true
}

// BoxCast sweeps an axis-aligned box with the given half extents along dir.
// The hit point is the box center at the moment of contact.
func (f *Field) BoxCast(origin, halfExtents, dir entity.Vec2, maxDistance float64, mask entity.Mask) (entity.Hit, bool) {
	dir = dir.Normalized()
	if maxDistance < 0 {
		maxDistance = 0
	}
	end := origin.Add(dir.Scale(maxDistance))

	query := cp.BB{
		L: math.Min(origin.X, end.X) - halfExtents.X,
		B: math.Min(origin.Y, end.Y) - halfExtents.Y,
		R: math.Max(origin.X, end.X) + halfExtents.X,
		T: math.Max(origin.Y, end.Y) + halfExtents.Y,
	}

	best := entity.Hit{Distance: math.Inf(1)}
	found := false
	f.space.BBQuery(query, queryFilter(mask), func(shape *cp.Shape, _ interface{}) {
		c := f.colliders[shape]
		if c == nil {
			return
		}
		min := c.Min.Sub(halfExtents)
		max := c.Max.Add(halfExtents)
		t, normal, ok := sweepAABB(origin, end.Sub(origin), min, max)
		if !ok {
			return
		}
		dist := t * maxDistance
		if dist < best.Distance {
			best = entity.Hit{
				Distance: dist,
				Point:    origin.Add(dir.Scale(dist)),
				Normal:   normal,
				Layer:    c.Layer,
				Tag:      c.Tag,
				Collider: c,
			}
			found = true
		}
	}, nil)

	if !found {
		return entity.Hit{}, false
	}
	return best, true
}
