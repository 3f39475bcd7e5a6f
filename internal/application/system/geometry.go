package system

import "github.com/younwookim/grapple/internal/domain/entity"

// GeometryQuery answers casts against static level geometry.
// Every query returns the nearest hit on a layer in mask, if any.
// Implementations must be synchronous and side-effect free.
type GeometryQuery interface {
	Raycast(origin, dir entity.Vec2, maxDistance float64, mask entity.Mask) (entity.Hit, bool)
	BoxCast(origin, halfExtents, dir entity.Vec2, maxDistance float64, mask entity.Mask) (entity.Hit, bool)
	CircleCast(origin entity.Vec2, radius float64, dir entity.Vec2, maxDistance float64, mask entity.Mask) (entity.Hit, bool)
}
