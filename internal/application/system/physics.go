package system

import (
	"math"

	"github.com/younwookim/grapple/internal/domain/entity"
	"github.com/younwookim/grapple/internal/infrastructure/config"
)

const (
	// boxcastScale shrinks correction sweeps so they do not touch
	// geometry flush against the player's sides.
	boxcastScale = 0.99
	sweepStep    = 0.1
	// upwardCastLength must reach colliders just above the head.
	upwardCastLength = 0.5
	// jumpThruTolerance absorbs float error in hit points on a platform top.
	jumpThruTolerance = 1e-6
)

// PhysicsSystem moves a box through level geometry with ray casts and
// reports which sides were blocked. It keeps the facing direction
// between moves.
type PhysicsSystem struct {
	config   *config.CollisionConfig
	geometry GeometryQuery

	CollisionMask entity.Mask
	DeathMask     entity.Mask

	// FaceDirection is 1 or -1 and follows the sign of the last nonzero
	// horizontal displacement.
	FaceDirection int
	// NearbyWallDirection is the side found by the last CheckNearbyWall hit.
	NearbyWallDirection int
	// Swinging enables side corner correction.
	Swinging bool
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.CollisionConfig, geometry GeometryQuery) *PhysicsSystem {
	return &PhysicsSystem{
		config:        cfg,
		geometry:      geometry,
		CollisionMask: entity.MaskCollision,
		DeathMask:     entity.MaskDeath,
		FaceDirection: 1,
	}
}

// Configure swaps the collision tuning.
func (s *PhysicsSystem) Configure(cfg *config.CollisionConfig) {
	s.config = cfg
}

// Box lays out the ray origins for a box centered at center.
func (s *PhysicsSystem) Box(center, size entity.Vec2) entity.BoundingBox {
	return entity.NewBoundingBox(center, size, s.config.SkinWidth, s.config.RaySpacing)
}

// Move resolves a desired displacement against the geometry and returns
// the displacement that can be applied without overlapping it, together
// with the contact flags of this move. The horizontal axis is resolved
// first, then the vertical axis using the corrected horizontal offset.
func (s *PhysicsSystem) Move(box entity.BoundingBox, displacement entity.Vec2) (entity.Vec2, entity.CollisionInfo) {
	var info entity.CollisionInfo

	if displacement.X != 0 {
		s.FaceDirection = int(entity.Sign(displacement.X))
	}

	displacement = s.horizontalCollisions(box, displacement, &info)

	if displacement.Y != 0 {
		displacement = s.verticalCollisions(box, displacement, &info)
	}

	return displacement, info
}

func (s *PhysicsSystem) horizontalCollisions(box entity.BoundingBox, v entity.Vec2, info *entity.CollisionInfo) entity.Vec2 {
	dirX := float64(s.FaceDirection)
	skin := box.Skin
	rayLength := math.Abs(v.X) + skin
	if math.Abs(v.X) < skin {
		rayLength = skin * 2
	}

	hitDistance := -1.0
	for i := 0; i < box.HorizontalRayCount; i++ {
		origin := box.BottomRight
		if dirX == -1 {
			origin = box.BottomLeft
		}
		origin.Y += box.HorizontalRaySpacing * float64(i)

		hit, ok := s.geometry.Raycast(origin, entity.Vec2{X: dirX}, rayLength, s.CollisionMask)
		if ok {
			hitDistance = hit.Distance
			// later rays only report closer hits
			rayLength = hit.Distance
		}
	}

	if hitDistance < 0 {
		return v
	}

	corrected := false
	if s.Swinging {
		v, corrected = s.trySideCornerCorrection(box, v)
	}

	if !corrected {
		v.X = (hitDistance - skin) * dirX
		info.Left = dirX == -1
		info.Right = dirX == 1
	}
	info.Corrected = info.Corrected || corrected
	return v
}

// trySideCornerCorrection looks for a nearby height at which the box
// clears the obstacle ahead, first above then below.
func (s *PhysicsSystem) trySideCornerCorrection(box entity.BoundingBox, v entity.Vec2) (entity.Vec2, bool) {
	half := box.Size.Scale(boxcastScale / 2)
	castLength := s.config.SideCornerCorrection
	dir := entity.Vec2{X: 1}
	if v.X < 0 {
		dir.X = -1
	}
	mask := s.CollisionMask | s.DeathMask
	steps := s.config.SideCornerCorrection * 10

	if v.Y >= 0 {
		for i := 1; float64(i) < steps; i++ {
			origin := entity.Vec2{X: box.Center.X, Y: box.Center.Y + v.Y + sweepStep*float64(i)}
			if _, hit := s.geometry.BoxCast(origin, half, dir, castLength, mask); !hit {
				v.Y = math.Ceil(origin.Y*10)/10 - box.Center.Y
				return v, true
			}
		}
	}

	if v.Y <= 0 {
		for i := 1; float64(i) < steps; i++ {
			origin := entity.Vec2{X: box.Center.X, Y: box.Center.Y + v.Y - sweepStep*float64(i)}
			if _, hit := s.geometry.BoxCast(origin, half, dir, castLength, mask); !hit {
				v.Y = math.Floor(origin.Y*10)/10 - box.Center.Y
				return v, true
			}
		}
	}

	return v, false
}

func (s *PhysicsSystem) verticalCollisions(box entity.BoundingBox, v entity.Vec2, info *entity.CollisionInfo) entity.Vec2 {
	dirY := entity.Sign(v.Y)
	rayLength := math.Abs(v.Y) + box.Skin

	mask := s.CollisionMask
	if v.Y <= 0 {
		mask |= entity.MaskOf(entity.LayerJumpThru)
	}

	hitDistance := -1.0
	for i := 0; i < box.VerticalRayCount; i++ {
		origin := box.TopLeft
		if dirY == -1 {
			origin = box.BottomLeft
		}
		origin.X += box.VerticalRaySpacing*float64(i) + v.X

		hit, ok := s.geometry.Raycast(origin, entity.Vec2{Y: dirY}, rayLength, mask)
		if !ok {
			continue
		}
		if hit.Layer == entity.LayerJumpThru && hit.Collider != nil &&
			hit.Collider.Top()-hit.Point.Y > jumpThruTolerance {
			// started below the platform top
			continue
		}
		hitDistance = hit.Distance
		rayLength = hit.Distance
	}

	if hitDistance < 0 {
		return v
	}

	corrected := false
	if v.Y > 0 {
		v, corrected = s.tryCornerCorrection(box, v)
	}

	if !corrected {
		v.Y = (hitDistance - box.Skin) * dirY
		info.Below = dirY == -1
		info.Above = dirY == 1
	}
	info.Corrected = info.Corrected || corrected
	return v
}

// tryCornerCorrection nudges a rising box sideways around a ceiling corner.
// Only grid-aligned geometry is supported.
func (s *PhysicsSystem) tryCornerCorrection(box entity.BoundingBox, v entity.Vec2) (entity.Vec2, bool) {
	half := box.Size.Scale(boxcastScale / 2)
	up := entity.Vec2{Y: 1}
	mask := s.CollisionMask | s.DeathMask
	steps := s.config.UpwardCornerCorrection * 10

	// Try nudging left
	if v.X <= 0 {
		for i := 1; float64(i) < steps; i++ {
			origin := entity.Vec2{X: box.Center.X + v.X - sweepStep*float64(i), Y: box.Center.Y}
			if _, hit := s.geometry.BoxCast(origin, half, up, upwardCastLength, mask); !hit {
				v.X = math.Ceil(origin.X*10)/10 - box.Center.X
				return v, true
			}
		}
	}

	// Try nudging right
	if v.X >= 0 {
		for i := 1; float64(i) < steps; i++ {
			origin := entity.Vec2{X: box.Center.X + v.X + sweepStep*float64(i), Y: box.Center.Y}
			if _, hit := s.geometry.BoxCast(origin, half, up, upwardCastLength, mask); !hit {
				v.X = math.Floor(origin.X*10)/10 - box.Center.X
				return v, true
			}
		}
	}

	return v, false
}

// CheckNearbyWall casts to both sides within the nearby-wall distance and
// records the first side that has a wall.
func (s *PhysicsSystem) CheckNearbyWall(box entity.BoundingBox) bool {
	rayLength := s.config.NearbyWallDistance

	for _, dirX := range [2]float64{1, -1} {
		for i := 0; i < box.HorizontalRayCount; i++ {
			origin := box.BottomRight
			if dirX == -1 {
				origin = box.BottomLeft
			}
			origin.Y += box.HorizontalRaySpacing * float64(i)

			if _, ok := s.geometry.Raycast(origin, entity.Vec2{X: dirX}, rayLength, s.CollisionMask); ok {
				s.NearbyWallDirection = int(dirX)
				return true
			}
		}
	}
	return false
}
