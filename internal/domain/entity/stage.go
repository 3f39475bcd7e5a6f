package entity

import "math"

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileWall
	TileJumpThru
	TileNoGrapple
	TileSpike
	TileLauncher
	TileGoal
	TileSpring
)

// Tile represents a single tile in the stage
type Tile struct {
	Type  TileType
	Solid bool
}

// SpinnerSpec places a rotating hook target.
type SpinnerSpec struct {
	Center Vec2
	Radius float64
	Spin   Spin
}

// Stage is a room laid out on a unit grid. Row 0 of Tiles is the top row;
// world y grows upward from the bottom edge of the stage.
type Stage struct {
	ID       string
	Name     string
	Next     string
	Width    int
	Height   int
	Tiles    [][]Tile
	Spawn    Vec2
	FlipX    bool
	Spinners []SpinnerSpec
}

// GetTile returns the tile at grid column tx and world row ty (0 = bottom).
// Tiles outside the stage are walls.
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TileWall, Solid: true}
	}
	return s.Tiles[s.Height-1-ty][tx]
}

// GetTileAt returns the tile containing a world point.
func (s *Stage) GetTileAt(p Vec2) Tile {
	return s.GetTile(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}

// TileBounds returns the collider rectangle of the tile at (tx, ty).
// Most tiles fill their cell; thin platforms, spikes, springs and
// launchers occupy part of it.
func (s *Stage) TileBounds(tx, ty int) (min, max Vec2) {
	x, y := float64(tx), float64(ty)
	switch s.GetTile(tx, ty).Type {
	case TileJumpThru:
		return Vec2{x, y + 0.75}, Vec2{x + 1, y + 1}
	case TileSpike, TileSpring:
		return Vec2{x, y}, Vec2{x + 1, y + 0.5}
	case TileLauncher:
		return Vec2{x + 0.2, y + 0.2}, Vec2{x + 0.8, y + 0.8}
	default:
		return Vec2{x, y}, Vec2{x + 1, y + 1}
	}
}

// Overlaps reports whether the rectangle touches the bounds of any tile
// of type t. Touching edges do not count.
func (s *Stage) Overlaps(min, max Vec2, t TileType) bool {
	x0 := int(math.Floor(min.X))
	x1 := int(math.Floor(max.X))
	y0 := int(math.Floor(min.Y))
	y1 := int(math.Floor(max.Y))

	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			if s.GetTile(tx, ty).Type != t {
				continue
			}
			bMin, bMax := s.TileBounds(tx, ty)
			if min.X < bMax.X && max.X > bMin.X && min.Y < bMax.Y && max.Y > bMin.Y {
				return true
			}
		}
	}
	return false
}

// WorldWidth returns the stage width in world units.
func (s *Stage) WorldWidth() float64 { return float64(s.Width) }

// WorldHeight returns the stage height in world units.
func (s *Stage) WorldHeight() float64 { return float64(s.Height) }
