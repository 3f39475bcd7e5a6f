package system

import (
	"github.com/younwookim/grapple/internal/domain/entity"
	"github.com/younwookim/grapple/internal/infrastructure/config"
)

// SpawnChar marks the player spawn cell in a collision layer.
const SpawnChar = 'P'

const defaultSpinnerRadius = 0.5

var defaultTileChars = map[rune]entity.TileType{
	'#': entity.TileWall,
	'.': entity.TileEmpty,
	'=': entity.TileJumpThru,
	'x': entity.TileNoGrapple,
	'^': entity.TileSpike,
	'L': entity.TileLauncher,
	'G': entity.TileGoal,
	'S': entity.TileSpring,
}

var tileTypeNames = map[string]entity.TileType{
	"empty":     entity.TileEmpty,
	"wall":      entity.TileWall,
	"jumpthru":  entity.TileJumpThru,
	"nograpple": entity.TileNoGrapple,
	"spike":     entity.TileSpike,
	"launcher":  entity.TileLauncher,
	"goal":      entity.TileGoal,
	"spring":    entity.TileSpring,
}

// LoadStage converts a RoomConfig into a Stage entity. bodyHeight places
// the spawn so the player's feet rest on the bottom of the spawn cell.
// Short rows are padded with empty tiles.
func LoadStage(cfg *config.RoomConfig, bodyHeight float64) *entity.Stage {
	rows := cfg.Layers.Collision
	height := len(rows)
	width := 0
	for _, row := range rows {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}

	mapping := make(map[rune]entity.TileType, len(defaultTileChars)+len(cfg.TileMapping))
	for ch, t := range defaultTileChars {
		mapping[ch] = t
	}
	for key, m := range cfg.TileMapping {
		r := []rune(key)
		if len(r) != 1 {
			continue
		}
		if t, ok := tileTypeNames[m.Type]; ok {
			mapping[r[0]] = t
		}
	}

	stage := &entity.Stage{
		ID:     cfg.ID,
		Name:   cfg.Name,
		Next:   cfg.Next,
		Width:  width,
		Height: height,
		Tiles:  make([][]entity.Tile, height),
		FlipX:  cfg.FlipX,
		Spawn:  entity.Vec2{X: 1.5, Y: 1 + bodyHeight/2},
	}

	for y, row := range rows {
		stage.Tiles[y] = make([]entity.Tile, width)
		for x, ch := range []rune(row) {
			if ch == SpawnChar {
				stage.Spawn = entity.Vec2{
					X: float64(x) + 0.5,
					Y: float64(height-1-y) + bodyHeight/2,
				}
				continue
			}
			t := mapping[ch]
			stage.Tiles[y][x] = entity.Tile{Type: t, Solid: isSolid(t)}
		}
	}

	for _, sc := range cfg.Spinners {
		radius := sc.Radius
		if radius <= 0 {
			radius = defaultSpinnerRadius
		}
		stage.Spinners = append(stage.Spinners, entity.SpinnerSpec{
			Center: entity.Vec2{X: sc.X, Y: sc.Y},
			Radius: radius,
			Spin:   entity.Spin{Clockwise: sc.Clockwise, Speed: sc.Speed},
		})
	}

	return stage
}

func isSolid(t entity.TileType) bool {
	return t == entity.TileWall || t == entity.TileNoGrapple
}
