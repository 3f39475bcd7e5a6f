package collision

import (
	"github.com/younwookim/grapple/internal/domain/entity"
)

const launcherRadius = 0.3

// Build creates a field for a stage. Horizontal runs of equal tiles are
// merged into one box so rays and sweeps never catch on seams between
// neighbouring tiles.
func Build(stage *entity.Stage) *Field {
	f := NewField()

	for ty := 0; ty < stage.Height; ty++ {
		for tx := 0; tx < stage.Width; {
			tile := stage.GetTile(tx, ty)
			layer, ok := tileLayer(tile.Type)
			if !ok {
				if tile.Type == entity.TileLauncher {
					center := entity.Vec2{X: float64(tx) + 0.5, Y: float64(ty) + 0.5}
					f.AddCircle(center, launcherRadius, entity.LayerHookable, entity.TagLauncher, nil)
				}
				tx++
				continue
			}

			run := 1
			for tx+run < stage.Width && stage.GetTile(tx+run, ty).Type == tile.Type {
				run++
			}
			min, _ := stage.TileBounds(tx, ty)
			_, max := stage.TileBounds(tx+run-1, ty)
			f.AddBox(min, max, layer, entity.TagNone)
			tx += run
		}
	}

	for i := range stage.Spinners {
		s := stage.Spinners[i]
		spin := s.Spin
		f.AddCircle(s.Center, s.Radius, entity.LayerHookable, entity.TagSpinner, &spin)
	}

	addBounds(f, stage.WorldWidth(), stage.WorldHeight())
	return f
}

func tileLayer(t entity.TileType) (entity.Layer, bool) {
	switch t {
	case entity.TileWall:
		return entity.LayerSolid, true
	case entity.TileNoGrapple:
		return entity.LayerNoGrapple, true
	case entity.TileJumpThru:
		return entity.LayerJumpThru, true
	case entity.TileSpike:
		return entity.LayerDeath, true
	default:
		return 0, false
	}
}

// addBounds closes the room with one-unit walls outside its edges.
func addBounds(f *Field, w, h float64) {
	f.AddBox(entity.Vec2{X: -1, Y: -1}, entity.Vec2{X: w + 1, Y: 0}, entity.LayerSolid, entity.TagNone)
	f.AddBox(entity.Vec2{X: -1, Y: h}, entity.Vec2{X: w + 1, Y: h + 1}, entity.LayerSolid, entity.TagNone)
	f.AddBox(entity.Vec2{X: -1, Y: 0}, entity.Vec2{X: 0, Y: h}, entity.LayerSolid, entity.TagNone)
	f.AddBox(entity.Vec2{X: w, Y: 0}, entity.Vec2{X: w + 1, Y: h}, entity.LayerSolid, entity.TagNone)
}
