package room

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/grapple/internal/application/state"
	"github.com/younwookim/grapple/internal/domain/entity"
)

// Colors for rendering
var (
	colorBG        = color.RGBA{26, 26, 46, 255}
	colorWall      = color.RGBA{80, 80, 100, 255}
	colorNoGrapple = color.RGBA{120, 70, 70, 255}
	colorJumpThru  = color.RGBA{140, 120, 80, 255}
	colorSpike     = color.RGBA{200, 50, 50, 255}
	colorGoal      = color.RGBA{255, 215, 0, 255}
	colorSpring    = color.RGBA{80, 200, 220, 255}
	colorLauncher  = color.RGBA{220, 120, 255, 255}
	colorSpinner   = color.RGBA{255, 160, 60, 255}
	colorPlayer    = color.RGBA{100, 200, 100, 255}
	colorHook      = color.RGBA{224, 224, 224, 255}
	colorImpact    = color.RGBA{255, 255, 255, 255}
	colorOverlay   = color.RGBA{0, 0, 0, 128}
)

var tileColors = map[entity.TileType]color.RGBA{
	entity.TileWall:      colorWall,
	entity.TileNoGrapple: colorNoGrapple,
	entity.TileJumpThru:  colorJumpThru,
	entity.TileSpike:     colorSpike,
	entity.TileGoal:      colorGoal,
	entity.TileSpring:    colorSpring,
}

// parseHexColor reads "#rrggbb", falling back when the string is not a
// color.
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}

// view maps world units (y up) to screen pixels (y down).
type view struct {
	tile       float64
	camX, camY float64
	worldH     float64
}

func (v view) point(p entity.Vec2) (float64, float64) {
	return p.X*v.tile - v.camX, (v.worldH-p.Y)*v.tile - v.camY
}

func (v view) rect(screen *ebiten.Image, min, max entity.Vec2, c color.Color) {
	x, y := v.point(entity.Vec2{X: min.X, Y: max.Y})
	ebitenutil.DrawRect(screen, x, y, (max.X-min.X)*v.tile, (max.Y-min.Y)*v.tile, c)
}

func (v view) line(screen *ebiten.Image, a, b entity.Vec2, c color.Color) {
	x1, y1 := v.point(a)
	x2, y2 := v.point(b)
	ebitenutil.DrawLine(screen, x1, y1, x2, y2, c)
}

func (v view) circle(screen *ebiten.Image, center entity.Vec2, radius float64, c color.Color) {
	x, y := v.point(center)
	ebitenutil.DrawCircle(screen, x, y, radius*v.tile, c)
}

// camera centers the player and clamps to the stage.
func (r *Room) camera(screenW, screenH int) view {
	d := r.deps.Physics.Display
	tile := float64(d.TileSize)
	worldW := r.stage.WorldWidth() * tile
	worldH := r.stage.WorldHeight() * tile

	pos := r.player.Position()
	camX := pos.X*tile - float64(screenW)/2
	camY := (r.stage.WorldHeight()-pos.Y)*tile - float64(screenH)/2
	camX = math.Max(0, math.Min(camX, worldW-float64(screenW)))
	camY = math.Max(0, math.Min(camY, worldH-float64(screenH)))

	return view{tile: tile, camX: camX, camY: camY, worldH: r.stage.WorldHeight()}
}

// Draw renders the room (implements scene.Scene)
func (r *Room) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	bounds := screen.Bounds()
	v := r.camera(bounds.Dx(), bounds.Dy())

	r.drawTiles(screen, v)
	r.drawHook(screen, v)
	r.drawPlayer(screen, v)
	for _, im := range r.view.impacts {
		v.circle(screen, im.point, 0.1*float64(im.frames)/impactFrames+0.05, colorImpact)
	}
	r.drawHUD(screen)

	if r.state == state.StatePaused {
		ebitenutil.DrawRect(screen, 0, 0, float64(bounds.Dx()), float64(bounds.Dy()), colorOverlay)
		ebitenutil.DebugPrintAt(screen, "PAUSED\n\nPress ESC to resume", bounds.Dx()/2-50, bounds.Dy()/2-20)
	}
}

func (r *Room) drawTiles(screen *ebiten.Image, v view) {
	for ty := 0; ty < r.stage.Height; ty++ {
		for tx := 0; tx < r.stage.Width; tx++ {
			tile := r.stage.GetTile(tx, ty)
			if tile.Type == entity.TileEmpty {
				continue
			}
			min, max := r.stage.TileBounds(tx, ty)
			if tile.Type == entity.TileLauncher {
				center := min.Add(max).Scale(0.5)
				v.circle(screen, center, (max.X-min.X)/2, colorLauncher)
				continue
			}
			v.rect(screen, min, max, tileColors[tile.Type])
		}
	}

	for _, s := range r.stage.Spinners {
		v.circle(screen, s.Center, s.Radius, colorSpinner)
	}
}

func (r *Room) drawHook(screen *ebiten.Image, v view) {
	hook := r.player.Hook()
	if !hook.Visible && !hook.RetractingAfterSwing {
		return
	}
	c := parseHexColor(r.deps.Entities.Player.HookColor, colorHook)
	v.line(screen, r.player.Position(), hook.Position, c)
	v.circle(screen, hook.Position, r.deps.Physics.Grappling.CastRadius, c)
}

func (r *Room) drawPlayer(screen *ebiten.Image, v view) {
	if r.player.State() == state.Death && int(r.player.Body().Clock*10)%2 == 0 {
		return
	}

	c := colorPlayer
	if anim, ok := r.deps.Entities.Player.Animations[baseAnimation(r.view.animation)]; ok {
		c = parseHexColor(anim.Color, colorPlayer)
	}
	min, max := r.player.Bounds()
	v.rect(screen, min, max, c)

	// facing marker
	pos := r.player.Position()
	dir := 1.0
	if r.view.flip {
		dir = -1
	}
	v.line(screen, pos, pos.Add(entity.Vec2{X: dir * (max.X - min.X) / 2}), colorBG)
}

func (r *Room) drawHUD(screen *ebiten.Image) {
	vel := r.player.Velocity()
	text := fmt.Sprintf("%s  %s  %s\nvel %.1f, %.1f  frame %d",
		r.stage.Name, r.player.State(), r.view.animation, vel.X, vel.Y, r.frame)
	if r.recorder != nil {
		text += fmt.Sprintf("\nREC %d", r.recorder.FrameCount())
	}
	if r.deps.Replayer != nil {
		text += fmt.Sprintf("\nREPLAY %d/%d", r.deps.Replayer.CurrentFrame()+1, r.deps.Replayer.TotalFrames())
	}
	ebitenutil.DebugPrint(screen, text)
}
