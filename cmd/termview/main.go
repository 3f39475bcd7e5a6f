// Command termview plays a recorded replay in the terminal.
//
//	termview -replay replay_20260101_120000_intro.json
//
// Keys: space pauses, '.' steps one frame while paused, r restarts,
// q or Esc quits.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/grapple/internal/application/game"
	"github.com/younwookim/grapple/internal/application/replay"
	"github.com/younwookim/grapple/internal/application/scene/room"
	"github.com/younwookim/grapple/internal/application/state"
	"github.com/younwookim/grapple/internal/domain/entity"
	"github.com/younwookim/grapple/internal/infrastructure/config"
)

var tileRunes = map[entity.TileType]rune{
	entity.TileWall:      '#',
	entity.TileNoGrapple: 'x',
	entity.TileJumpThru:  '=',
	entity.TileSpike:     '^',
	entity.TileLauncher:  'o',
	entity.TileGoal:      'G',
	entity.TileSpring:    'S',
}

var tileStyles = map[entity.TileType]tcell.Style{
	entity.TileWall:      tcell.StyleDefault.Foreground(tcell.ColorLightGray),
	entity.TileNoGrapple: tcell.StyleDefault.Foreground(tcell.ColorMaroon),
	entity.TileJumpThru:  tcell.StyleDefault.Foreground(tcell.ColorOlive),
	entity.TileSpike:     tcell.StyleDefault.Foreground(tcell.ColorRed),
	entity.TileLauncher:  tcell.StyleDefault.Foreground(tcell.ColorPurple),
	entity.TileGoal:      tcell.StyleDefault.Foreground(tcell.ColorYellow),
	entity.TileSpring:    tcell.StyleDefault.Foreground(tcell.ColorTeal),
}

var (
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleHook    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleSpinner = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorBlue)
)

// viewer steps a replayed room and draws it one tile per cell.
type viewer struct {
	screen tcell.Screen
	cfg    *config.RoomConfig
	deps   room.Deps
	data   replay.ReplayData
	room   *room.Room
	game   *game.Game
	paused bool
}

// newViewer replays data in cfg. The viewer handles its own keys, so
// the room gets no commands.
func newViewer(screen tcell.Screen, cfg *config.RoomConfig, gameCfg *config.GameConfig, data replay.ReplayData) *viewer {
	v := &viewer{
		screen: screen,
		cfg:    cfg,
		data:   data,
		deps: room.Deps{
			Physics:  gameCfg.Physics,
			Entities: gameCfg.Entities,
		},
	}
	v.restart()
	return v
}

func (v *viewer) restart() {
	v.deps.Replayer = replay.NewReplayer(v.data)
	v.room = room.New(v.cfg, v.deps)
	v.game = game.New(v.room, game.Options{DT: v.data.Dt})
}

func (v *viewer) step() error {
	return v.game.Update()
}

// column maps a world x to a screen column given the horizontal scroll.
func column(x float64, scroll int) int {
	return int(math.Floor(x)) - scroll
}

// scrollFor keeps the player centered while the stage is wider than the
// screen.
func scrollFor(playerX float64, stageW, screenW int) int {
	if stageW <= screenW {
		return 0
	}
	s := int(playerX) - screenW/2
	return max(0, min(s, stageW-screenW))
}

func render(screen tcell.Screen, r *room.Room) {
	screen.Clear()
	w, _ := screen.Size()
	stage := r.Stage()
	p := r.Player()
	scroll := scrollFor(p.Position().X, stage.Width, w)

	// rows run top-down on screen, bottom-up in the world
	row := func(y float64) int { return stage.Height - 1 - int(math.Floor(y)) }

	for ty := 0; ty < stage.Height; ty++ {
		for tx := 0; tx < stage.Width; tx++ {
			t := stage.GetTile(tx, ty).Type
			if ch, ok := tileRunes[t]; ok {
				screen.SetContent(tx-scroll, stage.Height-1-ty, ch, nil, tileStyles[t])
			}
		}
	}
	for _, s := range stage.Spinners {
		screen.SetContent(column(s.Center.X, scroll), row(s.Center.Y), '@', nil, styleSpinner)
	}

	if hook := p.Hook(); hook.Visible || hook.RetractingAfterSwing {
		screen.SetContent(column(hook.Position.X, scroll), row(hook.Position.Y), '*', nil, styleHook)
	}
	if p.State() != state.Death || int(p.Body().Clock*10)%2 == 1 {
		screen.SetContent(column(p.Position().X, scroll), row(p.Position().Y), 'P', nil, stylePlayer)
	}

	hud := fmt.Sprintf("%s  frame %d  %s  %s", stage.Name, r.Frame(), p.State(), r.State())
	if r.Finished() {
		hud += "  (end)"
	}
	for i, ch := range hud {
		screen.SetContent(i, stage.Height+1, ch, nil, styleHUD)
	}
	screen.Show()
}

// handleKey reports whether the viewer should keep running.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			v.paused = !v.paused
		case '.':
			if v.paused {
				if err := v.step(); err != nil {
					log.Printf("step: %v", err)
				}
			}
		case 'r':
			v.restart()
		}
	}
	return true
}

func (v *viewer) run() {
	ticker := time.NewTicker(time.Duration(v.data.Dt * float64(time.Second)))
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
		case <-ticker.C:
			if !v.paused {
				if err := v.step(); err != nil {
					return
				}
			}
			render(v.screen, v.room)
		}
	}
}

func main() {
	replayFlag := flag.String("replay", "", "Replay file to play")
	configsFlag := flag.String("configs", "cmd/game/configs", "Config directory")
	flag.Parse()

	if *replayFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := replay.LoadReplay(*replayFlag)
	if err != nil {
		log.Fatalf("Failed to load replay: %v", err)
	}
	loader := config.NewLoader(*configsFlag)
	gameCfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg, err := loader.LoadRoom(data.Room)
	if err != nil {
		log.Fatalf("Failed to load room: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}
	defer screen.Fini()

	newViewer(screen, cfg, gameCfg, *data).run()
}
