// Package game runs the active room scene under ebiten and moves to
// the next scene when a room is cleared.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/grapple/internal/application/scene"
)

// Pauser is a scene that can be frozen when the window loses focus.
type Pauser interface {
	Pause()
}

// Finisher is a scene that can run out of things to do, like a room
// whose replay has ended.
type Finisher interface {
	Finished() bool
}

// Options configure a Game.
type Options struct {
	Width, Height int

	// DT is the fixed step handed to scenes; replays use the step they
	// were recorded with. Zero means 1/60.
	DT float64

	// Focused reports whether the window has focus. A nil func means
	// the game never pauses on its own.
	Focused func() bool

	// ExitOnFinish ends the run once the scene reports it is finished.
	ExitOnFinish bool
}

// Game implements ebiten.Game on top of a scene chain.
type Game struct {
	opts    Options
	current scene.Scene
	frames  int
	rooms   int
	closed  bool
}

// New starts the game on the first scene.
func New(first scene.Scene, opts Options) *Game {
	if opts.DT <= 0 {
		opts.DT = 1.0 / 60.0
	}
	g := &Game{opts: opts, current: first, rooms: 1}
	first.OnEnter()
	return g
}

// Update steps the current scene once. It returns ebiten.Termination
// when a finished scene should end the run.
func (g *Game) Update() error {
	if g.opts.Focused != nil && !g.opts.Focused() {
		if p, ok := g.current.(Pauser); ok {
			p.Pause()
		}
	}

	next, err := g.current.Update(g.opts.DT)
	if err != nil {
		return err
	}
	g.frames++

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.rooms++
		next.OnEnter()
		return nil
	}

	if g.opts.ExitOnFinish && g.Finished() {
		return ebiten.Termination
	}
	return nil
}

// Finished reports whether the current scene has run out.
func (g *Game) Finished() bool {
	f, ok := g.current.(Finisher)
	return ok && f.Finished()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.opts.Width, g.opts.Height
}

// DT returns the fixed step.
func (g *Game) DT() float64 { return g.opts.DT }

// Current returns the active scene.
func (g *Game) Current() scene.Scene { return g.current }

// Frames counts Update calls that reached a scene, across rooms.
func (g *Game) Frames() int { return g.frames }

// Rooms counts the scenes entered so far, the first included.
func (g *Game) Rooms() int { return g.rooms }

// Close exits the current scene once so recordings are flushed. Call it
// after ebiten.RunGame returns.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.current.OnExit()
}
