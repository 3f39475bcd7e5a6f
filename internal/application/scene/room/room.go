// Package room provides the scene that plays one room: it owns the
// stage, its collision field and the player, and applies hazards,
// springs and the goal to the player each frame.
package room

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/younwookim/grapple/internal/application/player"
	"github.com/younwookim/grapple/internal/application/replay"
	"github.com/younwookim/grapple/internal/application/scene"
	"github.com/younwookim/grapple/internal/application/state"
	"github.com/younwookim/grapple/internal/application/system"
	"github.com/younwookim/grapple/internal/domain/entity"
	"github.com/younwookim/grapple/internal/infrastructure/collision"
	"github.com/younwookim/grapple/internal/infrastructure/config"
)

// Deps are the collaborators shared by every room of a session.
type Deps struct {
	Physics  *config.PhysicsConfig
	Entities *config.EntitiesConfig

	// Input feeds the player unless Replayer is set.
	Input    system.InputSource
	Replayer *replay.Replayer
	Sound    SoundPlayer

	// RecordPath enables recording; each room saves its own file next
	// to it, see RecordingPath.
	RecordPath string
	Trace      bool

	// Reload delivers retuned physics, e.g. from a config watcher.
	Reload <-chan *config.PhysicsConfig

	// Next builds the scene for the named room once this one is cleared.
	Next func(name string) (scene.Scene, error)

	// JustPressed reports room commands pressed this frame; each front
	// end maps its own keys. Nil means no commands.
	JustPressed func(cmd Command) bool
}

// Command is a host action handled by the room rather than the player.
type Command int

const (
	CommandPause Command = iota
	CommandSaveRecording
)

func (c Command) String() string {
	switch c {
	case CommandPause:
		return "pause"
	case CommandSaveRecording:
		return "save-recording"
	default:
		return "unknown"
	}
}

func noCommands(Command) bool { return false }

// Room is the scene for a single room.
type Room struct {
	deps    Deps
	id      string
	stage   *entity.Stage
	field   *collision.Field
	physics *system.PhysicsSystem
	player  *player.Player
	input   *system.InputSystem
	view    *presenter

	state    state.GameState
	frame    int
	onSpring bool

	recorder   *replay.Recorder
	replayDone bool
}

var _ scene.Scene = (*Room)(nil)

// New builds a room from its layout.
func New(cfg *config.RoomConfig, deps Deps) *Room {
	if deps.JustPressed == nil {
		deps.JustPressed = noCommands
	}

	body := entity.Vec2{X: deps.Entities.Player.Body.X, Y: deps.Entities.Player.Body.Y}
	stage := system.LoadStage(cfg, body.Y)
	field := collision.Build(stage)
	physics := system.NewPhysicsSystem(&deps.Physics.Collision, field)

	var src system.InputSource = deps.Input
	if deps.Replayer != nil {
		src = deps.Replayer
	}

	r := &Room{
		deps:    deps,
		id:      cfg.ID,
		stage:   stage,
		field:   field,
		physics: physics,
		input:   system.NewInputSystem(src),
		view:    &presenter{sound: deps.Sound},
		state:   state.StatePlaying,
	}

	r.player = player.New(player.NewTuning(deps.Physics), player.Deps{
		Physics:   physics,
		Geometry:  field,
		Presenter: r.view,
	}, stage.Spawn, body, stage.FlipX)
	r.player.OnStateChange = func(from, to state.ID) {
		if r.deps.Trace {
			log.Printf("[%s] frame %d: %s -> %s", r.id, r.frame, from, to)
		}
	}

	if deps.RecordPath != "" && deps.Replayer == nil {
		r.recorder = replay.NewRecorder(cfg.ID, r.dt())
	}

	return r
}

func (r *Room) dt() float64 {
	return 1.0 / float64(r.deps.Physics.Display.Framerate)
}

// Update advances the room by one frame (implements scene.Scene)
func (r *Room) Update(dt float64) (scene.Scene, error) {
	r.applyReload()

	if r.deps.JustPressed(CommandPause) {
		r.TogglePause()
	}
	if r.state != state.StatePlaying {
		return nil, nil
	}
	if r.deps.JustPressed(CommandSaveRecording) {
		r.saveRecording()
	}

	if r.deps.Replayer != nil && !r.deps.Replayer.Advance() {
		if !r.replayDone {
			r.replayDone = true
			log.Printf("Replay finished after %d frames", r.frame)
		}
		return nil, nil
	}

	return r.Step(r.input.GetInput(), dt)
}

// Step runs one simulation frame with the given input. It is the part of
// Update that does not touch the host keyboard.
func (r *Room) Step(in system.InputState, dt float64) (scene.Scene, error) {
	if r.recorder != nil {
		r.recorder.RecordFrame(in)
	}

	r.frame++
	r.player.Update(in, dt)
	r.applyTiles()
	r.view.tick()

	for _, sig := range r.player.DrainSignals() {
		switch sig {
		case entity.SignalDeathFinished:
			r.player.Respawn()
			r.onSpring = false
		case entity.SignalNextRoom:
			r.state = state.StateRoomClear
			log.Printf("Room %s cleared in %d frames", r.id, r.frame)
			if r.deps.Next != nil {
				return r.deps.Next(r.stage.Next)
			}
		}
	}

	return nil, nil
}

// applyTiles checks the player's box against spikes, the goal and
// springs.
func (r *Room) applyTiles() {
	if !r.player.Body().ColliderEnabled {
		r.onSpring = false
		return
	}

	min, max := r.player.Bounds()
	switch {
	case r.stage.Overlaps(min, max, entity.TileSpike):
		r.player.Die()
	case r.stage.Overlaps(min, max, entity.TileGoal):
		r.player.Win()
	}

	touching := r.stage.Overlaps(min, max, entity.TileSpring)
	if touching && !r.onSpring {
		spring := r.deps.Physics.Spring
		r.player.Bounce(entity.Vec2{Y: spring.Impulse}, true, spring.SwingBoost)
	}
	r.onSpring = touching
}

func (r *Room) applyReload() {
	if r.deps.Reload == nil {
		return
	}
	select {
	case cfg := <-r.deps.Reload:
		r.Retune(cfg)
	default:
	}
}

// Retune swaps the movement tuning of the running room.
func (r *Room) Retune(cfg *config.PhysicsConfig) {
	r.deps.Physics = cfg
	r.player.Retune(cfg)
	log.Printf("Room %s retuned", r.id)
}

// TogglePause switches between playing and paused.
func (r *Room) TogglePause() {
	switch r.state {
	case state.StatePlaying:
		r.state = state.StatePaused
	case state.StatePaused:
		r.state = state.StatePlaying
	}
}

// Pause freezes a playing room. The game calls it when the window loses
// focus.
func (r *Room) Pause() {
	if r.state == state.StatePlaying {
		r.state = state.StatePaused
	}
}

// Finished reports whether the room's replay has run out.
func (r *Room) Finished() bool { return r.replayDone }

// State returns the scene state.
func (r *Room) State() state.GameState { return r.state }

// Player returns the room's player.
func (r *Room) Player() *player.Player { return r.player }

// Stage returns the room layout.
func (r *Room) Stage() *entity.Stage { return r.stage }

// ID returns the room id.
func (r *Room) ID() string { return r.id }

// Frame returns the number of simulated frames.
func (r *Room) Frame() int { return r.frame }

// Recorder returns the active recorder, if any.
func (r *Room) Recorder() *replay.Recorder { return r.recorder }

// OnEnter is called when entering this scene
func (r *Room) OnEnter() {
	log.Printf("Entering room %s (%s)", r.id, r.stage.Name)
}

// OnExit is called when leaving this scene
func (r *Room) OnExit() {
	r.saveRecording()
}

func (r *Room) saveRecording() {
	if r.recorder == nil || r.recorder.FrameCount() == 0 {
		return
	}

	filename := RecordingPath(r.deps.RecordPath, r.id)
	if err := r.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
		return
	}
	log.Printf("Recording saved: %s (%d frames)", filename, r.recorder.FrameCount())
}

// RecordingPath is the file a room's recording is saved to: the room id
// is inserted before the extension of base.
func RecordingPath(base, roomID string) string {
	if base == "" {
		base = replay.GenerateFilename()
	}
	ext := filepath.Ext(base)
	if ext == "" {
		ext = ".json"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_" + roomID + ext
}
