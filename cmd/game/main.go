package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/grapple/internal/application/game"
	"github.com/younwookim/grapple/internal/application/replay"
	"github.com/younwookim/grapple/internal/application/scene/room"
	"github.com/younwookim/grapple/internal/application/system"
	"github.com/younwookim/grapple/internal/infrastructure/audio"
	"github.com/younwookim/grapple/internal/infrastructure/config"
)

// newLoader reads configs from dir, or from the embedded copy when dir
// is empty.
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// commandKeys maps room commands to the keyboard.
var commandKeys = map[room.Command]ebiten.Key{
	room.CommandPause:         ebiten.KeyEscape,
	room.CommandSaveRecording: ebiten.KeyF5,
}

func keyboardCommands(cmd room.Command) bool {
	key, ok := commandKeys[cmd]
	return ok && inpututil.IsKeyJustPressed(key)
}

// watchPhysics reloads physics.json whenever a config file in dir
// changes and hands the result to the running room. Only the latest
// unread tuning is kept.
func watchPhysics(loader *config.Loader, dir string) (chan *config.PhysicsConfig, func(), error) {
	w, err := config.NewWatcher(dir)
	if err != nil {
		return nil, nil, err
	}

	reload := make(chan *config.PhysicsConfig, 1)
	go func() {
		for {
			select {
			case path, ok := <-w.Events:
				if !ok {
					return
				}
				cfg, err := loader.LoadPhysics()
				if err != nil {
					log.Printf("Ignoring %s: %v", path, err)
					continue
				}
				select {
				case <-reload:
				default:
				}
				reload <- cfg
				log.Printf("Reloaded physics after change to %s", path)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("Config watcher: %v", err)
			}
		}
	}()

	return reload, func() { _ = w.Close() }, nil
}

type options struct {
	room, record, replay, configs string
	watch, trace, mute, exit      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.room, "room", "", "Room to start in (default: first room)")
	flag.StringVar(&opts.record, "record", "", "Record input to file (e.g., -record replay.json)")
	flag.StringVar(&opts.replay, "replay", "", "Play back a recorded replay file")
	flag.StringVar(&opts.configs, "configs", "", "Read configs from this directory instead of the embedded copy")
	flag.BoolVar(&opts.watch, "watch", false, "Reload physics when files under -configs change")
	flag.BoolVar(&opts.trace, "trace", false, "Log player state transitions")
	flag.BoolVar(&opts.mute, "mute", false, "Disable sound")
	flag.BoolVar(&opts.exit, "exit", false, "Quit when the replay ends")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts options) error {
	if opts.watch && opts.configs == "" {
		return errors.New("-watch needs -configs")
	}

	loader, err := newLoader(opts.configs)
	if err != nil {
		return fmt.Errorf("config subfs: %w", err)
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	deps := room.Deps{
		Physics:     cfg.Physics,
		Entities:    cfg.Entities,
		Input:       system.NewKeyboardInput(),
		RecordPath:  opts.record,
		Trace:       opts.trace,
		JustPressed: keyboardCommands,
	}

	display := cfg.Physics.Display
	gameOpts := game.Options{
		Width:   display.ScreenWidth,
		Height:  display.ScreenHeight,
		DT:      1.0 / float64(display.Framerate),
		Focused: ebiten.IsFocused,
	}
	startRoom := opts.room
	if opts.replay != "" {
		data, err := replay.LoadReplay(opts.replay)
		if err != nil {
			return fmt.Errorf("load replay: %w", err)
		}
		deps.Replayer = replay.NewReplayer(*data)
		gameOpts.DT = data.Dt
		gameOpts.ExitOnFinish = opts.exit
		startRoom = data.Room
		log.Printf("Replaying %s: room %s, %d frames", opts.replay, data.Room, len(data.Frames))
	}

	if opts.watch {
		reload, stop, err := watchPhysics(loader, opts.configs)
		if err != nil {
			return fmt.Errorf("watch configs: %w", err)
		}
		defer stop()
		deps.Reload = reload
	}

	audioCfg := cfg.Physics.Audio
	if opts.mute {
		audioCfg.Enabled = false
	}
	sound := audio.NewPlayer(audioCfg)
	if err := sound.Init(); err != nil {
		log.Printf("Audio disabled: %v", err)
	}
	defer sound.Close()
	deps.Sound = sound

	seq, err := room.NewSequence(loader, deps)
	if err != nil {
		return fmt.Errorf("list rooms: %w", err)
	}
	first, err := seq.Load(startRoom)
	if err != nil {
		return fmt.Errorf("load room: %w", err)
	}

	g := game.New(first, gameOpts)
	defer g.Close()

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Grapple")
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	log.Printf("Played %d frames over %d rooms", g.Frames(), g.Rooms())
	return nil
}
