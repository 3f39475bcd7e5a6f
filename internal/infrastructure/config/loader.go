package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics  *PhysicsConfig
	Entities *EntitiesConfig
}

// Loader loads game configuration using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader was created for
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadPhysics loads physics.json
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	data, err := fs.ReadFile(l.fsys, "physics.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read physics.json: %w", err)
	}

	var cfg PhysicsConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse physics.json: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid physics.json: %w", err)
	}

	return &cfg, nil
}

// LoadEntities loads entities.json
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	data, err := fs.ReadFile(l.fsys, "entities.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read entities.json: %w", err)
	}

	var cfg EntitiesConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse entities.json: %w", err)
	}
	if cfg.Player.Body.X <= 0 || cfg.Player.Body.Y <= 0 {
		return nil, fmt.Errorf("invalid entities.json: player body must be positive")
	}

	return &cfg, nil
}

// LoadRoom loads a room YAML file
func (l *Loader) LoadRoom(name string) (*RoomConfig, error) {
	p := path.Join("rooms", name+".yaml")
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read room %s: %w", name, err)
	}

	var cfg RoomConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse room %s: %w", name, err)
	}
	if cfg.ID == "" {
		cfg.ID = name
	}
	if len(cfg.Layers.Collision) == 0 {
		return nil, fmt.Errorf("room %s has no collision layer", name)
	}

	return &cfg, nil
}

// RoomNames lists the rooms available to LoadRoom, sorted by name
func (l *Loader) RoomNames() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, "rooms")
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// LoadAll loads all base configurations (physics, entities)
func (l *Loader) LoadAll() (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics:  physics,
		Entities: entities,
	}, nil
}

// Validate rejects tunings that would divide by zero in the simulation.
func (c *PhysicsConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	if c.Display.Framerate <= 0 {
		errs = append(errs, fmt.Errorf("display.framerate must be positive, got %d", c.Display.Framerate))
	}
	positive("jumping.timeToJumpApex", c.Jumping.TimeToJumpApex)
	positive("running.accelGrounded", c.Running.AccelGrounded)
	positive("running.decelGrounded", c.Running.DecelGrounded)
	positive("running.accelAirborne", c.Running.AccelAirborne)
	positive("running.decelAirborne", c.Running.DecelAirborne)
	positive("running.momentumDecelGrounded", c.Running.MomentumDecelGrounded)
	positive("running.momentumDecelAirborne", c.Running.MomentumDecelAirborne)
	positive("grappling.maxLength", c.Grappling.MaxLength)
	positive("grappling.extendTime", c.Grappling.ExtendTime)
	positive("grappling.retractTime", c.Grappling.RetractTime)
	positive("collision.skinWidth", c.Collision.SkinWidth)
	positive("collision.raySpacing", c.Collision.RaySpacing)

	return errors.Join(errs...)
}
