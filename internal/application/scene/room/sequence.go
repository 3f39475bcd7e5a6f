package room

import (
	"fmt"

	"github.com/younwookim/grapple/internal/application/scene"
	"github.com/younwookim/grapple/internal/infrastructure/config"
)

// Sequence loads rooms by name and chains each cleared room to the next.
type Sequence struct {
	loader *config.Loader
	deps   Deps
	names  []string
}

// NewSequence lists the rooms the loader provides.
func NewSequence(loader *config.Loader, deps Deps) (*Sequence, error) {
	names, err := loader.RoomNames()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no rooms in %s", loader.BasePath())
	}

	s := &Sequence{loader: loader, deps: deps, names: names}
	s.deps.Next = s.next
	return s, nil
}

// Names returns the available rooms, sorted.
func (s *Sequence) Names() []string {
	return s.names
}

// Load builds the named room; an empty name loads the first room.
func (s *Sequence) Load(name string) (*Room, error) {
	if name == "" {
		name = s.names[0]
	}
	cfg, err := s.loader.LoadRoom(name)
	if err != nil {
		return nil, err
	}
	return New(cfg, s.deps), nil
}

func (s *Sequence) next(name string) (scene.Scene, error) {
	r, err := s.Load(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load next room: %w", err)
	}
	return r, nil
}
