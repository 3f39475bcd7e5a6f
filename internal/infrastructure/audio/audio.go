// Package audio plays the player's synthesized sound effects through
// the system speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/younwookim/grapple/internal/domain/entity"
	"github.com/younwookim/grapple/internal/infrastructure/config"
)

const (
	defaultSampleRate = beep.SampleRate(44100)
	bufferDuration    = 50 * time.Millisecond
)

// Player mixes one-shot effects into a single speaker stream. A Player
// that is disabled or not yet initialized drops every request.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	enabled     bool
	initialized bool

	// played counts requests per sound, including dropped ones.
	played map[entity.Sound]int
}

// NewPlayer creates a player from the audio tuning.
func NewPlayer(cfg config.AudioConfig) *Player {
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = defaultSampleRate
	}
	return &Player{
		mixer:   &beep.Mixer{},
		rate:    rate,
		volume:  cfg.Volume,
		enabled: cfg.Enabled,
		played:  make(map[entity.Sound]int),
	}
}

// Init opens the speaker. It is a no-op when audio is disabled or
// already running.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(bufferDuration)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// PlaySound starts a sound effect without waiting for it to finish.
func (p *Player) PlaySound(s entity.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.played[s]++
	if !p.initialized {
		return
	}
	effect := Effect(s, p.rate, p.volume)
	if effect == nil {
		return
	}

	speaker.Lock()
	p.mixer.Add(effect)
	speaker.Unlock()
}

// Played returns how many times s was requested.
func (p *Player) Played(s entity.Sound) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[s]
}

// Enabled reports whether the speaker is running.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Close silences everything and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
