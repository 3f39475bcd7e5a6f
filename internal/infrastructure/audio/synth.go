package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/younwookim/grapple/internal/domain/entity"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length tone, optionally sliding from freq
// to endFreq over its duration.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator creates a streamer that plays one wave for duration.
func NewOscillator(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		// fixed seed keeps every play of a sound identical
		noise: rand.New(rand.NewSource(1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s, which is expected to last duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		switch {
		case e.position < e.attack:
			vol = float64(e.position) / float64(e.attack)
		case e.position >= e.total-e.release && e.release > 0:
			vol = math.Max(float64(e.total-e.position)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// note is one segment of a synthesized effect.
type note struct {
	wave     WaveType
	freq     float64
	endFreq  float64
	duration time.Duration
}

// effectNotes describes every sound as a short sequence of notes.
var effectNotes = map[entity.Sound][]note{
	entity.SoundJump:       {{WaveSquare, 330, 660, 90 * time.Millisecond}},
	entity.SoundAirJump:    {{WaveSquare, 440, 880, 70 * time.Millisecond}, {WaveSquare, 660, 990, 60 * time.Millisecond}},
	entity.SoundGrapple:    {{WaveNoise, 0, 0, 60 * time.Millisecond}},
	entity.SoundGrappleHit: {{WaveSaw, 220, 110, 80 * time.Millisecond}},
	entity.SoundDing:       {{WaveSine, 1760, 1760, 150 * time.Millisecond}},
	entity.SoundBonk:       {{WaveSquare, 120, 60, 120 * time.Millisecond}},
	entity.SoundDeath:      {{WaveSaw, 440, 55, 400 * time.Millisecond}, {WaveNoise, 0, 0, 150 * time.Millisecond}},
}

const (
	noteAttack  = 5 * time.Millisecond
	noteRelease = 30 * time.Millisecond
)

// Effect builds the streamer for a sound, or nil for an unknown sound.
// volume is a log2 gain.
func Effect(s entity.Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	notes, ok := effectNotes[s]
	if !ok {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		osc := NewOscillator(n.freq, n.endFreq, n.duration, n.wave, rate)
		parts = append(parts, NewEnvelope(osc, n.duration, noteAttack, noteRelease, rate))
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: volume}
}

// EffectDuration returns how long a sound plays.
func EffectDuration(s entity.Sound) time.Duration {
	var total time.Duration
	for _, n := range effectNotes[s] {
		total += n.duration
	}
	return total
}
