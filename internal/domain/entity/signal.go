package entity

// Signal is a notification the player raises for its host.
type Signal int

const (
	SignalDeathFinished Signal = iota
	SignalNextRoom
)

// String returns the string representation of the signal
func (s Signal) String() string {
	switch s {
	case SignalDeathFinished:
		return "DeathFinished"
	case SignalNextRoom:
		return "NextRoom"
	default:
		return "Unknown"
	}
}

// SignalQueue buffers signals until the host drains them.
type SignalQueue struct {
	pending []Signal
}

// Push appends a signal.
func (q *SignalQueue) Push(s Signal) {
	q.pending = append(q.pending, s)
}

// Drain returns all pending signals in emission order and empties the queue.
func (q *SignalQueue) Drain() []Signal {
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of pending signals.
func (q *SignalQueue) Len() int {
	return len(q.pending)
}

// Sound identifies a one-shot sound effect.
type Sound int

const (
	SoundJump Sound = iota
	SoundAirJump
	SoundGrapple
	SoundGrappleHit
	SoundDing
	SoundBonk
	SoundDeath
)

// String returns the string representation of the sound
func (s Sound) String() string {
	switch s {
	case SoundJump:
		return "Jump"
	case SoundAirJump:
		return "AirJump"
	case SoundGrapple:
		return "Grapple"
	case SoundGrappleHit:
		return "GrappleHit"
	case SoundDing:
		return "Ding"
	case SoundBonk:
		return "Bonk"
	case SoundDeath:
		return "Death"
	default:
		return "Unknown"
	}
}
