package player

import (
	"math"

	"github.com/younwookim/grapple/internal/infrastructure/config"
)

// Tuning is the movement configuration plus the jump constants derived
// from it. It is immutable once built.
type Tuning struct {
	*config.PhysicsConfig

	Gravity            float64
	MaxJumpVelocity    float64
	MinJumpVelocity    float64
	MaxAirJumpVelocity float64
	MinAirJumpVelocity float64
}

// NewTuning derives gravity and jump velocities from the jump heights and
// the time to reach the apex of a full jump.
func NewTuning(cfg *config.PhysicsConfig) *Tuning {
	j := cfg.Jumping
	gravity := -(2 * j.MaxJumpHeight) / (j.TimeToJumpApex * j.TimeToJumpApex)
	g := math.Abs(gravity)

	return &Tuning{
		PhysicsConfig:      cfg,
		Gravity:            gravity,
		MaxJumpVelocity:    g * j.TimeToJumpApex,
		MinJumpVelocity:    math.Sqrt(2 * g * j.MinJumpHeight),
		MaxAirJumpVelocity: math.Sqrt(2 * g * cfg.AirJumping.MaxAirJumpHeight),
		MinAirJumpVelocity: math.Sqrt(2 * g * cfg.AirJumping.MinAirJumpHeight),
	}
}

// HookCycle is the cooldown between grapple attempts.
func (t *Tuning) HookCycle() float64 {
	g := t.Grappling
	return g.ExtendTime + g.MissPauseTime + g.RetractTime
}
