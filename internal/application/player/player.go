// Package player turns per-frame input into player motion. A Player owns
// its velocity and timers, drives the collision resolver once per frame
// and runs one of six states: Normal, Swing, Zip, Bonk, Death and
// GoalReached.
package player

import (
	"math"

	"github.com/younwookim/grapple/internal/application/state"
	"github.com/younwookim/grapple/internal/application/system"
	"github.com/younwookim/grapple/internal/domain/entity"
	"github.com/younwookim/grapple/internal/infrastructure/config"
)

// swingBounceDebounce keeps one spring from boosting a swing twice.
const swingBounceDebounce = 0.1

// Presenter receives fire-and-forget presentation requests.
type Presenter interface {
	PlaySound(s entity.Sound)
	SelectAnimation(name string)
	SetSpriteFacing(flip bool)
	HookImpact(point, normal entity.Vec2)
}

// NopPresenter ignores every request.
type NopPresenter struct{}

func (NopPresenter) PlaySound(entity.Sound)      {}
func (NopPresenter) SelectAnimation(string)      {}
func (NopPresenter) SetSpriteFacing(bool)        {}
func (NopPresenter) HookImpact(_, _ entity.Vec2) {}

// Deps are the collaborators a Player drives.
type Deps struct {
	Physics   *system.PhysicsSystem
	Geometry  system.GeometryQuery
	Presenter Presenter
}

// Player is the controllable character.
type Player struct {
	body      *entity.Player
	tuning    *Tuning
	physics   *system.PhysicsSystem
	geometry  system.GeometryQuery
	presenter Presenter
	machine   *state.Machine[*Player]
	signals   entity.SignalQueue

	// frame inputs, valid during Update
	in system.InputState
	dt float64

	normal *normalState
	swing  *swingState
	zip    *zipState
	bonk   *bonkState
	death  *deathState
	goal   *goalState

	animation string

	// OnStateChange is called after every state transition.
	OnStateChange func(from, to state.ID)
}

// New creates a player of the given box size resting at spawn, facing
// left when flipX is set.
func New(t *Tuning, deps Deps, spawn, size entity.Vec2, flipX bool) *Player {
	presenter := deps.Presenter
	if presenter == nil {
		presenter = NopPresenter{}
	}

	p := &Player{
		body:      entity.NewPlayer(spawn, size, flipX),
		tuning:    t,
		physics:   deps.Physics,
		geometry:  deps.Geometry,
		presenter: presenter,
		normal:    &normalState{},
		swing:     &swingState{},
		zip:       &zipState{},
		bonk:      &bonkState{},
		death:     &deathState{},
		goal:      &goalState{},
	}

	p.machine = state.NewMachine(p)
	p.machine.Add(state.Normal, p.normal)
	p.machine.Add(state.Swing, p.swing)
	p.machine.Add(state.Zip, p.zip)
	p.machine.Add(state.Bonk, p.bonk)
	p.machine.Add(state.Death, p.death)
	p.machine.Add(state.GoalReached, p.goal)
	p.machine.OnChange = func(from, to state.ID) {
		if p.OnStateChange != nil {
			p.OnStateChange(from, to)
		}
	}

	p.machine.Start(state.Normal)
	p.Respawn()
	return p
}

// Update advances the player by one frame of dt seconds.
func (p *Player) Update(in system.InputState, dt float64) {
	if dt <= 0 {
		return
	}
	b := p.body
	cfg := p.tuning

	p.in = in
	p.dt = dt
	b.Clock += dt

	b.PrevVelocity = b.Velocity
	b.InputPrev = b.Input
	b.Input = in.Move

	t := &b.Timers
	switch {
	case in.JumpPressed:
		t.JumpBuffer = cfg.Jumping.JumpBufferTime
	case in.JumpReleased:
		t.JumpBuffer = 0
		t.AirJumpRefund = 0
	default:
		t.JumpBuffer -= dt
		t.AirJumpRefund -= dt
	}

	switch {
	case in.GrapplePressed:
		t.GrappleBuffer = cfg.Grappling.BufferTime
	case in.GrappleReleased:
		t.GrappleBuffer = 0
		t.Extend = 0
		if t.Retract == cfg.Grappling.RetractTime {
			// released before the hook came back: retract from where it got to
			t.Retract = cfg.Grappling.RetractTime * (b.Hook.LongestDistance / cfg.Grappling.MaxLength)
		}
	default:
		t.GrappleBuffer -= dt
	}

	t.GrappleCooldown -= dt

	p.machine.Update()

	if b.ColliderEnabled {
		p.move(b.PrevVelocity.Add(b.Velocity).Scale(0.5 * dt))
	} else {
		b.Collisions.Reset()
	}

	p.machine.LateUpdate()

	p.presenter.SetSpriteFacing(p.physics.FaceDirection != 1)
	p.updateAnimation()
}

func (p *Player) move(displacement entity.Vec2) {
	b := p.body
	delta, info := p.physics.Move(p.box(), displacement)
	b.Position = b.Position.Add(delta)
	b.Collisions = info
}

func (p *Player) box() entity.BoundingBox {
	return p.physics.Box(p.body.Position, p.body.Size)
}

// Respawn puts the player back at its spawn point in the Normal state
// with every timer and transient flag cleared.
func (p *Player) Respawn() {
	p.machine.Set(state.Normal)

	b := p.body
	b.Reset()
	b.Hook.Position = b.Spawn
	b.Jump.AirJumpCount = p.tuning.AirJumping.MaxAirJumps
	b.LastSwingBounce = math.Inf(-1)

	*p.swing = swingState{}
	*p.zip = zipState{}
	*p.bonk = bonkState{}
	*p.death = deathState{}

	p.physics.Swinging = false
	p.physics.FaceDirection = 1
	if b.FlipX {
		p.physics.FaceDirection = -1
	}
}

// Win enters GoalReached. It has no effect while dead.
func (p *Player) Win() {
	if p.machine.Current() == state.Death {
		return
	}
	p.machine.Set(state.GoalReached)
}

// Die enters Death unless the player is already dead or has finished
// the room.
func (p *Player) Die() {
	switch p.machine.Current() {
	case state.Death, state.GoalReached:
		return
	}
	p.machine.Set(state.Death)
}

// Bounce applies a spring. While swinging the swing reverses and speeds
// up by swingBoost; otherwise the impulse replaces the velocity, or only
// its vertical part when vertical is set.
func (p *Player) Bounce(impulse entity.Vec2, vertical bool, swingBoost float64) {
	b := p.body
	switch p.machine.Current() {
	case state.Death, state.GoalReached:
		return
	}

	b.Wall.OnWall = false

	if p.machine.Current() == state.Swing {
		if b.Clock-b.LastSwingBounce > swingBounceDebounce {
			s := p.swing
			if s.speed > 0 {
				s.speed += swingBoost
			} else {
				s.speed -= swingBoost
			}
			s.speed = math.Min(math.Abs(s.speed), p.tuning.Swinging.MaxSwingSpeed) * unitySign(s.speed)
			s.speed = -s.speed
			b.LastSwingBounce = b.Clock
		}
		return
	}

	if vertical {
		b.Velocity.Y = impulse.Y
	} else {
		b.Velocity = impulse
	}
	b.Jump.Jumping = false
	b.Jump.AirJumpCount = p.tuning.AirJumping.MaxAirJumps
	p.machine.Set(state.Normal)
}

// StopSwinging drops out of a swing.
func (p *Player) StopSwinging() {
	if p.machine.Current() == state.Swing {
		p.machine.Set(state.Normal)
	}
}

// Retune swaps the movement configuration, e.g. after a config reload.
func (p *Player) Retune(cfg *config.PhysicsConfig) {
	p.tuning = NewTuning(cfg)
	p.physics.Configure(&cfg.Collision)
}

// DrainSignals returns the signals raised since the last call.
func (p *Player) DrainSignals() []entity.Signal {
	return p.signals.Drain()
}

// State returns the active state.
func (p *Player) State() state.ID { return p.machine.Current() }

// Position returns the center of the player's box.
func (p *Player) Position() entity.Vec2 { return p.body.Position }

// Velocity returns the current velocity in units per second.
func (p *Player) Velocity() entity.Vec2 { return p.body.Velocity }

// Collisions returns the contacts of the last move.
func (p *Player) Collisions() entity.CollisionInfo { return p.body.Collisions }

// Hook returns the grapple hook state.
func (p *Player) Hook() entity.HookState { return p.body.Hook }

// Animation returns the last selected animation name.
func (p *Player) Animation() string { return p.animation }

// Body exposes the runtime state for drawing and debugging. Callers must
// not modify it.
func (p *Player) Body() *entity.Player { return p.body }

// Bounds returns the corners of the player's box.
func (p *Player) Bounds() (min, max entity.Vec2) { return p.body.Bounds() }

// unitySign is like entity.Sign but treats zero as positive.
func unitySign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
