package player

import (
	"math"

	"github.com/younwookim/grapple/internal/domain/entity"
)

// normalState is running, jumping, wall sliding and throwing the hook.
type normalState struct{}

func (*normalState) Update(p *Player) {
	b := p.body
	cfg := p.tuning
	t := &b.Timers
	in := b.Input
	dt := p.dt

	t.WallJumpCommit -= dt

	wallJumping := false
	wantsJump := t.JumpBuffer > 0 || t.AirJumpRefund > 0
	if wantsJump && (b.Wall.OnWall || (!b.Collisions.Below && p.physics.CheckNearbyWall(p.box()))) {
		p.wallJump()
		wallJumping = true
	} else if t.JumpBuffer > 0 && t.JumpGrace > 0 {
		p.presenter.PlaySound(entity.SoundJump)
		b.Velocity.Y = cfg.MaxJumpVelocity
		t.JumpGrace = 0
		t.JumpBuffer = 0
		b.Jump.Jumping = true
	} else if t.JumpBuffer > 0 && b.Jump.AirJumpCount > 0 {
		b.Velocity.Y = cfg.MaxAirJumpVelocity
		t.JumpBuffer = 0
		b.Jump.AirJumpCount--
		b.Jump.Jumping = true
		t.AirJumpRefund = cfg.AirJumping.AirJumpRefundTime
		b.Jump.AirJumping = true
	} else if p.in.JumpReleased && b.Velocity.Y > cfg.MinJumpVelocity && b.Jump.Jumping {
		// short hop
		if b.Jump.AirJumpCount < cfg.AirJumping.MaxAirJumps {
			b.Velocity.Y = cfg.MinAirJumpVelocity
		} else {
			b.Velocity.Y = cfg.MinJumpVelocity
		}
	}

	// the air jump is only heard once it can no longer be refunded
	if b.Jump.AirJumping && t.AirJumpRefund <= 0 {
		p.presenter.PlaySound(entity.SoundAirJump)
		b.Jump.AirJumping = false
	}

	p.updateHurtling(wallJumping)
	p.runAcceleration()

	if b.Wall.OnWall {
		if t.WallUnstick > 0 && in.X != float64(b.Wall.DirX) && in.X != 0 {
			t.WallUnstick -= dt
		} else {
			t.WallUnstick = cfg.WallJumping.WallStickTime
		}

		if t.WallUnstick > 0 && !wallJumping && b.Wall.OnWallPrev {
			b.Velocity.X = 0
		}
	}

	gravity := cfg.Gravity
	if math.Abs(b.Velocity.Y) < cfg.Jumping.HalfGravityThreshold && p.in.Jump {
		gravity *= 0.5
	}
	b.Velocity.Y += gravity * dt

	if b.Wall.OnWall && b.Velocity.Y < -cfg.WallJumping.WallSlideMaxSpeed {
		b.Velocity.Y = -cfg.WallJumping.WallSlideMaxSpeed
	} else if b.Velocity.Y < -cfg.Falling.TerminalVelocity {
		b.Velocity.Y = -cfg.Falling.TerminalVelocity
	}
}

func (p *Player) wallJump() {
	b := p.body
	cfg := p.tuning.WallJumping
	t := &b.Timers
	in := b.Input

	b.Jump.Hurtling = false
	wallDir := float64(p.physics.NearbyWallDirection)
	if b.Wall.OnWall {
		wallDir = float64(b.Wall.DirX)
	}

	switch {
	case in.X == 0:
		b.Velocity.Y = cfg.Neutral.Y
		if cfg.HurtleOnNeutral {
			b.Velocity.X = -wallDir * p.tuning.Running.MoveSpeed
			b.Jump.Hurtling = true
		} else {
			b.Velocity.X = -wallDir * cfg.Neutral.X
		}
	case unitySign(in.X) == unitySign(wallDir):
		b.Velocity = entity.Vec2{X: -wallDir * cfg.Toward.X, Y: cfg.Toward.Y}
	default:
		b.Velocity = entity.Vec2{X: -wallDir * cfg.Away.X, Y: cfg.Away.Y}
	}

	if t.AirJumpRefund > 0 {
		t.AirJumpRefund = 0
		b.Jump.AirJumpCount = p.tuning.AirJumping.MaxAirJumps
		b.Jump.AirJumping = false
	}

	p.presenter.PlaySound(entity.SoundJump)
	t.JumpBuffer = 0
	b.Jump.Jumping = true
	t.WallJumpCommit = cfg.WallJumpCommitTime
}

// updateHurtling ends a hurtle once the player lands, hits a wall or
// steers against it.
func (p *Player) updateHurtling(wallJumping bool) {
	if wallJumping {
		return
	}
	b := p.body
	in, prev, vx := b.Input.X, b.InputPrev.X, b.Velocity.X

	collided := b.Collisions.Below || b.Collisions.Left || b.Collisions.Right
	movingOpposite := in != 0 && unitySign(in) == -unitySign(vx)
	slowingDown := (in == 0 || unitySign(in) != unitySign(vx)) &&
		(prev != 0 && unitySign(prev) == unitySign(vx))

	if collided || movingOpposite || slowingDown {
		b.Jump.Hurtling = false
	}
}

func (p *Player) runAcceleration() {
	b := p.body
	cfg := p.tuning.Running
	in, vx := b.Input.X, b.Velocity.X
	grounded := b.Collisions.Below
	hurtling := b.Jump.Hurtling

	target := 0.0
	if in != 0 {
		target = unitySign(in) * cfg.MoveSpeed
	}

	pick := func(ground, air float64) float64 {
		if grounded {
			return cfg.MoveSpeed / ground
		}
		return cfg.MoveSpeed / air
	}

	movingTooFast := unitySign(in) == unitySign(vx) && math.Abs(vx) > cfg.MoveSpeed
	accel := 0.0
	switch {
	case movingTooFast && !hurtling && in != 0:
		// keep most of the extra speed while still pushing that way
		accel = pick(cfg.MomentumDecelGrounded, cfg.MomentumDecelAirborne)
	case ((in == 0 || movingTooFast) && !hurtling) || (b.Timers.WallJumpCommit > 0 && !hurtling):
		accel = pick(cfg.DecelGrounded, cfg.DecelAirborne)
	case !hurtling || (in != 0 && math.Abs(vx) < cfg.MoveSpeed):
		accel = pick(cfg.AccelGrounded, cfg.AccelAirborne)
	}

	b.Velocity.X = entity.Approach(vx, target, accel*p.dt)
}

func (*normalState) LateUpdate(p *Player) {
	b := p.body
	cfg := p.tuning
	c := b.Collisions

	switch {
	case c.Left:
		b.Wall.DirX = -1
	case c.Right:
		b.Wall.DirX = 1
	default:
		b.Wall.DirX = 0
	}

	b.Wall.OnWallPrev = b.Wall.OnWall
	b.Wall.OnWall = false
	if c.Left || c.Right {
		b.Velocity.X = 0
		if !c.Below {
			b.Wall.OnWall = true
		}
		b.Timers.WallJumpCommit = 0
	}

	if c.Above || c.Below {
		b.Velocity.Y = 0
	}

	if c.Below {
		b.Timers.JumpGrace = cfg.Jumping.JumpGraceTime
		b.Jump.AirJumpCount = cfg.AirJumping.MaxAirJumps
	} else {
		b.Timers.JumpGrace -= p.dt
	}

	if b.Hook.RetractingAfterSwing {
		p.retractAfterSwing()
	} else {
		p.updateGrappleHook()
	}
}

// retractAfterSwing reels the hook in from the last anchor after a swing
// or zip ends.
func (p *Player) retractAfterSwing() {
	b := p.body
	h := &b.Hook
	t := &b.Timers

	if t.Retract <= 0 {
		h.RetractingAfterSwing = false
		h.Visible = false
		h.HideArm = false
		return
	}

	h.HideArm = true
	t.Retract -= p.dt

	rope := b.Position.Sub(h.Anchor)
	distance := entity.Lerp(0, rope.Len(), t.Retract/p.tuning.Grappling.RetractTime)
	h.Position = b.Position.Sub(rope.Normalized().Scale(distance))
}
