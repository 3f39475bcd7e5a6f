package player

import (
	"math"

	"github.com/younwookim/grapple/internal/application/state"
	"github.com/younwookim/grapple/internal/domain/entity"
)

// swingState moves the player on a circle around the hook anchor.
// Angles are radians measured from the anchor to the player.
type swingState struct {
	angle float64
	// speed is signed tangential speed; positive swings counterclockwise.
	speed    float64
	spinning bool
	spinner  *entity.Collider
}

func (s *swingState) Enter(p *Player) {
	b := p.body
	cfg := p.tuning.Swinging
	h := &b.Hook

	spinning := s.spinning && s.spinner != nil
	if spinning {
		h.Anchor = s.spinner.Center()
		h.Position = h.Anchor
		h.Length = h.Anchor.Sub(b.Position).Len()
	}

	// already pressed into the wall we would swing toward
	if b.Wall.DirX != 0 && b.Wall.DirX == h.Direction {
		p.machine.Set(state.Bonk)
		return
	}

	dir := float64(h.Direction)
	momentum := math.Max(b.Velocity.X*dir, 0) + math.Max(b.Velocity.Y*-cfg.YMomentumModifier, 0)

	if spinning {
		spin := entity.Spin{}
		if s.spinner.Spin != nil {
			spin = *s.spinner.Spin
		}
		rotation := 1.0
		if spin.Clockwise {
			rotation = -1
		}
		s.speed = math.Max(spin.Speed, momentum) * rotation
	} else {
		s.speed = math.Max(cfg.SwingSpeed, momentum) * dir
	}

	rope := b.Position.Sub(h.Anchor)
	s.angle = math.Atan2(rope.Y, rope.X)

	p.physics.Swinging = true
	b.Wall.OnWall = false
	p.presenter.PlaySound(entity.SoundGrappleHit)
}

func (s *swingState) Update(p *Player) {
	b := p.body
	h := &b.Hook
	dt := p.dt

	if h.Length <= 0 {
		p.machine.Set(state.Normal)
		return
	}

	// dividing by the rope length keeps tangential speed constant
	s.angle += s.speed / h.Length * dt

	degrees := math.Mod(s.angle*180/math.Pi, 360)
	breakLimit := degrees < -180 || (degrees > 0 && degrees < 180)
	if !s.spinning && breakLimit {
		if degrees < -180 {
			s.angle = -math.Pi
		} else {
			s.angle = 0
		}
	}

	if !p.in.Grapple {
		p.machine.Set(state.Normal)
	}

	offset := entity.Vec2{X: math.Cos(s.angle), Y: math.Sin(s.angle)}.Scale(h.Length)
	b.Velocity = h.Anchor.Add(offset).Sub(b.Position).Scale(1 / dt)

	if !s.spinning && breakLimit {
		// released level with the anchor: carry the whole speed upward
		b.Velocity = entity.Vec2{Y: math.Abs(s.speed)}
		p.machine.Set(state.Normal)
	}

	b.Velocity = b.Velocity.Normalized().Scale(math.Abs(s.speed))
}

func (s *swingState) LateUpdate(p *Player) {
	b := p.body
	h := &b.Hook
	c := b.Collisions

	if c.Corrected {
		h.Length = h.Anchor.Sub(b.Position).Len()
	}

	if s.spinning {
		face := unitySign(s.speed)
		p.physics.FaceDirection = int(face)
		h.Facing = face

		if c.Any() {
			p.machine.Set(state.Bonk)
			return
		}
	}

	switch {
	case c.Below:
		// glide along the ground
		b.Velocity.Y = 0
		h.Length = h.Anchor.Sub(b.Position).Len()
	case c.Above:
		p.machine.Set(state.Bonk)
	case c.Left || c.Right:
		// swung into a wall almost horizontally
		if math.Abs(b.Velocity.Y) < p.tuning.Swinging.SwingSpeed*p.tuning.Swinging.BonkVerticalThreshold {
			p.machine.Set(state.Bonk)
			return
		}
		b.Velocity.X = 0
		p.machine.Set(state.Normal)
	}
}

func (s *swingState) Exit(p *Player) {
	b := p.body
	b.Jump.Hurtling = true
	b.Jump.Jumping = false
	b.Jump.AirJumpCount = p.tuning.AirJumping.MaxAirJumps
	b.Timers.Retract = p.tuning.Grappling.RetractTime
	b.Hook.RetractingAfterSwing = true
	p.physics.Swinging = false
}
