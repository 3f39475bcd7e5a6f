package player

import (
	"math"

	"github.com/younwookim/grapple/internal/application/state"
	"github.com/younwookim/grapple/internal/domain/entity"
)

// zipState reels the player straight in toward a launcher.
type zipState struct {
	angle float64
}

func (z *zipState) Enter(p *Player) {
	b := p.body
	rope := b.Position.Sub(b.Hook.Anchor)
	z.angle = math.Atan2(rope.Y, rope.X)
}

func (z *zipState) Update(p *Player) {
	b := p.body
	h := &b.Hook

	switch {
	case !p.in.Grapple:
		p.machine.Set(state.Normal)
	case b.Position.Y < h.Anchor.Y:
		h.Length = math.Max(h.Length-p.tuning.Zipping.ZipSpeed*p.dt, 0)
		offset := entity.Vec2{X: math.Cos(z.angle), Y: math.Sin(z.angle)}.Scale(h.Length)
		b.Velocity = h.Anchor.Add(offset).Sub(b.Position).Scale(1 / p.dt)
	default:
		// reached the launcher
		p.machine.Set(state.Normal)
	}
}

func (*zipState) LateUpdate(p *Player) {
	if p.body.Collisions.Any() {
		p.machine.Set(state.Bonk)
	}
}

// Exit launches the player in the direction the hook was thrown.
func (*zipState) Exit(p *Player) {
	b := p.body
	cfg := p.tuning.Zipping

	dir := entity.Vec2{X: cfg.FinalDirRatio.X * float64(b.Hook.Direction), Y: cfg.FinalDirRatio.Y}
	b.Velocity = dir.Normalized().Scale(cfg.FinalZipSpeed)

	b.Jump.AirJumpCount = p.tuning.AirJumping.MaxAirJumps
	b.Jump.Jumping = false
	b.Timers.Retract = p.tuning.Grappling.RetractTime
	b.Hook.RetractingAfterSwing = true
}
