package player

import (
	"math"

	"github.com/younwookim/grapple/internal/application/state"
	"github.com/younwookim/grapple/internal/domain/entity"
)

type hookPhase int

const (
	hookIdle hookPhase = iota
	hookExtend
	hookPause
	hookRetract
)

// hookFacing is the side a new throw goes to: the held direction, away
// from a wall being slid on, or the way the body faces.
func (p *Player) hookFacing() float64 {
	b := p.body
	switch {
	case b.Input.X != 0:
		return unitySign(b.Input.X)
	case b.Wall.OnWall:
		return float64(-b.Wall.DirX)
	default:
		return float64(p.physics.FaceDirection)
	}
}

// hookDirection is the unit throw direction for a facing; zero facing
// throws straight up.
func (p *Player) hookDirection(facing float64) entity.Vec2 {
	if facing == 0 {
		return entity.Vec2{Y: 1}
	}
	a := p.tuning.Grappling.Angle * math.Pi / 180
	return entity.Vec2{X: math.Cos(a) * facing, Y: math.Sin(a)}
}

// updateGrappleHook starts throws, animates the extend/pause/retract
// cycle and casts the hook once per frame to find an anchor.
func (p *Player) updateGrappleHook() {
	b := p.body
	cfg := p.tuning.Grappling
	t := &b.Timers
	h := &b.Hook
	dt := p.dt

	facing := p.hookFacing()
	if t.GrappleBuffer > 0 && t.GrappleCooldown <= 0 {
		t.Extend = cfg.ExtendTime
		t.Pause = cfg.MissPauseTime
		t.Retract = cfg.RetractTime
		t.GrappleCooldown = p.tuning.HookCycle()
		t.GrappleBuffer = 0
		h.Position = b.Position
		h.Facing = facing
		p.presenter.PlaySound(entity.SoundGrapple)
	}

	direction := p.hookDirection(h.Facing)

	phase := hookIdle
	distance := 0.0
	castSign := 1.0
	switch {
	case t.Extend > 0:
		phase = hookExtend
		t.Extend -= dt
		distance = entity.Lerp(cfg.MaxLength, 0, t.Extend/cfg.ExtendTime)
		h.LongestDistance = distance
	case t.Pause > 0:
		phase = hookPause
		t.Pause -= dt
		distance = h.LongestDistance
	case t.Retract > 0:
		phase = hookRetract
		t.Retract -= dt
		// a short throw retracts in proportionally less time
		span := cfg.RetractTime * h.LongestDistance / cfg.MaxLength
		if span > 0 {
			distance = entity.Lerp(0, h.LongestDistance, t.Retract/span)
		}
		castSign = -1
	}

	h.Visible = distance > 0
	if distance <= 0 {
		h.Position = b.Position
		return
	}

	target := b.Position.Add(direction.Scale(distance))
	castLength := target.Sub(h.Position).Len()
	hit, ok := p.geometry.CircleCast(h.Position, cfg.CastRadius, direction.Scale(castSign), castLength,
		entity.MaskGrapple|entity.MaskDing)
	if !ok {
		h.Position = target
		return
	}

	switch {
	case hit.Tag == entity.TagLauncher:
		p.anchorHook(hit.Point)
		p.machine.Set(state.Zip)
	case hit.Tag == entity.TagSpinner:
		p.swing.spinning = true
		p.swing.spinner = hit.Collider
		h.Direction = int(h.Facing)
		p.clearHookCycle()
		p.machine.Set(state.Swing)
	case !entity.MaskDing.Has(hit.Layer):
		p.anchorHook(hit.Point)
		p.swing.spinning = false
		p.swing.spinner = nil
		p.presenter.HookImpact(hit.Point, hit.Normal)
		p.machine.Set(state.Swing)
	case phase == hookPause || (cfg.DingDuringExtend && phase == hookExtend):
		// bounced off: hold here and come back early
		p.presenter.PlaySound(entity.SoundDing)
		h.Position = hit.Point
		h.LongestDistance = h.Position.Sub(b.Position).Len()
		t.Extend = 0
		t.Pause = 0
		t.Retract = cfg.RetractTime * (h.LongestDistance / cfg.MaxLength)
	default:
		// ding surfaces do not stop a moving hook
		h.Position = target
	}
}

func (p *Player) anchorHook(point entity.Vec2) {
	b := p.body
	h := &b.Hook
	h.Anchor = point
	h.Length = point.Sub(b.Position).Len()
	h.Position = point
	h.Direction = int(h.Facing)
	p.clearHookCycle()
}

func (p *Player) clearHookCycle() {
	t := &p.body.Timers
	t.Extend = 0
	t.Pause = 0
	t.Retract = 0
}
