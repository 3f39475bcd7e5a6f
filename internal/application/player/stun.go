package player

import (
	"github.com/younwookim/grapple/internal/application/state"
	"github.com/younwookim/grapple/internal/domain/entity"
)

// bonkState is a short stun after the hook throws the player into
// something.
type bonkState struct {
	timer float64
}

func (s *bonkState) Enter(p *Player) {
	b := p.body
	b.Velocity = entity.Vec2{}
	p.presenter.PlaySound(entity.SoundBonk)
	s.timer = p.tuning.Swinging.StunTime
	b.Jump.Hurtling = false
	b.Hook.HideArm = true
}

func (s *bonkState) Update(p *Player) {
	s.timer -= p.dt
	if s.timer <= 0 {
		p.machine.Set(state.Normal)
	}
}

// deathState holds the player still until the host respawns it.
// DeathFinished is raised once, when the death timer runs out or, after
// a skip press, when the shorter skip timer does.
type deathState struct {
	timer     float64
	skipTimer float64
	skip      bool
	finished  bool
}

func (s *deathState) Enter(p *Player) {
	b := p.body
	cfg := p.tuning.Death

	b.Velocity = entity.Vec2{}
	s.timer = cfg.DeathTime
	s.skipTimer = cfg.DeathSkipTime
	s.skip = false
	s.finished = false
	p.presenter.PlaySound(entity.SoundDeath)
	b.Hook.Visible = false
	b.ColliderEnabled = false
}

func (s *deathState) Update(p *Player) {
	if p.in.JumpPressed || p.in.GrapplePressed {
		s.skip = true
	}

	s.timer -= p.dt
	s.skipTimer -= p.dt

	if s.finished {
		return
	}
	if s.timer <= 0 || (s.skip && s.skipTimer <= 0) {
		s.finished = true
		p.signals.Push(entity.SignalDeathFinished)
	}
}

// goalState freezes the player once the room is complete.
type goalState struct{}

func (*goalState) Enter(p *Player) {
	b := p.body
	b.Velocity = entity.Vec2{}
	b.Hook.Visible = false
	p.signals.Push(entity.SignalNextRoom)
}
