package player

import (
	"math"

	"github.com/younwookim/grapple/internal/application/state"
)

// Animation names.
const (
	AnimIdle      = "idle"
	AnimRun       = "run"
	AnimJump      = "jump"
	AnimFall      = "fall"
	AnimFloat     = "float"
	AnimWallSlide = "wall_slide"
	AnimBonk      = "bonk"
	AnimDeath     = "death"
	AnimVictory   = "victory"

	// ArmlessSuffix selects the variant drawn while the hook arm is out.
	ArmlessSuffix = "_armless"
)

// floatThreshold is the vertical speed under which an airborne player
// shows the hang-time pose.
const floatThreshold = 2.0

func (p *Player) selectAnimation() string {
	b := p.body
	switch p.machine.Current() {
	case state.Normal, state.Swing:
	case state.Zip:
		return AnimJump
	case state.Bonk:
		return AnimBonk
	case state.Death:
		return AnimDeath
	case state.GoalReached:
		return AnimVictory
	default:
		return p.animation
	}

	if b.Wall.OnWall {
		return AnimWallSlide
	}

	name := AnimIdle
	airborne := !b.Collisions.Below
	switch {
	case airborne && math.Abs(b.Velocity.Y) < floatThreshold:
		name = AnimFloat
	case airborne && b.Velocity.Y > 0:
		name = AnimJump
	case airborne:
		name = AnimFall
	case math.Abs(b.Velocity.X) > 0:
		name = AnimRun
	}
	if b.Hook.Visible {
		name += ArmlessSuffix
	}
	return name
}

func (p *Player) updateAnimation() {
	name := p.selectAnimation()
	if name == p.animation {
		return
	}
	p.animation = name
	p.presenter.SelectAnimation(name)
}
