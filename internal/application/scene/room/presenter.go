package room

import (
	"strings"

	"github.com/younwookim/grapple/internal/application/player"
	"github.com/younwookim/grapple/internal/domain/entity"
)

// impactFrames is how long a hook impact marker stays on screen.
const impactFrames = 12

// SoundPlayer plays one-shot sound effects.
type SoundPlayer interface {
	PlaySound(s entity.Sound)
}

type impact struct {
	point, normal entity.Vec2
	frames        int
}

// presenter collects what the player asks to show and hands sounds to
// the audio device.
type presenter struct {
	sound     SoundPlayer
	animation string
	flip      bool
	impacts   []impact
}

var _ player.Presenter = (*presenter)(nil)

func (p *presenter) PlaySound(s entity.Sound) {
	if p.sound != nil {
		p.sound.PlaySound(s)
	}
}

func (p *presenter) SelectAnimation(name string) { p.animation = name }

func (p *presenter) SetSpriteFacing(flip bool) { p.flip = flip }

func (p *presenter) HookImpact(point, normal entity.Vec2) {
	p.impacts = append(p.impacts, impact{point: point, normal: normal, frames: impactFrames})
}

// tick ages impact markers by one frame.
func (p *presenter) tick() {
	live := p.impacts[:0]
	for _, im := range p.impacts {
		im.frames--
		if im.frames > 0 {
			live = append(live, im)
		}
	}
	p.impacts = live
}

// baseAnimation strips the armless variant suffix.
func baseAnimation(name string) string {
	return strings.TrimSuffix(name, player.ArmlessSuffix)
}
