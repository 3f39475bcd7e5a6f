package player

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/grapple/internal/application/state"
	"github.com/younwookim/grapple/internal/application/system"
	"github.com/younwookim/grapple/internal/domain/entity"
	"github.com/younwookim/grapple/internal/infrastructure/collision"
	"github.com/younwookim/grapple/internal/infrastructure/config"
)

const frameDt = 1.0 / 60

var testBody = entity.Vec2{X: 0.8, Y: 0.8}

func createTestPhysicsConfig() *config.PhysicsConfig {
	return &config.PhysicsConfig{
		Running: config.RunningConfig{
			MoveSpeed:             12,
			AccelGrounded:         0.1,
			DecelGrounded:         0.08,
			AccelAirborne:         0.2,
			DecelAirborne:         0.2,
			MomentumDecelGrounded: 0.5,
			MomentumDecelAirborne: 1,
		},
		Jumping: config.JumpingConfig{
			MaxJumpHeight:        4.5,
			MinJumpHeight:        0.5,
			TimeToJumpApex:       0.5,
			JumpGraceTime:        0.1,
			JumpBufferTime:       0.08,
			HalfGravityThreshold: 1,
		},
		AirJumping: config.AirJumpingConfig{
			MaxAirJumps:       1,
			MaxAirJumpHeight:  2,
			MinAirJumpHeight:  0.5,
			AirJumpRefundTime: 0.1,
		},
		WallJumping: config.WallJumpingConfig{
			Toward:             config.XY{X: 10, Y: 16},
			Neutral:            config.XY{X: 12, Y: 14},
			Away:               config.XY{X: 14, Y: 16},
			WallStickTime:      0.15,
			WallSlideMaxSpeed:  10,
			WallJumpCommitTime: 0.1,
		},
		Grappling: config.GrapplingConfig{
			MaxLength:     10,
			Angle:         45,
			BufferTime:    0.08,
			CastRadius:    0.25,
			ExtendTime:    0.15,
			MissPauseTime: 0.1,
			RetractTime:   0.15,
		},
		Swinging: config.SwingingConfig{
			SwingSpeed:            18,
			MaxSwingSpeed:         30,
			YMomentumModifier:     0.5,
			BonkVerticalThreshold: 0.3,
			StunTime:              0.15,
		},
		Zipping: config.ZippingConfig{
			ZipSpeed:      30,
			FinalZipSpeed: 20,
			FinalDirRatio: config.XY{X: 1, Y: 1},
		},
		Falling: config.FallingConfig{TerminalVelocity: 20},
		Death:   config.DeathConfig{DeathTime: 1, DeathSkipTime: 0.3},
		Collision: config.CollisionConfig{
			SkinWidth:              0.015,
			RaySpacing:             0.25,
			UpwardCornerCorrection: 0.5,
			SideCornerCorrection:   0.5,
			NearbyWallDistance:     0.3,
		},
	}
}

// recorder is a Presenter that remembers what it was asked to show.
type recorder struct {
	sounds  []entity.Sound
	anims   []string
	impacts int
	flip    bool
}

func (r *recorder) PlaySound(s entity.Sound)    { r.sounds = append(r.sounds, s) }
func (r *recorder) SelectAnimation(name string) { r.anims = append(r.anims, name) }
func (r *recorder) SetSpriteFacing(flip bool)   { r.flip = flip }
func (r *recorder) HookImpact(_, _ entity.Vec2) { r.impacts++ }

func (r *recorder) count(s entity.Sound) int {
	n := 0
	for _, got := range r.sounds {
		if got == s {
			n++
		}
	}
	return n
}

func floorField() *collision.Field {
	f := collision.NewField()
	f.AddBox(entity.Vec2{X: -50, Y: -1}, entity.Vec2{X: 50, Y: 0}, entity.LayerSolid, entity.TagNone)
	return f
}

type testPlayer struct {
	*Player
	rec *recorder
}

func newTestPlayer(f *collision.Field, spawn entity.Vec2, mutate func(*config.PhysicsConfig)) testPlayer {
	cfg := createTestPhysicsConfig()
	if mutate != nil {
		mutate(cfg)
	}
	rec := &recorder{}
	p := New(NewTuning(cfg), Deps{
		Physics:   system.NewPhysicsSystem(&cfg.Collision, f),
		Geometry:  f,
		Presenter: rec,
	}, spawn, testBody, false)
	return testPlayer{Player: p, rec: rec}
}

func (p testPlayer) step(in system.InputState, frames int) {
	for i := 0; i < frames; i++ {
		p.Update(in, frameDt)
	}
}

var (
	idle        = system.InputState{}
	pressJump   = system.InputState{Jump: true, JumpPressed: true}
	holdJump    = system.InputState{Jump: true}
	releaseJump = system.InputState{JumpReleased: true}
	pressHook   = system.InputState{Grapple: true, GrapplePressed: true}
	holdHook    = system.InputState{Grapple: true}
	releaseHook = system.InputState{GrappleReleased: true}
)

func TestNewTuning(t *testing.T) {
	tun := NewTuning(createTestPhysicsConfig())

	assert.InDelta(t, -36.0, tun.Gravity, 1e-9)
	assert.InDelta(t, 18.0, tun.MaxJumpVelocity, 1e-9)
	assert.InDelta(t, 6.0, tun.MinJumpVelocity, 1e-9)
	assert.InDelta(t, 12.0, tun.MaxAirJumpVelocity, 1e-9)
	assert.InDelta(t, 6.0, tun.MinAirJumpVelocity, 1e-9)
	assert.InDelta(t, 0.4, tun.HookCycle(), 1e-9)
}

func TestPlayer_New(t *testing.T) {
	p := newTestPlayer(floorField(), entity.Vec2{X: 0, Y: 0.4}, nil)

	assert.Equal(t, state.Normal, p.State())
	assert.Equal(t, entity.Vec2{X: 0, Y: 0.4}, p.Position())
	assert.Equal(t, 1, p.physics.FaceDirection)
	assert.Equal(t, 1, p.body.Jump.AirJumpCount)
	assert.True(t, p.body.ColliderEnabled)
}

func TestPlayer_FlipX(t *testing.T) {
	cfg := createTestPhysicsConfig()
	f := floorField()
	rec := &recorder{}
	p := New(NewTuning(cfg), Deps{
		Physics:   system.NewPhysicsSystem(&cfg.Collision, f),
		Geometry:  f,
		Presenter: rec,
	}, entity.Vec2{Y: 0.4}, testBody, true)

	assert.Equal(t, -1, p.physics.FaceDirection)
	p.Update(idle, frameDt)
	assert.True(t, rec.flip)
}

func TestPlayer_StandsOnFloor(t *testing.T) {
	p := newTestPlayer(floorField(), entity.Vec2{X: 0, Y: 0.4}, nil)

	p.step(idle, 10)

	assert.InDelta(t, 0.4, p.Position().Y, 1e-9)
	assert.Equal(t, 0.0, p.Position().X)
	assert.True(t, p.Collisions().Below)
	assert.Equal(t, entity.Vec2{}, p.Velocity())
	assert.Equal(t, AnimIdle, p.Animation())
}

func TestPlayer_Run(t *testing.T) {
	p := newTestPlayer(floorField(), entity.Vec2{X: 0, Y: 0.4}, nil)
	right := system.InputState{Move: entity.Vec2{X: 1}}
	p.step(idle, 1)

	p.step(right, 1)
	// grounded acceleration reaches full speed in accelGrounded seconds
	assert.InDelta(t, 12.0/0.1*frameDt, p.Velocity().X, 1e-9)
	assert.Equal(t, AnimRun, p.Animation())

	p.step(right, 10)
	assert.InDelta(t, 12.0, p.Velocity().X, 1e-9)
	assert.Greater(t, p.Position().X, 0.0)

	p.step(idle, 10)
	assert.Equal(t, 0.0, p.Velocity().X)
}

func TestPlayer_Jump(t *testing.T) {
	p := newTestPlayer(floorField(), entity.Vec2{X: 0, Y: 0.4}, nil)
	p.step(idle, 2)

	t.Run("ground jump", func(t *testing.T) {
		p.step(pressJump, 1)
		assert.InDelta(t, 18.0-36.0*frameDt, p.Velocity().Y, 1e-9)
		assert.True(t, p.body.Jump.Jumping)
		assert.Equal(t, 1, p.rec.count(entity.SoundJump))
		assert.Equal(t, AnimJump, p.Animation())
	})

	t.Run("release cuts the jump short", func(t *testing.T) {
		p.step(releaseJump, 1)
		assert.InDelta(t, 6.0-36.0*frameDt, p.Velocity().Y, 1e-9)
	})

	t.Run("air jump", func(t *testing.T) {
		p.step(idle, 2)
		p.step(pressJump, 1)
		assert.InDelta(t, 12.0-36.0*frameDt, p.Velocity().Y, 1e-9)
		assert.Equal(t, 0, p.body.Jump.AirJumpCount)
		assert.Equal(t, 0, p.rec.count(entity.SoundAirJump), "refund window still open")

		p.step(holdJump, 8)
		assert.Equal(t, 1, p.rec.count(entity.SoundAirJump))
	})

	t.Run("no more air jumps", func(t *testing.T) {
		p.step(releaseJump, 1)
		vy := p.Velocity().Y
		p.step(pressJump, 1)
		assert.Less(t, p.Velocity().Y, vy)
	})
}

func TestPlayer_JumpBuffer(t *testing.T) {
	spawn := entity.Vec2{X: 0, Y: 3}
	noAirJumps := func(cfg *config.PhysicsConfig) { cfg.AirJumping.MaxAirJumps = 0 }

	// find the frame the player lands on when nothing is pressed
	dry := newTestPlayer(floorField(), spawn, noAirJumps)
	landing := 0
	for frame := 1; frame <= 120; frame++ {
		dry.step(idle, 1)
		if dry.Collisions().Below {
			landing = frame
			break
		}
	}
	require.Greater(t, landing, 10)

	jumpsAfterPressAt := func(press int) bool {
		p := newTestPlayer(floorField(), spawn, noAirJumps)
		for frame := 1; frame <= landing+1; frame++ {
			switch {
			case frame == press:
				p.step(pressJump, 1)
			case frame > press:
				p.step(holdJump, 1)
			default:
				p.step(idle, 1)
			}
		}
		return p.Velocity().Y > 0
	}

	assert.True(t, jumpsAfterPressAt(landing-3), "press inside the buffer window")
	assert.False(t, jumpsAfterPressAt(landing-6), "press too early")
}

func TestPlayer_CoyoteTime(t *testing.T) {
	f := collision.NewField()
	f.AddBox(entity.Vec2{X: -10, Y: -1}, entity.Vec2{X: 0, Y: 0}, entity.LayerSolid, entity.TagNone)
	p := newTestPlayer(f, entity.Vec2{X: -0.5, Y: 0.4}, func(cfg *config.PhysicsConfig) {
		cfg.AirJumping.MaxAirJumps = 0
	})
	p.step(idle, 2)

	// walk off the ledge
	right := system.InputState{Move: entity.Vec2{X: 1}}
	for i := 0; i < 60 && p.Collisions().Below; i++ {
		p.step(right, 1)
	}
	require.False(t, p.Collisions().Below)

	p.step(system.InputState{Move: entity.Vec2{X: 1}, Jump: true, JumpPressed: true}, 1)
	assert.Greater(t, p.Velocity().Y, 0.0)
}

func TestPlayer_WallJump(t *testing.T) {
	f := floorField()
	f.AddBox(entity.Vec2{X: 1, Y: 0}, entity.Vec2{X: 2, Y: 20}, entity.LayerSolid, entity.TagNone)
	p := newTestPlayer(f, entity.Vec2{X: 0.595, Y: 5}, nil)

	p.step(idle, 1)
	require.True(t, p.body.Wall.OnWall)
	require.Equal(t, 1, p.body.Wall.DirX)
	assert.Equal(t, AnimWallSlide, p.Animation())

	p.step(pressJump, 1)

	// neutral wall jump, then one frame of airborne deceleration
	assert.InDelta(t, -12.0+12.0/0.2*frameDt, p.Velocity().X, 1e-9)
	assert.InDelta(t, 14.0-36.0*frameDt, p.Velocity().Y, 1e-9)
	assert.Equal(t, 1, p.rec.count(entity.SoundJump))
	assert.Less(t, p.Position().X, 0.595)
}

func TestPlayer_WallSlideCap(t *testing.T) {
	f := floorField()
	f.AddBox(entity.Vec2{X: 1, Y: 0}, entity.Vec2{X: 2, Y: 50}, entity.LayerSolid, entity.TagNone)
	p := newTestPlayer(f, entity.Vec2{X: 0.595, Y: 40}, nil)

	p.step(system.InputState{Move: entity.Vec2{X: 1}}, 60)

	require.True(t, p.body.Wall.OnWall)
	assert.InDelta(t, -10.0, p.Velocity().Y, 1e-9)
}

func TestPlayer_HookMiss(t *testing.T) {
	t.Run("held throw runs the full cycle", func(t *testing.T) {
		p := newTestPlayer(floorField(), entity.Vec2{X: 0, Y: 0.4}, nil)
		p.step(idle, 2)

		p.step(pressHook, 1)
		require.True(t, p.Hook().Visible)
		assert.InDelta(t, 10.0/9, p.Hook().LongestDistance, 1e-9)
		assert.Equal(t, 1, p.rec.count(entity.SoundGrapple))
		assert.Equal(t, AnimIdle+ArmlessSuffix, p.Animation())

		p.step(holdHook, 13)
		assert.True(t, p.Hook().Visible, "pausing at full length")
		assert.InDelta(t, 10.0, p.Hook().LongestDistance, 1e-9)

		p.step(holdHook, 20)
		assert.False(t, p.Hook().Visible)
		assert.Equal(t, p.Position(), p.Hook().Position)
		assert.Equal(t, state.Normal, p.State())
	})

	t.Run("tap retracts early", func(t *testing.T) {
		p := newTestPlayer(floorField(), entity.Vec2{X: 0, Y: 0.4}, nil)
		p.step(idle, 2)

		p.step(pressHook, 1)
		p.step(releaseHook, 1)
		assert.InDelta(t, 0.15*(10.0/9)/10, p.body.Timers.Retract, 1e-9)

		p.step(idle, 12)
		assert.False(t, p.Hook().Visible)
	})

	t.Run("cooldown blocks a second throw", func(t *testing.T) {
		p := newTestPlayer(floorField(), entity.Vec2{X: 0, Y: 0.4}, nil)
		p.step(idle, 2)

		p.step(pressHook, 1)
		p.step(releaseHook, 1)
		p.step(pressHook, 1)
		assert.Equal(t, 1, p.rec.count(entity.SoundGrapple))

		p.step(releaseHook, 1)
		p.step(idle, 30)
		p.step(pressHook, 1)
		assert.Equal(t, 2, p.rec.count(entity.SoundGrapple))
	})
}

func TestPlayer_LauncherZip(t *testing.T) {
	f := floorField()
	spawn := entity.Vec2{X: 0, Y: 0.4}
	dir := entity.Vec2{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}
	center := spawn.Add(dir.Scale(5 + 0.3))
	f.AddCircle(center, 0.3, entity.LayerHookable, entity.TagLauncher, nil)

	p := newTestPlayer(f, spawn, func(cfg *config.PhysicsConfig) {
		cfg.Grappling.CastRadius = 0.1
	})
	zips := 0
	p.OnStateChange = func(_, to state.ID) {
		if to == state.Zip {
			zips++
		}
	}

	p.step(pressHook, 1)
	p.step(holdHook, 3)
	require.Equal(t, state.Normal, p.State(), "hook still short of the launcher")

	p.step(holdHook, 1)
	require.Equal(t, state.Zip, p.State())
	assert.Equal(t, 1, zips)
	assert.InDelta(t, 5.0, p.Hook().Length, 1e-6)
	assert.Equal(t, 1, p.Hook().Direction)
	assert.Equal(t, AnimJump, p.Animation())

	startY := p.Position().Y
	p.step(holdHook, 3)
	assert.Equal(t, state.Zip, p.State())
	assert.Greater(t, p.Position().Y, startY)
	assert.Equal(t, 1, zips)

	p.step(releaseHook, 1)
	assert.Equal(t, state.Normal, p.State())
	want := 20 / math.Sqrt2
	assert.InDelta(t, want, p.Velocity().X, 1e-6)
	assert.InDelta(t, want, p.Velocity().Y, 1e-6)
	assert.True(t, p.Hook().RetractingAfterSwing)
	assert.Equal(t, 1, zips)
}

func TestPlayer_SwingFromCeiling(t *testing.T) {
	f := floorField()
	f.AddBox(entity.Vec2{X: -20, Y: 5}, entity.Vec2{X: 20, Y: 6}, entity.LayerSolid, entity.TagNone)
	p := newTestPlayer(f, entity.Vec2{X: 0, Y: 0.4}, nil)
	p.step(idle, 2)

	p.step(pressHook, 1)
	p.step(holdHook, 4)
	require.Equal(t, state.Normal, p.State())

	p.step(holdHook, 1)
	require.Equal(t, state.Swing, p.State())
	assert.InDelta(t, 5.0, p.Hook().Anchor.Y, 1e-6)
	assert.InDelta(t, p.Hook().Anchor.Sub(p.Position()).Len(), p.Hook().Length, 1e-9)
	assert.True(t, p.physics.Swinging)
	assert.Equal(t, 1, p.rec.count(entity.SoundGrappleHit))
	assert.Equal(t, 1, p.rec.impacts)
	assert.Equal(t, 18.0, p.swing.speed)

	startX := p.Position().X
	p.step(holdHook, 3)
	assert.Equal(t, state.Swing, p.State())
	assert.Greater(t, p.Velocity().X, 0.0)
	assert.Greater(t, p.Position().X, startX)

	p.step(releaseHook, 1)
	assert.Equal(t, state.Normal, p.State())
	assert.False(t, p.physics.Swinging)
	assert.True(t, p.body.Jump.Hurtling)
	assert.True(t, p.Hook().RetractingAfterSwing)
	assert.Equal(t, 1, p.body.Jump.AirJumpCount)
}

func TestPlayer_SwingIntoWallBonks(t *testing.T) {
	f := collision.NewField()
	f.AddBox(entity.Vec2{X: 1, Y: 0}, entity.Vec2{X: 2, Y: 10}, entity.LayerSolid, entity.TagNone)
	p := newTestPlayer(f, entity.Vec2{X: 0.595, Y: 5}, nil)

	p.step(idle, 1)
	require.Equal(t, 1, p.body.Wall.DirX)

	p.body.Hook.Anchor = entity.Vec2{X: 0.595, Y: 8}
	p.body.Hook.Length = 3
	p.body.Hook.Direction = 1
	p.machine.Set(state.Swing)

	assert.Equal(t, state.Bonk, p.State())
	assert.False(t, p.physics.Swinging)
}

func TestPlayer_SwingOnSpinner(t *testing.T) {
	t.Run("hook catches the spinner", func(t *testing.T) {
		f := floorField()
		spawn := entity.Vec2{X: 0, Y: 0.4}
		dir := entity.Vec2{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}
		spinner := f.AddCircle(spawn.Add(dir.Scale(4.5)), 0.5, entity.LayerHookable, entity.TagSpinner,
			&entity.Spin{Clockwise: true, Speed: 20})
		p := newTestPlayer(f, spawn, nil)
		p.step(idle, 2)

		p.step(pressHook, 1)
		for i := 0; i < 12 && p.State() != state.Swing; i++ {
			p.step(holdHook, 1)
		}
		require.Equal(t, state.Swing, p.State())
		assert.True(t, p.swing.spinning)
		assert.InDelta(t, spinner.Center().X, p.Hook().Anchor.X, 1e-9)
		assert.InDelta(t, spinner.Center().Y, p.Hook().Anchor.Y, 1e-9)
		assert.Equal(t, p.Hook().Anchor, p.Hook().Position)
		assert.InDelta(t, p.Hook().Anchor.Sub(p.Position()).Len(), p.Hook().Length, 1e-9)
		assert.Equal(t, -20.0, p.swing.speed)

		p.step(holdHook, 1)
		assert.Equal(t, state.Swing, p.State())
		assert.Equal(t, -1, p.physics.FaceDirection)
		assert.Equal(t, -1.0, p.Hook().Facing)
	})

	t.Run("speed is the faster of spin and momentum", func(t *testing.T) {
		tests := []struct {
			name      string
			velocity  entity.Vec2
			clockwise bool
			want      float64
		}{
			{name: "at rest", clockwise: true, want: -10},
			{name: "fast run", velocity: entity.Vec2{X: 15}, clockwise: true, want: -15},
			{name: "fast fall", velocity: entity.Vec2{Y: -40}, want: 20},
			{name: "running away", velocity: entity.Vec2{X: -15}, want: 10},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := collision.NewField()
				spinner := f.AddCircle(entity.Vec2{X: 3, Y: 2}, 0.5, entity.LayerHookable, entity.TagSpinner,
					&entity.Spin{Clockwise: tt.clockwise, Speed: 10})
				p := newTestPlayer(f, entity.Vec2{X: 0, Y: 5}, nil)
				p.body.Velocity = tt.velocity
				p.body.Hook.Direction = 1
				p.swing.spinning = true
				p.swing.spinner = spinner

				p.machine.Set(state.Swing)
				require.Equal(t, state.Swing, p.State())
				assert.Equal(t, tt.want, p.swing.speed)
			})
		}
	})

	t.Run("facing follows the rotation", func(t *testing.T) {
		f := collision.NewField()
		spinner := f.AddCircle(entity.Vec2{X: 3, Y: 2}, 0.5, entity.LayerHookable, entity.TagSpinner,
			&entity.Spin{Clockwise: true, Speed: 10})
		p := newTestPlayer(f, entity.Vec2{X: 0, Y: 5}, nil)
		p.body.Hook.Direction = 1
		p.swing.spinning = true
		p.swing.spinner = spinner
		p.machine.Set(state.Swing)

		p.step(system.InputState{Move: entity.Vec2{X: 1}, Grapple: true}, 3)
		require.Equal(t, state.Swing, p.State())
		assert.Greater(t, p.Velocity().X, 0.0, "clockwise above the hub moves right")
		assert.Equal(t, -1, p.physics.FaceDirection)
		assert.Equal(t, -1.0, p.Hook().Facing)
	})

	t.Run("any contact bonks", func(t *testing.T) {
		f := floorField()
		spinner := f.AddCircle(entity.Vec2{X: 3, Y: 3.4}, 0.5, entity.LayerHookable, entity.TagSpinner,
			&entity.Spin{Speed: 10})
		p := newTestPlayer(f, entity.Vec2{X: 0, Y: 0.4}, nil)
		p.step(idle, 2)
		p.body.Hook.Direction = 1
		p.swing.spinning = true
		p.swing.spinner = spinner
		p.machine.Set(state.Swing)
		require.Equal(t, state.Swing, p.State())

		// counterclockwise below the hub drives into the floor
		p.step(holdHook, 1)
		assert.Equal(t, state.Bonk, p.State())
	})

	t.Run("wall bonk still anchors on the hub", func(t *testing.T) {
		f := collision.NewField()
		f.AddBox(entity.Vec2{X: 1, Y: 0}, entity.Vec2{X: 2, Y: 10}, entity.LayerSolid, entity.TagNone)
		spinner := f.AddCircle(entity.Vec2{X: 3, Y: 8}, 0.5, entity.LayerHookable, entity.TagSpinner,
			&entity.Spin{Speed: 10})
		p := newTestPlayer(f, entity.Vec2{X: 0.595, Y: 5}, nil)
		p.step(idle, 1)
		require.Equal(t, 1, p.body.Wall.DirX)

		p.body.Hook.Anchor = entity.Vec2{X: -5, Y: -5}
		p.body.Hook.Direction = 1
		p.swing.spinning = true
		p.swing.spinner = spinner
		p.machine.Set(state.Swing)

		assert.Equal(t, state.Bonk, p.State())
		assert.Equal(t, spinner.Center(), p.Hook().Anchor)
	})
}

func TestPlayer_AirJumpRefund(t *testing.T) {
	pushRight := system.InputState{Move: entity.Vec2{X: 1}, Jump: true}

	t.Run("wall jump soon after restores it", func(t *testing.T) {
		f := collision.NewField()
		f.AddBox(entity.Vec2{X: 1, Y: 0}, entity.Vec2{X: 2, Y: 20}, entity.LayerSolid, entity.TagNone)
		p := newTestPlayer(f, entity.Vec2{X: 0.1, Y: 10}, nil)
		p.body.Velocity.X = 12

		p.step(system.InputState{Move: entity.Vec2{X: 1}, Jump: true, JumpPressed: true}, 1)
		require.Equal(t, 0, p.body.Jump.AirJumpCount)
		require.Greater(t, p.body.Timers.AirJumpRefund, 0.0)

		for i := 0; i < 5 && p.rec.count(entity.SoundJump) == 0; i++ {
			p.step(pushRight, 1)
		}
		require.Equal(t, 1, p.rec.count(entity.SoundJump), "wall jump")
		assert.Equal(t, 1, p.body.Jump.AirJumpCount)
		assert.False(t, p.body.Jump.AirJumping)
		assert.Less(t, p.Velocity().X, 0.0)

		p.step(pushRight, 10)
		assert.Zero(t, p.rec.count(entity.SoundAirJump), "refunded air jumps stay silent")
	})

	t.Run("late wall keeps it spent", func(t *testing.T) {
		f := collision.NewField()
		f.AddBox(entity.Vec2{X: 3, Y: 0}, entity.Vec2{X: 4, Y: 20}, entity.LayerSolid, entity.TagNone)
		p := newTestPlayer(f, entity.Vec2{X: 0.1, Y: 10}, nil)
		p.body.Velocity.X = 12

		p.step(system.InputState{Move: entity.Vec2{X: 1}, Jump: true, JumpPressed: true}, 1)
		p.step(pushRight, 20)

		assert.True(t, p.Collisions().Right || p.body.Wall.OnWall)
		assert.Equal(t, 0, p.body.Jump.AirJumpCount)
		assert.Equal(t, 1, p.rec.count(entity.SoundAirJump))
		assert.Zero(t, p.rec.count(entity.SoundJump))
	})
}

func TestPlayer_Hurtling(t *testing.T) {
	right := system.InputState{Move: entity.Vec2{X: 1}}
	left := system.InputState{Move: entity.Vec2{X: -1}}

	tests := []struct {
		name     string
		hurtling bool
		inputs   []system.InputState
		wantVX   float64
		wantHurt bool
	}{
		{name: "held keeps momentum", hurtling: true, inputs: []system.InputState{right, right, right, right, right}, wantVX: 20, wantHurt: true},
		{name: "untouched keeps momentum", hurtling: true, inputs: []system.InputState{idle, idle, idle, idle, idle}, wantVX: 20, wantHurt: true},
		{name: "without hurtle it decays", inputs: []system.InputState{right, right, right, right, right}, wantVX: 19},
		{name: "letting go ends it", hurtling: true, inputs: []system.InputState{right, idle}, wantVX: 19},
		{name: "steering back ends it", hurtling: true, inputs: []system.InputState{left}, wantVX: 19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlayer(collision.NewField(), entity.Vec2{X: 0, Y: 50}, nil)
			p.body.Velocity.X = 20
			p.body.Jump.Hurtling = tt.hurtling

			for _, in := range tt.inputs {
				p.step(in, 1)
			}
			assert.InDelta(t, tt.wantVX, p.Velocity().X, 1e-9)
			assert.Equal(t, tt.wantHurt, p.body.Jump.Hurtling)
		})
	}
}

func TestPlayer_Ding(t *testing.T) {
	newDingField := func() *collision.Field {
		f := floorField()
		f.AddBox(entity.Vec2{X: 6.5, Y: 7}, entity.Vec2{X: 8, Y: 8}, entity.LayerNoGrapple, entity.TagNone)
		return f
	}

	t.Run("stops a pausing hook", func(t *testing.T) {
		p := newTestPlayer(newDingField(), entity.Vec2{X: 0, Y: 0.4}, nil)
		p.step(pressHook, 1)
		p.step(holdHook, 13)

		assert.Equal(t, 1, p.rec.count(entity.SoundDing))
		assert.Equal(t, state.Normal, p.State())
		assert.Greater(t, p.Hook().LongestDistance, 9.5)
		assert.Less(t, p.Hook().LongestDistance, 10.0)
	})

	t.Run("stops an extending hook when enabled", func(t *testing.T) {
		p := newTestPlayer(newDingField(), entity.Vec2{X: 0, Y: 0.4}, func(cfg *config.PhysicsConfig) {
			cfg.Grappling.DingDuringExtend = true
		})
		p.step(pressHook, 1)
		p.step(holdHook, 13)

		assert.Equal(t, 1, p.rec.count(entity.SoundDing))
		assert.Less(t, p.Hook().LongestDistance, 9.5)
	})
}

func TestPlayer_Bonk(t *testing.T) {
	p := newTestPlayer(floorField(), entity.Vec2{X: 0, Y: 0.4}, nil)
	p.step(idle, 2)
	p.body.Velocity = entity.Vec2{X: 5, Y: 5}

	p.machine.Set(state.Bonk)
	assert.Equal(t, entity.Vec2{}, p.Velocity())
	assert.Equal(t, 1, p.rec.count(entity.SoundBonk))
	assert.True(t, p.Hook().HideArm)

	p.step(system.InputState{Move: entity.Vec2{X: 1}}, 8)
	assert.Equal(t, state.Bonk, p.State())
	assert.Equal(t, AnimBonk, p.Animation())
	assert.Equal(t, 0.0, p.Velocity().X, "no control while stunned")

	p.step(idle, 3)
	assert.Equal(t, state.Normal, p.State())
}

func TestPlayer_Death(t *testing.T) {
	t.Run("finishes once", func(t *testing.T) {
		p := newTestPlayer(floorField(), entity.Vec2{X: 0, Y: 0.4}, nil)
		p.step(idle, 2)

		p.Die()
		require.Equal(t, state.Death, p.State())
		assert.False(t, p.body.ColliderEnabled)
		assert.Equal(t, 1, p.rec.count(entity.SoundDeath))

		p.Die()
		assert.Equal(t, 1, p.rec.count(entity.SoundDeath))

		var signals []entity.Signal
		for i := 0; i < 180; i++ {
			p.step(pressJump, 1)
			signals = append(signals, p.DrainSignals()...)
		}
		assert.Equal(t, []entity.Signal{entity.SignalDeathFinished}, signals)
		assert.Equal(t, state.Death, p.State())
		assert.Equal(t, AnimDeath, p.Animation())
	})

	t.Run("timer without skip", func(t *testing.T) {
		p := newTestPlayer(floorField(), entity.Vec2{X: 0, Y: 0.4}, nil)
		p.Die()

		p.step(idle, 50)
		assert.Empty(t, p.DrainSignals())
		p.step(idle, 15)
		assert.Equal(t, []entity.Signal{entity.SignalDeathFinished}, p.DrainSignals())
	})

	t.Run("skip press shortens", func(t *testing.T) {
		p := newTestPlayer(floorField(), entity.Vec2{X: 0, Y: 0.4}, nil)
		p.Die()

		p.step(pressJump, 1)
		p.step(idle, 10)
		assert.Empty(t, p.DrainSignals())
		p.step(idle, 10)
		assert.Equal(t, []entity.Signal{entity.SignalDeathFinished}, p.DrainSignals())
	})

	t.Run("respawn restores", func(t *testing.T) {
		spawn := entity.Vec2{X: 0, Y: 0.4}
		p := newTestPlayer(floorField(), spawn, nil)
		p.step(system.InputState{Move: entity.Vec2{X: -1}}, 20)
		p.Die()
		p.step(idle, 70)

		p.Respawn()
		assert.Equal(t, state.Normal, p.State())
		assert.Equal(t, spawn, p.Position())
		assert.Equal(t, entity.Vec2{}, p.Velocity())
		assert.True(t, p.body.ColliderEnabled)
		assert.Equal(t, entity.Timers{}, p.body.Timers)
		assert.Equal(t, 1, p.physics.FaceDirection)

		p.step(idle, 2)
		assert.True(t, p.Collisions().Below)
	})
}

func TestPlayer_Goal(t *testing.T) {
	p := newTestPlayer(floorField(), entity.Vec2{X: 0, Y: 0.4}, nil)
	p.step(system.InputState{Move: entity.Vec2{X: 1}}, 5)

	p.Win()
	p.Win()
	assert.Equal(t, state.GoalReached, p.State())
	assert.Equal(t, entity.Vec2{}, p.Velocity())
	assert.False(t, p.Hook().Visible)

	p.Die()
	p.Bounce(entity.Vec2{Y: 22}, true, 4)
	assert.Equal(t, state.GoalReached, p.State())

	p.step(idle, 3)
	assert.Equal(t, AnimVictory, p.Animation())
	assert.Equal(t, []entity.Signal{entity.SignalNextRoom}, p.DrainSignals())
	assert.Nil(t, p.DrainSignals())
}

func TestPlayer_WinIgnoredWhileDead(t *testing.T) {
	p := newTestPlayer(floorField(), entity.Vec2{X: 0, Y: 0.4}, nil)
	p.Die()
	p.Win()
	assert.Equal(t, state.Death, p.State())
	assert.Nil(t, p.DrainSignals())
}

func TestPlayer_Bounce(t *testing.T) {
	t.Run("vertical keeps x", func(t *testing.T) {
		p := newTestPlayer(floorField(), entity.Vec2{X: 0, Y: 0.4}, nil)
		p.body.Velocity = entity.Vec2{X: 3}
		p.body.Jump.AirJumpCount = 0
		p.body.Jump.Jumping = true

		p.Bounce(entity.Vec2{Y: 22}, true, 4)
		assert.Equal(t, entity.Vec2{X: 3, Y: 22}, p.Velocity())
		assert.Equal(t, 1, p.body.Jump.AirJumpCount)
		assert.False(t, p.body.Jump.Jumping)
	})

	t.Run("angled replaces velocity", func(t *testing.T) {
		p := newTestPlayer(floorField(), entity.Vec2{X: 0, Y: 0.4}, nil)
		p.body.Velocity = entity.Vec2{X: 3, Y: -2}

		p.Bounce(entity.Vec2{X: -10, Y: 10}, false, 4)
		assert.Equal(t, entity.Vec2{X: -10, Y: 10}, p.Velocity())
	})

	t.Run("reverses a swing", func(t *testing.T) {
		p := newTestPlayer(collision.NewField(), entity.Vec2{X: 0, Y: 5}, nil)
		p.body.Hook.Anchor = entity.Vec2{X: 3, Y: 8}
		p.body.Hook.Length = p.body.Hook.Anchor.Sub(p.Position()).Len()
		p.body.Hook.Direction = 1
		p.machine.Set(state.Swing)
		require.Equal(t, state.Swing, p.State())
		require.Equal(t, 18.0, p.swing.speed)

		p.Bounce(entity.Vec2{Y: 22}, true, 4)
		assert.Equal(t, -22.0, p.swing.speed)

		p.Bounce(entity.Vec2{Y: 22}, true, 4)
		assert.Equal(t, -22.0, p.swing.speed, "same spring twice in a row")

		p.body.Clock += 0.5
		p.Bounce(entity.Vec2{Y: 22}, true, 4)
		assert.Equal(t, 26.0, p.swing.speed)

		p.body.Clock += 0.5
		p.Bounce(entity.Vec2{Y: 22}, true, 4)
		assert.Equal(t, -30.0, p.swing.speed, "capped at max swing speed")
	})
}

func TestPlayer_StopSwinging(t *testing.T) {
	p := newTestPlayer(collision.NewField(), entity.Vec2{X: 0, Y: 5}, nil)
	p.StopSwinging()
	assert.Equal(t, state.Normal, p.State())

	p.body.Hook.Anchor = entity.Vec2{X: 3, Y: 8}
	p.body.Hook.Length = 4
	p.body.Hook.Direction = 1
	p.machine.Set(state.Swing)

	p.StopSwinging()
	assert.Equal(t, state.Normal, p.State())
	assert.True(t, p.Hook().RetractingAfterSwing)
}

func TestPlayer_Retune(t *testing.T) {
	p := newTestPlayer(floorField(), entity.Vec2{X: 0, Y: 0.4}, nil)
	p.step(idle, 2)

	cfg := createTestPhysicsConfig()
	cfg.Running.MoveSpeed = 6
	p.Retune(cfg)

	p.step(system.InputState{Move: entity.Vec2{X: 1}}, 30)
	assert.InDelta(t, 6.0, p.Velocity().X, 1e-9)
}

func TestPlayer_Deterministic(t *testing.T) {
	run := func() entity.Vec2 {
		p := newTestPlayer(floorField(), entity.Vec2{X: 0, Y: 0.4}, nil)
		inputs := []system.InputState{
			{Move: entity.Vec2{X: 1}},
			{Move: entity.Vec2{X: 1}, Jump: true, JumpPressed: true},
			{Move: entity.Vec2{X: 1}, Jump: true},
			{Move: entity.Vec2{X: -1}, JumpReleased: true},
			pressHook, holdHook, releaseHook, idle,
		}
		for i := 0; i < 120; i++ {
			p.step(inputs[i%len(inputs)], 1)
		}
		return p.Position()
	}

	assert.Equal(t, run(), run())
}

func BenchmarkPlayer_Update(b *testing.B) {
	f := floorField()
	f.AddBox(entity.Vec2{X: -50, Y: 6}, entity.Vec2{X: 50, Y: 7}, entity.LayerSolid, entity.TagNone)
	p := newTestPlayer(f, entity.Vec2{X: 0, Y: 0.4}, nil)
	script := []system.InputState{
		{Move: entity.Vec2{X: 1}},
		pressJump,
		pressHook,
		holdHook,
		releaseHook,
		{Move: entity.Vec2{X: -1}},
	}

	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		p.Update(script[(i/20)%len(script)], frameDt)
	}
}
