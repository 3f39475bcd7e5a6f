package entity

// Timers holds the player's countdowns in seconds. Every timer counts down
// by dt and is considered active while > 0.
type Timers struct {
	JumpBuffer     float64
	JumpGrace      float64
	AirJumpRefund  float64
	WallUnstick    float64
	WallJumpCommit float64

	GrappleBuffer   float64
	GrappleCooldown float64
	Extend          float64
	Pause           float64
	Retract         float64
}

// JumpState tracks the current jump arc.
type JumpState struct {
	Jumping      bool
	AirJumping   bool
	AirJumpCount int
	// Hurtling keeps launch momentum until the player steers against it.
	Hurtling bool
}

// WallState tracks wall contact.
type WallState struct {
	OnWall     bool
	OnWallPrev bool
	DirX       int
}

// HookState is the grapple hook and rope.
type HookState struct {
	Position Vec2
	Anchor   Vec2
	Length   float64

	LongestDistance float64
	Facing          float64
	// Direction is the horizontal side the anchor was cast toward.
	Direction int

	Visible              bool
	HideArm              bool
	RetractingAfterSwing bool
}

// Player is the mutable runtime state of the player body.
type Player struct {
	Position     Vec2
	Velocity     Vec2
	PrevVelocity Vec2
	Size         Vec2

	Spawn Vec2
	FlipX bool

	ColliderEnabled bool
	Collisions      CollisionInfo

	Input     Vec2
	InputPrev Vec2

	Timers Timers
	Jump   JumpState
	Wall   WallState
	Hook   HookState

	// Clock is the simulated time since the player was created.
	Clock           float64
	LastSwingBounce float64
}

// NewPlayer creates a player resting at spawn.
func NewPlayer(spawn, size Vec2, flipX bool) *Player {
	p := &Player{
		Size:  size,
		Spawn: spawn,
		FlipX: flipX,
	}
	p.Reset()
	return p
}

// Reset returns the body to its spawn defaults.
func (p *Player) Reset() {
	p.Position = p.Spawn
	p.Velocity = Vec2{}
	p.PrevVelocity = Vec2{}
	p.ColliderEnabled = true
	p.Collisions.Reset()
	p.Input = Vec2{}
	p.InputPrev = Vec2{}
	p.Timers = Timers{}
	p.Jump = JumpState{}
	p.Wall = WallState{}
	p.Hook = HookState{}
	p.LastSwingBounce = 0
}

// Bounds returns the player's box corners.
func (p *Player) Bounds() (min, max Vec2) {
	half := p.Size.Scale(0.5)
	return p.Position.Sub(half), p.Position.Add(half)
}
