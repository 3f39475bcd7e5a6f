package config

// PhysicsConfig is the root config for physics.json
type PhysicsConfig struct {
	Display     DisplayConfig     `json:"display"`
	Running     RunningConfig     `json:"running"`
	Jumping     JumpingConfig     `json:"jumping"`
	AirJumping  AirJumpingConfig  `json:"airJumping"`
	WallJumping WallJumpingConfig `json:"wallJumping"`
	Grappling   GrapplingConfig   `json:"grappling"`
	Swinging    SwingingConfig    `json:"swinging"`
	Zipping     ZippingConfig     `json:"zipping"`
	Falling     FallingConfig     `json:"falling"`
	Death       DeathConfig       `json:"death"`
	Collision   CollisionConfig   `json:"collision"`
	Spring      SpringConfig      `json:"spring"`
	Audio       AudioConfig       `json:"audio"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
	TileSize     int `json:"tileSize"` // pixels per world unit
}

type RunningConfig struct {
	MoveSpeed             float64 `json:"moveSpeed"`
	AccelGrounded         float64 `json:"accelGrounded"` // seconds to reach moveSpeed
	DecelGrounded         float64 `json:"decelGrounded"`
	AccelAirborne         float64 `json:"accelAirborne"`
	DecelAirborne         float64 `json:"decelAirborne"`
	MomentumDecelGrounded float64 `json:"momentumDecelGrounded"`
	MomentumDecelAirborne float64 `json:"momentumDecelAirborne"`
}

type JumpingConfig struct {
	MaxJumpHeight        float64 `json:"maxJumpHeight"`
	MinJumpHeight        float64 `json:"minJumpHeight"`
	TimeToJumpApex       float64 `json:"timeToJumpApex"`
	JumpGraceTime        float64 `json:"jumpGraceTime"`
	JumpBufferTime       float64 `json:"jumpBufferTime"`
	HalfGravityThreshold float64 `json:"halfGravityThreshold"`
}

type AirJumpingConfig struct {
	MaxAirJumps       int     `json:"maxAirJumps"`
	MaxAirJumpHeight  float64 `json:"maxAirJumpHeight"`
	MinAirJumpHeight  float64 `json:"minAirJumpHeight"`
	AirJumpRefundTime float64 `json:"airJumpRefundTime"`
}

type WallJumpingConfig struct {
	Toward             XY      `json:"toward"`
	Neutral            XY      `json:"neutral"`
	Away               XY      `json:"away"`
	HurtleOnNeutral    bool    `json:"hurtleOnNeutral"`
	WallStickTime      float64 `json:"wallStickTime"`
	WallSlideMaxSpeed  float64 `json:"wallSlideMaxSpeed"`
	WallJumpCommitTime float64 `json:"wallJumpCommitTime"`
}

type GrapplingConfig struct {
	MaxLength     float64 `json:"maxLength"`
	Angle         float64 `json:"angle"` // degrees above horizontal
	BufferTime    float64 `json:"bufferTime"`
	CastRadius    float64 `json:"castRadius"`
	ExtendTime    float64 `json:"extendTime"`
	MissPauseTime float64 `json:"missPauseTime"`
	RetractTime   float64 `json:"retractTime"`
	// DingDuringExtend lets no-grapple surfaces stop an extending hook too.
	DingDuringExtend bool `json:"dingDuringExtend"`
}

type SwingingConfig struct {
	SwingSpeed            float64 `json:"swingSpeed"`
	MaxSwingSpeed         float64 `json:"maxSwingSpeed"`
	YMomentumModifier     float64 `json:"yMomentumModifier"`
	BonkVerticalThreshold float64 `json:"bonkVerticalThreshold"`
	StunTime              float64 `json:"stunTime"`
}

type ZippingConfig struct {
	ZipSpeed      float64 `json:"zipSpeed"`
	FinalZipSpeed float64 `json:"finalZipSpeed"`
	FinalDirRatio XY      `json:"finalDirRatio"`
}

type FallingConfig struct {
	TerminalVelocity float64 `json:"terminalVelocity"`
}

type DeathConfig struct {
	DeathTime     float64 `json:"deathTime"`
	DeathSkipTime float64 `json:"deathSkipTime"`
}

type CollisionConfig struct {
	SkinWidth              float64 `json:"skinWidth"`
	RaySpacing             float64 `json:"raySpacing"`
	UpwardCornerCorrection float64 `json:"upwardCornerCorrection"`
	SideCornerCorrection   float64 `json:"sideCornerCorrection"`
	NearbyWallDistance     float64 `json:"nearbyWallDistance"`
}

type SpringConfig struct {
	Impulse    float64 `json:"impulse"`
	SwingBoost float64 `json:"swingBoost"`
}

type AudioConfig struct {
	Enabled    bool    `json:"enabled"`
	SampleRate int     `json:"sampleRate"`
	Volume     float64 `json:"volume"` // log2 gain, 0 = unchanged
}

type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
