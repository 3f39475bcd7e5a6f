package entity

// CollisionInfo holds the contact flags produced by one resolver move.
type CollisionInfo struct {
	Above, Below bool
	Left, Right  bool

	// Corrected is set when a corner correction fired during the move.
	Corrected bool
}

// Reset clears all flags.
func (c *CollisionInfo) Reset() {
	*c = CollisionInfo{}
}

// Any reports whether any contact flag is set.
func (c CollisionInfo) Any() bool {
	return c.Above || c.Below || c.Left || c.Right
}

// Layer identifies the kind of geometry a collider belongs to.
type Layer uint8

const (
	LayerSolid Layer = iota
	LayerJumpThru
	LayerDeath
	// LayerNoGrapple is solid ground the hook bounces off ("ding").
	LayerNoGrapple
	// LayerHookable holds grapple targets that do not block the body.
	LayerHookable
)

// String returns the string representation of the layer
func (l Layer) String() string {
	switch l {
	case LayerSolid:
		return "Solid"
	case LayerJumpThru:
		return "JumpThru"
	case LayerDeath:
		return "Death"
	case LayerNoGrapple:
		return "NoGrapple"
	case LayerHookable:
		return "Hookable"
	default:
		return "Unknown"
	}
}

// Mask is a set of layers.
type Mask uint32

// MaskOf builds a mask from layers.
func MaskOf(layers ...Layer) Mask {
	var m Mask
	for _, l := range layers {
		m |= 1 << l
	}
	return m
}

// Has reports whether the mask includes the layer.
func (m Mask) Has(l Layer) bool {
	return m&(1<<l) != 0
}

// Masks used by the player body and the hook.
var (
	MaskCollision = MaskOf(LayerSolid, LayerNoGrapple)
	MaskDeath     = MaskOf(LayerDeath)
	MaskGrapple   = MaskOf(LayerSolid, LayerHookable)
	MaskDing      = MaskOf(LayerNoGrapple)
)

// Tag marks special grapple targets.
type Tag uint8

const (
	TagNone Tag = iota
	TagLauncher
	TagSpinner
)

// Spin describes a spinner's forced swing.
type Spin struct {
	Clockwise bool
	Speed     float64
}

// Collider is a static piece of level geometry.
type Collider struct {
	Min, Max Vec2
	Layer    Layer
	Tag      Tag
	Spin     *Spin
}

// Center returns the middle of the collider bounds.
func (c *Collider) Center() Vec2 {
	return Vec2{(c.Min.X + c.Max.X) / 2, (c.Min.Y + c.Max.Y) / 2}
}

// Top returns the collider's upper edge.
func (c *Collider) Top() float64 {
	return c.Max.Y
}

// Hit is the result of a geometry cast.
type Hit struct {
	Distance float64
	Point    Vec2
	Normal   Vec2
	Layer    Layer
	Tag      Tag
	Collider *Collider
}
