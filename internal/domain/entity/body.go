package entity

import "math"

// BoundingBox is the player's axis-aligned box plus the ray layout the
// resolver casts from. Origins sit on the box shrunk by the skin width.
type BoundingBox struct {
	Center Vec2
	Size   Vec2
	Skin   float64

	BottomLeft, BottomRight Vec2
	TopLeft, TopRight       Vec2

	HorizontalRayCount   int
	VerticalRayCount     int
	HorizontalRaySpacing float64
	VerticalRaySpacing   float64
}

// NewBoundingBox lays out rays over a box centered at center.
// raySpacing is the preferred distance between neighbouring rays.
func NewBoundingBox(center, size Vec2, skin, raySpacing float64) BoundingBox {
	minX := center.X - size.X/2 + skin
	maxX := center.X + size.X/2 - skin
	minY := center.Y - size.Y/2 + skin
	maxY := center.Y + size.Y/2 - skin

	width := maxX - minX
	height := maxY - minY

	hCount := rayCount(height, raySpacing)
	vCount := rayCount(width, raySpacing)

	return BoundingBox{
		Center:               center,
		Size:                 size,
		Skin:                 skin,
		BottomLeft:           Vec2{minX, minY},
		BottomRight:          Vec2{maxX, minY},
		TopLeft:              Vec2{minX, maxY},
		TopRight:             Vec2{maxX, maxY},
		HorizontalRayCount:   hCount,
		VerticalRayCount:     vCount,
		HorizontalRaySpacing: height / float64(hCount-1),
		VerticalRaySpacing:   width / float64(vCount-1),
	}
}

func rayCount(extent, spacing float64) int {
	if spacing <= 0 {
		return 2
	}
	n := int(math.Round(extent / spacing))
	if n < 2 {
		n = 2
	}
	return n
}

// Min returns the lower-left corner of the full (unshrunk) box.
func (b BoundingBox) Min() Vec2 {
	return b.Center.Sub(b.Size.Scale(0.5))
}

// Max returns the upper-right corner of the full (unshrunk) box.
func (b BoundingBox) Max() Vec2 {
	return b.Center.Add(b.Size.Scale(0.5))
}
