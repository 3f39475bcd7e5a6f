package collision

import (
	"math"

	"github.com/younwookim/grapple/internal/domain/entity"
)

// sweepAABB intersects the segment p + t*d (t in [0, 1]) with the box
// [min, max] using the slab method. It returns the entry time and the
// face normal of the entry. A segment starting inside reports t = 0 and a
// zero normal. Grazing a face without entering is not a hit.
func sweepAABB(p, d, min, max entity.Vec2) (float64, entity.Vec2, bool) {
	tmin, tmax := 0.0, 1.0
	var normal entity.Vec2

	type slab struct {
		p, d, lo, hi float64
		n            entity.Vec2
	}
	slabs := [2]slab{
		{p.X, d.X, min.X, max.X, entity.Vec2{X: -entity.Sign(d.X)}},
		{p.Y, d.Y, min.Y, max.Y, entity.Vec2{Y: -entity.Sign(d.Y)}},
	}

	for _, s := range slabs {
		if s.d == 0 {
			if s.p <= s.lo || s.p >= s.hi {
				return 0, entity.Vec2{}, false
			}
			continue
		}
		inv := 1 / s.d
		t1 := (s.lo - s.p) * inv
		t2 := (s.hi - s.p) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
			normal = s.n
		}
		tmax = math.Min(tmax, t2)
	}

	if tmax <= tmin {
		return 0, entity.Vec2{}, false
	}
	return tmin, normal, true
}
