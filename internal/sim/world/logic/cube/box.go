package cube

import "github.com/go-gl/mathgl/mgl64"

// Box is an axis-aligned box in continuous world coordinates.
type Box struct {
	Min, Max mgl64.Vec3
}

// BoxAround covers every cell from center-r to center+r on each axis,
// both ends inclusive.
func BoxAround(center Pos, r int) Box {
	lo := center.Offset(-r, -r, -r)
	hi := center.Offset(r+1, r+1, r+1)
	return Box{
		Min: mgl64.Vec3{float64(lo[0]), float64(lo[1]), float64(lo[2])},
		Max: mgl64.Vec3{float64(hi[0]), float64(hi[1]), float64(hi[2])},
	}
}

// Intersects reports whether the interiors of both boxes overlap.
func (b Box) Intersects(o Box) bool {
	for i := 0; i < 3; i++ {
		if o.Max[i] <= b.Min[i] || o.Min[i] >= b.Max[i] {
			return false
		}
	}
	return true
}

// Contains reports whether the cell p lies fully inside b.
func (b Box) Contains(p Pos) bool {
	for i := 0; i < 3; i++ {
		v := float64(p[i])
		if v < b.Min[i] || v+1 > b.Max[i] {
			return false
		}
	}
	return true
}
