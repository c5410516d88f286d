package cube

import "iter"

// Offsets lists the 27 offsets of a 3x3x3 cube: the center first, then the
// rest with x varying fastest and z slowest.
var Offsets = func() [27]Pos {
	var out [27]Pos
	i := 1
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				out[i] = Pos{dx, dy, dz}
				i++
			}
		}
	}
	return out
}()

// Around yields the 27 cells from center-(1,1,1) to center+(1,1,1) inclusive.
// Each call returns an independent sequence.
func Around(center Pos) iter.Seq[Pos] {
	return func(yield func(Pos) bool) {
		for _, off := range Offsets {
			if !yield(center.Add(off)) {
				return
			}
		}
	}
}
