package footprint

import (
	"jumbofurnace.ai/internal/sim/world/feature/jumbo"
	"jumbofurnace.ai/internal/sim/world/logic/cube"
)

// Size is the number of cells in one jumbo furnace.
const Size = len(cube.Offsets)

// Furnace maps a formation center to the core and exterior states of a jumbo furnace.
// Exterior states carry their 0..2 position inside the cube as x, y and z.
type Furnace struct {
	Core     string
	Exterior string
}

func (f Furnace) Changes(_ jumbo.World, center cube.Pos) []jumbo.ProposedChange {
	if f.Core == "" || f.Exterior == "" {
		return nil
	}
	out := make([]jumbo.ProposedChange, 0, Size)
	for pos := range cube.Around(center) {
		out = append(out, jumbo.ProposedChange{Pos: pos, State: f.StateAt(center, pos)})
	}
	return out
}

// StateAt returns the state the cell at pos takes in a furnace centered on center.
func (f Furnace) StateAt(center, pos cube.Pos) jumbo.State {
	rel := Relative(center, pos)
	if rel == (cube.Pos{1, 1, 1}) {
		return jumbo.State{Block: f.Core}
	}
	return jumbo.State{Block: f.Exterior, Props: map[string]int{"x": rel[0], "y": rel[1], "z": rel[2]}}
}

// Relative returns pos relative to the furnace's lowest corner.
func Relative(center, pos cube.Pos) cube.Pos {
	return pos.Sub(center).Offset(1, 1, 1)
}

// Center recovers the formation center from an exterior state at pos.
func Center(pos cube.Pos, s jumbo.State) (cube.Pos, bool) {
	x, okx := s.Props["x"]
	y, oky := s.Props["y"]
	z, okz := s.Props["z"]
	if !okx || !oky || !okz {
		return pos, len(s.Props) == 0
	}
	return pos.Offset(1-x, 1-y, 1-z), true
}
