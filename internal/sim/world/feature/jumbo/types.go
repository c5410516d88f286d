package jumbo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"jumbofurnace.ai/internal/sim/world/logic/cube"
)

// CellState describes what occupies one grid cell.
type CellState interface {
	BlockID() string
}

// State is the concrete cell state used by the host world and by footprints.
// Props is treated as immutable once the state is built.
type State struct {
	Block string
	Props map[string]int
}

func (s State) BlockID() string { return s.Block }

func (s State) Equal(o State) bool {
	if s.Block != o.Block || len(s.Props) != len(o.Props) {
		return false
	}
	for k, v := range s.Props {
		if ov, ok := o.Props[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

func (s State) String() string {
	if len(s.Props) == 0 {
		return s.Block
	}
	keys := make([]string, 0, len(s.Props))
	for k := range s.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, s.Props[k]))
	}
	return s.Block + "[" + strings.Join(parts, ",") + "]"
}

type Actor struct {
	ID   uuid.UUID
	Name string
}

// PlacementContext is one placement attempt: the cell about to receive Placing,
// the state of the cell it was placed against, and who placed it.
type PlacementContext struct {
	Pos     cube.Pos
	Placing State
	Against State
	Actor   Actor
}

type ProposedChange struct {
	Pos   cube.Pos
	State State
}

// Snapshot captures a cell as it is now together with the state it would take.
type Snapshot struct {
	Pos     cube.Pos
	Current State
	Target  State
}

type MultiPlaceRequest struct {
	Snapshots []Snapshot
	Against   State
	Actor     Actor
}

// World is the read-only query surface of the host world.
type World interface {
	StateAt(pos cube.Pos) State
	IsReplaceable(pos cube.Pos, ctx PlacementContext) bool
	EntitiesWithin(box cube.Box, kind string) []uuid.UUID
}

type TagOracle interface {
	Eligible(s CellState) bool
}

// Footprint maps a formation center to the full set of target states.
type Footprint interface {
	Changes(w World, center cube.Pos) []ProposedChange
}

// Authority decides whether a multi-cell placement may go ahead.
type Authority interface {
	SubmitMultiPlace(req MultiPlaceRequest) (denied bool)
}

type TagSource interface {
	HasTag(blockID, tag string) bool
}

// BlockTag accepts states whose block carries Tag in Source.
type BlockTag struct {
	Source TagSource
	Tag    string
}

func (b BlockTag) Eligible(s CellState) bool {
	if s == nil || b.Source == nil {
		return false
	}
	return b.Source.HasTag(s.BlockID(), b.Tag)
}

type TagFunc func(s CellState) bool

func (f TagFunc) Eligible(s CellState) bool { return f(s) }

type AuthorityFunc func(req MultiPlaceRequest) bool

func (f AuthorityFunc) SubmitMultiPlace(req MultiPlaceRequest) bool { return f(req) }
