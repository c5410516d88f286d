package jumbo

import (
	"io"
	"log"

	"jumbofurnace.ai/internal/sim/world/logic/cube"
)

// ProbeRadius is how far the entity probe reaches from a formation center:
// the 3x3x3 cube grown by one cell on every side.
const ProbeRadius = 2

type Outcome int

const (
	OutcomeNoGeometry Outcome = iota
	OutcomeDenied
	OutcomeFormed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFormed:
		return "FORMED"
	case OutcomeDenied:
		return "DENIED"
	default:
		return "NO_GEOMETRY"
	}
}

// Result carries the changes of a formation attempt and why it ended the way it did.
// Changes is nil unless Outcome is OutcomeFormed.
type Result struct {
	Changes []ProposedChange
	Center  cube.Pos
	Outcome Outcome
}

type Config struct {
	Tags         TagOracle
	Footprint    Footprint
	Authority    Authority
	BlockingKind string
	Logger       *log.Logger
}

type Validator struct {
	tags         TagOracle
	footprint    Footprint
	authority    Authority
	blockingKind string
	logger       *log.Logger
}

func NewValidator(cfg Config) *Validator {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Validator{
		tags:         cfg.Tags,
		footprint:    cfg.Footprint,
		authority:    cfg.Authority,
		blockingKind: cfg.BlockingKind,
		logger:       logger,
	}
}

// FindFormation returns the changes for the first center around ctx.Pos that
// has valid geometry and is permitted, or nil.
func (v *Validator) FindFormation(w World, ctx PlacementContext) []ProposedChange {
	return v.FindFormationResult(w, ctx).Changes
}

// FindFormationResult is FindFormation with the reason for an empty result.
// A denial is only reported when no later center formed.
func (v *Validator) FindFormationResult(w World, ctx PlacementContext) Result {
	res := Result{Outcome: OutcomeNoGeometry}
	for center := range cube.Around(ctx.Pos) {
		if !v.CanFormAt(w, center, ctx.Pos) {
			continue
		}
		changes, denied := v.evaluate(w, center, ctx.Against, ctx.Actor)
		if len(changes) > 0 {
			return Result{Changes: changes, Center: center, Outcome: OutcomeFormed}
		}
		if denied {
			res.Outcome = OutcomeDenied
			res.Center = center
		}
	}
	return res
}

// CanFormAt reports whether every cell of the cube around center, other than
// placePos, already holds eligible material.
func (v *Validator) CanFormAt(w World, center, placePos cube.Pos) bool {
	for pos := range cube.Around(center) {
		if pos == placePos {
			continue
		}
		if !v.tags.Eligible(w.StateAt(pos)) {
			return false
		}
	}
	return true
}

// CanPlaceAt reports whether a furnace could be put down whole around center:
// no blocking entity in the probe volume and every cell replaceable.
func (v *Validator) CanPlaceAt(w World, center cube.Pos, ctx PlacementContext) bool {
	if len(w.EntitiesWithin(cube.BoxAround(center, ProbeRadius), v.blockingKind)) > 0 {
		return false
	}
	for pos := range cube.Around(center) {
		if !w.IsReplaceable(pos, ctx) {
			return false
		}
	}
	return true
}

// EvaluateFormation builds the footprint around center and asks the authority
// for permission. It returns nil when the footprint is empty or denied.
func (v *Validator) EvaluateFormation(w World, center cube.Pos, against State, actor Actor) []ProposedChange {
	changes, _ := v.evaluate(w, center, against, actor)
	return changes
}

func (v *Validator) evaluate(w World, center cube.Pos, against State, actor Actor) ([]ProposedChange, bool) {
	changes := v.footprint.Changes(w, center)
	if len(changes) == 0 {
		return nil, false
	}
	if len(changes) != len(cube.Offsets) {
		v.logger.Printf("footprint at %v has %d cells, want %d", center, len(changes), len(cube.Offsets))
		return nil, false
	}
	snaps := make([]Snapshot, 0, len(changes))
	for _, c := range changes {
		snaps = append(snaps, Snapshot{Pos: c.Pos, Current: w.StateAt(c.Pos), Target: c.State})
	}
	if v.authority.SubmitMultiPlace(MultiPlaceRequest{Snapshots: snaps, Against: against, Actor: actor}) {
		v.logger.Printf("formation at %v denied for %s", center, actor.Name)
		return nil, true
	}
	return changes, false
}
