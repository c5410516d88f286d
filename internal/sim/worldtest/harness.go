package worldtest

import (
	"testing"

	"github.com/google/uuid"

	"jumbofurnace.ai/internal/sim/catalogs"
	world "jumbofurnace.ai/internal/sim/world"
	"jumbofurnace.ai/internal/sim/world/event"
	"jumbofurnace.ai/internal/sim/world/feature/jumbo"
	"jumbofurnace.ai/internal/sim/world/feature/jumbo/footprint"
	"jumbofurnace.ai/internal/sim/world/logic/cube"
)

const (
	EligibleTag = "jumbofurnaceable"
	Core        = "JUMBO_FURNACE_CORE"
	Exterior    = "JUMBO_FURNACE"
)

// Harness drives formation attempts against an in-memory world through exported APIs only.
// Every multi-place event posted to Bus is recorded in Events.
type Harness struct {
	T         *testing.T
	Cats      *catalogs.Catalogs
	W         *world.World
	Bus       *event.Bus
	Validator *jumbo.Validator
	Actor     jumbo.Actor

	Events []*event.MultiPlace
}

// Catalogs returns a small block set: two eligible stones, dirt, air and grass,
// plus the furnace blocks themselves.
func Catalogs(t *testing.T) *catalogs.Catalogs {
	t.Helper()
	cats, err := catalogs.FromDefs([]catalogs.BlockDef{
		{ID: "AIR", Replaceable: true},
		{ID: "TALL_GRASS", Replaceable: true},
		{ID: "STONE", Solid: true, Breakable: true, Tags: []string{EligibleTag}},
		{ID: "COBBLESTONE", Solid: true, Breakable: true, Tags: []string{EligibleTag}},
		{ID: "DIRT", Solid: true, Breakable: true},
		{ID: "FURNACE", Solid: true, Breakable: true, Tags: []string{EligibleTag}},
		{ID: Core, Solid: true, Breakable: true},
		{ID: Exterior, Solid: true, Breakable: true},
	}, []catalogs.RecipeDef{
		{
			RecipeID:  "iron_ingot",
			Station:   "JUMBO_FURNACE",
			Inputs:    []catalogs.ItemCount{{Item: "IRON_ORE", Count: 1}},
			Outputs:   []catalogs.ItemCount{{Item: "IRON_INGOT", Count: 1}},
			TimeTicks: 200,
		},
	})
	if err != nil {
		t.Fatalf("catalogs: %v", err)
	}
	return cats
}

func NewHarness(t *testing.T, handlers ...event.Handler) *Harness {
	t.Helper()
	cats := Catalogs(t)
	w, err := world.New(world.WorldConfig{ID: "test"}, cats)
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	h := &Harness{
		T:     t,
		Cats:  cats,
		W:     w,
		Actor: jumbo.Actor{ID: uuid.New(), Name: "builder"},
	}
	h.Bus = event.NewBus(event.HandlerFunc(func(e *event.MultiPlace) { h.Events = append(h.Events, e) }))
	for _, hd := range handlers {
		h.Bus.Register(hd)
	}
	h.Validator = jumbo.NewValidator(jumbo.Config{
		Tags:         jumbo.BlockTag{Source: cats.Blocks, Tag: EligibleTag},
		Footprint:    footprint.Furnace{Core: Core, Exterior: Exterior},
		Authority:    h.Bus,
		BlockingKind: world.EntityLiving,
	})
	return h
}

// Fill sets every cell from min to max inclusive to block.
func (h *Harness) Fill(min, max cube.Pos, block string) {
	h.T.Helper()
	for x := min[0]; x <= max[0]; x++ {
		for y := min[1]; y <= max[1]; y++ {
			for z := min[2]; z <= max[2]; z++ {
				if err := h.W.SetBlock(cube.Pos{x, y, z}, block); err != nil {
					h.T.Fatalf("SetBlock: %v", err)
				}
			}
		}
	}
}

// Set places a single block.
func (h *Harness) Set(pos cube.Pos, block string) {
	h.T.Helper()
	if err := h.W.SetBlock(pos, block); err != nil {
		h.T.Fatalf("SetBlock(%v,%s): %v", pos, block, err)
	}
}

// Placement builds a context for placing a furnace block at pos against the cell below.
func (h *Harness) Placement(pos cube.Pos) jumbo.PlacementContext {
	return jumbo.PlacementContext{
		Pos:     pos,
		Placing: jumbo.State{Block: "FURNACE"},
		Against: h.W.StateAt(pos.Offset(0, -1, 0)),
		Actor:   h.Actor,
	}
}
