package jumbo

import (
	"testing"

	"github.com/google/uuid"

	"jumbofurnace.ai/internal/sim/world/logic/cube"
)

type fakeWorld struct {
	cells    map[cube.Pos]State
	entities []cube.Box
}

func (f *fakeWorld) StateAt(pos cube.Pos) State {
	if s, ok := f.cells[pos]; ok {
		return s
	}
	return State{Block: "AIR"}
}

func (f *fakeWorld) IsReplaceable(pos cube.Pos, _ PlacementContext) bool {
	return f.StateAt(pos).Block == "AIR"
}

func (f *fakeWorld) EntitiesWithin(box cube.Box, _ string) []uuid.UUID {
	var out []uuid.UUID
	for _, e := range f.entities {
		if box.Intersects(e) {
			out = append(out, uuid.New())
		}
	}
	return out
}

type cubeFootprint struct{ n int }

func (c cubeFootprint) Changes(_ World, center cube.Pos) []ProposedChange {
	var out []ProposedChange
	for p := range cube.Around(center) {
		if c.n > 0 && len(out) == c.n {
			break
		}
		out = append(out, ProposedChange{Pos: p, State: State{Block: "FORMED"}})
	}
	return out
}

func eligibleBlock(s CellState) bool { return s.BlockID() == "BRICK" }

func brickCube(center cube.Pos) *fakeWorld {
	w := &fakeWorld{cells: map[cube.Pos]State{}}
	for p := range cube.Around(center) {
		w.cells[p] = State{Block: "BRICK"}
	}
	return w
}

func newTestValidator(deny bool, calls *int) *Validator {
	return NewValidator(Config{
		Tags:      TagFunc(eligibleBlock),
		Footprint: cubeFootprint{},
		Authority: AuthorityFunc(func(req MultiPlaceRequest) bool {
			*calls++
			return deny
		}),
	})
}

func TestCanFormAt(t *testing.T) {
	calls := 0
	v := newTestValidator(false, &calls)
	w := brickCube(cube.Pos{})
	place := cube.Pos{1, 0, 0}
	w.cells[place] = State{Block: "AIR"}
	if !v.CanFormAt(w, cube.Pos{}, place) {
		t.Fatalf("expected formation with exempt placement cell")
	}
	if v.CanFormAt(w, cube.Pos{}, cube.Pos{0, 1, 0}) {
		t.Fatalf("air at a non-exempt cell must fail")
	}
	if calls != 0 {
		t.Fatalf("CanFormAt must not consult the authority")
	}
}

func TestEvaluateFormationSnapshots(t *testing.T) {
	var got MultiPlaceRequest
	v := NewValidator(Config{
		Tags:      TagFunc(eligibleBlock),
		Footprint: cubeFootprint{},
		Authority: AuthorityFunc(func(req MultiPlaceRequest) bool { got = req; return false }),
	})
	w := brickCube(cube.Pos{})
	actor := Actor{ID: uuid.New(), Name: "alex"}
	changes := v.EvaluateFormation(w, cube.Pos{}, State{Block: "BRICK"}, actor)
	if len(changes) != 27 {
		t.Fatalf("len=%d", len(changes))
	}
	if len(got.Snapshots) != 27 || got.Actor != actor || got.Against.Block != "BRICK" {
		t.Fatalf("unexpected request: %+v", got)
	}
	for i, s := range got.Snapshots {
		if s.Pos != changes[i].Pos || s.Current.Block != "BRICK" || s.Target.Block != "FORMED" {
			t.Fatalf("snapshot %d = %+v", i, s)
		}
	}
}

func TestEvaluateFormationRejectsPartialFootprint(t *testing.T) {
	calls := 0
	v := NewValidator(Config{
		Tags:      TagFunc(eligibleBlock),
		Footprint: cubeFootprint{n: 10},
		Authority: AuthorityFunc(func(MultiPlaceRequest) bool { calls++; return false }),
	})
	if got := v.EvaluateFormation(brickCube(cube.Pos{}), cube.Pos{}, State{}, Actor{}); got != nil {
		t.Fatalf("partial footprint must yield nil, got %d", len(got))
	}
	if calls != 0 {
		t.Fatalf("partial footprint must not be submitted")
	}
}

func TestFindFormationDenied(t *testing.T) {
	calls := 0
	v := newTestValidator(true, &calls)
	w := brickCube(cube.Pos{})
	delete(w.cells, cube.Pos{})
	ctx := PlacementContext{Pos: cube.Pos{}}
	if got := v.FindFormation(w, ctx); got != nil {
		t.Fatalf("denied formation returned %d changes", len(got))
	}
	if calls != 1 {
		t.Fatalf("authority calls=%d want 1", calls)
	}
	if res := v.FindFormationResult(w, ctx); res.Outcome != OutcomeDenied {
		t.Fatalf("outcome=%v", res.Outcome)
	}
}

func TestCanPlaceAtProbeVolume(t *testing.T) {
	calls := 0
	v := newTestValidator(false, &calls)
	w := &fakeWorld{cells: map[cube.Pos]State{}}
	ctx := PlacementContext{}
	if !v.CanPlaceAt(w, cube.Pos{}, ctx) {
		t.Fatalf("empty world must accept")
	}
	w.entities = []cube.Box{cube.BoxAround(cube.Pos{-2, 2, -2}, 0)}
	if v.CanPlaceAt(w, cube.Pos{}, ctx) {
		t.Fatalf("entity at probe corner must block")
	}
	w.entities = nil
	w.cells[cube.Pos{0, 1, 0}] = State{Block: "BRICK"}
	if v.CanPlaceAt(w, cube.Pos{}, ctx) {
		t.Fatalf("non-replaceable cell must block")
	}
}

func TestStateEqualAndString(t *testing.T) {
	a := State{Block: "SHELL", Props: map[string]int{"y": 2, "x": 0}}
	b := State{Block: "SHELL", Props: map[string]int{"x": 0, "y": 2}}
	if !a.Equal(b) || a.Equal(State{Block: "SHELL"}) {
		t.Fatalf("Equal mismatch")
	}
	if got := a.String(); got != "SHELL[x=0,y=2]" {
		t.Fatalf("String=%q", got)
	}
}

func TestBlockTagNilSafe(t *testing.T) {
	if (BlockTag{}).Eligible(State{Block: "BRICK"}) {
		t.Fatalf("nil source must not accept")
	}
}
