package footprint

import (
	"testing"

	"jumbofurnace.ai/internal/sim/world/feature/jumbo"
	"jumbofurnace.ai/internal/sim/world/logic/cube"
)

func TestFurnaceChanges(t *testing.T) {
	f := Furnace{Core: "CORE", Exterior: "SHELL"}
	center := cube.Pos{4, 10, -2}
	changes := f.Changes(nil, center)
	if len(changes) != Size {
		t.Fatalf("len=%d want %d", len(changes), Size)
	}
	cores := 0
	for _, c := range changes {
		if c.Pos == center {
			cores++
			if !c.State.Equal(jumbo.State{Block: "CORE"}) {
				t.Fatalf("center state=%v", c.State)
			}
			continue
		}
		if c.State.Block != "SHELL" {
			t.Fatalf("shell state at %v = %v", c.Pos, c.State)
		}
		got, ok := Center(c.Pos, c.State)
		if !ok || got != center {
			t.Fatalf("Center(%v,%v)=%v,%v", c.Pos, c.State, got, ok)
		}
	}
	if cores != 1 {
		t.Fatalf("cores=%d", cores)
	}
}

func TestFurnaceChangesUnconfigured(t *testing.T) {
	if got := (Furnace{}).Changes(nil, cube.Pos{}); got != nil {
		t.Fatalf("expected nil, got %d changes", len(got))
	}
}

func TestRelative(t *testing.T) {
	if got := Relative(cube.Pos{5, 5, 5}, cube.Pos{4, 6, 5}); got != (cube.Pos{0, 2, 1}) {
		t.Fatalf("Relative=%v", got)
	}
}
