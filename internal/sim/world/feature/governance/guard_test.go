package governance

import (
	"testing"

	"jumbofurnace.ai/internal/sim/world/event"
	"jumbofurnace.ai/internal/sim/world/feature/governance/claims"
	"jumbofurnace.ai/internal/sim/world/feature/jumbo"
	"jumbofurnace.ai/internal/sim/world/logic/cube"
)

func TestBuildGuard(t *testing.T) {
	reg := claims.NewRegistry()
	if err := reg.Add(claims.Claim{LandID: "HOME", Owner: "alice", Anchor: cube.Pos{10, 0, 10}, Radius: 2}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	bus := event.NewBus(BuildGuard{Claims: reg})

	touching := jumbo.MultiPlaceRequest{
		Snapshots: []jumbo.Snapshot{{Pos: cube.Pos{0, 0, 0}}, {Pos: cube.Pos{8, 5, 9}}},
	}
	touching.Actor = jumbo.Actor{Name: "bob"}
	if !bus.SubmitMultiPlace(touching) {
		t.Fatalf("visitor building in a claim must be denied")
	}
	touching.Actor = jumbo.Actor{Name: "alice"}
	if bus.SubmitMultiPlace(touching) {
		t.Fatalf("owner must be allowed")
	}
	wild := jumbo.MultiPlaceRequest{
		Snapshots: []jumbo.Snapshot{{Pos: cube.Pos{-20, 0, 0}}},
		Actor:     jumbo.Actor{Name: "bob"},
	}
	if bus.SubmitMultiPlace(wild) {
		t.Fatalf("wild land must be allowed")
	}
}
