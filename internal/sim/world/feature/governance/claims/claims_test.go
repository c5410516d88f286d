package claims

import (
	"testing"

	"jumbofurnace.ai/internal/sim/world/logic/cube"
)

func TestRegistryAt(t *testing.T) {
	r := NewRegistry()
	if err := r.Add(Claim{LandID: "LAND_A", Owner: "alice", Anchor: cube.Pos{0, 0, 0}, Radius: 4}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Add(Claim{LandID: "LAND_B", Anchor: cube.Pos{100, 0, 100}, Radius: 4}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	c, ok := r.At(cube.Pos{4, 70, -4})
	if !ok || c.LandID != "LAND_A" || c.ClaimType != ClaimTypeDefault {
		t.Fatalf("At: %+v %v", c, ok)
	}
	if _, ok := r.At(cube.Pos{5, 0, 0}); ok {
		t.Fatalf("expected no claim outside radius")
	}
	if !c.IsMember("alice") || c.IsMember("bob") || c.IsMember("") {
		t.Fatalf("membership mismatch")
	}
}

func TestRegistryRejectsOverlap(t *testing.T) {
	r := NewRegistry()
	if err := r.Add(Claim{LandID: "LAND_A", Anchor: cube.Pos{0, 0, 0}, Radius: 8}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Add(Claim{LandID: "LAND_B", Anchor: cube.Pos{10, 0, 0}, Radius: 4}); err == nil {
		t.Fatalf("expected overlap error")
	}
	if err := r.Add(Claim{LandID: "LAND_A", Anchor: cube.Pos{50, 0, 0}, Radius: 1}); err == nil {
		t.Fatalf("expected duplicate error")
	}
}
