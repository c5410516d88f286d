package main

import (
	"path/filepath"
	"testing"

	"jumbofurnace.ai/internal/plugin"
	"jumbofurnace.ai/internal/sim/catalogs"
	"jumbofurnace.ai/internal/sim/tuning"
	"jumbofurnace.ai/internal/sim/world/feature/jumbo"
	"jumbofurnace.ai/internal/sim/world/logic/cube"
)

func TestBundledScene(t *testing.T) {
	configDir := filepath.Join("..", "..", "configs")
	cats, err := catalogs.Load(configDir)
	if err != nil {
		t.Fatalf("catalogs.Load: %v", err)
	}
	tune, err := tuning.Load(filepath.Join(configDir, "tuning.yaml"))
	if err != nil {
		t.Fatalf("tuning.Load: %v", err)
	}
	scene, err := LoadScene(filepath.Join(configDir, "scene.yaml"))
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	w, reg, err := scene.Build(cats)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p, err := plugin.New(tune, cats, reg, nil, plugin.Options{})
	if err != nil {
		t.Fatalf("plugin.New: %v", err)
	}
	defer p.Close()

	want := []struct {
		outcome jumbo.Outcome
		err     bool
	}{
		{jumbo.OutcomeFormed, false},
		{jumbo.OutcomeDenied, false},
		{jumbo.OutcomeNoGeometry, false},
		{jumbo.OutcomeNoGeometry, true},
		{jumbo.OutcomeFormed, false},
	}
	if len(scene.Placements) != len(want) {
		t.Fatalf("placements=%d want %d", len(scene.Placements), len(want))
	}
	for i, pl := range scene.Placements {
		var (
			res jumbo.Result
			err error
		)
		if pl.Kit {
			res, err = p.PlaceKit(w, pl.Context(w))
		} else {
			res, err = p.Place(w, pl.Context(w))
		}
		if (err != nil) != want[i].err || res.Outcome != want[i].outcome {
			t.Fatalf("placement #%d: outcome=%v err=%v, want outcome=%v err=%v", i, res.Outcome, err, want[i].outcome, want[i].err)
		}
	}
	if got := w.StateAt(cube.Pos{0, 65, 0}).Block; got != tune.Furnace.CoreBlock {
		t.Fatalf("first furnace core=%s", got)
	}
}

func TestActorForIsStable(t *testing.T) {
	a, b := actorFor("steve"), actorFor("steve")
	if a.ID != b.ID || a.Name != "steve" {
		t.Fatalf("actor ids differ: %v %v", a, b)
	}
	if actorFor("alex").ID == a.ID {
		t.Fatalf("distinct names share an id")
	}
}
