package event

import (
	"testing"

	"jumbofurnace.ai/internal/sim/world/feature/jumbo"
	"jumbofurnace.ai/internal/sim/world/logic/cube"
)

func TestBusNotifiesEveryHandlerAfterCancel(t *testing.T) {
	var order []string
	b := NewBus(
		HandlerFunc(func(e *MultiPlace) { order = append(order, "deny"); e.Cancel() }),
		HandlerFunc(func(e *MultiPlace) {
			if !e.Cancelled() {
				t.Fatalf("second handler should observe cancellation")
			}
			order = append(order, "audit")
		}),
	)
	req := jumbo.MultiPlaceRequest{
		Snapshots: []jumbo.Snapshot{{Pos: cube.Pos{1, 2, 3}}},
		Actor:     jumbo.Actor{Name: "steve"},
	}
	if !b.SubmitMultiPlace(req) {
		t.Fatalf("expected denial")
	}
	if len(order) != 2 || order[0] != "deny" || order[1] != "audit" {
		t.Fatalf("order=%v", order)
	}
}

func TestBusWithoutHandlersAllows(t *testing.T) {
	if NewBus().SubmitMultiPlace(jumbo.MultiPlaceRequest{}) {
		t.Fatalf("empty bus must not deny")
	}
}

func TestSubmitAssignsDistinctIDs(t *testing.T) {
	var ids []string
	b := NewBus(HandlerFunc(func(e *MultiPlace) { ids = append(ids, e.ID.String()) }))
	b.SubmitMultiPlace(jumbo.MultiPlaceRequest{})
	b.SubmitMultiPlace(jumbo.MultiPlaceRequest{})
	if len(ids) != 2 || ids[0] == ids[1] {
		t.Fatalf("ids=%v", ids)
	}
}
