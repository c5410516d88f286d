package governance

import (
	"log"

	"jumbofurnace.ai/internal/sim/world/event"
	"jumbofurnace.ai/internal/sim/world/feature/governance/claims"
	"jumbofurnace.ai/internal/sim/world/feature/governance/permissions"
)

// BuildGuard cancels multi-place events that touch land the actor may not build on.
type BuildGuard struct {
	Claims *claims.Registry
	Logger *log.Logger
}

func (g BuildGuard) HandleMultiPlace(e *event.MultiPlace) {
	if e.Cancelled() {
		return
	}
	for _, s := range e.Snapshots {
		c, _ := g.Claims.At(s.Pos)
		if permissions.ForClaim(c, e.Actor.Name).CanBuild {
			continue
		}
		if g.Logger != nil {
			g.Logger.Printf("deny multi-place by %s: %v in %s", e.Actor.Name, s.Pos, c.LandID)
		}
		e.Cancel()
		return
	}
}
