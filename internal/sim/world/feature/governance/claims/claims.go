package claims

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"jumbofurnace.ai/internal/sim/world/logic/cube"
)

// Flags are the land policy switches a claim owner controls for visitors.
type Flags struct {
	AllowBuild bool
}

const (
	ClaimTypeDefault   = "DEFAULT"
	ClaimTypeHomestead = "HOMESTEAD"
	ClaimTypeCityCore  = "CITY_CORE"
)

// Claim protects a square column of land around Anchor.
type Claim struct {
	LandID    string
	Owner     string
	ClaimType string
	Anchor    cube.Pos
	Radius    int
	Flags     Flags
	Members   map[string]bool

	// 0=ok, 1=late, 2=unprotected.
	MaintenanceStage int
}

func (c *Claim) Contains(pos cube.Pos) bool {
	dx := pos.X() - c.Anchor.X()
	if dx < 0 {
		dx = -dx
	}
	dz := pos.Z() - c.Anchor.Z()
	if dz < 0 {
		dz = -dz
	}
	return dx <= c.Radius && dz <= c.Radius
}

func (c *Claim) IsMember(actor string) bool {
	return actor != "" && (actor == c.Owner || c.Members[actor])
}

// Registry holds non-overlapping claims.
type Registry struct {
	mu     sync.RWMutex
	claims map[string]*Claim
}

func NewRegistry() *Registry {
	return &Registry{claims: map[string]*Claim{}}
}

func (r *Registry) Add(c Claim) error {
	if strings.TrimSpace(c.LandID) == "" || c.Radius < 0 {
		return fmt.Errorf("claims: bad claim %q radius=%d", c.LandID, c.Radius)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.claims[c.LandID]; dup {
		return fmt.Errorf("claims: duplicate land id %q", c.LandID)
	}
	for _, o := range r.claims {
		if overlaps(c, *o) {
			return fmt.Errorf("claims: %q overlaps %q", c.LandID, o.LandID)
		}
	}
	if c.ClaimType == "" {
		c.ClaimType = ClaimTypeDefault
	}
	r.claims[c.LandID] = &c
	return nil
}

// At returns the claim covering pos, if any.
func (r *Registry) At(pos cube.Pos) (*Claim, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.claims))
	for id := range r.claims {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if c := r.claims[id]; c.Contains(pos) {
			return c, true
		}
	}
	return nil, false
}

func overlaps(a, b Claim) bool {
	dx := a.Anchor.X() - b.Anchor.X()
	if dx < 0 {
		dx = -dx
	}
	dz := a.Anchor.Z() - b.Anchor.Z()
	if dz < 0 {
		dz = -dz
	}
	return dx <= a.Radius+b.Radius && dz <= a.Radius+b.Radius
}
