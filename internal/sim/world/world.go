package world

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"jumbofurnace.ai/internal/sim/catalogs"
	"jumbofurnace.ai/internal/sim/world/feature/jumbo"
	"jumbofurnace.ai/internal/sim/world/logic/cube"
)

type WorldConfig struct {
	ID string
	// BoundaryR bounds x and z to [-BoundaryR, BoundaryR]; 0 means unbounded.
	BoundaryR int
	MinY      int
	MaxY      int
}

// World is an in-memory block grid with entities. Cells never written read as AIR.
type World struct {
	cfg      WorldConfig
	catalogs *catalogs.Catalogs

	tick atomic.Uint64

	mu       sync.RWMutex
	blocks   map[cube.Pos]uint16
	props    map[cube.Pos]map[string]int
	entities map[uuid.UUID]Entity
}

type AuditEntry struct {
	Tick   uint64 `json:"tick"`
	Actor  string `json:"actor"`
	Action string `json:"action"` // e.g. "SET_BLOCK"
	Pos    [3]int `json:"pos"`
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason,omitempty"`
}

func New(cfg WorldConfig, cats *catalogs.Catalogs) (*World, error) {
	if cats == nil {
		return nil, fmt.Errorf("world: nil catalogs")
	}
	if cfg.MaxY < cfg.MinY {
		return nil, fmt.Errorf("world: max_y %d below min_y %d", cfg.MaxY, cfg.MinY)
	}
	return &World{
		cfg:      cfg,
		catalogs: cats,
		blocks:   map[cube.Pos]uint16{},
		props:    map[cube.Pos]map[string]int{},
		entities: map[uuid.UUID]Entity{},
	}, nil
}

func (w *World) ID() string                   { return w.cfg.ID }
func (w *World) Catalogs() *catalogs.Catalogs { return w.catalogs }
func (w *World) CurrentTick() uint64          { return w.tick.Load() }
func (w *World) Step() uint64                 { return w.tick.Add(1) }

// InBounds reports whether pos lies inside the world.
func (w *World) InBounds(pos cube.Pos) bool {
	if w.cfg.MaxY > w.cfg.MinY && (pos.Y() < w.cfg.MinY || pos.Y() >= w.cfg.MaxY) {
		return false
	}
	if r := w.cfg.BoundaryR; r > 0 {
		if pos.X() < -r || pos.X() > r || pos.Z() < -r || pos.Z() > r {
			return false
		}
	}
	return true
}

func (w *World) StateAt(pos cube.Pos) jumbo.State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stateLocked(pos)
}

func (w *World) stateLocked(pos cube.Pos) jumbo.State {
	b, ok := w.blocks[pos]
	if !ok || int(b) >= len(w.catalogs.Blocks.Palette) {
		return jumbo.State{Block: "AIR"}
	}
	return jumbo.State{Block: w.catalogs.Blocks.Palette[b], Props: w.props[pos]}
}

// IsReplaceable reports whether a placement may overwrite pos. A replaceable
// block cannot be replaced by another block of the same kind.
func (w *World) IsReplaceable(pos cube.Pos, ctx jumbo.PlacementContext) bool {
	if !w.InBounds(pos) {
		return false
	}
	cur := w.StateAt(pos)
	if !w.catalogs.Blocks.Replaceable(cur.Block) {
		return false
	}
	return ctx.Placing.Block == "" || ctx.Placing.Block != cur.Block
}

// SetBlock sets pos to a block without properties.
func (w *World) SetBlock(pos cube.Pos, block string) error {
	return w.SetState(pos, jumbo.State{Block: block})
}

func (w *World) SetState(pos cube.Pos, s jumbo.State) error {
	idx, ok := w.catalogs.Blocks.Index[s.Block]
	if !ok {
		return fmt.Errorf("world: unknown block %q", s.Block)
	}
	if !w.InBounds(pos) {
		return fmt.Errorf("world: %v out of bounds", pos)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.setLocked(pos, idx, s.Props)
	return nil
}

func (w *World) setLocked(pos cube.Pos, idx uint16, props map[string]int) {
	if idx == 0 {
		delete(w.blocks, pos)
		delete(w.props, pos)
		return
	}
	w.blocks[pos] = idx
	if len(props) == 0 {
		delete(w.props, pos)
		return
	}
	cp := make(map[string]int, len(props))
	for k, v := range props {
		cp[k] = v
	}
	w.props[pos] = cp
}

// Apply commits a set of changes atomically: either every cell is written or none.
func (w *World) Apply(changes []jumbo.ProposedChange, actor, reason string) ([]AuditEntry, error) {
	idx := make([]uint16, len(changes))
	for i, c := range changes {
		id, ok := w.catalogs.Blocks.Index[c.State.Block]
		if !ok {
			return nil, fmt.Errorf("world: unknown block %q at %v", c.State.Block, c.Pos)
		}
		if !w.InBounds(c.Pos) {
			return nil, fmt.Errorf("world: %v out of bounds", c.Pos)
		}
		idx[i] = id
	}

	tick := w.CurrentTick()
	w.mu.Lock()
	defer w.mu.Unlock()
	audits := make([]AuditEntry, 0, len(changes))
	for i, c := range changes {
		from := w.stateLocked(c.Pos)
		w.setLocked(c.Pos, idx[i], c.State.Props)
		audits = append(audits, AuditEntry{
			Tick:   tick,
			Actor:  actor,
			Action: "SET_BLOCK",
			Pos:    [3]int(c.Pos),
			From:   from.String(),
			To:     c.State.String(),
			Reason: reason,
		})
	}
	return audits, nil
}

// Blocks returns every non-air cell in a stable order.
func (w *World) Blocks() []jumbo.ProposedChange {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]jumbo.ProposedChange, 0, len(w.blocks))
	for p := range w.blocks {
		out = append(out, jumbo.ProposedChange{Pos: p, State: w.stateLocked(p)})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Pos, out[j].Pos
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		if a[2] != b[2] {
			return a[2] < b[2]
		}
		return a[0] < b[0]
	})
	return out
}
