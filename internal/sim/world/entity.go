package world

import (
	"bytes"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"jumbofurnace.ai/internal/sim/world/logic/cube"
)

const (
	EntityLiving = "LIVING"
	EntityItem   = "ITEM"
)

type Entity struct {
	ID   uuid.UUID
	Kind string
	// Pos is the centre of the entity's feet.
	Pos    mgl64.Vec3
	Width  float64
	Height float64
}

func (e Entity) AABB() cube.Box {
	hw := e.Width / 2
	return cube.Box{
		Min: mgl64.Vec3{e.Pos.X() - hw, e.Pos.Y(), e.Pos.Z() - hw},
		Max: mgl64.Vec3{e.Pos.X() + hw, e.Pos.Y() + e.Height, e.Pos.Z() + hw},
	}
}

// AddEntity stores e, assigning an id when it has none.
func (w *World) AddEntity(e Entity) uuid.UUID {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	w.mu.Lock()
	w.entities[e.ID] = e
	w.mu.Unlock()
	return e.ID
}

func (w *World) RemoveEntity(id uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.entities[id]; !ok {
		return false
	}
	delete(w.entities, id)
	return true
}

func (w *World) Entity(id uuid.UUID) (Entity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entities[id]
	return e, ok
}

// EntitiesWithin returns the ids of entities of kind whose boxes overlap box.
// An empty kind matches every entity.
func (w *World) EntitiesWithin(box cube.Box, kind string) []uuid.UUID {
	w.mu.RLock()
	var out []uuid.UUID
	for id, e := range w.entities {
		if kind != "" && e.Kind != kind {
			continue
		}
		if box.Intersects(e.AABB()) {
			out = append(out, id)
		}
	}
	w.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i][:], out[j][:]) < 0 })
	return out
}
