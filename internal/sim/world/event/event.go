package event

import (
	"sync"

	"github.com/google/uuid"

	"jumbofurnace.ai/internal/sim/world/feature/jumbo"
)

// MultiPlace is posted before several cells are set at once.
// Any handler may cancel it; later handlers still see it.
type MultiPlace struct {
	ID        uuid.UUID
	Snapshots []jumbo.Snapshot
	Against   jumbo.State
	Actor     jumbo.Actor

	cancelled bool
}

func (e *MultiPlace) Cancel()         { e.cancelled = true }
func (e *MultiPlace) Cancelled() bool { return e.cancelled }

type Handler interface {
	HandleMultiPlace(e *MultiPlace)
}

type HandlerFunc func(e *MultiPlace)

func (f HandlerFunc) HandleMultiPlace(e *MultiPlace) { f(e) }

// Bus dispatches events synchronously to its handlers in registration order.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewBus(hs ...Handler) *Bus {
	b := &Bus{}
	for _, h := range hs {
		b.Register(h)
	}
	return b
}

func (b *Bus) Register(h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	b.handlers = append(b.handlers, h)
	b.mu.Unlock()
}

func (b *Bus) Post(e *MultiPlace) {
	b.mu.RLock()
	hs := append([]Handler(nil), b.handlers...)
	b.mu.RUnlock()
	for _, h := range hs {
		h.HandleMultiPlace(e)
	}
}

// SubmitMultiPlace posts a MultiPlace event for req and reports whether it was cancelled.
func (b *Bus) SubmitMultiPlace(req jumbo.MultiPlaceRequest) bool {
	e := &MultiPlace{
		ID:        uuid.New(),
		Snapshots: req.Snapshots,
		Against:   req.Against,
		Actor:     req.Actor,
	}
	b.Post(e)
	return e.Cancelled()
}
