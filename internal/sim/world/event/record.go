package event

import (
	"log"

	"jumbofurnace.ai/internal/sim/world/logic/cube"
)

// AttemptRecord is the persisted form of one multi-place event.
type AttemptRecord struct {
	ID        string `json:"id"`
	Tick      uint64 `json:"tick"`
	Actor     string `json:"actor"`
	ActorID   string `json:"actor_id"`
	Against   string `json:"against"`
	Min       [3]int `json:"min"`
	Max       [3]int `json:"max"`
	Cells     int    `json:"cells"`
	Cancelled bool   `json:"cancelled"`
}

func (e *MultiPlace) Record(tick uint64) AttemptRecord {
	r := AttemptRecord{
		ID:        e.ID.String(),
		Tick:      tick,
		Actor:     e.Actor.Name,
		ActorID:   e.Actor.ID.String(),
		Against:   e.Against.String(),
		Cells:     len(e.Snapshots),
		Cancelled: e.cancelled,
	}
	for i, s := range e.Snapshots {
		if i == 0 {
			r.Min, r.Max = [3]int(s.Pos), [3]int(s.Pos)
			continue
		}
		r.Min = [3]int(minPos(cube.Pos(r.Min), s.Pos))
		r.Max = [3]int(maxPos(cube.Pos(r.Max), s.Pos))
	}
	return r
}

func minPos(a, b cube.Pos) cube.Pos {
	return cube.Pos{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])}
}

func maxPos(a, b cube.Pos) cube.Pos {
	return cube.Pos{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])}
}

type AttemptSink interface {
	WriteAttempt(r AttemptRecord) error
}

// Recorder writes every event it sees to its sinks. Register it last so the
// record carries the final verdict.
type Recorder struct {
	Tick   func() uint64
	Sinks  []AttemptSink
	Logger *log.Logger
}

func (r Recorder) HandleMultiPlace(e *MultiPlace) {
	var tick uint64
	if r.Tick != nil {
		tick = r.Tick()
	}
	rec := e.Record(tick)
	for _, s := range r.Sinks {
		if s == nil {
			continue
		}
		if err := s.WriteAttempt(rec); err != nil && r.Logger != nil {
			r.Logger.Printf("record attempt %s: %v", rec.ID, err)
		}
	}
}
