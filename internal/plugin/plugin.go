// Package plugin wires the jumbo furnace into a host world: permission bus,
// claim guard, attempt/audit trail, formation validator and recipe viewer.
package plugin

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sync/atomic"

	"jumbofurnace.ai/internal/persistence/indexdb"
	persistlog "jumbofurnace.ai/internal/persistence/log"
	"jumbofurnace.ai/internal/sim/catalogs"
	"jumbofurnace.ai/internal/sim/tuning"
	"jumbofurnace.ai/internal/sim/world"
	"jumbofurnace.ai/internal/sim/world/event"
	"jumbofurnace.ai/internal/sim/world/feature/governance"
	"jumbofurnace.ai/internal/sim/world/feature/governance/claims"
	"jumbofurnace.ai/internal/sim/world/feature/jumbo"
	"jumbofurnace.ai/internal/sim/world/feature/jumbo/footprint"
	"jumbofurnace.ai/internal/sim/world/feature/jumbo/recipes"
	"jumbofurnace.ai/internal/sim/world/logic/cube"
)

const (
	ReasonForm  = "JUMBO_FURNACE_FORM"
	ReasonKit   = "JUMBO_FURNACE_KIT"
	ReasonPlace = "PLACE"
)

var (
	ErrNotReplaceable = errors.New("target cell is not replaceable")
	ErrNoRoom         = errors.New("no room for a jumbo furnace")
	ErrDenied         = errors.New("placement denied")
)

type Options struct {
	DataDir   string
	DisableDB bool
	// Handlers run after the claim guard and before the recorder.
	Handlers []event.Handler
}

type auditSink interface {
	WriteAudits(entries []world.AuditEntry) error
}

type Plugin struct {
	logger *log.Logger

	bus       *event.Bus
	tags      jumbo.TagOracle
	validator *jumbo.Validator
	footprint footprint.Furnace
	viewer    *recipes.Viewer

	attempts   *persistlog.AttemptLogger
	audits     *persistlog.AuditLogger
	index      *indexdb.SQLiteIndex
	auditSinks []auditSink

	active atomic.Pointer[world.World]
}

func New(cfg tuning.Tuning, cats *catalogs.Catalogs, reg *claims.Registry, logger *log.Logger, opts Options) (*Plugin, error) {
	if cats == nil {
		return nil, fmt.Errorf("plugin: nil catalogs")
	}
	for _, id := range []string{cfg.Furnace.CoreBlock, cfg.Furnace.ExteriorBlock} {
		if _, ok := cats.Blocks.Index[id]; !ok {
			return nil, fmt.Errorf("plugin: furnace block %q not in catalog", id)
		}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if reg == nil {
		reg = claims.NewRegistry()
	}

	p := &Plugin{
		logger:    logger,
		footprint: footprint.Furnace{Core: cfg.Furnace.CoreBlock, Exterior: cfg.Furnace.ExteriorBlock},
	}

	sinks := []event.AttemptSink{}
	if opts.DataDir != "" {
		p.attempts = persistlog.NewAttemptLogger(filepath.Join(opts.DataDir, cfg.AuditDir))
		p.audits = persistlog.NewAuditLogger(filepath.Join(opts.DataDir, cfg.AuditDir))
		sinks = append(sinks, p.attempts)
		p.auditSinks = append(p.auditSinks, p.audits)
		if !opts.DisableDB {
			idx, err := indexdb.OpenSQLite(filepath.Join(opts.DataDir, cfg.IndexPath))
			if err != nil {
				return nil, fmt.Errorf("plugin: open index: %w", err)
			}
			if err := idx.UpsertCatalogs(cats, cfg); err != nil {
				logger.Printf("index catalogs: %v", err)
			}
			p.index = idx
			sinks = append(sinks, idx)
			p.auditSinks = append(p.auditSinks, idx)
		}
	}

	p.bus = event.NewBus(governance.BuildGuard{Claims: reg, Logger: logger})
	for _, h := range opts.Handlers {
		p.bus.Register(h)
	}
	p.bus.Register(event.Recorder{Tick: p.tick, Sinks: sinks, Logger: logger})

	p.tags = jumbo.BlockTag{Source: cats.Blocks, Tag: cfg.Furnace.EligibleTag}
	p.validator = jumbo.NewValidator(jumbo.Config{
		Tags:         p.tags,
		Footprint:    p.footprint,
		Authority:    p.bus,
		BlockingKind: cfg.Furnace.BlockingKind,
		Logger:       logger,
	})
	p.viewer = &recipes.Viewer{World: p.activeRecipes}
	return p, nil
}

func (p *Plugin) Validator() *jumbo.Validator  { return p.validator }
func (p *Plugin) Bus() *event.Bus              { return p.bus }
func (p *Plugin) Viewer() *recipes.Viewer      { return p.viewer }
func (p *Plugin) Index() *indexdb.SQLiteIndex  { return p.index }
func (p *Plugin) Footprint() footprint.Furnace { return p.footprint }
func (p *Plugin) Activate(w *world.World)      { p.active.Store(w) }
func (p *Plugin) ActiveWorld() *world.World    { return p.active.Load() }

func (p *Plugin) tick() uint64 {
	if w := p.active.Load(); w != nil {
		return w.CurrentTick()
	}
	return 0
}

func (p *Plugin) activeRecipes() *catalogs.RecipeCatalog {
	w := p.active.Load()
	if w == nil || w.Catalogs() == nil {
		return nil
	}
	return &w.Catalogs().Recipes
}

// RegisterViewer registers the recipe category and its recipes with reg.
func (p *Plugin) RegisterViewer(reg interface {
	recipes.CategoryRegistrar
	recipes.RecipeRegistrar
}) error {
	p.viewer.RegisterCategories(reg)
	return p.viewer.RegisterRecipes(reg)
}

// Place puts ctx.Placing at ctx.Pos. If the placed block is furnace material
// and completes a furnace, the whole footprint is committed instead.
func (p *Plugin) Place(w *world.World, ctx jumbo.PlacementContext) (jumbo.Result, error) {
	p.Activate(w)
	w.Step()
	if !w.IsReplaceable(ctx.Pos, ctx) {
		return jumbo.Result{}, fmt.Errorf("place %s at %v: %w", ctx.Placing.Block, ctx.Pos, ErrNotReplaceable)
	}

	res := jumbo.Result{Outcome: jumbo.OutcomeNoGeometry}
	if p.tags.Eligible(ctx.Placing) {
		res = p.validator.FindFormationResult(w, ctx)
	}
	if res.Outcome == jumbo.OutcomeFormed {
		if err := p.commit(w, res.Changes, ctx.Actor, ReasonForm); err != nil {
			return res, err
		}
		p.logger.Printf("%s formed a jumbo furnace at %v", ctx.Actor.Name, res.Center)
		return res, nil
	}

	single := []jumbo.ProposedChange{{Pos: ctx.Pos, State: ctx.Placing}}
	if err := p.commit(w, single, ctx.Actor, ReasonPlace); err != nil {
		return res, err
	}
	return res, nil
}

// PlaceKit puts down a complete furnace whose bottom middle cell is ctx.Pos.
func (p *Plugin) PlaceKit(w *world.World, ctx jumbo.PlacementContext) (jumbo.Result, error) {
	p.Activate(w)
	w.Step()
	center := ctx.Pos.Offset(0, 1, 0)
	if !p.validator.CanPlaceAt(w, center, ctx) {
		return jumbo.Result{Center: center}, fmt.Errorf("kit at %v: %w", center, ErrNoRoom)
	}
	changes := p.validator.EvaluateFormation(w, center, ctx.Against, ctx.Actor)
	if len(changes) == 0 {
		return jumbo.Result{Center: center, Outcome: jumbo.OutcomeDenied}, fmt.Errorf("kit at %v: %w", center, ErrDenied)
	}
	res := jumbo.Result{Changes: changes, Center: center, Outcome: jumbo.OutcomeFormed}
	if err := p.commit(w, changes, ctx.Actor, ReasonKit); err != nil {
		return res, err
	}
	return res, nil
}

// FurnaceAt reports the center of the formed furnace that the cell at pos belongs to.
func (p *Plugin) FurnaceAt(w *world.World, pos cube.Pos) (cube.Pos, bool) {
	s := w.StateAt(pos)
	switch s.Block {
	case p.footprint.Core:
		return pos, true
	case p.footprint.Exterior:
		if len(s.Props) == 0 {
			return pos, false
		}
		return footprint.Center(pos, s)
	}
	return pos, false
}

func (p *Plugin) commit(w *world.World, changes []jumbo.ProposedChange, actor jumbo.Actor, reason string) error {
	entries, err := w.Apply(changes, actor.Name, reason)
	if err != nil {
		return err
	}
	for _, s := range p.auditSinks {
		if err := s.WriteAudits(entries); err != nil {
			p.logger.Printf("audit %s: %v", reason, err)
		}
	}
	return nil
}

// Close flushes and closes the attempt log, audit log and index.
func (p *Plugin) Close() error {
	var errs []error
	if p.attempts != nil {
		errs = append(errs, p.attempts.Close())
	}
	if p.audits != nil {
		errs = append(errs, p.audits.Close())
	}
	if p.index != nil {
		errs = append(errs, p.index.Close())
	}
	return errors.Join(errs...)
}
