package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"jumbofurnace.ai/internal/plugin"
	"jumbofurnace.ai/internal/sim/catalogs"
	"jumbofurnace.ai/internal/sim/tuning"
	"jumbofurnace.ai/internal/sim/world/feature/jumbo"
	"jumbofurnace.ai/internal/sim/world/feature/jumbo/recipes"
)

func main() {
	var (
		configDir  = flag.String("configs", "./configs", "config directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		scenePath  = flag.String("scene", "", "path to scene.yaml (default: <configs>/scene.yaml)")
		dataDir    = flag.String("data", "./data", "runtime data directory (audit logs, index)")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite attempt/audit index")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[jumbo] ", log.LstdFlags|log.Lmicroseconds)

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load tuning: %v", err)
		}
		logger.Printf("tuning not found (%s); using defaults", tp)
		tune = tuning.Defaults()
	}

	sp := strings.TrimSpace(*scenePath)
	if sp == "" {
		sp = filepath.Join(*configDir, "scene.yaml")
	}
	scene, err := LoadScene(sp)
	if err != nil {
		logger.Fatalf("load scene: %v", err)
	}
	w, reg, err := scene.Build(cats)
	if err != nil {
		logger.Fatalf("build scene: %v", err)
	}

	p, err := plugin.New(tune, cats, reg, logger, plugin.Options{DataDir: *dataDir, DisableDB: *disableDB})
	if err != nil {
		logger.Fatalf("plugin: %v", err)
	}
	defer func() {
		if err := p.Close(); err != nil {
			logger.Printf("close: %v", err)
		}
	}()
	p.Activate(w)

	var idx recipes.Index
	if err := p.RegisterViewer(&idx); err != nil {
		logger.Fatalf("recipe viewer: %v", err)
	}

	for i, pl := range scene.Placements {
		ctx := pl.Context(w)
		var (
			res jumbo.Result
			err error
		)
		if pl.Kit {
			res, err = p.PlaceKit(w, ctx)
		} else {
			res, err = p.Place(w, ctx)
		}
		printVerdict(i, pl, res, err)
		if c, ok := p.FurnaceAt(w, ctx.Pos); ok {
			logger.Printf("#%d %v belongs to the furnace at %v", i, ctx.Pos, c)
		}
	}

	cat := p.Viewer().Category()
	color.Blue("%s (%d recipes)", cat.Title, len(idx.ByCategory[cat.ID]))
	for _, r := range idx.ByCategory[cat.ID] {
		fmt.Printf("  %-24s %s\n", r.RecipeID, cat.Describe(r))
	}
	if st := p.Index().Stats(); st.DropAttemptTotal+st.DropAuditTotal > 0 {
		logger.Printf("index dropped attempts=%d audits=%d", st.DropAttemptTotal, st.DropAuditTotal)
	}
}

func printVerdict(i int, pl ScenePlacement, res jumbo.Result, err error) {
	what := "place"
	if pl.Kit {
		what = "kit"
	}
	prefix := fmt.Sprintf("#%d %s %s at %v:", i, pl.Actor, what, pl.Pos)
	switch {
	case err != nil:
		color.Red("%s error: %v", prefix, err)
	case res.Outcome == jumbo.OutcomeFormed:
		color.Green("%s formed around %v (%d cells)", prefix, res.Center, len(res.Changes))
	case res.Outcome == jumbo.OutcomeDenied:
		color.Yellow("%s denied around %v", prefix, res.Center)
	default:
		fmt.Printf("%s placed a single block\n", prefix)
	}
}
