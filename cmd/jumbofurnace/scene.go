package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"jumbofurnace.ai/internal/sim/catalogs"
	"jumbofurnace.ai/internal/sim/world"
	"jumbofurnace.ai/internal/sim/world/feature/governance/claims"
	"jumbofurnace.ai/internal/sim/world/feature/jumbo"
	"jumbofurnace.ai/internal/sim/world/logic/cube"
)

// Scene describes a world and a sequence of placements to run against it.
type Scene struct {
	World      SceneWorld       `yaml:"world"`
	Fills      []SceneFill      `yaml:"fills"`
	Blocks     []SceneBlock     `yaml:"blocks"`
	Entities   []SceneEntity    `yaml:"entities"`
	Claims     []SceneClaim     `yaml:"claims"`
	Placements []ScenePlacement `yaml:"placements"`
}

type SceneWorld struct {
	ID        string `yaml:"id"`
	BoundaryR int    `yaml:"boundary_r"`
	MinY      int    `yaml:"min_y"`
	MaxY      int    `yaml:"max_y"`
}

type SceneFill struct {
	Min   [3]int `yaml:"min"`
	Max   [3]int `yaml:"max"`
	Block string `yaml:"block"`
}

type SceneBlock struct {
	Pos   [3]int `yaml:"pos"`
	Block string `yaml:"block"`
}

type SceneEntity struct {
	Kind   string     `yaml:"kind"`
	Pos    [3]float64 `yaml:"pos"`
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
}

type SceneClaim struct {
	LandID     string   `yaml:"land_id"`
	Owner      string   `yaml:"owner"`
	Type       string   `yaml:"type"`
	Anchor     [3]int   `yaml:"anchor"`
	Radius     int      `yaml:"radius"`
	Members    []string `yaml:"members"`
	AllowBuild *bool    `yaml:"allow_build"`
}

type ScenePlacement struct {
	Actor string `yaml:"actor"`
	Pos   [3]int `yaml:"pos"`
	Block string `yaml:"block"`
	// Kit places a whole furnace whose bottom middle cell is Pos.
	Kit bool `yaml:"kit"`
}

func LoadScene(path string) (Scene, error) {
	var s Scene
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("scene: %w", err)
	}
	if strings.TrimSpace(s.World.ID) == "" {
		s.World.ID = "scene"
	}
	return s, nil
}

// Build creates the world and claim registry the scene describes.
func (s Scene) Build(cats *catalogs.Catalogs) (*world.World, *claims.Registry, error) {
	w, err := world.New(world.WorldConfig{
		ID:        s.World.ID,
		BoundaryR: s.World.BoundaryR,
		MinY:      s.World.MinY,
		MaxY:      s.World.MaxY,
	}, cats)
	if err != nil {
		return nil, nil, err
	}
	for _, f := range s.Fills {
		for x := f.Min[0]; x <= f.Max[0]; x++ {
			for y := f.Min[1]; y <= f.Max[1]; y++ {
				for z := f.Min[2]; z <= f.Max[2]; z++ {
					if err := w.SetBlock(cube.Pos{x, y, z}, f.Block); err != nil {
						return nil, nil, fmt.Errorf("scene fill: %w", err)
					}
				}
			}
		}
	}
	for _, b := range s.Blocks {
		if err := w.SetBlock(cube.Pos(b.Pos), b.Block); err != nil {
			return nil, nil, fmt.Errorf("scene block: %w", err)
		}
	}
	for _, e := range s.Entities {
		w.AddEntity(world.Entity{
			Kind:   e.Kind,
			Pos:    mgl64.Vec3(e.Pos),
			Width:  e.Width,
			Height: e.Height,
		})
	}

	reg := claims.NewRegistry()
	for _, c := range s.Claims {
		var flags claims.Flags
		if c.AllowBuild != nil {
			flags.AllowBuild = *c.AllowBuild
		}
		members := map[string]bool{}
		for _, m := range c.Members {
			members[m] = true
		}
		if err := reg.Add(claims.Claim{
			LandID:    c.LandID,
			Owner:     c.Owner,
			ClaimType: c.Type,
			Anchor:    cube.Pos(c.Anchor),
			Radius:    c.Radius,
			Flags:     flags,
			Members:   members,
		}); err != nil {
			return nil, nil, err
		}
	}
	return w, reg, nil
}

// Context turns a scene placement into a placement context against w.
func (p ScenePlacement) Context(w *world.World) jumbo.PlacementContext {
	pos := cube.Pos(p.Pos)
	ctx := jumbo.PlacementContext{
		Pos:     pos,
		Against: w.StateAt(pos.Offset(0, -1, 0)),
		Actor:   actorFor(p.Actor),
	}
	if !p.Kit {
		block := p.Block
		if block == "" {
			block = "FURNACE"
		}
		ctx.Placing = jumbo.State{Block: block}
	}
	return ctx
}

// actorFor derives a stable id from the actor name so repeated runs log the same ids.
func actorFor(name string) jumbo.Actor {
	if name == "" {
		name = "anonymous"
	}
	return jumbo.Actor{ID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)), Name: name}
}
