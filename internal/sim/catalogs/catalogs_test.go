package catalogs

import (
	"os"
	"path/filepath"
	"testing"
)

const testBlocks = `[
  {"id":"AIR","replaceable":true},
  {"id":"STONE","solid":true,"breakable":true,"tags":["jumbofurnaceable"]},
  {"id":"COBBLESTONE","solid":true,"breakable":true,"tags":["jumbofurnaceable"]},
  {"id":"DIRT","solid":true,"breakable":true},
  {"id":"TALL_GRASS","replaceable":true}
]`

const testRecipes = `[
  {"recipe_id":"iron","station":"JUMBO_FURNACE","inputs":[{"item":"IRON_ORE","count":1}],"outputs":[{"item":"IRON_INGOT","count":1}],"time_ticks":200,"experience":0.7}
]`

func writeConfigs(t *testing.T, blocks, recipes string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "blocks.json"), []byte(blocks), 0o644); err != nil {
		t.Fatalf("write blocks: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "recipes.json"), []byte(recipes), 0o644); err != nil {
		t.Fatalf("write recipes: %v", err)
	}
	return dir
}

func TestLoad(t *testing.T) {
	c, err := Load(writeConfigs(t, testBlocks, testRecipes))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Blocks.Index["AIR"] != 0 || c.Blocks.Palette[0] != "AIR" {
		t.Fatalf("AIR must be palette 0: %v", c.Blocks.Palette)
	}
	if len(c.Blocks.Palette) != 5 {
		t.Fatalf("palette size=%d", len(c.Blocks.Palette))
	}
	if !c.Blocks.HasTag("STONE", "jumbofurnaceable") || c.Blocks.HasTag("DIRT", "jumbofurnaceable") {
		t.Fatalf("tag membership mismatch")
	}
	if c.Blocks.HasTag("UNKNOWN", "jumbofurnaceable") {
		t.Fatalf("unknown block must carry no tags")
	}
	if !c.Blocks.Replaceable("TALL_GRASS") || c.Blocks.Replaceable("STONE") || c.Blocks.Replaceable("UNKNOWN") {
		t.Fatalf("replaceable mismatch")
	}
	if got := c.Recipes.ByID["iron"].Experience; got != 0.7 {
		t.Fatalf("experience=%v", got)
	}
	if c.Blocks.DefsDigest == "" || c.Recipes.Digest == "" {
		t.Fatalf("missing digests")
	}
}

func TestLoadRejectsMissingAir(t *testing.T) {
	if _, err := Load(writeConfigs(t, `[{"id":"STONE"}]`, `[]`)); err == nil {
		t.Fatalf("expected missing AIR error")
	}
}

func TestLoadRejectsSchemaViolation(t *testing.T) {
	bad := `[{"id":"AIR","replaceable":"yes"}]`
	if _, err := Load(writeConfigs(t, bad, `[]`)); err == nil {
		t.Fatalf("expected schema error for non-boolean replaceable")
	}
	badRecipe := `[{"recipe_id":"x","station":"FURNACE","inputs":[{"item":"A","count":0}],"outputs":[]}]`
	if _, err := Load(writeConfigs(t, testBlocks, badRecipe)); err == nil {
		t.Fatalf("expected schema error for zero count")
	}
}

func TestLoadRejectsDuplicateBlock(t *testing.T) {
	dup := `[{"id":"AIR"},{"id":"STONE"},{"id":"STONE"}]`
	if _, err := Load(writeConfigs(t, dup, `[]`)); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestFromDefs(t *testing.T) {
	c, err := FromDefs([]BlockDef{{ID: "AIR", Replaceable: true}, {ID: "BRICK", Tags: []string{"t"}}}, nil)
	if err != nil {
		t.Fatalf("FromDefs: %v", err)
	}
	if c.Blocks.Index["BRICK"] != 1 || !c.Blocks.HasTag("BRICK", "t") {
		t.Fatalf("unexpected catalog: %+v", c.Blocks)
	}
	if len(c.Recipes.ByID) != 0 {
		t.Fatalf("expected no recipes")
	}
}
