package catalogs

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

type Catalogs struct {
	Blocks  BlockCatalog
	Recipes RecipeCatalog
}

type BlockCatalog struct {
	Palette       []string
	Index         map[string]uint16
	Defs          map[string]BlockDef
	PaletteDigest string
	DefsDigest    string
}

type BlockDef struct {
	ID          string   `json:"id"`
	Solid       bool     `json:"solid"`
	Breakable   bool     `json:"breakable"`
	Replaceable bool     `json:"replaceable"`
	DropsItem   string   `json:"drops_item,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type RecipeCatalog struct {
	ByID   map[string]RecipeDef
	Digest string
}

type RecipeDef struct {
	RecipeID   string      `json:"recipe_id"`
	Station    string      `json:"station"`
	Inputs     []ItemCount `json:"inputs"`
	Outputs    []ItemCount `json:"outputs"`
	Tier       int         `json:"tier"`
	TimeTicks  int         `json:"time_ticks"`
	Experience float64     `json:"experience,omitempty"`
}

type ItemCount struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

func Load(configDir string) (*Catalogs, error) {
	var c Catalogs

	if err := loadBlocks(filepath.Join(configDir, "blocks.json"), &c.Blocks); err != nil {
		return nil, err
	}
	if err := loadRecipes(filepath.Join(configDir, "recipes.json"), &c.Recipes); err != nil {
		return nil, err
	}
	return &c, nil
}

// FromDefs builds catalogs from in-memory definitions with the same checks Load applies.
func FromDefs(blocks []BlockDef, recipes []RecipeDef) (*Catalogs, error) {
	var c Catalogs
	if blocks == nil {
		blocks = []BlockDef{}
	}
	if recipes == nil {
		recipes = []RecipeDef{}
	}
	rawBlocks, err := json.Marshal(blocks)
	if err != nil {
		return nil, err
	}
	if err := parseBlocks(rawBlocks, &c.Blocks); err != nil {
		return nil, err
	}
	rawRecipes, err := json.Marshal(recipes)
	if err != nil {
		return nil, err
	}
	if err := parseRecipes(rawRecipes, &c.Recipes); err != nil {
		return nil, err
	}
	return &c, nil
}

// HasTag reports whether the block definition carries the tag.
// Unknown blocks carry no tags.
func (b BlockCatalog) HasTag(blockID, tag string) bool {
	d, ok := b.Defs[blockID]
	if !ok {
		return false
	}
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Replaceable reports whether the block may be overwritten by a placement.
// Unknown blocks are not replaceable.
func (b BlockCatalog) Replaceable(blockID string) bool {
	d, ok := b.Defs[blockID]
	return ok && d.Replaceable
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// validate checks raw against the embedded schema of the same base name.
func validate(schemaName string, raw []byte, file string) error {
	src, err := schemaFS.ReadFile("schemas/" + schemaName)
	if err != nil {
		return err
	}
	s, err := jsonschema.CompileString("mem:///schemas/"+schemaName, string(src))
	if err != nil {
		return fmt.Errorf("%s: compile schema: %w", schemaName, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return nil
}

func loadBlocks(path string, out *BlockCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return parseBlocks(raw, out)
}

func parseBlocks(raw []byte, out *BlockCatalog) error {
	if err := validate("blocks.schema.json", raw, "blocks.json"); err != nil {
		return err
	}
	out.DefsDigest = sha256Hex(raw)

	var defs []BlockDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("blocks.json: %w", err)
	}
	out.Defs = map[string]BlockDef{}
	for _, d := range defs {
		if strings.TrimSpace(d.ID) == "" {
			return fmt.Errorf("blocks.json: empty id")
		}
		if _, dup := out.Defs[d.ID]; dup {
			return fmt.Errorf("blocks.json: duplicate id %q", d.ID)
		}
		out.Defs[d.ID] = d
	}

	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// AIR is palette id 0 so an unset cell reads as air.
	if _, ok := out.Defs["AIR"]; !ok {
		return fmt.Errorf("blocks.json: missing AIR")
	}
	ids = append([]string{"AIR"}, filterOut(ids, "AIR")...)

	out.Palette = ids
	out.Index = make(map[string]uint16, len(ids))
	for i, id := range ids {
		out.Index[id] = uint16(i)
	}
	palJSON, _ := json.Marshal(ids)
	out.PaletteDigest = sha256Hex(palJSON)
	return nil
}

func loadRecipes(path string, out *RecipeCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return parseRecipes(raw, out)
}

func parseRecipes(raw []byte, out *RecipeCatalog) error {
	if err := validate("recipes.schema.json", raw, "recipes.json"); err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []RecipeDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("recipes.json: %w", err)
	}
	out.ByID = map[string]RecipeDef{}
	for _, r := range defs {
		if r.RecipeID == "" {
			return fmt.Errorf("recipes.json: empty recipe_id")
		}
		out.ByID[r.RecipeID] = r
	}
	return nil
}

func filterOut(in []string, remove string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == remove {
			continue
		}
		out = append(out, s)
	}
	return out
}
