// Package recipes exposes furnace recipes to a recipe-viewer addon.
package recipes

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"jumbofurnace.ai/internal/sim/catalogs"
)

const (
	PluginUID  = "jumbofurnace:jumbofurnace"
	CategoryID = "jumbofurnace:jumbo_smelting"

	StationFurnace      = "FURNACE"
	StationJumboFurnace = "JUMBO_FURNACE"
)

var ErrCategoryNotRegistered = errors.New("jumbo smelting category was not registered")

// Category is the viewer page that lists jumbo smelting recipes.
type Category struct {
	ID          string
	Title       string
	InputSlots  int
	OutputSlots int
}

func NewCategory() *Category {
	return &Category{
		ID:          CategoryID,
		Title:       "Jumbo Smelting",
		InputSlots:  9,
		OutputSlots: 9,
	}
}

// Describe renders r as one line, e.g. "IRON_INGOT x1 <- IRON_ORE x1 (200t, 0.7xp)".
func (c *Category) Describe(r catalogs.RecipeDef) string {
	var b strings.Builder
	b.WriteString(joinItems(r.Outputs))
	b.WriteString(" <- ")
	b.WriteString(joinItems(r.Inputs))
	fmt.Fprintf(&b, " (%dt", r.TimeTicks)
	if r.Experience > 0 {
		fmt.Fprintf(&b, ", %gxp", r.Experience)
	}
	b.WriteString(")")
	return b.String()
}

func joinItems(items []catalogs.ItemCount) string {
	if len(items) == 0 {
		return "nothing"
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", it.Item, it.Count))
	}
	return strings.Join(parts, " + ")
}

type CategoryRegistrar interface {
	AddCategory(c *Category)
}

type RecipeRegistrar interface {
	AddRecipes(categoryID string, rs []catalogs.RecipeDef)
}

// WorldSource returns the recipe catalog of the loaded world, or nil when none is loaded.
type WorldSource func() *catalogs.RecipeCatalog

type Viewer struct {
	World WorldSource

	category *Category
}

func (v *Viewer) UID() string { return PluginUID }

// RegisterCategories must run before RegisterRecipes.
func (v *Viewer) RegisterCategories(reg CategoryRegistrar) {
	v.category = NewCategory()
	reg.AddCategory(v.category)
}

func (v *Viewer) RegisterRecipes(reg RecipeRegistrar) error {
	if v.category == nil {
		return ErrCategoryNotRegistered
	}
	reg.AddRecipes(v.category.ID, v.Recipes())
	return nil
}

func (v *Viewer) Category() *Category { return v.category }

func (v *Viewer) Recipes() []catalogs.RecipeDef {
	if v.World == nil {
		return []catalogs.RecipeDef{}
	}
	cat := v.World()
	if cat == nil {
		return []catalogs.RecipeDef{}
	}
	return Sorted(*cat)
}

// Sorted returns the furnace recipes of cat ordered by primary output item,
// then by number of inputs, then by recipe id.
func Sorted(cat catalogs.RecipeCatalog) []catalogs.RecipeDef {
	out := make([]catalogs.RecipeDef, 0, len(cat.ByID))
	for _, r := range cat.ByID {
		if r.Station != StationFurnace && r.Station != StationJumboFurnace {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := primaryOutput(out[i]), primaryOutput(out[j])
		if a != b {
			return a < b
		}
		if len(out[i].Inputs) != len(out[j].Inputs) {
			return len(out[i].Inputs) < len(out[j].Inputs)
		}
		return out[i].RecipeID < out[j].RecipeID
	})
	return out
}

func primaryOutput(r catalogs.RecipeDef) string {
	if len(r.Outputs) == 0 {
		return ""
	}
	return r.Outputs[0].Item
}

// Index is an in-memory registrar, standing in for the viewer addon.
type Index struct {
	Categories []*Category
	ByCategory map[string][]catalogs.RecipeDef
}

func (x *Index) AddCategory(c *Category) {
	x.Categories = append(x.Categories, c)
}

func (x *Index) AddRecipes(categoryID string, rs []catalogs.RecipeDef) {
	if x.ByCategory == nil {
		x.ByCategory = map[string][]catalogs.RecipeDef{}
	}
	x.ByCategory[categoryID] = append(x.ByCategory[categoryID], rs...)
}
