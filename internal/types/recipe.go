package types

// Recipe kinds accepted from the crafting table.
const (
	RecipeShaped    = "crafting_shaped"
	RecipeShapeless = "crafting_shapeless"
)

// IngredientRef names one acceptable ingredient: exactly one of Item or Tag is set.
type IngredientRef struct {
	Item string `json:"item,omitempty"`
	Tag  string `json:"tag,omitempty"`
}

// IsTag reports whether the reference points at a tag
func (r IngredientRef) IsTag() bool {
	return r.Tag != ""
}

// Slot is a single ingredient position and the alternatives it accepts.
type Slot []IngredientRef

// Recipe is a decoded crafting-table recipe.
type Recipe struct {
	ID     string `json:"id"`   // file stem, e.g. "piston"
	Type   string `json:"type"` // RecipeShaped or RecipeShapeless
	Result string `json:"result,omitempty"`
	Slots  []Slot `json:"slots"`
}

// Name returns the result id when known, otherwise the recipe id.
func (r *Recipe) Name() string {
	if r.Result != "" {
		return r.Result
	}
	return r.ID
}
