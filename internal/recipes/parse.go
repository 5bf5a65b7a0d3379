package recipes

import (
	"fmt"
	"strings"

	"github.com/jonathan/craft-cover/internal/types"
	"github.com/tidwall/gjson"
)

// Kind returns the crafting kind of a recipe type such as
// "minecraft:crafting_shaped", or "" when it is not a crafting-table recipe.
func Kind(recipeType string) string {
	path := recipeType
	if i := strings.LastIndex(recipeType, ":"); i >= 0 {
		path = recipeType[i+1:]
	}
	switch path {
	case types.RecipeShaped, types.RecipeShapeless:
		return path
	}
	return ""
}

// IsCrafting reports whether a raw document is a shaped or shapeless crafting recipe.
func IsCrafting(doc []byte) bool {
	return Kind(gjson.GetBytes(doc, "type").String()) != ""
}

// Parse decodes a crafting recipe document. id names the recipe (usually the
// file stem) and path is used in error messages.
func Parse(id, path string, doc []byte) (*types.Recipe, error) {
	if !gjson.ValidBytes(doc) {
		return nil, &LoadError{Path: path, Message: "invalid JSON"}
	}

	root := gjson.ParseBytes(doc)
	typ := root.Get("type")
	if typ.Type != gjson.String {
		return nil, &LoadError{Path: path, Message: "expected string at path 'type'"}
	}
	kind := Kind(typ.String())
	if kind == "" {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("not a crafting recipe: %s", typ.String())}
	}

	recipe := &types.Recipe{
		ID:     id,
		Type:   kind,
		Result: parseResult(root.Get("result")),
	}

	var err error
	switch kind {
	case types.RecipeShaped:
		recipe.Slots, err = parseShaped(path, root)
	case types.RecipeShapeless:
		recipe.Slots, err = parseShapeless(path, root)
	}
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// parseShaped takes one slot per key entry, in document order.
func parseShaped(path string, root gjson.Result) ([]types.Slot, error) {
	key := root.Get("key")
	if !key.IsObject() {
		return nil, &LoadError{Path: path, Message: "expected object at path 'key'"}
	}

	var slots []types.Slot
	var err error
	key.ForEach(func(k, v gjson.Result) bool {
		var slot types.Slot
		slot, err = parseSlot(path, k.String(), v)
		if err != nil {
			return false
		}
		slots = append(slots, slot)
		return true
	})
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func parseShapeless(path string, root gjson.Result) ([]types.Slot, error) {
	ingredients := root.Get("ingredients")
	if !ingredients.IsArray() {
		return nil, &LoadError{Path: path, Message: "expected array at path 'ingredients'"}
	}

	arr := ingredients.Array()
	slots := make([]types.Slot, 0, len(arr))
	for i, v := range arr {
		slot, err := parseSlot(path, fmt.Sprintf("#%d", i), v)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// parseSlot accepts a single reference or a list of alternatives.
func parseSlot(path, slot string, v gjson.Result) (types.Slot, error) {
	if !v.IsArray() {
		ref, err := parseRef(path, slot, v)
		if err != nil {
			return nil, err
		}
		return types.Slot{ref}, nil
	}

	alts := v.Array()
	if len(alts) == 0 {
		return nil, &MalformedIngredientError{Path: path, Slot: slot, Message: "empty list of alternatives"}
	}
	out := make(types.Slot, 0, len(alts))
	for _, alt := range alts {
		if alt.IsArray() {
			return nil, &MalformedIngredientError{Path: path, Slot: slot, Message: "nested list of alternatives"}
		}
		ref, err := parseRef(path, slot, alt)
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}

// parseRef decodes {"item": id}, {"tag": name}, "id" or "#name".
func parseRef(path, slot string, v gjson.Result) (types.IngredientRef, error) {
	switch {
	case v.Type == gjson.String:
		s := v.String()
		if s == "" {
			return types.IngredientRef{}, &MalformedIngredientError{Path: path, Slot: slot, Message: "empty ingredient name"}
		}
		if strings.HasPrefix(s, "#") {
			return types.IngredientRef{Tag: s[1:]}, nil
		}
		return types.IngredientRef{Item: s}, nil

	case v.IsObject():
		fields := v.Map()
		if len(fields) != 1 {
			return types.IngredientRef{}, &MalformedIngredientError{
				Path:    path,
				Slot:    slot,
				Message: fmt.Sprintf("expected exactly one of 'item' or 'tag', found %d field(s)", len(fields)),
			}
		}
		for name, value := range fields {
			if value.Type != gjson.String || value.String() == "" {
				return types.IngredientRef{}, &MalformedIngredientError{Path: path, Slot: slot, Message: fmt.Sprintf("'%s' must be a non-empty string", name)}
			}
			switch name {
			case "item":
				return types.IngredientRef{Item: value.String()}, nil
			case "tag":
				return types.IngredientRef{Tag: value.String()}, nil
			}
			return types.IngredientRef{}, &MalformedIngredientError{Path: path, Slot: slot, Message: fmt.Sprintf("invalid ingredient type %q", name)}
		}
	}

	return types.IngredientRef{}, &MalformedIngredientError{
		Path:    path,
		Slot:    slot,
		Message: fmt.Sprintf("unexpected ingredient value %s", v.Raw),
	}
}

// parseResult reads {"id": ...}, {"item": ...} or a bare string.
func parseResult(v gjson.Result) string {
	switch {
	case v.Type == gjson.String:
		return v.String()
	case v.IsObject():
		if id := v.Get("id"); id.Exists() {
			return id.String()
		}
		return v.Get("item").String()
	}
	return ""
}
