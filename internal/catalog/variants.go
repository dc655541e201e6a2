package catalog

import (
	"sort"
	"strings"

	"github.com/electrofy/storefront-client/pkg/types"
)

// AttributeGroup is one selectable attribute (e.g. color) with its values in
// first-appearance order across the product's variants.
type AttributeGroup struct {
	Key    string
	Values []string
}

// AttributeGroups collects the attribute keys and values observed across all
// variants, keys and values both in first-appearance order.
func AttributeGroups(variants []types.ProductVariant) []AttributeGroup {
	var keys []string
	valuesByKey := make(map[string][]string)
	seen := make(map[string]map[string]struct{})

	for _, v := range variants {
		// Iterate the variant's keys deterministically; Go maps have no
		// insertion order to preserve.
		variantKeys := make([]string, 0, len(v.Attributes))
		for key := range v.Attributes {
			variantKeys = append(variantKeys, key)
		}
		sort.Strings(variantKeys)

		for _, key := range variantKeys {
			if _, ok := seen[key]; !ok {
				seen[key] = make(map[string]struct{})
				keys = append(keys, key)
			}
			value := v.Attributes[key]
			if _, ok := seen[key][value]; !ok {
				seen[key][value] = struct{}{}
				valuesByKey[key] = append(valuesByKey[key], value)
			}
		}
	}

	groups := make([]AttributeGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, AttributeGroup{Key: key, Values: valuesByKey[key]})
	}
	return groups
}

// Resolve maps a partial or full attribute selection to the unique active
// variant matching every selected key. With an empty selection it returns the
// default-active variant, falling back to the first active variant, then nil.
func Resolve(variants []types.ProductVariant, selection map[string]string) *types.ProductVariant {
	if len(selection) == 0 {
		for i := range variants {
			if variants[i].IsDefault && variants[i].IsActive {
				return &variants[i]
			}
		}
		for i := range variants {
			if variants[i].IsActive {
				return &variants[i]
			}
		}
		return nil
	}

	for i := range variants {
		if variants[i].IsActive && matchesSelection(variants[i], selection) {
			return &variants[i]
		}
	}
	return nil
}

func matchesSelection(v types.ProductVariant, selection map[string]string) bool {
	for key, want := range selection {
		if v.Attributes[key] != want {
			return false
		}
	}
	return true
}

// IsValueAvailable reports whether choosing value for key, on top of the
// current selection, still leads to at least one active variant. The panel
// disables values that would dead-end the selection.
func IsValueAvailable(variants []types.ProductVariant, selection map[string]string, key, value string) bool {
	candidate := make(map[string]string, len(selection)+1)
	for k, v := range selection {
		candidate[k] = v
	}
	candidate[key] = value

	for i := range variants {
		if variants[i].IsActive && matchesSelection(variants[i], candidate) {
			return true
		}
	}
	return false
}

// VariantSelection tracks the attribute choices for one product and notifies
// on every re-resolution. It is presentation-layer state, not store state.
type VariantSelection struct {
	variants []types.ProductVariant
	selected map[string]string
	onChange func(*types.ProductVariant)
}

// NewVariantSelection builds a selection over a product's variants. onChange
// may be nil; when set it fires with the initially resolved variant and after
// every Select call.
func NewVariantSelection(variants []types.ProductVariant, onChange func(*types.ProductVariant)) *VariantSelection {
	s := &VariantSelection{
		variants: variants,
		selected: make(map[string]string),
		onChange: onChange,
	}
	if s.onChange != nil {
		s.onChange(s.Resolved())
	}
	return s
}

// Select records a value for an attribute key, overwriting any prior value
// for that key, and re-resolves.
func (s *VariantSelection) Select(key, value string) *types.ProductVariant {
	s.selected[key] = value
	resolved := s.Resolved()
	if s.onChange != nil {
		s.onChange(resolved)
	}
	return resolved
}

// Resolved returns the variant matching the current selection, or nil.
func (s *VariantSelection) Resolved() *types.ProductVariant {
	return Resolve(s.variants, s.selected)
}

// Selected returns a copy of the current selection map.
func (s *VariantSelection) Selected() map[string]string {
	out := make(map[string]string, len(s.selected))
	for k, v := range s.selected {
		out[k] = v
	}
	return out
}

// Groups returns the attribute groups for the selection's variants.
func (s *VariantSelection) Groups() []AttributeGroup {
	return AttributeGroups(s.variants)
}

// Available reports whether a value remains selectable given the current
// choices for the other attribute keys.
func (s *VariantSelection) Available(key, value string) bool {
	return IsValueAvailable(s.variants, s.selected, key, value)
}

// Label renders a variant's attributes as "key: value" pairs for display.
func Label(v *types.ProductVariant) string {
	if v == nil || len(v.Attributes) == 0 {
		return ""
	}
	keys := make([]string, 0, len(v.Attributes))
	for key := range v.Attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+v.Attributes[key])
	}
	return strings.Join(parts, ", ")
}
