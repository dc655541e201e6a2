package catalog

import (
	"testing"

	"github.com/electrofy/storefront-client/pkg/types"
)

func colorVariants() []types.ProductVariant {
	return []types.ProductVariant{
		{ID: "v-red", Attributes: map[string]string{"color": "red"}, IsDefault: true, IsActive: true},
		{ID: "v-blue", Attributes: map[string]string{"color": "blue"}, IsActive: true},
	}
}

func sizeColorVariants() []types.ProductVariant {
	return []types.ProductVariant{
		{ID: "red-s", Attributes: map[string]string{"color": "red", "size": "S"}, IsDefault: true, IsActive: true},
		{ID: "red-m", Attributes: map[string]string{"color": "red", "size": "M"}, IsActive: true},
		{ID: "blue-m", Attributes: map[string]string{"color": "blue", "size": "M"}, IsActive: true},
		{ID: "blue-l", Attributes: map[string]string{"color": "blue", "size": "L"}, IsActive: false},
	}
}

func TestResolveDefaultVariant(t *testing.T) {
	got := Resolve(colorVariants(), nil)
	if got == nil || got.ID != "v-red" {
		t.Fatalf("resolved %+v, want the default-active red variant", got)
	}
}

func TestResolveFallsBackToFirstActive(t *testing.T) {
	variants := []types.ProductVariant{
		{ID: "inactive", Attributes: map[string]string{"color": "red"}, IsDefault: true, IsActive: false},
		{ID: "active", Attributes: map[string]string{"color": "blue"}, IsActive: true},
	}
	got := Resolve(variants, nil)
	if got == nil || got.ID != "active" {
		t.Fatalf("resolved %+v, want the first active variant", got)
	}
}

func TestResolveNoneActive(t *testing.T) {
	variants := []types.ProductVariant{
		{ID: "a", Attributes: map[string]string{"color": "red"}, IsActive: false},
	}
	if got := Resolve(variants, nil); got != nil {
		t.Fatalf("resolved %+v, want nil when nothing is active", got)
	}
}

func TestResolveExactMatch(t *testing.T) {
	got := Resolve(sizeColorVariants(), map[string]string{"color": "blue", "size": "M"})
	if got == nil || got.ID != "blue-m" {
		t.Fatalf("resolved %+v, want blue-m", got)
	}
}

func TestResolveUnknownValueReturnsNil(t *testing.T) {
	if got := Resolve(colorVariants(), map[string]string{"color": "green"}); got != nil {
		t.Fatalf("resolved %+v, want nil for an unmatched selection", got)
	}
}

func TestResolveSkipsInactiveMatches(t *testing.T) {
	got := Resolve(sizeColorVariants(), map[string]string{"color": "blue", "size": "L"})
	if got != nil {
		t.Fatalf("resolved inactive variant %+v", got)
	}
}

func TestAttributeGroupsFirstAppearanceOrder(t *testing.T) {
	groups := AttributeGroups(sizeColorVariants())
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Key != "color" || groups[1].Key != "size" {
		t.Fatalf("group keys = %s,%s want color,size", groups[0].Key, groups[1].Key)
	}
	wantColors := []string{"red", "blue"}
	for i, want := range wantColors {
		if groups[0].Values[i] != want {
			t.Fatalf("color values = %v, want %v", groups[0].Values, wantColors)
		}
	}
	wantSizes := []string{"S", "M", "L"}
	for i, want := range wantSizes {
		if groups[1].Values[i] != want {
			t.Fatalf("size values = %v, want %v", groups[1].Values, wantSizes)
		}
	}
}

func TestIsValueAvailablePreventsDeadEnds(t *testing.T) {
	variants := sizeColorVariants()
	selection := map[string]string{"color": "blue"}

	if !IsValueAvailable(variants, selection, "size", "M") {
		t.Error("blue+M exists and is active, should be available")
	}
	if IsValueAvailable(variants, selection, "size", "S") {
		t.Error("blue+S does not exist, should be unavailable")
	}
	if IsValueAvailable(variants, selection, "size", "L") {
		t.Error("blue+L is inactive, should be unavailable")
	}
	// Switching the already-selected key is always re-evaluated as an
	// overwrite, not an accumulation.
	if !IsValueAvailable(variants, selection, "color", "red") {
		t.Error("changing color back to red should be available")
	}
}

func TestVariantSelectionNotifiesOnEverySelect(t *testing.T) {
	var notified []*types.ProductVariant
	selection := NewVariantSelection(sizeColorVariants(), func(v *types.ProductVariant) {
		notified = append(notified, v)
	})

	if len(notified) != 1 || notified[0] == nil || notified[0].ID != "red-s" {
		t.Fatalf("initial notification = %+v, want the default variant", notified)
	}

	resolved := selection.Select("color", "blue")
	if resolved == nil || resolved.ID != "blue-m" {
		t.Fatalf("resolved %+v, want the first active blue variant", resolved)
	}

	resolved = selection.Select("size", "S")
	if resolved != nil {
		t.Fatalf("blue+S matched %+v, want nil for a dead-end selection", resolved)
	}
	if len(notified) != 3 {
		t.Fatalf("got %d notifications, want 3", len(notified))
	}
}

func TestVariantSelectionOverwritesByKey(t *testing.T) {
	selection := NewVariantSelection(colorVariants(), nil)
	selection.Select("color", "red")
	selection.Select("color", "blue")

	selected := selection.Selected()
	if len(selected) != 1 || selected["color"] != "blue" {
		t.Fatalf("selection = %v, want single color=blue", selected)
	}
	if got := selection.Resolved(); got == nil || got.ID != "v-blue" {
		t.Fatalf("resolved %+v, want v-blue", got)
	}
}

func TestLabel(t *testing.T) {
	v := &types.ProductVariant{Attributes: map[string]string{"size": "M", "color": "blue"}}
	if got := Label(v); got != "color: blue, size: M" {
		t.Errorf("label = %q", got)
	}
	if got := Label(nil); got != "" {
		t.Errorf("nil label = %q, want empty", got)
	}
}
