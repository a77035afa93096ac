package pictable

import (
	"reflect"
	"testing"
)

func TestStyleAssignerAssign(t *testing.T) {
	assigner := NewStyleAssigner()

	for _, columnCount := range []int{1, 3, numStyles, numStyles * 3} {
		styles := assigner.Assign(columnCount)
		if len(styles) != columnCount {
			t.Errorf("Assign(%d) returned %d styles", columnCount, len(styles))
		}
		for i, style := range styles {
			if style < 0 || int(style) >= numStyles {
				t.Errorf("Assign(%d)[%d] = %d outside palette", columnCount, i, style)
			}
		}
	}

	if got := assigner.Assign(0); got != nil {
		t.Errorf("Assign(0) = %v, want nil", got)
	}
}

func TestStyleAssignerReproducible(t *testing.T) {
	first := NewStyleAssigner().Assign(12)
	second := NewStyleAssigner().Assign(12)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("default assignment not reproducible: %v != %v", first, second)
	}

	seeded := NewStyleAssigner().WithSeed(42)
	if !reflect.DeepEqual(seeded.Assign(8), NewStyleAssigner().WithSeed(42).Assign(8)) {
		t.Error("same seed must yield same assignment")
	}
	if reflect.DeepEqual(NewStyleAssigner().WithSeed(1).Assign(64), NewStyleAssigner().WithSeed(2).Assign(64)) {
		t.Error("different seeds should yield different assignment for 64 columns")
	}
}

func TestPalette(t *testing.T) {
	palette := Palette()
	if len(palette) != numStyles {
		t.Fatalf("Palette() has %d entries, want %d", len(palette), numStyles)
	}
	seen := make(map[string]bool)
	for _, style := range palette {
		if style.String() == "invalid Style" {
			t.Errorf("style %d has no name", style)
		}
		bg := style.Background()
		key := style.String()
		if seen[key] {
			t.Errorf("duplicate style name %q", key)
		}
		seen[key] = true
		if bg.A != 0xFF {
			t.Errorf("style %s background not opaque", style)
		}
	}
}
