package store

import "testing"

func TestSelectionToggle(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("a")
	if !sel.Has("a") || sel.Len() != 1 {
		t.Fatal("toggle on failed")
	}
	sel.Toggle("a")
	if sel.Has("a") || sel.Len() != 0 {
		t.Fatal("toggle off failed")
	}
}

func TestToggleAllVisibleRoundTrip(t *testing.T) {
	sel := NewSelection()
	visible := []string{"a", "b", "c"}

	// 3 visible unselected records: first call selects all 3.
	sel.ToggleAllVisible(visible)
	for _, id := range visible {
		if !sel.Has(id) {
			t.Fatalf("%s not selected after first toggle", id)
		}
	}

	// Same visible set: second call deselects all 3.
	sel.ToggleAllVisible(visible)
	if sel.Len() != 0 {
		t.Fatalf("expected empty selection, have %d", sel.Len())
	}
}

func TestToggleAllVisibleLeavesHiddenAlone(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("hidden")

	sel.ToggleAllVisible([]string{"a", "b"})
	if !sel.Has("hidden") {
		t.Fatal("id outside visible set was touched")
	}
	if !sel.Has("a") || !sel.Has("b") {
		t.Fatal("visible ids not selected")
	}

	// Partial selection within the visible set selects the rest, not toggles.
	sel2 := NewSelection()
	sel2.Toggle("a")
	sel2.ToggleAllVisible([]string{"a", "b"})
	if !sel2.Has("a") || !sel2.Has("b") {
		t.Fatal("partially-selected visible set should become fully selected")
	}
}

func TestSelectionOrdered(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("c")
	sel.Toggle("a")
	sel.Toggle("gone")

	got := sel.Ordered([]string{"a", "b", "c"})
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("Ordered = %v, want collection order without stale ids", got)
	}
}
