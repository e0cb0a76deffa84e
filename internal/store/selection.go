package store

// Selection is the ephemeral set of selected record ids. It is UI state,
// never persisted: a restart always comes up with nothing selected.
type Selection struct {
	ids map[string]bool
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]bool)}
}

// Toggle flips the selection state of one id.
func (s *Selection) Toggle(id string) {
	if s.ids[id] {
		delete(s.ids, id)
		return
	}
	s.ids[id] = true
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	return s.ids[id]
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.ids)
}

// ToggleAllVisible applies the select-all semantics over the visible subset:
// if every visible id is already selected, all of them are deselected;
// otherwise all of them become selected. Ids outside visibleIDs are
// untouched either way.
func (s *Selection) ToggleAllVisible(visibleIDs []string) {
	if len(visibleIDs) == 0 {
		return
	}
	allSelected := true
	for _, id := range visibleIDs {
		if !s.ids[id] {
			allSelected = false
			break
		}
	}
	for _, id := range visibleIDs {
		if allSelected {
			delete(s.ids, id)
		} else {
			s.ids[id] = true
		}
	}
}

// Remove drops ids from the selection (used when records are deleted or
// transition to replied).
func (s *Selection) Remove(ids []string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = make(map[string]bool)
}

// Ordered returns the selected ids in the order given by collection, which
// callers pass as the current record order. Ids selected but no longer in
// the collection are dropped.
func (s *Selection) Ordered(collectionIDs []string) []string {
	var out []string
	for _, id := range collectionIDs {
		if s.ids[id] {
			out = append(out, id)
		}
	}
	return out
}
