package scene

// State is the Document State: elements plus application state.
type State struct {
	Elements Elements
	AppState AppState
}

// NewState returns an empty scene with default application state.
func NewState() State {
	return State{
		Elements: Elements{},
		AppState: DefaultAppState(),
	}
}

// Clone returns an independent copy.
func (s State) Clone() State {
	return State{
		Elements: s.Elements.Clone(),
		AppState: s.AppState.Clone(),
	}
}

// SelectedIDs returns the selected ids that still reference a live element.
// Dangling ids are skipped here rather than eagerly removed on every change.
func (s State) SelectedIDs() []string {
	ids := s.AppState.Strings(FieldSelectedElementIDs)
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if el, ok := s.Elements.Get(id); ok && !el.IsDeleted {
			out = append(out, id)
		}
	}
	return out
}

// Selected returns the live selected elements in collection order.
func (s State) Selected() Elements {
	ids := s.SelectedIDs()
	if len(ids) == 0 {
		return Elements{}
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make(Elements, 0, len(ids))
	for _, el := range s.Elements {
		if _, ok := want[el.ID]; ok {
			out = append(out, el)
		}
	}
	return out
}

// PruneSelection returns a copy whose selection holds only live ids.
func (s State) PruneSelection() State {
	live := s.SelectedIDs()
	if len(live) == len(s.AppState.Strings(FieldSelectedElementIDs)) {
		return s
	}
	return State{Elements: s.Elements, AppState: s.AppState.With(FieldSelectedElementIDs, live)}
}
