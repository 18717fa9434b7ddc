package history

import (
	"maps"
	"slices"
	"sort"

	"github.com/bethropolis/chalk/internal/scene"
)

// ElementChange is the before/after snapshot of one element.
// A nil side means the element did not exist on that side.
type ElementChange struct {
	Before      *scene.Element
	After       *scene.Element
	BeforeIndex int
	AfterIndex  int
}

// FieldChange is the before/after value of one application state field.
type FieldChange struct {
	Before    any
	After     any
	HadBefore bool
	HasAfter  bool
}

// Delta is a reversible description of the difference between two states.
// It is never modified after creation; Merge returns a new Delta.
type Delta struct {
	Elements map[string]ElementChange
	AppState map[string]FieldChange
}

// Diff computes the delta turning prev into next.
// Pure reorders of otherwise unchanged elements are not recorded.
func Diff(prev, next scene.State) Delta {
	d := Delta{
		Elements: make(map[string]ElementChange),
		AppState: make(map[string]FieldChange),
	}

	nextIndex := make(map[string]int, len(next.Elements))
	for i, el := range next.Elements {
		nextIndex[el.ID] = i
	}
	prevIndex := make(map[string]int, len(prev.Elements))
	for i, el := range prev.Elements {
		prevIndex[el.ID] = i
		before := el
		j, ok := nextIndex[el.ID]
		if !ok {
			d.Elements[el.ID] = ElementChange{Before: &before, BeforeIndex: i, AfterIndex: -1}
			continue
		}
		after := next.Elements[j]
		if after != before {
			d.Elements[el.ID] = ElementChange{Before: &before, After: &after, BeforeIndex: i, AfterIndex: j}
		}
	}
	for j, el := range next.Elements {
		if _, ok := prevIndex[el.ID]; ok {
			continue
		}
		after := el
		d.Elements[el.ID] = ElementChange{After: &after, BeforeIndex: -1, AfterIndex: j}
	}

	for key, before := range prev.AppState {
		after, ok := next.AppState[key]
		if !ok {
			d.AppState[key] = FieldChange{Before: before, HadBefore: true}
			continue
		}
		if !scene.ValuesEqual(before, after) {
			d.AppState[key] = FieldChange{Before: before, After: after, HadBefore: true, HasAfter: true}
		}
	}
	for key, after := range next.AppState {
		if _, ok := prev.AppState[key]; !ok {
			d.AppState[key] = FieldChange{After: after, HasAfter: true}
		}
	}
	return d
}

// IsEmpty reports whether the delta changes nothing.
func (d Delta) IsEmpty() bool {
	return len(d.Elements) == 0 && len(d.AppState) == 0
}

// Clone returns a deep copy of d that shares nothing with it.
func (d Delta) Clone() Delta {
	c := Delta{
		Elements: make(map[string]ElementChange, len(d.Elements)),
		AppState: make(map[string]FieldChange, len(d.AppState)),
	}
	for id, ch := range d.Elements {
		if ch.Before != nil {
			before := *ch.Before
			ch.Before = &before
		}
		if ch.After != nil {
			after := *ch.After
			ch.After = &after
		}
		c.Elements[id] = ch
	}
	for key, ch := range d.AppState {
		ch.Before = cloneField(ch.Before)
		ch.After = cloneField(ch.After)
		c.AppState[key] = ch
	}
	return c
}

// cloneField copies the only mutable field value kind, []string.
func cloneField(v any) any {
	if s, ok := v.([]string); ok {
		return slices.Clone(s)
	}
	return v
}

// ElementIDs returns the changed element ids, sorted.
func (d Delta) ElementIDs() []string {
	return slices.Sorted(maps.Keys(d.Elements))
}

// Fields returns the changed application state fields, sorted.
func (d Delta) Fields() []string {
	return slices.Sorted(maps.Keys(d.AppState))
}

// Merge folds a later delta into d: the earliest before-side is kept and the
// latest after-side wins. Entries that end up where they started are dropped.
func (d Delta) Merge(later Delta) Delta {
	out := Delta{
		Elements: maps.Clone(d.Elements),
		AppState: maps.Clone(d.AppState),
	}
	if out.Elements == nil {
		out.Elements = make(map[string]ElementChange)
	}
	if out.AppState == nil {
		out.AppState = make(map[string]FieldChange)
	}

	for id, change := range later.Elements {
		existing, ok := out.Elements[id]
		if !ok {
			out.Elements[id] = change
			continue
		}
		existing.After = change.After
		existing.AfterIndex = change.AfterIndex
		if elementUnchanged(existing) {
			delete(out.Elements, id)
			continue
		}
		out.Elements[id] = existing
	}

	for key, change := range later.AppState {
		existing, ok := out.AppState[key]
		if !ok {
			out.AppState[key] = change
			continue
		}
		existing.After = change.After
		existing.HasAfter = change.HasAfter
		if existing.HadBefore == existing.HasAfter && (!existing.HadBefore || scene.ValuesEqual(existing.Before, existing.After)) {
			delete(out.AppState, key)
			continue
		}
		out.AppState[key] = existing
	}
	return out
}

// Revert applies the before-side of d to state.
func (d Delta) Revert(state scene.State) scene.State {
	return d.apply(state, true)
}

// Apply applies the after-side of d to state.
func (d Delta) Apply(state scene.State) scene.State {
	return d.apply(state, false)
}

type placement struct {
	index int
	el    scene.Element
}

func (d Delta) apply(state scene.State, backwards bool) scene.State {
	elements := state.Elements.Clone()

	var inserts []placement
	for _, id := range d.ElementIDs() {
		change := d.Elements[id]
		target, index := change.After, change.AfterIndex
		if backwards {
			target, index = change.Before, change.BeforeIndex
		}
		if target == nil {
			elements = elements.Remove(id)
			continue
		}
		inserts = append(inserts, placement{index: index, el: *target})
	}
	// Ascending target index keeps earlier positions valid for later inserts.
	sort.SliceStable(inserts, func(i, j int) bool { return inserts[i].index < inserts[j].index })
	for _, p := range inserts {
		elements = elements.Insert(p.index, p.el)
	}

	appState := state.AppState.Clone()
	for key, change := range d.AppState {
		value, present := change.After, change.HasAfter
		if backwards {
			value, present = change.Before, change.HadBefore
		}
		if present {
			appState = appState.With(key, value)
		} else {
			delete(appState, key)
		}
	}

	return scene.State{Elements: elements, AppState: appState}
}

func elementUnchanged(c ElementChange) bool {
	if c.Before == nil || c.After == nil {
		return c.Before == nil && c.After == nil
	}
	a, b := *c.Before, *c.After
	// Version bookkeeping alone does not make an undo step.
	a.Version, a.VersionNonce, a.Updated = 0, 0, 0
	b.Version, b.VersionNonce, b.Updated = 0, 0, 0
	return a == b && c.BeforeIndex == c.AfterIndex
}
