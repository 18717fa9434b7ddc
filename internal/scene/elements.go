package scene

import "slices"

// Elements is the ordered element collection. IDs are unique.
// Every method returns a new slice and leaves the receiver untouched.
type Elements []Element

// Index returns the position of id, or -1.
func (es Elements) Index(id string) int {
	for i := range es {
		if es[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the element with the given id.
func (es Elements) Get(id string) (Element, bool) {
	if i := es.Index(id); i >= 0 {
		return es[i], true
	}
	return Element{}, false
}

// Clone returns a shallow copy; elements are values so this is a full snapshot.
func (es Elements) Clone() Elements {
	if es == nil {
		return Elements{}
	}
	return slices.Clone(es)
}

// Upsert replaces the element with the same id in place, or appends it.
func (es Elements) Upsert(el Element) Elements {
	next := es.Clone()
	if i := next.Index(el.ID); i >= 0 {
		next[i] = el
		return next
	}
	return append(next, el)
}

// Insert places el at index (clamped). An existing element with the same id
// is replaced where it stands instead.
func (es Elements) Insert(index int, el Element) Elements {
	next := es.Clone()
	if i := next.Index(el.ID); i >= 0 {
		next[i] = el
		return next
	}
	index = max(0, min(index, len(next)))
	return slices.Insert(next, index, el)
}

// Remove drops the element with the given id.
func (es Elements) Remove(id string) Elements {
	next := es.Clone()
	if i := next.Index(id); i >= 0 {
		return slices.Delete(next, i, i+1)
	}
	return next
}

// Visible returns the elements that are not deleted.
func (es Elements) Visible() Elements {
	out := make(Elements, 0, len(es))
	for _, el := range es {
		if !el.IsDeleted {
			out = append(out, el)
		}
	}
	return out
}

// Update applies fn through Element.Mutate to every element whose id is in ids.
func (es Elements) Update(ids []string, fn func(*Element)) Elements {
	next := es.Clone()
	if len(ids) == 0 {
		return next
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	for i := range next {
		if _, ok := want[next[i].ID]; ok {
			next[i] = next[i].Mutate(fn)
		}
	}
	return next
}

// HitTest returns the topmost visible element containing the point.
func (es Elements) HitTest(x, y float64) (Element, bool) {
	for i := len(es) - 1; i >= 0; i-- {
		if !es[i].IsDeleted && es[i].Contains(x, y) {
			return es[i], true
		}
	}
	return Element{}, false
}
