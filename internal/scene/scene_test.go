package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElement_MutateBumpsVersionAndKeepsOriginal(t *testing.T) {
	el := NewElement(KindRectangle, 0, 0, 10, 10)
	require.NotEmpty(t, el.ID)
	require.Equal(t, 1, el.Version)

	next := el.Mutate(func(e *Element) {
		e.StrokeColor = "#ff0000"
		e.ID = "hijacked"
	})

	assert.Equal(t, el.ID, next.ID)
	assert.Equal(t, 2, next.Version)
	assert.Equal(t, "#ff0000", next.StrokeColor)
	assert.Equal(t, "", el.StrokeColor, "original snapshot must not change")
}

func TestElements_CopyOnWrite(t *testing.T) {
	a := NewElement(KindRectangle, 0, 0, 1, 1)
	b := NewElement(KindEllipse, 5, 5, 1, 1)
	es := Elements{a}

	withB := es.Upsert(b)
	assert.Len(t, es, 1)
	assert.Len(t, withB, 2)

	removed := withB.Remove(a.ID)
	assert.Len(t, withB, 2)
	require.Len(t, removed, 1)
	assert.Equal(t, b.ID, removed[0].ID)

	reinserted := removed.Insert(0, a)
	assert.Equal(t, []string{a.ID, b.ID}, []string{reinserted[0].ID, reinserted[1].ID})

	clamped := removed.Insert(42, a)
	assert.Equal(t, a.ID, clamped[len(clamped)-1].ID)
}

func TestElements_UpdateOnlyTouchesListedIDs(t *testing.T) {
	a := NewElement(KindRectangle, 0, 0, 1, 1)
	b := NewElement(KindRectangle, 0, 0, 1, 1)
	es := Elements{a, b}

	next := es.Update([]string{b.ID}, func(e *Element) { e.Opacity = 20 })
	assert.Equal(t, a, next[0])
	assert.Equal(t, 20, next[1].Opacity)
	assert.Equal(t, 100, es[1].Opacity)
}

func TestElements_HitTestPrefersTopmost(t *testing.T) {
	bottom := NewElement(KindRectangle, 0, 0, 100, 100)
	top := NewElement(KindRectangle, 10, 10, 20, 20)
	es := Elements{bottom, top}

	hit, ok := es.HitTest(15, 15)
	require.True(t, ok)
	assert.Equal(t, top.ID, hit.ID)

	_, ok = es.HitTest(500, 500)
	assert.False(t, ok)
}

func TestAppState_SettersCopy(t *testing.T) {
	s := DefaultAppState()
	ids := []string{"a"}
	next := s.With(FieldSelectedElementIDs, ids)
	ids[0] = "mutated"

	assert.Equal(t, []string{"a"}, next.Strings(FieldSelectedElementIDs))
	assert.Empty(t, s.Strings(FieldSelectedElementIDs))
	assert.False(t, next.Without(FieldWhiteboardMode).Has(FieldWhiteboardMode))
	assert.True(t, next.Has(FieldWhiteboardMode))
}

func TestAppState_NumericGetters(t *testing.T) {
	s := AppState{"i": 3, "f": 2.5}
	assert.Equal(t, 3.0, s.Float("i"))
	assert.Equal(t, 2.5, s.Float("f"))
	assert.Equal(t, 2, s.Int("f"))
	assert.Equal(t, 0.0, s.Float("missing"))
}

func TestState_SelectionPrunesDanglingIDs(t *testing.T) {
	live := NewElement(KindRectangle, 0, 0, 1, 1)
	deleted := NewElement(KindRectangle, 0, 0, 1, 1)
	deleted.IsDeleted = true

	st := NewState()
	st.Elements = Elements{live, deleted}
	st.AppState = st.AppState.With(FieldSelectedElementIDs, []string{"ghost", live.ID, deleted.ID})

	assert.Equal(t, []string{live.ID}, st.SelectedIDs())
	assert.Len(t, st.Selected(), 1)

	pruned := st.PruneSelection()
	assert.Equal(t, []string{live.ID}, pruned.AppState.Strings(FieldSelectedElementIDs))
	assert.Len(t, st.AppState.Strings(FieldSelectedElementIDs), 3)
}
