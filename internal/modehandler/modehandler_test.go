package modehandler

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/actions"
	"github.com/bethropolis/chalk/internal/clipboard"
	"github.com/bethropolis/chalk/internal/history"
	"github.com/bethropolis/chalk/internal/input"
	"github.com/bethropolis/chalk/internal/scene"
	"github.com/bethropolis/chalk/internal/statusbar"
	"github.com/bethropolis/chalk/internal/store"
)

type fixture struct {
	mh      *ModeHandler
	store   *store.Store
	actions *action.Manager
	clip    *clipboard.Memory
	sb      *statusbar.StatusBar
	quit    chan struct{}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg := action.NewRegistry()
	require.NoError(t, actions.Register(reg))
	f := &fixture{
		store: store.New(scene.NewState(), history.NewManager(50), nil),
		clip:  &clipboard.Memory{},
		sb:    statusbar.New(statusbar.DefaultConfig()),
		quit:  make(chan struct{}),
	}
	f.actions = action.NewManager(reg, f.store)
	f.mh = New(Config{
		Actions:        f.actions,
		Store:          f.store,
		InputProcessor: input.NewProcessor(),
		Clipboard:      clipboard.NewManagerWithProvider(f.clip),
		StatusBar:      f.sb,
		QuitSignal:     f.quit,
	})
	return f
}

func (f *fixture) key(k tcell.Key, r rune, mod tcell.ModMask) bool {
	return f.mh.HandleKeyEvent(tcell.NewEventKey(k, r, mod))
}

func (f *fixture) typeText(s string) {
	for _, r := range s {
		f.key(tcell.KeyRune, r, tcell.ModNone)
	}
}

func (f *fixture) mouse(x, y int, btn tcell.ButtonMask, mod tcell.ModMask) bool {
	return f.mh.HandleMouseEvent(tcell.NewEventMouse(x, y, btn, mod), 20)
}

// statusLine renders the status bar and returns its text.
func (f *fixture) statusLine(t *testing.T) string {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	defer s.Fini()
	s.SetSize(60, 1)
	f.sb.Draw(s, 60, 1, nil)
	s.Show()
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.Write(cells[x].Bytes)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestNew_PanicsWithoutDependencies(t *testing.T) {
	assert.Panics(t, func() { New(Config{}) })
}

func TestHandleKeyEvent_ShortcutsAndHistoryCommands(t *testing.T) {
	f := newFixture(t)

	assert.True(t, f.key(tcell.KeyRune, 'R', tcell.ModNone))
	require.Len(t, f.store.State().Elements, 1)

	assert.True(t, f.key(tcell.KeyCtrlZ, 0, tcell.ModCtrl))
	assert.Empty(t, f.store.State().Elements)

	assert.True(t, f.key(tcell.KeyCtrlY, 0, tcell.ModCtrl))
	assert.Len(t, f.store.State().Elements, 1)

	f.key(tcell.KeyCtrlY, 0, tcell.ModCtrl)
	assert.Equal(t, "Already at newest change", f.statusLine(t))

	assert.False(t, f.key(tcell.KeyF12, 0, tcell.ModNone), "unbound keys need no redraw")
}

func TestHandleKeyEvent_CommitClosesPendingEdit(t *testing.T) {
	f := newFixture(t)
	f.key(tcell.KeyRune, ']', tcell.ModNone)
	require.True(t, f.store.History().Pending())

	f.key(tcell.KeyCtrlS, 0, tcell.ModCtrl)
	assert.False(t, f.store.History().Pending())
	past, _ := f.store.HistoryDepth()
	assert.Equal(t, 1, past)

	f.key(tcell.KeyCtrlS, 0, tcell.ModCtrl)
	assert.Equal(t, "Nothing to commit", f.statusLine(t))
}

func TestHandleKeyEvent_StyleClipboard(t *testing.T) {
	f := newFixture(t)

	f.key(tcell.KeyCtrlC, 0, tcell.ModCtrl|tcell.ModAlt)
	text, _ := f.clip.ReadAll()
	assert.Equal(t, "#1e1e1e", text)
	assert.Equal(t, "Copied #1e1e1e", f.statusLine(t))

	require.NoError(t, f.clip.WriteAll(" #1971C2\n"))
	f.key(tcell.KeyCtrlV, 0, tcell.ModCtrl|tcell.ModAlt)
	assert.Equal(t, "#1971c2", f.store.State().AppState.String(scene.FieldStrokeColor))

	require.NoError(t, f.clip.WriteAll("not a colour"))
	f.key(tcell.KeyCtrlV, 0, tcell.ModCtrl|tcell.ModAlt)
	assert.Equal(t, "#1971c2", f.store.State().AppState.String(scene.FieldStrokeColor))
	assert.Equal(t, "Clipboard does not hold a colour", f.statusLine(t))
}

func TestHandleKeyEvent_QuitOnce(t *testing.T) {
	f := newFixture(t)
	f.key(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	assert.NotPanics(t, func() { f.key(tcell.KeyCtrlC, 0, tcell.ModCtrl) })

	select {
	case <-f.quit:
	default:
		t.Fatal("quit signal not closed")
	}
}

func TestPalette_SearchAndExecuteWithArgument(t *testing.T) {
	f := newFixture(t)

	f.key(tcell.KeyRune, ':', tcell.ModNone)
	require.Equal(t, ModePalette, f.mh.GetCurrentMode())
	all, sel := f.mh.PaletteState()
	assert.Len(t, all, len(actions.All()))
	assert.Zero(t, sel)

	f.typeText("changeStrokeColor #e03131")
	assert.Equal(t, "changeStrokeColor #e03131", f.mh.PaletteQuery())
	results, _ := f.mh.PaletteState()
	require.NotEmpty(t, results)
	assert.Equal(t, "changeStrokeColor", results[0].Name)

	f.key(tcell.KeyEnter, 0, tcell.ModNone)
	assert.Equal(t, ModeNormal, f.mh.GetCurrentMode())
	assert.Equal(t, "#e03131", f.store.State().AppState.String(scene.FieldStrokeColor))
	assert.Empty(t, f.mh.PaletteQuery())
}

func TestPalette_NavigationAndCancel(t *testing.T) {
	f := newFixture(t)
	f.key(tcell.KeyRune, ':', tcell.ModNone)

	f.key(tcell.KeyDown, 0, tcell.ModNone)
	_, sel := f.mh.PaletteState()
	assert.Equal(t, 1, sel)

	f.key(tcell.KeyUp, 0, tcell.ModNone)
	f.key(tcell.KeyUp, 0, tcell.ModNone)
	_, sel = f.mh.PaletteState()
	assert.Equal(t, len(actions.All())-1, sel, "wraps around")

	f.key(tcell.KeyEscape, 0, tcell.ModNone)
	assert.Equal(t, ModeNormal, f.mh.GetCurrentMode())
	results, _ := f.mh.PaletteState()
	assert.Empty(t, results)

	f.key(tcell.KeyRune, ':', tcell.ModNone)
	f.typeText("x")
	f.key(tcell.KeyBackspace2, 0, tcell.ModNone)
	assert.Equal(t, ModePalette, f.mh.GetCurrentMode())
	f.key(tcell.KeyBackspace2, 0, tcell.ModNone)
	assert.Equal(t, ModeNormal, f.mh.GetCurrentMode())
}

func TestPalette_DisabledAndUnknown(t *testing.T) {
	f := newFixture(t)

	f.key(tcell.KeyRune, ':', tcell.ModNone)
	f.typeText("toggleViewMode")
	f.key(tcell.KeyEnter, 0, tcell.ModNone)
	require.True(t, f.store.State().AppState.Bool(scene.FieldViewModeEnabled))

	f.key(tcell.KeyRune, ':', tcell.ModNone)
	f.typeText("qqqqqqqq")
	f.key(tcell.KeyEnter, 0, tcell.ModNone)
	assert.Equal(t, `No action matches "qqqqqqqq"`, f.statusLine(t))
	assert.Equal(t, ModeNormal, f.mh.GetCurrentMode())
}

func TestMouse_DragIsOneUndoStep(t *testing.T) {
	f := newFixture(t)
	_, err := f.actions.Execute("addRectangle", action.SourceAPI, actions.Rect{X: 2, Y: 2, Width: 5, Height: 3})
	require.NoError(t, err)
	_, err = f.actions.Execute("clearSelection", action.SourceAPI, nil)
	require.NoError(t, err)
	id := f.store.State().Elements[0].ID

	assert.True(t, f.mouse(3, 3, tcell.Button1, tcell.ModNone))
	assert.Equal(t, []string{id}, f.store.State().SelectedIDs())

	f.mouse(4, 3, tcell.Button1, tcell.ModNone)
	f.mouse(5, 4, tcell.Button1, tcell.ModNone)
	assert.False(t, f.mouse(5, 4, tcell.Button1, tcell.ModNone), "no movement")
	assert.True(t, f.mouse(5, 4, tcell.ButtonNone, tcell.ModNone))

	el := f.store.State().Elements[0]
	assert.Equal(t, 4.0, el.X)
	assert.Equal(t, 3.0, el.Y)
	past, _ := f.store.HistoryDepth()
	assert.Equal(t, 2, past)

	f.key(tcell.KeyCtrlZ, 0, tcell.ModCtrl)
	el = f.store.State().Elements[0]
	assert.Equal(t, 2.0, el.X)
	assert.Equal(t, 2.0, el.Y)
}

func TestMouse_MissAndStatusRow(t *testing.T) {
	f := newFixture(t)
	_, err := f.actions.Execute("addRectangle", action.SourceAPI, actions.Rect{X: 2, Y: 2, Width: 5, Height: 3})
	require.NoError(t, err)
	require.Len(t, f.store.State().SelectedIDs(), 1)

	assert.False(t, f.mouse(3, 25, tcell.Button1, tcell.ModNone), "status row ignored")
	require.Len(t, f.store.State().SelectedIDs(), 1)

	f.mouse(30, 10, tcell.Button1, tcell.ModNone)
	assert.Empty(t, f.store.State().SelectedIDs())
	f.mouse(31, 11, tcell.Button1, tcell.ModNone)
	f.mouse(31, 11, tcell.ButtonNone, tcell.ModNone)
	assert.Equal(t, 2.0, f.store.State().Elements[0].X, "clicking empty canvas does not drag")
}

func TestHandlePaste(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.mh.HandlePaste("  \n"))
	assert.True(t, f.mh.HandlePaste("#2f9e44"))
	assert.Equal(t, "#2f9e44", f.store.State().AppState.String(scene.FieldStrokeColor))

	f.key(tcell.KeyRune, ':', tcell.ModNone)
	f.typeText("changeStrokeColor ")
	f.mh.HandlePaste("#e03131\n")
	assert.Equal(t, "changeStrokeColor #e03131", f.mh.PaletteQuery())
}
