package app

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/actions"
	"github.com/bethropolis/chalk/internal/clipboard"
	"github.com/bethropolis/chalk/internal/collab"
	"github.com/bethropolis/chalk/internal/config"
	"github.com/bethropolis/chalk/internal/scene"
	"github.com/bethropolis/chalk/plugins/stats"
)

// newTestApp builds an App on a simulation screen. The caller owns closing
// the screen unless closeScreen is true.
func newTestApp(t *testing.T, cfg *config.Config, closeScreen bool) (*App, tcell.SimulationScreen) {
	t.Helper()
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	s := tcell.NewSimulationScreen("UTF-8")
	a, err := NewApp(cfg, Options{Screen: s, Clipboard: &clipboard.Memory{}})
	require.NoError(t, err)
	s.SetSize(60, 10)
	if closeScreen {
		t.Cleanup(a.tuiManager.Close)
	}
	return a, s
}

func screenRow(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.Write(cells[y*w+x].Bytes)
	}
	return strings.TrimRight(b.String(), " ")
}

func keyEvent(k tcell.Key, r rune, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, r, mod)
}

func TestNewApp_WiresConfigPluginsAndKeys(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Editor.WhiteboardMode = true
	cfg.Editor.ViewportWidth = 120
	cfg.Keys = map[string][]string{
		"undo":         {"alt+u"},
		"addRectangle": {"alt+n"},
		"nope":         {"x"},
	}
	a, _ := newTestApp(t, cfg, true)

	st := a.Store().State()
	assert.True(t, st.AppState.Bool(scene.FieldWhiteboardMode))
	assert.Equal(t, 120.0, st.AppState.Float(scene.FieldViewportWidth))

	_, err := a.registry.Get(stats.ActionName)
	assert.NoError(t, err, "plugin actions are registered")

	assert.True(t, a.handleEvent(keyEvent(tcell.KeyRune, 'n', tcell.ModAlt)))
	assert.Len(t, a.Store().State().Elements, 1)
	a.handleEvent(keyEvent(tcell.KeyRune, 'u', tcell.ModAlt))
	assert.Empty(t, a.Store().State().Elements)

	a.handleEvent(keyEvent(tcell.KeyPgDn, 0, tcell.ModNone))
	assert.Equal(t, -120.0, a.Store().State().AppState.Float(scene.FieldScrollX))
}

func TestApp_DrawSceneAndStatus(t *testing.T) {
	a, s := newTestApp(t, nil, true)
	_, err := a.Actions().Execute("addRectangle", action.SourceAPI, actions.Rect{X: 1, Y: 0, Width: 4, Height: 3})
	require.NoError(t, err)

	a.drawEditor()
	assert.Equal(t, " ┌──┐", screenRow(s, 0))
	assert.Equal(t, " └──┘", screenRow(s, 2))
	assert.Contains(t, screenRow(s, 9), "1 elements, 1 selected -- undo 1 redo 0")

	a.handleEvent(keyEvent(tcell.KeyRune, ':', tcell.ModNone))
	a.drawEditor()
	assert.Equal(t, ":", screenRow(s, 9))
	assert.NotEmpty(t, screenRow(s, 8), "palette rows sit above the status bar")
}

func TestApp_StatsPluginReports(t *testing.T) {
	a, s := newTestApp(t, nil, true)
	_, err := a.Actions().Execute("addRectangle", action.SourceAPI, nil)
	require.NoError(t, err)

	a.handleEvent(keyEvent(tcell.KeyRune, 'i', tcell.ModAlt))
	a.drawEditor()
	assert.Equal(t, "Elements: 1 (rectangle 1), Selected: 1, Deleted: 0", screenRow(s, 9))
}

func TestApp_BracketedPasteIsNotTyped(t *testing.T) {
	a, _ := newTestApp(t, nil, true)

	assert.False(t, a.handleEvent(tcell.NewEventPaste(true)))
	for _, r := range "#2f9e44" {
		assert.False(t, a.handleEvent(keyEvent(tcell.KeyRune, r, tcell.ModNone)))
	}
	assert.True(t, a.handleEvent(tcell.NewEventPaste(false)))

	st := a.Store().State()
	assert.Equal(t, "#2f9e44", st.AppState.String(scene.FieldStrokeColor))
	assert.Equal(t, "selection", st.AppState.String(scene.FieldActiveTool), "'e' inside the paste did not pick the eraser")
}

func TestApp_ApplyRemote(t *testing.T) {
	a, _ := newTestApp(t, nil, true)
	el := scene.NewElement(scene.KindEllipse, 0, 0, 3, 3)

	sum, err := a.ApplyRemote(collab.RemoteUpdate{Elements: scene.Elements{el}})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Accepted)
	assert.Len(t, a.Store().State().Elements, 1)

	past, _ := a.Store().HistoryDepth()
	assert.Zero(t, past, "remote edits are not undoable locally")
}

func TestApp_RunQuits(t *testing.T) {
	a, _ := newTestApp(t, nil, false)

	done := make(chan error, 1)
	go func() { done <- a.Run() }()
	require.NoError(t, a.tuiManager.PostEvent(keyEvent(tcell.KeyCtrlQ, 0, tcell.ModCtrl)))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after quit")
	}
}
