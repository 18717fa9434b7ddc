package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/chalk/internal/theme"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func row(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.Write(cells[y*w+x].Bytes)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestStatusBar_DefaultLine(t *testing.T) {
	s := newScreen(t, 80, 3)
	sb := New(DefaultConfig())
	sb.SetScene(SceneInfo{Tool: "rectangle", Elements: 3, Selected: 1, Whiteboard: true})
	sb.SetHistory(2, 1, true)

	sb.Draw(s, 80, 3, &theme.ChalkDark)
	s.Show()
	assert.Equal(t, " RECTANGLE [whiteboard] 3 elements, 1 selected -- undo 2 redo 1 *", row(s, 2))
}

func TestStatusBar_MessageExpires(t *testing.T) {
	s := newScreen(t, 40, 2)
	sb := New(DefaultConfig())
	clock := time.Unix(1000, 0)
	sb.now = func() time.Time { return clock }

	sb.SetTemporaryMessage("Copied %s", "#e03131")
	sb.Draw(s, 40, 2, nil)
	s.Show()
	assert.Equal(t, "Copied #e03131", row(s, 1))

	clock = clock.Add(5 * time.Second)
	sb.Draw(s, 40, 2, nil)
	s.Show()
	assert.True(t, strings.HasPrefix(row(s, 1), " SELECTION "))
}

func TestStatusBar_PaletteAndTruncation(t *testing.T) {
	s := newScreen(t, 10, 1)
	sb := New(DefaultConfig())
	sb.SetTemporaryMessage("ignored while the palette is open")
	sb.SetPalette(true, "strokeWidth")

	sb.Draw(s, 10, 1, nil)
	s.Show()
	assert.Equal(t, ":strokeWid", row(s, 0))
}
