package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_DefaultBindings(t *testing.T) {
	p := NewProcessor()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Command
	}{
		{"ctrl+q", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), CommandQuit},
		{"ctrl+z raw control code", tcell.NewEventKey(tcell.KeyRune, 0x1a, tcell.ModNone), CommandUndo},
		{"ctrl+y", tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl), CommandRedo},
		{"ctrl+shift+z", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl|tcell.ModShift), CommandRedo},
		{"colon with shift", tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModShift), CommandPalette},
		{"ctrl+alt+v", tcell.NewEventKey(tcell.KeyCtrlV, 0, tcell.ModCtrl|tcell.ModAlt), CommandPasteStyle},
		{"plain z", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), CommandNone},
		{"escape belongs to actions", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), CommandNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ProcessEvent(tt.ev))
		})
	}
}

func TestProcessor_Bind(t *testing.T) {
	p := NewProcessor()
	require.NoError(t, p.Bind(CommandUndo, []string{"alt+u"}))
	assert.Equal(t, []string{"Alt+U"}, p.Keys(CommandUndo))
	assert.Equal(t, CommandNone, p.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl)))
	assert.Equal(t, CommandUndo, p.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModAlt)))

	assert.Error(t, p.Bind(CommandRedo, []string{"hyper+y"}))
	assert.Len(t, p.Keys(CommandRedo), 2, "failed bind keeps old keys")

	require.NoError(t, p.Bind(CommandCommit, nil))
	assert.Empty(t, p.Keys(CommandCommit))
}

func TestProcessor_PaletteEvents(t *testing.T) {
	p := NewProcessor()
	assert.Equal(t, PaletteEvent{Op: PaletteAppend, Rune: 'W'}, p.ProcessPaletteEvent(tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModShift)))
	assert.Equal(t, PaletteExecute, p.ProcessPaletteEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)).Op)
	assert.Equal(t, PaletteCancel, p.ProcessPaletteEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)).Op)
	assert.Equal(t, PaletteDeleteChar, p.ProcessPaletteEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone)).Op)
	assert.Equal(t, PaletteNext, p.ProcessPaletteEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)).Op)
	assert.Equal(t, PaletteIgnore, p.ProcessPaletteEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt)).Op)
}

func TestParseCommand(t *testing.T) {
	c, ok := ParseCommand("pasteStyle")
	assert.True(t, ok)
	assert.Equal(t, CommandPasteStyle, c)
	_, ok = ParseCommand("none")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Command(99).String())
}
