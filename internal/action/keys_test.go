package action

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey_Matches(t *testing.T) {
	tests := []struct {
		spec  string
		event *tcell.EventKey
		want  bool
	}{
		{"ctrl+z", tcell.NewEventKey(tcell.KeyCtrlZ, 26, tcell.ModCtrl), true},
		{"ctrl+z", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModCtrl), true},
		{"ctrl+z", tcell.NewEventKey(tcell.KeyCtrlZ, 26, tcell.ModCtrl|tcell.ModShift), false},
		{"ctrl+shift+z", tcell.NewEventKey(tcell.KeyCtrlZ, 26, tcell.ModCtrl|tcell.ModShift), true},
		{"Ctrl+Shift+W", tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModCtrl), true},
		{"shift+r", tcell.NewEventKey(tcell.KeyRune, 'R', tcell.ModNone), true},
		{"R", tcell.NewEventKey(tcell.KeyRune, 'R', tcell.ModShift), true},
		{"r", tcell.NewEventKey(tcell.KeyRune, 'R', tcell.ModNone), false},
		{"?", tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModShift), true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, '\r', tcell.ModNone), true},
		{"ctrl+m", tcell.NewEventKey(tcell.KeyEnter, '\r', tcell.ModNone), false},
		{"tab", tcell.NewEventKey(tcell.KeyTab, '\t', tcell.ModNone), true},
		{"alt+left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModAlt), true},
		{"alt+left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), false},
		{"escape", tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone), true},
		{"ctrl++", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModCtrl), true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), true},
		{"+", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone), true},
	}
	for _, tt := range tests {
		t.Run(tt.spec+"/"+tt.event.Name(), func(t *testing.T) {
			ks, err := ParseKey(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ks.Matches(tt.event))
		})
	}
}

func TestParseKey_Errors(t *testing.T) {
	for _, spec := range []string{"", "ctrl+", "hyper+x", "ctrl+nosuchkey"} {
		_, err := ParseKey(spec)
		assert.ErrorIs(t, err, ErrInvalidAction, spec)
	}
	assert.Panics(t, func() { MustParseKey("hyper+x") })
}

func TestKeyStroke_String(t *testing.T) {
	assert.Equal(t, "Ctrl+Shift+W", MustParseKey("ctrl+shift+w").String())
	assert.Equal(t, "Alt+Left", MustParseKey("alt+left").String())
	assert.Equal(t, "Shift+R", MustParseKey("R").String())
	assert.Equal(t, "Space", MustParseKey("space").String())
	assert.Equal(t, "PgUp", MustParseKey("pageup").String())
}
