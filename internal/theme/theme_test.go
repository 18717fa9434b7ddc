package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    tcell.Color
		wantErr bool
	}{
		{"#e03131", tcell.NewRGBColor(0xe0, 0x31, 0x31), false},
		{"#FFF", tcell.NewRGBColor(255, 255, 255), false},
		{" Red ", tcell.ColorRed, false},
		{"transparent", tcell.ColorDefault, false},
		{"reset", tcell.ColorReset, false},
		{"#12345", tcell.ColorDefault, true},
		{"#zzzzzz", tcell.ColorDefault, true},
		{"chartreuse-ish", tcell.ColorDefault, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetStyle_Fallbacks(t *testing.T) {
	th := &Theme{Name: "t", Styles: map[string]tcell.Style{
		"Default":   tcell.StyleDefault.Bold(true),
		"StatusBar": tcell.StyleDefault.Italic(true),
	}}
	assert.Equal(t, th.Styles["StatusBar"], th.GetStyle("StatusBar.mode"))
	assert.Equal(t, th.Styles["Default"], th.GetStyle("Palette"))

	empty := &Theme{Name: "empty"}
	assert.Equal(t, tcell.StyleDefault, empty.GetStyle("Default"))
}

func TestElementStyle(t *testing.T) {
	th := &ChalkDark
	fg, _, _ := th.ElementStyle("#1971c2", 100).Decompose()
	assert.Equal(t, tcell.NewRGBColor(0x19, 0x71, 0xc2), fg)

	baseFg, _, _ := th.GetStyle("Element").Decompose()
	fg, _, attrs := th.ElementStyle("not a colour", 20).Decompose()
	assert.Equal(t, baseFg, fg)
	assert.NotZero(t, attrs&tcell.AttrDim)
}

func TestLoadThemeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paper.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
is_dark = false

[styles.Default]
fg = "#212529"
bg = "#f8f9fa"

[styles.Selection]
fg = "blue"
bold = true

[styles.Broken]
fg = "#nope"
`), 0o644))

	th, err := LoadThemeFromFile(path, &ChalkDark)
	require.NoError(t, err)
	assert.Equal(t, "paper", th.Name)
	assert.False(t, th.IsDark)

	fg, bg, _ := th.GetStyle("Default").Decompose()
	assert.Equal(t, tcell.NewRGBColor(0x21, 0x25, 0x29), fg)
	assert.Equal(t, tcell.NewRGBColor(0xf8, 0xf9, 0xfa), bg)

	fg, _, attrs := th.GetStyle("Selection").Decompose()
	assert.Equal(t, tcell.ColorBlue, fg)
	assert.NotZero(t, attrs&tcell.AttrBold)

	assert.NotContains(t, th.Styles, "Broken")
	assert.Equal(t, ChalkDark.Styles["Handle"], th.Styles["Handle"], "unset styles come from the base theme")

	_, err = LoadThemeFromFile(filepath.Join(t.TempDir(), "missing.toml"), nil)
	assert.Error(t, err)
}
