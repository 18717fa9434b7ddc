// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/chalk/internal/logger"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the named style, falling back to the part before the
// first dot ("StatusBar.mode" -> "StatusBar") and then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// ElementStyle is the "Element" style drawn in the element's stroke colour.
// Faint elements (opacity below 50) are dimmed; colours the terminal
// cannot show keep the theme foreground.
func (t *Theme) ElementStyle(strokeColor string, opacity int) tcell.Style {
	style := t.GetStyle("Element")
	if c, err := ParseColor(strokeColor); err == nil && c != tcell.ColorDefault && c != tcell.ColorReset {
		style = style.Foreground(c)
	}
	if opacity < 50 {
		style = style.Dim(true)
	}
	return style
}

// --- Chalk Dark ---

var ChalkDark Theme

func init() {
	background := tcell.NewHexColor(0x1e1e1e)
	panel := tcell.NewHexColor(0x2b2d31)
	foreground := tcell.NewHexColor(0xced4da)
	muted := tcell.NewHexColor(0x6c757d)
	accent := tcell.NewHexColor(0x6965db) // selection violet
	yellow := tcell.NewHexColor(0xf08c00)
	green := tcell.NewHexColor(0x2f9e44)

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)

	ChalkDark = Theme{
		Name:   "Chalk Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":   baseStyle,
			"Canvas":    baseStyle,
			"Element":   baseStyle,
			"Selection": baseStyle.Foreground(accent).Bold(true),
			"Handle":    tcell.StyleDefault.Background(accent).Foreground(background),

			"StatusBar":         tcell.StyleDefault.Background(panel).Foreground(foreground),
			"StatusBar.mode":    tcell.StyleDefault.Background(panel).Foreground(green).Bold(true),
			"StatusBar.pending": tcell.StyleDefault.Background(panel).Foreground(yellow),
			"StatusBarMessage":  tcell.StyleDefault.Background(panel).Foreground(foreground).Bold(true),
			"StatusBarPalette":  tcell.StyleDefault.Background(panel).Foreground(green).Bold(true),

			"Palette":          tcell.StyleDefault.Background(panel).Foreground(foreground),
			"Palette.selected": tcell.StyleDefault.Background(accent).Foreground(background).Bold(true),
			"Palette.disabled": tcell.StyleDefault.Background(panel).Foreground(muted),
			"Palette.shortcut": tcell.StyleDefault.Background(panel).Foreground(muted).Italic(true),
		},
	}

	CurrentTheme = &ChalkDark
}

var CurrentTheme *Theme

func GetCurrentTheme() *Theme {
	if CurrentTheme == nil {
		CurrentTheme = &ChalkDark
	}
	return CurrentTheme
}

func SetCurrentTheme(theme *Theme) {
	if theme != nil {
		CurrentTheme = theme
		logger.Infof("Theme switched to: %s", theme.Name)
	}
}
