// internal/tui/drawing.go
package tui

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/scene"
	"github.com/bethropolis/chalk/internal/theme"
)

// One scene unit is one terminal cell. scrollX shifts the scene right.

// border holds the runes of a box outline.
type border struct {
	h, v, tl, tr, bl, br rune
}

var borders = map[string]border{
	scene.KindRectangle: {'─', '│', '┌', '┐', '└', '┘'},
	scene.KindEllipse:   {'─', '│', '╭', '╮', '╰', '╯'},
	scene.KindDiamond:   {'╌', '╎', '◇', '◇', '◇', '◇'},
	scene.KindImage:     {'═', '║', '╔', '╗', '╚', '╝'},
	scene.KindText:      {' ', ' ', ' ', ' ', ' ', ' '},
}

// Rect is an element's footprint in screen cells, inclusive.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// ElementRect maps an element to screen cells.
func ElementRect(el scene.Element, scrollX float64) Rect {
	x, w := el.X, el.Width
	if w < 0 {
		x, w = x+w, -w
	}
	y, h := el.Y, el.Height
	if h < 0 {
		y, h = y+h, -h
	}
	x0 := int(math.Round(x + scrollX))
	y0 := int(math.Round(y))
	return Rect{
		X0: x0,
		Y0: y0,
		X1: x0 + max(1, int(math.Round(w))) - 1,
		Y1: y0 + max(1, int(math.Round(h))) - 1,
	}
}

// ScreenToScene converts a cell to scene coordinates.
func ScreenToScene(x, y int, scrollX float64) (float64, float64) {
	return float64(x) - scrollX, float64(y)
}

// DrawScene draws the visible elements in collection order, so later
// elements paint over earlier ones. Rows from viewHeight down are left alone.
func DrawScene(t *TUI, st scene.State, activeTheme *theme.Theme, viewHeight int) {
	if activeTheme == nil {
		activeTheme = theme.GetCurrentTheme()
	}
	width, _ := t.Size()
	if viewHeight <= 0 || width <= 0 {
		return
	}

	canvas := activeTheme.GetStyle("Canvas")
	if c, err := theme.ParseColor(st.AppState.String(scene.FieldViewBackgroundColor)); err == nil && !activeTheme.IsDark {
		canvas = canvas.Background(c)
	}
	for y := 0; y < viewHeight; y++ {
		for x := 0; x < width; x++ {
			t.screen.SetContent(x, y, ' ', nil, canvas)
		}
	}

	scrollX := st.AppState.Float(scene.FieldScrollX)
	selected := make(map[string]bool)
	for _, id := range st.SelectedIDs() {
		selected[id] = true
	}

	clip := Rect{0, 0, width - 1, viewHeight - 1}
	for _, el := range st.Elements {
		if el.IsDeleted {
			continue
		}
		style := activeTheme.ElementStyle(el.StrokeColor, el.Opacity)
		if selected[el.ID] {
			style = activeTheme.GetStyle("Selection")
		}
		r := ElementRect(el, scrollX)
		drawElement(t.screen, el, r, clip, style, canvas)
		if selected[el.ID] {
			drawHandles(t.screen, r, clip, activeTheme.GetStyle("Handle"))
		}
	}
}

func drawElement(s tcell.Screen, el scene.Element, r, clip Rect, style, canvas tcell.Style) {
	set := func(x, y int, ch rune, st tcell.Style) {
		if x >= clip.X0 && x <= clip.X1 && y >= clip.Y0 && y <= clip.Y1 {
			s.SetContent(x, y, ch, nil, st)
		}
	}

	switch el.Type {
	case scene.KindLine, scene.KindArrow:
		for x := r.X0; x <= r.X1; x++ {
			set(x, r.Y0, '─', style)
		}
		if el.Type == scene.KindArrow {
			set(r.X1, r.Y0, '▶', style)
		}
		return
	case scene.KindFreedraw:
		for x := r.X0; x <= r.X1; x++ {
			set(x, r.Y0, '~', style)
		}
		return
	}

	if c, err := theme.ParseColor(el.BackgroundColor); err == nil && c != tcell.ColorDefault {
		fill := canvas.Background(c)
		for y := r.Y0 + 1; y < r.Y1; y++ {
			for x := r.X0 + 1; x < r.X1; x++ {
				set(x, y, ' ', fill)
			}
		}
	}

	b, ok := borders[el.Type]
	if !ok {
		b = borders[scene.KindRectangle]
	}
	if r.X0 == r.X1 || r.Y0 == r.Y1 {
		for y := r.Y0; y <= r.Y1; y++ {
			for x := r.X0; x <= r.X1; x++ {
				set(x, y, '■', style)
			}
		}
		return
	}
	for x := r.X0 + 1; x < r.X1; x++ {
		set(x, r.Y0, b.h, style)
		set(x, r.Y1, b.h, style)
	}
	for y := r.Y0 + 1; y < r.Y1; y++ {
		set(r.X0, y, b.v, style)
		set(r.X1, y, b.v, style)
	}
	set(r.X0, r.Y0, b.tl, style)
	set(r.X1, r.Y0, b.tr, style)
	set(r.X0, r.Y1, b.bl, style)
	set(r.X1, r.Y1, b.br, style)
	if el.Type == scene.KindText {
		set(r.X0, r.Y0, 'T', style)
	}
}

func drawHandles(s tcell.Screen, r, clip Rect, style tcell.Style) {
	for _, p := range [][2]int{{r.X0, r.Y0}, {r.X1, r.Y0}, {r.X0, r.Y1}, {r.X1, r.Y1}} {
		if p[0] >= clip.X0 && p[0] <= clip.X1 && p[1] >= clip.Y0 && p[1] <= clip.Y1 {
			mainc, comb, _, _ := s.GetContent(p[0], p[1])
			s.SetContent(p[0], p[1], mainc, comb, style)
		}
	}
}

// PaletteRows is how many results the palette shows at most.
const PaletteRows = 8

// DrawPalette draws the palette results as a list just above the status
// bar. selected indexes items.
func DrawPalette(t *TUI, items []action.Descriptor, selected int, activeTheme *theme.Theme, viewHeight int) {
	if activeTheme == nil {
		activeTheme = theme.GetCurrentTheme()
	}
	width, _ := t.Size()
	rows := min(len(items), PaletteRows, viewHeight)
	if rows <= 0 || width <= 0 {
		return
	}

	// Keep the selection on screen.
	first := 0
	if selected >= rows {
		first = selected - rows + 1
	}
	top := viewHeight - rows
	for i := 0; i < rows; i++ {
		d := items[first+i]
		style := activeTheme.GetStyle("Palette")
		if !d.Enabled {
			style = activeTheme.GetStyle("Palette.disabled")
		}
		if first+i == selected {
			style = activeTheme.GetStyle("Palette.selected")
		}

		y := top + i
		for x := 0; x < width; x++ {
			t.screen.SetContent(x, y, ' ', nil, style)
		}
		label := " " + d.Label
		if d.Checked {
			label = " ✓" + d.Label
		}
		drawText(t.screen, 0, y, width, label, style)
		if d.Shortcut != "" {
			sw := uniseg.StringWidth(d.Shortcut)
			if x := width - sw - 1; x > uniseg.StringWidth(label)+1 {
				sc := activeTheme.GetStyle("Palette.shortcut")
				if first+i == selected {
					sc = style
				}
				drawText(t.screen, x, y, width, d.Shortcut, sc)
			}
		}
	}
}

// drawText draws text from x, stopping at width, and returns the next x.
func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			s.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += clusterWidth
	}
	return x
}
