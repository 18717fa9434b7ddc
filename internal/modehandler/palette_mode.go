package modehandler

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/input"
	"github.com/bethropolis/chalk/internal/logger"
)

// The palette query is "<search> [argument]". The first word is fuzzy
// matched against the registry; the rest, if any, is passed as input.

// enterPalette opens the palette with every action listed. Caller holds mh.mu.
func (mh *ModeHandler) enterPalette() {
	mh.endDrag()
	mh.currentMode = ModePalette
	mh.query = ""
	mh.refreshPalette()
	logger.Debugf("ModeHandler: Entering Palette Mode")
}

func (mh *ModeHandler) exitPalette() {
	mh.currentMode = ModeNormal
	mh.query = ""
	mh.results = nil
	mh.selected = 0
	mh.statusBar.SetPalette(false, "")
}

// handlePalette handles keys while the palette is open.
func (mh *ModeHandler) handlePalette(ev *tcell.EventKey) bool {
	pe := mh.inputProcessor.ProcessPaletteEvent(ev)

	switch pe.Op {
	case input.PaletteAppend:
		mh.query += string(pe.Rune)
		mh.refreshPalette()

	case input.PaletteDeleteChar: // Backspace
		if mh.query == "" {
			mh.exitPalette()
			logger.Debugf("ModeHandler: Exiting Palette Mode via Backspace")
			return true
		}
		r := []rune(mh.query)
		mh.query = string(r[:len(r)-1])
		mh.refreshPalette()

	case input.PaletteNext:
		if len(mh.results) > 0 {
			mh.selected = (mh.selected + 1) % len(mh.results)
		}

	case input.PalettePrev:
		if len(mh.results) > 0 {
			mh.selected = (mh.selected - 1 + len(mh.results)) % len(mh.results)
		}

	case input.PaletteExecute:
		mh.executeSelected()

	case input.PaletteCancel:
		mh.exitPalette()
		logger.Debugf("ModeHandler: Canceled Palette Mode")

	default:
		return false
	}
	return true
}

// splitQuery separates the search word from the argument.
func splitQuery(q string) (search, arg string) {
	q = strings.TrimLeft(q, " ")
	search, arg, _ = strings.Cut(q, " ")
	return search, strings.TrimSpace(arg)
}

func (mh *ModeHandler) refreshPalette() {
	search, _ := splitQuery(mh.query)
	found := mh.actions.Registry().Search(search)

	mh.results = mh.results[:0]
	for _, a := range found {
		d, err := mh.actions.RenderAction(a.Name)
		if err != nil {
			continue
		}
		mh.results = append(mh.results, d)
	}
	mh.selected = 0
	mh.statusBar.SetPalette(true, mh.query)
}

// executeSelected runs the highlighted entry and closes the palette.
func (mh *ModeHandler) executeSelected() {
	if len(mh.results) == 0 {
		query := mh.query
		mh.exitPalette()
		mh.statusBar.SetTemporaryMessage("No action matches %q", query)
		return
	}
	d := mh.results[mh.selected]
	_, arg := splitQuery(mh.query)
	mh.exitPalette()

	var in any
	if arg != "" {
		in = arg
	}
	logger.Debugf("ModeHandler: Executing palette action '%s' with input %q", d.Name, arg)
	out, err := mh.actions.Execute(d.Name, action.SourceCommandPalette, in)
	switch {
	case err != nil:
		mh.statusBar.SetTemporaryMessage("Error executing '%s': %v", d.Label, err)
	case out.Status == action.StatusDisabled:
		mh.statusBar.SetTemporaryMessage("'%s' is not available now", d.Label)
	}
}

// PaletteState returns the palette entries and the highlighted index. It is
// empty outside palette mode.
func (mh *ModeHandler) PaletteState() ([]action.Descriptor, int) {
	mh.mu.Lock()
	defer mh.mu.Unlock()
	if mh.currentMode != ModePalette {
		return nil, 0
	}
	out := make([]action.Descriptor, len(mh.results))
	copy(out, mh.results)
	return out, mh.selected
}

// PaletteQuery returns the text typed into the palette.
func (mh *ModeHandler) PaletteQuery() string {
	mh.mu.Lock()
	defer mh.mu.Unlock()
	if mh.currentMode == ModePalette {
		return mh.query
	}
	return ""
}
