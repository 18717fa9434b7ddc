// internal/input/keymap.go
package input

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/chalk/internal/action"
)

type binding struct {
	stroke  action.KeyStroke
	command Command
}

// Processor translates tcell events into shell commands. Keys it does not
// bind fall through to the action registry.
type Processor struct {
	bindings []binding
}

// DefaultBindings are the shell key bindings.
var DefaultBindings = map[Command][]string{
	CommandQuit:       {"ctrl+q", "ctrl+c"},
	CommandUndo:       {"ctrl+z"},
	CommandRedo:       {"ctrl+y", "ctrl+shift+z"},
	CommandPalette:    {":"},
	CommandCopyStyle:  {"ctrl+alt+c"},
	CommandPasteStyle: {"ctrl+alt+v"},
	CommandCommit:     {"ctrl+s"},
}

// NewProcessor creates a processor with the default bindings.
func NewProcessor() *Processor {
	p := &Processor{}
	for c := CommandQuit; c <= CommandCommit; c++ {
		for _, spec := range DefaultBindings[c] {
			p.bindings = append(p.bindings, binding{stroke: action.MustParseKey(spec), command: c})
		}
	}
	return p
}

// Bind replaces the keys of c. An empty specs list unbinds it.
func (p *Processor) Bind(c Command, specs []string) error {
	strokes := make([]action.KeyStroke, 0, len(specs))
	for _, spec := range specs {
		ks, err := action.ParseKey(spec)
		if err != nil {
			return fmt.Errorf("bind %s: %w", c, err)
		}
		strokes = append(strokes, ks)
	}

	kept := p.bindings[:0]
	for _, b := range p.bindings {
		if b.command != c {
			kept = append(kept, b)
		}
	}
	for _, ks := range strokes {
		kept = append(kept, binding{stroke: ks, command: c})
	}
	p.bindings = kept
	return nil
}

// Keys returns the display form of the keys bound to c.
func (p *Processor) Keys(c Command) []string {
	var out []string
	for _, b := range p.bindings {
		if b.command == c {
			out = append(out, b.stroke.String())
		}
	}
	return out
}

// ProcessEvent returns the shell command bound to ev, or CommandNone.
func (p *Processor) ProcessEvent(ev *tcell.EventKey) Command {
	for _, b := range p.bindings {
		if b.stroke.Matches(ev) {
			return b.command
		}
	}
	return CommandNone
}

// ProcessPaletteEvent decodes a key while the palette is open.
func (p *Processor) ProcessPaletteEvent(ev *tcell.EventKey) PaletteEvent {
	switch ev.Key() {
	case tcell.KeyEnter:
		return PaletteEvent{Op: PaletteExecute}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return PaletteEvent{Op: PaletteCancel}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return PaletteEvent{Op: PaletteDeleteChar}
	case tcell.KeyDown, tcell.KeyTab, tcell.KeyCtrlN:
		return PaletteEvent{Op: PaletteNext}
	case tcell.KeyUp, tcell.KeyBacktab, tcell.KeyCtrlP:
		return PaletteEvent{Op: PalettePrev}
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0 {
			return PaletteEvent{Op: PaletteAppend, Rune: ev.Rune()}
		}
	}
	return PaletteEvent{Op: PaletteIgnore}
}
