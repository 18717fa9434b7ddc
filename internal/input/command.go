// internal/input/command.go
package input

// Command is a shell-level operation handled by the app itself rather than
// by the action registry: quitting, the history stacks, the palette and the
// style clipboard, which needs I/O before an action can run.
type Command int

const (
	CommandNone Command = iota // No shell binding; try action shortcuts
	CommandQuit
	CommandUndo
	CommandRedo
	CommandPalette    // Open the command palette (':')
	CommandCopyStyle  // Copy the current stroke colour to the clipboard
	CommandPasteStyle // Read the clipboard, then run pasteStrokeColor
	CommandCommit     // Close the pending edit as its own undo step
)

var commandNames = map[Command]string{
	CommandNone:       "none",
	CommandQuit:       "quit",
	CommandUndo:       "undo",
	CommandRedo:       "redo",
	CommandPalette:    "palette",
	CommandCopyStyle:  "copyStyle",
	CommandPasteStyle: "pasteStyle",
	CommandCommit:     "commit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCommand looks a command up by its String name.
func ParseCommand(name string) (Command, bool) {
	for c, n := range commandNames {
		if n == name && c != CommandNone {
			return c, true
		}
	}
	return CommandNone, false
}

// PaletteOp is what a key does while the command palette is open.
type PaletteOp int

const (
	PaletteIgnore PaletteOp = iota
	PaletteAppend           // Requires Rune
	PaletteDeleteChar
	PaletteNext
	PalettePrev
	PaletteExecute
	PaletteCancel
)

// PaletteEvent is a decoded key in palette mode.
type PaletteEvent struct {
	Op   PaletteOp
	Rune rune // Used for PaletteAppend
}
