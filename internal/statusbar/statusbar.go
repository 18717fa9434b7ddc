// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg" // For proper Unicode width calculation

	"github.com/bethropolis/chalk/internal/theme"
)

// Config defines the behavior of the status bar.
type Config struct {
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		MessageTimeout: 4 * time.Second,
	}
}

// SceneInfo is the part of the Document State the status line shows.
type SceneInfo struct {
	Tool       string
	Elements   int
	Selected   int
	Whiteboard bool
	ViewMode   bool
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex // Protect access to text fields

	scene   SceneInfo
	past    int
	future  int
	pending bool

	// Palette input, shown instead of everything else while active
	paletteActive bool
	paletteInput  string

	// Temporary message state
	tempMessage     string
	tempMessageTime time.Time
	now             func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config: config,
		now:    time.Now,
	}
}

// SetScene updates the scene summary.
func (sb *StatusBar) SetScene(info SceneInfo) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.scene = info
}

// SetHistory updates the undo/redo indicator.
func (sb *StatusBar) SetHistory(past, future int, pending bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.past, sb.future, sb.pending = past, future, pending
}

// SetPalette shows the palette input line; active false hides it.
func (sb *StatusBar) SetPalette(active bool, input string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.paletteActive = active
	sb.paletteInput = input
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

type segment struct {
	text  string
	style string
}

// segments builds the default status line. Caller holds the lock.
func (sb *StatusBar) segments() []segment {
	mode := strings.ToUpper(sb.scene.Tool)
	if mode == "" {
		mode = "SELECTION"
	}
	var flags []string
	if sb.scene.Whiteboard {
		flags = append(flags, "whiteboard")
	}
	if sb.scene.ViewMode {
		flags = append(flags, "view")
	}

	segs := []segment{{text: " " + mode + " ", style: "StatusBar.mode"}}
	if len(flags) > 0 {
		segs = append(segs, segment{text: "[" + strings.Join(flags, ",") + "] ", style: "StatusBar"})
	}
	segs = append(segs, segment{
		text:  fmt.Sprintf("%d elements, %d selected -- undo %d redo %d", sb.scene.Elements, sb.scene.Selected, sb.past, sb.future),
		style: "StatusBar",
	})
	if sb.pending {
		segs = append(segs, segment{text: " *", style: "StatusBar.pending"})
	}
	return segs
}

// Draw renders the status bar onto the last screen line using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, activeTheme *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	if activeTheme == nil {
		activeTheme = theme.GetCurrentTheme()
	}
	y := height - 1

	sb.mu.Lock()
	isTempMsgActive := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !isTempMsgActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	var segs []segment
	switch {
	case sb.paletteActive:
		segs = []segment{{text: ":" + sb.paletteInput, style: "StatusBarPalette"}}
	case isTempMsgActive:
		segs = []segment{{text: sb.tempMessage, style: "StatusBarMessage"}}
	default:
		segs = sb.segments()
	}
	sb.mu.Unlock()

	// Fill background first
	fill := activeTheme.GetStyle("StatusBar")
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, fill)
	}

	currentX := 0
	for _, seg := range segs {
		currentX = drawText(screen, currentX, y, width, seg.text, activeTheme.GetStyle(seg.style))
	}
}

// drawText draws text from x, stopping at width, and returns the next x.
func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += clusterWidth
	}
	return x
}
