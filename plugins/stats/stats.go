// plugins/stats/stats.go
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/chalk/internal/action"
	"github.com/bethropolis/chalk/internal/event"
	"github.com/bethropolis/chalk/internal/history"
	"github.com/bethropolis/chalk/internal/plugin"
	"github.com/bethropolis/chalk/internal/scene"
)

// ActionName is the action this plugin registers.
const ActionName = "showStats"

// Ensure Stats implements plugin.Plugin
var _ plugin.Plugin = (*Stats)(nil)

// Stats is a simple plugin that reports element counts in the status bar.
type Stats struct {
	host plugin.Host
}

// New creates a new instance of the Stats plugin.
func New() *Stats {
	return &Stats{}
}

// Name returns the unique name of the plugin.
func (p *Stats) Name() string {
	return "stats"
}

// Initialize registers the showStats action. The report itself is produced
// after the action ran, so Perform stays free of side effects.
func (p *Stats) Initialize(host plugin.Host) error {
	p.host = host

	err := host.RegisterAction(&action.Action{
		Name:     ActionName,
		Label:    "Show scene stats",
		Keywords: []string{"count", "elements", "info"},
		Keys:     []string{"alt+i"},
		Perform: func(scene.Elements, scene.AppState, any) (action.Result, error) {
			return action.Result{Capture: history.CaptureNever}, nil
		},
	})
	if err != nil {
		return fmt.Errorf("failed to register '%s' action: %w", ActionName, err)
	}

	host.Subscribe(event.TypeActionExecuted, func(e event.Event) bool {
		if data, ok := e.Data.(event.ActionExecutedData); ok && data.Name == ActionName {
			p.report()
		}
		return false
	})
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *Stats) Shutdown() error {
	return nil
}

func (p *Stats) report() {
	if p.host == nil {
		return
	}
	p.host.SetStatusMessage("%s", Summarize(p.host.State()))
}

// Summarize renders element counts for st, e.g.
// "Elements: 3 (rectangle 2, text 1), Selected: 1, Deleted: 0".
func Summarize(st scene.State) string {
	kinds := make(map[string]int)
	live, deleted := 0, 0
	for _, el := range st.Elements {
		if el.IsDeleted {
			deleted++
			continue
		}
		live++
		kinds[el.Type]++
	}

	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, k := range names {
		parts = append(parts, fmt.Sprintf("%s %d", k, kinds[k]))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Elements: %d", live)
	if len(parts) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
	}
	fmt.Fprintf(&b, ", Selected: %d, Deleted: %d", len(st.SelectedIDs()), deleted)
	return b.String()
}
