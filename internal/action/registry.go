package action

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/sahilm/fuzzy"

	"github.com/bethropolis/chalk/internal/logger"
	"github.com/bethropolis/chalk/internal/scene"
)

// Registry holds actions in registration order. It is an explicit instance,
// created at startup and passed to the manager and the UI.
type Registry struct {
	mu      sync.RWMutex
	actions []*Action
	byName  map[string]*Action
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Action)}
}

// Register adds a. Shortcut specs are parsed here.
func (r *Registry) Register(a *Action) error {
	if a == nil || strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidAction)
	}
	if a.Perform == nil {
		return fmt.Errorf("%w: %s has no Perform", ErrInvalidAction, a.Name)
	}
	strokes, err := parseKeys(a.Keys)
	if err != nil {
		return fmt.Errorf("register %s: %w", a.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[a.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, a.Name)
	}
	a.strokes = strokes
	r.actions = append(r.actions, a)
	r.byName[a.Name] = a
	logger.DebugTagf("action", "Registry: registered '%s' (%d shortcut(s))", a.Name, len(strokes))
	return nil
}

// Rebind replaces the shortcut specs of a registered action. A registered
// *Action is never written after Register: the registry swaps in a rebound
// copy, and actions already handed out keep their old keys.
func (r *Registry) Rebind(name string, keys []string) error {
	strokes, err := parseKeys(keys)
	if err != nil {
		return fmt.Errorf("rebind %s: %w", name, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	rebound := *a
	rebound.Keys = slices.Clone(keys)
	rebound.strokes = strokes
	r.actions[slices.Index(r.actions, a)] = &rebound
	r.byName[name] = &rebound
	return nil
}

// Get looks an action up by name.
func (r *Registry) Get(name string) (*Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return a, nil
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}

// List yields the actions in registration order. Each iteration walks the
// registry as it is when iteration starts.
func (r *Registry) List() iter.Seq[*Action] {
	return func(yield func(*Action) bool) {
		for _, a := range r.snapshot() {
			if !yield(a) {
				return
			}
		}
	}
}

// FindByShortcut returns the first action, in registration order, whose
// shortcut matches ev in st. Enablement is not considered here.
func (r *Registry) FindByShortcut(ev *tcell.EventKey, st scene.State) (*Action, bool) {
	for _, a := range r.snapshot() {
		if a.MatchesKey(ev, st) {
			return a, true
		}
	}
	return nil, false
}

// Search fuzzy matches query against each action's label, name and keywords.
// Results are ordered by best score; ties keep registration order. An empty
// query returns every action.
func (r *Registry) Search(query string) []*Action {
	actions := r.snapshot()
	query = strings.TrimSpace(query)
	if query == "" {
		return actions
	}

	src := make(searchSource, 0, len(actions)*2)
	for i, a := range actions {
		for _, term := range searchTerms(a) {
			src = append(src, searchTerm{text: term, action: i})
		}
	}

	best := make(map[int]int)
	for _, m := range fuzzy.FindFrom(query, src) {
		idx := src[m.Index].action
		if score, seen := best[idx]; !seen || m.Score > score {
			best[idx] = m.Score
		}
	}

	hits := make([]int, 0, len(best))
	for idx := range best {
		hits = append(hits, idx)
	}
	sort.Slice(hits, func(i, j int) bool {
		if best[hits[i]] != best[hits[j]] {
			return best[hits[i]] > best[hits[j]]
		}
		return hits[i] < hits[j]
	})

	out := make([]*Action, len(hits))
	for i, idx := range hits {
		out[i] = actions[idx]
	}
	return out
}

func (r *Registry) snapshot() []*Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.actions)
}

func parseKeys(keys []string) ([]KeyStroke, error) {
	strokes := make([]KeyStroke, 0, len(keys))
	for _, k := range keys {
		ks, err := ParseKey(k)
		if err != nil {
			return nil, err
		}
		strokes = append(strokes, ks)
	}
	return strokes, nil
}

func searchTerms(a *Action) []string {
	terms := []string{a.Name}
	if a.Label != "" {
		terms = append(terms, a.Label)
	}
	return append(terms, a.Keywords...)
}

type searchTerm struct {
	text   string
	action int
}

// searchSource implements fuzzy.Source.
type searchSource []searchTerm

func (s searchSource) String(i int) string { return s[i].text }
func (s searchSource) Len() int            { return len(s) }
