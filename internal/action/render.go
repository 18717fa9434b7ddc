package action

import "slices"

// Descriptor is what a UI surface needs to draw and trigger one action.
type Descriptor struct {
	Name     string
	Label    string
	Icon     string
	Keywords []string
	Shortcut string
	Enabled  bool
	Checked  bool
	// Select executes the action from the UI with the given input.
	Select func(input any) (Outcome, error)
}

// RenderAction builds the descriptor for one action from the current state.
func (m *Manager) RenderAction(name string) (Descriptor, error) {
	a, err := m.registry.Get(name)
	if err != nil {
		return Descriptor{}, err
	}
	return m.describe(a), nil
}

// RenderAll builds descriptors for every action in registration order.
func (m *Manager) RenderAll() []Descriptor {
	var out []Descriptor
	for a := range m.registry.List() {
		out = append(out, m.describe(a))
	}
	return out
}

func (m *Manager) describe(a *Action) Descriptor {
	st := m.store.State()
	label := a.Label
	if label == "" {
		label = a.Name
	}
	if m.translate != nil {
		if translated := m.translate(label); translated != "" {
			label = translated
		}
	}
	return Descriptor{
		Name:     a.Name,
		Label:    label,
		Icon:     a.Icon,
		Keywords: slices.Clone(a.Keywords),
		Shortcut: a.Shortcut(),
		Enabled:  a.IsEnabled(st),
		Checked:  a.IsChecked(st),
		Select: func(input any) (Outcome, error) {
			return m.execute(a, SourceUI, input)
		},
	}
}
