package widget

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// FocusDirection selects a focus traversal key set.
type FocusDirection int

const (
	FocusForward FocusDirection = iota
	FocusBackward
)

var (
	defaultForwardKeys  = []string{"alt+tab", "ctrl+tab", "f6"}
	defaultBackwardKeys = []string{"alt+shift+tab", "ctrl+shift+tab", "shift+f6"}
)

// FocusTraversalMsg asks the host to move focus away from the widget.
type FocusTraversalMsg struct {
	Direction FocusDirection
}

// FocusTraversalKeys returns the keys that move focus in dir.
func (m *Model) FocusTraversalKeys(dir FocusDirection) key.Binding {
	if dir == FocusBackward {
		return m.backwardKeys
	}
	return m.forwardKeys
}

// SetFocusTraversalKeys replaces the keys that move focus in dir.
func (m *Model) SetFocusTraversalKeys(dir FocusDirection, b key.Binding) {
	if dir == FocusBackward {
		m.backwardKeys = b
		return
	}
	m.forwardKeys = b
}

// FocusTraversal reports whether msg is a focus traversal key and returns
// the command announcing it.
func (m *Model) FocusTraversal(msg tea.KeyMsg) (tea.Cmd, bool) {
	var dir FocusDirection
	switch {
	case key.Matches(msg, m.forwardKeys):
		dir = FocusForward
	case key.Matches(msg, m.backwardKeys):
		dir = FocusBackward
	default:
		return nil, false
	}
	return func() tea.Msg { return FocusTraversalMsg{Direction: dir} }, true
}

// WithoutKeys returns b minus the given keys, keeping its help.
func WithoutKeys(b key.Binding, keys ...string) key.Binding {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	var kept []string
	for _, k := range b.Keys() {
		if !drop[k] {
			kept = append(kept, k)
		}
	}
	h := b.Help()
	return key.NewBinding(key.WithKeys(kept...), key.WithHelp(h.Key, h.Desc))
}
