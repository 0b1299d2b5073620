package surface

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyPhase classifies a key event.
type KeyPhase int

const (
	// KeyTyped events produce text.
	KeyTyped KeyPhase = iota
	// KeyPressed events are commands: arrows, control chords, function keys.
	KeyPressed
	// KeyReleased events are never forwarded.
	KeyReleased
)

func (p KeyPhase) String() string {
	switch p {
	case KeyTyped:
		return "typed"
	case KeyPressed:
		return "pressed"
	case KeyReleased:
		return "released"
	default:
		return "unknown"
	}
}

// KeyEvent is a key message on its way to the widget. A listener that
// consumes it stops default handling.
type KeyEvent struct {
	Msg   tea.KeyMsg
	Phase KeyPhase

	consumed bool
}

// NewKeyEvent wraps msg, classifying printable input as typed and
// everything else as pressed.
func NewKeyEvent(msg tea.KeyMsg) *KeyEvent {
	phase := KeyPressed
	switch {
	case msg.Type == tea.KeyRunes && !msg.Alt:
		phase = KeyTyped
	case msg.Type == tea.KeySpace && !msg.Alt:
		phase = KeyTyped
	}
	return &KeyEvent{Msg: msg, Phase: phase}
}

func (e *KeyEvent) Consume() { e.consumed = true }

func (e *KeyEvent) Consumed() bool { return e.consumed }

func (e *KeyEvent) String() string { return e.Phase.String() + " " + e.Msg.String() }

// KeyListener sees typed and pressed events before the widget does.
type KeyListener interface {
	KeyTyped(e *KeyEvent)
	KeyPressed(e *KeyEvent)
}

// KeyListenerFuncs adapts functions to KeyListener. Nil fields ignore the
// phase.
type KeyListenerFuncs struct {
	Typed   func(e *KeyEvent)
	Pressed func(e *KeyEvent)
}

func (f KeyListenerFuncs) KeyTyped(e *KeyEvent) {
	if f.Typed != nil {
		f.Typed(e)
	}
}

func (f KeyListenerFuncs) KeyPressed(e *KeyEvent) {
	if f.Pressed != nil {
		f.Pressed(e)
	}
}

// DispatchKey delivers e. Focus traversal keys are taken first. Typed and
// pressed events then go to the listener, and reach the widget only if the
// listener did not consume them. Released events go nowhere.
func (s *Surface) DispatchKey(e *KeyEvent) tea.Cmd {
	if e == nil || e.Phase == KeyReleased {
		return nil
	}
	if cmd, ok := s.w.FocusTraversal(e.Msg); ok {
		return cmd
	}

	if s.listener != nil {
		switch e.Phase {
		case KeyTyped:
			s.listener.KeyTyped(e)
		case KeyPressed:
			s.listener.KeyPressed(e)
		}
		if e.Consumed() {
			log.Debugf("key consumed by listener: %s", e)
			return nil
		}
	}
	return s.tracked(func() tea.Cmd { return s.w.HandleKey(e.Msg) })
}
