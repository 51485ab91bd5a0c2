package keys

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/mockchat/internal/tui/ui"
)

// Action represents a keybinding action.
type Action struct {
	Key         tcell.Key
	Rune        rune
	Label       string
	Description string
	Handler     func()
	Visible     bool
	// Enabled gates the action; nil means always enabled.
	Enabled func() bool
}

// Matches returns true if the event matches this action.
func (a *Action) Matches(ev *tcell.EventKey) bool {
	if a.Key != tcell.KeyRune {
		return ev.Key() == a.Key
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == a.Rune
}

func (a *Action) enabled() bool {
	return a.Enabled == nil || a.Enabled()
}

// scope keeps bindings in registration order so hints render stably.
type scope struct {
	names   []string
	actions map[string]*Action
}

func (s *scope) add(name string, a *Action) {
	if s.actions == nil {
		s.actions = make(map[string]*Action)
	}
	if _, ok := s.actions[name]; !ok {
		s.names = append(s.names, name)
	}
	s.actions[name] = a
}

func (s *scope) each(fn func(*Action) bool) bool {
	for _, n := range s.names {
		if fn(s.actions[n]) {
			return true
		}
	}
	return false
}

// Registry holds keybindings organized by scope.
type Registry struct {
	global scope
	views  map[string]*scope
}

// NewRegistry creates a new keybinding registry.
func NewRegistry() *Registry {
	return &Registry{
		views: make(map[string]*scope),
	}
}

// AddGlobal registers a global keybinding. Re-adding a name replaces it.
func (r *Registry) AddGlobal(name string, action *Action) {
	r.global.add(name, action)
}

// AddView registers a view-specific keybinding.
func (r *Registry) AddView(view, name string, action *Action) {
	s, ok := r.views[view]
	if !ok {
		s = &scope{}
		r.views[view] = s
	}
	s.add(name, action)
}

// Hints returns visible, enabled bindings for a view, view bindings first.
func (r *Registry) Hints(view string) []ui.MenuHint {
	var hints []ui.MenuHint
	collect := func(a *Action) bool {
		if a.Visible && a.enabled() {
			hints = append(hints, ui.MenuHint{Key: a.Label, Description: a.Description})
		}
		return false
	}
	if s, ok := r.views[view]; ok {
		s.each(collect)
	}
	r.global.each(collect)
	return hints
}

// HandleEvent dispatches a key event to the first matching enabled action,
// view bindings before global ones. Returns true if a handler ran.
func (r *Registry) HandleEvent(view string, ev *tcell.EventKey) bool {
	run := func(a *Action) bool {
		if a.Matches(ev) && a.enabled() {
			a.Handler()
			return true
		}
		return false
	}
	if s, ok := r.views[view]; ok && s.each(run) {
		return true
	}
	return r.global.each(run)
}
