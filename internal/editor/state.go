package editor

import (
	"github.com/dshills/mentions/internal/engine/buffer"
	"github.com/dshills/mentions/internal/engine/cursor"
)

// Config describes the initial editor state.
type Config struct {
	Doc       buffer.Document
	Selection cursor.Selection
	Plugins   []Plugin
}

// State is an immutable snapshot of the editor: document, selection and one
// value per plugin, stored in plugin registration order.
type State struct {
	doc     buffer.Document
	sel     cursor.Selection
	plugins []Plugin
	values  []any
}

// NewState creates a state from cfg and initializes every plugin.
// The selection is clamped to the document.
func NewState(cfg Config) *State {
	s := &State{
		doc:     cfg.Doc,
		sel:     cfg.Selection.Clamp(cfg.Doc.Len()),
		plugins: append([]Plugin(nil), cfg.Plugins...),
	}
	s.values = make([]any, len(s.plugins))
	for i, p := range s.plugins {
		s.values[i] = p.Init(s)
	}
	return s
}

// Doc returns the document.
func (s *State) Doc() buffer.Document {
	return s.doc
}

// Selection returns the selection.
func (s *State) Selection() cursor.Selection {
	return s.sel
}

// Plugins returns the registered plugins in order.
func (s *State) Plugins() []Plugin {
	return append([]Plugin(nil), s.plugins...)
}

// PluginValue returns the value stored for plugin p.
func (s *State) PluginValue(p Plugin) (any, bool) {
	for i, registered := range s.plugins {
		if registered == p {
			return s.values[i], true
		}
	}
	return nil, false
}

// Tr starts a transaction based on this state.
func (s *State) Tr() *Transaction {
	return newTransaction(s)
}

// Apply applies tr and returns the resulting state. The receiver is left
// untouched. Each plugin's reducer runs once, in registration order.
func (s *State) Apply(tr *Transaction) (*State, error) {
	if tr == nil {
		return nil, ErrNilTransaction
	}
	if tr.err != nil {
		return nil, tr.err
	}
	if tr.base != s {
		return nil, ErrStaleTransaction
	}

	next := &State{
		doc:     tr.doc,
		sel:     tr.sel,
		plugins: s.plugins,
		values:  make([]any, len(s.plugins)),
	}
	for i, p := range s.plugins {
		next.values[i] = p.Apply(tr, s.values[i])
	}
	return next, nil
}

// Reconfigure returns a state with the same document and selection and the
// given plugins. Plugins already registered keep their values; new ones are
// initialized.
func (s *State) Reconfigure(plugins []Plugin) *State {
	next := &State{
		doc:     s.doc,
		sel:     s.sel,
		plugins: append([]Plugin(nil), plugins...),
		values:  make([]any, len(plugins)),
	}
	for i, p := range next.plugins {
		if v, ok := s.PluginValue(p); ok {
			next.values[i] = v
			continue
		}
		next.values[i] = p.Init(next)
	}
	return next
}
