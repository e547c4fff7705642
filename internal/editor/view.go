package editor

import (
	"sync"

	"github.com/dshills/mentions/internal/input/key"
	"github.com/dshills/mentions/internal/logging"
)

// View owns the current editor state and serializes every change to it.
type View struct {
	mu          sync.Mutex
	state       *State
	dispatching bool
	pending     []*Transaction

	logger    *logging.Logger
	listeners []func(prev, next *State)
}

// ViewOption configures a View.
type ViewOption func(*View)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(l *logging.Logger) ViewOption {
	return func(v *View) {
		if l != nil {
			v.logger = l.WithComponent("editor")
		}
	}
}

// WithUpdateListener registers fn to run after every committed transaction,
// after all plugin Update hooks.
func WithUpdateListener(fn func(prev, next *State)) ViewOption {
	return func(v *View) {
		v.listeners = append(v.listeners, fn)
	}
}

// NewView creates a view over the initial state.
func NewView(s *State, opts ...ViewOption) *View {
	v := &View{
		state:  s,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// State returns the committed state.
func (v *View) State() *State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Tr starts a transaction on the committed state.
func (v *View) Tr() *Transaction {
	return v.State().Tr()
}

// Dispatch applies tr, commits the resulting state and runs the plugins'
// Update hooks. When called from inside an Update hook the transaction is
// queued and applied once the current dispatch completes; errors of queued
// transactions are logged rather than returned.
func (v *View) Dispatch(tr *Transaction) error {
	if tr == nil {
		return ErrNilTransaction
	}

	v.mu.Lock()
	if v.dispatching {
		v.pending = append(v.pending, tr)
		v.mu.Unlock()
		return nil
	}
	v.dispatching = true
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.dispatching = false
		v.pending = nil
		v.mu.Unlock()
	}()

	if err := v.commit(tr); err != nil {
		return err
	}

	for {
		v.mu.Lock()
		if len(v.pending) == 0 {
			v.mu.Unlock()
			return nil
		}
		next := v.pending[0]
		v.pending = v.pending[1:]
		v.mu.Unlock()

		if err := v.commit(next); err != nil {
			v.logger.WithField("tr", next.ID()).Warn("dropped queued transaction: %v", err)
		}
	}
}

// commit applies one transaction and notifies plugins and listeners.
func (v *View) commit(tr *Transaction) error {
	v.mu.Lock()
	prev := v.state
	next, err := prev.Apply(tr)
	if err != nil {
		v.mu.Unlock()
		return err
	}
	v.state = next
	v.mu.Unlock()

	v.logger.WithField("tr", tr.ID()).Debug("applied %d edit(s), selection %s", len(tr.edits), next.sel)

	for i, p := range next.plugins {
		p.Update(v, prev.values[i], next.values[i])
	}
	for _, fn := range v.listeners {
		fn(prev, next)
	}
	return nil
}

// HandleKey routes a key-down event. Plugins see it first, in registration
// order; if none consumes it the default editing command for the key runs.
// It reports whether the event was handled.
func (v *View) HandleKey(ev key.Event) (bool, error) {
	s := v.State()
	for i, p := range s.plugins {
		if p.HandleKeyDown(v, s.values[i], ev) {
			return true, nil
		}
	}

	tr := defaultCommand(v.State(), ev)
	if tr == nil {
		return false, nil
	}
	return true, v.Dispatch(tr)
}

// Decorations collects the decorations of every plugin for the committed
// state, in plugin order.
func (v *View) Decorations() []Decoration {
	s := v.State()
	var out []Decoration
	for i, p := range s.plugins {
		out = append(out, p.Decorations(s.values[i])...)
	}
	return out
}

// UpdateState replaces the committed state without running plugin hooks,
// for example after State.Reconfigure. Listeners are notified.
func (v *View) UpdateState(s *State) {
	v.mu.Lock()
	prev := v.state
	v.state = s
	v.mu.Unlock()

	for _, fn := range v.listeners {
		fn(prev, s)
	}
}
