package mention

import (
	"fmt"

	"github.com/dshills/mentions/internal/editor"
	"github.com/dshills/mentions/internal/engine/cursor"
	"github.com/dshills/mentions/internal/input/key"
)

// Plugin is the editor plugin that tracks trigger spans.
type Plugin struct {
	opts Options
}

var _ editor.Plugin = (*Plugin)(nil)

// New creates a Plugin. Unset callbacks default to no-ops.
func New(opts Options) (*Plugin, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	opts.Logger = opts.Logger.WithComponent("mention")
	return &Plugin{opts: opts}, nil
}

// Options returns the plugin's effective options.
func (p *Plugin) Options() Options {
	return p.opts
}

// Init implements editor.Plugin.
func (p *Plugin) Init(*editor.State) any {
	return Init()
}

// Apply implements editor.Plugin.
func (p *Plugin) Apply(tr *editor.Transaction, prev any) any {
	return Reduce(tr.Selection(), tr.Doc(), p.opts.Matcher, stateOf(prev))
}

// Update implements editor.Plugin. It delivers the lifecycle callbacks for
// the committed transition.
func (p *Plugin) Update(_ *editor.View, prev, next any) {
	Notify(stateOf(prev), stateOf(next), p.opts)
}

// Decorations implements editor.Plugin.
func (p *Plugin) Decorations(value any) []editor.Decoration {
	return Decorations(stateOf(value), p.opts.SuggestionClass)
}

// HandleKeyDown implements editor.Plugin.
func (p *Plugin) HandleKeyDown(_ *editor.View, value any, ev key.Event) bool {
	return HandleKeyDown(stateOf(value), ev, p.opts)
}

// State returns the tracker state stored in s, or the inactive state if the
// plugin is not installed there.
func (p *Plugin) State(s *editor.State) State {
	v, ok := s.PluginValue(p)
	if !ok {
		return State{}
	}
	return stateOf(v)
}

// SelectMatch completes the active span: it is replaced with an inline leaf
// labelled label followed by a space, and the cursor is placed after the
// space.
func (p *Plugin) SelectMatch(v *editor.View, label string) error {
	st := v.State()
	cur := p.State(st)
	if !cur.Active {
		return ErrNotActive
	}

	r := cur.Range
	tr := st.Tr().
		Delete(r.Start, r.End).
		InsertLeaf(r.Start, label).
		Insert(r.Start+1, " ").
		SetSelection(cursor.NewCursorSelection(r.Start + 2)).
		SetMeta("mention", label)
	if err := tr.Err(); err != nil {
		return fmt.Errorf("select %q: %w", label, err)
	}
	return v.Dispatch(tr)
}

// Notify delivers the lifecycle callbacks for the transition from prev to
// next and returns the transition.
func Notify(prev, next State, opts Options) Transition {
	opts = opts.withDefaults()
	t := Classify(prev, next)
	if t.IsZero() {
		return t
	}

	opts.Logger.Debug("transition %s: %s -> %s", t, prev, next)
	for _, ev := range t.Events(prev, next) {
		switch ev.Kind {
		case EventExit:
			opts.OnExit(ev)
		case EventChange:
			opts.OnChange(ev)
		case EventEnter:
			opts.OnEnter(ev)
		}
	}
	return t
}

// Decorations returns the decoration of the active span, or nil.
func Decorations(s State, class string) []editor.Decoration {
	if !s.Active {
		return nil
	}
	if class == "" {
		class = DefaultSuggestionClass
	}
	return []editor.Decoration{editor.Inline(s.Range.Start, s.Range.End, class)}
}

// HandleKeyDown forwards ev to the key handler while a span is active.
func HandleKeyDown(s State, ev key.Event, opts Options) bool {
	if !s.Active {
		return false
	}
	if opts.OnKeyDown == nil {
		return false
	}
	return opts.OnKeyDown(ev)
}

func stateOf(v any) State {
	s, _ := v.(State)
	return s
}
