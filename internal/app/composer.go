package app

import (
	"sync"

	"github.com/dshills/mentions/internal/editor"
	"github.com/dshills/mentions/internal/input/key"
	"github.com/dshills/mentions/internal/logging"
	"github.com/dshills/mentions/internal/mention"
	"github.com/dshills/mentions/internal/renderer"
)

// Composer drives the suggestion popup from mention lifecycle events and
// completes the active mention from it.
//
// While the popup is open it takes Up/Down (or Ctrl+P/Ctrl+N) to move the
// selection, Tab or Enter to complete and Escape to dismiss. A dismissed
// popup stays closed until the next mention is entered.
type Composer struct {
	mu        sync.Mutex
	suggester *Suggester
	logger    *logging.Logger

	view   *editor.View
	plugin *mention.Plugin

	popup     *renderer.Popup
	dismissed bool
}

// NewComposer creates a Composer. Attach must be called before key events
// can complete a mention.
func NewComposer(s *Suggester, logger *logging.Logger) *Composer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Composer{suggester: s, logger: logger.WithComponent("composer")}
}

// Attach sets the view and plugin used to complete mentions.
func (c *Composer) Attach(v *editor.View, p *mention.Plugin) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view, c.plugin = v, p
}

// SetSuggester replaces the candidate source and closes the popup.
func (c *Composer) SetSuggester(s *Suggester) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.suggester = s
	c.popup = nil
	c.dismissed = false
}

// Options returns base with the composer's callbacks installed.
func (c *Composer) Options(base mention.Options) mention.Options {
	base.OnEnter = c.onEnter
	base.OnChange = c.onChange
	base.OnExit = c.onExit
	base.OnKeyDown = c.onKeyDown
	return base
}

// Popup returns a copy of the open popup, or nil.
func (c *Composer) Popup() *renderer.Popup {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.popup == nil {
		return nil
	}
	p := *c.popup
	p.Items = append([]string(nil), c.popup.Items...)
	return &p
}

func (c *Composer) onEnter(ev mention.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dismissed = false
	c.open(ev)
	return true
}

func (c *Composer) onChange(ev mention.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dismissed {
		c.open(ev)
	}
	return true
}

func (c *Composer) onExit(mention.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.popup = nil
	c.dismissed = false
	return true
}

// open shows the candidates for ev, or hides the popup if there are none.
func (c *Composer) open(ev mention.Event) {
	items := c.suggester.Suggest(ev.Text)
	if len(items) == 0 {
		c.popup = nil
		return
	}
	c.popup = &renderer.Popup{Anchor: ev.Range.Start, Items: items}
	c.logger.Debug("%d suggestion(s) for %q", len(items), ev.Text)
}

func (c *Composer) onKeyDown(ev key.Event) bool {
	c.mu.Lock()
	if c.popup == nil {
		c.mu.Unlock()
		return false
	}

	switch {
	case ev.Key == key.KeyUp, ev.Key == key.KeyBacktab, isCtrl(ev, 'p'):
		c.move(-1)
	case ev.Key == key.KeyDown, isCtrl(ev, 'n'):
		c.move(1)
	case ev.Key == key.KeyEscape:
		c.popup = nil
		c.dismissed = true
	case ev.Key == key.KeyTab, ev.Key == key.KeyEnter:
		label := c.popup.Items[c.popup.Selected]
		view, plugin := c.view, c.plugin
		c.mu.Unlock()
		c.complete(view, plugin, label)
		return true
	default:
		c.mu.Unlock()
		return false
	}
	c.mu.Unlock()
	return true
}

// move moves the selection by delta, wrapping around.
func (c *Composer) move(delta int) {
	n := len(c.popup.Items)
	c.popup.Selected = ((c.popup.Selected+delta)%n + n) % n
}

// complete replaces the active span with label. It runs without the lock
// because the resulting dispatch calls back into the composer.
func (c *Composer) complete(v *editor.View, p *mention.Plugin, label string) {
	if v == nil || p == nil {
		c.logger.Warn("completion of %q without an attached view", label)
		return
	}
	if err := p.SelectMatch(v, label); err != nil {
		c.logger.Warn("completing %q: %v", label, err)
	}
}

func isCtrl(ev key.Event, r rune) bool {
	return ev.Key == key.KeyRune && ev.Rune == r && ev.Modifiers.HasCtrl()
}
