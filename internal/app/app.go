package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dshills/mentions/internal/config"
	"github.com/dshills/mentions/internal/editor"
	"github.com/dshills/mentions/internal/engine/buffer"
	"github.com/dshills/mentions/internal/engine/cursor"
	"github.com/dshills/mentions/internal/input/key"
	"github.com/dshills/mentions/internal/logging"
	"github.com/dshills/mentions/internal/mention"
	lua "github.com/dshills/mentions/internal/plugin/lua"
	"github.com/dshills/mentions/internal/renderer"
	"github.com/dshills/mentions/internal/renderer/backend"
)

// Application is the terminal composer: one document, the mention plugin
// and its suggestion popup.
//
// Keys: Ctrl+S saves, Ctrl+Q or Ctrl+C quits. Everything else goes to the
// editor view, where the mention plugin sees it first.
type Application struct {
	mu sync.Mutex

	opts      Options
	cfg       config.Config
	base      *logging.Logger
	logger    *logging.Logger
	logCloser io.Closer

	view     *editor.View
	plugin   *mention.Plugin
	composer *Composer
	script   *lua.Script

	backend  backend.Backend
	renderer *renderer.Renderer
	watcher  *config.Watcher

	running  atomic.Bool
	modified bool
	status   string
}

// New creates an Application from opts. The backend is set separately with
// SetBackend.
func New(opts Options) (*Application, error) {
	cfg, err := ResolveConfig(opts)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	logger, closer, err := NewLogger(cfg, opts.LogOutput)
	if err != nil {
		return nil, &InitError{Component: "logger", Err: err}
	}

	app := &Application{
		opts:      opts,
		cfg:       cfg,
		base:      logger,
		logger:    logger.WithComponent("app"),
		logCloser: closer,
	}

	script, err := loadScript(cfg, logger)
	if err != nil {
		app.Close()
		return nil, &InitError{Component: "script", Err: err}
	}
	app.script = script

	doc, err := LoadDocument(opts.File)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.composer = NewComposer(newSuggester(cfg, script), logger)
	plugin, err := app.newPlugin(cfg, script)
	if err != nil {
		app.Close()
		return nil, &InitError{Component: "mention", Err: err}
	}
	app.plugin = plugin

	app.view = editor.NewView(
		editor.NewState(editor.Config{Doc: doc, Plugins: []editor.Plugin{plugin}}),
		editor.WithLogger(logger),
		editor.WithUpdateListener(app.onUpdate),
	)
	app.composer.Attach(app.view, plugin)

	app.logger.Info("opened %q (%d block(s)), trigger %q", opts.File, doc.BlockCount(), cfg.Mention.Trigger)
	return app, nil
}

// loadScript loads the configured script, or returns nil when none is set.
func loadScript(cfg config.Config, logger *logging.Logger) (*lua.Script, error) {
	if cfg.Script.Path == "" {
		return nil, nil
	}
	return lua.Load(cfg.Script.Path, lua.ScriptConfig{
		Trigger: cfg.TriggerRune(),
		Users:   cfg.Users,
		Timeout: cfg.Script.Timeout(),
		Logger:  logger,
	})
}

func newSuggester(cfg config.Config, script *lua.Script) *Suggester {
	return NewSuggester(cfg.TriggerRune(), cfg.Users, cfg.Mention.MaxSuggestions, script)
}

// newPlugin builds the mention plugin for cfg. Script callbacks run before
// the composer's.
func (app *Application) newPlugin(cfg config.Config, script *lua.Script) (*mention.Plugin, error) {
	matcher, err := cfg.Matcher()
	if err != nil {
		return nil, err
	}
	opts := app.composer.Options(mention.Options{
		Matcher:         matcher,
		SuggestionClass: cfg.Mention.SuggestionClass,
		Logger:          app.base,
	})
	if script != nil {
		opts = script.Wrap(opts)
	}
	return mention.New(opts)
}

// SetBackend sets the terminal backend. Must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// View returns the editor view.
func (app *Application) View() *editor.View {
	return app.view
}

// Plugin returns the installed mention plugin.
func (app *Application) Plugin() *mention.Plugin {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.plugin
}

// Composer returns the suggestion popup controller.
func (app *Application) Composer() *Composer {
	return app.composer
}

// Config returns the effective configuration.
func (app *Application) Config() config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.cfg
}

// Modified reports whether the document changed since it was loaded or
// last saved.
func (app *Application) Modified() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.modified
}

// Run initializes the backend and runs the event loop until the user
// quits. Blocks.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	theme, err := renderer.NewTheme(app.cfg.Editor.Styles)
	if err != nil {
		return &InitError{Component: "theme", Err: err}
	}
	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()
	app.renderer = renderer.New(b, theme)

	app.startWatcher(b)
	defer app.stopWatcher()

	for {
		app.draw()
		err := app.handleEvent(b.PollEvent())
		if errors.Is(err, ErrQuit) {
			app.logger.Info("quit")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Quit asks a running event loop to exit. It is safe to call from any
// goroutine.
func (app *Application) Quit() error {
	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil || !app.running.Load() {
		return nil
	}
	return b.Interrupt(ErrQuit)
}

// startWatcher reloads the config file on change. Watcher callbacks run on
// its own goroutine, so they hand results to the event loop as interrupts.
func (app *Application) startWatcher(b backend.Backend) {
	path := app.opts.configPath()
	if _, err := os.Stat(path); err != nil {
		return
	}

	w, err := config.NewWatcher(path)
	if err != nil {
		app.logger.Warn("not watching %s: %v", path, err)
		return
	}
	w.OnChange(func(cfg config.Config) {
		if err := b.Interrupt(cfg); err != nil {
			app.logger.Warn("posting config reload: %v", err)
		}
	})
	w.OnError(func(err error) {
		if err := b.Interrupt(err); err != nil {
			app.logger.Warn("posting config error: %v", err)
		}
	})
	app.watcher = w
	app.logger.Debug("watching %s", w.Path())
}

func (app *Application) stopWatcher() {
	if app.watcher == nil {
		return
	}
	if err := app.watcher.Close(); err != nil {
		app.logger.Warn("closing config watcher: %v", err)
	}
	app.watcher = nil
}

// handleEvent processes one backend event. It returns ErrQuit when the
// user asks to exit.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev.Key)

	case backend.EventInterrupt:
		switch data := ev.Data.(type) {
		case config.Config:
			app.reload(data)
		case error:
			if errors.Is(data, ErrQuit) {
				return ErrQuit
			}
			app.logger.Warn("config reload failed: %v", data)
			app.setStatus("config: %v", data)
		}
	}
	return nil
}

func (app *Application) handleKey(ev key.Event) error {
	switch {
	case isCtrl(ev, 'q'), isCtrl(ev, 'c'):
		return ErrQuit
	case isCtrl(ev, 's'):
		_ = app.Save()
		return nil
	}

	app.setStatus("")
	handled, err := app.view.HandleKey(ev)
	if err != nil {
		app.logger.Warn("key %s: %v", ev, err)
		app.setStatus("%v", err)
		return nil
	}
	if !handled {
		app.logger.Debug("unhandled key %s", ev)
	}
	return nil
}

// Save writes the document to its file and reports the outcome on the
// status line.
func (app *Application) Save() error {
	err := SaveDocument(app.opts.File, app.view.State().Doc())
	if err != nil {
		app.logger.Error("save failed: %v", err)
		app.setStatus("%v", err)
		return err
	}

	app.mu.Lock()
	app.modified = false
	app.mu.Unlock()
	app.logger.Info("saved %s", app.opts.File)
	app.setStatus("saved")
	return nil
}

// reload applies a reloaded config file. On any error the running
// configuration stays in place.
func (app *Application) reload(fileCfg config.Config) {
	cfg, err := app.opts.override(fileCfg)
	if err != nil {
		app.setStatus("config: %v", err)
		return
	}
	theme, err := renderer.NewTheme(cfg.Editor.Styles)
	if err != nil {
		app.setStatus("config: %v", err)
		return
	}
	app.base.SetLevel(cfg.LogLevel())
	app.logger.SetLevel(cfg.LogLevel())

	script, err := loadScript(cfg, app.base)
	if err != nil {
		app.setStatus("script: %v", err)
		return
	}
	plugin, err := app.newPlugin(cfg, script)
	if err != nil {
		if script != nil {
			_ = script.Close()
		}
		app.setStatus("config: %v", err)
		return
	}

	app.mu.Lock()
	old := app.script
	app.cfg, app.script, app.plugin = cfg, script, plugin
	app.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}

	app.composer.SetSuggester(newSuggester(cfg, script))
	app.composer.Attach(app.view, plugin)
	app.view.UpdateState(app.view.State().Reconfigure([]editor.Plugin{plugin}))
	if app.renderer != nil {
		app.renderer.SetTheme(theme)
	}

	app.logger.Info("config reloaded, trigger %q", cfg.Mention.Trigger)
	app.setStatus("config reloaded")
}

func (app *Application) onUpdate(prev, next *editor.State) {
	if prev.Doc().Equal(next.Doc()) {
		return
	}
	app.mu.Lock()
	app.modified = true
	app.mu.Unlock()
}

func (app *Application) setStatus(format string, args ...any) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.status = fmt.Sprintf(format, args...)
}

func (app *Application) draw() {
	s := app.view.State()
	app.renderer.Draw(renderer.Frame{
		Doc:         s.Doc(),
		Selection:   s.Selection(),
		Decorations: app.view.Decorations(),
		Popup:       app.composer.Popup(),
		Status:      app.StatusLine(),
	})
}

// StatusLine returns the text of the status line: file name, modified
// marker, cursor position, the active mention and the last message.
func (app *Application) StatusLine() string {
	s := app.view.State()

	app.mu.Lock()
	plugin, modified, status := app.plugin, app.modified, app.status
	app.mu.Unlock()

	name := "[No Name]"
	if app.opts.File != "" {
		name = filepath.Base(app.opts.File)
	}
	if modified {
		name += " [+]"
	}

	parts := []string{name, position(s.Doc(), s.Selection())}
	if ms := plugin.State(s); ms.Active {
		parts = append(parts, "mention "+ms.Text)
	}
	if status != "" {
		parts = append(parts, status)
	}
	return strings.Join(parts, " | ")
}

// position formats the cursor as 1-based line:column.
func position(doc buffer.Document, sel cursor.Selection) string {
	col, row := renderer.CursorCell(doc, sel.Head)
	return fmt.Sprintf("%d:%d", row+1, col+1)
}

// Close releases the script and the log file. The application cannot be
// run afterwards.
func (app *Application) Close() error {
	app.stopWatcher()

	app.mu.Lock()
	script := app.script
	app.script = nil
	closer := app.logCloser
	app.logCloser = nil
	app.mu.Unlock()

	var errs []error
	if script != nil {
		errs = append(errs, script.Close())
	}
	if closer != nil {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}
