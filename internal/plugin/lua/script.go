package lua

import (
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mentions/internal/input/key"
	"github.com/dshills/mentions/internal/logging"
	"github.com/dshills/mentions/internal/mention"
)

// Names of the script globals the host calls.
const (
	HookEnter   = "on_enter"
	HookChange  = "on_change"
	HookExit    = "on_exit"
	HookKeyDown = "on_key_down"
	HookSuggest = "suggest"
)

// ModuleName is the global table that exposes the host to scripts.
const ModuleName = "mentions"

// ScriptConfig configures a Script.
type ScriptConfig struct {
	// Trigger is exposed to scripts as mentions.trigger.
	Trigger rune

	// Users is returned by mentions.users().
	Users []string

	// Timeout bounds each call. Zero uses DefaultExecutionTimeout.
	Timeout time.Duration

	Logger *logging.Logger
}

// Script is a loaded user script.
type Script struct {
	name   string
	state  *State
	bridge *Bridge
	logger *logging.Logger
}

// Load reads and runs the script at path.
func Load(path string, cfg ScriptConfig) (*Script, error) {
	s := newScript(path, cfg)
	if err := s.state.DoFile(path); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	return s, nil
}

// LoadString runs code as a script named name.
func LoadString(name, code string, cfg ScriptConfig) (*Script, error) {
	s := newScript(name, cfg)
	if err := s.state.DoString(code); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("load script %s: %w", name, err)
	}
	return s, nil
}

func newScript(name string, cfg ScriptConfig) *Script {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.WithComponent("lua").WithField("script", name)

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultExecutionTimeout
	}

	state := NewState(WithExecutionTimeout(timeout), WithLogger(logger))
	s := &Script{
		name:   name,
		state:  state,
		bridge: NewBridge(state.L),
		logger: logger,
	}

	users := append([]string(nil), cfg.Users...)
	state.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"log": func(L *lua.LState) int {
			logger.Info("%s", L.CheckString(1))
			return 0
		},
		"users": func(L *lua.LState) int {
			L.Push(s.bridge.Strings(users))
			return 1
		},
	}, map[string]lua.LValue{
		"trigger": lua.LString(string(cfg.Trigger)),
	})
	return s
}

// Name returns the script's path or name.
func (s *Script) Name() string {
	return s.name
}

// Has reports whether the script defines the global function hook.
func (s *Script) Has(hook string) bool {
	return s.state.HasFunction(hook)
}

// Wrap returns opts with the script's lifecycle and key handlers chained in
// front of the existing callbacks. A lifecycle callback reports true if
// either side does. A key event consumed by the script does not reach the
// existing handler.
func (s *Script) Wrap(opts mention.Options) mention.Options {
	opts.OnEnter = s.chain(HookEnter, opts.OnEnter)
	opts.OnChange = s.chain(HookChange, opts.OnChange)
	opts.OnExit = s.chain(HookExit, opts.OnExit)

	if s.Has(HookKeyDown) {
		next := opts.OnKeyDown
		opts.OnKeyDown = func(ev key.Event) bool {
			if s.call(HookKeyDown, s.bridge.Key(ev)) {
				return true
			}
			return next != nil && next(ev)
		}
	}
	return opts
}

func (s *Script) chain(hook string, next mention.Callback) mention.Callback {
	if !s.Has(hook) {
		return next
	}
	return func(ev mention.Event) bool {
		handled := s.call(hook, s.bridge.Event(ev))
		if next != nil && next(ev) {
			handled = true
		}
		return handled
	}
}

// call runs hook and reports its truthiness. Failures are logged and count
// as false.
func (s *Script) call(hook string, args ...lua.LValue) bool {
	results, err := s.state.Call(hook, args...)
	if err != nil {
		s.logger.Warn("%s failed: %v", hook, err)
		return false
	}
	return Truthy(results)
}

// Suggest asks the script's suggest function for candidates matching query.
// It reports false when the script has no suggest function or the call
// fails.
func (s *Script) Suggest(query string, users []string) ([]string, bool) {
	if !s.Has(HookSuggest) {
		return nil, false
	}
	results, err := s.state.Call(HookSuggest, lua.LString(query), s.bridge.Strings(users))
	if err != nil {
		s.logger.Warn("%s failed: %v", HookSuggest, err)
		return nil, false
	}
	if len(results) == 0 {
		return nil, true
	}
	return s.bridge.ToStrings(results[0]), true
}

// Close releases the script's Lua state.
func (s *Script) Close() error {
	return s.state.Close()
}
