package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/mentions/internal/config"
)

// Theme maps style classes to terminal styles.
type Theme struct {
	base    tcell.Style
	classes map[string]tcell.Style
}

// NewTheme resolves the configured styles. Every unknown color is reported.
func NewTheme(styles map[string]config.Style) (Theme, error) {
	t := Theme{
		base:    tcell.StyleDefault,
		classes: make(map[string]tcell.Style, len(styles)),
	}

	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)

	var bad []string
	for _, name := range names {
		st, err := ConvertStyle(styles[name])
		if err != nil {
			bad = append(bad, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		if name == config.ClassText {
			t.base = st
		}
		t.classes[name] = st
	}
	if len(bad) > 0 {
		return t, fmt.Errorf("%w: %s", ErrUnknownColor, strings.Join(bad, "; "))
	}
	return t, nil
}

// Base returns the style of plain text.
func (t Theme) Base() tcell.Style {
	return t.base
}

// Style returns the style of class, falling back to the base style.
func (t Theme) Style(class string) tcell.Style {
	if st, ok := t.classes[class]; ok {
		return st
	}
	return t.base
}

// Has reports whether class has a style of its own.
func (t Theme) Has(class string) bool {
	_, ok := t.classes[class]
	return ok
}

// ConvertStyle converts a configured style.
func ConvertStyle(s config.Style) (tcell.Style, error) {
	st := tcell.StyleDefault

	fg, err := color(s.Foreground)
	if err != nil {
		return st, err
	}
	bg, err := color(s.Background)
	if err != nil {
		return st, err
	}

	return st.Foreground(fg).
		Background(bg).
		Bold(s.Bold).
		Underline(s.Underline).
		Reverse(s.Reverse), nil
}

func color(name string) (tcell.Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "default" {
		return tcell.ColorDefault, nil
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return c, fmt.Errorf("%q", name)
	}
	return c, nil
}
