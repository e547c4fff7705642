package app

import (
	"strings"

	"github.com/dshills/mentions/internal/input/fuzzy"
	"github.com/dshills/mentions/internal/plugin/lua"
)

// Suggester produces popup candidates for a mention query.
type Suggester struct {
	trigger rune
	users   []string
	ranker  *fuzzy.Ranker
	limit   int
	script  *lua.Script
}

// NewSuggester creates a Suggester over users. script may be nil; when it
// defines suggest, it replaces the built-in fuzzy ranking.
func NewSuggester(trigger rune, users []string, limit int, script *lua.Script) *Suggester {
	return &Suggester{
		trigger: trigger,
		users:   append([]string(nil), users...),
		ranker:  fuzzy.NewRanker(users),
		limit:   limit,
		script:  script,
	}
}

// Suggest returns at most limit candidates for query, each starting with
// the trigger character.
func (s *Suggester) Suggest(query string) []string {
	var names []string
	ok := false
	if s.script != nil {
		names, ok = s.script.Suggest(query, s.users)
	}
	if !ok {
		names = s.rank(query)
	}

	prefix := string(s.trigger)
	out := make([]string, 0, len(names))
	for _, n := range names {
		if s.limit > 0 && len(out) == s.limit {
			break
		}
		if n == "" {
			continue
		}
		if !strings.HasPrefix(n, prefix) {
			n = prefix + n
		}
		out = append(out, n)
	}
	return out
}

// rank orders the users that fuzzy-match query, best first.
func (s *Suggester) rank(query string) []string {
	ranked := s.ranker.Rank(query, s.limit)
	out := make([]string, len(ranked))
	for i, c := range ranked {
		out[i] = c.Name
	}
	return out
}
