package fuzzy

import (
	"slices"
	"strings"
)

// Candidate is a name ranked against a query.
type Candidate struct {
	// Name is the candidate as given to NewRanker.
	Name string

	// Score is higher for better matches. Zero for an empty query.
	Score int

	// Positions are the rune indices in Name matched by the query.
	Positions []int
}

// Ranker ranks a fixed set of names. It is safe for concurrent use.
type Ranker struct {
	names         []string
	caseSensitive bool
	cache         *cache
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithCacheSize sets how many query rankings are remembered. Zero or less
// disables the cache.
func WithCacheSize(n int) Option {
	return func(r *Ranker) {
		if n <= 0 {
			r.cache = nil
			return
		}
		r.cache = newCache(n)
	}
}

// WithCaseSensitive makes queries match case exactly.
func WithCaseSensitive() Option {
	return func(r *Ranker) {
		r.caseSensitive = true
	}
}

// NewRanker creates a Ranker over names.
func NewRanker(names []string, opts ...Option) *Ranker {
	r := &Ranker{
		names: slices.Clone(names),
		cache: newCache(DefaultCacheSize),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Names returns the names being ranked.
func (r *Ranker) Names() []string {
	return slices.Clone(r.names)
}

// Rank returns the names matching query, best first, at most limit of them
// when limit is positive.
func (r *Ranker) Rank(query string, limit int) []Candidate {
	query = strings.TrimSpace(query)
	if !r.caseSensitive {
		query = strings.ToLower(query)
	}

	if query == "" {
		n := len(r.names)
		if limit > 0 {
			n = min(n, limit)
		}
		out := make([]Candidate, n)
		for i := range out {
			out[i] = Candidate{Name: r.names[i]}
		}
		return out
	}

	if r.cache != nil {
		if cached, ok := r.cache.get(query); ok {
			return truncate(cached, limit)
		}
	}

	q := []rune(query)
	var results []Candidate
	for _, name := range r.names {
		if s, pos := r.match(q, name); s > 0 {
			results = append(results, Candidate{Name: name, Score: s, Positions: pos})
		}
	}
	slices.SortStableFunc(results, func(a, b Candidate) int {
		return b.Score - a.Score
	})

	if r.cache != nil {
		r.cache.set(query, results)
	}
	return truncate(results, limit)
}

// match scores name against the normalized query runes.
func (r *Ranker) match(query []rune, name string) (int, []int) {
	if name == "" {
		return 0, nil
	}
	original := []rune(name)
	text := original
	if !r.caseSensitive {
		text = []rune(strings.ToLower(name))
	}
	// Lowercasing can change the rune count; fall back to the folded text
	// for boundaries in that case.
	if len(text) != len(original) {
		original = text
	}

	positions := make([]int, 0, len(query))
	qi := 0
	for i := 0; i < len(text) && qi < len(query); i++ {
		if text[i] == query[qi] {
			positions = append(positions, i)
			qi++
		}
	}
	if qi != len(query) {
		return 0, nil
	}
	return score(query, original, text, positions), positions
}

func truncate(c []Candidate, limit int) []Candidate {
	if limit <= 0 || limit >= len(c) {
		return c
	}
	return c[:limit]
}
