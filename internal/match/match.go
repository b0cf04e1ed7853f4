// Package match selects and orders projects for a query.
package match

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/gurisko/jbp/internal/ide"
)

// Matcher decides whether text matches a query. Matching is case-insensitive.
type Matcher struct {
	query string
	fuzzy bool
}

func New(query string, fuzzyMatching bool) *Matcher {
	return &Matcher{
		query: strings.ToLower(strings.TrimSpace(query)),
		fuzzy: fuzzyMatching,
	}
}

// Match reports whether any of fields matches. An empty query matches everything.
func (m *Matcher) Match(fields ...string) bool {
	if m.query == "" {
		return true
	}
	for _, f := range fields {
		if m.matchOne(f) {
			return true
		}
	}
	return false
}

func (m *Matcher) matchOne(field string) bool {
	if strings.Contains(strings.ToLower(field), m.query) {
		return true
	}
	if !m.fuzzy {
		return false
	}
	return len(fuzzy.Find(m.query, []string{field})) > 0
}

type Options struct {
	Fuzzy     bool
	MatchPath bool // also match against the project path, not only the name
}

// Rank returns the projects matching query, most recently opened first.
func Rank(projects []ide.Project, query string, opts Options) []ide.Project {
	m := New(query, opts.Fuzzy)

	matches := make([]ide.Project, 0, len(projects))
	for _, p := range projects {
		fields := []string{p.Name}
		if opts.MatchPath {
			fields = append(fields, p.Path)
		}
		if m.Match(fields...) {
			matches = append(matches, p)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].LastOpened > matches[j].LastOpened
	})
	return matches
}
