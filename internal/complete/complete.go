// Package complete suggests the words a config line may start with:
// keywords, mapping commands, application commands, custom commands and
// setting names. Matching is fuzzy, so "wo" finds "win-open".
package complete

import (
	"sort"
	"strings"
	"sync"

	"github.com/dshills/keyrc/internal/config/registry"
	"github.com/dshills/keyrc/internal/rc"
)

// Kind classifies a candidate.
type Kind uint8

const (
	// Keyword is set or include.
	Keyword Kind = iota
	// Mapping is a <mode>map or <mode>unmap command.
	Mapping
	// Application is an application command.
	Application
	// Custom is a command of the host's factory.
	Custom
	// Setting is a setting name, completed after "set".
	Setting
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Keyword:
		return "keyword"
	case Mapping:
		return "mapping"
	case Application:
		return "application"
	case Custom:
		return "custom"
	case Setting:
		return "setting"
	default:
		return "unknown"
	}
}

// Candidate is a word that may be completed.
type Candidate struct {
	Name string
	Kind Kind
	Help string
	// Hidden candidates are matched only by Suggest.
	Hidden bool
}

// Match is a candidate that matched a query.
type Match struct {
	Candidate
	// Score is higher for better matches.
	Score int
	// Positions are the rune indices of the matched characters.
	Positions []int
}

// Completer matches queries against a set of candidates.
// It is safe for concurrent use.
type Completer struct {
	mu         sync.RWMutex
	candidates []Candidate
}

// New creates a completer holding the keywords and the mapping and
// application commands of cfg.
func New(cfg rc.Config) *Completer {
	c := &Completer{}
	c.Add(
		Candidate{Name: "set", Kind: Keyword, Help: "Assign a value to a setting"},
		Candidate{Name: "include", Kind: Keyword, Help: "Parse another config file"},
	)
	for _, mode := range cfg.MappingModes {
		c.Add(
			Candidate{Name: mode + "map", Kind: Mapping, Help: "Bind keys in mode " + mode},
			Candidate{Name: mode + "unmap", Kind: Mapping, Help: "Remove a binding in mode " + mode},
		)
	}
	for _, name := range cfg.ApplicationCommands {
		c.Add(Candidate{Name: name, Kind: Application})
	}
	return c
}

// Add adds candidates.
func (c *Completer) Add(candidates ...Candidate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.candidates = append(c.candidates, candidates...)
}

// AddCommands adds the commands of a factory, keeping their help text
// and completion visibility.
func (c *Completer) AddCommands(p rc.MetaDataProvider) {
	md := p.MetaData()
	names := make([]string, 0, len(md))
	for name := range md {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := md[name]
		c.Add(Candidate{Name: name, Kind: Custom, Help: m.HelpText, Hidden: m.CompletionHidden})
	}
}

// AddSettings adds the settings of r. Deprecated settings are hidden.
func (c *Completer) AddSettings(r *registry.Registry) {
	for _, s := range r.All() {
		help := s.Description
		if s.Deprecated && s.ReplacedBy != "" {
			help = "deprecated, use " + s.ReplacedBy
		}
		c.Add(Candidate{Name: s.Name, Kind: Setting, Help: help, Hidden: s.Deprecated})
	}
}

// Complete returns the visible candidates matching query, best first,
// at most limit of them when limit is positive. An empty query matches
// every visible candidate in name order.
func (c *Completer) Complete(query string, limit int) []Match {
	return c.find(strings.TrimSpace(query), limit, false)
}

// Suggest returns the best candidate for a word that is not a command,
// including hidden ones. It reports false when nothing is close.
func (c *Completer) Suggest(word string) (Candidate, bool) {
	matches := c.find(word, 1, true)
	if word == "" || len(matches) == 0 {
		return Candidate{}, false
	}
	return matches[0].Candidate, true
}

func (c *Completer) find(query string, limit int, hidden bool) []Match {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Match
	for _, cand := range c.candidates {
		if cand.Hidden && !hidden {
			continue
		}
		positions, ok := match(query, cand.Name)
		if !ok {
			continue
		}
		out = append(out, Match{Candidate: cand, Score: score(query, cand.Name, positions), Positions: positions})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Len returns the number of candidates.
func (c *Completer) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.candidates)
}
