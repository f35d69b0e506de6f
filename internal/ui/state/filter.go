package state

import (
	"sort"
	"strings"
)

// Matcher scores a single candidate against a query. Offsets are rune
// offsets into candidate.
type Matcher interface {
	Match(query, candidate string) (score int, offsets []int, ok bool)
}

// Scored is one successful match produced by a BatchMatcher.
type Scored struct {
	Index   int
	Score   int
	Offsets []int
}

// BatchMatcher is implemented by matchers that score a whole collection more
// efficiently than one candidate at a time. Results may come in any order.
type BatchMatcher interface {
	Matcher
	MatchAll(query string, candidates []string) []Scored
}

// Match pairs a surviving item's original index with its highlighted runes.
type Match struct {
	Index   int
	Offsets []int
}

// FilterCache is the memoized result of the last filter run.
type FilterCache struct {
	Matches []Match
}

// SearchState is a live query bound to one list.
type SearchState struct {
	Query  string
	Active bool
	Cache  FilterCache
}

// AppendRunes appends typed text to the query.
func (s *SearchState) AppendRunes(r []rune) bool {
	if len(r) == 0 {
		return false
	}
	s.Query += string(r)
	return true
}

// Backspace removes the last rune of the query.
func (s *SearchState) Backspace() bool {
	if s.Query == "" {
		return false
	}
	runes := []rune(s.Query)
	s.Query = string(runes[:len(runes)-1])
	return true
}

// ClearQuery empties the query.
func (s *SearchState) ClearQuery() bool {
	if s.Query == "" {
		return false
	}
	s.Query = ""
	return true
}

// Reset deactivates the search and clears its query.
func (s *SearchState) Reset() {
	s.Active = false
	s.Query = ""
}

// Filtering reports whether the query restricts the list.
func (s *SearchState) Filtering() bool {
	return strings.TrimSpace(s.Query) != ""
}

// UpdateFilter matches query against candidates. An empty query keeps every
// candidate in order without offsets. Otherwise matches are ordered by score,
// ties keeping candidate order, and truncated to topK when topK is positive.
func UpdateFilter(query string, candidates []string, m Matcher, topK int) []Match {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		out := make([]Match, len(candidates))
		for i := range candidates {
			out[i] = Match{Index: i}
		}
		return out
	}
	if len(candidates) == 0 || m == nil {
		return []Match{}
	}
	var scored []Scored
	if bm, ok := m.(BatchMatcher); ok {
		scored = bm.MatchAll(trimmed, candidates)
	} else {
		scored = make([]Scored, 0, len(candidates))
		for i, c := range candidates {
			score, offsets, ok := m.Match(trimmed, c)
			if ok {
				scored = append(scored, Scored{Index: i, Score: score, Offsets: offsets})
			}
		}
	}
	sort.SliceStable(scored, func(a, b int) bool {
		if scored[a].Score != scored[b].Score {
			return scored[a].Score > scored[b].Score
		}
		return scored[a].Index < scored[b].Index
	})
	if topK > 0 && len(scored) > topK {
		scored = scored[:topK]
	}
	out := make([]Match, len(scored))
	for i, s := range scored {
		out[i] = Match{Index: s.Index, Offsets: s.Offsets}
	}
	return out
}
