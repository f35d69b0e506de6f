// Package match provides the scorers behind every search box.
package match

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/atomicstack/tunetable/internal/ui/state"
	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
)

// Names accepted by New.
const (
	NameFuzzy       = "fuzzy"
	NameSubsequence = "subsequence"
)

// prefixBonus lifts candidates that start with the query above every
// non-prefix match.
const prefixBonus = 1 << 16

// New returns the matcher registered under name. An empty name selects the
// fuzzy matcher.
func New(name string, preferPrefix bool) (state.Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameFuzzy:
		return Fuzzy{PreferPrefix: preferPrefix}, nil
	case NameSubsequence:
		return Subsequence{PreferPrefix: preferPrefix}, nil
	default:
		return nil, fmt.Errorf("unknown matcher %q", name)
	}
}

// Fuzzy scores with sahilm/fuzzy, which rewards consecutive runs, word
// boundaries and camel case.
type Fuzzy struct {
	PreferPrefix bool
}

func (f Fuzzy) Match(query, candidate string) (int, []int, bool) {
	found := fuzzy.Find(query, []string{candidate})
	if len(found) == 0 {
		return 0, nil, false
	}
	m := found[0]
	return f.score(query, candidate, m.Score), runeOffsets(candidate, m.MatchedIndexes), true
}

func (f Fuzzy) MatchAll(query string, candidates []string) []state.Scored {
	found := fuzzy.Find(query, candidates)
	out := make([]state.Scored, 0, len(found))
	for _, m := range found {
		out = append(out, state.Scored{
			Index:   m.Index,
			Score:   f.score(query, m.Str, m.Score),
			Offsets: runeOffsets(m.Str, m.MatchedIndexes),
		})
	}
	return out
}

func (f Fuzzy) score(query, candidate string, base int) int {
	if f.PreferPrefix && hasFoldPrefix(candidate, query) {
		return base + prefixBonus
	}
	return base
}

// Subsequence accepts candidates containing the query runes in order,
// ignoring case and diacritics, and ranks them by edit distance.
type Subsequence struct {
	PreferPrefix bool
}

func (s Subsequence) Match(query, candidate string) (int, []int, bool) {
	distance := lfuzzy.RankMatchNormalizedFold(query, candidate)
	if distance < 0 {
		return 0, nil, false
	}
	score := -distance
	if s.PreferPrefix && hasFoldPrefix(candidate, query) {
		score += prefixBonus
	}
	return score, greedyOffsets(query, candidate), true
}

// runeOffsets converts byte indexes into rune indexes.
func runeOffsets(s string, byteIdx []int) []int {
	if len(byteIdx) == 0 {
		return nil
	}
	out := make([]int, 0, len(byteIdx))
	want := 0
	r := 0
	for b := range s {
		for want < len(byteIdx) && byteIdx[want] < b {
			want++
		}
		if want == len(byteIdx) {
			break
		}
		if byteIdx[want] == b {
			out = append(out, r)
			want++
		}
		r++
	}
	return out
}

// greedyOffsets marks the leftmost in-order occurrence of each query rune.
func greedyOffsets(query, candidate string) []int {
	q := []rune(query)
	if len(q) == 0 {
		return nil
	}
	out := make([]int, 0, len(q))
	qi := 0
	ri := 0
	for _, r := range candidate {
		if qi == len(q) {
			break
		}
		if foldEqual(r, q[qi]) {
			out = append(out, ri)
			qi++
		}
		ri++
	}
	return out
}

func foldEqual(a, b rune) bool {
	return a == b || unicode.ToLower(a) == unicode.ToLower(b)
}

func hasFoldPrefix(s, prefix string) bool {
	for prefix != "" {
		if s == "" {
			return false
		}
		pr, pn := utf8.DecodeRuneInString(prefix)
		sr, sn := utf8.DecodeRuneInString(s)
		if !foldEqual(pr, sr) {
			return false
		}
		prefix = prefix[pn:]
		s = s[sn:]
	}
	return true
}
