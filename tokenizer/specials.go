package tokenizer

import (
	"fmt"
	"sort"

	"github.com/dlclark/regexp2"
)

// SpecialMatching selects how overlapping special-token triggers resolve
// when more than one could match at the same position.
type SpecialMatching string

const (
	// MatchParity compiles triggers with no length sorting, in Go map
	// iteration order; the regex engine's first-alternative-wins rule decides
	// overlaps, so which of two overlapping triggers wins is not fixed. This
	// mirrors the reference tokenizer and is the default.
	MatchParity SpecialMatching = "parity"
	// MatchLongest sorts triggers by descending byte length (ties broken
	// lexicographically) before compiling, so the longest trigger always
	// wins at a shared start position.
	MatchLongest SpecialMatching = "longest"
)

// segmentKind tags a splitter segment as literal special-token text or
// ordinary text destined for the piece splitter.
type segmentKind int

const (
	segText segmentKind = iota
	segSpecial
)

// segment is a two-variant tagged union: either arbitrary text or a
// literal trigger match.
type segment struct {
	kind segmentKind
	text string
}

// specialSplitter splits raw input around occurrences of trigger strings.
type specialSplitter struct {
	re       *regexp2.Regexp
	triggers map[string]struct{}
}

// newSpecialSplitter compiles the trigger alternation for the given matching
// mode. A nil splitter means the caller should bypass special handling
// entirely: there were no triggers to compile.
func newSpecialSplitter(specials map[string]uint32, mode SpecialMatching) (*specialSplitter, error) {
	if len(specials) == 0 {
		return nil, nil
	}
	triggers := make([]string, 0, len(specials))
	for t := range specials {
		triggers = append(triggers, t)
	}
	switch mode {
	case MatchLongest:
		sort.Slice(triggers, func(i, j int) bool {
			if len(triggers[i]) != len(triggers[j]) {
				return len(triggers[i]) > len(triggers[j])
			}
			return triggers[i] < triggers[j]
		})
	case MatchParity:
		// No sorting: triggers stay in map iteration order, which Go leaves
		// unspecified and which can differ from one construction to the next.
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSpecialTokens, mode)
	}
	pattern := ""
	for i, t := range triggers {
		if i > 0 {
			pattern += "|"
		}
		pattern += regexp2.Escape(t)
	}
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpecialRegex, err)
	}
	set := make(map[string]struct{}, len(specials))
	for t := range specials {
		set[t] = struct{}{}
	}
	return &specialSplitter{re: re, triggers: set}, nil
}

// Split returns the ordered interleaving of text and special segments for
// the given input.
func (s *specialSplitter) Split(text string) ([]segment, error) {
	if s == nil || text == "" {
		if text == "" {
			return nil, nil
		}
		return []segment{{kind: segText, text: text}}, nil
	}
	var out []segment
	consumed := 0
	m, err := s.re.FindStringMatch(text)
	if err != nil {
		return nil, fmt.Errorf("special split: %w", err)
	}
	for m != nil {
		if m.Index > consumed {
			out = append(out, segment{kind: segText, text: text[consumed:m.Index]})
		}
		trigger := m.String()
		if _, ok := s.triggers[trigger]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSpecialToken, trigger)
		}
		out = append(out, segment{kind: segSpecial, text: trigger})
		consumed = m.Index + m.Length
		m, err = s.re.FindNextMatch(m)
		if err != nil {
			return nil, fmt.Errorf("special split: %w", err)
		}
	}
	if consumed < len(text) {
		out = append(out, segment{kind: segText, text: text[consumed:]})
	}
	return out, nil
}
