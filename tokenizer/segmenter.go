package tokenizer

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// Segmenter splits a UTF-8 text segment into an ordered sequence of pieces
// whose concatenation reproduces the segment's bytes exactly.
type Segmenter interface {
	Split(s string) ([]string, error)
}

// Pattern strings, preserved verbatim from the reference tokenizer. Compiled
// with regexp2 because the inline case-insensitive contraction groups and the
// Unicode property classes below are outside what Go's RE2-based regexp can
// express.
const (
	PatCl100k = `'(?i:[sdmt]|ll|ve|re)|[^\r\n\p{L}\p{N}]?\p{L}+|\p{N}{1,3}| ?[^\s\p{L}\p{N}]+[\r\n]*|\s*[\r\n]+|\s+(?!\S)|\s+`
	PatP50k   = `'(?:[sdmt]|ll|ve|re)| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+(?!\S)|\s+`
	PatO200k  = `[^\r\n\p{L}\p{N}]?[\p{Lu}\p{Lt}\p{Lm}\p{Lo}\p{M}]*[\p{Ll}\p{Lm}\p{Lo}\p{M}]+(?i:'s|'t|'re|'ve|'m|'ll|'d)?|[^\r\n\p{L}\p{N}]?[\p{Lu}\p{Lt}\p{Lm}\p{Lo}\p{M}]+[\p{Ll}\p{Lm}\p{Lo}\p{M}]*(?i:'s|'t|'re|'ve|'m|'ll|'d)?|\p{N}{1,3}| ?[^\s\p{L}\p{N}]+[\r\n/]*|\s*[\r\n]+|\s+(?!\S)|\s+`
)

// regexSegmenter wraps a compiled regexp2 pattern and walks successive
// matches, the idiom the pack's tiktoken ports (j178-tiktoken-go,
// ardanlabs-ai-training/foundation/tiktoken) all converge on.
type regexSegmenter struct {
	re *regexp2.Regexp
}

func newRegexSegmenter(pattern string) (*regexSegmenter, error) {
	re, err := regexp2.Compile(pattern, regexp2.Unicode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatStr, err)
	}
	re.MatchTimeout = 0
	return &regexSegmenter{re: re}, nil
}

func (s *regexSegmenter) Split(text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}
	var pieces []string
	m, err := s.re.FindStringMatch(text)
	if err != nil {
		return nil, fmt.Errorf("piece split: %w", err)
	}
	consumed := 0
	for m != nil {
		if m.Index > consumed {
			// Gap between matches: the reference regex is authored to be
			// exhaustive, but guard against drift by surfacing the gap as
			// its own piece rather than silently dropping bytes.
			pieces = append(pieces, text[consumed:m.Index])
		}
		pieces = append(pieces, m.String())
		consumed = m.Index + m.Length
		m, err = s.re.FindNextMatch(m)
		if err != nil {
			return nil, fmt.Errorf("piece split: %w", err)
		}
	}
	if consumed < len(text) {
		pieces = append(pieces, text[consumed:])
	}
	return pieces, nil
}

// NewRegexSegmenter compiles an arbitrary pattern string into a Segmenter,
// for callers constructing a non-stock encoding.
func NewRegexSegmenter(pattern string) (Segmenter, error) { return newRegexSegmenter(pattern) }

// NewCl100kSegmenter returns the cl100k_base piece splitter.
func NewCl100kSegmenter() (Segmenter, error) { return newRegexSegmenter(PatCl100k) }

// NewP50kSegmenter returns the p50k_base / r50k_base piece splitter; the two
// encodings share one pattern.
func NewP50kSegmenter() (Segmenter, error) { return newRegexSegmenter(PatP50k) }

// NewO200kSegmenter returns the o200k_base piece splitter.
func NewO200kSegmenter() (Segmenter, error) { return newRegexSegmenter(PatO200k) }
