package tiktoken

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/basalt-run/tiktoken-go/tokenizer"
)

// Encoding is an immutable, constructed-once encoder/decoder for one named
// encoding. It is safe for concurrent use: encode and decode only read
// shared state.
type Encoding struct {
	name Name
	core *tokenizer.Core
}

// New builds an Encoding from raw construction inputs: the piece-splitter
// pattern string, a rank table, and an optional special-token table with
// its matching mode. This is the validating constructor; LoadEncoding
// (below) is the convenience path that resolves one of the four stock
// encodings by name.
func New(patStr string, ranks []tokenizer.RankEntry, specials map[string]uint32, matching tokenizer.SpecialMatching) (*Encoding, error) {
	if patStr == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPatStr)
	}
	if err := validateRanks(ranks); err != nil {
		return nil, err
	}
	if matching == "" {
		matching = tokenizer.MatchParity
	}
	if matching != tokenizer.MatchParity && matching != tokenizer.MatchLongest {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSpecialTokenMatching, matching)
	}

	seg, err := tokenizer.NewRegexSegmenter(patStr)
	if err != nil {
		return nil, err
	}
	core, err := tokenizer.NewCore(ranks, seg, specials, matching)
	if err != nil {
		return nil, err
	}
	return &Encoding{core: core}, nil
}

// validateRanks requires every single byte value to have an entry and
// every rank value to be pairwise distinct.
func validateRanks(ranks []tokenizer.RankEntry) error {
	if len(ranks) == 0 {
		return fmt.Errorf("%w: empty rank table", ErrInvalidMergeableRanks)
	}
	seenValue := make(map[uint32]struct{}, len(ranks))
	var haveByte [256]bool
	for _, r := range ranks {
		if len(r.Bytes) == 0 {
			return fmt.Errorf("%w: empty key", ErrInvalidMergeableRanks)
		}
		if _, dup := seenValue[r.Rank]; dup {
			return fmt.Errorf("%w: duplicate rank %d", ErrInvalidMergeableRanks, r.Rank)
		}
		seenValue[r.Rank] = struct{}{}
		if len(r.Bytes) == 1 {
			haveByte[r.Bytes[0]] = true
		}
	}
	for b := 0; b < 256; b++ {
		if !haveByte[b] {
			return fmt.Errorf("%w: missing single-byte entry 0x%02x", ErrInvalidMergeableRanks, b)
		}
	}
	return nil
}

// LoadEncoding builds one of the four stock encodings by name, fetching (or
// reading a cached copy of) its rank table via tokenizer.LoadEncoding.
func LoadEncoding(name Name) (*Encoding, error) {
	patStr, ok := patStrFor(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	specials, _ := specialsFor(name)
	ranks, err := tokenizer.LoadEncoding(string(name))
	if err != nil {
		return nil, err
	}
	enc, err := New(patStr, ranks, specials, tokenizer.MatchParity)
	if err != nil {
		return nil, err
	}
	enc.name = name
	return enc, nil
}

// Name returns the encoding's canonical name, e.g. "cl100k_base".
func (e *Encoding) Name() string { return string(e.name) }

// Encode tokenizes text, honoring special triggers unless allowSpecial is
// false.
func (e *Encoding) Encode(text string, allowSpecial bool) ([]uint32, error) {
	return e.core.Encode(text, allowSpecial)
}

// EncodeOrdinary tokenizes text with special-token handling disabled: any
// trigger bytes in text are BPE'd like ordinary text.
func (e *Encoding) EncodeOrdinary(text string) ([]uint32, error) {
	return e.core.Encode(text, false)
}

// Decode reconstructs a UTF-8 string from token ids. Maximal invalid byte
// runs are replaced with a single U+FFFD, matching the reference
// tokenizer's lossy "replace" decode behavior.
func (e *Encoding) Decode(ids []uint32) (string, error) {
	b, err := e.core.DecodeBytes(ids)
	if err != nil {
		return "", err
	}
	return toValidUTF8(b), nil
}

// DecodeBytes reconstructs the raw byte sequence for a list of token ids
// without any UTF-8 repair.
func (e *Encoding) DecodeBytes(ids []uint32) ([]byte, error) {
	return e.core.DecodeBytes(ids)
}

func toValidUTF8(b []byte) string {
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
