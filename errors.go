package tiktoken

import (
	"errors"

	"github.com/basalt-run/tiktoken-go/tokenizer"
)

// Sentinel errors identifying each distinguishable failure kind. Callers
// match against these with errors.Is; the wrapping fmt.Errorf call
// at each site supplies the offending value. The ones that originate inside
// the core are re-exported from the tokenizer package so callers never need
// to import it directly.
var (
	ErrInvalidPatStr               = tokenizer.ErrInvalidPatStr
	ErrInvalidMergeableRanks       = tokenizer.ErrInvalidMergeableRanks
	ErrInvalidSpecialTokens        = tokenizer.ErrInvalidSpecialTokens
	ErrInvalidSpecialRegex         = tokenizer.ErrInvalidSpecialRegex
	ErrUnknownSpecialToken         = tokenizer.ErrUnknownSpecialToken
	ErrMissingRank                 = tokenizer.ErrMissingRank
	ErrUnknownTokenID              = tokenizer.ErrUnknownTokenID
	ErrInvalidSpecialTokenMatching = errors.New("invalid special token matching mode")
	ErrUnknownEncoding             = errors.New("unknown encoding")
	ErrUnknownModel                = errors.New("unknown model")
)
