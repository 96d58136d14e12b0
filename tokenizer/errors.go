package tokenizer

import "errors"

// Sentinel errors for the failure kinds that originate inside the core
// (rank table, piece splitter, BPE engine, special splitter). The façade
// package re-exports these so callers never need to import this package
// directly just to do an errors.Is check.
var (
	ErrInvalidPatStr         = errors.New("invalid pattern string")
	ErrInvalidMergeableRanks = errors.New("invalid mergeable ranks")
	ErrInvalidSpecialTokens  = errors.New("invalid special tokens")
	ErrInvalidSpecialRegex   = errors.New("invalid special token regex")
	ErrUnknownSpecialToken   = errors.New("unknown special token")
	ErrMissingRank           = errors.New("missing rank")
	ErrUnknownTokenID        = errors.New("unknown token id")
)
