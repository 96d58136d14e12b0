package tiktoken

import "github.com/basalt-run/tiktoken-go/tokenizer"

// Name identifies one of the four supported encodings.
type Name string

// Supported encoding names.
const (
	Cl100kBase Name = "cl100k_base"
	P50kBase   Name = "p50k_base"
	R50kBase   Name = "r50k_base"
	O200kBase  Name = "o200k_base"
)

// patStrFor returns the piece-splitter regex source for name. The patterns
// are reproduced verbatim from the reference tokenizer and must not be
// edited for style.
func patStrFor(name Name) (string, bool) {
	switch name {
	case Cl100kBase:
		return tokenizer.PatCl100k, true
	case P50kBase, R50kBase:
		return tokenizer.PatP50k, true
	case O200kBase:
		return tokenizer.PatO200k, true
	default:
		return "", false
	}
}

// specialsFor returns the special-token table for name.
func specialsFor(name Name) (map[string]uint32, bool) {
	switch name {
	case Cl100kBase:
		return map[string]uint32{
			"<|endoftext|>":   100257,
			"<|fim_prefix|>":  100258,
			"<|fim_middle|>":  100259,
			"<|fim_suffix|>":  100260,
			"<|endofprompt|>": 100276,
		}, true
	case P50kBase, R50kBase:
		return map[string]uint32{"<|endoftext|>": 50256}, true
	case O200kBase:
		// Intentionally minimal: the full o200k_base special-token set is
		// deferred until verified against the reference.
		return map[string]uint32{"<|endoftext|>": 199999}, true
	default:
		return nil, false
	}
}
