// Package tiktoken provides a pure Go implementation of OpenAI's reference
// byte-pair-encoding tokenizer.
//
// It reproduces the four stock encodings (cl100k_base, p50k_base,
// r50k_base, o200k_base) bit-for-bit: the same piece-splitting regex, the
// same BPE merge order, and the same special-token handling as the
// reference implementation, so token ids produced here match those the
// reference tokenizer would produce for the same input.
//
// The o200k_base special-token table holds only <|endoftext|>; any other
// o200k_base trigger text is encoded as ordinary text.
package tiktoken
