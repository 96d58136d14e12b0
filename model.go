package tiktoken

import (
	"fmt"
	"strings"
)

// modelPrefixes maps a model-name prefix to its encoding, longest prefix
// wins. Exact names (e.g. "text-embedding-ada-002") are just prefixes of
// themselves.
var modelPrefixes = []struct {
	prefix   string
	encoding Name
}{
	{"gpt-4o", O200kBase},
	{"gpt-4", Cl100kBase},
	{"gpt-3.5-turbo", Cl100kBase},
	{"text-embedding-ada-002", Cl100kBase},
	{"text-embedding-3-", Cl100kBase},
	{"text-davinci-003", P50kBase},
	{"text-davinci-002", P50kBase},
	{"code-", P50kBase},
	{"text-davinci-001", R50kBase},
	{"davinci", R50kBase},
	{"curie", R50kBase},
	{"babbage", R50kBase},
	{"ada", R50kBase},
}

// EncodingForModel resolves a model name to its encoding name, matching the
// longest registered prefix.
func EncodingForModel(model string) (Name, error) {
	best := -1
	var bestEncoding Name
	for _, m := range modelPrefixes {
		if strings.HasPrefix(model, m.prefix) && len(m.prefix) > best {
			best = len(m.prefix)
			bestEncoding = m.encoding
		}
	}
	if best < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
	return bestEncoding, nil
}
