package tiktoken

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheSize bounds the optional process-wide encoder cache, keyed by
// encoding name. Only names that load successfully are added, so at most
// the four stock encodings are ever cached; the LRU bound is a backstop.
const cacheSize = 16

var (
	cacheOnce sync.Once
	cache     *lru.Cache[Name, *Encoding]
)

func globalCache() *lru.Cache[Name, *Encoding] {
	cacheOnce.Do(func() {
		c, err := lru.New[Name, *Encoding](cacheSize)
		if err != nil {
			// Only fails for a non-positive size, which cacheSize never is.
			panic(err)
		}
		cache = c
	})
	return cache
}

// ForName returns a cached Encoding for name, building and caching it on
// first use.
func ForName(name Name) (*Encoding, error) {
	c := globalCache()
	if enc, ok := c.Get(name); ok {
		return enc, nil
	}
	enc, err := LoadEncoding(name)
	if err != nil {
		return nil, err
	}
	c.Add(name, enc)
	return enc, nil
}

// ForModel resolves model to an encoding name and returns a cached Encoding
// for it.
func ForModel(model string) (*Encoding, error) {
	name, err := EncodingForModel(model)
	if err != nil {
		return nil, err
	}
	return ForName(name)
}
