package validator

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/specialistvlad/axiomgrid/internal/validation"
)

// DefaultCacheSize is the number of outcomes Cached keeps by default.
const DefaultCacheSize = 1024

// Cached memoizes outcomes of another validator. Repairers that oscillate
// between the same candidates hit the cache instead of re-scanning.
type Cached struct {
	next  Interface
	cache *lru.Cache[string, validation.Outcome]
}

var _ Interface = (*Cached)(nil)

// NewCached wraps next with an LRU cache of the given size.
func NewCached(next Interface, size int) (*Cached, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, validation.Outcome](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create validation cache: %w", err)
	}
	return &Cached{next: next, cache: cache}, nil
}

// Validate returns the cached outcome for (code, language) or computes it.
// The returned findings slice is shared with the cache and must not be
// modified.
func (c *Cached) Validate(code, language string) validation.Outcome {
	key := cacheKey(code, language)
	if o, ok := c.cache.Get(key); ok {
		return o
	}
	o := c.next.Validate(code, language)
	c.cache.Add(key, o)
	return o
}

// Len returns the number of cached outcomes.
func (c *Cached) Len() int {
	return c.cache.Len()
}

func cacheKey(code, language string) string {
	h := sha256.New()
	h.Write([]byte(strings.ToLower(language)))
	h.Write([]byte{0})
	h.Write([]byte(code))
	return hex.EncodeToString(h.Sum(nil))
}
