package sqltpl

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/canonical/sqltpl/internal/template"
)

// DefaultCacheSize is the number of parsed templates kept by a DB unless
// WithCacheSize is given.
const DefaultCacheSize = 256

// templateCache caches parsed templates. The key is the template after its
// conditional blocks have been resolved, so a template with blocks occupies
// at most two entries: one with the blocks kept and one with them removed.
//
// Parsed templates are immutable and are shared by concurrent builds. The
// underlying LRU does its own locking.
type templateCache struct {
	parsed *lru.Cache[string, *template.Parsed]
}

// newTemplateCache returns a cache holding up to size parsed templates. A
// size of zero or less disables caching and nil is returned.
func newTemplateCache(size int) *templateCache {
	if size <= 0 {
		return nil
	}
	c, err := lru.New[string, *template.Parsed](size)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &templateCache{parsed: c}
}

// parse returns the parsed form of input, parsing and storing it on a miss.
// It is safe to call on a nil cache.
func (tc *templateCache) parse(input string) *template.Parsed {
	if tc == nil {
		return template.NewParser().Parse(input)
	}
	if pt, ok := tc.parsed.Get(input); ok {
		return pt
	}
	pt := template.NewParser().Parse(input)
	// Another goroutine may have stored the same template since Get. The
	// two parses are identical so it does not matter which one is kept.
	tc.parsed.Add(input, pt)
	return pt
}

// len returns the number of cached templates.
func (tc *templateCache) len() int {
	if tc == nil {
		return 0
	}
	return tc.parsed.Len()
}
