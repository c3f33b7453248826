package loader

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cienporcien/everest-core/internal/document"
)

// DefaultCacheSize bounds the number of parsed documents kept per run.
const DefaultCacheSize = 512

// Cache holds validated documents keyed by absolute path. One cache belongs
// to one generator run; files are assumed not to change during the run.
type Cache struct {
	docs *lru.Cache[string, *document.Document]
}

// NewCache creates a cache holding up to size documents.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	docs, err := lru.New[string, *document.Document](size)
	if err != nil {
		return nil, err
	}
	return &Cache{docs: docs}, nil
}

// Get returns the cached document for path.
func (c *Cache) Get(path string) (*document.Document, bool) {
	if c == nil {
		return nil, false
	}
	return c.docs.Get(path)
}

// Add stores doc under path.
func (c *Cache) Add(path string, doc *document.Document) {
	if c == nil {
		return
	}
	c.docs.Add(path, doc)
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.docs.Len()
}
