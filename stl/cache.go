package stl

import "sync"

// Cache holds decoded meshes by resolved filename for the lifetime of one import session.
// Entries are never invalidated. It is safe for concurrent use; concurrent requests for the
// same key decode once.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	once sync.Once
	mesh *Mesh
	err  error
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

// GetOrDecode returns the mesh cached under key, or loads and decodes it. Load and decode
// failures are cached as well, so a bad asset is read once per session.
func (c *Cache) GetOrDecode(key string, load func() ([]byte, error)) (*Mesh, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if !ok {
		entry = &cacheEntry{}
		c.entries[key] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		data, err := load()
		if err != nil {
			entry.err = err
			return
		}
		entry.mesh, entry.err = Decode(data)
	})
	return entry.mesh, entry.err
}

// Len returns the number of cached keys.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
