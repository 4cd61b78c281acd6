// Package cache implements the derived-object store spec section 5
// describes: artifacts like the parameter hash, joint public key, or a
// ballot's extended base hash are expensive to recompute and often
// depend on each other, so each is produced once by a registered
// producer function and memoized by a (resource, format) key. A producer
// that tries to re-enter its own derivation (a cyclic dependency) is
// caught rather than deadlocking.
//
// Grounded on the general resource/cache shape implied across the
// original_source election-record object graph (every derived artifact
// keyed by id+format) and on Go's standard sync.RWMutex/singleflight-style
// in-progress tracking idiom the pack's repos use for concurrent caches.
package cache

import (
	"sync"

	"github.com/egguard/core/egerrors"
)

// Key identifies one derived artifact: a resource id paired with the
// encoding/format it was produced in (e.g. "joint-key"/"json",
// "ballot-42"/"cbor").
type Key struct {
	Resource string
	Format   string
}

// Producer computes the value for a Key the first time it's requested.
type Producer func() (any, error)

// Cache memoizes producer results per Key, detects recursive
// re-derivation, and is safe for concurrent use.
type Cache struct {
	mu        sync.RWMutex
	values    map[Key]any
	producers map[Key]Producer
	inFlight  map[Key]bool
}

// New builds an empty cache.
func New() *Cache {
	return &Cache{
		values:    make(map[Key]any),
		producers: make(map[Key]Producer),
		inFlight:  make(map[Key]bool),
	}
}

// Register associates a producer with a key. Registering a key twice
// overwrites its producer; it does not invalidate an already-cached
// value for that key.
func (c *Cache) Register(k Key, p Producer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.producers[k] = p
}

// Get returns the cached value for k, producing it via its registered
// producer on first access. Concurrent callers for the same key each take
// the write lock in turn; only one calls the producer, since the first to
// acquire the lock populates values before releasing it.
func (c *Cache) Get(k Key) (any, error) {
	c.mu.RLock()
	if v, ok := c.values[k]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	if v, ok := c.values[k]; ok {
		c.mu.Unlock()
		return v, nil
	}
	if c.inFlight[k] {
		c.mu.Unlock()
		return nil, &egerrors.RecursionDetected{Key: k.Resource + "/" + k.Format}
	}
	p, ok := c.producers[k]
	if !ok {
		c.mu.Unlock()
		return nil, &egerrors.DependencyFailed{Resource: k.Resource, Cause: errNoProducer(k)}
	}
	c.inFlight[k] = true
	c.mu.Unlock()

	// The producer runs without holding the lock, so a producer that
	// recursively requests its own key observes inFlight rather than
	// deadlocking on a non-reentrant mutex.
	v, err := p()

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, k)
	if err != nil {
		return nil, &egerrors.DependencyFailed{Resource: k.Resource, Cause: err}
	}
	c.values[k] = v
	return v, nil
}

type noProducerError struct{ key Key }

func (e *noProducerError) Error() string {
	return "cache: no producer registered for " + e.key.Resource + "/" + e.key.Format
}

func errNoProducer(k Key) error { return &noProducerError{key: k} }

// Invalidate drops any cached value for k, so the next Get re-derives it.
func (c *Cache) Invalidate(k Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, k)
}

// Has reports whether a value is already cached for k, without producing
// it if absent.
func (c *Cache) Has(k Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.values[k]
	return ok
}
