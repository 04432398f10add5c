package loader

import (
	"sync"
	"unsafe"
)

// Key identifies a cache slot: either a file path, or the identity of
// an in-memory buffer the caller promises is stable and immutable for
// as long as any loader references it (§4.6: "keyed on either file
// path... or data-pointer identity, for memory-opened, non-copy
// loaders").
type Key struct {
	path string
	ptr  uintptr
}

// PathKey builds a cache key for a path-opened loader.
func PathKey(path string) Key { return Key{path: path} }

// PointerKey builds a cache key for a memory-opened, non-copy loader,
// identified by the backing slice's address. Callers must only use
// this for data they guarantee stays alive and unmoved for as long as
// any loader holds it (the contract OpenBytes(data, copy=false)
// documents).
func PointerKey(data []byte) Key {
	if len(data) == 0 {
		return Key{}
	}
	return Key{ptr: uintptr(unsafe.Pointer(unsafe.SliceData(data)))}
}

type refEntry struct {
	loader Loader
	refs   int
}

// Cache is the process-wide loader cache (§4.6, §5): a single mutex
// guards a map from Key to a refcounted Loader. A generic
// Get/Set/GetOrCreate cache wrapper with LRU-by-access-time eviction is
// a poor fit here — a loader's lifetime must be refcount-owned (destroy
// exactly at zero references, never earlier or by a background
// evictor), and mutating a cached entry's refcount needs to happen
// under the same lock that guards the entry's existence, which such a
// wrapper doesn't expose. So this package implements the single mutex
// and map directly instead.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*refEntry
}

// globalCache is the single process-wide instance every package-level
// Acquire/Release call in this file operates on, matching spec §4.6's
// "the library maintains a process-wide list of active loaders".
var globalCache = NewCache()

// NewCache constructs an independent loader cache. Tests use this to
// avoid sharing state with the process-wide instance; production code
// uses the package-level Acquire/Release/Flush functions instead.
func NewCache() *Cache {
	return &Cache{entries: make(map[Key]*refEntry)}
}

// Acquire returns a shared Loader for key, creating it via create if
// this is the first reference. shareable must be false for formats
// spec §4.6 excludes from caching (SVG, Lottie/JSON animations, or any
// load done with copy=true on memory data): a non-shareable Acquire
// always calls create and never stores the result, so the cache does
// not track that loader: Release does nothing for it, and the caller
// closes it directly.
func (c *Cache) Acquire(key Key, shareable bool, create func() (Loader, error)) (Loader, error) {
	if !shareable {
		return create()
	}
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		e.refs++
		c.mu.Unlock()
		return e.loader, nil
	}
	c.mu.Unlock()

	l, err := create()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		// Lost a race with a concurrent Acquire for the same key;
		// keep the winner, discard ours.
		e.refs++
		_ = l.Close()
		return e.loader, nil
	}
	c.entries[key] = &refEntry{loader: l, refs: 1}
	return l, nil
}

// Release decrements key's sharing counter and destroys the loader
// (closing it) once it reaches zero. Release on a key acquired with
// shareable=false, or not found, is the caller's responsibility to
// avoid — loader.Close the non-shareable loader directly instead.
func (c *Cache) Release(key Key) error {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return nil
	}
	e.refs--
	if e.refs > 0 {
		c.mu.Unlock()
		return nil
	}
	delete(c.entries, key)
	c.mu.Unlock()
	return e.loader.Close()
}

// Len reports the number of distinct cached loaders, for tests.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Flush closes and drops every cached loader, ignoring Close errors
// (mirroring the caller-is-done-anyway semantics of Term()). Used by
// the process-wide cache's term hook (see init.go).
func (c *Cache) Flush() {
	c.mu.Lock()
	entries := c.entries
	c.entries = make(map[Key]*refEntry)
	c.mu.Unlock()
	if cacheLogger != nil {
		cacheLogger.Debug("loader: flushing cache", "entries", len(entries))
	}
	for _, e := range entries {
		if err := e.loader.Close(); err != nil && cacheLogger != nil {
			cacheLogger.Error("loader: close failed during flush", "error", err)
		}
	}
}

// Acquire/Release/Flush on the process-wide cache.
func Acquire(key Key, shareable bool, create func() (Loader, error)) (Loader, error) {
	return globalCache.Acquire(key, shareable, create)
}

func Release(key Key) error { return globalCache.Release(key) }

func FlushGlobalCache() { globalCache.Flush() }

// cacheLen reports the process-wide cache's size, for tests.
func cacheLen() int { return globalCache.Len() }
