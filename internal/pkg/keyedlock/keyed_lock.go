// Package keyedlock provides an in-process mutex keyed by string.
//
// The workflow service must serialize concurrent operations on the same
// order while letting operations on different orders proceed in parallel.
// A single mutex would serialize everything; a mutex per key held in a map
// forever would leak. KeyedLock reference-counts the per-key entries and
// removes them when the last holder releases.
package keyedlock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyedLock is a set of named mutexes that exist only while held or awaited.
// The zero value is not usable; create instances via NewKeyedLock.
type KeyedLock struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewKeyedLock creates an empty KeyedLock.
func NewKeyedLock() *KeyedLock {
	return &KeyedLock{entries: make(map[string]*entry)}
}

// Lock acquires the mutex for key, blocking while another goroutine holds it.
func (l *KeyedLock) Lock(key string) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key. Calling Unlock for a key that is not
// held panics, matching sync.Mutex semantics.
func (l *KeyedLock) Unlock(key string) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		l.mu.Unlock()
		panic("keyedlock: unlock of unlocked key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
	l.mu.Unlock()

	e.mu.Unlock()
}
