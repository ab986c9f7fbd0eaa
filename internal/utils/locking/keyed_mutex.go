package locking

import (
	"sort"
	"sync"
)

// KeyedMutex provides mutual exclusion scoped to string keys. The ledger
// engine uses one instance keyed by account number so that concurrent
// operations on the same account serialize their read-modify-write of the
// balance, while operations on unrelated accounts proceed in parallel.
//
// Entries are reference counted and removed once the last holder releases,
// so the map does not grow with the number of accounts ever seen.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*lockEntry)}
}

// Lock acquires the mutex for key, blocking until it is available.
func (km *KeyedMutex) Lock(key string) {
	km.mu.Lock()
	e, ok := km.entries[key]
	if !ok {
		e = &lockEntry{}
		km.entries[key] = e
	}
	e.refs++
	km.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key. It must only be called by the holder.
func (km *KeyedMutex) Unlock(key string) {
	km.mu.Lock()
	e, ok := km.entries[key]
	if !ok {
		km.mu.Unlock()
		panic("locking: unlock of unheld key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(km.entries, key)
	}
	km.mu.Unlock()

	e.mu.Unlock()
}

// LockAll acquires the mutexes for all keys in sorted order. Acquiring in a
// fixed global order prevents deadlock when two transfers touch the same pair
// of accounts in opposite directions. Duplicate keys are acquired once.
func (km *KeyedMutex) LockAll(keys ...string) {
	for _, key := range sortedUnique(keys) {
		km.Lock(key)
	}
}

// UnlockAll releases the mutexes for all keys, in reverse acquisition order.
func (km *KeyedMutex) UnlockAll(keys ...string) {
	unique := sortedUnique(keys)
	for i := len(unique) - 1; i >= 0; i-- {
		km.Unlock(unique[i])
	}
}

func sortedUnique(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
