package tracker

import "sync"

// keyedMutex serializes writes per aggregate root (objective id). Entries
// are never evicted; the set of live objectives is small.
type keyedMutex struct {
	mu   sync.Mutex
	held map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{held: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the key and returns its unlock func.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.held[key]
	if !ok {
		m = &sync.Mutex{}
		k.held[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
