package dataaccess

import "sync"

// Locker hands out one mutex per scope so read-modify-write cycles on a guild's documents
// do not interleave.
type Locker struct {
	mut   sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLocker creates a new Locker.
func NewLocker() *Locker {
	return &Locker{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock locks the scope and returns the unlock func.
func (l *Locker) Lock(scope string) func() {
	l.mut.Lock()
	m, ok := l.locks[scope]
	if !ok {
		m = new(sync.Mutex)
		l.locks[scope] = m
	}
	l.mut.Unlock()

	m.Lock()
	return m.Unlock
}
