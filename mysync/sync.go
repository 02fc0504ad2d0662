package mysync

import (
	"sync"
)

// Mutex guards a value of type T. RLock hands out the value together with the matching unlock function;
// Store replaces the value.
type Mutex[T any] struct {
	mu sync.RWMutex
	v  T
}

type MutexRUnlock struct {
	mu *sync.RWMutex
}

func NewMutex[T any](v T) *Mutex[T] {
	return &Mutex[T]{v: v}
}

func (mu *Mutex[T]) RLock() (T, MutexRUnlock) {
	mu.mu.RLock()
	return mu.v, MutexRUnlock{&mu.mu}
}

// Load returns a copy of the value.
func (mu *Mutex[T]) Load() T {
	v, u := mu.RLock()
	defer u.RUnlock()
	return v
}

// Store replaces the value.
func (mu *Mutex[T]) Store(v T) {
	mu.mu.Lock()
	defer mu.mu.Unlock()
	mu.v = v
}

func (u MutexRUnlock) RUnlock() { u.mu.RUnlock() }
