// Package kspin provides busy-wait mutual exclusion for process-wide console
// state: an atomic test-and-set flag, spun on contention and released on
// scope exit.
package kspin

import (
	"runtime"
	"sync/atomic"
)

// spinsBeforeYield bounds the pure busy-wait before the goroutine yields
// its thread. With a single core and no scheduler the yield is a no-op and
// the loop degenerates to a plain spin.
const spinsBeforeYield = 64

// SpinLock is a test-and-set lock. The zero value is unlocked.
// It is not reentrant: locking it twice from the same call path deadlocks.
type SpinLock struct {
	locked atomic.Bool
}

// Lock acquires the lock, spinning until it is free.
func (l *SpinLock) Lock() {
	spins := 0
	for !l.TryLock() {
		spins++
		if spins >= spinsBeforeYield {
			runtime.Gosched()
			spins = 0
		}
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
func (l *SpinLock) TryLock() bool {
	return l.locked.CompareAndSwap(false, true)
}

// Unlock releases the lock.
func (l *SpinLock) Unlock() {
	l.locked.Store(false)
}

// Guarded owns a value that may only be touched while its lock is held.
type Guarded[T any] struct {
	lock  SpinLock
	value *T
}

// New wraps v.
func New[T any](v *T) *Guarded[T] {
	return &Guarded[T]{value: v}
}

// With runs fn with exclusive access to the value. The lock is released
// when fn returns or panics.
func (g *Guarded[T]) With(fn func(v *T)) {
	g.lock.Lock()
	defer g.lock.Unlock()
	fn(g.value)
}
