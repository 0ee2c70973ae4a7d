// ABOUTME: Allocator abstraction backing buffer list storage
// ABOUTME: Provides runtime-backed, pooling, and budget-limited allocators
package abl

import (
	"errors"
	"fmt"
	"sync"
)

// ErrBudgetExceeded is returned by LimitAllocator when a request would
// push the outstanding byte total past its budget.
var ErrBudgetExceeded = errors.New("allocation budget exceeded")

// Allocator hands out and takes back raw byte storage for channel
// buffers. Alloc is called with sizes greater than zero only. Free must
// accept exactly the slices Alloc returned; the exactly-once release
// discipline is the caller's responsibility.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(buf []byte)
}

// GoAllocator delegates to the Go runtime. Free is a no-op and Alloc
// never fails.
type GoAllocator struct{}

// Alloc returns a fresh zeroed slice of the requested size.
func (GoAllocator) Alloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

// Free is a no-op; the garbage collector reclaims the storage.
func (GoAllocator) Free([]byte) {}

// DefaultAllocator is the allocator used by Alloc and Copy unless the
// caller picks one explicitly via AllocIn or CopyIn.
var DefaultAllocator Allocator = GoAllocator{}

// PoolAllocator recycles freed buffers through power-of-two size
// classes. Reuse is deterministic (last freed, first handed out per
// class), which makes release discipline observable in tests, and
// recycled memory is returned dirty, so callers needing silence must
// clear it themselves.
type PoolAllocator struct {
	mu       sync.Mutex
	classes  map[int][][]byte
	perClass int // retained buffers per class
	live     int // buffers handed out and not yet returned
}

// NewPoolAllocator creates a pool that retains up to perClass freed
// buffers in each size class. A non-positive perClass disables
// retention, degrading the pool to plain runtime allocation.
func NewPoolAllocator(perClass int) *PoolAllocator {
	return &PoolAllocator{
		classes:  make(map[int][][]byte),
		perClass: perClass,
	}
}

// Alloc returns a buffer of the requested size, reusing a pooled buffer
// of the same size class when one is available.
func (p *PoolAllocator) Alloc(size int) ([]byte, error) {
	class := sizeClass(size)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.live++
	if free := p.classes[class]; len(free) > 0 {
		buf := free[len(free)-1]
		p.classes[class] = free[:len(free)-1]
		return buf[:size], nil
	}
	return make([]byte, class)[:size], nil
}

// Free returns a buffer to its size class. Buffers whose capacity is not
// a class the pool produced are dropped for the garbage collector.
func (p *PoolAllocator) Free(buf []byte) {
	if buf == nil {
		return
	}
	class := cap(buf)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.live--
	if class != sizeClass(class) {
		return
	}
	if len(p.classes[class]) >= p.perClass {
		return
	}
	p.classes[class] = append(p.classes[class], buf[:class])
}

// Live reports how many buffers are currently handed out.
func (p *PoolAllocator) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}

// Pooled reports how many freed buffers are retained across all classes.
func (p *PoolAllocator) Pooled() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, free := range p.classes {
		n += len(free)
	}
	return n
}

// sizeClass rounds size up to the next power of two, with a floor that
// keeps tiny buffers from fragmenting into many classes.
func sizeClass(size int) int {
	const minClass = 64
	class := minClass
	for class < size {
		class <<= 1
	}
	return class
}

// LimitAllocator wraps another allocator with a byte budget. Requests
// that would exceed the budget fail with ErrBudgetExceeded, making the
// recoverable allocation-failure path reachable outside tests.
type LimitAllocator struct {
	inner  Allocator
	budget int

	mu   sync.Mutex
	used int
}

// NewLimitAllocator wraps inner with a budget of the given number of
// bytes across all outstanding allocations.
func NewLimitAllocator(inner Allocator, budget int) *LimitAllocator {
	return &LimitAllocator{inner: inner, budget: budget}
}

// Alloc reserves size bytes of budget and delegates to the wrapped
// allocator. The reservation is released again if the inner allocation
// fails.
func (a *LimitAllocator) Alloc(size int) ([]byte, error) {
	a.mu.Lock()
	if a.used+size > a.budget {
		used := a.used
		a.mu.Unlock()
		return nil, fmt.Errorf("%d bytes requested with %d of %d in use: %w", size, used, a.budget, ErrBudgetExceeded)
	}
	a.used += size
	a.mu.Unlock()

	buf, err := a.inner.Alloc(size)
	if err != nil {
		a.mu.Lock()
		a.used -= size
		a.mu.Unlock()
		return nil, err
	}
	return buf, nil
}

// Free releases the buffer's budget reservation and hands it back to
// the wrapped allocator.
func (a *LimitAllocator) Free(buf []byte) {
	if buf == nil {
		return
	}
	a.mu.Lock()
	a.used -= len(buf)
	a.mu.Unlock()
	a.inner.Free(buf)
}

// Used reports the bytes currently reserved against the budget.
func (a *LimitAllocator) Used() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.used
}
