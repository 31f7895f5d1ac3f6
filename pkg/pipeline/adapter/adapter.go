/*
Copyright 2025 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package adapter provides `SafeAdapter`, a goroutine-safe facade over a single `framework.Container` discipline.
//
// The adapter owns the container's only lock and its not-empty condition. All ordering decisions stay inside the
// container; all synchronization decisions stay here. Blocking consumption (`WaitAndPop`) uses a predicate-guarded
// condition wait with cooperative cancellation through `context.Context`, and joint operations over two adapters
// (`Swap`) take both locks in a stable identity order so opposing swaps cannot deadlock.
package adapter

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/types"
)

// nextAdapterID hands out the process-unique identity keys used to order joint locks.
var nextAdapterID atomic.Uint64

// accessorFunc reads the current element of the wrapped container.
type accessorFunc func() types.ElementHandle

// SafeAdapter wraps a `framework.Container` behind one mutex and one condition variable, yielding a goroutine-safe
// view of the discipline. Many producers and many consumers may operate on the same adapter concurrently.
//
// The discipline's current-element accessor is resolved exactly once, at construction; steady-state pops never repeat
// the capability inspection. A successful pop always returns the element the discipline's accessor reported under the
// same critical section, so no interleaving can slip a different element in between.
type SafeAdapter[T any] struct {
	// id is the stable identity key establishing the global lock order between adapters (see Swap).
	id uint64

	// mu guards container and access. It is never held across a blocking operation; waits happen only inside
	// nonEmpty.Wait, which releases it.
	mu       sync.Mutex
	nonEmpty *sync.Cond

	container framework.Container
	access    accessorFunc
}

// New constructs a `SafeAdapter` over the given container and seeds it with the provided values, in order.
//
// The container must implement exactly one of `framework.FrontAccessor` or `framework.TopAccessor`; construction
// fails with `framework.ErrNoCurrentAccessor` or `framework.ErrAmbiguousCurrentAccessor` otherwise, and with
// `framework.ErrNilContainer` for a nil container.
//
// Each seed value is wrapped in a fresh `types.ElementHandle` before insertion, so the adapter's elements never alias
// handles held elsewhere. The container must not be touched by the caller after it is handed over.
func New[T any](container framework.Container, seed ...T) (*SafeAdapter[T], error) {
	if container == nil {
		return nil, framework.ErrNilContainer
	}
	access, err := resolveAccess(container)
	if err != nil {
		return nil, fmt.Errorf("inspecting container %q: %w", container.Name(), err)
	}
	a := &SafeAdapter[T]{
		id:        nextAdapterID.Add(1),
		container: container,
		access:    access,
	}
	a.nonEmpty = sync.NewCond(&a.mu)
	for _, value := range seed {
		a.container.Push(types.NewElementHandle(value))
	}
	return a, nil
}

// resolveAccess inspects the container for its single current-element accessor and captures it in a closure.
func resolveAccess(container framework.Container) (accessorFunc, error) {
	front, hasFront := container.(framework.FrontAccessor)
	top, hasTop := container.(framework.TopAccessor)
	switch {
	case hasFront && hasTop:
		return nil, framework.ErrAmbiguousCurrentAccessor
	case hasFront:
		return front.Front, nil
	case hasTop:
		return top.Top, nil
	default:
		return nil, framework.ErrNoCurrentAccessor
	}
}

// Push inserts the value without waking any waiter. A goroutine blocked in `WaitAndPop` discovers the element at its
// next wake; use `PushAndNotify` when the insertion should cause that wake.
func (a *SafeAdapter[T]) Push(value T) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.container.Push(types.NewElementHandle(value))
}

// PushAndNotify inserts the value and wakes exactly one goroutine blocked in `WaitAndPop`, if any. When no goroutine
// is waiting the notification is a no-op and the element is simply retained; nothing is lost.
func (a *SafeAdapter[T]) PushAndNotify(value T) {
	a.mu.Lock()
	a.container.Push(types.NewElementHandle(value))
	a.mu.Unlock()
	a.nonEmpty.Signal()
}

// WaitAndPop blocks until an element is available, then removes and returns the discipline's current element.
//
// Cancellation is cooperative: when ctx is done and the adapter is empty, the wait ends with ctx's error. When
// elements are present, delivery wins over cancellation, so an element never evaporates between the wake and the
// return. With a never-cancelled ctx (such as `context.Background()`) the call cannot fail and waits as long as it
// takes.
func (a *SafeAdapter[T]) WaitAndPop(ctx context.Context) (T, error) {
	stop := context.AfterFunc(ctx, func() {
		// The lock round trip orders the broadcast after the waiter's predicate check, so every waiter re-examines ctx.
		a.mu.Lock()
		defer a.mu.Unlock()
		a.nonEmpty.Broadcast()
	})
	defer stop()

	a.mu.Lock()
	defer a.mu.Unlock()
	for a.container.Empty() {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		a.nonEmpty.Wait()
	}
	return a.popCurrentLocked(), nil
}

// TryPop removes and returns the discipline's current element without blocking.
// The boolean result reports whether an element was present.
func (a *SafeAdapter[T]) TryPop() (value T, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.container.Empty() {
		var zero T
		return zero, false
	}
	return a.popCurrentLocked(), true
}

// Pop removes and returns the discipline's current element, failing with `types.ErrAdapterEmpty` when the adapter
// holds none. Emptiness is an expected, recoverable condition; callers that prefer not to treat it as an error should
// use `TryPop`.
func (a *SafeAdapter[T]) Pop() (T, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.container.Empty() {
		var zero T
		return zero, types.ErrAdapterEmpty
	}
	return a.popCurrentLocked(), nil
}

// popCurrentLocked reads the current element through the resolved accessor, then removes it.
// Contract: a.mu must be held and the container must be non-empty.
func (a *SafeAdapter[T]) popCurrentLocked() T {
	handle := a.access()
	a.container.Pop()
	return handle.Value().(T)
}

// Swap exchanges the wrapped containers, and their resolved accessors, of the two adapters. The adapters' identities,
// locks and waiters stay where they are; only the contents move.
//
// Both locks are taken in increasing id order, so two goroutines swapping the same pair in opposite directions cannot
// deadlock. Swapping an adapter with itself, or with nil, is a no-op. No waiters are woken: as with `Push`, a waiter
// observes the exchanged contents at its next wake.
func (a *SafeAdapter[T]) Swap(other *SafeAdapter[T]) {
	if other == nil || other == a {
		return
	}
	first, second := a, other
	if second.id < first.id {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	a.container, other.container = other.container, a.container
	a.access, other.access = other.access, a.access
}

// Clone returns a new adapter over a structural copy of the wrapped container. The clone has its own lock, condition
// and identity; only the element payloads remain shared, through the handles. Concurrent operations on the original
// during Clone serialize against it, so the copy is a consistent snapshot.
func (a *SafeAdapter[T]) Clone() *SafeAdapter[T] {
	a.mu.Lock()
	defer a.mu.Unlock()

	clone := &SafeAdapter[T]{
		id:        nextAdapterID.Add(1),
		container: a.container.Clone(),
	}
	// Clone returns the container's own concrete type, which already passed resolution at construction.
	clone.access, _ = resolveAccess(clone.container)
	clone.nonEmpty = sync.NewCond(&clone.mu)
	return clone
}

// Len returns the number of elements currently held.
func (a *SafeAdapter[T]) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.container.Len()
}

// Name returns the wrapped container implementation's name. The lock is required because `Swap` can replace the
// wrapped container at any time.
func (a *SafeAdapter[T]) Name() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.container.Name()
}

// Capabilities returns the wrapped container's discipline capabilities.
func (a *SafeAdapter[T]) Capabilities() []framework.DisciplineCapability {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.container.Capabilities()
}
