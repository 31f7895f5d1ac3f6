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

package adapter_test

import (
	"context"
	"runtime"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/adapter"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline/fifo"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline/maxheap"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/types"
)

// intDescComparator orders int payloads greatest first, the ordering used by all priority scenarios in this file.
var intDescComparator = framework.NewPayloadComparator[int]("int_value_desc", func(a, b int) bool {
	return a > b
})

// newFIFOAdapter constructs an adapter over a fresh FIFO container, seeded with the given values in order.
func newFIFOAdapter(t *testing.T, seed ...int) *adapter.SafeAdapter[int] {
	t.Helper()
	c, err := discipline.NewContainerFromName(fifo.FIFOContainerName, nil)
	require.NoError(t, err, "Setup: constructing the FIFO container should not fail")
	a, err := adapter.New(c, seed...)
	require.NoError(t, err, "Setup: constructing the adapter should not fail")
	return a
}

// newMaxHeapAdapter constructs an adapter over a fresh max-heap container ordered greatest first.
func newMaxHeapAdapter(t *testing.T, seed ...int) *adapter.SafeAdapter[int] {
	t.Helper()
	c, err := discipline.NewContainerFromName(maxheap.MaxHeapContainerName, intDescComparator)
	require.NoError(t, err, "Setup: constructing the max-heap container should not fail")
	a, err := adapter.New(c, seed...)
	require.NoError(t, err, "Setup: constructing the adapter should not fail")
	return a
}

// noAccessorContainer implements `framework.Container` without a current-element accessor.
type noAccessorContainer struct{}

func (noAccessorContainer) Name() string                                   { return "NoAccessor" }
func (noAccessorContainer) Capabilities() []framework.DisciplineCapability { return nil }
func (noAccessorContainer) Len() int                                       { return 0 }
func (noAccessorContainer) Empty() bool                                    { return true }
func (noAccessorContainer) Push(types.ElementHandle)                       {}
func (noAccessorContainer) Pop()                                           {}
func (noAccessorContainer) Clone() framework.Container                     { return noAccessorContainer{} }

// bothAccessorsContainer implements `framework.Container` with both current-element accessors.
type bothAccessorsContainer struct{ noAccessorContainer }

func (bothAccessorsContainer) Name() string               { return "BothAccessors" }
func (bothAccessorsContainer) Front() types.ElementHandle { return types.ElementHandle{} }
func (bothAccessorsContainer) Top() types.ElementHandle   { return types.ElementHandle{} }

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("NilContainer", func(t *testing.T) {
		t.Parallel()
		a, err := adapter.New[int](nil)
		require.ErrorIs(t, err, framework.ErrNilContainer, "constructing over a nil container must fail")
		assert.Nil(t, a, "a failed construction must not return an adapter")
	})

	t.Run("NoCurrentAccessor", func(t *testing.T) {
		t.Parallel()
		a, err := adapter.New[int](noAccessorContainer{})
		require.ErrorIs(t, err, framework.ErrNoCurrentAccessor,
			"a container without an accessor must be rejected at construction")
		assert.Nil(t, a, "a failed construction must not return an adapter")
	})

	t.Run("AmbiguousCurrentAccessor", func(t *testing.T) {
		t.Parallel()
		a, err := adapter.New[int](bothAccessorsContainer{})
		require.ErrorIs(t, err, framework.ErrAmbiguousCurrentAccessor,
			"a container with both accessors must be rejected at construction")
		assert.Nil(t, a, "a failed construction must not return an adapter")
	})

	t.Run("SeedsInInsertionOrderForFIFO", func(t *testing.T) {
		t.Parallel()
		a := newFIFOAdapter(t, 5, 1, 3)
		require.Equal(t, 3, a.Len(), "all seed values must be inserted at construction")

		for _, want := range []int{5, 1, 3} {
			got, err := a.Pop()
			require.NoError(t, err, "popping a seeded element should not fail")
			assert.Equal(t, want, got, "a FIFO adapter must yield the seeds in insertion order")
		}
		_, err := a.Pop()
		assert.ErrorIs(t, err, types.ErrAdapterEmpty, "the adapter must be empty once every seed is popped")
	})

	t.Run("SeedsIntoPriorityOrderForMaxHeap", func(t *testing.T) {
		t.Parallel()
		a := newMaxHeapAdapter(t, 5, 1, 3)
		require.Equal(t, 3, a.Len(), "all seed values must be inserted at construction")

		for _, want := range []int{5, 3, 1} {
			got, ok := a.TryPop()
			require.True(t, ok, "popping a seeded element should succeed")
			assert.Equal(t, want, got, "a priority adapter must yield the seeds greatest first")
		}
		_, ok := a.TryPop()
		assert.False(t, ok, "the adapter must be empty once every seed is popped")
	})
}

func TestInspection(t *testing.T) {
	t.Parallel()

	a := newMaxHeapAdapter(t, 5)
	assert.Equal(t, maxheap.MaxHeapContainerName, a.Name(), "Name() must report the wrapped container's name")
	assert.Contains(t, a.Capabilities(), framework.CapabilityPriorityConfigurable,
		"Capabilities() must report the wrapped container's capabilities")
	assert.Equal(t, 1, a.Len(), "Len() must report the wrapped container's length")
}

func TestPopOnEmpty(t *testing.T) {
	t.Parallel()

	a := newFIFOAdapter(t)

	v, err := a.Pop()
	assert.ErrorIs(t, err, types.ErrAdapterEmpty, "Pop on an empty adapter must fail with ErrAdapterEmpty")
	assert.Zero(t, v, "a failing Pop must return the zero value")

	v, ok := a.TryPop()
	assert.False(t, ok, "TryPop on an empty adapter must report no element")
	assert.Zero(t, v, "a failing TryPop must return the zero value")

	// Emptiness is recoverable: the same adapter keeps working.
	a.Push(7)
	v, err = a.Pop()
	require.NoError(t, err, "Pop must succeed once an element is present")
	assert.Equal(t, 7, v, "Pop must return the pushed element")
}

func TestWaitAndPop(t *testing.T) {
	t.Parallel()

	t.Run("ReturnsImmediatelyWhenNonEmpty", func(t *testing.T) {
		t.Parallel()
		a := newFIFOAdapter(t, 11)

		v, err := a.WaitAndPop(context.Background())
		require.NoError(t, err, "WaitAndPop on a non-empty adapter must not fail")
		assert.Equal(t, 11, v, "WaitAndPop must return the discipline's current element")
	})

	t.Run("WokenByPushAndNotify", func(t *testing.T) {
		t.Parallel()
		a := newFIFOAdapter(t)

		got := make(chan int, 1)
		go func() {
			v, err := a.WaitAndPop(context.Background())
			assert.NoError(t, err, "WaitAndPop must not fail when an element arrives")
			got <- v
		}()

		// Let the consumer reach the condition wait so the test exercises the wake, not the fast path.
		time.Sleep(50 * time.Millisecond)
		a.PushAndNotify(42)

		select {
		case v := <-got:
			assert.Equal(t, 42, v, "the woken consumer must receive the pushed element")
		case <-time.After(2 * time.Second):
			t.Fatal("WaitAndPop was not woken by PushAndNotify")
		}
	})

	t.Run("CancellationEndsTheWait", func(t *testing.T) {
		t.Parallel()
		a := newFIFOAdapter(t)
		ctx, cancel := context.WithCancel(context.Background())

		errCh := make(chan error, 1)
		go func() {
			_, err := a.WaitAndPop(ctx)
			errCh <- err
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-errCh:
			assert.ErrorIs(t, err, context.Canceled, "a cancelled empty wait must surface the context error")
		case <-time.After(2 * time.Second):
			t.Fatal("WaitAndPop did not observe the context cancellation")
		}

		// The adapter survives a cancelled wait.
		a.PushAndNotify(3)
		v, err := a.WaitAndPop(context.Background())
		require.NoError(t, err, "the adapter must keep working after a cancelled wait")
		assert.Equal(t, 3, v, "the element pushed after cancellation must still be deliverable")
	})

	t.Run("DeliveryWinsOverCancellation", func(t *testing.T) {
		t.Parallel()
		a := newFIFOAdapter(t, 9)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		v, err := a.WaitAndPop(ctx)
		require.NoError(t, err, "a present element must be delivered even under a cancelled context")
		assert.Equal(t, 9, v, "the delivered element must be the discipline's current one")
	})

	t.Run("EveryWaiterServedOnePerNotify", func(t *testing.T) {
		t.Parallel()
		const numWaiters = 8
		a := newFIFOAdapter(t)

		// The deadline turns a missed wake into a clean failure instead of a hung test.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		received := make(chan int, numWaiters)
		var g errgroup.Group
		for range numWaiters {
			g.Go(func() error {
				v, err := a.WaitAndPop(ctx)
				if err != nil {
					return err
				}
				received <- v
				return nil
			})
		}

		time.Sleep(50 * time.Millisecond)
		for i := range numWaiters {
			a.PushAndNotify(i)
		}

		require.NoError(t, g.Wait(), "every blocked consumer must be woken and served")
		close(received)

		var got []int
		for v := range received {
			got = append(got, v)
		}
		sort.Ints(got)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, got,
			"the consumers together must receive exactly the pushed elements, one each")
		assert.Zero(t, a.Len(), "no elements may remain once every waiter was served")
	})
}

func TestSwap(t *testing.T) {
	t.Parallel()

	t.Run("ExchangesContents", func(t *testing.T) {
		t.Parallel()
		a := newFIFOAdapter(t, 1, 2)
		b := newFIFOAdapter(t, 3)

		a.Swap(b)

		require.Equal(t, 1, a.Len(), "after the swap, a must hold b's single element")
		require.Equal(t, 2, b.Len(), "after the swap, b must hold a's two elements")

		v, err := a.Pop()
		require.NoError(t, err)
		assert.Equal(t, 3, v, "a must yield b's former contents")
		for _, want := range []int{1, 2} {
			v, err := b.Pop()
			require.NoError(t, err)
			assert.Equal(t, want, v, "b must yield a's former contents in their original order")
		}
	})

	t.Run("ExchangesDisciplines", func(t *testing.T) {
		t.Parallel()
		a := newFIFOAdapter(t, 1, 2, 3)
		b := newMaxHeapAdapter(t, 5, 1, 3)

		a.Swap(b)

		assert.Equal(t, maxheap.MaxHeapContainerName, a.Name(), "the container identity must travel with the swap")
		assert.Equal(t, fifo.FIFOContainerName, b.Name(), "the container identity must travel with the swap")

		for _, want := range []int{5, 3, 1} {
			v, err := a.Pop()
			require.NoError(t, err)
			assert.Equal(t, want, v, "a must now pop in the swapped-in priority order")
		}
		for _, want := range []int{1, 2, 3} {
			v, err := b.Pop()
			require.NoError(t, err)
			assert.Equal(t, want, v, "b must now pop in the swapped-in insertion order")
		}
	})

	t.Run("SelfAndNilAreNoOps", func(t *testing.T) {
		t.Parallel()
		a := newFIFOAdapter(t, 1, 2)

		a.Swap(a)
		a.Swap(nil)

		assert.Equal(t, 2, a.Len(), "self and nil swaps must leave the adapter untouched")
		v, err := a.Pop()
		require.NoError(t, err)
		assert.Equal(t, 1, v, "the element order must be unchanged after no-op swaps")
	})

	t.Run("OpposingSwapsDoNotDeadlock", func(t *testing.T) {
		t.Parallel()
		a := newFIFOAdapter(t, 1, 2)
		b := newFIFOAdapter(t, 3)
		const iterations = 1000

		var g errgroup.Group
		g.Go(func() error {
			for range iterations {
				a.Swap(b)
			}
			return nil
		})
		g.Go(func() error {
			for range iterations {
				b.Swap(a)
			}
			return nil
		})

		require.NoError(t, g.Wait(), "concurrent opposing swaps must complete")
		assert.Equal(t, 3, a.Len()+b.Len(), "swapping must conserve the elements across both adapters")
	})
}

func TestClone(t *testing.T) {
	t.Parallel()

	t.Run("IndependentStructure", func(t *testing.T) {
		t.Parallel()
		a := newFIFOAdapter(t, 5, 1, 3)

		clone := a.Clone()
		require.NotNil(t, clone, "Clone must return an adapter")
		require.Equal(t, 3, clone.Len(), "the clone must start with the original's elements")

		// Drain the original; the clone must not notice.
		for range 3 {
			_, err := a.Pop()
			require.NoError(t, err)
		}
		assert.Zero(t, a.Len(), "the original must be empty after draining")
		assert.Equal(t, 3, clone.Len(), "draining the original must not remove the clone's elements")

		for _, want := range []int{5, 1, 3} {
			v, err := clone.Pop()
			require.NoError(t, err)
			assert.Equal(t, want, v, "the clone must yield the snapshot in the original discipline order")
		}
	})

	t.Run("SharedPayloads", func(t *testing.T) {
		t.Parallel()
		type record struct{ n int }

		c, err := discipline.NewContainerFromName(fifo.FIFOContainerName, nil)
		require.NoError(t, err, "Setup: constructing the FIFO container should not fail")
		a, err := adapter.New(c, &record{n: 1})
		require.NoError(t, err, "Setup: constructing the adapter should not fail")

		clone := a.Clone()

		orig, ok := a.TryPop()
		require.True(t, ok, "the original must still hold its element")
		copied, ok := clone.TryPop()
		require.True(t, ok, "the clone must hold the shared element")

		assert.Same(t, orig, copied, "a cloned adapter must share element payloads with the original, not copy them")
		orig.n = 42
		assert.Equal(t, 42, copied.n, "a mutation through one holder must be visible through the other")
	})
}

func TestConcurrentProduceConsume(t *testing.T) {
	t.Parallel()

	const (
		numProducers     = 4
		numConsumers     = 4
		itemsPerProducer = 250
	)
	a := newFIFOAdapter(t)
	total := int64(numProducers * itemsPerProducer)
	var consumed atomic.Int64

	var g errgroup.Group
	for p := range numProducers {
		g.Go(func() error {
			for i := range itemsPerProducer {
				a.PushAndNotify(p*itemsPerProducer + i)
			}
			return nil
		})
	}
	for range numConsumers {
		g.Go(func() error {
			for consumed.Load() < total {
				if _, ok := a.TryPop(); ok {
					consumed.Add(1)
				} else {
					runtime.Gosched()
				}
			}
			return nil
		})
	}

	require.NoError(t, g.Wait(), "concurrent producers and consumers must all complete")
	assert.Equal(t, total, consumed.Load(), "every produced element must be consumed exactly once")
	assert.Zero(t, a.Len(), "no elements may remain after the consumers drain the adapter")
}
