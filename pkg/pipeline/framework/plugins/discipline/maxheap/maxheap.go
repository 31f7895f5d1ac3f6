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

// Package maxheap provides a priority container implementation using a binary max-heap ordered by a configurable
// `framework.ItemComparator`.
//
// The root always holds the highest priority element according to the comparator, so the current element is retrieved
// in O(1) and insertion and removal cost O(log n). Elements of equal priority are delivered in an unspecified but
// total order: each one is popped exactly once.
package maxheap

import (
	"slices"

	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/types"
)

// MaxHeapContainerName is the name of the max-heap container implementation.
const MaxHeapContainerName = "MaxHeap"

func init() {
	discipline.MustRegisterContainer(discipline.RegisteredContainerName(MaxHeapContainerName),
		func(comparator framework.ItemComparator) (framework.Container, error) {
			return newMaxHeapContainer(comparator)
		})
}

// maxHeapContainer implements the `framework.Container` interface using a binary max-heap.
// The heap is ordered by the provided comparator, with "higher" elements closer to the root.
// It is not goroutine-safe; the owning adapter serializes all access.
type maxHeapContainer struct {
	items  []types.ElementHandle
	higher framework.ItemComparatorFunc
}

// newMaxHeapContainer creates a new max-heap container ordered by the given comparator.
func newMaxHeapContainer(comparator framework.ItemComparator) (*maxHeapContainer, error) {
	if comparator == nil || comparator.Func() == nil {
		return nil, framework.ErrNilComparator
	}
	return &maxHeapContainer{higher: comparator.Func()}, nil
}

var _ framework.Container = &maxHeapContainer{}
var _ framework.TopAccessor = &maxHeapContainer{}

// --- `framework.Container` Interface Implementation ---

func (c *maxHeapContainer) Name() string {
	return MaxHeapContainerName
}

func (c *maxHeapContainer) Capabilities() []framework.DisciplineCapability {
	return []framework.DisciplineCapability{framework.CapabilityPriorityConfigurable}
}

func (c *maxHeapContainer) Len() int {
	return len(c.items)
}

func (c *maxHeapContainer) Empty() bool {
	return len(c.items) == 0
}

// Push inserts the element and restores the heap property.
// Time complexity: O(log n).
func (c *maxHeapContainer) Push(handle types.ElementHandle) {
	c.items = append(c.items, handle)
	c.up(len(c.items) - 1)
}

// Pop removes the highest priority element.
// Time complexity: O(log n).
func (c *maxHeapContainer) Pop() {
	n := len(c.items)
	c.items[0] = c.items[n-1]
	c.items[n-1] = types.ElementHandle{} // release the slot so the backing array does not retain the handle
	c.items = c.items[:n-1]
	if len(c.items) > 1 {
		c.down(0)
	}
}

// Clone returns a new max-heap container sharing the comparator and holding the same handles.
// The backing array copy preserves the heap property, so no reordering is needed.
func (c *maxHeapContainer) Clone() framework.Container {
	return &maxHeapContainer{items: slices.Clone(c.items), higher: c.higher}
}

// --- `framework.TopAccessor` Interface Implementation ---

// Top returns the highest priority element without removing it.
// Time complexity: O(1).
func (c *maxHeapContainer) Top() types.ElementHandle {
	return c.items[0]
}

// --- Heap Maintenance ---

// up moves the element at index i up the heap to its correct position.
func (c *maxHeapContainer) up(i int) {
	for i > 0 {
		parentIndex := (i - 1) / 2
		if !c.higher(c.items[i], c.items[parentIndex]) {
			break
		}
		c.items[i], c.items[parentIndex] = c.items[parentIndex], c.items[i]
		i = parentIndex
	}
}

// down moves the element at index i down the heap to its correct position.
func (c *maxHeapContainer) down(i int) {
	n := len(c.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		best := left
		if right := left + 1; right < n && c.higher(c.items[right], c.items[left]) {
			best = right
		}
		if !c.higher(c.items[best], c.items[i]) {
			break
		}
		c.items[i], c.items[best] = c.items[best], c.items[i]
		i = best
	}
}
