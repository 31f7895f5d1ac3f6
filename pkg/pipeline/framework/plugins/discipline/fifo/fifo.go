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

// Package fifo provides a First-In, First-Out container implementation using a standard library `container/list.List`
// as the underlying data structure.
package fifo

import (
	"container/list"

	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/types"
)

// FIFOContainerName is the name of the FIFO container implementation.
const FIFOContainerName = "FIFO"

func init() {
	discipline.MustRegisterContainer(discipline.RegisteredContainerName(FIFOContainerName),
		func(_ framework.ItemComparator) (framework.Container, error) {
			// The FIFO container orders by insertion alone and does not use a comparator.
			return newFIFOContainer(), nil
		})
}

// fifoContainer implements the `framework.Container` interface using a standard `container/list.List`.
// It is not goroutine-safe; the owning adapter serializes all access.
type fifoContainer struct {
	elements *list.List
}

// newFIFOContainer creates a new `fifoContainer` instance.
func newFIFOContainer() *fifoContainer {
	return &fifoContainer{elements: list.New()}
}

var _ framework.Container = &fifoContainer{}
var _ framework.FrontAccessor = &fifoContainer{}

// --- `framework.Container` Interface Implementation ---

func (c *fifoContainer) Name() string {
	return FIFOContainerName
}

func (c *fifoContainer) Capabilities() []framework.DisciplineCapability {
	return []framework.DisciplineCapability{framework.CapabilityFIFO}
}

func (c *fifoContainer) Len() int {
	return c.elements.Len()
}

func (c *fifoContainer) Empty() bool {
	return c.elements.Len() == 0
}

// Push appends the element to the back of the list.
func (c *fifoContainer) Push(handle types.ElementHandle) {
	c.elements.PushBack(handle)
}

// Pop removes the oldest inserted element.
func (c *fifoContainer) Pop() {
	c.elements.Remove(c.elements.Front())
}

// Clone returns a new FIFO container holding the same handles in the same order.
func (c *fifoContainer) Clone() framework.Container {
	clone := newFIFOContainer()
	for e := c.elements.Front(); e != nil; e = e.Next() {
		clone.elements.PushBack(e.Value)
	}
	return clone
}

// --- `framework.FrontAccessor` Interface Implementation ---

// Front returns the oldest inserted element without removing it.
func (c *fifoContainer) Front() types.ElementHandle {
	return c.elements.Front().Value.(types.ElementHandle)
}
