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

// Package lifo provides a Last-In, First-Out container implementation backed by a slice used as a stack.
package lifo

import (
	"slices"

	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/types"
)

// LIFOContainerName is the name of the LIFO container implementation.
const LIFOContainerName = "LIFO"

func init() {
	discipline.MustRegisterContainer(discipline.RegisteredContainerName(LIFOContainerName),
		func(_ framework.ItemComparator) (framework.Container, error) {
			// The LIFO container orders by insertion alone and does not use a comparator.
			return newLIFOContainer(), nil
		})
}

// lifoContainer implements the `framework.Container` interface using a slice as a stack.
// It is not goroutine-safe; the owning adapter serializes all access.
type lifoContainer struct {
	elements []types.ElementHandle
}

// newLIFOContainer creates a new `lifoContainer` instance.
func newLIFOContainer() *lifoContainer {
	return &lifoContainer{}
}

var _ framework.Container = &lifoContainer{}
var _ framework.TopAccessor = &lifoContainer{}

// --- `framework.Container` Interface Implementation ---

func (c *lifoContainer) Name() string {
	return LIFOContainerName
}

func (c *lifoContainer) Capabilities() []framework.DisciplineCapability {
	return []framework.DisciplineCapability{framework.CapabilityLIFO}
}

func (c *lifoContainer) Len() int {
	return len(c.elements)
}

func (c *lifoContainer) Empty() bool {
	return len(c.elements) == 0
}

// Push places the element on top of the stack.
func (c *lifoContainer) Push(handle types.ElementHandle) {
	c.elements = append(c.elements, handle)
}

// Pop removes the most recently inserted element.
func (c *lifoContainer) Pop() {
	n := len(c.elements)
	c.elements[n-1] = types.ElementHandle{} // release the slot so the backing array does not retain the handle
	c.elements = c.elements[:n-1]
}

// Clone returns a new LIFO container holding the same handles in the same order.
func (c *lifoContainer) Clone() framework.Container {
	return &lifoContainer{elements: slices.Clone(c.elements)}
}

// --- `framework.TopAccessor` Interface Implementation ---

// Top returns the most recently inserted element without removing it.
func (c *lifoContainer) Top() types.ElementHandle {
	return c.elements[len(c.elements)-1]
}
