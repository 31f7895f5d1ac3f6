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

package framework

import (
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/types"
)

// DisciplineCapability defines a functional capability that a Container implementation provides.
// Capabilities let callers select a discipline by behavior (for example, priority ordering) without depending on a
// concrete implementation type.
type DisciplineCapability string

const (
	// CapabilityFIFO indicates that the container operates in a First-In, First-Out manner.
	// The current element is the oldest inserted one, exposed through `FrontAccessor`.
	CapabilityFIFO DisciplineCapability = "FIFO"

	// CapabilityLIFO indicates that the container operates in a Last-In, First-Out manner.
	// The current element is the most recently inserted one, exposed through `TopAccessor`.
	CapabilityLIFO DisciplineCapability = "LIFO"

	// CapabilityPriorityConfigurable indicates that the container's ordering is determined by an `ItemComparator`.
	// The current element is the highest priority one according to that comparator, exposed through `TopAccessor`.
	CapabilityPriorityConfigurable DisciplineCapability = "PriorityConfigurable"
)

// ContainerInspectionMethods defines Container's read-only methods.
type ContainerInspectionMethods interface {
	// Name returns a string identifier for the concrete container implementation type (e.g., "FIFO").
	Name() string

	// Capabilities returns the set of functional capabilities this container instance provides.
	Capabilities() []DisciplineCapability

	// Len returns the current number of elements in the container.
	Len() int

	// Empty reports whether the container holds no elements.
	Empty() bool
}

// Container defines the contract for a single discipline-ordered element container.
//
// Implementations hold `types.ElementHandle` values and decide, through their discipline, which element is current at
// any moment. Implementations are NOT goroutine-safe: `adapter.SafeAdapter` owns the one lock under which every
// container method runs, and a container must never be touched except under that lock.
//
// Conformance: every implementation MUST additionally implement exactly one of `FrontAccessor` or `TopAccessor`; this
// is how the adapter discovers, once at construction, how the discipline exposes its current element. Implementing
// both, or neither, is a construction-time error.
type Container interface {
	ContainerInspectionMethods

	// Push inserts an element at the position the discipline assigns to it.
	// Contract: The caller MUST NOT provide the zero `types.ElementHandle`.
	Push(handle types.ElementHandle)

	// Pop removes the current element, the same element the implementation's accessor reports.
	// Contract: The caller MUST NOT invoke Pop on an empty container.
	Pop()

	// Clone returns a structural deep copy of this container holding the same element handles.
	// Mutating the clone never affects the original; the payloads themselves remain shared through the handles.
	Clone() Container
}

// FrontAccessor exposes the current element of sequential disciplines: the oldest inserted element.
type FrontAccessor interface {
	// Front returns the oldest inserted element without removing it.
	// Contract: The caller MUST NOT invoke Front on an empty container.
	Front() types.ElementHandle
}

// TopAccessor exposes the current element of top-of-structure disciplines, such as stacks and priority heaps.
type TopAccessor interface {
	// Top returns the element at the top of the structure without removing it.
	// Contract: The caller MUST NOT invoke Top on an empty container.
	Top() types.ElementHandle
}
