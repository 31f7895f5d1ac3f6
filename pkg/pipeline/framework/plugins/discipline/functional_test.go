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

package discipline_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/types"

	_ "github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline/fifo"
	_ "github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline/lifo"
	_ "github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline/maxheap"
)

// intDescComparator orders int payloads greatest first.
// Used as the default comparator so every registered constructor can be invoked uniformly; implementations that do not
// declare `CapabilityPriorityConfigurable` ignore it.
var intDescComparator = framework.NewPayloadComparator[int]("int_value_desc", func(a, b int) bool {
	return a > b
})

// intAscComparator orders int payloads smallest first.
// Used to verify that priority-configurable containers follow the configured comparator rather than a fixed ordering.
var intAscComparator = framework.NewPayloadComparator[int]("int_value_asc", func(a, b int) bool {
	return a < b
})

// requireSingleAccessor asserts the accessor shape of the contract: exactly one of `FrontAccessor` and `TopAccessor`.
func requireSingleAccessor(t *testing.T, c framework.Container, orderingName string) {
	t.Helper()

	_, hasFront := c.(framework.FrontAccessor)
	_, hasTop := c.(framework.TopAccessor)
	require.True(t, hasFront != hasTop,
		"[%s] a container must implement exactly one of FrontAccessor and TopAccessor", orderingName)
}

// currentElement reads the container's current element through whichever accessor the implementation provides.
// Contract: the container must be non-empty.
func currentElement(t *testing.T, c framework.Container, orderingName string) types.ElementHandle {
	t.Helper()

	requireSingleAccessor(t, c, orderingName)
	if front, ok := c.(framework.FrontAccessor); ok {
		return front.Front()
	}
	return c.(framework.TopAccessor).Top()
}

// testLifecycleAndOrdering executes a standard sequence of Push, current-element reads, and Pop operations on a
// container. It pushes `payloads` in the given order and verifies that draining the container yields exactly
// `wantOrder`, checking length and emptiness bookkeeping at every step. The `orderingName` identifies the scenario in
// assertion messages.
func testLifecycleAndOrdering(t *testing.T, c framework.Container, payloads, wantOrder []int, orderingName string) {
	t.Helper()

	require.Len(t, wantOrder, len(payloads), "[%s] scenario must expect exactly the pushed payloads", orderingName)
	assert.Zero(t, c.Len(), "[%s] the container must start empty", orderingName)
	assert.True(t, c.Empty(), "[%s] Empty() must report true before any push", orderingName)

	// Push payloads, each wrapped in a fresh handle.
	for i, p := range payloads {
		c.Push(types.NewElementHandle(p))
		assert.Equal(t, i+1, c.Len(), "[%s] Len() must track every push (payload %d)", orderingName, p)
		assert.False(t, c.Empty(), "[%s] Empty() must report false after a push (payload %d)", orderingName, p)
	}

	// Read and pop cycle to verify the discipline's ordering.
	for i, want := range wantOrder {
		handle := currentElement(t, c, orderingName)
		require.False(t, handle.IsZero(),
			"[%s] the current element of a non-empty container must not be the zero handle (iteration %d)", orderingName, i)
		assert.Equal(t, want, handle.Value(),
			"[%s] the current element must follow the discipline's ordering (iteration %d)", orderingName, i)
		assert.Equal(t, len(wantOrder)-i, c.Len(),
			"[%s] reading the current element must not remove it (iteration %d)", orderingName, i)

		c.Pop()
		assert.Equal(t, len(wantOrder)-i-1, c.Len(),
			"[%s] Pop must remove exactly one element (iteration %d)", orderingName, i)
	}

	assert.True(t, c.Empty(), "[%s] the container must be empty after all elements are popped", orderingName)
}

// TestContainerConformance is the conformance suite for `framework.Container` implementations.
// It iterates over all containers registered via `discipline.MustRegisterContainer` and runs a series of sub-tests to
// ensure they adhere to the `framework.Container` contract.
func TestContainerConformance(t *testing.T) {
	t.Parallel()

	for containerName, constructor := range discipline.RegisteredContainers {
		t.Run(string(containerName), func(t *testing.T) {
			t.Parallel()

			t.Run("Initialization", func(t *testing.T) {
				t.Parallel()
				c, err := constructor(intDescComparator)
				require.NoError(t, err, "Setup: creating container for test should not fail")

				require.NotNil(t, c, "Constructor should return a non-nil container instance")
				assert.Zero(t, c.Len(), "A new container should have a length of 0")
				assert.True(t, c.Empty(), "A new container should report Empty()")
				assert.Equal(t, string(containerName), c.Name(), "Name() should return the registered name of the container")
				assert.NotEmpty(t, c.Capabilities(), "Capabilities() should return at least one capability")
				requireSingleAccessor(t, c, "Initialization")
			})

			qForCapCheck, err := constructor(intDescComparator)
			require.NoError(t, err, "Setup: capability probe construction should not fail")
			capabilities := qForCapCheck.Capabilities()

			t.Run("LifecycleAndOrdering", func(t *testing.T) {
				t.Parallel()
				payloads := []int{5, 1, 3}

				switch {
				case slices.Contains(capabilities, framework.CapabilityFIFO):
					c, err := constructor(nil)
					require.NoError(t, err, "Setup: a FIFO container must construct without a comparator")
					testLifecycleAndOrdering(t, c, payloads, []int{5, 1, 3}, "FIFO")

				case slices.Contains(capabilities, framework.CapabilityLIFO):
					c, err := constructor(nil)
					require.NoError(t, err, "Setup: a LIFO container must construct without a comparator")
					testLifecycleAndOrdering(t, c, payloads, []int{3, 1, 5}, "LIFO")

				case slices.Contains(capabilities, framework.CapabilityPriorityConfigurable):
					cDesc, err := constructor(intDescComparator)
					require.NoError(t, err, "Setup: creating container with intDescComparator should not fail")
					testLifecycleAndOrdering(t, cDesc, payloads, []int{5, 3, 1}, "PriorityDesc")

					cAsc, err := constructor(intAscComparator)
					require.NoError(t, err, "Setup: creating container with intAscComparator should not fail")
					testLifecycleAndOrdering(t, cAsc, payloads, []int{1, 3, 5}, "PriorityAsc")

				default:
					t.Fatalf("container %q declares no known ordering capability: %v", containerName, capabilities)
				}
			})

			t.Run("NilComparator", func(t *testing.T) {
				t.Parallel()
				c, err := constructor(nil)
				if slices.Contains(capabilities, framework.CapabilityPriorityConfigurable) {
					require.ErrorIs(t, err, framework.ErrNilComparator,
						"a priority-configurable container must reject construction without a comparator")
					assert.Nil(t, c, "a failed construction must not return a container")
				} else {
					require.NoError(t, err, "a container that does not order by comparator must accept a nil comparator")
					require.NotNil(t, c, "a successful construction must return a container")
				}
			})

			t.Run("CloneIndependence", func(t *testing.T) {
				t.Parallel()
				c, err := constructor(intDescComparator)
				require.NoError(t, err, "Setup: creating container for test should not fail")
				for _, p := range []int{5, 1, 3} {
					c.Push(types.NewElementHandle(p))
				}

				clone := c.Clone()
				require.NotNil(t, clone, "Clone should return a non-nil container")
				assert.Equal(t, c.Name(), clone.Name(), "A clone should carry the implementation's name")
				assert.Equal(t, c.Capabilities(), clone.Capabilities(), "A clone should carry the original's capabilities")
				assert.Equal(t, c.Len(), clone.Len(), "A clone should start with the original's length")

				// Drain the clone; the original must not observe any of it.
				for !clone.Empty() {
					clone.Pop()
				}
				assert.Zero(t, clone.Len(), "The drained clone should be empty")
				assert.Equal(t, 3, c.Len(), "Draining a clone must not remove elements from the original")

				// The original still yields its own elements in discipline order.
				handle := currentElement(t, c, "CloneIndependence")
				assert.NotNil(t, handle.Value(), "The original's current element must remain readable after the clone drains")
			})
		})
	}
}

// TestNewContainerFromName covers the registry lookup path.
func TestNewContainerFromName(t *testing.T) {
	t.Parallel()

	t.Run("UnregisteredName", func(t *testing.T) {
		t.Parallel()
		c, err := discipline.NewContainerFromName("NotARegisteredContainer", intDescComparator)
		require.Error(t, err, "constructing an unregistered container name must fail")
		assert.Nil(t, c, "a failed lookup must not return a container")
	})

	t.Run("RegisteredNames", func(t *testing.T) {
		t.Parallel()
		for containerName := range discipline.RegisteredContainers {
			c, err := discipline.NewContainerFromName(containerName, intDescComparator)
			require.NoError(t, err, "constructing registered container %q should not fail", containerName)
			require.NotNil(t, c, "constructing registered container %q should return an instance", containerName)
			assert.Equal(t, string(containerName), c.Name(),
				"the constructed container should report its registered name")
		}
	})
}
