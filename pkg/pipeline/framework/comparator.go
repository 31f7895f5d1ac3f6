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

import "github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/types"

// ItemComparatorFunc defines the function signature for comparing two `types.ElementHandle` instances to determine
// their relative access priority.
//
// An implementation of this function determines if element 'a' should be accessed before element 'b'. It returns true
// if 'a' is of higher priority, and false otherwise. The specific criteria for "higher priority" (e.g., greater
// value, earlier deadline) are defined by whoever vends the `ItemComparator`.
type ItemComparatorFunc func(a, b types.ElementHandle) bool

// ItemComparator encapsulates the logic for comparing two `types.ElementHandle` instances to determine their relative
// access priority. It is the source of ordering truth for a container that declares
// `CapabilityPriorityConfigurable`.
type ItemComparator interface {
	// Func returns the core comparison logic as an `ItemComparatorFunc`.
	//
	// A `Container` that declares `CapabilityPriorityConfigurable` MUST use this function for its internal ordering.
	//
	// Conformance: MUST NOT return nil.
	Func() ItemComparatorFunc

	// ScoreType returns a string descriptor that defines the semantic meaning and domain of the comparison logic. The
	// string makes the ordering scheme human-readable for debugging and observability.
	//
	// Examples: "int_value_desc", "deadline_ns_asc".
	//
	// Conformance: MUST return a non-empty, meaningful string that describes the domain or unit of comparison.
	ScoreType() string
}

// payloadComparator adapts a payload-level comparison function to the handle-level `ItemComparator` contract.
type payloadComparator[T any] struct {
	scoreType string
	cmp       func(a, b T) bool
}

// NewPayloadComparator wraps a comparison function over payloads of type T into an `ItemComparator` that compares the
// dereferenced payloads of two handles. It is the bridge callers use when configuring a priority discipline: the
// caller thinks in payloads, the container stores handles.
//
// Contract: every handle passed to the returned comparator MUST reference a payload of dynamic type T. Within one
// adapter this holds structurally, because the adapter is the only writer and wraps values of exactly one type.
func NewPayloadComparator[T any](scoreType string, cmp func(a, b T) bool) ItemComparator {
	return &payloadComparator[T]{scoreType: scoreType, cmp: cmp}
}

func (c *payloadComparator[T]) Func() ItemComparatorFunc {
	return func(a, b types.ElementHandle) bool {
		return c.cmp(a.Value().(T), b.Value().(T))
	}
}

func (c *payloadComparator[T]) ScoreType() string {
	return c.scoreType
}
