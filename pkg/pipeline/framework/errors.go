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
	"errors"
)

// `Container` Contract Errors
//
// These errors report violations of the `Container` conformance rules. They surface at construction time, when
// `adapter.New` inspects the implementation, never during steady-state operation.
var (
	// ErrNilContainer indicates that an adapter was constructed without a container to wrap.
	ErrNilContainer = errors.New("container must not be nil")

	// ErrNoCurrentAccessor indicates that a `Container` implementation provides neither `FrontAccessor` nor
	// `TopAccessor`, leaving the adapter no way to read the discipline's current element.
	ErrNoCurrentAccessor = errors.New("container implements no current-element accessor")

	// ErrAmbiguousCurrentAccessor indicates that a `Container` implementation provides both `FrontAccessor` and
	// `TopAccessor`. The contract requires exactly one, so the discipline's current element is unambiguous.
	ErrAmbiguousCurrentAccessor = errors.New("container implements both current-element accessors")
)

// Comparator Errors
var (
	// ErrNilComparator indicates that a container declaring `CapabilityPriorityConfigurable` was constructed without
	// the `ItemComparator` its ordering requires.
	ErrNilComparator = errors.New("nil item comparator for priority-ordered container")
)
