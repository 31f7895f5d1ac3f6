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

package types

// ElementHandle is a shared-ownership reference to a single element payload.
//
// Containers store handles, never raw payloads. Copying a handle copies the reference, not the payload: every copy
// observes the same underlying value, and the payload lives as long as any copy does. This is what allows an element
// to be seeded into an adapter, cloned along with it, and later popped from either clone while remaining a single
// logical value.
//
// The zero value is a null handle (see `ElementHandle.IsZero`); it references no payload.
type ElementHandle struct {
	slot *elementSlot
}

// elementSlot is the single heap allocation shared by all copies of a handle.
type elementSlot struct {
	value any
}

// NewElementHandle allocates a fresh slot holding `value` and returns a handle referencing it.
// The returned handle does not alias any previously created handle, even for equal payloads.
func NewElementHandle(value any) ElementHandle {
	return ElementHandle{slot: &elementSlot{value: value}}
}

// Value returns the payload this handle references.
//
// Contract: the handle MUST NOT be the zero value.
func (h ElementHandle) Value() any {
	return h.slot.value
}

// IsZero reports whether this is the null handle.
func (h ElementHandle) IsZero() bool {
	return h.slot == nil
}
