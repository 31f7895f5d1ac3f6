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

// Package framework defines the plugin contracts for container disciplines.
//
// It establishes what a discipline implementation must provide so that `adapter.SafeAdapter` can wrap any of them
// behind one concurrency-safe surface. By building on these interfaces, new orderings can be added without modifying
// the adapter.
//
// The primary contracts are:
//   - `Container`: an unsynchronized, discipline-ordered container of `types.ElementHandle` values.
//   - `FrontAccessor` / `TopAccessor`: the two ways a discipline exposes its current element. Every container
//     implements exactly one of them; the adapter resolves which one a single time at construction.
//   - `ItemComparator`: the ordering logic a priority discipline is configured with, vended at the handle level via
//     `NewPayloadComparator`.
//
// These components are linked by `DisciplineCapability`, which allows callers to select a container by behavior (FIFO,
// LIFO or configurable priority ordering) rather than by concrete type.
package framework
