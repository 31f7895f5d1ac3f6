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

// Package types defines the core data structures shared across the pipeline system.
//
// It establishes the vocabulary of the system: the shared-ownership `ElementHandle` stored by every container
// discipline, the `Command` instructions drained by a role's control goroutine, the `RoleState` lifecycle enum, and
// the sentinel errors callers match with `errors.Is`.
package types
