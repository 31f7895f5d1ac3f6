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

import (
	"errors"
)

// --- Adapter Errors ---

var (
	// ErrAdapterEmpty is a sentinel error indicating that a failing pop was attempted on an adapter holding no
	// elements. It is a recoverable condition, not a fault: the element simply is not there yet, and the caller may
	// retry, block via `WaitAndPop`, or use the non-blocking `TryPop` instead.
	//
	// Callers should use `errors.Is(err, ErrAdapterEmpty)` to check for this condition.
	ErrAdapterEmpty = errors.New("adapter is empty")
)

// --- Lifecycle Controller Errors ---

var (
	// ErrControllerShutDown is a sentinel error indicating that a lifecycle request (or a producer push) was submitted
	// to a controller that has already reached its terminal ShutDown state. The controller never leaves this state, so
	// retrying cannot succeed.
	//
	// Callers should use `errors.Is(err, ErrControllerShutDown)` to check for this condition.
	ErrControllerShutDown = errors.New("lifecycle controller is shut down")
)
