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

// Package controller contains the implementation of the `LifecycleController` engine and the two worker roles built on
// top of it, `Producer` and `Consumer`.
//
// # Overview
//
// A `LifecycleController` supervises exactly one worker role. Callers never start or stop the worker goroutine
// themselves; they submit asynchronous lifecycle commands (`EnableWorker`, `DisableWorker`, `Shutdown`) and the
// controller's dedicated control goroutine executes them one at a time, in submission order. The control goroutine is
// the only code that performs state transitions, which is what makes the lifecycle state machine race-free without a
// state lock: at most one worker goroutine for the role can ever be live, and a disable is not complete until the
// worker goroutine has been joined.
//
// # Architecture: The Command Channel
//
// The command stream between callers and the control goroutine is an `adapter.SafeAdapter` of `types.Command` values
// backed by the FIFO discipline from this module's own registry. Using the adapter for the controller's internal
// plumbing keeps a single blocking-queue implementation in the codebase and exercises it on every lifecycle
// operation. Submission is non-blocking (`PushAndNotify` wakes the control goroutine), so `EnableWorker` and
// `DisableWorker` return to the caller immediately; completion is observable through `State`.
//
// # Architecture: Cancellation as the Enable Flag
//
// Each enable creates a fresh worker `context.Context`. That per-cycle context is the worker's enabled flag: the work
// loop re-checks it between units of work and every blocking wait it performs is cancellable through it. Disable
// cancels the context and then waits on the worker's `sync.WaitGroup`, so by the time the controller reports Idle the
// worker goroutine has fully returned and can no longer touch any shared adapter. There is no forced preemption: a
// callback or batch in flight when disable arrives runs to completion before the join finishes.
//
// # The Worker Roles
//
// `Producer` accepts batches through its non-blocking `Push` at any time, including while the role is Idle. Batches
// accumulate in a private FIFO buffer and are forwarded to the shared adapter only while the worker is enabled, so a
// disable/enable cycle delays delivery but never loses or reorders items. `Consumer` pops the shared adapter and hands
// each element to a caller-supplied callback; a callback error or panic is contained to that one element and the
// stream continues.
package controller
