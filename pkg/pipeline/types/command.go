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

import "time"

// CommandKind identifies a lifecycle instruction understood by a controller's control goroutine.
type CommandKind string

const (
	// CommandEnableWorker requests that the role's worker goroutine be started. A no-op if a worker is already running.
	CommandEnableWorker CommandKind = "EnableWorker"

	// CommandDisableWorker requests that the role's worker goroutine be stopped and joined. A no-op if no worker is
	// running.
	CommandDisableWorker CommandKind = "DisableWorker"

	// CommandShutdownController requests a permanent stop: the worker is disabled (if running) and the control
	// goroutine itself exits. No command submitted after this one is acted upon.
	CommandShutdownController CommandKind = "ShutdownController"
)

// Command is a single asynchronous lifecycle instruction. Commands are queued in FIFO submission order and consumed
// exclusively by the controller's control goroutine, which is what serializes all worker start/stop transitions.
type Command struct {
	// Kind selects the instruction to execute.
	Kind CommandKind

	// EnqueueTime is the submission timestamp, stamped from the controller's clock. It measures how long the command
	// waited in the queue before the control goroutine picked it up.
	EnqueueTime time.Time
}
