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

import "strconv"

// RoleState is the lifecycle state of a role as observed through its controller.
//
// Transitions are executed only by the control goroutine: Idle and Running alternate under `EnableWorker` and
// `DisableWorker` commands, and ShutDown is terminal. This enum is designed to be a low-cardinality label ideal for
// metrics and log fields.
type RoleState int32

const (
	// RoleStateIdle indicates the controller is accepting commands but no worker goroutine is running.
	RoleStateIdle RoleState = iota

	// RoleStateRunning indicates exactly one worker goroutine is executing the role's work loop.
	RoleStateRunning

	// RoleStateShutDown indicates the controller has stopped permanently. Lifecycle requests submitted in this state
	// fail with `ErrControllerShutDown`.
	RoleStateShutDown
)

// String returns a human-readable string representation of the RoleState.
func (s RoleState) String() string {
	switch s {
	case RoleStateIdle:
		return "Idle"
	case RoleStateRunning:
		return "Running"
	case RoleStateShutDown:
		return "ShutDown"
	default:
		// Return the integer value for unknown states to aid in debugging.
		return "UnknownState(" + strconv.Itoa(int(s)) + ")"
	}
}
