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

// Package logging provides the shared logging verbosity levels and logger helpers used across the pipeline packages.
package logging

const (
	// DEFAULT defines the default logging level.
	DEFAULT = 2

	// VERBOSE defines the verbose logging level.
	VERBOSE = 3

	// DEBUG defines the debug logging level.
	DEBUG = 4

	// TRACE defines the trace logging level.
	TRACE = 5
)
