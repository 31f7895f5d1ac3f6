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

package controller

import (
	"errors"
)

// Config holds the configuration for a `LifecycleController`.
type Config struct {
	// RoleName identifies the worker role the controller supervises (for example, "producer" or "consumer").
	// It appears as the `role` field on every log line and as the `role` label on every metric the controller emits.
	// Required: must not be empty.
	RoleName string
}

// NewConfig creates a new `Config` for the given role, applying validation.
func NewConfig(roleName string) (*Config, error) {
	c := &Config{RoleName: roleName}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// validate checks the configuration for validity.
func (c *Config) validate() error {
	if c.RoleName == "" {
		return errors.New("RoleName must not be empty")
	}
	return nil
}

// deepCopy returns a new `Config` with the same values as the receiver, or nil for a nil receiver.
func (c *Config) deepCopy() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
