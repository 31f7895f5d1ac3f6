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

// Package discipline defines the registry through which container discipline implementations are published and
// constructed by name.
package discipline

import (
	"fmt"
	"sync"

	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework"
)

type RegisteredContainerName string

// ContainerConstructor defines the function signature for creating a `framework.Container`.
type ContainerConstructor func(comparator framework.ItemComparator) (framework.Container, error)

var (
	// mu guards the registration map.
	mu sync.RWMutex
	// RegisteredContainers stores the constructors for all registered containers.
	RegisteredContainers = make(map[RegisteredContainerName]ContainerConstructor)
)

// MustRegisterContainer registers a container constructor, and panics if the name is
// already registered.
// This is intended to be called from init() functions.
func MustRegisterContainer(name RegisteredContainerName, constructor ContainerConstructor) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := RegisteredContainers[name]; ok {
		panic(fmt.Sprintf("framework.Container already registered with name %q", name))
	}
	RegisteredContainers[name] = constructor
}

// NewContainerFromName creates a new Container given its registered name and the `framework.ItemComparator` that will
// be optionally used to configure it (provided it declares `framework.CapabilityPriorityConfigurable`).
// Implementations that do not order by comparator accept and ignore a nil comparator.
func NewContainerFromName(name RegisteredContainerName, comparator framework.ItemComparator) (framework.Container, error) {
	mu.RLock()
	defer mu.RUnlock()
	constructor, ok := RegisteredContainers[name]
	if !ok {
		return nil, fmt.Errorf("no framework.Container registered with name %q", name)
	}
	return constructor(comparator)
}
