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
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/adapter"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/metrics"
)

// ItemCallback processes one element popped from the shared adapter. A non-nil error (or a panic) marks that element
// as failed; the consumer logs and counts the failure and moves on to the next element.
type ItemCallback[T any] func(item T) error

// Consumer is a worker role that drains a shared adapter.
//
// While enabled, its work loop blocks on the shared adapter and hands every popped element to the callback. Failures
// are contained per element, and an element that has been popped is always delivered before the loop reacts to
// cancellation, so disable cannot strand a popped element.
type Consumer[T any] struct {
	*LifecycleController

	shared   *adapter.SafeAdapter[T]
	callback ItemCallback[T]
}

// NewConsumer creates a consumer role for `shared` and starts its control goroutine. The role begins Idle; call
// `EnableWorker` to start draining and `Shutdown` to release the controller.
func NewConsumer[T any](
	config Config,
	shared *adapter.SafeAdapter[T],
	callback ItemCallback[T],
	logger logr.Logger,
	opts ...controllerOption,
) (*Consumer[T], error) {
	if shared == nil {
		return nil, errors.New("shared adapter must not be nil")
	}
	if callback == nil {
		return nil, errors.New("item callback must not be nil")
	}

	c := &Consumer[T]{
		shared:   shared,
		callback: callback,
	}
	ctrl, err := NewLifecycleController(config, c.workLoop, logger, opts...)
	if err != nil {
		return nil, err
	}
	c.LifecycleController = ctrl
	return c, nil
}

// workLoop drains the shared adapter until cancelled. Elements left in the adapter when the loop exits stay there;
// the next enable cycle (or another consumer of the same adapter) picks them up.
func (c *Consumer[T]) workLoop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		item, err := c.shared.WaitAndPop(ctx)
		if err != nil {
			return
		}
		c.deliver(item)
	}
}

// deliver invokes the callback for one element, containing its error or panic to that element.
func (c *Consumer[T]) deliver(item T) {
	defer func() {
		if r := recover(); r != nil {
			metrics.IncCallbackError(c.config.RoleName)
			c.logger.Error(fmt.Errorf("panic: %v", r), "Callback panicked, continuing with next element")
		}
	}()

	if err := c.callback(item); err != nil {
		metrics.IncCallbackError(c.config.RoleName)
		c.logger.Error(err, "Callback failed, continuing with next element")
		return
	}
	metrics.IncItemsConsumed(c.config.RoleName)
}
