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
	"slices"

	"github.com/go-logr/logr"

	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/adapter"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline/fifo"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/metrics"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/types"
	logutil "github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/util/logging"
)

// Producer is a worker role that feeds a shared adapter.
//
// Callers hand it batches through the non-blocking `Push` at any time; batches accumulate in a private FIFO buffer and
// the work loop forwards them to the shared adapter, one notifying push per item, only while the role is enabled. The
// buffer is retained across disable/enable cycles, so toggling the role delays delivery but never loses or reorders
// items.
type Producer[T any] struct {
	*LifecycleController

	buffer *adapter.SafeAdapter[[]T]
	shared *adapter.SafeAdapter[T]
}

// NewProducer creates a producer role for `shared` and starts its control goroutine. The role begins Idle; call
// `EnableWorker` to start forwarding and `Shutdown` to release the controller.
func NewProducer[T any](
	config Config,
	shared *adapter.SafeAdapter[T],
	logger logr.Logger,
	opts ...controllerOption,
) (*Producer[T], error) {
	if shared == nil {
		return nil, errors.New("shared adapter must not be nil")
	}

	container, err := discipline.NewContainerFromName(fifo.FIFOContainerName, nil)
	if err != nil {
		return nil, fmt.Errorf("constructing batch buffer container: %w", err)
	}
	buffer, err := adapter.New[[]T](container)
	if err != nil {
		return nil, fmt.Errorf("constructing batch buffer adapter: %w", err)
	}

	p := &Producer[T]{
		buffer: buffer,
		shared: shared,
	}
	ctrl, err := NewLifecycleController(config, p.workLoop, logger, opts...)
	if err != nil {
		return nil, err
	}
	p.LifecycleController = ctrl
	return p, nil
}

// Push enqueues one batch of items for forwarding. It never blocks and is legal in every non-terminal state,
// including Idle; items pushed while the worker is disabled wait in the buffer for the next enable. An empty call is a
// no-op. After `Shutdown`, Push fails with `types.ErrControllerShutDown` and the items are not retained.
func (p *Producer[T]) Push(items ...T) error {
	if p.State() == types.RoleStateShutDown {
		return types.ErrControllerShutDown
	}
	if len(items) == 0 {
		return nil
	}
	// Clone so later caller-side mutation of the variadic slice cannot reach the buffered batch.
	p.buffer.PushAndNotify(slices.Clone(items))
	return nil
}

// workLoop forwards buffered batches to the shared adapter until cancelled.
//
// Cancellation is observed between batches: a batch already popped is always forwarded in full, so disable can delay
// at most one batch and never splits one. Batches still in the buffer when the loop exits stay there for the next
// enable cycle.
func (p *Producer[T]) workLoop(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		batch, err := p.buffer.WaitAndPop(ctx)
		if err != nil {
			return
		}
		for _, item := range batch {
			p.shared.PushAndNotify(item)
		}
		metrics.AddItemsProduced(p.config.RoleName, len(batch))
		p.logger.V(logutil.TRACE).Info("Forwarded batch to shared adapter", "batchSize", len(batch))
	}
}
