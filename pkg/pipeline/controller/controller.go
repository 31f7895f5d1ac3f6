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
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"k8s.io/utils/clock"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/adapter"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline/fifo"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/metrics"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/types"
	logutil "github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/util/logging"
)

// WorkLoopFunc is the long-running body of a worker role. The controller invokes it on a dedicated goroutine each time
// the role is enabled and cancels the supplied context when the role is disabled or shut down.
//
// Contract: implementations MUST return promptly once `ctx` is cancelled. Every blocking wait inside the loop must be
// cancellable through `ctx`; the controller joins the goroutine during disable, so a loop that ignores cancellation
// blocks the control goroutine forever.
type WorkLoopFunc func(ctx context.Context)

// LifecycleController supervises the lifecycle of a single worker role.
//
// All transitions are executed by one control goroutine that consumes commands in FIFO submission order, so at most
// one worker goroutine for the role is ever live and every disable implies a join. The public lifecycle methods are
// asynchronous: they enqueue a command and return, and the resulting state change becomes visible through `State`.
type LifecycleController struct {
	// --- Immutable dependencies (set at construction) ---

	config Config
	work   WorkLoopFunc
	clock  clock.Clock
	logger logr.Logger

	// commands is the control goroutine's sole input. It reuses the module's own blocking adapter with the FIFO
	// discipline, which is what guarantees commands are acted on in submission order.
	commands *adapter.SafeAdapter[types.Command]

	// --- Lifecycle state ---

	// state is written only by the control goroutine and read by any goroutine.
	state atomic.Int32

	// workerCancel ends the current enable cycle. Owned by the control goroutine; nil while no worker is running.
	workerCancel context.CancelFunc

	controlWg sync.WaitGroup
	workerWg  sync.WaitGroup

	shutdownOnce sync.Once
}

// controllerOption is a function that applies a configuration change to a `LifecycleController`.
// test-only
type controllerOption func(*LifecycleController)

// NewLifecycleController creates a controller for one worker role and starts its control goroutine.
//
// The control goroutine runs until `Shutdown` is called; the caller owns that final call. `work` is invoked on a
// fresh goroutine per enable cycle and must honor the `WorkLoopFunc` contract.
func NewLifecycleController(
	config Config,
	work WorkLoopFunc,
	logger logr.Logger,
	opts ...controllerOption,
) (*LifecycleController, error) {
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid controller configuration: %w", err)
	}
	if work == nil {
		return nil, errors.New("work loop function must not be nil")
	}

	container, err := discipline.NewContainerFromName(fifo.FIFOContainerName, nil)
	if err != nil {
		return nil, fmt.Errorf("constructing command channel container: %w", err)
	}
	commands, err := adapter.New[types.Command](container)
	if err != nil {
		return nil, fmt.Errorf("constructing command channel adapter: %w", err)
	}

	c := &LifecycleController{
		config:   *config.deepCopy(),
		work:     work,
		clock:    clock.RealClock{},
		logger: logger.WithName("lifecycle-controller").WithValues(
			"role", config.RoleName,
			"controllerID", uuid.NewString()),
		commands: commands,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.controlWg.Add(1)
	go c.runControlLoop()
	return c, nil
}

// EnableWorker asynchronously requests that the role's worker goroutine be started.
// It returns immediately; `types.ErrControllerShutDown` is returned once the controller is terminally shut down.
// Enabling an already-Running role is a no-op.
func (c *LifecycleController) EnableWorker() error {
	return c.submit(types.CommandEnableWorker)
}

// DisableWorker asynchronously requests that the role's worker goroutine be stopped and joined.
// It returns immediately; `types.ErrControllerShutDown` is returned once the controller is terminally shut down.
// Disabling an Idle role is a no-op. Once the controller reports Idle again, the worker goroutine has fully returned.
func (c *LifecycleController) DisableWorker() error {
	return c.submit(types.CommandDisableWorker)
}

// Shutdown permanently stops the controller: the worker is disabled (if running), the state becomes ShutDown, and the
// control goroutine exits. Shutdown blocks until the control goroutine has fully terminated and is safe to call
// multiple times, from multiple goroutines; every call waits for the same completion.
func (c *LifecycleController) Shutdown() {
	c.shutdownOnce.Do(func() {
		c.commands.PushAndNotify(types.Command{Kind: types.CommandShutdownController, EnqueueTime: c.clock.Now()})
	})
	c.controlWg.Wait()
}

// State returns the role's current lifecycle state.
//
// Commands are asynchronous, so a state read immediately after `EnableWorker` or `DisableWorker` may still observe the
// previous state.
func (c *LifecycleController) State() types.RoleState {
	return types.RoleState(c.state.Load())
}

// submit enqueues a lifecycle command for the control goroutine.
//
// The shutdown check is advisory: a command that races with shutdown may be accepted here and never drained. That is
// indistinguishable from the command simply losing the race, so callers get nil in both cases.
func (c *LifecycleController) submit(kind types.CommandKind) error {
	if c.State() == types.RoleStateShutDown {
		return types.ErrControllerShutDown
	}
	c.commands.PushAndNotify(types.Command{Kind: kind, EnqueueTime: c.clock.Now()})
	return nil
}

// runControlLoop is the controller's single consumer of lifecycle commands. It blocks on the command adapter, executes
// commands strictly in submission order, and exits only on a shutdown command (or a panic, which leaves the controller
// degraded: commands are still accepted but never acted upon).
func (c *LifecycleController) runControlLoop() {
	defer c.controlWg.Done()
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error(fmt.Errorf("panic: %v", r), "Control loop terminated by panic", "role", c.config.RoleName)
		}
	}()

	ctx := log.IntoContext(context.Background(), c.logger)
	c.logger.V(logutil.DEFAULT).Info("Control loop started.")

	for {
		cmd, err := c.commands.WaitAndPop(ctx)
		if err != nil {
			// WaitAndPop fails only on context cancellation and the control loop's context is never cancelled.
			c.logger.Error(err, "Command channel wait failed, stopping control loop")
			return
		}

		queueDuration := c.clock.Since(cmd.EnqueueTime)
		metrics.RecordCommandProcessed(c.config.RoleName, string(cmd.Kind))
		metrics.RecordCommandQueueDuration(ctx, c.config.RoleName, string(cmd.Kind), queueDuration)
		c.logger.V(logutil.TRACE).Info("Processing command", "command", cmd.Kind, "queueDuration", queueDuration)

		switch cmd.Kind {
		case types.CommandEnableWorker:
			c.handleEnable()
		case types.CommandDisableWorker:
			c.handleDisable()
		case types.CommandShutdownController:
			c.handleDisable()
			c.state.Store(int32(types.RoleStateShutDown))
			metrics.RecordWorkerStateTransition(c.config.RoleName, types.RoleStateShutDown.String())
			c.logger.V(logutil.DEFAULT).Info("Controller shut down.")
			return
		default:
			c.logger.Error(nil, "Ignoring command of unknown kind", "command", cmd.Kind)
		}
	}
}

// handleEnable starts a worker goroutine for a fresh enable cycle. Runs on the control goroutine.
func (c *LifecycleController) handleEnable() {
	if c.State() == types.RoleStateRunning {
		c.logger.V(logutil.DEBUG).Info("Worker already running, ignoring enable command")
		return
	}

	workerCtx, cancel := context.WithCancel(context.Background())
	c.workerCancel = cancel
	c.workerWg.Add(1)
	go func() {
		defer c.workerWg.Done()
		defer func() {
			if r := recover(); r != nil {
				c.logger.Error(fmt.Errorf("panic: %v", r), "Worker loop terminated by panic", "role", c.config.RoleName)
			}
		}()
		c.work(workerCtx)
	}()

	c.state.Store(int32(types.RoleStateRunning))
	metrics.RecordWorkerStateTransition(c.config.RoleName, types.RoleStateRunning.String())
	c.logger.V(logutil.VERBOSE).Info("Worker enabled.")
}

// handleDisable cancels the current enable cycle and joins the worker goroutine. Runs on the control goroutine.
//
// A worker that already terminated by panic is joined instantly here, so a disable/enable pair also recovers the role
// after a worker crash.
func (c *LifecycleController) handleDisable() {
	if c.State() != types.RoleStateRunning {
		c.logger.V(logutil.DEBUG).Info("Worker not running, ignoring disable command")
		return
	}

	c.workerCancel()
	c.workerWg.Wait()
	c.workerCancel = nil

	c.state.Store(int32(types.RoleStateIdle))
	metrics.RecordWorkerStateTransition(c.config.RoleName, types.RoleStateIdle.String())
	c.logger.V(logutil.VERBOSE).Info("Worker disabled.")
}
