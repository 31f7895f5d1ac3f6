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

// Package runner parses the demonstration options and drives a complete producer/consumer pipeline over one shared
// adapter: enable both roles, stream batches, toggle the roles mid-stream, and shut everything down.
package runner

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	uberzap "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/adapter"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/controller"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/metrics"
	logutil "github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/util/logging"
	"github.com/HovsepPapoyan/ProducerConsumer/version"

	// Register the container disciplines selectable via --discipline.
	_ "github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline/fifo"
	_ "github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline/lifo"
	_ "github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline/maxheap"
)

var setupLog = ctrl.Log.WithName("setup")

// Runner owns the demonstration pipeline's construction and execution.
type Runner struct {
	opts *Options
}

func NewRunner() *Runner {
	return &Runner{opts: NewOptions()}
}

func (r *Runner) Run(ctx context.Context) error {
	opts := r.opts
	opts.AddFlags(pflag.CommandLine)
	pflag.Parse()
	initLogging(opts)

	setupLog.Info("Pipeline build", "commit-sha", version.CommitSHA, "build-ref", version.BuildRef)

	if err := opts.Complete(); err != nil {
		setupLog.Error(err, "Failed to complete options")
		return err
	}
	opts.applyEnvOverrides(setupLog)
	if err := opts.Validate(); err != nil {
		setupLog.Error(err, "Failed to validate options")
		return err
	}

	// Print all flag values.
	flags := make(map[string]any)
	opts.fs.VisitAll(func(f *pflag.Flag) {
		flags[f.Name] = f.Value
	})
	setupLog.Info("Flags processed", "flags", flags)

	metrics.Register()

	return r.runPipeline(ctx, setupLog)
}

// runPipeline replays the demonstration scenario: one producer and one consumer over a shared adapter, a stream of
// counting batches, and a few disable/enable cycles in the middle of it.
func (r *Runner) runPipeline(ctx context.Context, logger logr.Logger) error {
	opts := r.opts

	// The comparator is consulted only by priority-capable disciplines; FIFO and LIFO ignore it.
	comparator := framework.NewPayloadComparator("int_value_desc", func(a, b int) bool { return a > b })
	container, err := discipline.NewContainerFromName(discipline.RegisteredContainerName(opts.Discipline), comparator)
	if err != nil {
		logger.Error(err, "Failed to construct the shared container", "discipline", opts.Discipline)
		return err
	}
	shared, err := adapter.New[int](container)
	if err != nil {
		logger.Error(err, "Failed to construct the shared adapter", "discipline", opts.Discipline)
		return err
	}

	producerCfg, err := controller.NewConfig("producer")
	if err != nil {
		return err
	}
	consumerCfg, err := controller.NewConfig("consumer")
	if err != nil {
		return err
	}

	var handled atomic.Int64
	callback := func(item int) error {
		n := handled.Add(1)
		if opts.FailEveryNth > 0 && n%int64(opts.FailEveryNth) == 0 {
			return fmt.Errorf("injected failure for element %d", item)
		}
		logger.V(logutil.DEFAULT).Info("Consumed element", "value", item)
		return nil
	}

	producer, err := controller.NewProducer(*producerCfg, shared, logger)
	if err != nil {
		return err
	}
	consumer, err := controller.NewConsumer(*consumerCfg, shared, callback, logger)
	if err != nil {
		producer.Shutdown()
		return err
	}

	logger.Info("Starting pipeline roles",
		"discipline", shared.Name(), "batches", opts.BatchCount, "itemsPerBatch", opts.ItemsPerBatch)
	if err := producer.EnableWorker(); err != nil {
		return err
	}
	if err := consumer.EnableWorker(); err != nil {
		return err
	}

	batch := make([]int, opts.ItemsPerBatch)
	for i := range batch {
		batch[i] = i + 1
	}
	for i := range opts.BatchCount {
		if err := producer.Push(batch...); err != nil {
			logger.Error(err, "Failed to push batch", "batch", i+1)
			return err
		}
	}
	settle(ctx, opts.SettleDuration)

	for cycle := range opts.ToggleCycles {
		if ctx.Err() != nil {
			break
		}
		logger.Info("Toggling pipeline roles", "cycle", cycle+1)
		if err := consumer.DisableWorker(); err != nil {
			return err
		}
		if err := producer.DisableWorker(); err != nil {
			return err
		}
		settle(ctx, opts.SettleDuration)
		if err := producer.EnableWorker(); err != nil {
			return err
		}
		if err := consumer.EnableWorker(); err != nil {
			return err
		}
		settle(ctx, opts.SettleDuration)
	}

	logger.Info("Shutting down pipeline roles")
	g := new(errgroup.Group)
	g.Go(func() error {
		producer.Shutdown()
		return nil
	})
	g.Go(func() error {
		consumer.Shutdown()
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("Pipeline demonstration complete", "handled", handled.Load(), "remaining", shared.Len())
	return nil
}

// settle pauses between demonstration phases, returning early if the run is interrupted.
func settle(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func initLogging(opts *Options) {
	// Unless --zap-log-level is explicitly set, derive the zap level from -v.
	zapLogLevelFlag := opts.fs.Lookup(ZapLogLevelFlagName)
	if zapLogLevelFlag != nil && !zapLogLevelFlag.Changed {
		lvl := -1 * opts.LogVerbosity // See https://pkg.go.dev/sigs.k8s.io/controller-runtime/pkg/log/zap#Options.Level
		opts.ZapOptions.Level = uberzap.NewAtomicLevelAt(zapcore.Level(int8(lvl)))
		zapLogLevelFlag.Changed = true
	}

	logger := zap.New(zap.UseFlagOptions(&opts.ZapOptions), zap.RawZapOpts(uberzap.AddCaller()))
	ctrl.SetLogger(logger)
}
