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

// Package metrics defines the prometheus collectors for the lifecycle controllers and the producer and consumer
// roles, along with the record functions the rest of the system calls.
package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	compbasemetrics "k8s.io/component-base/metrics"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	logutil "github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/util/logging"
	metricsutil "github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/util/metrics"
)

const (
	// --- Subsystems ---
	LifecycleComponent = "lifecycle"
	PipelineComponent  = "pipeline"
)

var (
	// --- Common Label Sets ---
	RoleLabels        = []string{"role"}
	RoleCommandLabels = []string{"role", "command"}
	RoleStateLabels   = []string{"role", "state"}

	// --- Common Buckets ---

	// CommandQueueBuckets for command queueing delay, from 100us to 5s.
	CommandQueueBuckets = []float64{
		0.0001, 0.0005, 0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0,
	}
)

// --- Lifecycle Controller Metrics ---
var (
	commandsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: LifecycleComponent,
			Name:      "commands_processed_total",
			Help:      metricsutil.HelpMsgWithStability("Counter of lifecycle commands executed by the control goroutine, broken out per role and command kind.", compbasemetrics.ALPHA),
		},
		RoleCommandLabels,
	)

	commandQueueDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Subsystem: LifecycleComponent,
			Name:      "command_queue_duration_seconds",
			Help:      metricsutil.HelpMsgWithStability("Distribution of the time a lifecycle command waited in the command queue before execution, broken out per role and command kind.", compbasemetrics.ALPHA),
			Buckets:   CommandQueueBuckets,
		},
		RoleCommandLabels,
	)

	workerStateTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: LifecycleComponent,
			Name:      "worker_state_transitions_total",
			Help:      metricsutil.HelpMsgWithStability("Counter of worker state transitions, broken out per role and resulting state.", compbasemetrics.ALPHA),
		},
		RoleStateLabels,
	)
)

// --- Producer / Consumer Metrics ---
var (
	itemsProducedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: PipelineComponent,
			Name:      "items_produced_total",
			Help:      metricsutil.HelpMsgWithStability("Counter of items a producer forwarded into the shared adapter, broken out per role.", compbasemetrics.ALPHA),
		},
		RoleLabels,
	)

	itemsConsumedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: PipelineComponent,
			Name:      "items_consumed_total",
			Help:      metricsutil.HelpMsgWithStability("Counter of items a consumer delivered to its callback, broken out per role.", compbasemetrics.ALPHA),
		},
		RoleLabels,
	)

	callbackErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: PipelineComponent,
			Name:      "callback_errors_total",
			Help:      metricsutil.HelpMsgWithStability("Counter of consumer callback invocations that returned an error or panicked, broken out per role.", compbasemetrics.ALPHA),
		},
		RoleLabels,
	)
)

var registerMetrics sync.Once

// Register registers all pipeline metrics, plus any custom collectors, with the controller-runtime registry.
func Register(customCollectors ...prometheus.Collector) {
	registerMetrics.Do(func() {
		// Register lifecycle metrics
		metrics.Registry.MustRegister(commandsProcessedTotal)
		metrics.Registry.MustRegister(commandQueueDuration)
		metrics.Registry.MustRegister(workerStateTransitionsTotal)

		// Register producer / consumer metrics
		metrics.Registry.MustRegister(itemsProducedTotal)
		metrics.Registry.MustRegister(itemsConsumedTotal)
		metrics.Registry.MustRegister(callbackErrorsTotal)

		for _, collector := range customCollectors {
			metrics.Registry.MustRegister(collector)
		}
	})
}

// Just for integration test
func Reset() {
	commandsProcessedTotal.Reset()
	commandQueueDuration.Reset()
	workerStateTransitionsTotal.Reset()
	itemsProducedTotal.Reset()
	itemsConsumedTotal.Reset()
	callbackErrorsTotal.Reset()
}

// RecordCommandProcessed records one lifecycle command executed by a role's control goroutine.
func RecordCommandProcessed(role, command string) {
	commandsProcessedTotal.WithLabelValues(role, command).Inc()
}

// RecordCommandQueueDuration records how long a command waited in the command queue before execution.
func RecordCommandQueueDuration(ctx context.Context, role, command string, queueDuration time.Duration) bool {
	if queueDuration < 0 {
		log.FromContext(ctx).V(logutil.DEFAULT).Error(nil, "Command queue duration is invalid",
			"role", role, "command", command, "queueDuration", queueDuration)
		return false
	}
	commandQueueDuration.WithLabelValues(role, command).Observe(queueDuration.Seconds())
	return true
}

// RecordWorkerStateTransition records a worker state transition for the role.
func RecordWorkerStateTransition(role, state string) {
	workerStateTransitionsTotal.WithLabelValues(role, state).Inc()
}

// AddItemsProduced records items a producer forwarded into the shared adapter.
func AddItemsProduced(role string, count int) {
	itemsProducedTotal.WithLabelValues(role).Add(float64(count))
}

// IncItemsConsumed records one item a consumer delivered to its callback.
func IncItemsConsumed(role string) {
	itemsConsumedTotal.WithLabelValues(role).Inc()
}

// IncCallbackError records one callback invocation that returned an error or panicked.
func IncCallbackError(role string) {
	callbackErrorsTotal.WithLabelValues(role).Inc()
}
