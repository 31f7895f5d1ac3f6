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

package runner

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/yaml"

	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/framework/plugins/discipline/maxheap"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/util/env"
	"github.com/HovsepPapoyan/ProducerConsumer/pkg/pipeline/util/logging"
)

const (
	DefaultDiscipline     = maxheap.MaxHeapContainerName
	DefaultBatchCount     = 3
	DefaultItemsPerBatch  = 6
	DefaultToggleCycles   = 2
	DefaultSettleDuration = 200 * time.Millisecond
	ZapLogLevelFlagName   = "zap-log-level"
)

// Options contains configuration values necessary to run the pipeline demonstration.
type Options struct {
	//
	// Pipeline demonstration.
	//
	Discipline     string        // Name of the registered container discipline backing the shared adapter.
	BatchCount     int           // Number of batches the producer pushes.
	ItemsPerBatch  int           // Number of elements in each pushed batch, counting up from 1.
	ToggleCycles   int           // Number of disable/enable cycles run against both roles mid-stream.
	SettleDuration time.Duration // Pause between demonstration phases so in-flight work can drain.
	FailEveryNth   int           // Makes the consumer callback fail for every Nth element; 0 disables the injection.
	//
	// Diagnostics.
	//
	LogVerbosity int         // Number for the log level verbosity.
	ZapOptions   zap.Options // Zap logging options
	//
	// Configuration.
	//
	ConfigFile string // The path to an optional YAML file with demonstration values.

	// internal
	fs *pflag.FlagSet // FlagSet used in AddFlags() and consulted afterwards for explicitly set flags
}

// NewOptions returns a new Options struct initialized with the default values.
func NewOptions() *Options {
	return &Options{ // "zero" values are not explicitly set
		Discipline:     DefaultDiscipline,
		BatchCount:     DefaultBatchCount,
		ItemsPerBatch:  DefaultItemsPerBatch,
		ToggleCycles:   DefaultToggleCycles,
		SettleDuration: DefaultSettleDuration,
		LogVerbosity:   logging.DEFAULT,
		ZapOptions:     zap.Options{Development: true},
	}
}

func (opts *Options) AddFlags(fs *pflag.FlagSet) {
	if fs == nil {
		fs = pflag.CommandLine
	}
	opts.fs = fs

	fs.StringVar(&opts.Discipline, "discipline", opts.Discipline,
		"Name of the registered container discipline backing the shared adapter (FIFO, LIFO or MaxHeap).")
	fs.IntVar(&opts.BatchCount, "batch-count", opts.BatchCount, "Number of batches the producer pushes.")
	fs.IntVar(&opts.ItemsPerBatch, "items-per-batch", opts.ItemsPerBatch,
		"Number of elements in each pushed batch, counting up from 1.")
	fs.IntVar(&opts.ToggleCycles, "toggle-cycles", opts.ToggleCycles,
		"Number of disable/enable cycles run against both roles mid-stream.")
	fs.DurationVar(&opts.SettleDuration, "settle-duration", opts.SettleDuration,
		"Pause between demonstration phases so in-flight work can drain.")
	fs.IntVar(&opts.FailEveryNth, "fail-every-nth", opts.FailEveryNth,
		"Makes the consumer callback fail for every Nth element to demonstrate per-element containment. 0 disables the injection.")
	fs.IntVarP(&opts.LogVerbosity, "v", "v", opts.LogVerbosity, "Number for the log level verbosity.") // allow both --v and -v
	gofs := flag.NewFlagSet("zap", flag.ExitOnError)
	opts.ZapOptions.BindFlags(gofs) // zap expects a standard Go FlagSet and pflag.FlagSet is not compatible.
	fs.AddGoFlagSet(gofs)
	fs.StringVar(&opts.ConfigFile, "config-file", opts.ConfigFile,
		"The path to an optional YAML file with demonstration values. Explicitly set flags take precedence over it.")
}

// fileConfig mirrors the flag-settable demonstration values for YAML configuration files.
// Durations are strings in Go syntax (for example "200ms").
type fileConfig struct {
	Discipline     string `json:"discipline,omitempty"`
	BatchCount     *int   `json:"batchCount,omitempty"`
	ItemsPerBatch  *int   `json:"itemsPerBatch,omitempty"`
	ToggleCycles   *int   `json:"toggleCycles,omitempty"`
	SettleDuration string `json:"settleDuration,omitempty"`
	FailEveryNth   *int   `json:"failEveryNth,omitempty"`
}

// Complete folds the optional YAML configuration file into the options. Values from the file fill only fields whose
// flags were not set explicitly.
func (opts *Options) Complete() error {
	if opts.ConfigFile == "" {
		return nil
	}
	raw, err := os.ReadFile(opts.ConfigFile)
	if err != nil {
		return fmt.Errorf("reading config file %q: %w", opts.ConfigFile, err)
	}
	var fc fileConfig
	if err := yaml.UnmarshalStrict(raw, &fc); err != nil {
		return fmt.Errorf("parsing config file %q: %w", opts.ConfigFile, err)
	}
	return opts.applyFileConfig(&fc)
}

func (opts *Options) applyFileConfig(fc *fileConfig) error {
	if fc.Discipline != "" && !opts.fs.Changed("discipline") {
		opts.Discipline = fc.Discipline
	}
	if fc.BatchCount != nil && !opts.fs.Changed("batch-count") {
		opts.BatchCount = *fc.BatchCount
	}
	if fc.ItemsPerBatch != nil && !opts.fs.Changed("items-per-batch") {
		opts.ItemsPerBatch = *fc.ItemsPerBatch
	}
	if fc.ToggleCycles != nil && !opts.fs.Changed("toggle-cycles") {
		opts.ToggleCycles = *fc.ToggleCycles
	}
	if fc.SettleDuration != "" && !opts.fs.Changed("settle-duration") {
		d, err := time.ParseDuration(fc.SettleDuration)
		if err != nil {
			return fmt.Errorf("parsing settleDuration %q: %w", fc.SettleDuration, err)
		}
		opts.SettleDuration = d
	}
	if fc.FailEveryNth != nil && !opts.fs.Changed("fail-every-nth") {
		opts.FailEveryNth = *fc.FailEveryNth
	}
	return nil
}

// applyEnvOverrides lets environment variables stand in for flags the caller did not set explicitly. Explicitly set
// flags always win; environment values beat both file and default values.
func (opts *Options) applyEnvOverrides(logger logr.Logger) {
	if !opts.fs.Changed("discipline") {
		opts.Discipline = env.GetEnvString("PIPELINE_DISCIPLINE", opts.Discipline, logger)
	}
	if !opts.fs.Changed("batch-count") {
		opts.BatchCount = env.GetEnvInt("PIPELINE_BATCH_COUNT", opts.BatchCount, logger)
	}
	if !opts.fs.Changed("items-per-batch") {
		opts.ItemsPerBatch = env.GetEnvInt("PIPELINE_ITEMS_PER_BATCH", opts.ItemsPerBatch, logger)
	}
	if !opts.fs.Changed("toggle-cycles") {
		opts.ToggleCycles = env.GetEnvInt("PIPELINE_TOGGLE_CYCLES", opts.ToggleCycles, logger)
	}
	if !opts.fs.Changed("settle-duration") {
		opts.SettleDuration = env.GetEnvDuration("PIPELINE_SETTLE_DURATION", opts.SettleDuration, logger)
	}
	if !opts.fs.Changed("fail-every-nth") {
		opts.FailEveryNth = env.GetEnvInt("PIPELINE_FAIL_EVERY_NTH", opts.FailEveryNth, logger)
	}
}

// Validate checks the numeric ranges of the options. Whether `Discipline` names a registered container is decided by
// the discipline registry when the shared adapter is constructed.
func (opts *Options) Validate() error {
	if opts.Discipline == "" {
		return errors.New("discipline must not be empty")
	}
	if opts.BatchCount < 0 {
		return fmt.Errorf("batch-count cannot be negative, but got %d", opts.BatchCount)
	}
	if opts.ItemsPerBatch <= 0 {
		return fmt.Errorf("items-per-batch must be positive, but got %d", opts.ItemsPerBatch)
	}
	if opts.ToggleCycles < 0 {
		return fmt.Errorf("toggle-cycles cannot be negative, but got %d", opts.ToggleCycles)
	}
	if opts.SettleDuration <= 0 {
		return fmt.Errorf("settle-duration must be positive, but got %v", opts.SettleDuration)
	}
	if opts.FailEveryNth < 0 {
		return fmt.Errorf("fail-every-nth cannot be negative, but got %d", opts.FailEveryNth)
	}
	return nil
}
