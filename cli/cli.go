// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli builds the command line front end shared by solutions:
//
//	solution [flags] <input> [output]
//
// When output is omitted it is derived from input by replacing its extension.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/empijei/caserun"
)

// SolveFunc runs a solution on the engine configured from the command line,
// typically by calling caserun.Run.
type SolveFunc func(ctx context.Context, e *caserun.Engine) error

type flags struct {
	config   string
	mode     string
	parallel bool
	workers  int
	window   int
	progress time.Duration
	ext      string
	verbose  bool
}

var newLogger = func(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// NewCommand returns the command for the solution called name.
// Flags override the values read from --config.
func NewCommand(name string, solve SolveFunc) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           name + " <input> [output]",
		Short:         "Solve every case of <input>, writing the answers to [output]",
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}
			input := args[0]
			output := OutputPath(input, cfg.Ext())
			if len(args) == 2 {
				output = args[1]
			}

			logger, err := newLogger(f.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			opts := append(cfg.Options(), caserun.WithLogger(logger.Named(name)))
			return solve(cmd.Context(), caserun.New(input, output, opts...))
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "YAML file with default settings")
	fl.StringVar(&f.mode, "mode", "", "scheduling mode: sequential, parallel or streaming")
	fl.BoolVarP(&f.parallel, "parallel", "p", false, "shorthand for --mode=parallel")
	fl.IntVar(&f.workers, "workers", 0, "maximum concurrent cases (default GOMAXPROCS)")
	fl.IntVar(&f.window, "window", 0, "maximum cases waiting for emission in streaming mode")
	fl.DurationVar(&f.progress, "progress", 0, "log progress at this interval")
	fl.StringVar(&f.ext, "ext", "", "extension of the derived output path (default "+caserun.DefaultOutputExt+")")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	cmd.MarkFlagsMutuallyExclusive("mode", "parallel")
	return cmd
}

func (f *flags) resolve(cmd *cobra.Command) (caserun.Config, error) {
	var cfg caserun.Config
	if f.config != "" {
		var err error
		if cfg, err = caserun.LoadConfig(f.config); err != nil {
			return cfg, err
		}
	}
	fl := cmd.Flags()
	if fl.Changed("mode") {
		cfg.Mode = f.mode
	}
	if f.parallel {
		cfg.Mode = caserun.Parallel.String()
	}
	if fl.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fl.Changed("window") {
		cfg.Window = f.window
	}
	if fl.Changed("progress") {
		cfg.ProgressInterval = f.progress.String()
	}
	if fl.Changed("ext") {
		cfg.OutputExt = f.ext
	}
	return cfg, cfg.Validate()
}

// OutputPath replaces the extension of input with ext. If that would name the
// input itself, ext is appended instead.
func OutputPath(input, ext string) string {
	out := strings.TrimSuffix(input, filepath.Ext(input)) + ext
	if out == input {
		out = input + ext
	}
	return out
}

// Main runs the command for the solution called name with the process
// arguments and exits with a non-zero status if it fails.
func Main(name string, solve SolveFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewCommand(name, solve).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		os.Exit(1)
	}
}
