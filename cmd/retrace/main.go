// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command retrace replays one or more recorded graphics API call traces
// against a graphics driver, optionally capturing/comparing per-call
// framebuffer snapshots and dumping state at a configured call index.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/google/gfx-retrace/core/log"
	"github.com/google/gfx-retrace/replay"
	"github.com/google/gfx-retrace/trace"
)

type options struct {
	benchmark     bool
	profileCPU    bool
	profileGPU    bool
	profilePixels bool

	comparePrefix     string
	compareFrequency  callSetValue
	snapshotPrefix    string
	snapshotFrequency callSetValue

	coreProfile  bool
	doubleBuffer bool
	singleBuffer bool

	dumpStateCall int64

	verbose int
	wait    bool

	configPath string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opt options

	cmd := &cobra.Command{
		Use:   "retrace [flags] TRACE...",
		Short: "Replay recorded graphics API call traces",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opt, args)
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.BoolVar(&opt.benchmark, "benchmark", false, "disable error checking, minimal output")
	flags.BoolVar(&opt.profileCPU, "profile-cpu", false, "enable CPU profiling")
	flags.BoolVar(&opt.profileGPU, "profile-gpu", false, "enable GPU profiling")
	flags.BoolVar(&opt.profilePixels, "profile-pixels-drawn", false, "enable pixels-drawn profiling")
	flags.StringVarP(&opt.comparePrefix, "compare-prefix", "c", "", "compare snapshots against reference PNGs at PREFIX<no>.png")
	flags.VarP(&opt.compareFrequency, "compare-frequency", "C", "CallSet controlling compare frequency (default: every frame)")
	flags.StringVarP(&opt.snapshotPrefix, "snapshot-prefix", "s", "", `write snapshots to PREFIX<no>.png ("-" writes PNM to stdout)`)
	flags.VarP(&opt.snapshotFrequency, "snapshot-frequency", "S", "CallSet controlling snapshot frequency (default: every frame)")
	flags.BoolVar(&opt.coreProfile, "core-profile", false, "request a core-profile context")
	flags.BoolVar(&opt.doubleBuffer, "double-buffer", false, "use a double-buffered visual")
	flags.BoolVar(&opt.singleBuffer, "single-buffer", false, "use a single-buffered visual")
	flags.Int64VarP(&opt.dumpStateCall, "dump-state-call", "D", -1, "dump state at or after this call index and exit")
	flags.CountVarP(&opt.verbose, "verbose", "v", "increase verbosity")
	flags.BoolVarP(&opt.wait, "wait", "w", false, "wait for input after replay")
	flags.StringVar(&opt.configPath, "config", "", "YAML file supplying defaults for the flags above")

	return cmd
}

func run(cmd *cobra.Command, opt options, files []string) error {
	cfg, verbosity, err := buildConfig(cmd, opt)
	if err != nil {
		return err
	}

	profiling := opt.profileCPU || opt.profileGPU || opt.profilePixels
	ctx := log.PutMinSeverity(context.Background(), verbosityToSeverity(verbosity))

	for _, path := range files {
		stopped, err := runOne(ctx, path, cfg, verbosity, profiling, opt.wait)
		if err != nil {
			log.E(ctx, "%s: %v", path, err)
			return err
		}
		if stopped {
			// The state-dump gate fired: stop, like the original tool's exit(0)
			// after dumping state, without replaying any remaining trace files.
			break
		}
	}
	return nil
}

func buildConfig(cmd *cobra.Command, opt options) (replay.Config, int, error) {
	cfg := replay.Config{
		ComparePrefix: opt.comparePrefix,
		SnapshotPrefix: opt.snapshotPrefix,
		WaitOnFinish:  opt.wait,
		DoubleBuffer:  opt.doubleBuffer || !opt.singleBuffer,
		CoreProfile:   opt.coreProfile,

		ProfilingCPU:         opt.profileCPU,
		ProfilingGPU:         opt.profileGPU,
		ProfilingPixelsDrawn: opt.profilePixels,
	}

	compareFreqText := opt.compareFrequency.String()
	snapshotFreqText := opt.snapshotFrequency.String()

	if opt.configPath != "" {
		fc, err := loadConfigFile(opt.configPath)
		if err != nil {
			return replay.Config{}, 0, err
		}
		if !cmd.Flags().Changed("compare-prefix") && fc.ComparePrefix != "" {
			cfg.ComparePrefix = fc.ComparePrefix
		}
		if !cmd.Flags().Changed("snapshot-prefix") && fc.SnapshotPrefix != "" {
			cfg.SnapshotPrefix = fc.SnapshotPrefix
		}
		if !cmd.Flags().Changed("compare-frequency") && fc.CompareFrequency != "" {
			compareFreqText = fc.CompareFrequency
		}
		if !cmd.Flags().Changed("snapshot-frequency") && fc.SnapshotFrequency != "" {
			snapshotFreqText = fc.SnapshotFrequency
		}
		if !cmd.Flags().Changed("wait") {
			cfg.WaitOnFinish = fc.WaitOnFinish
		}
		if !cmd.Flags().Changed("double-buffer") && !cmd.Flags().Changed("single-buffer") {
			cfg.DoubleBuffer = fc.DoubleBuffer
		}
		if !cmd.Flags().Changed("core-profile") {
			cfg.CoreProfile = fc.CoreProfile
		}
	}

	if compareFreqText == "" && cfg.ComparePrefix != "" {
		compareFreqText = "frame"
	}
	if snapshotFreqText == "" && cfg.SnapshotPrefix != "" {
		snapshotFreqText = "frame"
	}
	var err error
	if cfg.CompareFrequency, err = trace.ParseCallSet(compareFreqText); err != nil {
		return replay.Config{}, 0, fmt.Errorf("--compare-frequency: %w", err)
	}
	if cfg.SnapshotFrequency, err = trace.ParseCallSet(snapshotFreqText); err != nil {
		return replay.Config{}, 0, fmt.Errorf("--snapshot-frequency: %w", err)
	}

	if opt.dumpStateCall >= 0 {
		cfg.DumpStateEnabled = true
		cfg.DumpStateCallNo = uint64(opt.dumpStateCall)
	}

	verbosity := opt.verbose
	if opt.benchmark || opt.profileCPU || opt.profileGPU || opt.profilePixels {
		verbosity = -1
	}
	if cfg.SnapshotPrefix == replay.StdoutSentinel || cfg.DumpStateEnabled {
		verbosity = -2
	}

	return cfg, verbosity, nil
}

func verbosityToSeverity(verbosity int) log.Severity {
	switch {
	case verbosity <= -2:
		return log.Error
	case verbosity < 0:
		return log.Warning
	case verbosity == 0:
		return log.Info
	default:
		return log.Debug
	}
}

// runOne replays a single trace file. It reports result.Stopped so the
// caller can honor the state-dump gate: when it fires, replay ends the
// whole process without touching any remaining trace files.
func runOne(ctx context.Context, path string, cfg replay.Config, verbosity int, profiling, wait bool) (bool, error) {
	runID := uuid.New()
	ctx = log.PutHandler(ctx, log.HandlerFunc(func(s log.Severity, text string) {
		log.Stderr.Handle(s, fmt.Sprintf("[%s] %s", runID, text))
	}))

	source, err := trace.OpenFile(path)
	if err != nil {
		return false, err
	}
	defer source.Close()

	dispatcher := &logDispatcher{coreProfile: cfg.CoreProfile, doubleBuffer: cfg.DoubleBuffer}
	snapshotter := &blankSnapshotter{}
	session := replay.NewSession(cfg, dispatcher, snapshotter, stdoutStateDumper{}, os.Stdout)

	start := time.Now()
	result, err := replay.Replay(ctx, source, session)
	elapsed := time.Since(start)
	if err != nil {
		return false, err
	}

	if verbosity >= -1 || profiling {
		secs := elapsed.Seconds()
		fps := 0.0
		if secs > 0 {
			fps = float64(result.Frames) / secs
		}
		fmt.Printf("Rendered %d frames in %f secs, average of %f fps\n", result.Frames, secs, fps)
		log.I(ctx, "run complete: trace=%s frames=%d calls=%d elapsed=%s", path, result.Frames, result.Calls, elapsed)
	}

	if wait {
		waitForInput(ctx)
	}
	return result.Stopped, nil
}

func waitForInput(ctx context.Context) {
	fmt.Fprintln(os.Stdout, "Press ENTER key to continue...")
	bufio.NewReader(os.Stdin).ReadString('\n')
}
