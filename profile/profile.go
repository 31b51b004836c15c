package profile

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Profiler controls the lifecycle of one profiling session.
//
// Call [Profiler.Start] before the profiled work and [Profiler.Stop] after
// it. Flag values are read at Start, so a Profiler may be created before
// flags are parsed.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cfg       *Config
	cpuFile   *os.File
	traceFile *os.File
}

// Start applies the sampling rates and opens the streaming outputs (CPU
// profile and execution trace). Rates are left untouched when no output is
// configured.
func (p *Profiler) Start() error {
	if !p.cfg.Enabled() {
		return nil
	}

	runtime.MemProfileRate = p.cfg.MemProfileRate
	runtime.SetBlockProfileRate(p.cfg.BlockProfileRate)
	runtime.SetMutexProfileFraction(p.cfg.MutexProfileFraction)

	if p.cfg.CPUProfile != "" {
		f, err := startStream(p.cfg.CPUProfile, pprof.StartCPUProfile)
		if err != nil {
			return fmt.Errorf("cpu profile: %w", err)
		}

		p.cpuFile = f
	}

	if p.cfg.Trace != "" {
		f, err := startStream(p.cfg.Trace, trace.Start)
		if err != nil {
			return errors.Join(fmt.Errorf("trace: %w", err), p.stopStreams())
		}

		p.traceFile = f
	}

	slog.Debug("profiling started",
		slog.String("cpu", p.cfg.CPUProfile),
		slog.String("trace", p.cfg.Trace),
	)

	return nil
}

// Stop ends the streaming outputs and writes every configured snapshot
// profile. All outputs are attempted; their errors are joined.
func (p *Profiler) Stop() error {
	if !p.cfg.Enabled() {
		return nil
	}

	errs := []error{p.stopStreams()}

	snapshots := []struct {
		name string
		path string
	}{
		{"heap", p.cfg.HeapProfile},
		{"allocs", p.cfg.AllocsProfile},
		{"block", p.cfg.BlockProfile},
		{"mutex", p.cfg.MutexProfile},
	}

	for _, s := range snapshots {
		if s.path == "" {
			continue
		}

		err := writeSnapshot(s.name, s.path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s profile: %w", s.name, err))

			continue
		}

		slog.Debug("wrote profile", slog.String("profile", s.name), slog.String("path", s.path))
	}

	return errors.Join(errs...)
}

func (p *Profiler) stopStreams() error {
	var errs []error

	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("cpu profile: %w", err))
		}

		p.cpuFile = nil
	}

	if p.traceFile != nil {
		trace.Stop()

		err := p.traceFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("trace: %w", err))
		}

		p.traceFile = nil
	}

	return errors.Join(errs...)
}

// startStream creates path and hands it to start. The file is closed again
// if start fails.
func startStream(path string, start func(w io.Writer) error) (*os.File, error) {
	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	err = start(f)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("start: %w", err), f.Close())
	}

	return f, nil
}

// writeSnapshot writes the named pprof profile to path.
func writeSnapshot(name, path string) error {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("unknown profile %q", name)
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		return errors.Join(fmt.Errorf("write: %w", err), f.Close())
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}
