package profile

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for profiling configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	CPUProfile    string
	Trace         string
	HeapProfile   string
	AllocsProfile string
	BlockProfile  string
	MutexProfile  string

	MemProfileRate       string
	BlockProfileRate     string
	MutexProfileFraction string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Config holds profiling output paths and sampling rates. An empty path
// disables that output, so a zero Config profiles nothing.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewProfiler] to create a [Profiler].
type Config struct {
	Flags Flags

	CPUProfile    string
	Trace         string
	HeapProfile   string
	AllocsProfile string
	BlockProfile  string
	MutexProfile  string

	MemProfileRate       int
	BlockProfileRate     int
	MutexProfileFraction int
}

// NewConfig creates a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		CPUProfile:           "cpu-profile",
		Trace:                "trace",
		HeapProfile:          "heap-profile",
		AllocsProfile:        "allocs-profile",
		BlockProfile:         "block-profile",
		MutexProfile:         "mutex-profile",
		MemProfileRate:       "mem-profile-rate",
		BlockProfileRate:     "block-profile-rate",
		MutexProfileFraction: "mutex-profile-fraction",
	}

	return f.NewConfig()
}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	paths := []struct {
		dst   *string
		name  string
		usage string
	}{
		{&c.CPUProfile, c.Flags.CPUProfile, "write CPU profile to file"},
		{&c.Trace, c.Flags.Trace, "write execution trace to file"},
		{&c.HeapProfile, c.Flags.HeapProfile, "write heap profile to file"},
		{&c.AllocsProfile, c.Flags.AllocsProfile, "write allocs profile to file"},
		{&c.BlockProfile, c.Flags.BlockProfile, "write block profile to file"},
		{&c.MutexProfile, c.Flags.MutexProfile, "write mutex profile to file"},
	}

	for _, p := range paths {
		flags.StringVar(p.dst, p.name, "", p.usage)
	}

	flags.IntVar(&c.MemProfileRate, c.Flags.MemProfileRate, 512*1024,
		"memory profile rate (bytes per sample)")
	flags.IntVar(&c.BlockProfileRate, c.Flags.BlockProfileRate, 1,
		"block profile rate (nanoseconds)")
	flags.IntVar(&c.MutexProfileFraction, c.Flags.MutexProfileFraction, 1,
		"mutex profile fraction (1/N sampling)")
}

// RegisterCompletions registers shell completions for profile flags on cmd.
// Rate flags disable file completion; path flags keep the default.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.MemProfileRate, c.Flags.BlockProfileRate, c.Flags.MutexProfileFraction} {
		err := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// Enabled reports whether any profile output is configured.
func (c *Config) Enabled() bool {
	return c.CPUProfile != "" || c.Trace != "" || c.HeapProfile != "" ||
		c.AllocsProfile != "" || c.BlockProfile != "" || c.MutexProfile != ""
}

// NewProfiler creates a new [Profiler] using this [Config].
func (c *Config) NewProfiler() *Profiler {
	return &Profiler{cfg: c}
}
