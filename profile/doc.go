// Package profile adds runtime profiling to CLI applications.
//
// CPU profiles and execution traces stream while the command runs; heap,
// allocs, block and mutex profiles are written as snapshots when profiling
// stops. Each output is enabled by giving it a path.
//
//	cfg := profile.NewConfig()
//	p := cfg.NewProfiler()
//
//	rootCmd := &cobra.Command{
//	    PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
//	        return p.Start()
//	    },
//	}
//
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	err := rootCmd.ExecuteContext(ctx)
//	err = errors.Join(err, p.Stop())
package profile
