// Package log builds [log/slog] handlers from command-line settings.
//
// It supports the output formats [FormatJSON], [FormatLogfmt] and
// [FormatText], and the levels [LevelError], [LevelWarn], [LevelInfo] and
// [LevelDebug]. JSON and logfmt use the standard library handlers; text
// output is rendered by [charm.land/log/v2] for reading on a terminal.
//
// Typical usage creates a [Config], registers flags, then installs a
// handler at startup:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	logger, err := cfg.Install(os.Stderr)
package log
