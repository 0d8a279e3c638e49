// Package log provides the structured logger used by menugen, a thin
// layer over [log/slog].
//
// A [Logger] is built with [Make] and configured with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Info("generated menu", slog.Int("items", 12))
//
// Every level has a context-aware variant (InfoContext, WarnContext, ...).
// The context-unaware variants use [DefaultContextProvider].
//
// The package also owns a process-wide default logger, reconfigured with
// [Config] and used through the package-level functions ([Info], [Warn],
// [ErrorContext], ...). The CLI configures it from the --log-* flags.
//
// # Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], [LevelError].
//
// # Formats
//
// [FormatJSON] (default) and [FormatText]. With [WithPretty] enabled, text
// output is colorized and JSON output is indented.
package log
