// Package log provides a small structured logging facade over [log/slog].
//
// A [Logger] is an immutable value: configuration is fixed when it is built
// with [Make], and [Logger.Wrap] or [Logger.With] derive new loggers without
// touching the original. Every level has a context-aware method
// (InfoContext) and a context-free one (Info) that uses
// [DefaultContextProvider].
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText))
//	logger.Debug("engine ready", slog.Int("functions", 42))
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is used for per-keystroke and
// per-evaluation detail. The remaining levels map directly onto slog.
//
// # Formats
//
// [FormatText] and [FormatJSON] select the slog handler. With [WithPretty]
// enabled, text output is colorized with lipgloss when the destination
// writer is a terminal.
//
// # Default logger
//
// Package-level functions ([Info], [DebugContext], ...) write through a
// process-wide default logger that the CLI reconfigures with [Config] while
// flags are parsed.
package log
