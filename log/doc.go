// Package log provides leveled logging based on [log/slog].
//
// A [Logger] is created with [Make] and configured with functional
// options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON))
//
// The zero value Logger is valid and silently discards every message,
// which lets libraries accept an optional logger without nil checks.
//
// Five levels are supported, adding [LevelTrace] below slog's debug for
// recording phase-by-phase progress of the parser and expander.
//
// Every level has a context-aware variant ([Logger.InfoContext] and
// friends); the context-unaware methods delegate to them using
// [DefaultContextProvider].
//
// Package-level functions ([Info], [Error], [Config], ...) operate on a
// shared default logger writing to standard error. The command-line
// front end reconfigures the default logger from its flags; library code
// receives an explicit Logger instead.
package log
