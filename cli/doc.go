// Package cli contains the command line interface for akin.
//
// # Usage
//
// The default command expands a template to stdout:
//
//	akin template.akin
//	akin --source - < template.akin
//	akin expand --watch --output gen.txt template.akin
//
// The vars subcommand prints the variable table without expanding:
//
//	akin vars --format yaml template.akin
//
// The repl subcommand opens an interactive playground that re-renders the
// template on every keystroke.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//		go build -tags pprof .
//
//	  - --pprof-mode: Enable profiling (allocs, block, clock, cpu,
//	    goroutine, heap, mem, mutex, thread, trace)
//	  - --pprof-dir: Set profile output directory (default:
//	    ~/.cache/akin/pprof)
package cli
