// Package cli contains the command line interface for sci.
//
// # Usage
//
// With no command, sci starts the interactive calculator:
//
//	sci --mode=deg
//	sci eval 'sin(30)' 'ans * 2'
//	echo 'comb(52, 5)' | sci eval
//	sci init --force
//
// The terminal UI is used when stdin and stdout are both terminals; --plain
// or redirected streams select the line loop.
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (for example ~/.config/sci/config.yaml), then from
// config.yaml.json next to it. Command-line flags override both. The init
// command writes the current flag values to config.yaml.
//
// # Logging Options
//
// Logs are written to stderr so stdout carries only calculator output.
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o sci .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/sci/pprof)
package cli
