// Package cli contains the command line interface for menugen.
//
// # Usage
//
// The default command generates C definitions from a menu description:
//
//	menugen menu.json > menu_generated.c
//	menugen gen --output menu_generated.c menu.yaml
//
// Other commands format, preview and evaluate a description:
//
//	menugen fmt yaml menu.json
//	menugen fmt ast menu.json
//	menugen preview --phase confirm menu.json
//	menugen eval -f rgb,animations -v build=debug menu.json
//
// The --root flag selects the top-level key holding the root item
// (default main_menu). The --yaml flag reads stdin as YAML.
//
// # Configuration
//
// Flag values may be read from a YAML file in the configuration directory
// ($XDG_CONFIG_HOME/menugen/config.yaml on Linux). The init command writes
// one holding the current flag values. Nested keys are joined with "-":
//
//	root: main_menu
//	log:
//	  level: debug
//	  format: text
//
// A JSON file (config.json) with flat keys is also read.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/menugen/pprof)
package cli
