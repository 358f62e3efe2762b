// Package cmd implements the command-line interface of dObj. The commands
// exercise the object library with a configurable store and report how it
// behaves.
//
// The package is organized into several subpackages:
//
//   - perf: Benchmarks of the object operations (put, get, with, merge, ...)
//   - race: Measures how often concurrent compute-if-absent calls race
//   - util: Shared utilities for command-line processing, configuration and logging (internal use)
//
// All flags can also be set as environment variables with the DOBJ_ prefix
// (e.g. DOBJ_BACKING=concurrent) or in a .env file.
//
// See dobj -help for a list of all commands.
package cmd
