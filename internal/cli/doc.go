// Package cli wires together the Cobra command tree for the stripbin binary.
//
// It defines the root command and its subcommands (strip, config, version),
// binds flags, merges configuration, runs the redactor against the OS
// filesystem, and maps typed failures onto deterministic exit codes.
package cli
