// Package output formats redaction reports for display or machine consumption.
//
// Three formats are supported:
//   - text: human-readable terminal output, colored when stdout is a TTY (default)
//   - json: full structured JSON report
//   - markdown: a summary table suitable for CI job summaries
//
// Use [GetWriter] to obtain a [Writer] for a given format string, or
// [WriteReport] to also handle destination selection.
package output
