package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/stripbin/internal/redact"
	"github.com/fatih/color"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *redact.Report) error {
	ew := &errWriter{w: w}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	gray := color.New(color.FgHiBlack)

	ew.printf("%s\n", bold.Sprintf("stripbin: %s (%s)", report.Dir, report.Filter))
	if report.DryRun {
		ew.printf("%s\n", yellow.Sprint("Dry run: no files were written"))
	}
	ew.println(strings.Repeat("─", 60))

	if report.Matched == 0 {
		ew.printf("No files matched the filter (%d scanned).\n", report.Scanned)
		return ew.err
	}

	width := 0
	for _, f := range report.Files {
		if len(f.Name) > width {
			width = len(f.Name)
		}
	}

	for _, f := range report.Files {
		status := gray.Sprint("clean")
		switch {
		case f.Changed:
			status = green.Sprint("redacted")
		case f.Replacements > 0:
			status = yellow.Sprint("would redact")
		}
		ew.printf("  %-*s  %3d replacement(s)  %d -> %d bytes  %s\n",
			width, f.Name, f.Replacements, f.SizeBefore, f.SizeAfter, status)
	}

	ew.println(strings.Repeat("─", 60))
	ew.printf("Scanned %d, matched %d, modified %d: %d replacement(s), %+d bytes\n",
		report.Scanned, report.Matched, report.Modified, report.Replacements, report.BytesDelta)

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
