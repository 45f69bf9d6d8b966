package output

import (
	"io"

	"github.com/dshills/stripbin/internal/redact"
)

// MarkdownWriter outputs a markdown summary table.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *redact.Report) error {
	ew := &errWriter{w: w}

	ew.printf("## stripbin: `%s`\n\n", report.Dir)
	ew.printf("Filter: `%s`", report.Filter)
	if report.DryRun {
		ew.printf(" (dry run)")
	}
	ew.printf("\n\n")

	if report.Matched == 0 {
		ew.printf("No files matched the filter (%d scanned).\n", report.Scanned)
		return ew.err
	}

	ew.println("| File | Replacements | Size before | Size after | Written |")
	ew.println("|------|--------------|-------------|------------|---------|")
	for _, f := range report.Files {
		written := "no"
		if f.Changed {
			written = "yes"
		}
		ew.printf("| `%s` | %d | %d | %d | %s |\n",
			f.Name, f.Replacements, f.SizeBefore, f.SizeAfter, written)
	}
	ew.printf("| **Total** | **%d** | | **%+d** | **%d** |\n",
		report.Replacements, report.BytesDelta, report.Modified)

	return ew.err
}
