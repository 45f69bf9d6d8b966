package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/stripbin/internal/redact"
)

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *redact.Report) error
}

// Formats lists the supported output formats.
var Formats = []string{"text", "json", "markdown"}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown":
		return &MarkdownWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to the specified output (file path or stdout).
func WriteReport(report *redact.Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	if outPath == "" {
		return writer.Write(os.Stdout, report)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	return writeAndClose(f, writer, report)
}

// writeAndClose writes the report to wc and closes it, returning the close
// error when the write succeeded.
func writeAndClose(wc io.WriteCloser, writer Writer, report *redact.Report) error {
	if err := writer.Write(wc, report); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}
