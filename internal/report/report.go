// Package report renders the summary of a run as text, a table, or JSON.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/indaco/version-register/internal/printer"
	"github.com/indaco/version-register/internal/scan"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// OutputFormat controls how a summary is displayed.
type OutputFormat string

const (
	// FormatText outputs human-readable text.
	FormatText OutputFormat = "text"

	// FormatJSON outputs machine-readable JSON.
	FormatJSON OutputFormat = "json"

	// FormatTable outputs tabular data.
	FormatTable OutputFormat = "table"
)

// ParseOutputFormat converts a string to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "table":
		return FormatTable, nil
	default:
		return FormatText, fmt.Errorf("unknown output format %q (want text, json or table)", s)
	}
}

// Formatter renders summaries through a printer.
type Formatter struct {
	format  OutputFormat
	printer *printer.Printer
}

// NewFormatter creates a Formatter for format.
func NewFormatter(format OutputFormat, p *printer.Printer) *Formatter {
	return &Formatter{format: format, printer: p}
}

// Print writes the rendered summary to the printer's writer.
func (f *Formatter) Print(summary *scan.Summary) {
	fmt.Fprint(f.printer.Writer(), f.Format(summary))
}

// Format renders summary in the configured format.
func (f *Formatter) Format(summary *scan.Summary) string {
	switch f.format {
	case FormatJSON:
		return f.formatJSON(summary)
	case FormatTable:
		return f.formatTable(summary)
	default:
		return f.formatText(summary)
	}
}

func (f *Formatter) formatText(summary *scan.Summary) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(f.printer.Info("Register Results"))
	sb.WriteString("\n")
	sb.WriteString(f.printer.Faint(strings.Repeat("-", 70)))
	sb.WriteString("\n")

	for _, e := range summary.Entries {
		detail := fmt.Sprintf("(%s: %s %s)", e.Record.ProjectType, e.Record.Name, e.Record.Version)
		if e.Status == scan.StatusSkipped {
			detail = "(unreadable)"
		}
		fmt.Fprintf(&sb, "  %s %s %s\n", f.statusMark(e.Status), e.Dir, f.printer.Faint(detail))
	}

	sb.WriteString(f.printer.Faint(strings.Repeat("-", 70)))
	sb.WriteString("\n")
	sb.WriteString(f.formatSummaryLine(summary))
	sb.WriteString("\n")
	for _, path := range summary.LogPaths() {
		fmt.Fprintf(&sb, "Log file: %s\n", f.printer.Bold(path))
	}

	return sb.String()
}

func (f *Formatter) formatTable(summary *scan.Summary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%-40s %-12s %-25s %-20s %-10s\n", "DIRECTORY", "TYPE", "NAME", "VERSION", "STATUS")
	sb.WriteString(strings.Repeat("-", 111) + "\n")
	for _, e := range summary.Entries {
		fmt.Fprintf(&sb, "%-40s %-12s %-25s %-20s %-10s\n",
			relativeTo(summary.Root, e.Dir), e.Record.ProjectType, e.Record.Name, e.Record.Version, e.Status)
	}
	sb.WriteString("\n")
	sb.WriteString(f.formatSummaryLine(summary))
	sb.WriteString("\n")

	return sb.String()
}

// formatJSON builds the document field by field so keys keep a stable order.
func (f *Formatter) formatJSON(summary *scan.Summary) string {
	doc := []byte(`{"root":"","entries":[],"summary":{}}`)
	doc, _ = sjson.SetBytes(doc, "root", summary.Root)

	for _, e := range summary.Entries {
		entry := []byte(`{}`)
		entry, _ = sjson.SetBytes(entry, "dir", e.Dir)
		entry, _ = sjson.SetBytes(entry, "type", e.Kind.String())
		entry, _ = sjson.SetBytes(entry, "timestamp", e.Record.Timestamp)
		entry, _ = sjson.SetBytes(entry, "name", e.Record.Name)
		entry, _ = sjson.SetBytes(entry, "version", e.Record.Version)
		entry, _ = sjson.SetBytes(entry, "environment", e.Record.Environment)
		entry, _ = sjson.SetBytes(entry, "status", e.Status.String())
		if e.LogPath != "" {
			entry, _ = sjson.SetBytes(entry, "log_file", e.LogPath)
		}
		if e.Err != nil {
			entry, _ = sjson.SetBytes(entry, "error", e.Err.Error())
		}
		doc, _ = sjson.SetRawBytes(doc, "entries.-1", entry)
	}

	doc, _ = sjson.SetBytes(doc, "summary.processed", len(summary.Entries))
	doc, _ = sjson.SetBytes(doc, "summary.appended", summary.Count(scan.StatusAppended))
	doc, _ = sjson.SetBytes(doc, "summary.duplicates", summary.Count(scan.StatusDuplicate))
	doc, _ = sjson.SetBytes(doc, "summary.failed", summary.Count(scan.StatusFailed))
	doc, _ = sjson.SetBytes(doc, "summary.skipped", summary.Count(scan.StatusSkipped))
	doc, _ = sjson.SetBytes(doc, "summary.errors", summary.Errors())

	return gjson.GetBytes(doc, "@pretty").Raw
}

func (f *Formatter) formatSummaryLine(summary *scan.Summary) string {
	parts := []string{
		fmt.Sprintf("Processed: %d", len(summary.Entries)),
		fmt.Sprintf("Appended: %d", summary.Count(scan.StatusAppended)),
		fmt.Sprintf("Duplicates: %d", summary.Count(scan.StatusDuplicate)),
	}
	if n := summary.Count(scan.StatusFailed); n > 0 {
		parts = append(parts, f.printer.Error(fmt.Sprintf("Failed: %d", n)))
	}
	if n := summary.Count(scan.StatusSkipped); n > 0 {
		parts = append(parts, f.printer.Warning(fmt.Sprintf("Skipped: %d", n)))
	}
	return strings.Join(parts, " | ")
}

func (f *Formatter) statusMark(s scan.Status) string {
	switch s {
	case scan.StatusAppended:
		return f.printer.Success("✓")
	case scan.StatusDuplicate:
		return f.printer.Faint("=")
	case scan.StatusFailed:
		return f.printer.Error("✗")
	default:
		return f.printer.Warning("⚠")
	}
}

func relativeTo(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return dir
	}
	return rel
}
