// Package observability provides logging setup and formatted output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/formatting"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for terminal summaries
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads line to the inner box width, counting runes
func pad(line string) string {
	inner := boxWidth - 4
	if utf8.RuneCountInString(line) > inner {
		r := []rune(line)
		return string(r[:inner-3]) + "..."
	}
	return line + strings.Repeat(" ", inner-utf8.RuneCountInString(line))
}

// PrintDocument outputs a human-readable summary of the resume document.
func (p *Printer) PrintDocument(doc *types.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder

	name := doc.Personal.FullName
	if name == "" {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Name:     %s\n", name))
	if doc.Personal.JobTitle != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", doc.Personal.JobTitle))
	}
	sb.WriteString(fmt.Sprintf("Template: %s (%s)\n", doc.Meta.Template, doc.Meta.PageSize))
	if doc.Meta.Profession != "" {
		sb.WriteString(fmt.Sprintf("Preset:   %s\n", doc.Meta.Profession))
	}
	sb.WriteString("\n")

	if len(doc.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(doc.Skills)))
		count := min(len(doc.Skills), maxItemsToShow)
		sb.WriteString("  " + strings.Join(doc.Skills[:count], ", ") + "\n")
		if len(doc.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(doc.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(doc.Experience)))
		for i, exp := range doc.Experience {
			if i >= maxItemsToShow {
				sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
				break
			}
			line := fmt.Sprintf("  • %s @ %s", exp.Position, exp.Company)
			if dates := formatting.FormatDateRange(exp.StartDate, exp.EndDate, exp.Current); dates != "" {
				line += " (" + dates + ")"
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Education: %d  Projects: %d  Certifications: %d\n",
		len(doc.Education), len(doc.Projects), len(doc.Certifications)))

	p.printBox("RESUME DOCUMENT", sb.String())
}

// PrintStatus outputs a one-line status message
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStatus(format string, args ...any) {
	fmt.Fprintf(p.out, "✓ "+format+"\n", args...)
}
