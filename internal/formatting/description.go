package formatting

import (
	"regexp"
	"strings"
)

// bulletMarker matches a leading bullet marker and the whitespace after it
var bulletMarker = regexp.MustCompile(`^[•\-*]\s*`)

// Description is a free-text block split into display lines.
// Lines are already escaped.
type Description struct {
	Bullets bool
	Lines   []string
}

// FormatDescription splits text into non-blank lines. When any line starts
// with •, - or * the whole block is a bullet list and every line loses its
// marker; otherwise the lines are kept as plain text.
func FormatDescription(text string) Description {
	if text == "" {
		return Description{}
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	if !hasBullets(lines) {
		escaped := make([]string, len(lines))
		for i, line := range lines {
			escaped[i] = EscapeText(line)
		}
		return Description{Lines: escaped}
	}

	items := make([]string, 0, len(lines))
	for _, line := range lines {
		item := bulletMarker.ReplaceAllString(strings.TrimSpace(line), "")
		if item == "" {
			continue
		}
		items = append(items, EscapeText(item))
	}
	return Description{Bullets: true, Lines: items}
}

func hasBullets(lines []string) bool {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") {
			return true
		}
	}
	return false
}

// IsEmpty reports whether there is nothing to display
func (d Description) IsEmpty() bool {
	return len(d.Lines) == 0
}

// HTML renders the block as a <ul> list or as lines joined with <br>
func (d Description) HTML() string {
	if d.IsEmpty() {
		return ""
	}
	if !d.Bullets {
		return strings.Join(d.Lines, "<br>")
	}

	var sb strings.Builder
	sb.WriteString("<ul>")
	for _, item := range d.Lines {
		sb.WriteString("<li>")
		sb.WriteString(item)
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul>")
	return sb.String()
}
