package transfer

import (
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

// Filename returns resume_<full name or "export">_<YYYY-MM-DD>.json with every
// character outside [A-Za-z0-9_.-] replaced by "_", lower-cased
func Filename(doc *types.Document, now time.Time) string {
	name := "export"
	if doc != nil && doc.Personal.FullName != "" {
		name = doc.Personal.FullName
	}
	raw := "resume_" + name + "_" + now.UTC().Format("2006-01-02") + ".json"

	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '_', r == '.', r == '-':
			return r
		}
		return '_'
	}, raw)
	return strings.ToLower(sanitized)
}

// Export returns the document as two-space indented JSON
func Export(doc *types.Document) ([]byte, error) {
	return types.MarshalDocumentIndent(doc)
}
