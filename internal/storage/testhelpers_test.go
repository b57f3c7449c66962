package storage

import (
	"github.com/jonathan/resume-builder/internal/types"
)

func sampleDocument() *types.Document {
	doc := types.NewEmptyDocument()
	doc.Personal.FullName = "Alex Rivera"
	doc.Skills = []string{"Go", "SQL"}
	doc.Experience = []types.Experience{{ID: 1700000000001, Company: "Acme", Current: true}}
	doc.Meta = types.Meta{Template: types.TemplateModern, PageSize: types.PageSizeLetter, Profession: "backend"}
	return doc
}
