package presets

import (
	"errors"

	"github.com/jonathan/resume-builder/internal/state"
	"github.com/jonathan/resume-builder/internal/types"
)

// ErrNotConfirmed is returned when applying a preset would overwrite user
// data and the caller did not confirm
var ErrNotConfirmed = errors.New("preset would overwrite existing resume data")

// Confirmer decides whether a preset may overwrite the current document
type Confirmer func(p *Preset) bool

// Always approves every preset
func Always(*Preset) bool { return true }

// Never rejects every preset
func Never(*Preset) bool { return false }

// Result describes what Apply did
type Result struct {
	// Replaced is true when the whole document was replaced by sample data
	Replaced bool
	// JobTitlePlaceholder is the preset title when the job title is empty
	JobTitlePlaceholder string
	// SummaryPlaceholder is the preset summary hint when the summary is empty
	SummaryPlaceholder string
}

// Apply loads p into store. When the document already holds user data,
// confirm must approve or ErrNotConfirmed is returned and nothing changes.
// The user data check and the write happen in a single store mutation.
//
// A preset with sample data replaces the whole document. Otherwise its skills,
// default template and key are merged into the current document.
func Apply(store *state.Store, p *Preset, confirm Confirmer) (Result, error) {
	if res, ok := apply(store, p, false); ok {
		return res, nil
	}
	if confirm == nil || !confirm(p) {
		return Result{}, ErrNotConfirmed
	}
	res, _ := apply(store, p, true)
	return res, nil
}

// apply writes p into the document unless it holds user data and overwrite
// is false. It reports whether the document was written.
func apply(store *state.Store, p *Preset, overwrite bool) (Result, bool) {
	template := p.DefaultTemplate
	if template == "" {
		template = types.TemplateMinimal
	}
	skills := append([]string{}, p.Skills...)

	var res Result
	ok := store.Mutate("apply_preset", func(doc *types.Document) bool {
		if !overwrite && types.HasUserData(doc) {
			return false
		}
		if p.SampleData != nil {
			sample := p.SampleData.Clone()
			sample.Normalize()
			sample.Skills = skills
			sample.Meta = types.Meta{
				Template:   template,
				PageSize:   types.PageSizeA4,
				Profession: p.Key,
			}
			*doc = *sample
			res.Replaced = true
			return true
		}

		doc.Skills = skills
		doc.Meta.Template = template
		doc.Meta.Profession = p.Key
		if doc.Personal.JobTitle == "" {
			res.JobTitlePlaceholder = p.Title
		}
		if doc.Summary == "" {
			res.SummaryPlaceholder = p.SummaryPlaceholder
		}
		return true
	})
	return res, ok
}
