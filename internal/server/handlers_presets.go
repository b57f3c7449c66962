package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/presets"
	"github.com/jonathan/resume-builder/internal/types"
)

// PresetSummary is one entry of GET /presets
type PresetSummary struct {
	Key             string         `json:"key"`
	Title           string         `json:"title"`
	DefaultTemplate types.Template `json:"defaultTemplate"`
	Skills          []string       `json:"skills"`
	HasSampleData   bool           `json:"hasSampleData"`
}

// ApplyPresetResponse is the response of POST /presets/{key}
type ApplyPresetResponse struct {
	Replaced            bool            `json:"replaced"`
	JobTitlePlaceholder string          `json:"jobTitlePlaceholder,omitempty"`
	SummaryPlaceholder  string          `json:"summaryPlaceholder,omitempty"`
	Document            *types.Document `json:"document"`
}

// handleListPresets lists the preset catalog in order
func (s *Server) handleListPresets(w http.ResponseWriter, _ *http.Request) {
	out := []PresetSummary{}
	if s.catalog != nil {
		for _, key := range s.catalog.Keys() {
			p, ok := s.catalog.Get(key)
			if !ok {
				continue
			}
			out = append(out, PresetSummary{
				Key:             p.Key,
				Title:           p.Title,
				DefaultTemplate: p.DefaultTemplate,
				Skills:          p.Skills,
				HasSampleData:   p.SampleData != nil,
			})
		}
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// handleApplyPreset loads a preset. Overwriting existing data needs
// ?confirm=true; without it the request fails with 409.
func (s *Server) handleApplyPreset(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if s.catalog == nil {
		s.errorFrom(w, &ErrPresetNotFound{Key: key})
		return
	}
	p, ok := s.catalog.Get(key)
	if !ok {
		s.errorFrom(w, &ErrPresetNotFound{Key: key})
		return
	}

	confirm := presets.Never
	if ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm")); ok {
		confirm = presets.Always
	}

	res, err := presets.Apply(s.store, p, confirm)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ApplyPresetResponse{
		Replaced:            res.Replaced,
		JobTitlePlaceholder: res.JobTitlePlaceholder,
		SummaryPlaceholder:  res.SummaryPlaceholder,
		Document:            s.store.State(),
	})
}
