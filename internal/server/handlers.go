package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/types"
)

// maxBodyBytes bounds JSON request bodies outside of import
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// PersonalRequest is the body of PATCH /document/personal
type PersonalRequest struct {
	Field string `json:"field" validate:"required,oneof=fullName jobTitle email phone location website linkedin github"`
	Value string `json:"value"`
}

// MetaRequest is the body of PATCH /document/meta
type MetaRequest struct {
	Field string `json:"field" validate:"required,oneof=template pageSize profession"`
	Value string `json:"value"`
}

// SummaryRequest is the body of PUT /document/summary
type SummaryRequest struct {
	Summary string `json:"summary"`
}

// SkillRequest is the body of POST /document/skills
type SkillRequest struct {
	Skill string `json:"skill" validate:"required"`
}

// decode reads the JSON body into dst
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// bind decodes the JSON body into dst and validates it
func (s *Server) bind(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := s.decode(w, r, dst); err != nil {
		return err
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("failed on '%s'", fe.Tag())}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// handleGetDocument returns the current document
func (s *Server) handleGetDocument(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.State())
}

// handleSetDocument merges a partial document. Invalid meta values keep
// their current value.
func (s *Server) handleSetDocument(w http.ResponseWriter, r *http.Request) {
	var partial types.Partial
	if err := s.decode(w, r, &partial); err != nil {
		s.errorFrom(w, err)
		return
	}
	s.store.SetState(partial)
	s.jsonResponse(w, http.StatusOK, s.store.State())
}

// handleResetDocument empties the document and clears saved data
func (s *Server) handleResetDocument(w http.ResponseWriter, r *http.Request) {
	s.store.ResetState()
	cleared := true
	if s.service != nil {
		cleared = s.service.Clear(r.Context())
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"document": s.store.State(),
		"cleared":  cleared,
	})
}

// handleUpdateSection replaces one top-level key
func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	section, err := types.ParseSection(r.PathValue("section"))
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	var raw json.RawMessage
	if err := s.decode(w, r, &raw); err != nil {
		s.errorFrom(w, err)
		return
	}
	value, err := sectionValue(section, raw)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	if err := s.store.UpdateSection(section, value); err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.State())
}

// handleUpdatePersonal sets one personal field
func (s *Server) handleUpdatePersonal(w http.ResponseWriter, r *http.Request) {
	var req PersonalRequest
	if err := s.bind(w, r, &req); err != nil {
		s.errorFrom(w, err)
		return
	}
	field, err := types.ParsePersonalField(req.Field)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	if err := s.store.UpdatePersonal(field, req.Value); err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.State().Personal)
}

// handleUpdateSummary sets the summary
func (s *Server) handleUpdateSummary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := s.bind(w, r, &req); err != nil {
		s.errorFrom(w, err)
		return
	}
	s.store.UpdateSummary(req.Summary)
	s.jsonResponse(w, http.StatusOK, req)
}

// handleUpdateMeta sets one meta field. Invalid template or page size values
// are ignored and the unchanged meta is returned.
func (s *Server) handleUpdateMeta(w http.ResponseWriter, r *http.Request) {
	var req MetaRequest
	if err := s.bind(w, r, &req); err != nil {
		s.errorFrom(w, err)
		return
	}
	field, err := types.ParseMetaField(req.Field)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	if err := s.store.UpdateMeta(field, req.Value); err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.State().Meta)
}

// handleAddSkill appends a skill
func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	var req SkillRequest
	if err := s.bind(w, r, &req); err != nil {
		s.errorFrom(w, err)
		return
	}
	status := http.StatusOK
	if s.store.AddSkill(req.Skill) {
		status = http.StatusCreated
	}
	s.jsonResponse(w, status, s.store.State().Skills)
}

// handleRemoveSkill removes a skill by exact match
func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	s.store.RemoveSkill(r.PathValue("skill"))
	s.jsonResponse(w, http.StatusOK, s.store.State().Skills)
}

// handleAddEntry appends an entry to a collection
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	collection := types.Section(r.PathValue("collection"))
	switch collection {
	case types.SectionExperience:
		var p types.ExperiencePatch
		if err := s.bind(w, r, &p); err != nil {
			s.errorFrom(w, err)
			return
		}
		s.jsonResponse(w, http.StatusCreated, s.store.AddExperience(p))
	case types.SectionEducation:
		var p types.EducationPatch
		if err := s.bind(w, r, &p); err != nil {
			s.errorFrom(w, err)
			return
		}
		s.jsonResponse(w, http.StatusCreated, s.store.AddEducation(p))
	case types.SectionProjects:
		var p types.ProjectPatch
		if err := s.bind(w, r, &p); err != nil {
			s.errorFrom(w, err)
			return
		}
		s.jsonResponse(w, http.StatusCreated, s.store.AddProject(p))
	case types.SectionCertifications:
		var p types.CertificationPatch
		if err := s.bind(w, r, &p); err != nil {
			s.errorFrom(w, err)
			return
		}
		s.jsonResponse(w, http.StatusCreated, s.store.AddCertification(p))
	default:
		s.errorResponse(w, http.StatusNotFound, "unknown collection: "+string(collection))
	}
}

// handleUpdateEntry merges a patch into one entry
func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	collection := types.Section(r.PathValue("collection"))
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.errorFrom(w, &ErrValidation{Field: "id", Message: "must be an integer"})
		return
	}

	var found bool
	switch collection {
	case types.SectionExperience:
		var p types.ExperiencePatch
		if err := s.bind(w, r, &p); err != nil {
			s.errorFrom(w, err)
			return
		}
		found = s.store.UpdateExperience(id, p)
	case types.SectionEducation:
		var p types.EducationPatch
		if err := s.bind(w, r, &p); err != nil {
			s.errorFrom(w, err)
			return
		}
		found = s.store.UpdateEducation(id, p)
	case types.SectionProjects:
		var p types.ProjectPatch
		if err := s.bind(w, r, &p); err != nil {
			s.errorFrom(w, err)
			return
		}
		found = s.store.UpdateProject(id, p)
	case types.SectionCertifications:
		var p types.CertificationPatch
		if err := s.bind(w, r, &p); err != nil {
			s.errorFrom(w, err)
			return
		}
		found = s.store.UpdateCertification(id, p)
	default:
		s.errorResponse(w, http.StatusNotFound, "unknown collection: "+string(collection))
		return
	}

	if !found {
		s.errorFrom(w, fmt.Errorf("%w: %s %d", ErrEntryNotFound, collection, id))
		return
	}
	s.jsonResponse(w, http.StatusOK, s.store.State())
}

// handleRemoveEntry deletes one entry
func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	collection := types.Section(r.PathValue("collection"))
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.errorFrom(w, &ErrValidation{Field: "id", Message: "must be an integer"})
		return
	}

	var found bool
	switch collection {
	case types.SectionExperience:
		found = s.store.RemoveExperience(id)
	case types.SectionEducation:
		found = s.store.RemoveEducation(id)
	case types.SectionProjects:
		found = s.store.RemoveProject(id)
	case types.SectionCertifications:
		found = s.store.RemoveCertification(id)
	default:
		s.errorResponse(w, http.StatusNotFound, "unknown collection: "+string(collection))
		return
	}

	if !found {
		s.errorFrom(w, fmt.Errorf("%w: %s %d", ErrEntryNotFound, collection, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// sectionValue decodes raw into the Go type UpdateSection expects for section
func sectionValue(section types.Section, raw json.RawMessage) (any, error) {
	switch section {
	case types.SectionPersonal:
		return decodeAs[types.Personal](section, raw)
	case types.SectionSummary:
		return decodeAs[string](section, raw)
	case types.SectionSkills:
		return decodeAs[[]string](section, raw)
	case types.SectionExperience:
		return decodeAs[[]types.Experience](section, raw)
	case types.SectionEducation:
		return decodeAs[[]types.Education](section, raw)
	case types.SectionProjects:
		return decodeAs[[]types.Project](section, raw)
	case types.SectionCertifications:
		return decodeAs[[]types.Certification](section, raw)
	case types.SectionMeta:
		return decodeAs[types.Meta](section, raw)
	}
	return nil, fmt.Errorf("%w: %s", types.ErrUnknownSection, section)
}

func decodeAs[T any](section types.Section, raw json.RawMessage) (any, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &ErrValidation{Field: string(section), Message: err.Error()}
	}
	return v, nil
}
