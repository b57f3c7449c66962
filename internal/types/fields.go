package types

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrUnknownField is returned for a personal or meta field name outside the fixed set
	ErrUnknownField = errors.New("unknown field")
	// ErrUnknownSection is returned for a top-level key that is not part of the document
	ErrUnknownSection = errors.New("unknown section")
)

var validate = validator.New()

// PersonalField names one field of Personal
type PersonalField string

// Personal fields in header contact order
const (
	FieldFullName PersonalField = "fullName"
	FieldJobTitle PersonalField = "jobTitle"
	FieldEmail    PersonalField = "email"
	FieldPhone    PersonalField = "phone"
	FieldLocation PersonalField = "location"
	FieldWebsite  PersonalField = "website"
	FieldLinkedIn PersonalField = "linkedin"
	FieldGitHub   PersonalField = "github"
)

// PersonalFields lists every personal field
var PersonalFields = []PersonalField{
	FieldFullName, FieldJobTitle, FieldEmail, FieldPhone,
	FieldLocation, FieldWebsite, FieldLinkedIn, FieldGitHub,
}

// ParsePersonalField converts a field name into a PersonalField
func ParsePersonalField(name string) (PersonalField, error) {
	for _, f := range PersonalFields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: personal.%s", ErrUnknownField, name)
}

// Set assigns value to the named field
func (p *Personal) Set(field PersonalField, value string) error {
	switch field {
	case FieldFullName:
		p.FullName = value
	case FieldJobTitle:
		p.JobTitle = value
	case FieldEmail:
		p.Email = value
	case FieldPhone:
		p.Phone = value
	case FieldLocation:
		p.Location = value
	case FieldWebsite:
		p.Website = value
	case FieldLinkedIn:
		p.LinkedIn = value
	case FieldGitHub:
		p.GitHub = value
	default:
		return fmt.Errorf("%w: personal.%s", ErrUnknownField, field)
	}
	return nil
}

// Get returns the value of the named field
func (p Personal) Get(field PersonalField) string {
	switch field {
	case FieldFullName:
		return p.FullName
	case FieldJobTitle:
		return p.JobTitle
	case FieldEmail:
		return p.Email
	case FieldPhone:
		return p.Phone
	case FieldLocation:
		return p.Location
	case FieldWebsite:
		return p.Website
	case FieldLinkedIn:
		return p.LinkedIn
	case FieldGitHub:
		return p.GitHub
	}
	return ""
}

// MetaField names one field of Meta
type MetaField string

// Meta fields
const (
	MetaTemplate   MetaField = "template"
	MetaPageSize   MetaField = "pageSize"
	MetaProfession MetaField = "profession"
)

// ParseMetaField converts a field name into a MetaField
func ParseMetaField(name string) (MetaField, error) {
	switch MetaField(name) {
	case MetaTemplate, MetaPageSize, MetaProfession:
		return MetaField(name), nil
	}
	return "", fmt.Errorf("%w: meta.%s", ErrUnknownField, name)
}

// With returns a copy of m with field set to value.
// The copy is not validated; call Validate on the result.
func (m Meta) With(field MetaField, value string) (Meta, error) {
	switch field {
	case MetaTemplate:
		m.Template = Template(value)
	case MetaPageSize:
		m.PageSize = PageSize(value)
	case MetaProfession:
		m.Profession = value
	default:
		return m, fmt.Errorf("%w: meta.%s", ErrUnknownField, field)
	}
	return m, nil
}

// Validate checks template and page size against the accepted values
func (m Meta) Validate() error {
	return validate.Struct(m)
}

// MergeValid returns m with every invalid field replaced by the value from prior
func (m Meta) MergeValid(prior Meta) Meta {
	if !ValidTemplate(m.Template) {
		m.Template = prior.Template
	}
	if !ValidPageSize(m.PageSize) {
		m.PageSize = prior.PageSize
	}
	return m
}

// ValidTemplate reports whether t is an accepted template
func ValidTemplate(t Template) bool {
	return validate.Var(string(t), "oneof=minimal modern classic") == nil
}

// ValidPageSize reports whether p is an accepted page size
func ValidPageSize(p PageSize) bool {
	return validate.Var(string(p), "oneof=a4 letter") == nil
}

// Section names a top-level key of the document
type Section string

// Document sections
const (
	SectionPersonal       Section = "personal"
	SectionSummary        Section = "summary"
	SectionSkills         Section = "skills"
	SectionExperience     Section = "experience"
	SectionEducation      Section = "education"
	SectionProjects       Section = "projects"
	SectionCertifications Section = "certifications"
	SectionMeta           Section = "meta"
)

// Sections lists every document section in render order
var Sections = []Section{
	SectionPersonal, SectionSummary, SectionSkills, SectionExperience,
	SectionEducation, SectionProjects, SectionCertifications, SectionMeta,
}

// ParseSection converts a key into a Section
func ParseSection(name string) (Section, error) {
	for _, s := range Sections {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownSection, name)
}

// IsCollection reports whether the section holds repeatable entries
func (s Section) IsCollection() bool {
	switch s {
	case SectionExperience, SectionEducation, SectionProjects, SectionCertifications:
		return true
	}
	return false
}
