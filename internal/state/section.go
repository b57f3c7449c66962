package state

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// ErrSectionType is returned when UpdateSection receives a value whose Go
// type does not match the section
var ErrSectionType = errors.New("value type does not match section")

func sectionPartial(section types.Section, value any) (types.Partial, error) {
	var p types.Partial
	mismatch := func() (types.Partial, error) {
		return types.Partial{}, fmt.Errorf("%w: %s cannot hold %T", ErrSectionType, section, value)
	}

	switch section {
	case types.SectionPersonal:
		switch v := value.(type) {
		case types.Personal:
			p.Personal = &v
		case *types.Personal:
			if v == nil {
				return mismatch()
			}
			c := *v
			p.Personal = &c
		default:
			return mismatch()
		}
	case types.SectionSummary:
		v, ok := value.(string)
		if !ok {
			return mismatch()
		}
		p.Summary = &v
	case types.SectionSkills:
		v, ok := value.([]string)
		if !ok {
			return mismatch()
		}
		p.Skills = &v
	case types.SectionExperience:
		v, ok := value.([]types.Experience)
		if !ok {
			return mismatch()
		}
		p.Experience = &v
	case types.SectionEducation:
		v, ok := value.([]types.Education)
		if !ok {
			return mismatch()
		}
		p.Education = &v
	case types.SectionProjects:
		v, ok := value.([]types.Project)
		if !ok {
			return mismatch()
		}
		p.Projects = &v
	case types.SectionCertifications:
		v, ok := value.([]types.Certification)
		if !ok {
			return mismatch()
		}
		p.Certifications = &v
	case types.SectionMeta:
		switch v := value.(type) {
		case types.Meta:
			p.Meta = &v
		case *types.Meta:
			if v == nil {
				return mismatch()
			}
			c := *v
			p.Meta = &c
		default:
			return mismatch()
		}
	default:
		return types.Partial{}, fmt.Errorf("%w: %s", types.ErrUnknownSection, section)
	}
	return p, nil
}
