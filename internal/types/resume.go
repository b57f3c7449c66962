// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Template identifies one of the visual resume templates
type Template string

// Template values accepted in Meta.Template
const (
	TemplateMinimal Template = "minimal"
	TemplateModern  Template = "modern"
	TemplateClassic Template = "classic"
)

// Templates lists every accepted template in display order
var Templates = []Template{TemplateMinimal, TemplateModern, TemplateClassic}

// PageSize identifies the printed paper size
type PageSize string

// PageSize values accepted in Meta.PageSize
const (
	PageSizeA4     PageSize = "a4"
	PageSizeLetter PageSize = "letter"
)

// PageSizes lists every accepted page size
var PageSizes = []PageSize{PageSizeA4, PageSizeLetter}

// Document is the complete resume being edited
type Document struct {
	Personal       Personal        `json:"personal"`
	Summary        string          `json:"summary"`
	Skills         []string        `json:"skills"`
	Experience     []Experience    `json:"experience"`
	Education      []Education     `json:"education"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
	Meta           Meta            `json:"meta"`
}

// Personal holds the fixed contact fields shown in the resume header
type Personal struct {
	FullName string `json:"fullName"`
	JobTitle string `json:"jobTitle"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// Experience is one work history entry.
// StartDate and EndDate use the "YYYY-MM" format or are empty.
type Experience struct {
	ID          int64  `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education is one school entry
type Education struct {
	ID          int64  `json:"id"`
	School      string `json:"school"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Project is one portfolio entry
type Project struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	Technologies string `json:"technologies"`
}

// Certification is one credential entry
type Certification struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url"`
}

// Meta holds presentation settings for the document
type Meta struct {
	Template   Template `json:"template" validate:"oneof=minimal modern classic"`
	PageSize   PageSize `json:"pageSize" validate:"oneof=a4 letter"`
	Profession string   `json:"profession"`
}

// DefaultMeta returns the meta values of a fresh document
func DefaultMeta() Meta {
	return Meta{
		Template:   TemplateMinimal,
		PageSize:   PageSizeA4,
		Profession: "",
	}
}

// NewEmptyDocument returns the canonical empty document.
// All collections are non-nil so the serialized form always carries every key.
func NewEmptyDocument() *Document {
	return &Document{
		Personal:       Personal{},
		Summary:        "",
		Skills:         []string{},
		Experience:     []Experience{},
		Education:      []Education{},
		Projects:       []Project{},
		Certifications: []Certification{},
		Meta:           DefaultMeta(),
	}
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.Skills = append(make([]string, 0, len(d.Skills)), d.Skills...)
	out.Experience = append(make([]Experience, 0, len(d.Experience)), d.Experience...)
	out.Education = append(make([]Education, 0, len(d.Education)), d.Education...)
	out.Projects = append(make([]Project, 0, len(d.Projects)), d.Projects...)
	out.Certifications = append(make([]Certification, 0, len(d.Certifications)), d.Certifications...)
	return &out
}

// Normalize fills nil collections and replaces invalid meta values with defaults
func (d *Document) Normalize() {
	if d.Skills == nil {
		d.Skills = []string{}
	}
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Certifications == nil {
		d.Certifications = []Certification{}
	}
	defaults := DefaultMeta()
	if !ValidTemplate(d.Meta.Template) {
		d.Meta.Template = defaults.Template
	}
	if !ValidPageSize(d.Meta.PageSize) {
		d.Meta.PageSize = defaults.PageSize
	}
	d.Skills = dedupeSkills(d.Skills)
}

// MaxID returns the largest entry id across all collections
func (d *Document) MaxID() int64 {
	var highest int64
	for _, e := range d.Experience {
		if e.ID > highest {
			highest = e.ID
		}
	}
	for _, e := range d.Education {
		if e.ID > highest {
			highest = e.ID
		}
	}
	for _, p := range d.Projects {
		if p.ID > highest {
			highest = p.ID
		}
	}
	for _, c := range d.Certifications {
		if c.ID > highest {
			highest = c.ID
		}
	}
	return highest
}

// HasUserData reports whether the document holds data a preset would overwrite
func HasUserData(d *Document) bool {
	if d == nil {
		return false
	}
	return d.Personal.FullName != "" || len(d.Experience) > 0 || len(d.Education) > 0
}

// ContainsSkill reports whether skill is present (exact, case-sensitive match)
func ContainsSkill(skills []string, skill string) bool {
	for _, s := range skills {
		if s == skill {
			return true
		}
	}
	return false
}

func dedupeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
