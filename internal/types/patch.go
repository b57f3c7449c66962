package types

// Patches carry only the fields a caller wants to change. A nil pointer means
// "keep the current value". Entry ids are never patchable.

// ExperiencePatch is a partial Experience
type ExperiencePatch struct {
	Company     *string `json:"company,omitempty"`
	Position    *string `json:"position,omitempty"`
	Location    *string `json:"location,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Current     *bool   `json:"current,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply copies the present fields onto e
func (p ExperiencePatch) Apply(e *Experience) {
	setString(&e.Company, p.Company)
	setString(&e.Position, p.Position)
	setString(&e.Location, p.Location)
	setString(&e.StartDate, p.StartDate)
	setString(&e.EndDate, p.EndDate)
	if p.Current != nil {
		e.Current = *p.Current
	}
	setString(&e.Description, p.Description)
}

// EducationPatch is a partial Education
type EducationPatch struct {
	School      *string `json:"school,omitempty"`
	Degree      *string `json:"degree,omitempty"`
	Field       *string `json:"field,omitempty"`
	Location    *string `json:"location,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Apply copies the present fields onto e
func (p EducationPatch) Apply(e *Education) {
	setString(&e.School, p.School)
	setString(&e.Degree, p.Degree)
	setString(&e.Field, p.Field)
	setString(&e.Location, p.Location)
	setString(&e.StartDate, p.StartDate)
	setString(&e.EndDate, p.EndDate)
	setString(&e.Description, p.Description)
}

// ProjectPatch is a partial Project
type ProjectPatch struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	URL          *string `json:"url,omitempty"`
	Technologies *string `json:"technologies,omitempty"`
}

// Apply copies the present fields onto pr
func (p ProjectPatch) Apply(pr *Project) {
	setString(&pr.Name, p.Name)
	setString(&pr.Description, p.Description)
	setString(&pr.URL, p.URL)
	setString(&pr.Technologies, p.Technologies)
}

// CertificationPatch is a partial Certification
type CertificationPatch struct {
	Name   *string `json:"name,omitempty"`
	Issuer *string `json:"issuer,omitempty"`
	Date   *string `json:"date,omitempty"`
	URL    *string `json:"url,omitempty"`
}

// Apply copies the present fields onto c
func (p CertificationPatch) Apply(c *Certification) {
	setString(&c.Name, p.Name)
	setString(&c.Issuer, p.Issuer)
	setString(&c.Date, p.Date)
	setString(&c.URL, p.URL)
}

// Partial is a top-level shallow merge into a Document.
// Each non-nil key replaces the corresponding key of the document wholesale.
type Partial struct {
	Personal       *Personal        `json:"personal,omitempty"`
	Summary        *string          `json:"summary,omitempty"`
	Skills         *[]string        `json:"skills,omitempty"`
	Experience     *[]Experience    `json:"experience,omitempty"`
	Education      *[]Education     `json:"education,omitempty"`
	Projects       *[]Project       `json:"projects,omitempty"`
	Certifications *[]Certification `json:"certifications,omitempty"`
	Meta           *Meta            `json:"meta,omitempty"`
}

// FullPartial returns a Partial that replaces every key with the values of d
func FullPartial(d *Document) Partial {
	c := d.Clone()
	return Partial{
		Personal:       &c.Personal,
		Summary:        &c.Summary,
		Skills:         &c.Skills,
		Experience:     &c.Experience,
		Education:      &c.Education,
		Projects:       &c.Projects,
		Certifications: &c.Certifications,
		Meta:           &c.Meta,
	}
}

// ApplyTo merges the present keys into d. Invalid meta values keep the value
// d already had; nil collections become empty.
func (p Partial) ApplyTo(d *Document) {
	if p.Personal != nil {
		d.Personal = *p.Personal
	}
	if p.Summary != nil {
		d.Summary = *p.Summary
	}
	if p.Skills != nil {
		d.Skills = append([]string{}, (*p.Skills)...)
	}
	if p.Experience != nil {
		d.Experience = append([]Experience{}, (*p.Experience)...)
	}
	if p.Education != nil {
		d.Education = append([]Education{}, (*p.Education)...)
	}
	if p.Projects != nil {
		d.Projects = append([]Project{}, (*p.Projects)...)
	}
	if p.Certifications != nil {
		d.Certifications = append([]Certification{}, (*p.Certifications)...)
	}
	if p.Meta != nil {
		d.Meta = p.Meta.MergeValid(d.Meta)
	}
	d.Skills = dedupeSkills(d.Skills)
}

// StringPtr returns a pointer to s, for building patches
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to b, for building patches
func BoolPtr(b bool) *bool {
	return &b
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
