package rendering

import (
	"github.com/jonathan/resume-builder/internal/formatting"
	"github.com/jonathan/resume-builder/internal/types"
)

// Placeholders shown in place of empty required fields
const (
	PlaceholderName          = "Your Name"
	PlaceholderJobTitle      = "Your Job Title"
	PlaceholderPosition      = "Position Title"
	PlaceholderCompany       = "Company Name"
	PlaceholderSchool        = "School Name"
	PlaceholderDegree        = "Degree"
	PlaceholderProject       = "Project Name"
	PlaceholderCertification = "Certification Name"
	PlaceholderIssuer        = "Issuing Organization"
)

// View is the render tree derived from a document.
// Every string field is already HTML-escaped; templates print them verbatim.
type View struct {
	Template       string
	PageSize       string
	Header         Header
	Summary        string
	Skills         []string
	Experience     []Item
	Education      []Item
	Projects       []Item
	Certifications []CertificationItem
}

// Header is the name, title and contact line
type Header struct {
	Name     string
	Title    string
	Contacts []Contact
}

// Contact is one header contact channel
type Contact struct {
	Icon     string
	Label    string
	Href     string
	External bool
}

// Item is one experience, education or project entry
type Item struct {
	Title       string
	TitleHref   string
	Subtitle    string
	Location    string
	Dates       string
	Description formatting.Description
}

// CertificationItem is one certification entry
type CertificationItem struct {
	Name   string
	Href   string
	Issuer string
	Date   string
}

// BuildView derives the render tree for doc
func BuildView(doc *types.Document) *View {
	if doc == nil {
		doc = types.NewEmptyDocument()
	}

	v := &View{
		Template: formatting.EscapeText(string(doc.Meta.Template)),
		PageSize: formatting.EscapeText(string(doc.Meta.PageSize)),
		Header:   buildHeader(doc.Personal),
		Summary:  formatting.EscapeText(doc.Summary),
	}

	for _, skill := range doc.Skills {
		v.Skills = append(v.Skills, formatting.EscapeText(skill))
	}

	for _, exp := range doc.Experience {
		v.Experience = append(v.Experience, Item{
			Title:       orPlaceholder(exp.Position, PlaceholderPosition),
			Subtitle:    orPlaceholder(exp.Company, PlaceholderCompany),
			Location:    formatting.EscapeText(exp.Location),
			Dates:       formatting.EscapeText(formatting.FormatDateRange(exp.StartDate, exp.EndDate, exp.Current)),
			Description: formatting.FormatDescription(exp.Description),
		})
	}

	for _, edu := range doc.Education {
		degree := formatting.EscapeText(edu.Degree)
		if edu.Field != "" {
			degree += " in " + formatting.EscapeText(edu.Field)
		}
		if degree == "" {
			degree = PlaceholderDegree
		}
		v.Education = append(v.Education, Item{
			Title:       orPlaceholder(edu.School, PlaceholderSchool),
			Subtitle:    degree,
			Location:    formatting.EscapeText(edu.Location),
			Dates:       formatting.EscapeText(formatting.FormatDateRange(edu.StartDate, edu.EndDate, false)),
			Description: formatting.FormatDescription(edu.Description),
		})
	}

	for _, proj := range doc.Projects {
		v.Projects = append(v.Projects, Item{
			Title:       orPlaceholder(proj.Name, PlaceholderProject),
			TitleHref:   formatting.SafeHref(proj.URL),
			Subtitle:    formatting.EscapeText(proj.Technologies),
			Description: formatting.FormatDescription(proj.Description),
		})
	}

	for _, cert := range doc.Certifications {
		v.Certifications = append(v.Certifications, CertificationItem{
			Name:   orPlaceholder(cert.Name, PlaceholderCertification),
			Href:   formatting.SafeHref(cert.URL),
			Issuer: orPlaceholder(cert.Issuer, PlaceholderIssuer),
			Date:   formatting.EscapeText(formatting.FormatMonthYear(cert.Date)),
		})
	}

	return v
}

// buildHeader lists contact channels in fixed order: email, phone, location,
// website, linkedin, github. Empty channels are omitted.
func buildHeader(p types.Personal) Header {
	h := Header{
		Name:  orPlaceholder(p.FullName, PlaceholderName),
		Title: orPlaceholder(p.JobTitle, PlaceholderJobTitle),
	}

	if p.Email != "" {
		h.Contacts = append(h.Contacts, Contact{
			Icon:  "✉",
			Label: formatting.EscapeText(p.Email),
			Href:  formatting.SafeHref("mailto:" + p.Email),
		})
	}
	if p.Phone != "" {
		h.Contacts = append(h.Contacts, Contact{Icon: "📞", Label: formatting.EscapeText(p.Phone)})
	}
	if p.Location != "" {
		h.Contacts = append(h.Contacts, Contact{Icon: "📍", Label: formatting.EscapeText(p.Location)})
	}
	if p.Website != "" {
		h.Contacts = append(h.Contacts, Contact{
			Icon:     "🌐",
			Label:    formatting.EscapeText(formatting.FormatURL(p.Website)),
			Href:     formatting.SafeHref(p.Website),
			External: true,
		})
	}
	if p.LinkedIn != "" {
		h.Contacts = append(h.Contacts, Contact{
			Icon:     "💼",
			Label:    "LinkedIn",
			Href:     formatting.SafeHref(p.LinkedIn),
			External: true,
		})
	}
	if p.GitHub != "" {
		h.Contacts = append(h.Contacts, Contact{
			Icon:     "💻",
			Label:    "GitHub",
			Href:     formatting.SafeHref(p.GitHub),
			External: true,
		})
	}
	return h
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return formatting.EscapeText(value)
}
