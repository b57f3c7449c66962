package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmptyDocument_Shape(t *testing.T) {
	doc := NewEmptyDocument()

	assert.Equal(t, Personal{}, doc.Personal)
	assert.Equal(t, "", doc.Summary)
	assert.NotNil(t, doc.Skills)
	assert.Empty(t, doc.Skills)
	assert.NotNil(t, doc.Experience)
	assert.NotNil(t, doc.Education)
	assert.NotNil(t, doc.Projects)
	assert.NotNil(t, doc.Certifications)
	assert.Equal(t, Meta{Template: TemplateMinimal, PageSize: PageSizeA4}, doc.Meta)
}

func TestNewEmptyDocument_SerializesEveryKey(t *testing.T) {
	data, err := json.Marshal(NewEmptyDocument())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"personal", "summary", "skills", "experience", "education", "projects", "certifications", "meta"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, []any{}, raw["skills"])
}

func TestClone_IsDeep(t *testing.T) {
	doc := NewEmptyDocument()
	doc.Skills = []string{"Go"}
	doc.Experience = []Experience{{ID: 1, Company: "Acme"}}

	clone := doc.Clone()
	clone.Skills[0] = "Rust"
	clone.Experience[0].Company = "Other"
	clone.Personal.FullName = "Changed"

	assert.Equal(t, "Go", doc.Skills[0])
	assert.Equal(t, "Acme", doc.Experience[0].Company)
	assert.Equal(t, "", doc.Personal.FullName)
}

func TestClone_Nil(t *testing.T) {
	var doc *Document
	assert.Nil(t, doc.Clone())
}

func TestNormalize_FillsNilCollections(t *testing.T) {
	doc := &Document{}
	doc.Normalize()

	assert.NotNil(t, doc.Skills)
	assert.NotNil(t, doc.Experience)
	assert.NotNil(t, doc.Education)
	assert.NotNil(t, doc.Projects)
	assert.NotNil(t, doc.Certifications)
	assert.Equal(t, DefaultMeta(), doc.Meta)
}

func TestNormalize_ReplacesInvalidMeta(t *testing.T) {
	doc := NewEmptyDocument()
	doc.Meta = Meta{Template: "fancy", PageSize: "legal", Profession: "backend"}
	doc.Normalize()

	assert.Equal(t, TemplateMinimal, doc.Meta.Template)
	assert.Equal(t, PageSizeA4, doc.Meta.PageSize)
	assert.Equal(t, "backend", doc.Meta.Profession)
}

func TestNormalize_DedupesSkills(t *testing.T) {
	doc := NewEmptyDocument()
	doc.Skills = []string{"Go", "go", "Go", "SQL"}
	doc.Normalize()

	assert.Equal(t, []string{"Go", "go", "SQL"}, doc.Skills)
}

func TestMaxID(t *testing.T) {
	doc := NewEmptyDocument()
	assert.Equal(t, int64(0), doc.MaxID())

	doc.Experience = []Experience{{ID: 5}}
	doc.Education = []Education{{ID: 9}}
	doc.Projects = []Project{{ID: 2}}
	doc.Certifications = []Certification{{ID: 7}}
	assert.Equal(t, int64(9), doc.MaxID())
}

func TestHasUserData(t *testing.T) {
	assert.False(t, HasUserData(nil))
	assert.False(t, HasUserData(NewEmptyDocument()))

	doc := NewEmptyDocument()
	doc.Skills = []string{"Go"}
	doc.Summary = "text"
	assert.False(t, HasUserData(doc))

	doc = NewEmptyDocument()
	doc.Personal.FullName = "Alex"
	assert.True(t, HasUserData(doc))

	doc = NewEmptyDocument()
	doc.Experience = []Experience{{ID: 1}}
	assert.True(t, HasUserData(doc))

	doc = NewEmptyDocument()
	doc.Education = []Education{{ID: 1}}
	assert.True(t, HasUserData(doc))
}

func TestContainsSkill_CaseSensitive(t *testing.T) {
	skills := []string{"Go"}
	assert.True(t, ContainsSkill(skills, "Go"))
	assert.False(t, ContainsSkill(skills, "go"))
}
