package presets

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jonathan/resume-builder/internal/state"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePreset(t *testing.T, key string) *Preset {
	t.Helper()
	catalog, err := Embedded()
	require.NoError(t, err)
	p, ok := catalog.Get(key)
	require.True(t, ok)
	return p
}

func TestApply_SampleDataReplacesDocument(t *testing.T) {
	store := state.New()
	store.AddCertification(types.CertificationPatch{Name: types.StringPtr("old cert")})
	p := samplePreset(t, "frontend")

	res, err := Apply(store, p, Never)
	require.NoError(t, err)
	assert.True(t, res.Replaced)

	doc := store.State()
	assert.Equal(t, p.SampleData.Personal, doc.Personal)
	assert.Equal(t, p.Skills, doc.Skills)
	assert.Empty(t, doc.Certifications)
	assert.Equal(t, types.Meta{Template: types.TemplateModern, PageSize: types.PageSizeA4, Profession: "frontend"}, doc.Meta)
}

func TestApply_NotifiesOnce(t *testing.T) {
	store := state.New()
	calls := 0
	store.Subscribe(func(*types.Document) { calls++ })

	_, err := Apply(store, samplePreset(t, "devops"), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestApply_RequiresConfirmationWithUserData(t *testing.T) {
	store := state.New()
	require.NoError(t, store.UpdatePersonal(types.FieldFullName, "Jordan"))
	before := store.State()

	_, err := Apply(store, samplePreset(t, "backend"), Never)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, before, store.State())

	_, err = Apply(store, samplePreset(t, "backend"), nil)
	assert.ErrorIs(t, err, ErrNotConfirmed)
}

func TestApply_ConfirmedOverwrite(t *testing.T) {
	store := state.New()
	store.AddExperience(types.ExperiencePatch{Company: types.StringPtr("Mine")})
	var asked *Preset

	_, err := Apply(store, samplePreset(t, "appsec"), func(p *Preset) bool {
		asked = p
		return true
	})
	require.NoError(t, err)
	require.NotNil(t, asked)
	assert.Equal(t, "appsec", asked.Key)
	assert.Equal(t, types.TemplateClassic, store.State().Meta.Template)
}

func TestApply_WithoutSampleDataMerges(t *testing.T) {
	store := state.New()
	store.UpdateSummary("my summary")
	require.NoError(t, store.UpdateMeta(types.MetaPageSize, "letter"))
	p := &Preset{
		Key:                "sre",
		Title:              "Site Reliability Engineer",
		DefaultTemplate:    types.TemplateClassic,
		Skills:             []string{"Go", "Kubernetes"},
		SummaryPlaceholder: "Keeps things up.",
	}

	res, err := Apply(store, p, Never)
	require.NoError(t, err)
	assert.False(t, res.Replaced)
	assert.Equal(t, "Site Reliability Engineer", res.JobTitlePlaceholder)
	assert.Equal(t, "", res.SummaryPlaceholder)

	doc := store.State()
	assert.Equal(t, "my summary", doc.Summary)
	assert.Equal(t, []string{"Go", "Kubernetes"}, doc.Skills)
	assert.Equal(t, types.Meta{Template: types.TemplateClassic, PageSize: types.PageSizeLetter, Profession: "sre"}, doc.Meta)
}

func TestApply_EmptyTemplateDefaultsToMinimal(t *testing.T) {
	store := state.New()
	require.NoError(t, store.UpdateMeta(types.MetaTemplate, "modern"))

	_, err := Apply(store, &Preset{Key: "x"}, nil)
	require.NoError(t, err)
	assert.Equal(t, types.TemplateMinimal, store.State().Meta.Template)
	assert.Equal(t, []string{}, store.State().Skills)
}

func TestApply_ConcurrentUnconfirmedAppliesOnce(t *testing.T) {
	store := state.New()
	p := samplePreset(t, "backend")
	require.True(t, types.HasUserData(p.SampleData))

	const workers = 16
	var wg sync.WaitGroup
	var applied atomic.Int32
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Apply(store, p, Never); err == nil {
				applied.Add(1)
			} else {
				assert.ErrorIs(t, err, ErrNotConfirmed)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), applied.Load())
}

func TestApply_ConfirmAskedOnlyForUserData(t *testing.T) {
	store := state.New()
	asked := 0
	refuse := func(*Preset) bool {
		asked++
		return false
	}

	_, err := Apply(store, samplePreset(t, "frontend"), refuse)
	require.NoError(t, err)
	assert.Equal(t, 0, asked)

	require.NoError(t, store.UpdatePersonal(types.FieldFullName, "Jordan"))
	_, err = Apply(store, samplePreset(t, "backend"), refuse)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, 1, asked)
	assert.Equal(t, "Jordan", store.State().Personal.FullName)
}
