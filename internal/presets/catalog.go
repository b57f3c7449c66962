// Package presets provides profession starter kits: skills, a default
// template and optional sample resume data.
package presets

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed data/professions.json
var embeddedProfessions []byte

// Preset is one profession starter kit
type Preset struct {
	Key                string          `json:"key"`
	Title              string          `json:"title"`
	DefaultTemplate    types.Template  `json:"defaultTemplate"`
	Sections           []types.Section `json:"sections"`
	Skills             []string        `json:"skills"`
	SummaryPlaceholder string          `json:"summaryPlaceholder"`
	SampleData         *types.Document `json:"sampleData,omitempty"`
}

// Catalog is a keyed source of presets
type Catalog interface {
	Get(key string) (*Preset, bool)
	Keys() []string
}

// StaticCatalog is an ordered, immutable Catalog
type StaticCatalog struct {
	order []string
	byKey map[string]*Preset
}

var _ Catalog = (*StaticCatalog)(nil)

// NewCatalog builds a catalog from presets, keeping their order.
// Keys must be unique and non-empty.
func NewCatalog(presets []Preset) (*StaticCatalog, error) {
	c := &StaticCatalog{byKey: make(map[string]*Preset, len(presets))}
	for i := range presets {
		p := presets[i]
		if p.Key == "" {
			return nil, fmt.Errorf("preset %d has no key", i)
		}
		if _, dup := c.byKey[p.Key]; dup {
			return nil, fmt.Errorf("duplicate preset key %q", p.Key)
		}
		if p.SampleData != nil {
			p.SampleData.Normalize()
		}
		c.byKey[p.Key] = &p
		c.order = append(c.order, p.Key)
	}
	return c, nil
}

// Get returns a copy of the preset with key
func (c *StaticCatalog) Get(key string) (*Preset, bool) {
	p, ok := c.byKey[key]
	if !ok {
		return nil, false
	}
	return p.clone(), true
}

// Keys returns every preset key in catalog order
func (c *StaticCatalog) Keys() []string {
	return append([]string(nil), c.order...)
}

// List returns every preset in catalog order
func (c *StaticCatalog) List() []Preset {
	out := make([]Preset, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, *c.byKey[key].clone())
	}
	return out
}

func (p *Preset) clone() *Preset {
	out := *p
	out.Sections = append([]types.Section(nil), p.Sections...)
	out.Skills = append([]string(nil), p.Skills...)
	out.SampleData = p.SampleData.Clone()
	return &out
}

// Embedded returns the built-in profession catalog
func Embedded() (*StaticCatalog, error) {
	return parseCatalog(embeddedProfessions, ".json")
}

// LoadFile reads a catalog from a JSON or YAML file
func LoadFile(path string) (*StaticCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file %s: %w", path, err)
	}
	catalog, err := parseCatalog(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("failed to load preset file %s: %w", path, err)
	}
	return catalog, nil
}

func parseCatalog(data []byte, ext string) (*StaticCatalog, error) {
	if ext == ".yaml" || ext == ".yml" {
		// Presets carry json tags only; re-encode YAML through JSON
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		converted, err := json.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("failed to convert YAML: %w", err)
		}
		data = converted
	}

	var presets []Preset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}
	return NewCatalog(presets)
}
