// Package catalog is the library of standard risks offered when a new risk
// factor is added to an asset.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"risk-assessment/internal/risk"
)

//go:embed library.yaml
var libraryYAML []byte

// DefaultProbability is used when a standard risk is copied onto an asset.
const DefaultProbability = 3

type StandardRisk struct {
	ID                 string `yaml:"id" json:"id"`
	Category           string `yaml:"category" json:"category"`
	Name               string `yaml:"name" json:"name"`
	DefaultDescription string `yaml:"description" json:"defaultDescription"`
	SuggestedSeverity  int    `yaml:"suggested_severity" json:"suggestedSeverity"`
}

// Factor returns a new open risk factor prefilled from the standard risk.
func (s StandardRisk) Factor() risk.RiskFactor {
	return risk.RiskFactor{
		Name:        s.Name,
		Description: s.DefaultDescription,
		Category:    s.Category,
		Probability: DefaultProbability,
		Severity:    s.SuggestedSeverity,
		Status:      risk.StatusOpen,
	}
}

type Catalog struct {
	risks []StandardRisk
	byID  map[string]int
}

// Default parses the embedded library.
func Default() (*Catalog, error) {
	return Parse(libraryYAML)
}

func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Risks []StandardRisk `yaml:"risks"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse risk library: %w", err)
	}

	c := &Catalog{risks: doc.Risks, byID: make(map[string]int, len(doc.Risks))}
	for i, r := range doc.Risks {
		if r.ID == "" || r.Name == "" {
			return nil, fmt.Errorf("risk library entry %d: id and name are required", i)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("risk library: duplicate id %q", r.ID)
		}
		c.byID[r.ID] = i
	}
	return c, nil
}

func (c *Catalog) All() []StandardRisk {
	return append([]StandardRisk(nil), c.risks...)
}

func (c *Catalog) Get(id string) (StandardRisk, bool) {
	i, ok := c.byID[id]
	if !ok {
		return StandardRisk{}, false
	}
	return c.risks[i], true
}

// Categories returns the distinct categories, sorted.
func (c *Catalog) Categories() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range c.risks {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) ByCategory(category string) []StandardRisk {
	var out []StandardRisk
	for _, r := range c.risks {
		if strings.EqualFold(r.Category, category) {
			out = append(out, r)
		}
	}
	return out
}

// Search matches query against name and description, case-insensitively.
// An empty category matches every category.
func (c *Catalog) Search(category, query string) []StandardRisk {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []StandardRisk
	for _, r := range c.risks {
		if category != "" && !strings.EqualFold(r.Category, category) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Name), q) &&
			!strings.Contains(strings.ToLower(r.DefaultDescription), q) {
			continue
		}
		out = append(out, r)
	}
	return out
}
