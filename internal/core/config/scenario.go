package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario describes a headless run: which visual templates to register and
// which entities to spawn and move.
type Scenario struct {
	Name      string           `yaml:"name"`
	Templates []TemplateRef    `yaml:"templates"`
	Entities  []ScenarioEntity `yaml:"entities"`
}

// TemplateRef binds an entity kind to a template property file.
type TemplateRef struct {
	Kind string `yaml:"kind"`
	Type uint32 `yaml:"type"`
	File string `yaml:"file"`
}

// ScenarioEntity is one entity to spawn. Velocity and Spin, when set, move
// the entity every tick so the synchronization paths have work to do.
type ScenarioEntity struct {
	Kind     string    `yaml:"kind"`
	Position []float64 `yaml:"position"`
	Rotation []float64 `yaml:"rotation"`
	Scale    []float64 `yaml:"scale"`
	Label    string    `yaml:"label"`
	Velocity []float64 `yaml:"velocity"`
	Spin     float64   `yaml:"spin"`
}

// LoadScenario decodes a scenario document.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// OpenScenario loads a scenario from a file.
func OpenScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadScenario(f)
}

func (s *Scenario) validate() error {
	kinds := make(map[string]struct{}, len(s.Templates))
	for i, t := range s.Templates {
		if t.Kind == "" {
			return fmt.Errorf("template %d: kind is required", i)
		}
		if t.File == "" {
			return fmt.Errorf("template %q: file is required", t.Kind)
		}
		kinds[t.Kind] = struct{}{}
	}
	for i, e := range s.Entities {
		if e.Kind == "" {
			return fmt.Errorf("entity %d: kind is required", i)
		}
		if _, ok := kinds[e.Kind]; !ok {
			return fmt.Errorf("entity %d: unknown kind %q", i, e.Kind)
		}
	}
	return nil
}
