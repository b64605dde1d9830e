package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioDoc = `
name: patrol
templates:
  - kind: sinbad
    type: 1
    file: templates/sinbad.yaml
  - kind: footprint
    type: 2
    file: templates/footprint.yaml
entities:
  - kind: sinbad
    position: [0, 0, 0]
    rotation: [0, 0, 90]
    label: leader
    velocity: [1, 0, 0]
    spin: 15
  - kind: sinbad
    position: [5, 5, 0]
    scale: [2, 2, 2]
`

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(strings.NewReader(scenarioDoc))
	require.NoError(t, err)

	assert.Equal(t, "patrol", s.Name)
	require.Len(t, s.Templates, 2)
	assert.Equal(t, TemplateRef{Kind: "sinbad", Type: 1, File: "templates/sinbad.yaml"}, s.Templates[0])

	require.Len(t, s.Entities, 2)
	assert.Equal(t, []float64{0, 0, 90}, s.Entities[0].Rotation)
	assert.Equal(t, "leader", s.Entities[0].Label)
	assert.Equal(t, 15.0, s.Entities[0].Spin)
	assert.Equal(t, []float64{2, 2, 2}, s.Entities[1].Scale)
}

func TestLoadScenario_Validation(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "template without kind",
			doc: `
templates:
  - file: a.yaml
`,
			want: "kind is required",
		},
		{
			name: "template without file",
			doc: `
templates:
  - kind: sinbad
`,
			want: "file is required",
		},
		{
			name: "entity of unregistered kind",
			doc: `
templates:
  - kind: sinbad
    file: a.yaml
entities:
  - kind: ghost
`,
			want: `unknown kind "ghost"`,
		},
		{
			name: "not yaml",
			doc:  "{{{",
			want: "decode scenario",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScenario(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
