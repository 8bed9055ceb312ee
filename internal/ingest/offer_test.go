package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOffer_YAML(t *testing.T) {
	path := writeTemp(t, "offer.yaml", `
name: AI Outreach Automation
value_props:
  - 24/7 automated outreach
  - 6x more qualified meetings
ideal_use_cases:
  - B2B SaaS companies
`)

	offer, err := LoadOffer(path)

	require.NoError(t, err)
	assert.Equal(t, "AI Outreach Automation", offer.Name)
	assert.Len(t, offer.ValueProps, 2)
	assert.Equal(t, []string{"B2B SaaS companies"}, offer.IdealUseCases)
}

func TestLoadOffer_JSON(t *testing.T) {
	path := writeTemp(t, "offer.json", `{
		"name": "AI Outreach Automation",
		"value_props": ["automation"],
		"ideal_use_cases": ["software", "fintech"]
	}`)

	offer, err := LoadOffer(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"software", "fintech"}, offer.IdealUseCases)
}

func TestLoadOffer_InvalidOffer(t *testing.T) {
	path := writeTemp(t, "offer.yaml", "name: X\nvalue_props: []\nideal_use_cases: []\n")
	_, err := LoadOffer(path)
	assert.Error(t, err)
}

func TestLoadOffer_MalformedFile(t *testing.T) {
	path := writeTemp(t, "offer.json", "{not json")
	_, err := LoadOffer(path)
	assert.Error(t, err)
}

func TestLoadOffer_MissingFile(t *testing.T) {
	_, err := LoadOffer(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
