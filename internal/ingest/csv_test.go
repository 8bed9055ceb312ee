package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `name,role,company,industry,location,linkedin_bio
Ava Patel,Head of Growth,FlowMetrics,software,San Francisco,B2B SaaS growth leader
Joe Smith,Intern,Acme,agriculture,Iowa,Student
`

func TestParseLeadsCSV(t *testing.T) {
	leads, err := ParseLeadsCSV(strings.NewReader(sampleCSV))

	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "Ava Patel", leads[0].Name)
	assert.Equal(t, "Head of Growth", leads[0].Role)
	assert.Equal(t, "agriculture", leads[1].Industry)
}

func TestParseLeadsCSV_HeaderCaseInsensitive(t *testing.T) {
	csv := "Name,ROLE,Company\nAva,CEO,Acme\n"
	leads, err := ParseLeadsCSV(strings.NewReader(csv))

	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "CEO", leads[0].Role)
	assert.Empty(t, leads[0].Industry)
}

func TestParseLeadsCSV_SkipsInvalidRows(t *testing.T) {
	csv := "name,role,company\nAva,CEO,Acme\n,,\nBo,,Acme\nCy,CTO,Beta\n"
	leads, err := ParseLeadsCSV(strings.NewReader(csv))

	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "Ava", leads[0].Name)
	assert.Equal(t, "Cy", leads[1].Name)
}

func TestParseLeadsCSV_MissingRequiredColumn(t *testing.T) {
	csv := "name,industry\nAva,software\n"
	_, err := ParseLeadsCSV(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestParseLeadsCSV_NoDataRows(t *testing.T) {
	_, err := ParseLeadsCSV(strings.NewReader("name,role,company\n"))
	assert.Error(t, err)
}

func TestParseLeadsCSV_AllRowsInvalid(t *testing.T) {
	csv := "name,role,company\n,,\n,,\n"
	_, err := ParseLeadsCSV(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestParseLeadsCSV_CapsAtMaxLeads(t *testing.T) {
	var b strings.Builder
	b.WriteString("name,role,company\n")
	for i := 0; i < MaxLeads+50; i++ {
		fmt.Fprintf(&b, "Lead %d,CEO,Acme\n", i)
	}

	leads, err := ParseLeadsCSV(strings.NewReader(b.String()))

	require.NoError(t, err)
	assert.Len(t, leads, MaxLeads)
}

func TestParseLeadsCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	leads, err := ParseLeadsCSVFile(path)
	require.NoError(t, err)
	assert.Len(t, leads, 2)
}

func TestParseLeadsCSVFile_Missing(t *testing.T) {
	_, err := ParseLeadsCSVFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
