// Package ingest loads and validates leads and offers from external files.
package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadscore/internal/model"
)

// MaxLeads caps how many leads a single upload may contain.
const MaxLeads = 1000

// ParseLeadsCSV reads a lead CSV from r. The header row maps columns by
// name (case-insensitive); rows failing validation are skipped and logged
// rather than aborting the upload.
func ParseLeadsCSV(r io.Reader) ([]model.Lead, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read csv")
	}
	if len(records) < 2 {
		return nil, eris.New("ingest: csv has no data rows")
	}

	colIdx := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range []string{"name", "role", "company"} {
		if _, ok := colIdx[col]; !ok {
			return nil, eris.Errorf("ingest: missing required column %q", col)
		}
	}

	var leads []model.Lead
	for rowNum, row := range records[1:] {
		lead := model.Lead{
			Name:        getCol(row, colIdx, "name"),
			Role:        getCol(row, colIdx, "role"),
			Company:     getCol(row, colIdx, "company"),
			Industry:    getCol(row, colIdx, "industry"),
			Location:    getCol(row, colIdx, "location"),
			LinkedInBio: getCol(row, colIdx, "linkedin_bio"),
		}

		if err := lead.Validate(); err != nil {
			zap.L().Warn("ingest: skipping invalid lead row",
				zap.Int("row", rowNum+2),
				zap.Error(err),
			)
			continue
		}

		leads = append(leads, lead)
		if len(leads) >= MaxLeads {
			zap.L().Warn("ingest: lead cap reached, truncating upload",
				zap.Int("max", MaxLeads),
			)
			break
		}
	}

	if len(leads) == 0 {
		return nil, eris.New("ingest: no valid leads in csv")
	}

	return leads, nil
}

// ParseLeadsCSVFile reads a lead CSV from a file path.
func ParseLeadsCSVFile(path string) ([]model.Lead, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open csv")
	}
	defer f.Close()

	return ParseLeadsCSV(f)
}

func getCol(row []string, colIdx map[string]int, name string) string {
	i, ok := colIdx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
