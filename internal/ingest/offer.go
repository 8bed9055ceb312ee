package ingest

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/leadscore/internal/model"
)

// LoadOffer reads and validates an offer from a YAML or JSON file, chosen
// by extension (.json for JSON, anything else parses as YAML).
func LoadOffer(path string) (*model.Offer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read offer file")
	}

	var offer model.Offer
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := json.Unmarshal(data, &offer); err != nil {
			return nil, eris.Wrap(err, "ingest: parse offer json")
		}
	} else {
		if err := yaml.Unmarshal(data, &offer); err != nil {
			return nil, eris.Wrap(err, "ingest: parse offer yaml")
		}
	}

	if err := offer.Validate(); err != nil {
		return nil, err
	}
	return &offer, nil
}
