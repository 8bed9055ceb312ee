package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// MaxOfferItems caps the value_props and ideal_use_cases lists.
const MaxOfferItems = 10

// Offer represents the product or service leads are scored against.
type Offer struct {
	Name          string   `json:"name" yaml:"name"`
	ValueProps    []string `json:"value_props" yaml:"value_props"`
	IdealUseCases []string `json:"ideal_use_cases" yaml:"ideal_use_cases"`
}

// Validate trims the offer fields, drops empty list items, and checks bounds.
func (o *Offer) Validate() error {
	o.Name = strings.TrimSpace(o.Name)
	o.ValueProps = cleanList(o.ValueProps)
	o.IdealUseCases = cleanList(o.IdealUseCases)

	if o.Name == "" {
		return eris.New("offer: name is required")
	}
	if len(o.ValueProps) == 0 {
		return eris.New("offer: at least one value proposition is required")
	}
	if len(o.IdealUseCases) == 0 {
		return eris.New("offer: at least one ideal use case is required")
	}
	if len(o.ValueProps) > MaxOfferItems {
		return eris.Errorf("offer: at most %d value propositions allowed", MaxOfferItems)
	}
	if len(o.IdealUseCases) > MaxOfferItems {
		return eris.Errorf("offer: at most %d ideal use cases allowed", MaxOfferItems)
	}

	return nil
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}
