// Package model defines the core domain types shared across the scoring pipeline.
package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

const (
	// MaxFieldLen bounds every short lead field.
	MaxFieldLen = 100
	// MaxBioLen bounds the LinkedIn bio field.
	MaxBioLen = 1000
)

// Lead represents a single prospect to be scored.
type Lead struct {
	Name        string `json:"name" csv:"name"`
	Role        string `json:"role" csv:"role"`
	Company     string `json:"company" csv:"company"`
	Industry    string `json:"industry" csv:"industry"`
	Location    string `json:"location" csv:"location"`
	LinkedInBio string `json:"linkedin_bio" csv:"linkedin_bio"`
}

// Normalize trims whitespace from every field in place.
func (l *Lead) Normalize() {
	l.Name = strings.TrimSpace(l.Name)
	l.Role = strings.TrimSpace(l.Role)
	l.Company = strings.TrimSpace(l.Company)
	l.Industry = strings.TrimSpace(l.Industry)
	l.Location = strings.TrimSpace(l.Location)
	l.LinkedInBio = strings.TrimSpace(l.LinkedInBio)
}

// Validate normalizes the lead and checks the identifying fields.
// Industry, location, and bio may be empty; missing data only costs
// completeness points at scoring time.
func (l *Lead) Validate() error {
	l.Normalize()

	if l.Name == "" {
		return eris.New("lead: name is required")
	}
	if l.Role == "" {
		return eris.New("lead: role is required")
	}
	if l.Company == "" {
		return eris.New("lead: company is required")
	}

	for _, f := range []string{l.Name, l.Role, l.Company, l.Industry, l.Location} {
		if len(f) > MaxFieldLen {
			return eris.Errorf("lead: field exceeds %d characters", MaxFieldLen)
		}
	}
	if len(l.LinkedInBio) > MaxBioLen {
		return eris.Errorf("lead: linkedin_bio exceeds %d characters", MaxBioLen)
	}

	return nil
}

// Complete reports whether all six fields are non-empty after trimming.
func (l Lead) Complete() bool {
	for _, f := range []string{l.Name, l.Role, l.Company, l.Industry, l.Location, l.LinkedInBio} {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}
