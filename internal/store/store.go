// Package store persists the working offer, uploaded leads, and scoring
// runs. Storage is a convenience for the serve API, not a durability
// guarantee.
package store

import (
	"context"
	"time"

	"github.com/sells-group/leadscore/internal/model"
)

// Run records one batch scoring execution.
type Run struct {
	ID        string                `json:"id"`
	OfferName string                `json:"offer_name"`
	LeadCount int                   `json:"lead_count"`
	Results   []model.ScoringResult `json:"results"`
	CreatedAt time.Time             `json:"created_at"`
}

// Store is the persistence interface consumed by the serve API.
type Store interface {
	// Offer: a single working offer at a time.
	SetOffer(ctx context.Context, offer model.Offer) error
	GetOffer(ctx context.Context) (*model.Offer, error)

	// Leads: uploading a new set clears previous results.
	SetLeads(ctx context.Context, leads []model.Lead) error
	GetLeads(ctx context.Context) ([]model.Lead, error)

	// Runs
	SaveRun(ctx context.Context, offerName string, results []model.ScoringResult) (*Run, error)
	LatestRun(ctx context.Context) (*Run, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
