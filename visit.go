package epollo

import (
	"context"
	"time"
)

// Visit records a page the user has browsed.
type Visit struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	FinalURL    string    `json:"finalUrl"`
	Title       string    `json:"title"`
	StatusCode  int       `json:"statusCode"`
	ContentHash string    `json:"contentHash"`
	VisitedAt   time.Time `json:"visitedAt"`
}

// Validate returns an error if the visit contains invalid fields.
func (v *Visit) Validate() error {
	if v.URL == "" {
		return Errorf(EINVALID, "visit URL required")
	}
	return nil
}

// VisitFilter selects visits in FindVisits.
type VisitFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// VisitService manages browsing history.
type VisitService interface {
	// CreateVisit records a new visit, assigning its ID and timestamp.
	CreateVisit(ctx context.Context, visit *Visit) error

	// FindVisitByID retrieves a visit by ID.
	// Returns ENOTFOUND if the visit does not exist.
	FindVisitByID(ctx context.Context, id string) (*Visit, error)

	// FindVisits retrieves visits matching the filter, most recent
	// first.
	FindVisits(ctx context.Context, filter VisitFilter) ([]*Visit, error)

	// DeleteVisits removes all recorded visits and returns the number
	// deleted.
	DeleteVisits(ctx context.Context) (int, error)
}
