package extract

import (
	"time"

	"collabflow/internal/types"

	"github.com/google/uuid"
)

// Materialize converts extraction candidates into full records: each
// gets a fresh ID, a pending status, and defaults for fields the model
// left empty.
func Materialize(candidates []Candidate, now time.Time) []types.CollaborationRequest {
	if len(candidates) == 0 {
		return nil
	}

	today := now.Format("2006-01-02")
	records := make([]types.CollaborationRequest, 0, len(candidates))
	for _, c := range candidates {
		brand := c.BrandName
		if brand == "" {
			brand = types.DefaultBrandName
		}
		summary := c.Summary
		if summary == "" {
			summary = types.DefaultSummary
		}
		date := c.RequestDate
		if date == "" {
			date = today
		}
		records = append(records, types.CollaborationRequest{
			ID:          uuid.NewString(),
			BrandName:   brand,
			Email:       c.Email,
			RequestDate: date,
			Summary:     summary,
			Budget:      c.Budget,
			Status:      types.StatusPending,
		})
	}
	return records
}
