package queries

import (
	"context"
	"time"

	"arcana-backend/application/ports"
	pkgerrors "arcana-backend/pkg/errors"

	"go.uber.org/zap"
)

// GetRecentDrawsQuery requests the trailing-window draw history for a profile
type GetRecentDrawsQuery struct {
	ProfileID string
	Reference time.Time
}

// Validate checks the query parameters
func (q GetRecentDrawsQuery) Validate() error {
	if q.ProfileID == "" {
		return pkgerrors.NewValidationError("profile ID is required")
	}
	return nil
}

// RecentDraw is one remembered selection in the response
type RecentDraw struct {
	CardName string `json:"cardName"`
	Date     string `json:"date"`
	DaysAgo  int    `json:"daysAgo"`
}

// GetRecentDrawsHandler handles recent-draw history queries
type GetRecentDrawsHandler struct {
	recency ports.RecencyRepository
	logger  *zap.Logger
}

// NewGetRecentDrawsHandler creates a new handler
func NewGetRecentDrawsHandler(recency ports.RecencyRepository, logger *zap.Logger) *GetRecentDrawsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GetRecentDrawsHandler{recency: recency, logger: logger}
}

// Handle returns the profile's selections inside the retention window,
// most recent first.
func (h *GetRecentDrawsHandler) Handle(ctx context.Context, query GetRecentDrawsQuery) ([]RecentDraw, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	reference := query.Reference
	if reference.IsZero() {
		reference = time.Now()
	}

	selections, err := h.recency.RecentSelections(ctx, query.ProfileID, reference)
	if err != nil {
		h.logger.Warn("recent selections unavailable",
			zap.String("profileID", query.ProfileID),
			zap.Error(err),
		)
		return nil, err
	}

	draws := make([]RecentDraw, 0, len(selections))
	for _, sel := range selections {
		draws = append(draws, RecentDraw{
			CardName: sel.CardName,
			Date:     reference.AddDate(0, 0, -sel.DaysAgo).Format("2006-01-02"),
			DaysAgo:  sel.DaysAgo,
		})
	}
	return draws, nil
}
