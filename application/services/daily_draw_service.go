package services

import (
	"context"
	"time"

	"arcana-backend/application/ports"
	"arcana-backend/domain/config"
	domainservices "arcana-backend/domain/services"
	"arcana-backend/domain/core/entities"
	"arcana-backend/domain/core/valueobjects"
	pkgerrors "arcana-backend/pkg/errors"
	"arcana-backend/pkg/observability"

	"go.uber.org/zap"
)

// DrawRequest is the engine's external input for one daily derivation:
// the upstream token pool, the precomputed base axes, the astral inputs
// feeding volatility, and the profile/date the draw belongs to.
type DrawRequest struct {
	ProfileID    string
	Date         time.Time
	BaseAxes     valueobjects.AxisVector
	Tokens       []valueobjects.SemanticToken
	TransitCount int
	LunarPhase   float64
	Seed         int64
}

// DrawResult is the engine's output: the selected card, the finalized axes,
// the six-way energy distribution, and scoring diagnostics.
type DrawResult struct {
	Card             *entities.Card
	Axes             valueobjects.AxisVector
	Vibes            valueobjects.VibeBreakdown
	Scores           ScoreBreakdown
	VibeOnlyFallback bool
}

// DailyDrawService orchestrates the full derivation pipeline:
// merge tokens → modulate axes → distribute vibes → select card → commit.
type DailyDrawService struct {
	volatility  *domainservices.AxisVolatility
	distributor *domainservices.VibeDistributor
	selector    *CardSelector
	recency     ports.RecencyRepository
	config      *config.DomainConfig
	logger      *zap.Logger
	metrics     *observability.Collector
}

// NewDailyDrawService creates a new daily draw service
func NewDailyDrawService(
	volatility *domainservices.AxisVolatility,
	distributor *domainservices.VibeDistributor,
	selector *CardSelector,
	recency ports.RecencyRepository,
	cfg *config.DomainConfig,
	logger *zap.Logger,
	metrics *observability.Collector,
) *DailyDrawService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DailyDrawService{
		volatility:  volatility,
		distributor: distributor,
		selector:    selector,
		recency:     recency,
		config:      cfg,
		logger:      logger,
		metrics:     metrics,
	}
}

// Draw runs one (profile, day) derivation and commits the winner into the
// recency store. All computation is synchronous and bounded by the catalog
// size; the only I/O is the recency store, which is fail-open.
func (s *DailyDrawService) Draw(ctx context.Context, req DrawRequest) (*DrawResult, error) {
	started := time.Now()

	if err := s.validate(req); err != nil {
		return nil, err
	}

	tokens := valueobjects.MergeTokens(req.Tokens, s.config.TokenWeightSoftCap)

	axes := s.volatility.Modulate(req.BaseAxes, tokens, req.TransitCount, req.LunarPhase, req.Seed)
	vibes := s.distributor.Distribute(tokens)

	selection, err := s.selector.Select(ctx, SelectionRequest{
		ProfileID: req.ProfileID,
		Date:      req.Date,
		Axes:      axes,
		Vibes:     vibes,
		Seed:      req.Seed,
	})
	if err != nil {
		s.metrics.ObserveDraw("error", 0, time.Since(started))
		return nil, err
	}

	s.selector.Commit(ctx, req.ProfileID, selection.Card, req.Date)

	// Best-effort housekeeping; expired rows also age out via the store's TTL.
	if err := s.recency.PurgeExpired(ctx, req.ProfileID, req.Date); err != nil {
		s.logger.Debug("purge of expired recency entries failed",
			zap.String("profileID", req.ProfileID),
			zap.Error(err),
		)
	}

	outcome := "ok"
	if selection.VibeOnlyFallback {
		outcome = "fallback"
	}
	s.metrics.ObserveDraw(outcome, selection.Scores.Total, time.Since(started))

	s.logger.Info("daily draw completed",
		zap.String("profileID", req.ProfileID),
		zap.String("date", req.Date.Format("2006-01-02")),
		zap.String("card", selection.Card.Name()),
		zap.String("axes", axes.String()),
		zap.String("vibes", vibes.String()),
		zap.Float64("score", selection.Scores.Total),
		zap.Float64("axisScore", selection.Scores.AxisScore),
		zap.Float64("vibeScore", selection.Scores.VibeScore),
		zap.Float64("suitBoost", selection.Scores.SuitBoost),
		zap.Float64("recencyPenalty", selection.Scores.RecencyPenalty),
		zap.Bool("fallback", selection.VibeOnlyFallback),
	)

	return &DrawResult{
		Card:             selection.Card,
		Axes:             axes,
		Vibes:            vibes,
		Scores:           selection.Scores,
		VibeOnlyFallback: selection.VibeOnlyFallback,
	}, nil
}

func (s *DailyDrawService) validate(req DrawRequest) error {
	if req.ProfileID == "" {
		return pkgerrors.NewValidationError("profile ID is required")
	}
	if req.Date.IsZero() {
		return pkgerrors.NewValidationError("reference date is required")
	}
	if req.LunarPhase < 0 || req.LunarPhase > 1 {
		return pkgerrors.NewValidationError("lunar phase must be in [0,1]")
	}
	return nil
}
