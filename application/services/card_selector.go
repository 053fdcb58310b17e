package services

import (
	"context"
	"math"
	"sort"
	"time"

	"arcana-backend/application/ports"
	"arcana-backend/domain/config"
	"arcana-backend/domain/core/entities"
	"arcana-backend/domain/core/valueobjects"
	pkgerrors "arcana-backend/pkg/errors"

	"go.uber.org/zap"
)

// Stage 1 filter floors keyed off the day's kinetic score. Extreme days
// (very fast or very slow) demand a close axis match.
const (
	filterFloorExtreme  = 0.60
	filterFloorElevated = 0.50
	filterFloorRelaxed  = 0.40
)

// Stage 2 scoring weights.
const (
	axisScoreWeight = 60.0
	vibeScoreWeight = 25.0
)

// Fixed card-name sets for the visibility suit boost. Public-facing
// archetypes get a lift on loud days, withdrawn ones on quiet days.
var (
	publicCardNames = keywordSet(
		"The Sun", "The Emperor", "The World", "The Chariot", "The Star", "Six of Wands",
	)
	privateCardNames = keywordSet(
		"The Hermit", "The High Priestess", "The Moon", "Four of Swords", "Four of Cups",
	)
)

// SelectionRequest carries everything the selector needs for one
// (profile, day) pass.
type SelectionRequest struct {
	ProfileID string
	Date      time.Time
	Axes      valueobjects.AxisVector
	Vibes     valueobjects.VibeBreakdown
	Seed      int64
}

// ScoreBreakdown exposes the per-factor diagnostics for one scored card.
// These are observability output, not part of the functional contract.
type ScoreBreakdown struct {
	AxisSimilarity float64
	AxisScore      float64
	VibeScore      float64
	SuitBoost      float64
	RecencyPenalty float64
	Total          float64
}

// SelectionResult is the outcome of one selection pass
type SelectionResult struct {
	Card             *entities.Card
	Scores           ScoreBreakdown
	VibeOnlyFallback bool
}

// CardSelector orchestrates the multi-stage selection pipeline against the
// static catalog: axis-similarity filter, multi-factor scoring, deterministic
// jitter, tie-breaking, and the recency commit. Select is a pure read; Commit
// writes the winner back so callers control when history advances.
type CardSelector struct {
	catalog ports.CardCatalog
	recency ports.RecencyRepository
	config  *config.DomainConfig
	logger  *zap.Logger
}

// NewCardSelector creates a new card selector
func NewCardSelector(
	catalog ports.CardCatalog,
	recency ports.RecencyRepository,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *CardSelector {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CardSelector{
		catalog: catalog,
		recency: recency,
		config:  cfg,
		logger:  logger,
	}
}

// Select runs the full pipeline and returns the winning card without
// committing it. Two successive calls with identical inputs and history
// return the same card.
func (s *CardSelector) Select(ctx context.Context, req SelectionRequest) (*SelectionResult, error) {
	cards, err := s.catalog.Cards(ctx)
	if err != nil {
		if pkgerrors.IsDeckUnavailable(err) {
			return nil, err
		}
		return nil, pkgerrors.NewDeckUnavailableError("card catalog failed to load").WithCause(err)
	}
	if len(cards) == 0 {
		return nil, pkgerrors.NewDeckUnavailableError("card catalog is empty")
	}

	daysSince := s.loadRecency(ctx, req)

	// Stage 1: axis-similarity filter.
	floor := stage1Floor(req.Axes.Kinetic())
	type candidate struct {
		card       *entities.Card
		similarity float64
		scores     ScoreBreakdown
	}
	candidates := make([]candidate, 0, len(cards))
	for _, card := range cards {
		similarity := card.AxisSimilarity(req.Axes)
		if similarity >= floor {
			candidates = append(candidates, candidate{card: card, similarity: similarity})
		}
	}

	if len(candidates) == 0 {
		s.logger.Debug("axis filter removed every card, using vibe-only fallback",
			zap.String("profileID", req.ProfileID),
			zap.Float64("kinetic", req.Axes.Kinetic()),
			zap.Float64("floor", floor),
		)
		return s.selectByVibeAlone(ctx, req, cards), nil
	}

	// Stage 2: multi-factor scoring with deterministic variety jitter.
	for i := range candidates {
		c := &candidates[i]
		vibe := vibeAlignment(c.card, req.Vibes)
		boost := suitBoost(c.card, req.Axes)
		penalty := recencyStepPenalty(daysSince, c.card.Name())

		total := c.similarity*axisScoreWeight + vibe*vibeScoreWeight + boost - penalty
		if req.Seed != 0 {
			total += s.varietyJitter(c.card, req.Axes, req.Seed)
		}

		c.scores = ScoreBreakdown{
			AxisSimilarity: c.similarity,
			AxisScore:      c.similarity * axisScoreWeight,
			VibeScore:      vibe * vibeScoreWeight,
			SuitBoost:      boost,
			RecencyPenalty: penalty,
			Total:          total,
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].scores.Total != candidates[b].scores.Total {
			return candidates[a].scores.Total > candidates[b].scores.Total
		}
		return candidates[a].card.Name() < candidates[b].card.Name()
	})

	// Stage 3: tie-break within an absolute epsilon of the top score.
	maxScore := candidates[0].scores.Total
	group := candidates[:0:0]
	for _, c := range candidates {
		if maxScore-c.scores.Total <= s.config.ScoreEpsilon {
			group = append(group, c)
		}
	}

	winner := group[0]
	if len(group) > 1 {
		bestSimilarity := 0.0
		for _, c := range group {
			if c.similarity > bestSimilarity {
				bestSimilarity = c.similarity
			}
		}
		tight := group[:0:0]
		for _, c := range group {
			if bestSimilarity-c.similarity <= s.config.SimilarityEpsilon {
				tight = append(tight, c)
			}
		}
		switch {
		case len(tight) > 1 && req.Seed != 0:
			winner = tight[seedIndex(req.Seed, len(tight))]
		case len(tight) > 1:
			sort.SliceStable(tight, func(a, b int) bool {
				if tight[a].similarity != tight[b].similarity {
					return tight[a].similarity > tight[b].similarity
				}
				return tight[a].card.Name() < tight[b].card.Name()
			})
			winner = tight[0]
		default:
			winner = tight[0]
		}
	}

	return &SelectionResult{Card: winner.card, Scores: winner.scores}, nil
}

// Commit records the winner for (profile, day). Persistence failure never
// fails the draw: it is logged and swallowed.
func (s *CardSelector) Commit(ctx context.Context, profileID string, card *entities.Card, date time.Time) {
	if err := s.recency.Record(ctx, profileID, card.Name(), date); err != nil {
		s.logger.Warn("failed to record selection, continuing without history write",
			zap.String("profileID", profileID),
			zap.String("card", card.Name()),
			zap.Error(err),
		)
	}
}

// loadRecency builds a card-name → days-ago map from the trailing window.
// Store failures read as empty history.
func (s *CardSelector) loadRecency(ctx context.Context, req SelectionRequest) map[string]int {
	selections, err := s.recency.RecentSelections(ctx, req.ProfileID, req.Date)
	if err != nil {
		s.logger.Warn("recency store unavailable, selecting with empty history",
			zap.String("profileID", req.ProfileID),
			zap.Error(err),
		)
		return nil
	}

	daysSince := make(map[string]int, len(selections))
	for _, sel := range selections {
		if existing, ok := daysSince[sel.CardName]; !ok || sel.DaysAgo < existing {
			daysSince[sel.CardName] = sel.DaysAgo
		}
	}
	return daysSince
}

// selectByVibeAlone scores the full, unfiltered catalog on vibe alignment
// scaled by the recency decay multiplier. This is the documented fallback
// when Stage 1 removes every card; it ignores axis data entirely.
func (s *CardSelector) selectByVibeAlone(ctx context.Context, req SelectionRequest, cards []*entities.Card) *SelectionResult {
	var best *entities.Card
	bestScore := math.Inf(-1)
	bestVibe := 0.0

	for _, card := range cards {
		vibe := vibeAlignment(card, req.Vibes)
		decay := s.recency.DecayPenalty(ctx, req.ProfileID, card.Name(), req.Date)
		score := vibe * 100 * decay
		if score > bestScore || (score == bestScore && best != nil && card.Name() < best.Name()) {
			best = card
			bestScore = score
			bestVibe = vibe
		}
	}

	return &SelectionResult{
		Card: best,
		Scores: ScoreBreakdown{
			VibeScore: bestVibe * 100,
			Total:     bestScore,
		},
		VibeOnlyFallback: true,
	}
}

// varietyJitter adds a small signed perturbation proportional to how far the
// card sits from the day's axes, breaking near-ties reproducibly without
// materially changing ranking.
func (s *CardSelector) varietyJitter(card *entities.Card, axes valueobjects.AxisVector, seed int64) float64 {
	affinity := card.AxisAffinity()
	if affinity == nil {
		return 0
	}
	diff := affinity.Rescaled().AbsDifferenceSum(axes)
	return diff * s.config.JitterScale * math.Sin(float64(seed)*0.1)
}

func stage1Floor(kinetic float64) float64 {
	switch {
	case kinetic >= 8.0 || kinetic <= 3.5:
		return filterFloorExtreme
	case kinetic >= 6.5:
		return filterFloorElevated
	default:
		return filterFloorRelaxed
	}
}

// vibeAlignment weights the dominant energy's card affinity at 0.7 and the
// secondary's at 0.3, each normalized by the day's point budget.
func vibeAlignment(card *entities.Card, vibes valueobjects.VibeBreakdown) float64 {
	dominant := vibes.Dominant()
	secondary := vibes.Secondary()
	budget := float64(valueobjects.VibeBudget)

	return 0.7*card.EnergyAffinity(dominant)*(float64(vibes.Points(dominant))/budget) +
		0.3*card.EnergyAffinity(secondary)*(float64(vibes.Points(secondary))/budget)
}

// suitBoost rewards suit, rank, and archetype alignment with the day's
// kinetic score, strategy, and visibility. Range is roughly -1 to +3.5.
func suitBoost(card *entities.Card, axes valueobjects.AxisVector) float64 {
	boost := 0.0
	kinetic := axes.Kinetic()

	switch {
	case kinetic >= 7.5:
		switch card.Suit() {
		case entities.SuitWands:
			boost += 1.5
		case entities.SuitSwords:
			boost += 1.0
		case entities.SuitPentacles:
			boost -= 1.0
		}
	case kinetic <= 4.0:
		switch card.Suit() {
		case entities.SuitPentacles:
			boost += 1.0
		case entities.SuitCups:
			boost += 0.5
		}
	}

	switch {
	case axes.Strategy() >= 7.0:
		if card.IsMajor() {
			boost += 1.0
		}
		if card.Rank() == entities.RankQueen || card.Rank() == entities.RankKing {
			boost += 0.5
		}
	case axes.Strategy() <= 3.5:
		if card.Rank().IsNovice() {
			boost += 1.0
		}
	}

	switch {
	case axes.Visibility() >= 7.5:
		if publicCardNames[card.Name()] {
			boost += 1.0
		}
	case axes.Visibility() <= 3.0:
		if privateCardNames[card.Name()] {
			boost += 1.0
		}
	}

	return boost
}

// recencyStepPenalty is the hard step function over days since the exact
// card last appeared: same-day reuse is effectively blocked.
func recencyStepPenalty(daysSince map[string]int, cardName string) float64 {
	days, seen := daysSince[cardName]
	if !seen {
		return 0
	}
	switch days {
	case 0:
		return 100
	case 1:
		return 50
	case 2:
		return 20
	case 3:
		return 10
	default:
		return 0
	}
}

// seedIndex maps a seed onto a candidate slot, tolerating negative seeds
func seedIndex(seed int64, count int) int {
	idx := int(seed % int64(count))
	if idx < 0 {
		idx += count
	}
	return idx
}

func keywordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
