// Command draw runs one daily card derivation from the terminal. It is the
// operational entrypoint for smoke-testing the engine against either the
// in-memory store or a live DynamoDB table.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"hash/fnv"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"arcana-backend/application/queries"
	"arcana-backend/application/services"
	"arcana-backend/domain/core/valueobjects"
	"arcana-backend/infrastructure/config"
	"arcana-backend/infrastructure/di"
	"arcana-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// tokenInput is the JSON shape accepted by -tokens.
type tokenInput struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Weight   float64 `json:"weight"`
	Planet   string  `json:"planet,omitempty"`
	Sign     string  `json:"sign,omitempty"`
	House    int     `json:"house,omitempty"`
	Aspect   string  `json:"aspect,omitempty"`
	Origin   string  `json:"origin,omitempty"`
}

func main() {
	var (
		profileID = flag.String("profile", "", "profile ID (a fresh UUID when empty)")
		dateStr   = flag.String("date", "", "reference day as YYYY-MM-DD (today when empty)")
		axesStr   = flag.String("axes", "5,5,5,5", "base axes as action,tempo,strategy,visibility")
		lunar     = flag.Float64("lunar", 0.5, "lunar illuminated fraction in [0,1] (0 new, 1 full)")
		transits  = flag.Int("transits", 0, "active transit count")
		seed      = flag.Int64("seed", 0, "daily seed (derived from profile+date when 0)")
		tokenPath = flag.String("tokens", "", "path to a JSON array of semantic tokens")
		history   = flag.Bool("history", false, "print the profile's recent draws and exit")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Logger.Sync() //nolint:errcheck

	if *profileID == "" {
		*profileID = uuid.New().String()
		fmt.Fprintf(os.Stderr, "profile: %s\n", *profileID)
	}

	date := time.Now()
	if *dateStr != "" {
		date, err = utils.ParseDayKey(*dateStr)
		if err != nil {
			log.Fatalf("Invalid -date: %v", err)
		}
	}

	if *history {
		printHistory(ctx, container, *profileID, date)
		return
	}

	baseAxes, err := parseAxes(*axesStr)
	if err != nil {
		log.Fatalf("Invalid -axes: %v", err)
	}

	tokens, err := loadTokens(*tokenPath)
	if err != nil {
		log.Fatalf("Failed to load tokens: %v", err)
	}

	if *seed == 0 {
		*seed = deriveSeed(*profileID, date)
	}

	result, err := container.DrawService.Draw(ctx, services.DrawRequest{
		ProfileID:    *profileID,
		Date:         date,
		BaseAxes:     baseAxes,
		Tokens:       tokens,
		TransitCount: *transits,
		LunarPhase:   *lunar,
		Seed:         *seed,
	})
	if err != nil {
		container.Logger.Fatal("Draw failed", zap.Error(err))
	}

	printResult(result, date)
}

func printResult(result *services.DrawResult, date time.Time) {
	fmt.Printf("Date:  %s\n", utils.DayKey(date))
	fmt.Printf("Card:  %s\n", result.Card.Name())
	fmt.Printf("Axes:  %s\n", result.Axes.String())
	fmt.Printf("Vibes: %s\n", result.Vibes.String())
	fmt.Printf("Score: %.2f (axis %.2f, vibe %.2f, suit %+.2f, recency -%.2f)\n",
		result.Scores.Total,
		result.Scores.AxisScore,
		result.Scores.VibeScore,
		result.Scores.SuitBoost,
		result.Scores.RecencyPenalty,
	)
	if result.VibeOnlyFallback {
		fmt.Println("Note:  axis filter emptied the pool; vibe-only fallback used")
	}
}

func printHistory(ctx context.Context, container *di.Container, profileID string, date time.Time) {
	draws, err := container.RecentDrawsHandler.Handle(ctx, queries.GetRecentDrawsQuery{
		ProfileID: profileID,
		Reference: date,
	})
	if err != nil {
		container.Logger.Fatal("History query failed", zap.Error(err))
	}
	if len(draws) == 0 {
		fmt.Println("No draws in the retention window.")
		return
	}
	for _, draw := range draws {
		fmt.Printf("%s  %s (%d day(s) ago)\n", draw.Date, draw.CardName, draw.DaysAgo)
	}
}

// parseAxes parses "a,t,s,v" into a validated axis vector.
func parseAxes(s string) (valueobjects.AxisVector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return valueobjects.AxisVector{}, fmt.Errorf("want 4 comma-separated values, got %d", len(parts))
	}
	values := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return valueobjects.AxisVector{}, fmt.Errorf("value %q: %w", part, err)
		}
		values[i] = v
	}
	return valueobjects.NewAxisVector(values[0], values[1], values[2], values[3]), nil
}

func loadTokens(path string) ([]valueobjects.SemanticToken, error) {
	if path == "" {
		return defaultTokens(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var inputs []tokenInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	tokens := make([]valueobjects.SemanticToken, 0, len(inputs))
	for _, in := range inputs {
		tokens = append(tokens, valueobjects.SemanticToken{
			Name:     in.Name,
			Category: in.Category,
			Weight:   in.Weight,
			Planet:   valueobjects.Planet(in.Planet),
			Sign:     valueobjects.Sign(in.Sign),
			House:    in.House,
			Aspect:   valueobjects.AspectKind(in.Aspect),
			Origin:   valueobjects.OriginKind(in.Origin),
		})
	}
	return tokens, nil
}

// defaultTokens is a small demonstration pool used when -tokens is omitted.
func defaultTokens() []valueobjects.SemanticToken {
	return []valueobjects.SemanticToken{
		{Name: "steady focus", Category: "mood", Weight: 1.5, Planet: valueobjects.PlanetSaturn, Origin: valueobjects.OriginNatal},
		{Name: "warm connection", Category: "mood", Weight: 1.2, Planet: valueobjects.PlanetVenus, Aspect: valueobjects.AspectTrine, Origin: valueobjects.OriginTransit},
		{Name: "quick wit", Category: "mind", Weight: 1.0, Planet: valueobjects.PlanetMercury, Origin: valueobjects.OriginTransit},
		{Name: "restless drive", Category: "drive", Weight: 0.8, Planet: valueobjects.PlanetMars, Sign: valueobjects.SignAries, Origin: valueobjects.OriginTransit},
	}
}

// deriveSeed hashes profile and day into a stable daily seed so repeated
// runs on the same day stay deterministic.
func deriveSeed(profileID string, date time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(profileID)) //nolint:errcheck
	h.Write([]byte(utils.DayKey(date)))
	return int64(h.Sum64())
}
