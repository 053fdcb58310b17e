// Package catalog loads the static 78-card deck from a YAML resource and
// serves it as an immutable, process-lifetime cache. Loading is lazy and
// happens exactly once; afterwards the catalog is read-mostly and safe for
// concurrent readers.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"arcana-backend/domain/core/entities"
	"arcana-backend/domain/core/valueobjects"
	pkgerrors "arcana-backend/pkg/errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed deck.yaml
var defaultDeck []byte

// deckFile is the YAML schema for a deck resource
type deckFile struct {
	Version string       `yaml:"version" validate:"required"`
	Cards   []cardRecord `yaml:"cards" validate:"required,min=1,dive"`
}

type cardRecord struct {
	Name        string             `yaml:"name" validate:"required"`
	Arcana      string             `yaml:"arcana" validate:"required,oneof=major minor"`
	Suit        string             `yaml:"suit" validate:"omitempty,oneof=wands cups swords pentacles"`
	Rank        string             `yaml:"rank" validate:"omitempty,oneof=ace two three four five six seven eight nine ten page knight queen king"`
	Keywords    []string           `yaml:"keywords"`
	Themes      []string           `yaml:"themes"`
	Energies    map[string]float64 `yaml:"energies" validate:"required,dive,gte=0,lte=1"`
	Axes        *axisRecord        `yaml:"axes"`
	Description string             `yaml:"description"`
}

type axisRecord struct {
	Action     float64 `yaml:"action" validate:"gte=0,lte=100"`
	Tempo      float64 `yaml:"tempo" validate:"gte=0,lte=100"`
	Strategy   float64 `yaml:"strategy" validate:"gte=0,lte=100"`
	Visibility float64 `yaml:"visibility" validate:"gte=0,lte=100"`
}

// Service implements ports.CardCatalog. Construct it once and inject it into
// the selector; tests substitute a fake catalog behind the same port.
type Service struct {
	path   string // empty means the embedded default deck
	logger *zap.Logger

	once    sync.Once
	cards   []*entities.Card
	byName  map[string]*entities.Card
	loadErr error
}

// NewService creates a catalog service. path may be empty to use the deck
// compiled into the binary.
func NewService(path string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{path: path, logger: logger}
}

// Cards returns every catalog entry, loading on first use
func (s *Service) Cards(ctx context.Context) ([]*entities.Card, error) {
	s.once.Do(s.load)
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.cards, nil
}

// CardByName looks a card up by its unique name
func (s *Service) CardByName(ctx context.Context, name string) (*entities.Card, error) {
	s.once.Do(s.load)
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	card, ok := s.byName[name]
	if !ok {
		return nil, pkgerrors.NewNotFoundError(fmt.Sprintf("card %q", name))
	}
	return card, nil
}

func (s *Service) load() {
	raw := defaultDeck
	source := "embedded"
	if s.path != "" {
		data, err := os.ReadFile(s.path)
		if err != nil {
			s.loadErr = pkgerrors.NewDeckUnavailableError(
				fmt.Sprintf("deck resource %s unreadable", s.path)).WithCause(err)
			return
		}
		raw = data
		source = s.path
	}

	var deck deckFile
	if err := yaml.Unmarshal(raw, &deck); err != nil {
		s.loadErr = pkgerrors.NewDeckUnavailableError("deck resource failed to parse").WithCause(err)
		return
	}
	if err := validator.New().Struct(deck); err != nil {
		s.loadErr = pkgerrors.NewDeckUnavailableError("deck resource failed validation").WithCause(err)
		return
	}

	cards := make([]*entities.Card, 0, len(deck.Cards))
	byName := make(map[string]*entities.Card, len(deck.Cards))
	for _, record := range deck.Cards {
		card, err := toEntity(record)
		if err != nil {
			s.loadErr = pkgerrors.NewDeckUnavailableError(
				fmt.Sprintf("deck entry %q is invalid", record.Name)).WithCause(err)
			return
		}
		if _, dup := byName[card.Name()]; dup {
			s.loadErr = pkgerrors.NewDeckUnavailableError(
				fmt.Sprintf("deck contains duplicate card %q", card.Name()))
			return
		}
		cards = append(cards, card)
		byName[card.Name()] = card
	}

	s.cards = cards
	s.byName = byName
	s.logger.Info("card catalog loaded",
		zap.String("source", source),
		zap.String("version", deck.Version),
		zap.Int("cards", len(cards)),
	)
}

func toEntity(record cardRecord) (*entities.Card, error) {
	energies := make(map[valueobjects.Energy]float64, len(record.Energies))
	for name, affinity := range record.Energies {
		energies[valueobjects.Energy(name)] = affinity
	}

	var axes *entities.AxisAffinity
	if record.Axes != nil {
		axes = &entities.AxisAffinity{
			Action:     record.Axes.Action,
			Tempo:      record.Axes.Tempo,
			Strategy:   record.Axes.Strategy,
			Visibility: record.Axes.Visibility,
		}
	}

	return entities.NewCard(
		record.Name,
		entities.ArcanaKind(record.Arcana),
		entities.Suit(record.Suit),
		entities.Rank(record.Rank),
		record.Keywords,
		record.Themes,
		energies,
		axes,
		record.Description,
	)
}
