package di

import (
	"context"
	"fmt"

	"arcana-backend/application/ports"
	"arcana-backend/application/queries"
	appservices "arcana-backend/application/services"
	domainconfig "arcana-backend/domain/config"
	domainservices "arcana-backend/domain/services"
	"arcana-backend/infrastructure/catalog"
	"arcana-backend/infrastructure/config"
	"arcana-backend/infrastructure/persistence"
	"arcana-backend/infrastructure/persistence/dynamodb"
	"arcana-backend/infrastructure/persistence/memory"
	"arcana-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zapCfg.Build()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideDomainConfig builds the tuning constants for the derivation
// pipeline, folding in the configured retention window.
func ProvideDomainConfig(cfg *config.Config) *domainconfig.DomainConfig {
	dcfg := domainconfig.DefaultDomainConfig()
	dcfg.RetentionDays = cfg.RetentionDays
	return dcfg
}

// ProvideCardCatalog creates the deck catalog service
func ProvideCardCatalog(cfg *config.Config, logger *zap.Logger) ports.CardCatalog {
	return catalog.NewService(cfg.DeckPath, logger)
}

// ProvideRecencyRepository selects the storage backend and wraps it with
// the retry/circuit-breaker decorator.
func ProvideRecencyRepository(
	client *awsdynamodb.Client,
	cfg *config.Config,
	dcfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) (ports.RecencyRepository, error) {
	var inner ports.RecencyRepository
	switch cfg.StorageBackend {
	case "memory":
		inner = memory.NewRecencyRepository(dcfg)
	case "dynamodb":
		inner = dynamodb.NewRecencyRepository(client, cfg.DynamoDBTable, dcfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	retryCfg := persistence.DefaultRetryConfig()
	retryCfg.MaxRetries = cfg.MaxRetries
	retryCfg.InitialDelay = cfg.RetryBaseDelay
	retryCfg.MaxDelay = cfg.RetryMaxDelay

	return persistence.NewRetryRecencyRepository(inner, retryCfg, logger), nil
}

// ProvideMetrics creates the Prometheus collector, or nil when metrics
// are disabled (every call site is nil-safe).
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector("arcana")
}

// ProvideAxisBalancer creates the axis balancing service
func ProvideAxisBalancer(dcfg *domainconfig.DomainConfig) *domainservices.AxisBalancer {
	return domainservices.NewAxisBalancer(dcfg)
}

// ProvideAxisVolatility creates the daily volatility service
func ProvideAxisVolatility(dcfg *domainconfig.DomainConfig, balancer *domainservices.AxisBalancer) *domainservices.AxisVolatility {
	return domainservices.NewAxisVolatility(dcfg, balancer)
}

// ProvideVibeDistributor creates the vibe point distributor
func ProvideVibeDistributor(dcfg *domainconfig.DomainConfig) *domainservices.VibeDistributor {
	return domainservices.NewVibeDistributor(dcfg)
}

// ProvideCardSelector creates the selection pipeline
func ProvideCardSelector(
	cardCatalog ports.CardCatalog,
	recency ports.RecencyRepository,
	dcfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *appservices.CardSelector {
	return appservices.NewCardSelector(cardCatalog, recency, dcfg, logger)
}

// ProvideDailyDrawService creates the draw orchestrator
func ProvideDailyDrawService(
	volatility *domainservices.AxisVolatility,
	distributor *domainservices.VibeDistributor,
	selector *appservices.CardSelector,
	recency ports.RecencyRepository,
	dcfg *domainconfig.DomainConfig,
	logger *zap.Logger,
	metrics *observability.Collector,
) *appservices.DailyDrawService {
	return appservices.NewDailyDrawService(volatility, distributor, selector, recency, dcfg, logger, metrics)
}

// ProvideRecentDrawsHandler creates the draw history query handler
func ProvideRecentDrawsHandler(recency ports.RecencyRepository, logger *zap.Logger) *queries.GetRecentDrawsHandler {
	return queries.NewGetRecentDrawsHandler(recency, logger)
}
