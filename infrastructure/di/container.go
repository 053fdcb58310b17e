package di

import (
	"arcana-backend/application/ports"
	"arcana-backend/application/queries"
	appservices "arcana-backend/application/services"
	domainconfig "arcana-backend/domain/config"
	domainservices "arcana-backend/domain/services"
	"arcana-backend/infrastructure/config"
	"arcana-backend/pkg/observability"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config             *config.Config
	DomainConfig       *domainconfig.DomainConfig
	Logger             *zap.Logger
	Catalog            ports.CardCatalog
	RecencyRepo        ports.RecencyRepository
	Balancer           *domainservices.AxisBalancer
	Volatility         *domainservices.AxisVolatility
	Distributor        *domainservices.VibeDistributor
	Selector           *appservices.CardSelector
	DrawService        *appservices.DailyDrawService
	RecentDrawsHandler *queries.GetRecentDrawsHandler
	Metrics            *observability.Collector
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideDomainConfig,
	ProvideCardCatalog,
	ProvideRecencyRepository,
	ProvideMetrics,
	ProvideAxisBalancer,
	ProvideAxisVolatility,
	ProvideVibeDistributor,
	ProvideCardSelector,
	ProvideDailyDrawService,
	ProvideRecentDrawsHandler,
	wire.Struct(new(Container), "*"),
)
