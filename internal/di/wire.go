//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"PriceCast/pkg/config"
	"PriceCast/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,
		ProvideEndpointMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideReportCache,
		ProvideRateLimiter,

		// Repositories
		ProvideCatalog,
		ProvideSourceFactory,
		ProvideReportPublisher,

		// Use cases
		ProvideReportBuilder,
		ProvideReportWarmer,

		// Transport and application
		ProvideReportsHandler,
		ProvideHTTPServer,
		ProvideApp,
	)
	return nil, nil, nil
}
