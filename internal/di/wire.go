//go:build wireinject
// +build wireinject

package di

import (
	"RegimeScope/pkg/config"
	"RegimeScope/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Repositories
		ProvideMarketData,
		ProvideStorage,
		ProvidePublisher,

		// Use cases and HTTP
		ProvidePipeline,
		ProvideReportHandler,

		// Application
		ProvideApp,
	)
	return &server.App{}, nil
}
