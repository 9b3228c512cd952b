//go:build wireinject
// +build wireinject

package di

import (
	"Sternentyp/pkg/config"
	"Sternentyp/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideGeocodeCache,
		ProvideEphemeris,
		ProvideGeocoder,
		ProvideTimezoneResolver,

		// Use cases
		ProvideChartBuilder,
		ProvideTransitScanner,
		ProvideRelationshipAnalyzer,
		ProvideSkyWatcher,

		// HTTP layer
		ProvideSkyStreamHandler,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
