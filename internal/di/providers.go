package di

import (
	"fmt"

	"Sternentyp/internal/domain/repository"
	"Sternentyp/internal/handler/api"
	"Sternentyp/internal/service/ephemeris"
	"Sternentyp/internal/service/geocode"
	"Sternentyp/internal/service/timezone"
	"Sternentyp/internal/usecase"
	"Sternentyp/pkg/cache"
	"Sternentyp/pkg/config"
	xhttp "Sternentyp/pkg/http"
	"Sternentyp/pkg/logger"
	"Sternentyp/pkg/metrics"
	"Sternentyp/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return logger.New(&logger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideGeocodeCache builds the geocode result cache: memory only by
// default, memory in front of Redis when Redis is configured.
func ProvideGeocodeCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Geocoder.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}
	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Geocoder.Redis.Host),
		cache.WithRedisPort(cfg.Geocoder.Redis.Port),
		cache.WithRedisPassword(cfg.Geocoder.Redis.Password),
		cache.WithRedisDB(cfg.Geocoder.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("geocode cache: %w", err)
	}
	return cache.NewLayeredCache(redisCache), nil
}

// ProvideEphemeris creates the ephemeris sidecar client.
func ProvideEphemeris(cfg *config.Config) repository.Ephemeris {
	return ephemeris.NewClient(cfg)
}

// ProvideGeocoder creates the Nominatim geocoder.
func ProvideGeocoder(cfg *config.Config, c cache.Service, m repository.Metrics, l *logger.Logger) repository.Geocoder {
	return geocode.NewNominatimClient(cfg, c, m, l)
}

// ProvideTimezoneResolver loads the embedded timezone boundary index.
func ProvideTimezoneResolver() (repository.TimezoneResolver, error) {
	return timezone.NewResolver()
}

// ProvideChartBuilder creates the chart builder use case.
func ProvideChartBuilder(
	cfg *config.Config,
	eph repository.Ephemeris,
	geo repository.Geocoder,
	tz repository.TimezoneResolver,
	m repository.Metrics,
	l *logger.Logger,
) *usecase.ChartBuilder {
	return usecase.NewChartBuilder(cfg, eph, geo, tz, m, l)
}

// ProvideTransitScanner creates the transit sweep use case.
func ProvideTransitScanner(
	cfg *config.Config,
	builder *usecase.ChartBuilder,
	eph repository.Ephemeris,
	m repository.Metrics,
	l *logger.Logger,
) *usecase.TransitScanner {
	return usecase.NewTransitScanner(cfg, builder, eph, m, l)
}

// ProvideRelationshipAnalyzer creates the synastry/composite use case.
func ProvideRelationshipAnalyzer(builder *usecase.ChartBuilder, m repository.Metrics, l *logger.Logger) *usecase.RelationshipAnalyzer {
	return usecase.NewRelationshipAnalyzer(builder, m, l)
}

// ProvideSkyWatcher creates the live sky sampler.
func ProvideSkyWatcher(cfg *config.Config, eph repository.Ephemeris) *usecase.SkyWatcher {
	return usecase.NewSkyWatcher(cfg, eph)
}

// ProvideSkyStreamHandler creates the WebSocket stream handler.
func ProvideSkyStreamHandler(cfg *config.Config, l *logger.Logger, watcher *usecase.SkyWatcher) *api.SkyStreamHandler {
	return api.NewSkyStreamHandler(l, watcher, cfg.Stream.Interval, cfg.Stream.PingInterval)
}

// ProvideHTTPHandler creates the Echo route handler.
func ProvideHTTPHandler(
	l *logger.Logger,
	builder *usecase.ChartBuilder,
	scanner *usecase.TransitScanner,
	analyzer *usecase.RelationshipAnalyzer,
	stream *api.SkyStreamHandler,
) xhttp.Handler {
	return api.NewChartHandler(l, builder, scanner, analyzer, stream)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, handler xhttp.Handler, geocodeCache cache.Service) *server.App {
	app := server.New(cfg, handler)
	if closer, ok := geocodeCache.(interface{ Close() error }); ok {
		app.AddCloser(closer)
	}
	return app
}
