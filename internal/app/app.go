// Package app собирает зависимости, общие для HTTP-сервера и консольного ассистента.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/jack_navigator/internal/alert"
	"github.com/shenikar/jack_navigator/internal/config"
	"github.com/shenikar/jack_navigator/internal/navigation"
	"github.com/shenikar/jack_navigator/internal/notify"
	"github.com/shenikar/jack_navigator/internal/repository"
	"github.com/shenikar/jack_navigator/internal/service"
	"github.com/shenikar/jack_navigator/pkg/postgres"
	"github.com/sirupsen/logrus"
)

// GeoClients - клиенты внешних гео-сервисов
type GeoClients struct {
	Nominatim *navigation.NominatimClient
	Overpass  *navigation.OverpassClient
	OSRM      *navigation.OSRMClient
	ORS       *navigation.ORSClient
	Traffic   *navigation.TrafficRouter
	Weather   *navigation.OpenMeteoClient
}

func NewGeoClients(cfg *config.Config) *GeoClients {
	osrm := navigation.NewOSRMClient(cfg.OSRMURL, cfg.UserAgent, cfg.HTTPClientTimeout)
	ors := navigation.NewORSClient(cfg.ORSURL, cfg.ORSAPIKey, cfg.UserAgent, cfg.HTTPClientTimeout)
	return &GeoClients{
		Nominatim: navigation.NewNominatimClient(cfg.NominatimURL, cfg.UserAgent, cfg.HTTPClientTimeout, cfg.StationSearchDelta),
		Overpass:  navigation.NewOverpassClient(cfg.OverpassURL, cfg.UserAgent, cfg.HTTPClientTimeout, cfg.AmenityLimit),
		OSRM:      osrm,
		ORS:       ors,
		Traffic:   navigation.NewTrafficRouter(ors, osrm),
		Weather:   navigation.NewOpenMeteoClient(cfg.WeatherURL, cfg.UserAgent, cfg.HTTPClientTimeout),
	}
}

// OpenIncidentStore открывает хранилище инцидентов выбранного бэкенда.
// closeFn освобождает соединения, которые открыло само хранилище.
func OpenIncidentStore(ctx context.Context, cfg *config.Config, redisClient *redis.Client, logger *logrus.Logger) (repo service.IncidentRepository, closeFn func(), err error) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return repository.NewIncidentRepository(dbpool), dbpool.Close, nil
	case config.StoreRedis:
		return repository.NewRedisIncidentRepository(redisClient, cfg.RedisKeyPrefix, logger), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// NewTracker собирает трекер инцидентов: уведомления идут в канал Redis, тревоги - в очередь вебхуков
func NewTracker(cfg *config.Config, logger *logrus.Logger, repo service.IncidentRepository, redisClient *redis.Client, locator service.StationLocator) (service.IncidentService, *notify.RedisNotifier) {
	notifier := notify.NewRedisNotifier(redisClient, cfg.NotifyChannel, logger)
	tracker := service.NewIncidentService(
		repo, logger, cfg,
		notifier,
		locator,
		alert.NewRedisPublisher(redisClient, cfg.RedisKeyPrefix),
	)
	return tracker, notifier
}
