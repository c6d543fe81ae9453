// Command jack - консольный голосовой ассистент: фразы читаются из stdin
// вместо распознавания речи, ответы печатаются вместо синтеза.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shenikar/jack_navigator/internal/app"
	"github.com/shenikar/jack_navigator/internal/config"
	"github.com/shenikar/jack_navigator/internal/dispatch"
	"github.com/shenikar/jack_navigator/internal/models"
	"github.com/shenikar/jack_navigator/pkg/logger"
	redisclient "github.com/shenikar/jack_navigator/pkg/redis"
)

func main() {
	lat := flag.Float64("lat", 0, "Initial latitude")
	lng := flag.Float64("lng", 0, "Initial longitude")
	wake := flag.String("wake", "", "Wake word (default from WAKE_WORD)")
	logLevel := flag.String("log-level", "warn", "Log level")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *wake != "" {
		cfg.WakeWord = *wake
	}
	log := logger.NewWithOutput(*logLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := redisclient.NewRedisClient(ctx, redisclient.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	incidentRepo, closeStore, err := app.OpenIncidentStore(ctx, cfg, redisClient, log)
	if err != nil {
		log.Fatalf("Failed to open incident store: %v", err)
	}
	defer closeStore()

	geo := app.NewGeoClients(cfg)
	// инциденты из консоли видны дашборду сервера через общий канал и очередь тревог
	incidentService, _ := app.NewTracker(cfg, log, incidentRepo, redisClient, geo.Nominatim)

	session := dispatch.NewSession(cfg.SpeechLocale, cfg.AltSpeechLocale)
	if pos, ok := initialPosition(flag.CommandLine, *lat, *lng); ok {
		session.SetPosition(pos)
	}
	dispatcher := dispatch.NewDispatcher(session, dispatch.Collaborators{
		Geocoder:      geo.Nominatim,
		Router:        geo.OSRM,
		TrafficRouter: geo.Traffic,
		Amenities:     geo.Overpass,
		Incidents:     incidentService,
		Speaker:       consoleSpeaker{out: os.Stdout},
	}, cfg, log)

	fmt.Printf("Say %q followed by a command. Type :help for console commands.\n", cfg.WakeWord)
	r := &repl{assistant: dispatcher, incidents: incidentService, out: os.Stdout}
	if err := r.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		log.WithError(err).Error("Console stopped with error")
		os.Exit(1)
	}
}

// initialPosition возвращает стартовую позицию, если -lat или -lng заданы явно;
// "-lat 0 -lng 0" - допустимая точка, а не отсутствие позиции
func initialPosition(fs *flag.FlagSet, lat, lng float64) (models.Coordinates, bool) {
	given := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "lat" || f.Name == "lng" {
			given = true
		}
	})
	return models.Coordinates{Lat: lat, Lng: lng}, given
}
