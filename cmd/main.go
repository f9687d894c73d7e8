package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"tastetrail/internal/api"
	"tastetrail/internal/cache"
	"tastetrail/internal/config"
	"tastetrail/internal/favorites"
	"tastetrail/internal/geocoding"
	"tastetrail/internal/places"
	"tastetrail/internal/restaurants"
	"tastetrail/internal/ws"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	conf, err := config.New()
	if err != nil {
		return err
	}

	var loggerOpts slog.HandlerOptions
	if conf.Env == config.EnvDev {
		loggerOpts = slog.HandlerOptions{Level: slog.LevelDebug}
	}

	jsonHandler := slog.NewJSONHandler(os.Stdout, &loggerOpts)
	logger := slog.New(jsonHandler)

	redisClient := redis.NewClient(&redis.Options{Addr: net.JoinHostPort(conf.RedisHost, conf.RedisPort)})

	searchCache := cache.NewStore(redisClient, conf.SearchCacheTTL, logger)
	searchCache.Rehydrate(ctx)

	favoritesStore := favorites.NewStore(redisClient, logger)
	favoritesStore.Load(ctx)

	placesClient := places.NewClient(conf.PlacesBaseURL, conf.GoogleAPIKey)
	geocoder := geocoding.NewClient(conf.GeocodingBaseURL, conf.GoogleAPIKey)

	normalizer := restaurants.NewNormalizer(placesClient, logger)
	service := restaurants.NewService(placesClient, searchCache, normalizer, logger)

	wsManager := ws.NewManager(ctx, logger, service, conf.DebounceWindow)
	go wsManager.Start()

	server := api.NewServer(conf, service, geocoder, favoritesStore, wsManager, logger)
	if err := server.Start(ctx); err != nil {
		return err
	}

	return nil
}
