package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Env string

const (
	EnvProd Env = "prod"
	EnvDev  Env = "dev"
)

func (e Env) IsValid() bool {
	switch e {
	case EnvProd, EnvDev:
		return true
	}
	return false
}

type Config struct {
	APIServerHost    string        `env:"API_SERVER_HOST"`
	APIServerPort    string        `env:"API_SERVER_PORT"`
	RedisHost        string        `env:"REDIS_HOST"`
	RedisPort        string        `env:"REDIS_PORT"`
	GoogleAPIKey     string        `env:"GOOGLE_MAPS_API_KEY"`
	PlacesBaseURL    string        `env:"PLACES_BASE_URL" envDefault:"https://maps.googleapis.com/maps/api"`
	GeocodingBaseURL string        `env:"GEOCODING_BASE_URL" envDefault:"https://maps.googleapis.com/maps/api"`
	SearchCacheTTL   time.Duration `env:"SEARCH_CACHE_TTL" envDefault:"30m"`
	DebounceWindow   time.Duration `env:"DEBOUNCE_WINDOW" envDefault:"500ms"`
	Env              Env           `env:"ENV" envDefault:"prod"`
}

func New() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if !cfg.Env.IsValid() {
		return nil, fmt.Errorf("invalid env variable (must be 'prod' or 'dev')")
	}
	if cfg.GoogleAPIKey == "" {
		return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY must be set")
	}
	return &cfg, nil
}
