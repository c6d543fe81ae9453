package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Поддерживаемые хранилища инцидентов
const (
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Хранилище инцидентов
	StoreBackend string `env:"STORE_BACKEND" envDefault:"redis"`
	DatabaseURL  string `env:"DATABASE_URL"`

	// Redis Config
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass      string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"sos"`
	NotifyChannel  string `env:"NOTIFY_CHANNEL" envDefault:"sos:changed"`

	// Голосовой ассистент
	WakeWord         string `env:"WAKE_WORD" envDefault:"jack"`
	SpeechLocale     string `env:"SPEECH_LOCALE" envDefault:"en-US"`
	AltSpeechLocale  string `env:"ALT_SPEECH_LOCALE" envDefault:"ta-IN"`
	TranscriptBuffer int    `env:"TRANSCRIPT_BUFFER" envDefault:"16"`

	// Таймеры
	StationRefreshInterval time.Duration `env:"STATION_REFRESH_INTERVAL" envDefault:"3m"`
	SirenInterval          time.Duration `env:"SIREN_INTERVAL" envDefault:"30s"`

	// Внешние сервисы
	NominatimURL        string        `env:"NOMINATIM_URL" envDefault:"https://nominatim.openstreetmap.org"`
	OverpassURL         string        `env:"OVERPASS_URL" envDefault:"https://overpass-api.de/api/interpreter"`
	OSRMURL             string        `env:"OSRM_URL" envDefault:"https://router.project-osrm.org"`
	ORSURL              string        `env:"ORS_URL" envDefault:"https://api.openrouteservice.org"`
	ORSAPIKey           string        `env:"ORS_API_KEY"`
	WeatherURL          string        `env:"WEATHER_URL" envDefault:"https://api.open-meteo.com"`
	HTTPClientTimeout   time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"10s"`
	UserAgent           string        `env:"USER_AGENT" envDefault:"jack-navigator/1.0"`
	AmenityRadiusMeters int           `env:"AMENITY_RADIUS_METERS" envDefault:"5000"`
	AmenityLimit        int           `env:"AMENITY_LIMIT" envDefault:"5"`
	StationSearchDelta  float64       `env:"STATION_SEARCH_DELTA" envDefault:"0.05"`

	// SOS Webhook Config
	SOSMessage        string        `env:"SOS_MESSAGE" envDefault:"I need help!"`
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		StoreBackend:           strings.ToLower(getEnv("STORE_BACKEND", StoreRedis)),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		RedisKeyPrefix:         getEnv("REDIS_KEY_PREFIX", "sos"),
		NotifyChannel:          getEnv("NOTIFY_CHANNEL", "sos:changed"),
		WakeWord:               getEnv("WAKE_WORD", "jack"),
		SpeechLocale:           getEnv("SPEECH_LOCALE", "en-US"),
		AltSpeechLocale:        getEnv("ALT_SPEECH_LOCALE", "ta-IN"),
		TranscriptBuffer:       getEnvAsInt("TRANSCRIPT_BUFFER", 16),
		StationRefreshInterval: getEnvAsDuration("STATION_REFRESH_INTERVAL", 3*time.Minute),
		SirenInterval:          getEnvAsDuration("SIREN_INTERVAL", 30*time.Second),
		NominatimURL:           getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		OverpassURL:            getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		OSRMURL:                getEnv("OSRM_URL", "https://router.project-osrm.org"),
		ORSURL:                 getEnv("ORS_URL", "https://api.openrouteservice.org"),
		ORSAPIKey:              os.Getenv("ORS_API_KEY"),
		WeatherURL:             getEnv("WEATHER_URL", "https://api.open-meteo.com"),
		HTTPClientTimeout:      getEnvAsDuration("HTTP_CLIENT_TIMEOUT", 10*time.Second),
		UserAgent:              getEnv("USER_AGENT", "jack-navigator/1.0"),
		AmenityRadiusMeters:    getEnvAsInt("AMENITY_RADIUS_METERS", 5000),
		AmenityLimit:           getEnvAsInt("AMENITY_LIMIT", 5),
		StationSearchDelta:     getEnvAsFloat("STATION_SEARCH_DELTA", 0.05),
		SOSMessage:             getEnv("SOS_MESSAGE", "I need help!"),
		WebhookURL:             os.Getenv("WEBHOOK_URL"),
		WebhookSecret:          os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:         getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:      getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:       getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreRedis:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for %s store", StorePostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.StationRefreshInterval <= 0 {
		return fmt.Errorf("STATION_REFRESH_INTERVAL must be positive")
	}
	if c.SirenInterval <= 0 {
		return fmt.Errorf("SIREN_INTERVAL must be positive")
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
