package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       *DBconfig
	RabbitMq *RabbitMqconfig
	Srv      *Serviceconfig
	Search   *Searchconfig
	Geocoder *Geocoderconfig
	App      *Appconfig
	Log      *Loggerconfig
}

type DBconfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	Database   string
	MaxRetries int
}

type RabbitMqconfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type Serviceconfig struct {
	JourneyServicePort  string
	TrackingServicePort string
	MetricsAddr         string
}

// Searchconfig holds the tuning knobs the matching results are directly
// sensitive to. Defaults match the thresholds the route data was tuned
// against; change them together, not one at a time.
type Searchconfig struct {
	NearThresholdMeters     float64       // single-vehicle "near a stop" radius
	TransferThresholdMeters float64       // tighter radius for cross-vehicle transfers
	MaxQueuedStates         int           // BFS state budget before giving up
	MaxHops                 int           // max vehicle boardings per journey
	RequestTimeout          time.Duration // wall clock deadline per search request
	CacheTTL                time.Duration
	MaxRoutePoints          int // per-vehicle trajectory history cap
}

type Geocoderconfig struct {
	BaseURL     string
	Timeout     time.Duration
	Workers     int
	Placeholder string
}

type Appconfig struct {
	PublicJwtSecret string
}

type Loggerconfig struct {
	Level string
}

func New() (*Config, error) {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	getEnv := func(key, def string) string {
		val := os.Getenv(key)
		if val == "" {
			return def
		}
		return val
	}

	getEnvInt := func(key string, def int) int {
		valStr := os.Getenv(key)
		if valStr == "" {
			return def
		}
		val, err := strconv.Atoi(valStr)
		if err != nil {
			return def
		}
		return val
	}

	getEnvFloat := func(key string, def float64) float64 {
		valStr := os.Getenv(key)
		if valStr == "" {
			return def
		}
		val, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return def
		}
		return val
	}

	getEnvDuration := func(key string, def time.Duration) time.Duration {
		valStr := os.Getenv(key)
		if valStr == "" {
			return def
		}
		val, err := time.ParseDuration(valStr)
		if err != nil {
			return def
		}
		return val
	}

	cnf := &Config{
		DB: &DBconfig{
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnvInt("DB_PORT", 5432),
			User:       getEnv("DB_USER", "bustrack_user"),
			Password:   getEnv("DB_PASSWORD", "bustrack_pass"),
			Database:   getEnv("DB_NAME", "bustrack_db"),
			MaxRetries: getEnvInt("DB_MAX_RETRIES", 5),
		},
		RabbitMq: &RabbitMqconfig{
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getEnvInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
			VHost:    getEnv("RABBITMQ_VHOST", ""),
		},
		Srv: &Serviceconfig{
			JourneyServicePort:  getEnv("JOURNEY_SERVICE_PORT", "3000"),
			TrackingServicePort: getEnv("TRACKING_SERVICE_PORT", "3001"),
			MetricsAddr:         getEnv("METRICS_ADDR", ""),
		},
		Search: &Searchconfig{
			NearThresholdMeters:     getEnvFloat("NEAR_THRESHOLD_METERS", 1000),
			TransferThresholdMeters: getEnvFloat("TRANSFER_THRESHOLD_METERS", 500),
			MaxQueuedStates:         getEnvInt("SEARCH_MAX_STATES", 10000),
			MaxHops:                 getEnvInt("SEARCH_MAX_HOPS", 6),
			RequestTimeout:          getEnvDuration("SEARCH_REQUEST_TIMEOUT", 10*time.Second),
			CacheTTL:                getEnvDuration("SEARCH_CACHE_TTL", time.Hour),
			MaxRoutePoints:          getEnvInt("MAX_ROUTE_POINTS", 100),
		},
		Geocoder: &Geocoderconfig{
			BaseURL:     getEnv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
			Timeout:     getEnvDuration("GEOCODER_TIMEOUT", 3*time.Second),
			Workers:     getEnvInt("GEOCODER_WORKERS", 4),
			Placeholder: getEnv("GEOCODER_PLACEHOLDER", "Unknown location"),
		},
		App: &Appconfig{
			PublicJwtSecret: getEnv("PUBLIC_JWT_SECRET", "dev-secret-change-me"),
		},
		Log: &Loggerconfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
		},
	}

	return cnf, nil
}
