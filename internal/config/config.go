package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

const defaultSourceURL = "https://data.grandpoitiers.fr/data-fair/api/v1/datasets/mobilites-stationnement-des-parkings-en-temps-reel/lines"

type Config struct {
	Server  ServerConfig
	Source  SourceConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Nearby  NearbyConfig
	Log     LogConfig
	Worker  WorkerConfig
	Metrics MetricsConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// SourceConfig - настройки внешнего источника данных о парковках
type SourceConfig struct {
	URL            string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	Enabled     bool
	ParkingsTTL time.Duration
}

type NearbyConfig struct {
	DefaultRadiusKm float64
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled         bool
	RefreshInterval time.Duration
	MetricsPort     int // listener /metrics процесса воркера
}

type MetricsConfig struct {
	Enabled bool
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit env file path. A missing file is not an error.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Source: SourceConfig{
			URL:            v.GetString("PARKING_SOURCE_URL"),
			ConnectTimeout: time.Duration(v.GetInt("PARKING_SOURCE_CONNECT_TIMEOUT")) * time.Second,
			ReadTimeout:    time.Duration(v.GetInt("PARKING_SOURCE_READ_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Enabled:     v.GetBool("CACHE_ENABLED"),
			ParkingsTTL: time.Duration(v.GetInt("PARKINGS_CACHE_TTL")) * time.Second,
		},
		Nearby: NearbyConfig{
			DefaultRadiusKm: v.GetFloat64("NEARBY_DEFAULT_RADIUS_KM"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:         v.GetBool("WORKER_ENABLED"),
			RefreshInterval: time.Duration(v.GetInt("WORKER_REFRESH_INTERVAL")) * time.Second,
			MetricsPort:     v.GetInt("WORKER_METRICS_PORT"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("PARKING_SOURCE_URL", defaultSourceURL)
	v.SetDefault("PARKING_SOURCE_CONNECT_TIMEOUT", 10)
	v.SetDefault("PARKING_SOURCE_READ_TIMEOUT", 10)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("CACHE_ENABLED", true)
	v.SetDefault("PARKINGS_CACHE_TTL", 60)

	v.SetDefault("NEARBY_DEFAULT_RADIUS_KM", 5.0)

	v.SetDefault("WORKER_ENABLED", false)
	v.SetDefault("WORKER_REFRESH_INTERVAL", 60)
	v.SetDefault("WORKER_METRICS_PORT", 9091)

	v.SetDefault("METRICS_ENABLED", true)
}

func (c *Config) validate() error {
	if c.Source.URL == "" {
		return fmt.Errorf("PARKING_SOURCE_URL must not be empty")
	}
	if c.Source.ConnectTimeout <= 0 || c.Source.ReadTimeout <= 0 {
		return fmt.Errorf("parking source timeouts must be positive")
	}
	if c.Nearby.DefaultRadiusKm <= 0 {
		return fmt.Errorf("NEARBY_DEFAULT_RADIUS_KM must be positive, got %v", c.Nearby.DefaultRadiusKm)
	}
	if c.Worker.Enabled && c.Worker.RefreshInterval <= 0 {
		return fmt.Errorf("WORKER_REFRESH_INTERVAL must be positive when the worker is enabled")
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetWorkerMetricsAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Worker.MetricsPort)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
