package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Notifier NotifierConfig `yaml:"notifier"`
	App      AppConfig      `yaml:"app"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	Env            string   `yaml:"env"`
	LogLevel       string   `yaml:"log_level"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type NotifierConfig struct {
	ServiceURL     string        `yaml:"service_url"`
	InternalAPIKey string        `yaml:"internal_api_key"`
	Timeout        time.Duration `yaml:"timeout"`
}

// Role is one selectable role in the form access rules
type Role struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

type AppConfig struct {
	// ProviderTimeout bounds each taxonomy and discovery lookup during
	// schema resolution.
	ProviderTimeout   time.Duration `yaml:"provider_timeout"`
	DiscoveryCacheTTL time.Duration `yaml:"discovery_cache_ttl"`
	// CleanupDays is how long soft-deleted forms are retained before
	// the cleanup job removes them for good.
	CleanupDays    int    `yaml:"cleanup_days"`
	AvailableRoles []Role `yaml:"available_roles"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:     8004,
			Env:      "dev",
			LogLevel: "debug",
			AllowedOrigins: []string{
				"http://localhost:5173",
				"http://localhost:3000",
			},
		},
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
			DB:   0,
		},
		Notifier: NotifierConfig{
			Timeout: 10 * time.Second,
		},
		App: AppConfig{
			ProviderTimeout:   3 * time.Second,
			DiscoveryCacheTTL: 5 * time.Minute,
			CleanupDays:       30,
			AvailableRoles: []Role{
				{Key: "administrator", Label: "Administrator"},
				{Key: "editor", Label: "Editor"},
				{Key: "author", Label: "Author"},
				{Key: "contributor", Label: "Contributor"},
				{Key: "subscriber", Label: "Subscriber"},
			},
		},
	}

	// Load from yaml file if exists
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Override with environment variables
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if env := os.Getenv("ENV"); env != "" {
		cfg.Server.Env = env
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.Server.LogLevel = logLevel
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.Database.URL = dbURL
	}
	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		cfg.Redis.Host = redisHost
	}
	if redisPort := os.Getenv("REDIS_PORT"); redisPort != "" {
		if p, err := strconv.Atoi(redisPort); err == nil {
			cfg.Redis.Port = p
		}
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		cfg.Redis.Password = redisPassword
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if notifierURL := os.Getenv("NOTI_SERVICE_URL"); notifierURL != "" {
		cfg.Notifier.ServiceURL = notifierURL
	}
	if apiKey := os.Getenv("INTERNAL_API_KEY"); apiKey != "" {
		cfg.Notifier.InternalAPIKey = apiKey
	}

	return cfg, nil
}
