package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API          *APIConfig          `mapstructure:"api"`
	Gin          *GinConfig          `mapstructure:"gin"`
	Postgres     *PostgresConfig     `mapstructure:"postgres"`
	Redis        *RedisConfig        `mapstructure:"redis"`
	Storage      *StorageConfig      `mapstructure:"storage"`
	Registration *RegistrationConfig `mapstructure:"registration"`

	mu sync.RWMutex
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
	DefaultPerPage     int           `mapstructure:"default_per_page"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode, c.TimeZone,
	)
}

// RedisConfig leaves caching disabled when Addr is empty.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type StorageConfig struct {
	BasePath        string `mapstructure:"base_path"`
	PublicURL       string `mapstructure:"public_url"`
	ThumbnailWidth  int    `mapstructure:"thumbnail_width"`
	ThumbnailHeight int    `mapstructure:"thumbnail_height"`
}

type RegistrationConfig struct {
	// MaxRetries bounds how often a transaction is replayed after a
	// serialization failure or deadlock.
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
}

// CORSDomains and Timeout are read through accessors since both can change
// while the process runs.
func (c *AppConfig) CORSDomains() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]string(nil), c.API.AllowedCORSDomains...)
}

func (c *AppConfig) Timeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.API.RequestTimeout
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("api.request_timeout", 15*time.Second)
	v.SetDefault("api.default_per_page", 15)

	v.SetDefault("gin.mode", "debug")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.db", "cms")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.timezone", "UTC")
	v.SetDefault("postgres.max_open_conns", 25)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("redis.ttl", 10*time.Minute)

	v.SetDefault("storage.base_path", "./storage")
	v.SetDefault("storage.public_url", "/storage")
	v.SetDefault("storage.thumbnail_width", 400)
	v.SetDefault("storage.thumbnail_height", 300)

	v.SetDefault("registration.max_retries", 3)
	v.SetDefault("registration.retry_backoff", 20*time.Millisecond)
}

// Load reads the YAML file at path, lets environment variables such as
// POSTGRES_HOST override nested keys, and keeps watching the file.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		conf.reload(v, e)
	})
	v.WatchConfig()

	return conf, nil
}

func (c *AppConfig) reload(v *viper.Viper, e fsnotify.Event) {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return
	}

	fresh := &AppConfig{}
	if err := v.Unmarshal(fresh); err != nil {
		zap.L().Warn("config reload skipped", zap.String("file", e.Name), zap.Error(err))
		return
	}

	c.mu.Lock()
	c.API.AllowedCORSDomains = fresh.API.AllowedCORSDomains
	c.API.RequestTimeout = fresh.API.RequestTimeout
	c.mu.Unlock()

	zap.L().Info("config reloaded",
		zap.String("file", e.Name),
		zap.Strings("allowed_cors_domains", fresh.API.AllowedCORSDomains),
		zap.Duration("request_timeout", fresh.API.RequestTimeout),
	)
}
