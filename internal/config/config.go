package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/autoshop/garage-booking/internal/domain"
	"github.com/autoshop/garage-booking/pkg/types"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("invalid config")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Shop      ShopConfig      `toml:"shop"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Admin     AdminConfig     `toml:"admin"`
	Catalog   CatalogConfig   `toml:"catalog"`
	Services  []ServiceConfig `toml:"services"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды
	IdleTimeout     int `toml:"idle_timeout"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"`
	// Пустой список отключает CORS
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
	// Доверять X-Forwarded-For/X-Real-IP (только за своим reverse proxy)
	TrustProxyHeaders bool `toml:"trust_proxy_headers"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Address  string `toml:"address"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type ShopConfig struct {
	Timezone             string   `toml:"timezone"`
	OpeningTime          string   `toml:"opening_time"`
	ClosingTime          string   `toml:"closing_time"`
	ClosedWeekdays       []string `toml:"closed_weekdays"`
	SimultaneousBookings int      `toml:"simultaneous_bookings"`
	LockTTLSeconds       int      `toml:"lock_ttl_seconds"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerMinute float64 `toml:"requests_per_minute"`
	Burst             int     `toml:"burst"`
}

type AdminConfig struct {
	Token string `toml:"token"`
}

type CatalogConfig struct {
	Strict                 bool `toml:"strict"`
	DefaultDurationMinutes int  `toml:"default_duration_minutes"`
}

type ServiceConfig struct {
	Key             string `toml:"key"`
	Name            string `toml:"name"`
	DurationMinutes int    `toml:"duration_minutes"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Load читает .env (если есть), затем TOML-файл, применяет переменные окружения и проверяет результат
func Load(path string) (*Config, error) {
	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{ServiceName: "garage_booking", Path: "/metrics"},
		Shop: ShopConfig{
			Timezone:             "America/Los_Angeles",
			OpeningTime:          string(domain.DefaultOpeningTime),
			ClosingTime:          string(domain.DefaultClosingTime),
			ClosedWeekdays:       []string{"sunday"},
			SimultaneousBookings: domain.DefaultSimultaneousBookings,
			LockTTLSeconds:       10,
		},
		RateLimit: RateLimitConfig{RequestsPerMinute: 10, Burst: 5},
		Catalog: CatalogConfig{
			Strict:                 true,
			DefaultDurationMinutes: domain.DefaultServiceDurationMinutes,
		},
	}
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("DB_PASSWORD"); ok {
		c.Database.Password = v
	}
	if v, ok := os.LookupEnv("ADMIN_TOKEN"); ok {
		c.Admin.Token = v
	}
	if v, ok := os.LookupEnv("REDIS_PASSWORD"); ok {
		c.Redis.Password = v
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Address == "" {
		return fmt.Errorf("%w: redis.address is required when redis is enabled", ErrInvalidConfig)
	}
	if c.Admin.Token == "" {
		return fmt.Errorf("%w: admin.token (or ADMIN_TOKEN) is required", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit values must be positive", ErrInvalidConfig)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.ShopDefaults(); err != nil {
		return err
	}

	if len(c.Services) == 0 {
		return fmt.Errorf("%w: at least one [[services]] entry is required", ErrInvalidConfig)
	}
	if c.Catalog.DefaultDurationMinutes <= 0 {
		return fmt.Errorf("%w: catalog.default_duration_minutes must be positive", ErrInvalidConfig)
	}
	return nil
}

// Location часовой пояс мастерской
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Shop.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: shop.timezone %q: %v", ErrInvalidConfig, c.Shop.Timezone, err)
	}
	return loc, nil
}

// ShopDefaults часы работы по умолчанию для дат без переопределения
func (c *Config) ShopDefaults() (domain.ShopDefaults, error) {
	opening, err := types.NewTimeStringFromString(c.Shop.OpeningTime)
	if err != nil {
		return domain.ShopDefaults{}, fmt.Errorf("%w: shop.opening_time: %v", ErrInvalidConfig, err)
	}
	closing, err := types.NewTimeStringFromString(c.Shop.ClosingTime)
	if err != nil {
		return domain.ShopDefaults{}, fmt.Errorf("%w: shop.closing_time: %v", ErrInvalidConfig, err)
	}
	if !closing.IsAfter(opening) {
		return domain.ShopDefaults{}, fmt.Errorf("%w: shop.closing_time must be after opening_time", ErrInvalidConfig)
	}

	if c.Shop.SimultaneousBookings < domain.MinSimultaneousBookings ||
		c.Shop.SimultaneousBookings > domain.MaxSimultaneousBookings {
		return domain.ShopDefaults{}, fmt.Errorf("%w: shop.simultaneous_bookings must be between %d and %d",
			ErrInvalidConfig, domain.MinSimultaneousBookings, domain.MaxSimultaneousBookings)
	}

	closed := make([]time.Weekday, 0, len(c.Shop.ClosedWeekdays))
	for _, name := range c.Shop.ClosedWeekdays {
		day, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return domain.ShopDefaults{}, fmt.Errorf("%w: unknown weekday %q", ErrInvalidConfig, name)
		}
		closed = append(closed, day)
	}

	return domain.ShopDefaults{
		OpeningTime:          opening,
		ClosingTime:          closing,
		ClosedWeekdays:       closed,
		SimultaneousBookings: c.Shop.SimultaneousBookings,
	}, nil
}

// LockTTL время жизни блокировки даты
func (c *Config) LockTTL() time.Duration {
	return time.Duration(c.Shop.LockTTLSeconds) * time.Second
}
