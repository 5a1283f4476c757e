package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Services ServicesConfig
	Breaker  BreakerConfig
	Elastic  ElasticConfig
	Reindex  ReindexConfig
}

type AppConfig struct {
	Port        string
	Env         string
	LogLevel    string
	CORSOrigins []string
}

// DBConfig describes the relational store owned by a single service.
// Driver is "postgres" in deployments; "sqlite" is accepted for local runs.
type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	TimeZone string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// DSN returns the postgres connection string used by gorm and golang-migrate.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.TimeZone,
	)
}

// MigrateURL is the pgx5:// URL understood by golang-migrate.
func (c DBConfig) MigrateURL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// ServicesConfig holds base URLs of sibling services.
type ServicesConfig struct {
	AccountURL  string
	HospitalURL string
	Timeout     time.Duration
}

type BreakerConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

type ElasticConfig struct {
	Addresses []string
	Username  string
	Password  string
	Index     string
}

type ReindexConfig struct {
	Interval  time.Duration
	BatchSize int
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("ACCOUNT_SERVICE", "http://localhost:8081")
	viper.SetDefault("HOSPITAL_SERVICE", "http://localhost:8082")
	viper.SetDefault("BREAKER_MAX_REQUESTS", 5)
	viper.SetDefault("BREAKER_MIN_REQUESTS", 3)
	viper.SetDefault("BREAKER_FAILURE_RATIO", 0.6)
	viper.SetDefault("ELASTIC_INDEX", "documents")
	viper.SetDefault("REINDEX_BATCH_SIZE", 100)

	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:        viper.GetString("APP_PORT"),
			Env:         viper.GetString("APP_ENV"),
			LogLevel:    viper.GetString("LOG_LEVEL"),
			CORSOrigins: splitList(viper.GetString("CORS_ORIGINS")),
		},
		DB: DBConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			TimeZone: viper.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  durationOr("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: durationOr("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Services: ServicesConfig{
			AccountURL:  strings.TrimRight(viper.GetString("ACCOUNT_SERVICE"), "/"),
			HospitalURL: strings.TrimRight(viper.GetString("HOSPITAL_SERVICE"), "/"),
			Timeout:     durationOr("SERVICE_TIMEOUT", 3*time.Second),
		},
		Breaker: BreakerConfig{
			MaxRequests:  viper.GetUint32("BREAKER_MAX_REQUESTS"),
			Interval:     durationOr("BREAKER_INTERVAL", 30*time.Second),
			Timeout:      durationOr("BREAKER_TIMEOUT", 10*time.Second),
			MinRequests:  viper.GetUint32("BREAKER_MIN_REQUESTS"),
			FailureRatio: viper.GetFloat64("BREAKER_FAILURE_RATIO"),
		},
		Elastic: ElasticConfig{
			Addresses: splitList(viper.GetString("ELASTIC_HOST")),
			Username:  viper.GetString("ELASTIC_USER"),
			Password:  viper.GetString("ELASTIC_PASS"),
			Index:     viper.GetString("ELASTIC_INDEX"),
		},
		Reindex: ReindexConfig{
			Interval:  durationOr("REINDEX_INTERVAL", time.Minute),
			BatchSize: viper.GetInt("REINDEX_BATCH_SIZE"),
		},
	}

	return config, nil
}

func durationOr(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Service names accepted by the serve and migrate commands.
const (
	ServiceAccount   = "account"
	ServiceHospital  = "hospital"
	ServiceTimetable = "timetable"
	ServiceDocument  = "document"
)

var Services = []string{ServiceAccount, ServiceHospital, ServiceTimetable, ServiceDocument}

func IsKnownService(name string) bool {
	for _, s := range Services {
		if s == name {
			return true
		}
	}
	return false
}
