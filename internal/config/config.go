// Package config reads settings from the environment, optionally layered over
// a TOML file. Environment variables always win over file values.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

var validEnvs = map[string]bool{
	"local": true,
	"alpha": true,
	"beta":  true,
	"prod":  true,
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	ServerPort      string
	AppEnv          string
	AuthDevMode     bool
	LogLevel        string
	CollationLocale string
	Store           StoreConfig
	DB              DBConfig
	Redis           RedisConfig
	Cognito         CognitoConfig

	parseErrs []error
}

type StoreConfig struct {
	Driver     string
	SQLitePath string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(d.SSLMode)),
	}
	return u.String()
}

// RedisConfig enables the task cache when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type CognitoConfig struct {
	Region          string
	UserPoolID      string
	AppClientID     string
	AppClientSecret string
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) Validate() error {
	if len(c.parseErrs) > 0 {
		return errors.Join(c.parseErrs...)
	}
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.ServerPort, err)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, alpha, beta, prod", c.AppEnv)
	}
	if c.AuthDevMode && c.AppEnv != "local" {
		return fmt.Errorf("AUTH_DEV_MODE must not be enabled in %s environment", c.AppEnv)
	}
	if err := c.ValidateStore(); err != nil {
		return err
	}
	if !c.AuthDevMode {
		if c.Cognito.UserPoolID == "" {
			return errors.New("COGNITO_USER_POOL_ID is required when AUTH_DEV_MODE is disabled")
		}
		if c.Cognito.AppClientID == "" {
			return errors.New("COGNITO_APP_CLIENT_ID is required when AUTH_DEV_MODE is disabled")
		}
	}
	return nil
}

// ValidateStore checks only the settings needed to open the task store. The
// CLI uses it since it signs in without the server's auth settings.
func (c Config) ValidateStore() error {
	if len(c.parseErrs) > 0 {
		return errors.Join(c.parseErrs...)
	}
	switch c.Store.Driver {
	case DriverPostgres:
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required when STORE_DRIVER is sqlite")
		}
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: must be postgres or sqlite", c.Store.Driver)
	}
	return nil
}

// StoreDSN is the data source for the configured driver: a PostgreSQL URL or
// an SQLite path.
func (c Config) StoreDSN() string {
	if c.Store.Driver == DriverSQLite {
		return c.Store.SQLitePath
	}
	return c.DB.DSN()
}

// Load reads the configuration from the environment alone.
func Load() Config {
	return load(envSource(nil))
}

// LoadFile reads path as TOML and fills every key the environment leaves
// unset. A missing file is not an error.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Load(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var f fileConfig
	if err := toml.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return load(envSource(f.values())), nil
}

type source func(key, defaultVal string) string

// envSource looks a key up in the environment, then in file, then falls back
// to the default.
func envSource(file map[string]string) source {
	return func(key, defaultVal string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v := file[key]; v != "" {
			return v
		}
		return defaultVal
	}
}

func load(get source) Config {
	cfg := Config{
		ServerPort:      get("SERVER_PORT", "8080"),
		AppEnv:          get("APP_ENV", "local"),
		AuthDevMode:     strings.EqualFold(get("AUTH_DEV_MODE", "false"), "true"),
		LogLevel:        get("LOG_LEVEL", "info"),
		CollationLocale: get("COLLATION_LOCALE", "en"),
		Store: StoreConfig{
			Driver:     strings.ToLower(get("STORE_DRIVER", DriverPostgres)),
			SQLitePath: get("SQLITE_PATH", "data/taskboard.db"),
		},
		DB: DBConfig{
			Host:     get("DB_HOST", "localhost"),
			Port:     get("DB_PORT", "5432"),
			User:     get("DB_USER", "taskboard"),
			Password: get("DB_PASSWORD", "taskboard"),
			Name:     get("DB_NAME", "taskboard"),
			SSLMode:  get("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     get("REDIS_ADDR", ""),
			Password: get("REDIS_PASSWORD", ""),
		},
		Cognito: CognitoConfig{
			Region:          get("COGNITO_REGION", "ap-northeast-1"),
			UserPoolID:      get("COGNITO_USER_POOL_ID", ""),
			AppClientID:     get("COGNITO_APP_CLIENT_ID", ""),
			AppClientSecret: get("COGNITO_APP_CLIENT_SECRET", ""),
		},
	}

	if db, err := strconv.Atoi(get("REDIS_DB", "0")); err != nil {
		cfg.parseErrs = append(cfg.parseErrs, fmt.Errorf("invalid REDIS_DB: %w", err))
	} else {
		cfg.Redis.DB = db
	}
	if ttl, err := time.ParseDuration(get("CACHE_TTL", "5m")); err != nil {
		cfg.parseErrs = append(cfg.parseErrs, fmt.Errorf("invalid CACHE_TTL: %w", err))
	} else {
		cfg.Redis.TTL = ttl
	}
	return cfg
}

// fileConfig is the TOML layout. Keys mirror the environment variables.
type fileConfig struct {
	ServerPort      string `toml:"server_port"`
	AppEnv          string `toml:"app_env"`
	AuthDevMode     *bool  `toml:"auth_dev_mode"`
	LogLevel        string `toml:"log_level"`
	CollationLocale string `toml:"collation_locale"`
	Store           struct {
		Driver     string `toml:"driver"`
		SQLitePath string `toml:"sqlite_path"`
	} `toml:"store"`
	DB struct {
		Host     string `toml:"host"`
		Port     string `toml:"port"`
		User     string `toml:"user"`
		Password string `toml:"password"`
		Name     string `toml:"name"`
		SSLMode  string `toml:"sslmode"`
	} `toml:"db"`
	Redis struct {
		Addr     string `toml:"addr"`
		Password string `toml:"password"`
		DB       *int   `toml:"db"`
		TTL      string `toml:"ttl"`
	} `toml:"redis"`
	Cognito struct {
		Region          string `toml:"region"`
		UserPoolID      string `toml:"user_pool_id"`
		AppClientID     string `toml:"app_client_id"`
		AppClientSecret string `toml:"app_client_secret"`
	} `toml:"cognito"`
}

func (f fileConfig) values() map[string]string {
	v := map[string]string{
		"SERVER_PORT":               f.ServerPort,
		"APP_ENV":                   f.AppEnv,
		"LOG_LEVEL":                 f.LogLevel,
		"COLLATION_LOCALE":          f.CollationLocale,
		"STORE_DRIVER":              f.Store.Driver,
		"SQLITE_PATH":               f.Store.SQLitePath,
		"DB_HOST":                   f.DB.Host,
		"DB_PORT":                   f.DB.Port,
		"DB_USER":                   f.DB.User,
		"DB_PASSWORD":               f.DB.Password,
		"DB_NAME":                   f.DB.Name,
		"DB_SSLMODE":                f.DB.SSLMode,
		"REDIS_ADDR":                f.Redis.Addr,
		"REDIS_PASSWORD":            f.Redis.Password,
		"CACHE_TTL":                 f.Redis.TTL,
		"COGNITO_REGION":            f.Cognito.Region,
		"COGNITO_USER_POOL_ID":      f.Cognito.UserPoolID,
		"COGNITO_APP_CLIENT_ID":     f.Cognito.AppClientID,
		"COGNITO_APP_CLIENT_SECRET": f.Cognito.AppClientSecret,
	}
	if f.AuthDevMode != nil {
		v["AUTH_DEV_MODE"] = strconv.FormatBool(*f.AuthDevMode)
	}
	if f.Redis.DB != nil {
		v["REDIS_DB"] = strconv.Itoa(*f.Redis.DB)
	}
	return v
}
