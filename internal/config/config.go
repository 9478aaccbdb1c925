package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	DefaultAddr = ":3004"
)

type Config struct {
	HTTP  HTTP
	Store Store
	Log   Log
}

type HTTP struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

type Store struct {
	Driver          string
	DatabaseURL     string
	SQLitePath      string
	AutoMigrate     bool
	ConnectAttempts int
}

type Log struct {
	Level  string
	Format string
}

// New returns a viper instance with defaults and environment bindings.
// Environment variables use the TODO_LISTS_ prefix (TODO_LISTS_STORE_DRIVER);
// PORT and DB_URL are honoured as well.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("http.read_header_timeout", 5*time.Second)
	v.SetDefault("http.shutdown_timeout", 5*time.Second)
	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("store.sqlite_path", "todo-lists.db")
	v.SetDefault("store.auto_migrate", true)
	v.SetDefault("store.connect_attempts", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvPrefix("TODO_LISTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("http.addr", "TODO_LISTS_HTTP_ADDR")
	_ = v.BindEnv("http.port", "TODO_LISTS_HTTP_PORT", "PORT")
	_ = v.BindEnv("store.database_url", "TODO_LISTS_STORE_DATABASE_URL", "DB_URL")

	return v
}

// ReadFiles loads envFile (if it exists) into the process environment and
// then reads configFile. An empty configFile looks for todo-lists.{yaml,json,toml}
// in the working directory and is fine if none exists.
func ReadFiles(v *viper.Viper, envFile, configFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", configFile, err)
		}
		return nil
	}

	v.SetConfigName("todo-lists")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		HTTP: HTTP{
			Addr:              v.GetString("http.addr"),
			ReadHeaderTimeout: v.GetDuration("http.read_header_timeout"),
			ShutdownTimeout:   v.GetDuration("http.shutdown_timeout"),
		},
		Store: Store{
			Driver:          strings.ToLower(strings.TrimSpace(v.GetString("store.driver"))),
			DatabaseURL:     v.GetString("store.database_url"),
			SQLitePath:      v.GetString("store.sqlite_path"),
			AutoMigrate:     v.GetBool("store.auto_migrate"),
			ConnectAttempts: v.GetInt("store.connect_attempts"),
		},
		Log: Log{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = DefaultAddr
		if port := v.GetString("http.port"); port != "" {
			cfg.HTTP.Addr = ":" + port
		}
	}

	switch cfg.Store.Driver {
	case DriverMemory:
	case DriverPostgres:
		if cfg.Store.DatabaseURL == "" {
			return Config{}, errors.New("store.database_url (DB_URL) is required for the postgres driver")
		}
	case DriverSQLite:
		if cfg.Store.SQLitePath == "" {
			return Config{}, errors.New("store.sqlite_path is required for the sqlite driver")
		}
	default:
		return Config{}, fmt.Errorf("unknown store driver %q (want memory, postgres or sqlite)", cfg.Store.Driver)
	}

	if cfg.Store.ConnectAttempts < 1 {
		cfg.Store.ConnectAttempts = 1
	}
	return cfg, nil
}
