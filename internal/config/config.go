package config

import (
	"time"

	"github.com/spf13/viper"
)

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Mongo
		Auth
		Sync
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		Env                      Environment
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Driver string // "mysql" or "sqlite"
		DSN    string // MySQL DSN, e.g. user:pass@tcp(host:3306)/plataforma?parseTime=true
		Path   string // sqlite file path
	}

	Mongo struct {
		URI            string
		Database       string
		ConnectTimeout time.Duration
	}

	Auth struct {
		JWTSecret   string
		TokenExpiry time.Duration
		BcryptCost  int
	}

	Sync struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
)

// IsProduction reports whether the app runs with production hardening
// (store diagnostics stripped from error responses).
func (g Global) IsProduction() bool {
	return g.Env == EnvProduction
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3030)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("env", "development")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	// Relational store defaults
	v.SetDefault("database_driver", "sqlite")
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_path", DefaultDatabasePath)

	// Document store defaults
	v.SetDefault("mongo_uri", DefaultMongoURI)
	v.SetDefault("mongo_database", "plataforma")
	v.SetDefault("mongo_connect_timeout", "10s")

	// Auth defaults
	v.SetDefault("jwt_key", "")
	v.SetDefault("auth_token_expiry", "2h")
	v.SetDefault("auth_bcrypt_cost", 10)

	// Scheduled re-sync defaults
	v.SetDefault("sync_enabled", false)
	v.SetDefault("sync_schedule", "0 3 * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			Env:                      Environment(v.GetString("ENV")),
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver: v.GetString("DATABASE_DRIVER"),
			DSN:    v.GetString("DATABASE_DSN"),
			Path:   v.GetString("DATABASE_PATH"),
		},
		Mongo: Mongo{
			URI:            v.GetString("MONGO_URI"),
			Database:       v.GetString("MONGO_DATABASE"),
			ConnectTimeout: v.GetDuration("MONGO_CONNECT_TIMEOUT"),
		},
		Auth: Auth{
			JWTSecret:   v.GetString("JWT_KEY"),
			TokenExpiry: v.GetDuration("AUTH_TOKEN_EXPIRY"),
			BcryptCost:  v.GetInt("AUTH_BCRYPT_COST"),
		},
		Sync: Sync{
			Enabled:  v.GetBool("SYNC_ENABLED"),
			Schedule: v.GetString("SYNC_SCHEDULE"),
		},
	}
}
