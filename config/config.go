package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"

	"github.com/guttosm/offsetcal/internal/busday"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// Example ENV:
//
//	SERVER_PORT=8080
//	STORAGE_ENABLED=true
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=offsetcal
//	CALENDAR_DEFAULT_TZ=America/Sao_Paulo
//	CALENDAR_DEFAULT_HOLIDAYS=B3
//	CALENDAR_WEEKMASK=1111100
type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Storage  StorageConfig
	Calendar CalendarConfig
	Batch    BatchConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string
	RateLimit      int           // requests per client per minute, 0 disables
	RequestTimeout time.Duration // per-request context deadline
}

// PostgresConfig defines connection details for PostgreSQL.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// StorageConfig toggles the PostgreSQL holiday store. When disabled only the
// builtin holiday sources are available and no database is opened.
type StorageConfig struct {
	Enabled bool
}

// CalendarConfig holds the defaults used to build business-day calendars.
type CalendarConfig struct {
	DefaultTZ       string
	WeekMask        string
	HolidayFrom     int
	HolidayTo       int
	DefaultHolidays string
}

// BatchConfig bounds the fan-out of batch offset requests.
type BatchConfig struct {
	MaxParallel int
}

// AppConfig is the globally accessible configuration, populated by LoadConfig.
var AppConfig Config

// LoadConfig initializes AppConfig.
//
// Precedence (lowest to highest): defaults, .env file, environment variables.
// Invalid or missing values terminate the process through validateConfig.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_RATE_LIMIT", 60)
	viper.SetDefault("SERVER_REQUEST_TIMEOUT", "10s")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "offsetcal")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("STORAGE_ENABLED", false)

	viper.SetDefault("CALENDAR_DEFAULT_TZ", "UTC")
	viper.SetDefault("CALENDAR_WEEKMASK", "1111100")
	viper.SetDefault("CALENDAR_HOLIDAY_FROM", 1970)
	viper.SetDefault("CALENDAR_HOLIDAY_TO", 2100)
	viper.SetDefault("CALENDAR_DEFAULT_HOLIDAYS", "NYSE")

	viper.SetDefault("BATCH_MAX_PARALLEL", 8)

	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // no .env is fine

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RateLimit:      viper.GetInt("SERVER_RATE_LIMIT"),
			RequestTimeout: viper.GetDuration("SERVER_REQUEST_TIMEOUT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Storage: StorageConfig{
			Enabled: viper.GetBool("STORAGE_ENABLED"),
		},
		Calendar: CalendarConfig{
			DefaultTZ:       viper.GetString("CALENDAR_DEFAULT_TZ"),
			WeekMask:        viper.GetString("CALENDAR_WEEKMASK"),
			HolidayFrom:     viper.GetInt("CALENDAR_HOLIDAY_FROM"),
			HolidayTo:       viper.GetInt("CALENDAR_HOLIDAY_TO"),
			DefaultHolidays: viper.GetString("CALENDAR_DEFAULT_HOLIDAYS"),
		},
		Batch: BatchConfig{
			MaxParallel: viper.GetInt("BATCH_MAX_PARALLEL"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// problems lists every missing or malformed setting of cfg.
func problems(cfg Config) []string {
	var out []string

	if cfg.Server.Port == "" {
		out = append(out, "SERVER_PORT")
	}
	if cfg.Storage.Enabled {
		if cfg.Postgres.Host == "" {
			out = append(out, "POSTGRES_HOST")
		}
		if cfg.Postgres.Port == 0 {
			out = append(out, "POSTGRES_PORT")
		}
		if cfg.Postgres.User == "" {
			out = append(out, "POSTGRES_USER")
		}
		if cfg.Postgres.Password == "" {
			out = append(out, "POSTGRES_PASSWORD")
		}
		if cfg.Postgres.DBName == "" {
			out = append(out, "POSTGRES_DB")
		}
	}
	if _, err := time.LoadLocation(cfg.Calendar.DefaultTZ); err != nil || cfg.Calendar.DefaultTZ == "" {
		out = append(out, "CALENDAR_DEFAULT_TZ")
	}
	if m, err := busday.ParseWeekMask(cfg.Calendar.WeekMask); err != nil || m.BusDays() == 0 {
		out = append(out, "CALENDAR_WEEKMASK")
	}
	if cfg.Calendar.HolidayFrom < 1 || cfg.Calendar.HolidayTo > 9999 || cfg.Calendar.HolidayFrom > cfg.Calendar.HolidayTo {
		out = append(out, "CALENDAR_HOLIDAY_FROM/CALENDAR_HOLIDAY_TO")
	}
	if cfg.Batch.MaxParallel < 1 {
		out = append(out, "BATCH_MAX_PARALLEL")
	}
	return out
}

// validateConfig terminates the application when AppConfig is unusable.
func validateConfig() {
	if bad := problems(AppConfig); len(bad) > 0 {
		log.Fatalf("❌ Missing or invalid environment variables: %v\n", bad)
	}
}
