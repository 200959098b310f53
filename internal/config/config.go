package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSupabase = "supabase"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Store     StoreConfig     `mapstructure:"store"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Supabase  SupabaseConfig  `mapstructure:"supabase"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	MongoDB   MongoDBConfig   `mapstructure:"mongodb"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	Sheets    SheetsConfig    `mapstructure:"sheets"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

type DatabaseConfig struct {
	URL           string `mapstructure:"url"`
	MigrationsDir string `mapstructure:"migrations_dir"`
}

type SupabaseConfig struct {
	URL     string        `mapstructure:"url"`
	Key     string        `mapstructure:"key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// RedisConfig enables the list cache when Addr is set.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type MongoDBConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"db_name"`
}

type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type SheetsConfig struct {
	CredentialsJSON string `mapstructure:"credentials_json"`
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	Range           string `mapstructure:"range"`
}

// SnapshotConfig drives the nightly valuation snapshot. An empty
// CronSchedule disables it.
type SnapshotConfig struct {
	CronSchedule string `mapstructure:"cron_schedule"`
	Timezone     string `mapstructure:"timezone"`
}

type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// Load reads the optional env file and configs/config.yaml, then lets the
// environment override both.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	setDefaults(v)
	bindEnvVariables(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.request_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("database.migrations_dir", "migrations")
	v.SetDefault("supabase.timeout", 15*time.Second)
	v.SetDefault("redis.ttl", 30*time.Second)
	v.SetDefault("mongodb.db_name", "site_inventory")
	v.SetDefault("minio.bucket", "site-inventory-reports")
	v.SetDefault("sheets.range", "Inventory!A1:E")
	v.SetDefault("snapshot.timezone", "Asia/Kolkata")
	v.SetDefault("rate_limit.requests", 30)
	v.SetDefault("rate_limit.window", time.Minute)
}

func bindEnvVariables(v *viper.Viper) {
	v.BindEnv("server.port", "APP_PORT")
	v.BindEnv("server.request_timeout", "REQUEST_TIMEOUT")
	v.BindEnv("log.level", "LOG_LEVEL")

	v.BindEnv("store.driver", "STORE_DRIVER")
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("database.migrations_dir", "MIGRATIONS_DIR")
	v.BindEnv("supabase.url", "SUPABASE_URL")
	v.BindEnv("supabase.key", "SUPABASE_KEY")

	v.BindEnv("jwt.secret", "JWT_SECRET")

	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")
	v.BindEnv("redis.ttl", "CACHE_TTL")

	v.BindEnv("mongodb.uri", "MONGODB_URI")
	v.BindEnv("mongodb.db_name", "MONGODB_DB_NAME")

	v.BindEnv("minio.endpoint", "MINIO_ENDPOINT")
	v.BindEnv("minio.access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("minio.secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("minio.bucket", "MINIO_BUCKET")
	v.BindEnv("minio.use_ssl", "MINIO_USE_SSL")

	v.BindEnv("sheets.credentials_json", "GOOGLE_SHEETS_CREDENTIALS_JSON")
	v.BindEnv("sheets.spreadsheet_id", "GOOGLE_SHEET_ID")
	v.BindEnv("sheets.range", "GOOGLE_SHEET_RANGE")

	v.BindEnv("snapshot.cron_schedule", "SNAPSHOT_CRON")
	v.BindEnv("snapshot.timezone", "TIMEZONE")

	v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
}

// Validate checks the settings the selected store driver depends on.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL must be provided for the postgres store")
		}
	case DriverSupabase:
		if c.Supabase.URL == "" {
			return errors.New("SUPABASE_URL must be provided for the supabase store")
		}
		if c.Supabase.Key == "" {
			return errors.New("SUPABASE_KEY must be provided for the supabase store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q, expected memory, postgres or supabase", c.Store.Driver)
	}

	if c.MinIO.Endpoint != "" && (c.MinIO.AccessKey == "" || c.MinIO.SecretKey == "") {
		return errors.New("MINIO_ACCESS_KEY and MINIO_SECRET_KEY must be provided with MINIO_ENDPOINT")
	}
	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsJSON == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_JSON must be provided with GOOGLE_SHEET_ID")
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}

	return nil
}
