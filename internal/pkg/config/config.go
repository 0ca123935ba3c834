package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Email     EmailConfig     `mapstructure:"email"`
	Temporal  TemporalConfig  `mapstructure:"temporal"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	BodyLimitMB  int    `mapstructure:"body_limit_mb"`
	CORSOrigins  string `mapstructure:"cors_origins"`
}

// Storage drivers accepted by database.driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	DBName     string `mapstructure:"dbname"`
	SSLMode    string `mapstructure:"sslmode"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type TelemetryConfig struct {
	ServiceName  string  `mapstructure:"service_name"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	Exporter     string  `mapstructure:"exporter"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	Enabled      bool    `mapstructure:"enabled"`
}

// Email dispatch modes accepted by email.dispatch.
const (
	DispatchDirect   = "direct"
	DispatchTemporal = "temporal"
	DispatchDisabled = "disabled"
)

type EmailConfig struct {
	Dispatch  string `mapstructure:"dispatch"`
	SMTPHost  string `mapstructure:"smtp_host"`
	SMTPPort  int    `mapstructure:"smtp_port"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	From      string `mapstructure:"from"`
	ArchiveTo string `mapstructure:"archive_to"`
}

type TemporalConfig struct {
	HostPort  string `mapstructure:"host_port"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task_queue"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from .env, an optional config file and
// environment variables, in increasing order of precedence.
func Load(service string) (*Config, error) {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, service)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: SPRAYLOG_DATABASE_DRIVER → database.driver
	v.SetEnvPrefix("SPRAYLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, service string) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.body_limit_mb", 4)
	v.SetDefault("server.cors_origins", "http://localhost:3000, http://localhost:5173")
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "spraylog")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "spraylog")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.sqlite_path", "spraylog.db")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.otlp_endpoint", "tempo:4317")
	v.SetDefault("telemetry.exporter", "otlp")
	v.SetDefault("telemetry.sample_ratio", 1.0)
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("email.dispatch", DispatchDirect)
	v.SetDefault("email.smtp_host", "")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.username", "")
	v.SetDefault("email.password", "")
	v.SetDefault("email.from", "records@spraylog.local")
	v.SetDefault("email.archive_to", "")
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "spraylog-reports")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// EmailEnabled reports whether report emails can be sent at all.
func (c *Config) EmailEnabled() bool {
	return c.Email.Dispatch != DispatchDisabled && c.Email.SMTPHost != ""
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Server.BodyLimitMB <= 0 {
		errs = append(errs, "server.body_limit_mb must be positive")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			errs = append(errs, "database.host is required")
		}
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
		}
		if c.Database.User == "" {
			errs = append(errs, "database.user is required")
		}
		if c.Database.DBName == "" {
			errs = append(errs, "database.dbname is required")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			errs = append(errs, "database.sqlite_path is required for the sqlite driver")
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Sprintf("database.driver must be postgres, sqlite or memory, got %q", c.Database.Driver))
	}

	switch c.Email.Dispatch {
	case DispatchDirect, DispatchTemporal, DispatchDisabled:
	default:
		errs = append(errs, fmt.Sprintf("email.dispatch must be direct, temporal or disabled, got %q", c.Email.Dispatch))
	}
	if c.Email.Dispatch != DispatchDisabled && c.Email.SMTPHost != "" {
		if c.Email.SMTPPort <= 0 || c.Email.SMTPPort > 65535 {
			errs = append(errs, fmt.Sprintf("email.smtp_port must be 1-65535, got %d", c.Email.SMTPPort))
		}
		if c.Email.From == "" {
			errs = append(errs, "email.from is required when smtp_host is set")
		}
	}
	if c.Email.Dispatch == DispatchTemporal {
		if c.Temporal.HostPort == "" {
			errs = append(errs, "temporal.host_port is required for temporal dispatch")
		}
		if c.Temporal.TaskQueue == "" {
			errs = append(errs, "temporal.task_queue is required for temporal dispatch")
		}
	}

	if c.Telemetry.Enabled {
		if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
			errs = append(errs, fmt.Sprintf("telemetry.sample_ratio must be 0-1, got %v", c.Telemetry.SampleRatio))
		}
		if e := c.Telemetry.Exporter; e != "otlp" && e != "stdout" {
			errs = append(errs, fmt.Sprintf("telemetry.exporter must be otlp or stdout, got %q", e))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
