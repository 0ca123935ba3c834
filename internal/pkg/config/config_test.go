package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080, ReadTimeout: 10, WriteTimeout: 30, BodyLimitMB: 4},
		Database: DatabaseConfig{Driver: DriverMemory},
		Email:    EmailConfig{Dispatch: DispatchDisabled},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Database.Driver = "mysql"
	cfg.Email.Dispatch = "carrier-pigeon"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"server.port", "database.driver", "email.dispatch"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestValidate_PostgresRequiresHost(t *testing.T) {
	cfg := validConfig()
	cfg.Database = DatabaseConfig{Driver: DriverPostgres, Port: 5432, User: "u", DBName: "d"}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "database.host") {
		t.Fatalf("expected database.host error, got %v", err)
	}
}

func TestValidate_TemporalDispatchNeedsQueue(t *testing.T) {
	cfg := validConfig()
	cfg.Email = EmailConfig{Dispatch: DispatchTemporal, SMTPHost: "smtp.example.com", SMTPPort: 587, From: "a@b.c"}
	cfg.Temporal = TemporalConfig{HostPort: "localhost:7233"}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "temporal.task_queue") {
		t.Fatalf("expected task_queue error, got %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SPRAYLOG_DATABASE_DRIVER", "sqlite")
	t.Setenv("SPRAYLOG_DATABASE_SQLITE_PATH", "/tmp/farm.db")
	t.Setenv("SPRAYLOG_SERVER_PORT", "9090")
	t.Setenv("SPRAYLOG_EMAIL_DISPATCH", "disabled")

	cfg, err := Load("spraylog-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Database.SQLitePath != "/tmp/farm.db" {
		t.Errorf("database overrides not applied: %+v", cfg.Database)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Telemetry.ServiceName != "spraylog-test" {
		t.Errorf("expected service name default, got %q", cfg.Telemetry.ServiceName)
	}
	if cfg.EmailEnabled() {
		t.Error("email should be disabled")
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{User: "u", Password: "p", Host: "h", Port: 5432, DBName: "db", SSLMode: "disable"}
	if got := d.DSN(); got != "postgres://u:p@h:5432/db?sslmode=disable" {
		t.Errorf("unexpected DSN %q", got)
	}
}
