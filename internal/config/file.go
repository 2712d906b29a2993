package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

const DefaultConfigFile = "config.toml"

// Duration decodes TOML strings such as "15s" or "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// FileConfig mirrors the optional config.toml. Every field has a default so a
// missing file behaves like an empty one.
type FileConfig struct {
	Server   FileServerConfig   `toml:"server"`
	Database FileDatabaseConfig `toml:"database"`
	JWT      FileJWTConfig      `toml:"jwt"`
	Security FileSecurityConfig `toml:"security"`
	Admin    FileAdminConfig    `toml:"admin"`
	AMQP     FileAMQPConfig     `toml:"amqp"`
	App      FileAppConfig      `toml:"app"`
}

type FileServerConfig struct {
	Port            string   `toml:"port"`
	Host            string   `toml:"host"`
	Environment     string   `toml:"environment"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

type FileDatabaseConfig struct {
	Host            string   `toml:"host"`
	Port            string   `toml:"port"`
	User            string   `toml:"user"`
	Password        string   `toml:"password,omitempty"`
	Name            string   `toml:"name"`
	SSLMode         string   `toml:"ssl_mode"`
	MaxConnections  int      `toml:"max_connections"`
	MaxIdleConns    int      `toml:"max_idle_conns"`
	ConnMaxLifetime Duration `toml:"conn_max_lifetime"`
	AutoMigrate     bool     `toml:"auto_migrate"`
	MigrationsPath  string   `toml:"migrations_path"`
	LogQueries      bool     `toml:"log_queries"`
}

type FileJWTConfig struct {
	AccessTokenDuration  Duration `toml:"access_token_duration"`
	RefreshTokenDuration Duration `toml:"refresh_token_duration"`
	Issuer               string   `toml:"issuer"`
}

type FileSecurityConfig struct {
	BCryptCost         int      `toml:"bcrypt_cost"`
	RateLimitPerSecond int      `toml:"rate_limit_per_second"`
	MaxFailedAttempts  int      `toml:"max_failed_attempts"`
	LockoutDuration    Duration `toml:"lockout_duration"`
	PasswordMinLength  int      `toml:"password_min_length"`
}

type FileAdminConfig struct {
	Emails []string `toml:"emails"`
}

type FileAMQPConfig struct {
	URL      string `toml:"url,omitempty"`
	Exchange string `toml:"exchange"`
	Queue    string `toml:"queue"`
}

type FileAppConfig struct {
	Timezone string `toml:"timezone"`
	Language string `toml:"language"`
	LogLevel string `toml:"log_level"`
}

// DefaultFileConfig returns the built-in defaults.
func DefaultFileConfig() FileConfig {
	return FileConfig{
		Server: FileServerConfig{
			Port:            "8080",
			Host:            "localhost",
			Environment:     "development",
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{15 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Database: FileDatabaseConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "finance_user",
			Password:        "finance_password",
			Name:            "finance_db",
			SSLMode:         "disable",
			MaxConnections:  25,
			MaxIdleConns:    5,
			ConnMaxLifetime: Duration{time.Hour},
			MigrationsPath:  "db/migrations",
		},
		JWT: FileJWTConfig{
			AccessTokenDuration:  Duration{time.Hour},
			RefreshTokenDuration: Duration{7 * 24 * time.Hour},
			Issuer:               "finance-tracker",
		},
		Security: FileSecurityConfig{
			BCryptCost:         12,
			RateLimitPerSecond: 10,
			MaxFailedAttempts:  5,
			LockoutDuration:    Duration{15 * time.Minute},
			PasswordMinLength:  8,
		},
		AMQP: FileAMQPConfig{
			Exchange: "finance.activity",
			Queue:    "finance.activity.events",
		},
		App: FileAppConfig{
			Timezone: "Asia/Jakarta",
			Language: "id",
			LogLevel: "info",
		},
	}
}

// LoadFile reads path over the defaults. A missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	cfg := DefaultFileConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
