package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Security SecurityConfig
	Admin    AdminConfig
	AMQP     AMQPConfig
	App      AppConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ShutdownTimeout  time.Duration
	CORSAllowOrigins []string
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	MigrationsPath  string
	LogQueries      bool
}

type JWTConfig struct {
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	PrivateKey           *rsa.PrivateKey
	PublicKey            *rsa.PublicKey
	Issuer               string
}

type SecurityConfig struct {
	BCryptCost         int
	RateLimitPerSecond int
	MaxFailedAttempts  int
	LockoutDuration    time.Duration
	PasswordMinLength  int
}

// AdminConfig holds the administrator allow-list. Emails are normalised by
// the admin policy, not here.
type AdminConfig struct {
	Emails []string
}

type AMQPConfig struct {
	URL      string
	Exchange string
	Queue    string
}

// Enabled reports whether activity events should be published.
func (c AMQPConfig) Enabled() bool {
	return c.URL != ""
}

type AppConfig struct {
	Timezone string
	Language string
	LogLevel string
	Location *time.Location
}

// Load builds the configuration from defaults, the optional TOML file named by
// CONFIG_FILE and finally environment variables, in increasing precedence.
func Load() *Config {
	file, err := LoadFile(getEnv("CONFIG_FILE", DefaultConfigFile))
	if err != nil {
		log.Fatal("Failed to read config file:", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", file.Server.Port),
			Host:            getEnv("SERVER_HOST", file.Server.Host),
			Environment:     getEnv("APP_ENV", file.Server.Environment),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", file.Server.ReadTimeout.Duration),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", file.Server.WriteTimeout.Duration),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", file.Server.ShutdownTimeout.Duration),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", file.Database.Host),
			Port:            getEnv("DB_PORT", file.Database.Port),
			User:            getEnv("DB_USER", file.Database.User),
			Password:        getEnv("DB_PASSWORD", file.Database.Password),
			Name:            getEnv("DB_NAME", file.Database.Name),
			SSLMode:         getEnv("DB_SSL_MODE", file.Database.SSLMode),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", file.Database.MaxConnections),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", file.Database.MaxIdleConns),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", file.Database.ConnMaxLifetime.Duration),
			AutoMigrate:     getBoolEnv("AUTO_MIGRATE", file.Database.AutoMigrate),
			MigrationsPath:  getEnv("MIGRATIONS_PATH", file.Database.MigrationsPath),
			LogQueries:      getBoolEnv("DB_LOG_QUERIES", file.Database.LogQueries),
		},
		Security: SecurityConfig{
			BCryptCost:         getIntEnv("BCRYPT_COST", file.Security.BCryptCost),
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", file.Security.RateLimitPerSecond),
			MaxFailedAttempts:  getIntEnv("MAX_FAILED_ATTEMPTS", file.Security.MaxFailedAttempts),
			LockoutDuration:    getDurationEnv("LOCKOUT_DURATION", file.Security.LockoutDuration.Duration),
			PasswordMinLength:  getIntEnv("PASSWORD_MIN_LENGTH", file.Security.PasswordMinLength),
		},
		JWT: JWTConfig{
			AccessTokenDuration:  getDurationEnv("JWT_ACCESS_TOKEN_DURATION", file.JWT.AccessTokenDuration.Duration),
			RefreshTokenDuration: getDurationEnv("JWT_REFRESH_TOKEN_DURATION", file.JWT.RefreshTokenDuration.Duration),
			Issuer:               getEnv("JWT_ISSUER", file.JWT.Issuer),
		},
		Admin: AdminConfig{
			Emails: getListEnv("ADMIN_EMAILS", file.Admin.Emails),
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", file.AMQP.URL),
			Exchange: getEnv("AMQP_EXCHANGE", file.AMQP.Exchange),
			Queue:    getEnv("AMQP_QUEUE", file.AMQP.Queue),
		},
		App: AppConfig{
			Timezone: getEnv("APP_TIMEZONE", file.App.Timezone),
			Language: getEnv("APP_LANGUAGE", file.App.Language),
			LogLevel: getEnv("LOG_LEVEL", file.App.LogLevel),
		},
	}

	config.Server.CORSAllowOrigins = config.loadCORSAllowOrigins()

	location, err := time.LoadLocation(config.App.Timezone)
	if err != nil {
		log.Printf("Unknown APP_TIMEZONE %q, falling back to UTC: %v", config.App.Timezone, err)
		location = time.UTC
	}
	config.App.Location = location

	var loadJWTKeysErr error
	config.JWT.PrivateKey, config.JWT.PublicKey, loadJWTKeysErr = config.loadJWTKeys()
	if loadJWTKeysErr != nil {
		log.Fatal("Failed to load RSA keys:", loadJWTKeysErr)
	}

	return config
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	items := strings.Split(value, ",")
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
	}
	return items
}

// loadJWTKeys reads base64 PEM keys from JWT_PRIVATE_KEY/JWT_PUBLIC_KEY.
// Outside production a missing pair is replaced by a freshly generated one,
// which invalidates issued tokens on restart.
func (c *Config) loadJWTKeys() (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privateKeyB64 := os.Getenv("JWT_PRIVATE_KEY")
	publicKeyB64 := os.Getenv("JWT_PUBLIC_KEY")

	if privateKeyB64 != "" && publicKeyB64 != "" {
		return decodeKeyPair(privateKeyB64, publicKeyB64)
	}

	if c.IsProduction() {
		return nil, nil, errors.New("JWT_PRIVATE_KEY and JWT_PUBLIC_KEY must be set in production")
	}

	log.Println("No JWT keypair configured, generating an ephemeral one")
	return GenerateRSAKeyPair()
}

func decodeKeyPair(privateKeyB64, publicKeyB64 string) (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privateKeyBytes, err := base64.StdEncoding.DecodeString(privateKeyB64)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode JWT_PRIVATE_KEY: %w", err)
	}

	publicKeyBytes, err := base64.StdEncoding.DecodeString(publicKeyB64)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode JWT_PUBLIC_KEY: %w", err)
	}

	privateKey, err := loadRSAPrivateKey(privateKeyBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	publicKey, err := loadRSAPublicKey(publicKeyBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	return privateKey, publicKey, nil
}

func (c *Config) loadCORSAllowOrigins() []string {
	origins := getListEnv("CORS_ALLOW_ORIGINS", nil)
	if len(origins) == 0 {
		if c.IsProduction() {
			log.Println("WARNING: CORS_ALLOW_ORIGINS not set in production, allowing all origins")
		}
		return []string{"*"}
	}
	return origins
}

// GenerateRSAKeyPair generates a new RSA key pair
func GenerateRSAKeyPair() (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate RSA key pair: %w", err)
	}

	return privateKey, &privateKey.PublicKey, nil
}

// loadRSAPrivateKey loads an RSA private key from PEM format
func loadRSAPrivateKey(pemData []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing the key")
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		// openssl genpkey emits PKCS8
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}

		privateKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("not an RSA private key")
		}

		return privateKey, nil
	}

	return privateKey, nil
}

// loadRSAPublicKey loads an RSA public key from PEM format
func loadRSAPublicKey(pemData []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing the key")
	}

	publicKey, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	rsaPublicKey, ok := publicKey.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("not an RSA public key")
	}

	return rsaPublicKey, nil
}
