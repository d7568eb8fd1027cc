package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	JWT      JWTConfig
	S3       S3Config
	Log      LogConfig
	CORS     CORSConfig
	Browser  BrowserConfig
	Settings SettingsConfig
	Relay    RelayConfig
	LLM      LLMConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Page host kinds.
const (
	HostSnapshot   = "snapshot"
	HostHTTP       = "http"
	HostPlaywright = "playwright"
)

// BrowserConfig selects and tunes the page host that runs extraction scripts.
type BrowserConfig struct {
	Host             string        `mapstructure:"host"`
	UserAgent        string        `mapstructure:"user_agent"`
	ReqPerSec        float64       `mapstructure:"req_per_sec"`
	Burst            int           `mapstructure:"burst"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
	Headless         bool          `mapstructure:"headless"`
	SnapshotCapacity int           `mapstructure:"snapshot_capacity"`
}

// SettingsConfig locates the persisted user settings.
type SettingsConfig struct {
	Path string `mapstructure:"path"`
}

// RelayConfig holds tab tracking settings.
type RelayConfig struct {
	TabCapacity int `mapstructure:"tab_capacity"`
}

// LLMConfig holds transport settings for LLM provider calls. A zero timeout
// leaves the HTTP client without a deadline.
type LLMConfig struct {
	TimeoutSecs int `mapstructure:"timeout_secs"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds bearer token settings.
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	Issuer      string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the JOBCLIP_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("JOBCLIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "jobclip")
	v.SetDefault("db.password", "jobclip_secret")
	v.SetDefault("db.name", "jobclip_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.token_expiry", "720h")
	v.SetDefault("jwt.issuer", "jobclip")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "jobclip-captures")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (local dev origins; add the extension's chrome-extension:// origin)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Browser defaults
	v.SetDefault("browser.host", HostSnapshot)
	v.SetDefault("browser.user_agent", "")
	v.SetDefault("browser.req_per_sec", 0.5)
	v.SetDefault("browser.burst", 1)
	v.SetDefault("browser.fetch_timeout", "30s")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.snapshot_capacity", 64)

	v.SetDefault("settings.path", "data/settings.yml")
	v.SetDefault("relay.tab_capacity", 256)
	v.SetDefault("llm.timeout_secs", 0)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "JOBCLIP_SERVER_PORT",
		"server.read_timeout":       "JOBCLIP_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "JOBCLIP_SERVER_WRITE_TIMEOUT",
		"server.environment":        "JOBCLIP_SERVER_ENVIRONMENT",
		"db.host":                   "JOBCLIP_DB_HOST",
		"db.port":                   "JOBCLIP_DB_PORT",
		"db.user":                   "JOBCLIP_DB_USER",
		"db.password":               "JOBCLIP_DB_PASSWORD",
		"db.name":                   "JOBCLIP_DB_NAME",
		"db.sslmode":                "JOBCLIP_DB_SSLMODE",
		"db.max_open":               "JOBCLIP_DB_MAX_OPEN",
		"db.max_idle":               "JOBCLIP_DB_MAX_IDLE",
		"jwt.secret":                "JOBCLIP_JWT_SECRET",
		"jwt.token_expiry":          "JOBCLIP_JWT_TOKEN_EXPIRY",
		"jwt.issuer":                "JOBCLIP_JWT_ISSUER",
		"s3.region":                 "JOBCLIP_S3_REGION",
		"s3.bucket":                 "JOBCLIP_S3_BUCKET",
		"s3.endpoint":               "JOBCLIP_S3_ENDPOINT",
		"s3.access_key":             "JOBCLIP_S3_ACCESS_KEY",
		"s3.secret_key":             "JOBCLIP_S3_SECRET_KEY",
		"s3.max_file_size_mb":       "JOBCLIP_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":         "JOBCLIP_S3_PRESIGN_EXPIRY",
		"log.level":                 "JOBCLIP_LOG_LEVEL",
		"log.format":                "JOBCLIP_LOG_FORMAT",
		"cors.allowed_origins":      "JOBCLIP_CORS_ALLOWED_ORIGINS",
		"browser.host":              "JOBCLIP_BROWSER_HOST",
		"browser.user_agent":        "JOBCLIP_BROWSER_USER_AGENT",
		"browser.req_per_sec":       "JOBCLIP_BROWSER_REQ_PER_SEC",
		"browser.burst":             "JOBCLIP_BROWSER_BURST",
		"browser.fetch_timeout":     "JOBCLIP_BROWSER_FETCH_TIMEOUT",
		"browser.headless":          "JOBCLIP_BROWSER_HEADLESS",
		"browser.snapshot_capacity": "JOBCLIP_BROWSER_SNAPSHOT_CAPACITY",
		"settings.path":             "JOBCLIP_SETTINGS_PATH",
		"relay.tab_capacity":        "JOBCLIP_RELAY_TAB_CAPACITY",
		"llm.timeout_secs":          "JOBCLIP_LLM_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if JOBCLIP_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("JOBCLIP_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:      v.GetString("jwt.secret"),
		TokenExpiry: v.GetDuration("jwt.token_expiry"),
		Issuer:      v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	host := strings.ToLower(strings.TrimSpace(v.GetString("browser.host")))
	switch host {
	case HostSnapshot, HostHTTP, HostPlaywright:
	default:
		return nil, fmt.Errorf("browser.host must be one of %s, %s, %s; got %q",
			HostSnapshot, HostHTTP, HostPlaywright, host)
	}
	cfg.Browser = BrowserConfig{
		Host:             host,
		UserAgent:        v.GetString("browser.user_agent"),
		ReqPerSec:        v.GetFloat64("browser.req_per_sec"),
		Burst:            v.GetInt("browser.burst"),
		FetchTimeout:     v.GetDuration("browser.fetch_timeout"),
		Headless:         v.GetBool("browser.headless"),
		SnapshotCapacity: v.GetInt("browser.snapshot_capacity"),
	}

	cfg.Settings = SettingsConfig{Path: v.GetString("settings.path")}
	cfg.Relay = RelayConfig{TabCapacity: v.GetInt("relay.tab_capacity")}
	cfg.LLM = LLMConfig{TimeoutSecs: v.GetInt("llm.timeout_secs")}

	return cfg, nil
}

// splitList parses a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
