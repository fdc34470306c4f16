package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Driver              string `yaml:"driver"` // postgres, mysql, sqlite
		DSN                 string `yaml:"url"`
		QueryTimeoutSeconds int    `yaml:"query_timeout_seconds"`
		MaxOpenConns        int    `yaml:"max_open_conns"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTLHours   int    `yaml:"ttl_hours"`
		Issuer     string `yaml:"issuer"`
		CookieName string `yaml:"cookie_name"`
	} `yaml:"jwt"`

	Admin struct {
		FirstAdminEmail string `yaml:"first_admin_email"`
	} `yaml:"admin"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Events struct {
		RedisURL string `yaml:"redis_url"`
		Stream   string `yaml:"stream"`
		MaxLen   int64  `yaml:"max_len"`
	} `yaml:"events"`

	Storage struct {
		Type              string `yaml:"type"` // local, s3
		BaseURL           string `yaml:"base_url"`
		Bucket            string `yaml:"bucket"`
		Region            string `yaml:"region"`
		AccessKey         string `yaml:"access_key"`
		SecretKey         string `yaml:"secret_key"`
		Endpoint          string `yaml:"endpoint"` // R2 / MinIO
		PresignTTLMinutes int    `yaml:"presign_ttl_minutes"`
	} `yaml:"storage"`

	Upload struct {
		AllowedTypes []string `yaml:"allowed_types"`
	} `yaml:"upload"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	Workers struct {
		BacklogIntervalSeconds int `yaml:"backlog_interval_seconds"`
	} `yaml:"workers"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию в AppConfig; при ошибке приложение не стартует
func LoadConfig() {
	// .env опционален
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load .env: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Load читает YAML (если файл существует), накладывает переменные окружения и дефолты
func Load(path string) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		log.Printf("Config file %s not found, using environment only", path)
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Defaults - конфиг только из значений по умолчанию (тесты, локальный запуск)
func Defaults() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Env, "SERVER_ENV")
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setInt(&cfg.Server.Port, "PORT")

	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.DSN, "DATABASE_URL")

	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setInt(&cfg.JWT.TTLHours, "JWT_TTL_HOURS")

	setString(&cfg.Admin.FirstAdminEmail, "FIRST_ADMIN_EMAIL")

	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setInt(&cfg.Email.SMTPPort, "SMTP_PORT")
	setString(&cfg.Email.SMTPUsername, "SMTP_USER")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Email.FromEmail, "SMTP_FROM")
	if cfg.Email.SMTPHost != "" && os.Getenv("SMTP_HOST") != "" {
		cfg.Email.Enabled = true
	}

	setString(&cfg.Events.RedisURL, "REDIS_URL")

	setString(&cfg.Storage.Type, "STORAGE_TYPE")
	setString(&cfg.Storage.Bucket, "S3_BUCKET")
	setString(&cfg.Storage.Region, "S3_REGION")
	setString(&cfg.Storage.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "S3_SECRET_KEY")
	setString(&cfg.Storage.Endpoint, "S3_ENDPOINT")

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORS.AllowedOrigins = strings.Split(origins, ",")
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.QueryTimeoutSeconds <= 0 {
		cfg.Database.QueryTimeoutSeconds = 5
	}
	if cfg.JWT.TTLHours <= 0 {
		cfg.JWT.TTLHours = 365 * 24
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "destined-affinity"
	}
	if cfg.JWT.CookieName == "" {
		cfg.JWT.CookieName = "token"
	}
	if cfg.Events.Stream == "" {
		cfg.Events.Stream = "destined-affinity:audit"
	}
	if cfg.Events.MaxLen == 0 {
		cfg.Events.MaxLen = 10000
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/uploads"
	}
	if cfg.Storage.PresignTTLMinutes <= 0 {
		cfg.Storage.PresignTTLMinutes = 15
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{"image/jpeg", "image/png", "image/webp"}
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"http://localhost:5173"}
	}
	if cfg.Workers.BacklogIntervalSeconds <= 0 {
		cfg.Workers.BacklogIntervalSeconds = 60
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret (JWT_SECRET) is required")
	}
	if c.Database.DSN == "" {
		return errors.New("database.url (DATABASE_URL) is required")
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	switch c.Storage.Type {
	case "local", "s3":
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.Database.QueryTimeoutSeconds) * time.Second
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTLHours) * time.Hour
}

func (c *Config) PresignTTL() time.Duration {
	return time.Duration(c.Storage.PresignTTLMinutes) * time.Minute
}

func (c *Config) BacklogInterval() time.Duration {
	return time.Duration(c.Workers.BacklogIntervalSeconds) * time.Second
}

// GetConfig возвращает загруженный конфиг, загружая его при первом обращении
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
