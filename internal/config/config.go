package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"

	DefaultPath = "config/config.yaml"
)

type ServerConfig struct {
	Port         int           `yaml:"port"`
	BasePath     string        `yaml:"base_path"`
	Environment  string        `yaml:"environment"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type DatabaseConfig struct {
	Driver        string `yaml:"driver"`
	DSN           string `yaml:"url"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
	Migrate       bool   `yaml:"migrate"`
}

type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
	OTPTTL     time.Duration `yaml:"otp_ttl"`
	BcryptCost int           `yaml:"bcrypt_cost"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	InlineImage  string `yaml:"inline_image"`
	DryRun       bool   `yaml:"dry_run"`
}

type FilesConfig struct {
	UploadDir string `yaml:"upload_dir"`
	FontPath  string `yaml:"font_path"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Email    EmailConfig    `yaml:"email"`
	Files    FilesConfig    `yaml:"files"`
}

// LoadConfig reads the YAML file named by PDFDESK_CONFIG (or the default
// path) and panics when it cannot be used.
func LoadConfig() *Config {
	_ = godotenv.Load()

	path := os.Getenv("PDFDESK_CONFIG")
	if path == "" {
		path = DefaultPath
	}
	cfg, err := Load(path)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

// Load decodes the YAML file, applies environment overrides and defaults and
// validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := lookupInt("PORT"); ok {
		c.Server.Port = v
	}
	if v, ok := os.LookupEnv("API_BASE_URL"); ok {
		c.Server.BasePath = v
	}
	if v, ok := os.LookupEnv("APP_ENV"); ok {
		c.Server.Environment = v
	}
	if v, ok := os.LookupEnv("DB_DRIVER"); ok {
		c.Database.Driver = v
	}
	if v, ok := os.LookupEnv("DATABASE_URL"); ok {
		c.Database.DSN = v
	}
	if v, ok := os.LookupEnv("MONGODB_URI"); ok {
		c.Database.MongoURI = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		c.Auth.JWTSecret = v
	}
	if v, ok := os.LookupEnv("SMTP_HOST"); ok {
		c.Email.SMTPHost = v
	}
	if v, ok := lookupInt("SMTP_PORT"); ok {
		c.Email.SMTPPort = v
	}
	if v, ok := os.LookupEnv("SMTP_USER"); ok {
		c.Email.SMTPUser = v
	}
	if v, ok := os.LookupEnv("SMTP_PASSWORD"); ok {
		c.Email.SMTPPassword = v
	}
	if v, ok := os.LookupEnv("SENDER_EMAIL"); ok {
		c.Email.FromEmail = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	c.Server.BasePath = strings.Trim(strings.TrimSpace(c.Server.BasePath), "/")
	if c.Server.BasePath == "" {
		c.Server.BasePath = "api"
	}
	if c.Server.Environment == "" {
		c.Server.Environment = "development"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Database.MongoDatabase == "" {
		c.Database.MongoDatabase = "pdfdesk"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 30 * 24 * time.Hour
	}
	if c.Auth.OTPTTL == 0 {
		c.Auth.OTPTTL = 5 * time.Minute
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 10
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Files.UploadDir == "" {
		c.Files.UploadDir = "./uploads"
	}
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return errors.New("database.url is required for the postgres driver")
		}
	case DriverMongo:
		if c.Database.MongoURI == "" {
			return errors.New("database.mongo_uri is required for the mongo driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if !c.Email.DryRun && c.Email.SMTPHost == "" {
		return errors.New("email.smtp_host is required unless email.dry_run is set")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func lookupInt(key string) (int, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}
