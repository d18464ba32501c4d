package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceName string `yaml:"service_name"`
	LogLevel    string `yaml:"log_level"`

	ServerPort int `yaml:"server_port"`

	DBDriver      string `yaml:"db_driver"`
	DatabaseURL   string `yaml:"database_url"`
	DBAutoMigrate bool   `yaml:"db_auto_migrate"`

	JWTAccessSecret []byte `yaml:"-"`
	AuthHTTPURL     string `yaml:"auth_url"`
	CSRFEnabled     bool   `yaml:"csrf_enabled"`

	KafkaBrokers []string `yaml:"kafka_brokers"`

	ESURL      string `yaml:"es_url"`
	ESUser     string `yaml:"es_user"`
	ESPassword string `yaml:"es_password"`
	ESIndex    string `yaml:"es_index"`
}

func defaults() Config {
	return Config{
		ServiceName: "farm-admin",
		LogLevel:    "info",
		ServerPort:  8080,
		DBDriver:    "postgres",
		CSRFEnabled: true,
		ESIndex:     "admin_activity",
	}
}

// Load reads .env (when present), then the optional YAML file at path, then
// the process environment. Environment values win.
func Load(path string) (Config, error) {
	_ = godotenv.Load(".env")

	cfg := defaults()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ServiceName = EnvDefault("SERVICE_NAME", cfg.ServiceName)
	cfg.LogLevel = EnvDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.ServerPort = EnvIntDefault("SERVER_PORT", cfg.ServerPort)

	cfg.DBDriver = strings.ToLower(EnvDefault("DB_DRIVER", cfg.DBDriver))
	cfg.DatabaseURL = EnvDefault("DATABASE_URL", cfg.DatabaseURL)
	cfg.DBAutoMigrate = EnvBoolDefault("DB_AUTO_MIGRATE", cfg.DBAutoMigrate)

	cfg.JWTAccessSecret = []byte(os.Getenv("JWT_SECRET"))
	cfg.AuthHTTPURL = EnvDefault("AUTH_URL", cfg.AuthHTTPURL)
	cfg.CSRFEnabled = EnvBoolDefault("CSRF_ENABLED", cfg.CSRFEnabled)

	if brokers := CSV(os.Getenv("KAFKA_BROKERS")); brokers != nil {
		cfg.KafkaBrokers = brokers
	}

	cfg.ESURL = EnvDefault("ES_URL", cfg.ESURL)
	cfg.ESUser = EnvDefault("ES_USER", cfg.ESUser)
	cfg.ESPassword = EnvDefault("ES_PASSWORD", cfg.ESPassword)
	cfg.ESIndex = EnvDefault("ES_INDEX", cfg.ESIndex)

	return cfg, nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
