// Package config provides Viper-based configuration management for question-service
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"question-service/internal/infra/logger"
)

const (
	BackendInMemory = "in-memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

const (
	ProtocolGRPC    = "grpc"
	ProtocolConnect = "connect"
)

// EnvPrefix prefixes every environment override, e.g. QUESTION_SERVER_PORT.
const EnvPrefix = "QUESTION"

// Config represents the complete service configuration
type Config struct {
	ServiceName      string             `mapstructure:"service_name" json:"service_name"`
	ExporterEndpoint string             `mapstructure:"exporter_endpoint" json:"exporter_endpoint"`
	Server           ServerConfig       `mapstructure:"server" json:"server"`
	Log              LogConfig          `mapstructure:"log" json:"log"`
	DB               DBConfig           `mapstructure:"db" json:"db"`
	Answer           AnswerConfig       `mapstructure:"answer" json:"answer"`
	AnswerServer     AnswerServerConfig `mapstructure:"answer_server" json:"answer_server"`
}

// ServerConfig contains the HTTP bind settings
type ServerConfig struct {
	URL  string `mapstructure:"url" json:"url"`
	Port int    `mapstructure:"port" json:"port"`
}

// Address returns host:port for net.Listen.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.URL, strconv.Itoa(s.Port))
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `mapstructure:"level" json:"level"`
}

// DBConfig selects the storage backend
type DBConfig struct {
	Backend string      `mapstructure:"backend" json:"backend"`
	PG      PGConfig    `mapstructure:"pg" json:"pg"`
	Redis   RedisConfig `mapstructure:"redis" json:"redis"`
}

// PGConfig contains PostgreSQL pool settings
type PGConfig struct {
	URL     string `mapstructure:"url" json:"url"`
	MaxSize int32  `mapstructure:"max_size" json:"max_size"`
	Migrate bool   `mapstructure:"migrate" json:"migrate"`
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	URL    string `mapstructure:"url" json:"url"`
	Prefix string `mapstructure:"prefix" json:"prefix"`
}

// AnswerConfig describes the answer service client
type AnswerConfig struct {
	Endpoint       string        `mapstructure:"endpoint" json:"endpoint"`
	Protocol       string        `mapstructure:"protocol" json:"protocol"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" json:"connect_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" json:"request_timeout"`
}

// AnswerServerConfig contains the answer stub bind address
type AnswerServerConfig struct {
	Address string `mapstructure:"address" json:"address"`
}

// Load reads the given TOML files in order, later files overriding earlier ones,
// then applies QUESTION_* environment variables. With no files it looks for
// config.toml in ./config and the working directory and falls back to defaults.
func Load(files ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if len(files) == 0 {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config: %w", err)
			}
			// Config file not found is OK, use defaults
		}
	}
	for i, file := range files {
		v.SetConfigFile(file)
		read := v.MergeInConfig
		if i == 0 {
			read = v.ReadInConfig
		}
		if err := read(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.DB.Backend == "" {
		cfg.DB.Backend = BackendInMemory
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "question-service")
	v.SetDefault("exporter_endpoint", "")

	v.SetDefault("server.url", "0.0.0.0")
	v.SetDefault("server.port", 8888)

	v.SetDefault("log.level", "info")

	v.SetDefault("db.backend", BackendInMemory)
	v.SetDefault("db.pg.url", "")
	v.SetDefault("db.pg.max_size", 10)
	v.SetDefault("db.pg.migrate", false)
	v.SetDefault("db.redis.url", "redis://localhost:6379/0")
	v.SetDefault("db.redis.prefix", "questions")

	v.SetDefault("answer.endpoint", "http://0.0.0.0:50051")
	v.SetDefault("answer.protocol", ProtocolGRPC)
	v.SetDefault("answer.connect_timeout", 3*time.Second)
	v.SetDefault("answer.request_timeout", 30*time.Second)

	v.SetDefault("answer_server.address", "0.0.0.0:50051")
}

// validate checks the configuration for errors
func validate(cfg *Config) error {
	if cfg.ServiceName == "" {
		return fmt.Errorf("service_name must not be empty")
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1..65535)", cfg.Server.Port)
	}

	if !logger.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	switch cfg.DB.Backend {
	case BackendInMemory:
	case BackendPostgres:
		if cfg.DB.PG.URL == "" {
			return fmt.Errorf("db.pg.url is required for the %s backend", BackendPostgres)
		}
		if cfg.DB.PG.MaxSize <= 0 {
			return fmt.Errorf("invalid db.pg.max_size: %d (must be positive)", cfg.DB.PG.MaxSize)
		}
	case BackendRedis:
		if cfg.DB.Redis.URL == "" {
			return fmt.Errorf("db.redis.url is required for the %s backend", BackendRedis)
		}
	default:
		return fmt.Errorf("invalid db backend: %s (must be %s, %s, or %s)",
			cfg.DB.Backend, BackendInMemory, BackendPostgres, BackendRedis)
	}

	if cfg.Answer.Protocol != ProtocolGRPC && cfg.Answer.Protocol != ProtocolConnect {
		return fmt.Errorf("invalid answer protocol: %s (must be %s or %s)",
			cfg.Answer.Protocol, ProtocolGRPC, ProtocolConnect)
	}
	if cfg.Answer.ConnectTimeout <= 0 || cfg.Answer.RequestTimeout <= 0 {
		return fmt.Errorf("answer timeouts must be positive")
	}

	if _, _, err := net.SplitHostPort(cfg.AnswerServer.Address); err != nil {
		return fmt.Errorf("invalid answer_server.address %q: %w", cfg.AnswerServer.Address, err)
	}

	return nil
}

// Redacted returns a copy safe to print: connection URL passwords are masked.
func (c Config) Redacted() Config {
	c.DB.PG.URL = redactURL(c.DB.PG.URL)
	c.DB.Redis.URL = redactURL(c.DB.Redis.URL)
	return c
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
