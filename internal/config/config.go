package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Leave    LeaveConfig    `mapstructure:"leave"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxRetries   int    `mapstructure:"max_retries"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr       string `mapstructure:"addr"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	MaxRetries int    `mapstructure:"max_retries"`
}

type KafkaConfig struct {
	Broker        string        `mapstructure:"broker"`
	ConsumerGroup string        `mapstructure:"consumer_group"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type LeaveConfig struct {
	SLATargetResponseHours float64       `mapstructure:"sla_target_response_hours"`
	StatsCacheTTL          time.Duration `mapstructure:"stats_cache_ttl"`
}

// env names kept compatible with the existing deployment .env files
var envBindings = map[string]string{
	"server.port":                     "PORT",
	"db.host":                         "DB_HOST",
	"db.port":                         "DB_PORT",
	"db.user":                         "DB_USER",
	"db.password":                     "DB_PASSWORD",
	"db.name":                         "DB_NAME",
	"db.sslmode":                      "DB_SSLMODE",
	"db.auto_migrate":                 "DB_AUTO_MIGRATE",
	"redis.addr":                      "REDIS_ADDR",
	"redis.password":                  "REDIS_PASSWORD",
	"kafka.broker":                    "KAFKA_BROKER",
	"kafka.consumer_group":            "KAFKA_CONSUMER_GROUP",
	"auth.jwt_secret":                 "JWT_SECRET",
	"log.level":                       "LOG_LEVEL",
	"log.format":                      "LOG_FORMAT",
	"leave.sla_target_response_hours": "SLA_TARGET_RESPONSE_HOURS",
	"leave.stats_cache_ttl":           "STATS_CACHE_TTL",
}

// Load reads defaults, then the optional config file, then environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "3000")
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "60s")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "hr_tracker")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_retries", 5)
	v.SetDefault("db.auto_migrate", true)
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.max_retries", 5)

	v.SetDefault("kafka.broker", "")
	v.SetDefault("kafka.consumer_group", "hr-tracker-leave-audit")
	v.SetDefault("kafka.poll_interval", "3s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("leave.sla_target_response_hours", 24)
	v.SetDefault("leave.stats_cache_ttl", "1m")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the keys the HTTP API cannot start without.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret (JWT_SECRET) is required")
	}
	if c.Server.Port == "" {
		return errors.New("config: server.port (PORT) is required")
	}
	if c.Leave.SLATargetResponseHours <= 0 {
		return errors.New("config: leave.sla_target_response_hours must be positive")
	}
	return nil
}
