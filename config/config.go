package config

import (
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Elastic   ElasticsearchConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	AppEnv          string        `env:"APP_ENV,default=dev"`
	Port            string        `env:"PORT,default=3001"`
	GRPCPort        string        `env:"GRPC_PORT,default=3002"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

type LoggerConfig struct {
	Level             string `env:"LOGGER_LEVEL"`
	Encoding          string `env:"LOGGER_ENCODING"`
	DisableCaller     bool   `env:"LOGGER_DISABLE_CALLER,default=false"`
	DisableStacktrace bool   `env:"LOGGER_DISABLE_STACKTRACE,default=true"`
	File              string `env:"LOGGER_FILE"`
}

type PostgresConfig struct {
	URL             string        `env:"DATABASE_URL,required"`
	MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS,default=10"`
	MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS,default=5"`
	ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME,default=5m"`
	ConnMaxIdleTime time.Duration `env:"POSTGRES_CONN_MAX_IDLE_TIME,default=1m"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE,default=true"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,default=0"`
	TTL      time.Duration `env:"CACHE_TTL,default=5m"`
}

type KafkaConfig struct {
	BrokerList string `env:"KAFKA_BROKERS"`
	Topic      string `env:"KAFKA_TOPIC,default=catalog.events"`
	Brokers    []string
}

type ElasticsearchConfig struct {
	AddressList string `env:"ELASTICSEARCH_ADDRESSES"`
	Username    string `env:"ELASTICSEARCH_USERNAME"`
	Password    string `env:"ELASTICSEARCH_PASSWORD"`
	Index       string `env:"ELASTICSEARCH_INDEX,default=products"`
	Addresses   []string
}

type RateLimitConfig struct {
	RPS   float64 `env:"RATE_LIMIT_RPS,default=0"`
	Burst int     `env:"RATE_LIMIT_BURST,default=20"`
}

type CORSConfig struct {
	OriginList string `env:"CORS_ALLOWED_ORIGINS,default=*"`
	Origins    []string
}

// LoadEnv reads an optional .env file and decodes the process environment.
func LoadEnv() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, errors.Wrap(err, "decode environment")
	}

	cfg.Kafka.Brokers = splitList(cfg.Kafka.BrokerList)
	cfg.Elastic.Addresses = splitList(cfg.Elastic.AddressList)
	cfg.CORS.Origins = splitList(cfg.CORS.OriginList)

	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
		if cfg.Server.IsDevelopment() {
			cfg.Logger.Level = "debug"
		}
	}
	if cfg.Logger.Encoding == "" {
		cfg.Logger.Encoding = "json"
		if cfg.Server.IsDevelopment() {
			cfg.Logger.Encoding = "console"
		}
	}
	return &cfg, nil
}

func (s ServerConfig) IsDevelopment() bool {
	switch strings.ToLower(s.AppEnv) {
	case "dev", "development", "local":
		return true
	}
	return false
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
