package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const configPathEnv = "CONFIG_PATH_BOOKING_SERVICE"

// SMTPConfig is optional: with an empty Host no confirmation e-mails are sent.
type SMTPConfig struct {
	Host         string        `yaml:"host" env:"SMTP_HOST"`
	Port         int           `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username     string        `yaml:"username" env:"SMTP_USERNAME"`
	Password     string        `yaml:"password" env:"SMTP_PASSWORD"`
	SenderEmail  string        `yaml:"sender_email" env:"SMTP_SENDER_EMAIL" env-default:"bookings@shalean.co.za"`
	Encryption   string        `yaml:"encryption" env:"SMTP_ENCRYPTION" env-default:"tls"`
	ServerName   string        `yaml:"server_name" env:"SMTP_SERVER_NAME"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SMTP_WRITE_TIMEOUT" env-default:"10s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SMTP_READ_TIMEOUT" env-default:"10s"`
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

type CatalogCacheConfig struct {
	TTL time.Duration `yaml:"ttl" env:"CATALOG_CACHE_TTL" env-default:"5m"`
}

type BookingStateConfig struct {
	TTL time.Duration `yaml:"ttl" env:"BOOKING_STATE_TTL" env-default:"72h"`
}

// StripeConfig is optional: with an empty SecretKey payment endpoints answer
// 503.
type StripeConfig struct {
	SecretKey      string `yaml:"secret_key" env:"STRIPE_SECRET_KEY"`
	PublishableKey string `yaml:"publishable_key" env:"STRIPE_PUBLISHABLE_KEY"`
	BackendURL     string `yaml:"backend_url" env:"STRIPE_BACKEND_URL"`
}

func (c StripeConfig) Enabled() bool {
	return c.SecretKey != ""
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path" env:"METRICS_PATH" env-default:"/metrics"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled" env:"TRACING_ENABLED" env-default:"false"`
	Endpoint    string  `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4317"`
	ServiceName string  `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"booking-service"`
	SampleRatio float64 `yaml:"sample_ratio" env:"TRACING_SAMPLE_RATIO" env-default:"1"`
}

type EventsConfig struct {
	BookingCreated       string `yaml:"booking_created" env:"NATS_SUBJECT_BOOKING_CREATED" env-default:"booking.created"`
	BookingStatusUpdated string `yaml:"booking_status_updated" env:"NATS_SUBJECT_BOOKING_STATUS" env-default:"booking.status.updated"`
	PaymentVerified      string `yaml:"payment_verified" env:"NATS_SUBJECT_PAYMENT_VERIFIED" env-default:"payment.verified"`
}

type Config struct {
	Env          string             `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   HTTPServerConfig   `yaml:"http_server"`
	MongoDB      MongoDBConfig      `yaml:"mongo"`
	Redis        RedisConfig        `yaml:"redis"`
	NATS         NATSConfig         `yaml:"nats"`
	Logger       LoggerConfig       `yaml:"logger"`
	BookingState BookingStateConfig `yaml:"booking_state"`
	CatalogCache CatalogCacheConfig `yaml:"catalog_cache"`
	SMTP         SMTPConfig         `yaml:"smtp"`
	Stripe       StripeConfig       `yaml:"stripe"`
	Auth         AuthConfig         `yaml:"auth"`
	Metrics      MetricsConfig      `yaml:"metrics"`
	Tracing      TracingConfig      `yaml:"tracing"`
}

type HTTPServerConfig struct {
	Port            string        `yaml:"port" env:"HTTP_PORT_BOOKING_SERVICE" env-default:"8085"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	TimeoutGraceful time.Duration `yaml:"timeout_graceful_shutdown" env-default:"15s"`
}

type MongoDBConfig struct {
	URI      string `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	User     string `yaml:"user" env:"MONGO_USER"`
	Password string `yaml:"password" env:"MONGO_PASSWORD"`
	Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"booking_service_db"`

	MaxPoolSize uint64 `yaml:"max_pool_size" env:"MONGO_MAX_POOL_SIZE" env-default:"50"`

	// SeedCatalog fills empty catalog collections with the built-in data on startup.
	SeedCatalog bool `yaml:"seed_catalog" env:"MONGO_SEED_CATALOG" env-default:"false"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`

	// OpTimeout bounds every read and write on a pooled connection.
	OpTimeout time.Duration `yaml:"op_timeout" env:"REDIS_OP_TIMEOUT" env-default:"3s"`
}

type NATSConfig struct {
	URL    string       `yaml:"url" env:"NATS_URL" env-default:"nats://localhost:4222"`
	Events EventsConfig `yaml:"events"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding   string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
	TimeFormat string `yaml:"time_format" env:"LOG_TIME_FORMAT" env-default:"2006-01-02T15:04:05.000Z07:00"`
}

func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	err := cleanenv.ReadConfig(path, &cfg)
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			log.Printf("Warning: Config file not found at %s, attempting to load from environment variables only.", path)
			if errEnv := cleanenv.ReadEnv(&cfg); errEnv != nil {
				return nil, errEnv
			}
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	configPath := os.Getenv(configPathEnv)
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	return cfg
}
