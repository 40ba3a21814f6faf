package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config is the process configuration read from the environment.
type Config struct {
	Server   Server
	Auth     Auth
	Postgres Postgres
	Redis    Redis
	Kafka    Kafka
	Gate     Gate
	Log      Log
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"DEALS_ADDR" envDefault:":8080"`
	RequestTimeout  time.Duration `env:"DEALS_REQUEST_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"DEALS_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// SeedDemoData seeds three demo deals when running on in-memory stores.
	SeedDemoData bool `env:"DEALS_SEED_DEMO" envDefault:"true"`
}

type Auth struct {
	// Use a default for development - should be overridden in production
	JWTSigningKey string `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production" json:"-"`
	JWTIssuer     string `env:"JWT_ISSUER" envDefault:"matchmaker"`
	JWTAudience   string `env:"JWT_AUDIENCE" envDefault:"matchmaker-deals"`
}

// Postgres is optional. An empty DSN selects the in-memory stores.
type Postgres struct {
	DSN             string        `env:"PG_DSN" json:"-"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" envDefault:"5m"`
	Migrate         bool          `env:"PG_MIGRATE" envDefault:"true"`
}

func (p Postgres) Enabled() bool { return p.DSN != "" }

// Redis is optional. An empty URL disables the deal cache.
type Redis struct {
	URL          string        `env:"REDIS_URL" json:"-"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	DealCacheTTL time.Duration `env:"REDIS_DEAL_CACHE_TTL" envDefault:"1m"`
}

func (r Redis) Enabled() bool { return r.URL != "" }

type Kafka struct {
	Enabled           bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers           []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	ClientID          string   `env:"KAFKA_CLIENT_ID" envDefault:"deal-visibility"`
	RegistrationTopic string   `env:"KAFKA_REGISTRATION_TOPIC" envDefault:"deal.registrations"`
	Partitions        int32    `env:"KAFKA_TOPIC_PARTITIONS" envDefault:"3"`
	ReplicationFactor int16    `env:"KAFKA_TOPIC_REPLICATION" envDefault:"1"`
}

// Gate tunes batch resolution and the registration lookup breaker.
type Gate struct {
	BatchConcurrency int           `env:"GATE_BATCH_CONCURRENCY" envDefault:"8"`
	BreakerFailures  int           `env:"GATE_BREAKER_FAILURES" envDefault:"5"`
	BreakerSuccesses int           `env:"GATE_BREAKER_SUCCESSES" envDefault:"3"`
	BreakerCooldown  time.Duration `env:"GATE_BREAKER_COOLDOWN" envDefault:"30s"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Gate.BatchConcurrency <= 0 {
		return fmt.Errorf("GATE_BATCH_CONCURRENCY must be positive, got %d", c.Gate.BatchConcurrency)
	}
	if c.Gate.BreakerFailures <= 0 {
		return fmt.Errorf("GATE_BREAKER_FAILURES must be positive, got %d", c.Gate.BreakerFailures)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	return nil
}
