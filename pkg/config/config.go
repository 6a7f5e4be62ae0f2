package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"500ms"`
		CORS            bool          `yaml:"cors" default:"true"`
		CORSOrigins     []string      `yaml:"cors_origins"`
	} `yaml:"server"`
	Log struct {
		Level      string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
		Output     string `yaml:"output" default:"stdout"`
		MaxSizeMB  int    `yaml:"max_size_mb" default:"100"`
		MaxBackups int    `yaml:"max_backups" default:"3"`
		MaxAgeDays int    `yaml:"max_age_days" default:"28"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Pipeline struct {
		LookbackDays      int       `yaml:"lookback_days" default:"90" validate:"gte=0,lte=3650"`
		HorizonDays       int       `yaml:"horizon_days" default:"7" validate:"gte=1,lte=365"`
		RiskFreeRate      float64   `yaml:"risk_free_rate" default:"0.02" validate:"gte=0,lte=1"`
		InvestmentAmounts []float64 `yaml:"investment_amounts" default:"[1000,5000,10000,25000]" validate:"min=1,dive,gt=0"`
		// random: unseeded requests get a fresh seed; daily: seed derives from symbol and day
		SeedMode string `yaml:"seed_mode" default:"random" validate:"oneof=random daily"`
	} `yaml:"pipeline"`
	Instruments struct {
		File string `yaml:"file"`
	} `yaml:"instruments"`
	Source struct {
		Type string `yaml:"type" default:"synthetic" validate:"oneof=synthetic clickhouse"`
	} `yaml:"source"`
	ClickHouse struct {
		Host             string        `yaml:"host" default:"localhost"`
		Port             int           `yaml:"port" default:"9000"`
		Database         string        `yaml:"database" default:"pricecast"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		Table            string        `yaml:"table" default:"pricecast.daily_bars"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"10s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"30s"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic" default:"pricecast.reports"`
		RequiredAcks int           `yaml:"required_acks" default:"-1"`
		Compression  string        `yaml:"compression" default:"gzip" validate:"oneof=gzip snappy lz4 zstd"`
		MaxAttempts  int           `yaml:"max_attempts" default:"3"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
		Linger       time.Duration `yaml:"linger" default:"50ms"`
		Async        bool          `yaml:"async"`
	} `yaml:"kafka"`
	Cache struct {
		Type       string        `yaml:"type" default:"memory" validate:"oneof=memory redis layered none"`
		TTL        time.Duration `yaml:"ttl" default:"10m"`
		MaxEntries int           `yaml:"max_entries" default:"1024"`
		// layered only: lifetime of entries promoted from redis into memory
		L1TTL time.Duration `yaml:"l1_ttl" default:"1m"`
		Redis struct {
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"pricecast:"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	RateLimit struct {
		Enabled bool          `yaml:"enabled" default:"true"`
		RPS     float64       `yaml:"rps" default:"5" validate:"gt=0"`
		Burst   int           `yaml:"burst" default:"10" validate:"gte=1"`
		IdleTTL time.Duration `yaml:"idle_ttl" default:"10m"`
	} `yaml:"ratelimit"`
	Warmer struct {
		Enabled bool     `yaml:"enabled"`
		Cron    string   `yaml:"cron" default:"0 6 * * *"`
		Symbols []string `yaml:"symbols"`
	} `yaml:"warmer"`
}

var validate = validator.New()

// Default returns a config with every default applied.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file over the defaults.
// An empty path yields the defaults alone.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads .env (if present), then the YAML file, then applies environment overrides.
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := c.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("PRICECAST_ENV"); v != "" {
		c.Environment = v
	}
	if v := getenv("PRICECAST_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PRICECAST_PORT: %w", err)
		}
		c.Server.Port = p
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := getenv("SOURCE_TYPE"); v != "" {
		c.Source.Type = v
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = splitList(v)
		c.Kafka.Enabled = true
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Type = "redis"
	}
	if v := getenv("WARMER_SYMBOLS"); v != "" {
		c.Warmer.Symbols = splitList(v)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when kafka is enabled")
	}
	if c.Warmer.Enabled && len(c.Warmer.Symbols) == 0 {
		return fmt.Errorf("warmer.symbols is required when the warmer is enabled")
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
