package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"dev" validate:"required"`
	Log         struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Analysis struct {
		Ticker      string `yaml:"ticker" default:"^GSPC" validate:"required"`
		Start       string `yaml:"start" default:"2010-01-01" validate:"required,datetime=2006-01-02"`
		End         string `yaml:"end" default:"2025-12-31" validate:"required,datetime=2006-01-02"`
		Window      int    `yaml:"window" default:"30" validate:"gt=1"`
		TradingDays int    `yaml:"trading_days" default:"252" validate:"gt=0"`
	} `yaml:"analysis"`
	Provider struct {
		Name    string        `yaml:"name" default:"yahoo" validate:"oneof=yahoo stooq"`
		Timeout time.Duration `yaml:"timeout" default:"15s"`
	} `yaml:"provider"`
	Cache struct {
		Enabled bool          `yaml:"enabled" default:"true"`
		Backend string        `yaml:"backend" default:"memory" validate:"oneof=memory redis layered"`
		TTL     time.Duration `yaml:"ttl" default:"24h"`
		Redis   struct {
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"regimescope"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Output struct {
		Dir    string `yaml:"dir" default:"out"`
		Format string `yaml:"format" default:"csv" validate:"oneof=csv json parquet"`
		Charts bool   `yaml:"charts" default:"true"`
	} `yaml:"output"`
	Backend struct {
		Type string `yaml:"type" default:"none" validate:"oneof=none clickhouse kafka"`
	} `yaml:"backend"`
	ClickHouse struct {
		Host         string        `yaml:"host" default:"localhost"`
		Port         int           `yaml:"port" default:"9000"`
		Database     string        `yaml:"database" default:"regimescope"`
		User         string        `yaml:"user" default:"default"`
		Password     string        `yaml:"password"`
		UseHTTP      bool          `yaml:"use_http"`
		AsyncInsert  bool          `yaml:"async_insert"`
		WaitForAsync bool          `yaml:"wait_for_async_insert"`
		DialTimeout  time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic" default:"regime-reports"`
		RequiredAcks int      `yaml:"required_acks" default:"-1"`
		Compression  string   `yaml:"compression" default:"gzip"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	Server struct {
		Enabled         bool          `yaml:"enabled"`
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
}

// Load reads and parses a YAML configuration file, applies defaults, and
// validates the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse builds a validated Config from raw YAML. Defaults are applied
// before the YAML is decoded over them, so an explicit false in the file
// survives a default of true.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("TICKER"); v != "" {
		c.Analysis.Ticker = v
	}
	if v := os.Getenv("ANALYSIS_START"); v != "" {
		c.Analysis.Start = v
	}
	if v := os.Getenv("ANALYSIS_END"); v != "" {
		c.Analysis.End = v
	}
	if v := os.Getenv("PROVIDER"); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv("BACKEND"); v != "" {
		c.Backend.Type = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks struct tags plus the cross-field rules tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	start, err := c.StartTime()
	if err != nil {
		return err
	}
	end, err := c.EndTime()
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return fmt.Errorf("analysis.start %s must precede analysis.end %s", c.Analysis.Start, c.Analysis.End)
	}
	if c.Backend.Type == "kafka" && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers required when backend.type is kafka")
	}
	return nil
}

// StartTime returns the parsed analysis start date (UTC midnight).
func (c *Config) StartTime() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.Analysis.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("analysis.start: %w", err)
	}
	return t.UTC(), nil
}

// EndTime returns the parsed analysis end date (UTC midnight, inclusive).
func (c *Config) EndTime() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.Analysis.End)
	if err != nil {
		return time.Time{}, fmt.Errorf("analysis.end: %w", err)
	}
	return t.UTC(), nil
}
