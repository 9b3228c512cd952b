package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Ephemeris struct {
		ServiceURL    string        `yaml:"service_url"`
		Timeout       time.Duration `yaml:"timeout"`
		RetryAttempts int           `yaml:"retry_attempts"`
	} `yaml:"ephemeris"`
	Geocoder struct {
		BaseURL      string        `yaml:"base_url"`
		UserAgent    string        `yaml:"user_agent"`
		Language     string        `yaml:"language"`
		Timeout      time.Duration `yaml:"timeout"`
		CacheTTL     time.Duration `yaml:"cache_ttl"`
		RateCapacity float64       `yaml:"rate_capacity"`
		RateRefill   float64       `yaml:"rate_refill_per_sec"`
		Redis        struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"geocoder"`
	Chart struct {
		DefaultHouseSystem string `yaml:"default_house_system"`
		DefaultZodiac      string `yaml:"default_zodiac"`
		Stellium           struct {
			MinBodies      int     `yaml:"min_bodies"`
			MaxSpanEnabled bool    `yaml:"max_span_enabled"`
			MaxSpanDeg     float64 `yaml:"max_span_deg"`
		} `yaml:"stellium"`
	} `yaml:"chart"`
	Transits struct {
		DefaultStepHours int `yaml:"default_step_hours"`
		MaxEvents        int `yaml:"max_events"`
		Workers          int `yaml:"workers"`
	} `yaml:"transits"`
	Stream struct {
		Interval     time.Duration `yaml:"interval"`
		PingInterval time.Duration `yaml:"ping_interval"`
	} `yaml:"stream"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaults()

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

	if v := os.Getenv("EPHEMERIS_URL"); v != "" {
		c.Ephemeris.ServiceURL = v
	}
	if v := os.Getenv("GEOCODER_URL"); v != "" {
		c.Geocoder.BaseURL = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Geocoder.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Geocoder.Redis.Password = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Geocoder.UserAgent == "" {
		c.Geocoder.UserAgent = "sternentyp"
	}
	if c.Geocoder.Language == "" {
		c.Geocoder.Language = "de"
	}
	if c.Geocoder.CacheTTL <= 0 {
		c.Geocoder.CacheTTL = 24 * time.Hour
	}
	if c.Geocoder.RateCapacity <= 0 {
		c.Geocoder.RateCapacity = 1
	}
	if c.Geocoder.RateRefill <= 0 {
		c.Geocoder.RateRefill = 1
	}
	if c.Chart.DefaultHouseSystem == "" {
		c.Chart.DefaultHouseSystem = "P"
	}
	if c.Chart.DefaultZodiac == "" {
		c.Chart.DefaultZodiac = "tropical"
	}
	if c.Chart.Stellium.MinBodies <= 0 {
		c.Chart.Stellium.MinBodies = 3
	}
	if c.Chart.Stellium.MaxSpanDeg <= 0 {
		c.Chart.Stellium.MaxSpanDeg = 8
	}
	if c.Transits.DefaultStepHours <= 0 {
		c.Transits.DefaultStepHours = 6
	}
	if c.Transits.MaxEvents <= 0 {
		c.Transits.MaxEvents = 200
	}
	if c.Transits.Workers <= 0 {
		c.Transits.Workers = 4
	}
	if c.Stream.Interval <= 0 {
		c.Stream.Interval = time.Minute
	}
	if c.Stream.PingInterval <= 0 {
		c.Stream.PingInterval = 30 * time.Second
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Ephemeris.ServiceURL == "" {
		return fmt.Errorf("ephemeris.service_url is required")
	}
	if c.Geocoder.BaseURL == "" {
		return fmt.Errorf("geocoder.base_url is required")
	}
	switch c.Chart.DefaultZodiac {
	case "tropical", "sidereal":
	default:
		return fmt.Errorf("chart.default_zodiac must be 'tropical' or 'sidereal', got '%s'", c.Chart.DefaultZodiac)
	}
	return nil
}
