package config

import (
	"github.com/dirview/dirview/internal/listing"
	"github.com/dirview/dirview/internal/normalize"
)

type Config struct {
	ConfigVersion int           `yaml:"configVersion" toml:"configVersion"`
	Paths         PathsConfig   `yaml:"paths" toml:"paths"`
	Sort          SortConfig    `yaml:"sort" toml:"sort"`
	Server        ServerConfig  `yaml:"server" toml:"server"`
	Logging       LoggingConfig `yaml:"logging" toml:"logging"`
	Metrics       MetricsConfig `yaml:"metrics" toml:"metrics"`

	baseDir string `yaml:"-" toml:"-"`
}

type PathsConfig struct {
	Style string `yaml:"style" toml:"style"`
}

type SortConfig struct {
	Criteria         string `yaml:"criteria" toml:"criteria"`
	Order            string `yaml:"order" toml:"order"`
	DirectoriesFirst bool   `yaml:"directoriesFirst" toml:"directoriesFirst"`
}

type ServerConfig struct {
	Listen       string          `yaml:"listen" toml:"listen"`
	MaxBodyBytes int64           `yaml:"maxBodyBytes" toml:"maxBodyBytes"`
	RateLimit    RateLimitConfig `yaml:"rateLimit" toml:"rateLimit"`
}

type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	RPS     float64 `yaml:"rps" toml:"rps"`
	Burst   int     `yaml:"burst" toml:"burst"`
}

type LoggingConfig struct {
	Level    string `yaml:"level" toml:"level"`
	Format   string `yaml:"format" toml:"format"`
	EventLog string `yaml:"eventLog" toml:"eventLog"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Listen  string `yaml:"listen" toml:"listen"`
}

const (
	StyleUnix    = "unix"
	StyleWindows = "windows"

	defaultMaxBodyBytes = 1 << 20
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		ConfigVersion: 1,
		Paths:         PathsConfig{Style: StyleUnix},
		Sort: SortConfig{
			Criteria:         string(listing.CriteriaName),
			Order:            listing.Ascending.String(),
			DirectoriesFirst: true,
		},
		Server: ServerConfig{
			Listen:       ":8090",
			MaxBodyBytes: defaultMaxBodyBytes,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Metrics: MetricsConfig{Listen: ":9090"},
	}
}

func (c *Config) BaseDir() string {
	return c.baseDir
}

func (c *Config) ResolvePath(path string) string {
	return c.resolvePath(path)
}

// Normalizer returns the path normalizer for the configured path style.
func (c *Config) Normalizer() normalize.Normalizer {
	if c.Paths.Style == StyleWindows {
		return normalize.New(normalize.WindowsRoot)
	}
	return normalize.Unix()
}

// SortConfig converts the sort section. Call Validate first; invalid values
// fall back to the defaults.
func (c *Config) SortConfig() listing.SortConfig {
	criteria, err := listing.ParseCriteria(c.Sort.Criteria)
	if err != nil {
		criteria = listing.CriteriaName
	}
	order, err := listing.ParseOrder(c.Sort.Order)
	if err != nil {
		order = listing.Ascending
	}
	return listing.SortConfig{
		Criteria:         criteria,
		Order:            order,
		DirectoriesFirst: c.Sort.DirectoriesFirst,
	}
}
