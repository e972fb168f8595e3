// Package config loads CLI settings from YAML, .env files and EMBEDSCORE_* variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/botirk38/embedscore/similarity"
	"github.com/botirk38/embedscore/types"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// RedisConfig contains connection details for a Redis embedding store.
type RedisConfig struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
	Prefix   string `yaml:"prefix"`
}

// ProviderConfig configures an embedding API provider.
type ProviderConfig struct {
	APIKeyEnv   string `yaml:"api_key_env"`
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	Dimensions  int    `yaml:"dimensions"`
	CacheSize   int    `yaml:"cache_size"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// LookupConfig selects and configures the embedding source.
type LookupConfig struct {
	Type     string         `yaml:"type"`
	Path     string         `yaml:"path"`
	Text     bool           `yaml:"text"`
	Limit    int            `yaml:"limit"`
	Redis    RedisConfig    `yaml:"redis"`
	Provider ProviderConfig `yaml:"provider"`
}

// ScoringConfig selects the metrics, the worker count and the token
// similarity used by greedy matching. An empty TokenSimilarity means cosine.
type ScoringConfig struct {
	Metrics         []string `yaml:"metrics"`
	Workers         int      `yaml:"workers"`
	TokenSimilarity string   `yaml:"token_similarity,omitempty"`
}

// OutputConfig controls where score documents are written.
type OutputConfig struct {
	Prefix string `yaml:"prefix"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Lookup  LookupConfig  `yaml:"lookup"`
	Scoring ScoringConfig `yaml:"scoring"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// Load reads a config from path and applies environment overrides. An empty
// path or a missing file yields the defaults.
func Load(path string) (*AppConfig, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// Default returns the configuration used when no file or environment is set.
func Default() *AppConfig {
	cfg := defaultConfig()
	cfg.ApplyDefaults()
	return cfg
}

// LoadEnv loads .env files into the process environment. Missing files are
// ignored; with no arguments ./.env is tried.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load env file %s: %w", f, err)
		}
	}
	return nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultConfigPath returns the default location for the CLI config file.
func DefaultConfigPath() string {
	if path := os.Getenv("EMBEDSCORE_CONFIG"); path != "" {
		return path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "embedscore", "config.yaml")
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Lookup:  LookupConfig{Type: string(types.LookupWord2Vec)},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// ApplyDefaults fills unset fields, including the per-lookup connection and
// model defaults. Call it again after changing Lookup.Type.
func (c *AppConfig) ApplyDefaults() {
	if c.Lookup.Type == "" {
		c.Lookup.Type = string(types.LookupWord2Vec)
	}
	switch types.LookupType(c.Lookup.Type) {
	case types.LookupRedis:
		if c.Lookup.Redis.URL == "" {
			c.Lookup.Redis.URL = "localhost:6379"
		}
		if c.Lookup.Redis.Prefix == "" {
			c.Lookup.Redis.Prefix = "embedscore:"
		}
	case types.LookupOpenAI:
		if c.Lookup.Provider.APIKeyEnv == "" {
			c.Lookup.Provider.APIKeyEnv = "OPENAI_API_KEY"
		}
		if c.Lookup.Provider.Model == "" {
			c.Lookup.Provider.Model = "text-embedding-3-small"
		}
	case types.LookupGemini:
		if c.Lookup.Provider.APIKeyEnv == "" {
			c.Lookup.Provider.APIKeyEnv = "GEMINI_API_KEY"
		}
		if c.Lookup.Provider.Model == "" {
			c.Lookup.Provider.Model = "text-embedding-004"
		}
	}
	if c.Lookup.Provider.TimeoutSecs == 0 {
		c.Lookup.Provider.TimeoutSecs = 60
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

func applyEnvOverrides(cfg *AppConfig) error {
	if v := os.Getenv("EMBEDSCORE_LOOKUP"); v != "" {
		cfg.Lookup.Type = v
	}
	if v := os.Getenv("EMBEDSCORE_EMBEDDINGS"); v != "" {
		cfg.Lookup.Path = v
	}
	if v := os.Getenv("EMBEDSCORE_REDIS_URL"); v != "" {
		cfg.Lookup.Redis.URL = v
	}
	if v := os.Getenv("EMBEDSCORE_MODEL"); v != "" {
		cfg.Lookup.Provider.Model = v
	}
	if v := os.Getenv("EMBEDSCORE_TOKEN_SIMILARITY"); v != "" {
		cfg.Scoring.TokenSimilarity = v
	}
	if v := os.Getenv("EMBEDSCORE_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid EMBEDSCORE_WORKERS %q: %w", v, err)
		}
		cfg.Scoring.Workers = n
	}
	if v := os.Getenv("EMBEDSCORE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("EMBEDSCORE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	return nil
}

// Validate checks the lookup type and numeric settings.
func (c *AppConfig) Validate() error {
	switch types.LookupType(c.Lookup.Type) {
	case types.LookupWord2Vec, types.LookupRedis, types.LookupOpenAI, types.LookupGemini:
	default:
		return fmt.Errorf("%w: %q", types.ErrUnknownLookup, c.Lookup.Type)
	}
	if c.Scoring.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Scoring.Workers)
	}
	if c.Lookup.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", c.Lookup.Limit)
	}
	if c.Scoring.TokenSimilarity != "" {
		if _, err := similarity.ByName(c.Scoring.TokenSimilarity); err != nil {
			return err
		}
	}
	return nil
}

// LookupType returns the configured embedding source.
func (c *AppConfig) LookupType() types.LookupType {
	return types.LookupType(c.Lookup.Type)
}

// ToLookupConfig flattens the lookup settings, resolving the API key from its
// environment variable.
func (c *AppConfig) ToLookupConfig() types.LookupConfig {
	l := c.Lookup
	lc := types.LookupConfig{
		Path:             l.Path,
		Binary:           !l.Text,
		Limit:            l.Limit,
		ConnectionString: l.Redis.URL,
		Username:         l.Redis.Username,
		Password:         l.Redis.Password,
		Database:         l.Redis.Database,
		Prefix:           l.Redis.Prefix,
		BaseURL:          l.Provider.BaseURL,
		Model:            l.Provider.Model,
		Dimensions:       l.Provider.Dimensions,
		CacheSize:        l.Provider.CacheSize,
		Timeout:          time.Duration(l.Provider.TimeoutSecs) * time.Second,
	}
	if l.Provider.APIKeyEnv != "" {
		lc.APIKey = os.Getenv(l.Provider.APIKeyEnv)
	}
	return lc
}
