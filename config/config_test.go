package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/botirk38/embedscore/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, types.LookupWord2Vec, cfg.LookupType())
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "text", cfg.Logging.Format)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, types.LookupWord2Vec, cfg.LookupType())
	})

	t.Run("yaml file", func(t *testing.T) {
		path := writeFile(t, "config.yaml", `
lookup:
  type: redis
  redis:
    url: redis://cache:6379/1
scoring:
  metrics: [vector_average, greedy_matching]
  workers: 4
output:
  prefix: out
logging:
  level: debug
  format: json
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, types.LookupRedis, cfg.LookupType())
		assert.Equal(t, "redis://cache:6379/1", cfg.Lookup.Redis.URL)
		assert.Equal(t, "embedscore:", cfg.Lookup.Redis.Prefix)
		assert.Equal(t, []string{"vector_average", "greedy_matching"}, cfg.Scoring.Metrics)
		assert.Equal(t, 4, cfg.Scoring.Workers)
		assert.Equal(t, "out", cfg.Output.Prefix)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
	})

	t.Run("provider defaults", func(t *testing.T) {
		path := writeFile(t, "config.yaml", "lookup:\n  type: gemini\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "GEMINI_API_KEY", cfg.Lookup.Provider.APIKeyEnv)
		assert.Equal(t, "text-embedding-004", cfg.Lookup.Provider.Model)
		assert.Equal(t, 60, cfg.Lookup.Provider.TimeoutSecs)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeFile(t, "config.yaml", "lookup: [")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("EMBEDSCORE_LOOKUP", "openai")
		t.Setenv("EMBEDSCORE_EMBEDDINGS", "/data/vectors.bin")
		t.Setenv("EMBEDSCORE_WORKERS", "8")
		t.Setenv("EMBEDSCORE_LOG_LEVEL", "warn")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, types.LookupOpenAI, cfg.LookupType())
		assert.Equal(t, "/data/vectors.bin", cfg.Lookup.Path)
		assert.Equal(t, 8, cfg.Scoring.Workers)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})

	t.Run("invalid workers override", func(t *testing.T) {
		t.Setenv("EMBEDSCORE_WORKERS", "many")
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Lookup.Type = "glove"
	assert.ErrorIs(t, cfg.Validate(), types.ErrUnknownLookup)

	cfg.Lookup.Type = string(types.LookupWord2Vec)
	cfg.Scoring.Workers = -1
	assert.Error(t, cfg.Validate())
}

func TestToLookupConfig(t *testing.T) {
	t.Setenv("MY_KEY", "secret")

	cfg := &AppConfig{Lookup: LookupConfig{
		Type:  "openai",
		Path:  "vectors.txt",
		Text:  true,
		Limit: 10,
		Redis: RedisConfig{URL: "localhost:6379", Prefix: "p:"},
		Provider: ProviderConfig{
			APIKeyEnv:   "MY_KEY",
			Model:       "m",
			Dimensions:  64,
			CacheSize:   5,
			TimeoutSecs: 3,
		},
	}}

	lc := cfg.ToLookupConfig()
	assert.Equal(t, "vectors.txt", lc.Path)
	assert.False(t, lc.Binary)
	assert.Equal(t, 10, lc.Limit)
	assert.Equal(t, "localhost:6379", lc.ConnectionString)
	assert.Equal(t, "p:", lc.Prefix)
	assert.Equal(t, "secret", lc.APIKey)
	assert.Equal(t, "m", lc.Model)
	assert.Equal(t, 64, lc.Dimensions)
	assert.Equal(t, 5, lc.CacheSize)
	assert.Equal(t, 3*time.Second, lc.Timeout)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want, err := Load("")
	require.NoError(t, err)
	want.Scoring.Metrics = []string{"vector_extrema"}

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadEnv(t *testing.T) {
	path := writeFile(t, ".env", "EMBEDSCORE_TEST_VALUE=from-dotenv\n")
	t.Setenv("EMBEDSCORE_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("EMBEDSCORE_TEST_VALUE"))

	require.NoError(t, LoadEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "from-dotenv", os.Getenv("EMBEDSCORE_TEST_VALUE"))
}

func TestEnvLookupGetsDefaults(t *testing.T) {
	t.Setenv("EMBEDSCORE_LOOKUP", "openai")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Lookup.Provider.APIKeyEnv)
	assert.Equal(t, "text-embedding-3-small", cfg.Lookup.Provider.Model)
}

func TestApplyDefaultsAfterTypeChange(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Empty(t, cfg.Lookup.Redis.URL)

	cfg.Lookup.Type = string(types.LookupRedis)
	cfg.ApplyDefaults()
	assert.Equal(t, "localhost:6379", cfg.Lookup.Redis.URL)
	assert.Equal(t, "embedscore:", cfg.Lookup.Redis.Prefix)

	cfg.Lookup.Redis.URL = "cache:6380"
	cfg.ApplyDefaults()
	assert.Equal(t, "cache:6380", cfg.Lookup.Redis.URL, "explicit values are kept")
}

func TestDefault(t *testing.T) {
	t.Setenv("EMBEDSCORE_LOOKUP", "gemini")

	cfg := Default()
	assert.Equal(t, types.LookupWord2Vec, cfg.LookupType(), "environment is ignored")
	assert.Equal(t, 60, cfg.Lookup.Provider.TimeoutSecs)
	assert.NoError(t, cfg.Validate())
}

func TestTokenSimilarity(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "config.yaml", "scoring:\n  token_similarity: euclidean\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "euclidean", cfg.Scoring.TokenSimilarity)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("EMBEDSCORE_TOKEN_SIMILARITY", "pearson")
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "pearson", cfg.Scoring.TokenSimilarity)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := Default()
		cfg.Scoring.TokenSimilarity = "jaccard"
		assert.ErrorIs(t, cfg.Validate(), types.ErrUnknownSimilarity)
	})
}
