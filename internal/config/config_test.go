package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingosub/internal/config"
)

// isolate points HOME and the working directory at empty temp dirs and clears
// variables that would otherwise leak into Load.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	for _, key := range []string{
		"OPENAI_API_KEY",
		"LINGOSUB_TARGET_LANGUAGE",
		"LINGOSUB_MODEL",
		"LINGOSUB_TEMPERATURE",
		"LINGOSUB_MAX_TOKENS",
		"LINGOSUB_CONCURRENCY",
		"LINGOSUB_OUTPUT_PREFIX",
		"LINGOSUB_API_KEY",
		"LINGOSUB_BASE_URL",
		"LINGOSUB_TIMEOUT_SECONDS",
		"LINGOSUB_RETRY_ATTEMPTS",
		"LINGOSUB_LOG_FORMAT",
		"LINGOSUB_LOG_LEVEL",
		"LINGOSUB_LOG_DIR",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	home := isolate(t)

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(home, ".config", "lingosub", "config.toml"), resolved)

	assert.Equal(t, "fr", cfg.Translation.TargetLanguage)
	assert.Equal(t, "gpt-3.5-turbo", cfg.Translation.Model)
	assert.InDelta(t, 0.68, cfg.Translation.Temperature, 1e-9)
	assert.Equal(t, 1000, cfg.Translation.MaxTokens)
	assert.Equal(t, 4, cfg.Translation.Concurrency)
	assert.Equal(t, "translated_", cfg.Translation.OutputPrefix)
	assert.Equal(t, "https://api.openai.com/v1", cfg.LLM.BaseURL)
	assert.Equal(t, 3, cfg.LLM.RetryAttempts)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeConfig(t, path, `
[translation]
target_language = "German"
model = "gpt-4o-mini"
temperature = 0.2
max_tokens = 250
concurrency = 0

[llm]
api_key = "  sk-file  "
base_url = "http://localhost:8080/v1/"

[logging]
format = "JSON"
level = "Debug"
dir = "~/logs"
`)

	cfg, resolved, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, path, resolved)

	assert.Equal(t, "de", cfg.Translation.TargetLanguage)
	assert.Equal(t, "gpt-4o-mini", cfg.Translation.Model)
	assert.InDelta(t, 0.2, cfg.Translation.Temperature, 1e-9)
	assert.Equal(t, 250, cfg.Translation.MaxTokens)
	assert.Equal(t, 0, cfg.Translation.Concurrency)
	assert.Equal(t, "translated_", cfg.Translation.OutputPrefix, "unset keys keep defaults")
	assert.Equal(t, "sk-file", cfg.LLM.APIKey)
	assert.Equal(t, "http://localhost:8080/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), "logs"), cfg.Logging.Dir)
}

func TestLoadFindsProjectConfig(t *testing.T) {
	isolate(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	writeConfig(t, filepath.Join(wd, "lingosub.toml"), "[translation]\nmax_tokens = 42\n")

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "lingosub.toml", filepath.Base(resolved))
	assert.Equal(t, 42, cfg.Translation.MaxTokens)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "typo.toml")
	writeConfig(t, path, "[translation]\nmax_token = 10\n")

	_, _, _, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestEnvOverridesConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "lingosub.toml")

	var file struct {
		Translation struct {
			Model     string `toml:"model"`
			MaxTokens int    `toml:"max_tokens"`
		} `toml:"translation"`
		LLM struct {
			APIKey string `toml:"api_key"`
		} `toml:"llm"`
	}
	file.Translation.Model = "file-model"
	file.Translation.MaxTokens = 500
	file.LLM.APIKey = "file-key"
	data, err := toml.Marshal(file)
	require.NoError(t, err)
	writeConfig(t, path, string(data))

	t.Setenv("LINGOSUB_MODEL", "env-model")
	t.Setenv("LINGOSUB_MAX_TOKENS", "64")
	t.Setenv("LINGOSUB_TEMPERATURE", "0")
	t.Setenv("LINGOSUB_API_KEY", "env-key")
	t.Setenv("LINGOSUB_TARGET_LANGUAGE", "ja")

	cfg, _, _, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-model", cfg.Translation.Model)
	assert.Equal(t, 64, cfg.Translation.MaxTokens)
	assert.Zero(t, cfg.Translation.Temperature)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
	assert.Equal(t, "ja", cfg.Translation.TargetLanguage)
}

func TestOpenAIKeyFallback(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	cfg, _, _, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "sk-openai", cfg.LLM.APIKey)
}

func TestDotEnvBesideConfigFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "lingosub.toml")
	writeConfig(t, path, "")
	writeConfig(t, filepath.Join(dir, ".env"), "OPENAI_API_KEY=sk-dotenv\nLINGOSUB_CONCURRENCY=9\n")
	t.Cleanup(func() {
		os.Unsetenv("OPENAI_API_KEY")
		os.Unsetenv("LINGOSUB_CONCURRENCY")
	})

	cfg, _, _, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-dotenv", cfg.LLM.APIKey)
	assert.Equal(t, 9, cfg.Translation.Concurrency)
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	writeConfig(t, envPath, "LINGOSUB_MODEL=from-dotenv\n")
	t.Setenv("LINGOSUB_MODEL", "from-shell")

	require.NoError(t, config.LoadDotEnv(filepath.Join(dir, "missing.env"), envPath))
	assert.Equal(t, "from-shell", os.Getenv("LINGOSUB_MODEL"))
}

func TestCreateSample(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, config.CreateSample(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[translation]")

	cfg, _, exists, err := config.Load(path)
	require.NoError(t, err, "sample config must load cleanly")
	assert.True(t, exists)
	assert.Equal(t, config.Default().Translation.MaxTokens, cfg.Translation.MaxTokens)
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"zero max tokens", func(c *config.Config) { c.Translation.MaxTokens = 0 }, "max_tokens"},
		{"temperature too high", func(c *config.Config) { c.Translation.Temperature = 2.5 }, "temperature"},
		{"negative temperature", func(c *config.Config) { c.Translation.Temperature = -0.1 }, "temperature"},
		{"negative concurrency", func(c *config.Config) { c.Translation.Concurrency = -1 }, "concurrency"},
		{"empty prefix", func(c *config.Config) { c.Translation.OutputPrefix = "" }, "output_prefix"},
		{"prefix with separator", func(c *config.Config) { c.Translation.OutputPrefix = "out/" }, "output_prefix"},
		{"no retries", func(c *config.Config) { c.LLM.RetryAttempts = 0 }, "retry_attempts"},
		{"bad base url", func(c *config.Config) { c.LLM.BaseURL = "ftp://example" }, "base_url"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	cfg := config.Default()
	assert.NoError(t, cfg.Validate(), "defaults are valid without an API key")
}

func TestLoadRejectsUnknownLanguage(t *testing.T) {
	isolate(t)
	t.Setenv("LINGOSUB_TARGET_LANGUAGE", "klingonese")

	_, _, _, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "translation.target_language")
}

func TestEncodeMasksAPIKey(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.APIKey = "sk-1234567890abcdef"

	data, err := cfg.Encode()
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "1234567890")
	assert.Contains(t, out, "sk-1")
	assert.True(t, strings.Contains(out, "[translation]"))
}

func TestOutputPath(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, filepath.Join("movies", "translated_film.srt"), cfg.OutputPath(filepath.Join("movies", "film.srt")))
}
