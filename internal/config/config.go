package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Translation contains the settings handed to the translation orchestrator.
type Translation struct {
	TargetLanguage string  `toml:"target_language"`
	Model          string  `toml:"model"`
	Temperature    float64 `toml:"temperature"`
	MaxTokens      int     `toml:"max_tokens"`
	Concurrency    int     `toml:"concurrency"`
	OutputPrefix   string  `toml:"output_prefix"`
}

// LLM contains connection settings for the OpenAI-compatible provider.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	RetryAttempts  int    `toml:"retry_attempts"`
}

// Logging contains logging configuration.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for lingosub.
type Config struct {
	Translation Translation `toml:"translation"`
	LLM         LLM         `toml:"llm"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. Values are layered
// as defaults, then the TOML file, then .env and LINGOSUB_* environment
// overrides. A missing file is not an error; the returned bool reports whether
// one was read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := LoadDotEnv(filepath.Join(filepath.Dir(resolvedPath), ".env"), ".env"); err != nil {
		return nil, "", false, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// resolveConfigPath returns the explicit path, or the first existing default
// candidate. When nothing exists the per-user default is reported.
func resolveConfigPath(path string) (string, bool, error) {
	candidates := []string{defaultConfigPath, projectConfigName}
	if path != "" {
		candidates = []string{path}
	}

	var fallback string
	for _, candidate := range candidates {
		expanded, err := ExpandPath(candidate)
		if err != nil {
			return "", false, err
		}
		if fallback == "" {
			fallback = expanded
		}
		info, err := os.Stat(expanded)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			continue
		case err != nil:
			return "", false, fmt.Errorf("stat config: %w", err)
		case info.IsDir():
			if path != "" {
				return "", false, fmt.Errorf("config path %s is a directory", expanded)
			}
			continue
		}
		return expanded, true, nil
	}
	return fallback, false, nil
}

// ExpandPath resolves a leading ~ to the home directory and makes the result
// absolute. Empty input stays empty.
func ExpandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") || strings.HasPrefix(value, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, value[1:])
	}
	absolute, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the configuration as TOML. The API key is masked.
func (c *Config) Encode() ([]byte, error) {
	masked := *c
	if masked.LLM.APIKey != "" {
		masked.LLM.APIKey = maskSecret(masked.LLM.APIKey)
	}
	data, err := toml.Marshal(masked)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func maskSecret(value string) string {
	if len(value) <= 8 {
		return "********"
	}
	return value[:4] + "…" + value[len(value)-4:]
}

// OutputPath returns where the translation of source is written: the source
// directory with the configured prefix in front of the base name.
func (c *Config) OutputPath(source string) string {
	return filepath.Join(filepath.Dir(source), c.Translation.OutputPrefix+filepath.Base(source))
}
