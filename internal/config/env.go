package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces environment overrides, e.g. LINGOSUB_MAX_TOKENS.
const EnvPrefix = "LINGOSUB"

// envOverrides mirrors the settings that may be overridden from the
// environment. Pointer fields stay nil when the variable is unset so file
// values survive.
type envOverrides struct {
	TargetLanguage string   `split_words:"true"`
	Model          string   `split_words:"true"`
	Temperature    *float64 `split_words:"true"`
	MaxTokens      *int     `split_words:"true"`
	Concurrency    *int     `split_words:"true"`
	OutputPrefix   string   `split_words:"true"`
	APIKey         string   `split_words:"true"`
	BaseURL        string   `split_words:"true"`
	TimeoutSeconds *int     `split_words:"true"`
	RetryAttempts  *int     `split_words:"true"`
	LogFormat      string   `split_words:"true"`
	LogLevel       string   `split_words:"true"`
	LogDir         string   `split_words:"true"`
}

// LoadDotEnv loads variables from each existing .env file in order. Missing
// files are skipped and variables already present in the environment win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}

	setString(&c.Translation.TargetLanguage, env.TargetLanguage)
	setString(&c.Translation.Model, env.Model)
	setString(&c.Translation.OutputPrefix, env.OutputPrefix)
	if env.Temperature != nil {
		c.Translation.Temperature = *env.Temperature
	}
	if env.MaxTokens != nil {
		c.Translation.MaxTokens = *env.MaxTokens
	}
	if env.Concurrency != nil {
		c.Translation.Concurrency = *env.Concurrency
	}

	setString(&c.LLM.APIKey, env.APIKey)
	setString(&c.LLM.BaseURL, env.BaseURL)
	if env.TimeoutSeconds != nil {
		c.LLM.TimeoutSeconds = *env.TimeoutSeconds
	}
	if env.RetryAttempts != nil {
		c.LLM.RetryAttempts = *env.RetryAttempts
	}

	setString(&c.Logging.Format, env.LogFormat)
	setString(&c.Logging.Level, env.LogLevel)
	setString(&c.Logging.Dir, env.LogDir)
	return nil
}

func setString(dst *string, value string) {
	if strings.TrimSpace(value) != "" {
		*dst = value
	}
}
