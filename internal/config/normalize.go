package config

import (
	"fmt"
	"os"
	"strings"

	"lingosub/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizeTranslation(); err != nil {
		return err
	}
	c.normalizeLLM()
	return c.normalizeLogging()
}

func (c *Config) normalizeTranslation() error {
	c.Translation.Model = strings.TrimSpace(c.Translation.Model)
	if c.Translation.Model == "" {
		c.Translation.Model = defaultModel
	}
	c.Translation.OutputPrefix = strings.TrimSpace(c.Translation.OutputPrefix)

	target := strings.TrimSpace(c.Translation.TargetLanguage)
	if target == "" {
		target = defaultTargetLanguage
	}
	lang, err := language.Resolve(target)
	if err != nil {
		return fmt.Errorf("translation.target_language: %w", err)
	}
	c.Translation.TargetLanguage = lang.Code
	return nil
}

func (c *Config) normalizeLLM() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
	c.LLM.BaseURL = strings.TrimRight(strings.TrimSpace(c.LLM.BaseURL), "/")
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeout
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	dir, err := ExpandPath(strings.TrimSpace(c.Logging.Dir))
	if err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	c.Logging.Dir = dir
	return nil
}
