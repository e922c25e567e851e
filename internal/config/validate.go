package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. The API key is deliberately
// not required here; the translator reports a missing credential when a
// request is actually made.
func (c *Config) Validate() error {
	if err := c.validateTranslation(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTranslation() error {
	if strings.TrimSpace(c.Translation.TargetLanguage) == "" {
		return errors.New("translation.target_language must be set")
	}
	if strings.TrimSpace(c.Translation.Model) == "" {
		return errors.New("translation.model must be set")
	}
	if c.Translation.MaxTokens <= 0 {
		return errors.New("translation.max_tokens must be positive")
	}
	if c.Translation.Temperature < 0 || c.Translation.Temperature > 2 {
		return errors.New("translation.temperature must be between 0 and 2")
	}
	if c.Translation.Concurrency < 0 {
		return errors.New("translation.concurrency must be zero (unbounded) or positive")
	}
	if c.Translation.OutputPrefix == "" {
		return errors.New("translation.output_prefix must be set")
	}
	if strings.ContainsAny(c.Translation.OutputPrefix, `/\`) {
		return fmt.Errorf("translation.output_prefix %q must not contain path separators", c.Translation.OutputPrefix)
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.LLM.RetryAttempts < 1 {
		return errors.New("llm.retry_attempts must be at least 1")
	}
	if !strings.HasPrefix(c.LLM.BaseURL, "http://") && !strings.HasPrefix(c.LLM.BaseURL, "https://") {
		return fmt.Errorf("llm.base_url %q must be an http(s) URL", c.LLM.BaseURL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}
