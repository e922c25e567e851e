package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"lingosub/internal/config"
	"lingosub/internal/logging"
	"lingosub/internal/services"
	"lingosub/internal/services/translator"
	"lingosub/internal/subtitles"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	verbose      *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string, verbose *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		verbose:      verbose,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if c.verboseEnabled() {
			cfg.Logging.Level = "debug"
		} else if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "validate", "", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = services.Wrap(services.ErrConfiguration, "logging", "init", "", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) verboseEnabled() bool {
	return c.verbose != nil && *c.verbose
}

func (c *commandContext) newTranslator(cfg *config.Config, logger *slog.Logger) *translator.Client {
	return translator.NewClient(translator.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	},
		translator.WithRetryMaxAttempts(cfg.LLM.RetryAttempts),
		translator.WithLogger(logging.NewComponentLogger(logger, "translator")),
	)
}

// loadDocument parses path, tagging failures for exit code mapping.
func loadDocument(path string) (subtitles.Document, error) {
	doc, err := subtitles.ParseFile(path)
	if err == nil {
		return doc, nil
	}
	var parseErr *subtitles.ParseError
	switch {
	case errors.Is(err, os.ErrNotExist):
		return subtitles.Document{}, services.Wrap(services.ErrNotFound, "parse", "open", path, err)
	case errors.As(err, &parseErr):
		return subtitles.Document{}, services.Wrap(services.ErrValidation, "parse", path, "", err)
	default:
		return subtitles.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
