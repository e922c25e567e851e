package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lingosub/internal/config"
	"lingosub/internal/language"
	"lingosub/internal/services"
)

var skipConfigLoad = map[string]string{"skipConfigLoad": "true"}

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	configCmd.AddCommand(
		newConfigInitCommand(ctx),
		newConfigShowCommand(ctx),
		newConfigValidateCommand(ctx),
	)
	return configCmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample configuration",
		Long:        "Write a sample configuration to --path, the global --config path, or ~/.config/lingosub/config.toml, in that order.",
		Annotations: skipConfigLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath, *ctx.configFlag)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "config", "init", "resolve path", err)
			}
			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return services.Wrap(services.ErrValidation, "config", "init",
						fmt.Sprintf("%s already exists (use --overwrite to replace it)", target), nil)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set llm.api_key (or export OPENAI_API_KEY) before running lingosub translate.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

// initTarget picks the first non-empty of the command and global paths,
// falling back to the per-user default.
func initTarget(paths ...string) (string, error) {
	for _, candidate := range paths {
		if candidate = strings.TrimSpace(candidate); candidate != "" {
			return config.ExpandPath(candidate)
		}
	}
	return config.DefaultConfigPath()
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (API key masked)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			data, err := cfg.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load and validate the configuration",
		Annotations: skipConfigLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(strings.TrimSpace(*ctx.configFlag))
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "config", "validate", "", err)
			}

			out := cmd.OutOrStdout()
			if exists {
				fmt.Fprintf(out, "Config path: %s\n", path)
			} else {
				fmt.Fprintf(out, "No config file at %s; using defaults\n", path)
			}
			fmt.Fprintf(out, "Target: %s, model %s, budget %d words, concurrency %d\n",
				language.DisplayName(cfg.Translation.TargetLanguage), cfg.Translation.Model,
				cfg.Translation.MaxTokens, cfg.Translation.Concurrency)
			if cfg.LLM.APIKey == "" {
				fmt.Fprintln(out, "Warning: no API key configured; translate and check will fail")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
