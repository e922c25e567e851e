package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the provider credential and model with a tiny request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			client := ctx.newTranslator(cfg, logger)
			if err := client.HealthCheck(cmd.Context(), cfg.Translation.Model); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Provider OK: model %s at %s\n", cfg.Translation.Model, cfg.LLM.BaseURL)
			return nil
		},
	}
}
