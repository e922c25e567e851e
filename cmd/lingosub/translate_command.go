package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lingosub/internal/config"
	"lingosub/internal/language"
	"lingosub/internal/logging"
	"lingosub/internal/services"
	"lingosub/internal/subtitles"
	"lingosub/internal/translation"
)

type translateFlags struct {
	target      string
	model       string
	temperature float64
	maxTokens   int
	concurrency int
	output      string
}

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var flags translateFlags

	cmd := &cobra.Command{
		Use:   "translate <file.srt>",
		Short: "Translate a subtitle file",
		Long: "Translate every cue of an SRT file and write the result next to it as " +
			"<output_prefix><name>. Nothing is written unless every chunk succeeds.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := applyTranslateFlags(cmd, *base, flags)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			input := args[0]
			output := strings.TrimSpace(flags.output)
			if output == "" {
				output = cfg.OutputPath(input)
			}
			if sameFile(input, output) {
				return services.Wrap(services.ErrValidation, "translate", "output", "output path equals input path", nil)
			}

			doc, err := loadDocument(input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			var opts []translation.Option
			if ctx.verboseEnabled() {
				opts = append(opts, translation.WithProgress(func(p translation.Progress) {
					fmt.Fprintf(errOut, "chunk %d done (%d/%d, %d cues)\n", p.Chunk, p.Completed, p.Total, p.Records)
				}))
			}
			orchestrator := translation.New(ctx.newTranslator(&cfg, logger), logger, opts...)
			translated, err := orchestrator.Translate(cmd.Context(), doc, translation.Config{
				TargetLanguage: cfg.Translation.TargetLanguage,
				Model:          cfg.Translation.Model,
				Temperature:    cfg.Translation.Temperature,
				MaxTokens:      cfg.Translation.MaxTokens,
				Concurrency:    cfg.Translation.Concurrency,
			})
			if err != nil {
				if errors.Is(err, subtitles.ErrResponseLengthMismatch) {
					return services.Wrap(services.ErrExternalTool, "translate", "pair response", "the model changed the number of cues", err)
				}
				return err
			}

			if err := subtitles.WriteFile(output, translated); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			logger.Info("translation written",
				logging.String(logging.FieldEventType, "output_written"),
				logging.String("path", output),
				logging.Int("records", translated.Len()),
			)
			fmt.Fprintf(out, "Translated %d cues into %s: %s\n",
				translated.Len(), language.DisplayName(cfg.Translation.TargetLanguage), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.target, "target", "t", "", "Target language (code or English name)")
	cmd.Flags().StringVarP(&flags.model, "model", "m", "", "Model name")
	cmd.Flags().Float64Var(&flags.temperature, "temperature", 0, "Sampling temperature (0-2)")
	cmd.Flags().IntVar(&flags.maxTokens, "max-tokens", 0, "Word budget per request")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 0, "Concurrent requests (0 = unbounded)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output path (default <dir>/<output_prefix><name>)")
	return cmd
}

// applyTranslateFlags layers explicitly set flags over cfg.
func applyTranslateFlags(cmd *cobra.Command, cfg config.Config, flags translateFlags) (config.Config, error) {
	changed := cmd.Flags().Changed
	if changed("target") {
		lang, err := language.Resolve(flags.target)
		if err != nil {
			return cfg, services.Wrap(services.ErrValidation, "translate", "--target", "", err)
		}
		cfg.Translation.TargetLanguage = lang.Code
	}
	if changed("model") {
		cfg.Translation.Model = strings.TrimSpace(flags.model)
	}
	if changed("temperature") {
		cfg.Translation.Temperature = flags.temperature
	}
	if changed("max-tokens") {
		cfg.Translation.MaxTokens = flags.maxTokens
	}
	if changed("concurrency") {
		cfg.Translation.Concurrency = flags.concurrency
	}
	if err := cfg.Validate(); err != nil {
		return cfg, services.Wrap(services.ErrValidation, "translate", "flags", "", err)
	}
	return cfg, nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
