package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lingosub/internal/subtitles"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var maxTokens int

	cmd := &cobra.Command{
		Use:   "plan <file.srt>",
		Short: "Show how a subtitle file would be chunked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			budget := cfg.Translation.MaxTokens
			if cmd.Flags().Changed("max-tokens") {
				budget = maxTokens
			}

			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			chunks := subtitles.SplitByTokenBudget(doc, budget)

			out := cmd.OutOrStdout()
			if err := planView(chunks, budget).render(out); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d cues, %d tokens, %d chunks (budget %d)\n", doc.Len(), doc.Tokens(), len(chunks), budget)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "Word budget per request (default from config)")
	return cmd
}

func planView(chunks []subtitles.Document, budget int) tableView {
	rows := make([][]string, 0, len(chunks))
	for i, chunk := range chunks {
		first, last, _ := chunk.IndexRange()
		note := ""
		if chunk.Tokens() > budget {
			note = "oversized"
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			fmt.Sprintf("%d-%d", first, last),
			strconv.Itoa(chunk.Len()),
			strconv.Itoa(chunk.Tokens()),
			note,
		})
	}
	return tableView{
		headers:      []string{"Chunk", "Cues", "Count", "Tokens", "Note"},
		rows:         rows,
		rightAligned: []int{0, 2, 3},
	}
}
