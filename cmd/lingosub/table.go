package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// tableView is tabular command output that renders as a rounded table on
// terminals and as CSV elsewhere.
type tableView struct {
	headers []string
	rows    [][]string
	// rightAligned lists zero-based numeric columns.
	rightAligned []int
}

func (v tableView) writer() table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(toRow(v.headers, len(v.headers)))
	for _, row := range v.rows {
		tw.AppendRow(toRow(row, len(v.headers)))
	}
	return tw
}

// render writes the view to w, choosing the format from the destination.
func (v tableView) render(w io.Writer) error {
	if len(v.headers) == 0 {
		return nil
	}
	tw := v.writer()
	var rendered string
	if isTerminal(w) {
		tw.SetStyle(table.StyleRounded)
		configs := make([]table.ColumnConfig, 0, len(v.rightAligned))
		for _, col := range v.rightAligned {
			configs = append(configs, table.ColumnConfig{Number: col + 1, Align: text.AlignRight, AlignHeader: text.AlignLeft})
		}
		tw.SetColumnConfigs(configs)
		rendered = tw.Render()
	} else {
		rendered = tw.RenderCSV()
	}
	_, err := io.WriteString(w, rendered+"\n")
	return err
}

// toRow pads or truncates cells to width columns.
func toRow(cells []string, width int) table.Row {
	row := make(table.Row, width)
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = ""
		}
	}
	return row
}
