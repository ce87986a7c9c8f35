package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/hazyhaar/wordcalc/pkg/history"
)

func (c *cli) historyCmd() *cobra.Command {
	var clearAll bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show every recorded attempt, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if clearAll {
				if err := a.calc.ClearHistory(cmd.Context()); err != nil {
					return err
				}
				_, err := fmt.Fprintln(c.stdout, "history cleared")
				return err
			}

			records, err := a.calc.History(cmd.Context())
			if err != nil {
				return err
			}
			if isTerminal(c.stdout) {
				return renderHistory(c.stdout, records)
			}
			return writeHistory(c.stdout, records)
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete the whole history")
	return cmd
}

// writeHistory prints one tab-separated line per record.
func writeHistory(w io.Writer, records []history.Record) error {
	for i, r := range records {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, r.Input, r.Expression, r.Outcome); err != nil {
			return err
		}
	}
	return nil
}

// historyMarkdown renders records as a markdown table.
func historyMarkdown(records []history.Record) string {
	if len(records) == 0 {
		return "_History is empty._\n"
	}
	var b strings.Builder
	b.WriteString("| # | Input | Expression | Outcome |\n|---|---|---|---|\n")
	for i, r := range records {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", i+1, cell(r.Input), cell(r.Expression), cell(r.Outcome))
	}
	return b.String()
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func renderHistory(w io.Writer, records []history.Record) error {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return writeHistory(w, records)
	}
	out, err := r.Render(historyMarkdown(records))
	if err != nil {
		return writeHistory(w, records)
	}
	_, err = io.WriteString(w, out)
	return err
}
