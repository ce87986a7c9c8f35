package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/wordcalc/pkg/dict"
)

func (c *cli) operatorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operators",
		Short: "List the operator phrases of the active locale, longest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			for _, e := range a.calc.Operators() {
				if _, err := fmt.Fprintf(c.stdout, "%s\t%s\n", e.Symbol, e.Phrase); err != nil {
					return err
				}
			}
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <phrase> <symbol>",
		Short: "Add or change an operator phrase in the database",
		Long: `Stores the phrase for the active locale in the operators table. The change
takes effect the next time wordcalc starts; shipped vocabularies never
overwrite it.`,
		Example: `  wordcalc operators set "сложить с" +`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			phrase := a.vocab.NormalizeTerm(strings.Join(strings.Fields(args[0]), " "))
			symbol := strings.TrimSpace(args[1])
			if !dict.Symbols[symbol] {
				return fmt.Errorf("unknown symbol %q", symbol)
			}
			locale := string(a.calc.Locale())
			if err := a.db.SetOperator(cmd.Context(), locale, phrase, symbol); err != nil {
				return err
			}
			a.logger.Info("operator set", "locale", locale, "phrase", phrase, "symbol", symbol)
			_, err = fmt.Fprintf(c.stdout, "%s\t%s\n", symbol, phrase)
			return err
		},
	}
	cmd.AddCommand(set)
	return cmd
}

func (c *cli) vocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect and compile operator vocabularies",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the vocabularies found in vocab_dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			catalog, err := dict.NewCatalog(cfg.VocabDir)
			if err != nil {
				return err
			}
			for _, v := range catalog.List() {
				fmt.Fprintf(c.stdout, "%s\t%s\t%s\t%s\n", v.ID, v.Locale, v.Version, v.Dir)
			}
			return nil
		},
	}

	compile := &cobra.Command{
		Use:   "compile <dir>...",
		Short: "Validate a CSV vocabulary and write data.gob next to it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, dir := range args {
				n, err := dict.Compile(dir)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.stdout, "%s: %d entries compiled\n", dir, n)
			}
			return nil
		},
	}

	cmd.AddCommand(list, compile)
	return cmd
}
