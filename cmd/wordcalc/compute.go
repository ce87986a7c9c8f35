package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hazyhaar/wordcalc/pkg/mcpquic"
	"github.com/hazyhaar/wordcalc/pkg/pipeline"
)

func (c *cli) computeCmd() *cobra.Command {
	var (
		remote   string
		asJSON   bool
		insecure bool
	)
	cmd := &cobra.Command{
		Use:   "compute <text...>",
		Short: "Evaluate one request and record it in the history",
		Example: `  wordcalc compute двадцать три умножить на два
  wordcalc --locale en compute "seven modulo two"
  wordcalc compute --remote localhost:8420 два плюс три`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if remote != "" {
				return c.computeRemote(cmd.Context(), remote, insecure, text, asJSON)
			}

			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.calc.Compute(cmd.Context(), text)
			if res != nil {
				if perr := printResult(c.stdout, res, asJSON); perr != nil {
					return perr
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&remote, "remote", "", "evaluate on a wordcalc server over MCP/QUIC (host:port)")
	cmd.Flags().BoolVar(&insecure, "insecure", true, "skip certificate verification for --remote")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}

func printResult(w io.Writer, res *pipeline.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc.Encode(res)
	}
	_, err := fmt.Fprintln(w, res.Outcome)
	return err
}

// remoteResult is the part of the compute tool's JSON reply the CLI prints.
type remoteResult struct {
	Expression string `json:"expression"`
	Outcome    string `json:"outcome"`
}

func (c *cli) computeRemote(ctx context.Context, addr string, insecure bool, text string, asJSON bool) error {
	client := mcpquic.NewClient(addr, mcpquic.ClientTLSConfig(insecure))
	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer client.Close()

	reply, err := client.CallToolText(ctx, "compute", map[string]any{"text": text})
	if err != nil {
		return err
	}
	if asJSON {
		_, err := fmt.Fprintln(c.stdout, reply)
		return err
	}
	var res remoteResult
	if err := json.Unmarshal([]byte(reply), &res); err != nil {
		return fmt.Errorf("decode compute reply: %w", err)
	}
	_, err = fmt.Fprintln(c.stdout, res.Outcome)
	return err
}

func (c *cli) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read requests line by line until EOF or \"exit\"",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			return repl(cmd.Context(), a.calc, c.stdin, c.stdout, isTerminal(c.stdin))
		},
	}
}

func repl(ctx context.Context, calc *pipeline.Calculator, in io.Reader, out io.Writer, prompt bool) error {
	sc := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(out, "> ")
		}
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "exit", "quit", "выход":
			return nil
		}
		res, err := calc.Compute(ctx, line)
		if err != nil {
			return err
		}
		if res.ErrorKind != "" {
			fmt.Fprintln(out, res.Outcome)
			continue
		}
		fmt.Fprintf(out, "%s = %s\n", res.Expression, res.Outcome)
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
