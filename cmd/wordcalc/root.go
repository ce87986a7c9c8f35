package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/hazyhaar/wordcalc/pkg/numwords"
)

// cli carries the streams and persistent flags shared by every command.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configFlag string
	localeFlag string
	logLevel   string
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "wordcalc",
		Short: "Evaluate arithmetic written in words",
		Long: `wordcalc turns spoken-style arithmetic ("двадцать три умножить на два",
"twenty-three times two") into a symbolic expression, evaluates it and keeps
a history of every attempt.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&c.configFlag, "config", "", "config file (default $"+configEnv+" or "+defaultConfigPath+")")
	root.PersistentFlags().StringVar(&c.localeFlag, "locale", "", "override the configured locale (ru, en)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(
		c.serveCmd(),
		c.computeCmd(),
		c.replCmd(),
		c.historyCmd(),
		c.operatorsCmd(),
		c.vocabCmd(),
		c.mcpCmd(),
	)
	return root
}

// config loads the configuration and applies flag overrides.
func (c *cli) config() (config, error) {
	cfg, err := loadConfig(configPath(c.configFlag))
	if err != nil {
		return cfg, err
	}
	if c.localeFlag != "" {
		loc, err := numwords.ParseLocale(c.localeFlag)
		if err != nil {
			return cfg, err
		}
		cfg.Locale = string(loc)
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	return cfg, cfg.validate()
}

// open loads the configuration and wires the application.
func (c *cli) open(cmd *cobra.Command) (*app, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	return openApp(cmd.Context(), cfg, c.stderr)
}
