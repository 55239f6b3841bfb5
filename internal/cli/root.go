package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tengjizhang/trs/internal/config"
)

// ExecuteContext loads the configuration and runs the root command with args.
// Cancelling ctx stops in-flight fetches and the reader session.
func ExecuteContext(ctx context.Context, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	root := NewRootCmd(cfg)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func NewRootCmd(cfg config.Config) *cobra.Command {
	var dbPath string
	var instance string
	var output string
	var outFmt OutputFormat
	var app *App

	dbPath = cfg.DBPath
	instance = cfg.Instance
	output = string(OutputTable)

	getApp := func() *App { return app }
	getOutput := func() OutputFormat { return outFmt }

	cmd := &cobra.Command{
		Use:           "trs",
		Short:         "Terminal RSS reader",
		Long:          "Subscribe to RSS feeds and read them from the terminal. Run without a subcommand to open the reader.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			parsedFmt, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			outFmt = parsedFmt
			if !requiresApp(cmd) {
				return nil
			}
			if app != nil {
				return nil
			}

			runCfg := cfg
			flags := cmd.Flags()
			if flags.Changed("instance") {
				runCfg.Instance = instance
				// an explicit instance beats a db_path from file or env
				runCfg.DBPath = ""
			}
			if flags.Changed("db") {
				runCfg.DBPath = dbPath
			}

			a, err := NewApp(runCfg, cmd.ErrOrStderr(), isInteractive(cmd))
			if err != nil {
				return err
			}
			app = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				_ = app.Close()
				app = nil
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := requireApp(getApp)
			if err != nil {
				return err
			}
			return runUI(cmd.Context(), a, false)
		},
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", dbPath, "SQLite database path (overrides --instance)")
	cmd.PersistentFlags().StringVar(&instance, "instance", instance, "Named database instance")
	cmd.PersistentFlags().StringVarP(&output, "output", "o", output, "Output format: table, json, wide, yaml")

	cmd.AddCommand(newAddCmd(getApp, getOutput))
	cmd.AddCommand(newListCmd(getApp, getOutput))
	cmd.AddCommand(newArticlesCmd(getApp, getOutput))
	cmd.AddCommand(newReadCmd(getApp, getOutput))
	cmd.AddCommand(newRemoveCmd(getApp, getOutput))
	cmd.AddCommand(newUICmd(getApp))

	return cmd
}

func parseOutputFormat(raw string) (OutputFormat, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch OutputFormat(s) {
	case OutputTable, OutputJSON, OutputWide, OutputYAML:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("invalid output format %q (expected table|json|wide|yaml)", raw)
	}
}

func requiresApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		name := c.Name()
		if name == "help" || name == "completion" {
			return false
		}
	}
	return true
}

// isInteractive reports whether cmd hands the terminal to the reader UI.
func isInteractive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "ui"
}
