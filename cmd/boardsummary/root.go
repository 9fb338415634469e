package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zatekoja/aiportfolioboard/internal/api/handlers"
	"github.com/zatekoja/aiportfolioboard/internal/bootstrap"
	"github.com/zatekoja/aiportfolioboard/pkg/config"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

type options struct {
	source string
	format string
	plain  bool
	width  int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "boardsummary",
		Short: "Print the AI portfolio board summary",
		Long: `Runs the portfolio pipeline once and prints KPIs, pipeline stages,
strategic highlights and recommendations.

The data source defaults to DATA_SOURCE; live mode reads the sheet named in
SHEET_CONFIG_PATH using SMARTSHEET_API_TOKEN from the environment or Vault.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.source, "source", "", "data source: local or live (default: DATA_SOURCE)")
	cmd.Flags().StringVar(&opts.format, "format", formatMarkdown, "output format: markdown or json")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print raw markdown without terminal styling")
	cmd.Flags().IntVar(&opts.width, "width", 100, "word wrap width for styled output")
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	// Logs go to stderr so stdout stays machine-readable
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	mode := cfg.App.DataSource
	if opts.source != "" {
		mode = config.DataSource(strings.ToLower(opts.source))
	}
	if mode != config.DataSourceLocal && mode != config.DataSourceLive {
		return fmt.Errorf("invalid --source %q (must be local or live)", opts.source)
	}
	if opts.format != formatMarkdown && opts.format != formatJSON {
		return fmt.Errorf("invalid --format %q (must be markdown or json)", opts.format)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var live *bootstrap.Live
	if mode == config.DataSourceLive {
		live, err = bootstrap.NewLive(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer live.Close()
	}

	svc, err := bootstrap.NewPortfolioService(cfg, mode, live)
	if err != nil {
		return err
	}
	portfolio, err := svc.Load(ctx)
	if err != nil {
		return err
	}

	if opts.format == formatJSON {
		out, err := json.MarshalIndent(handlers.NewPortfolioResponse(portfolio), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	md := RenderMarkdown(portfolio)
	if opts.plain {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}
	return printStyled(cmd, md, opts.width)
}

func printStyled(cmd *cobra.Command, md string, width int) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
