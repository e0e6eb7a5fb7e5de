// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/leseb/openresponses-cli/pkg/attachment"
	_ "github.com/leseb/openresponses-cli/pkg/attachment/local"
	_ "github.com/leseb/openresponses-cli/pkg/attachment/s3"
	"github.com/leseb/openresponses-cli/pkg/cli"
	"github.com/leseb/openresponses-cli/pkg/core/api"
	"github.com/leseb/openresponses-cli/pkg/core/config"
	"github.com/leseb/openresponses-cli/pkg/observability/logging"
)

var (
	// Version is set via ldflags during build
	Version   = "dev"
	BuildTime = "unknown"
)

// Environment variables for S3 attachments.
const (
	envS3Region   = "AWS_REGION"
	envS3Endpoint = "OPENRESPONSES_S3_ENDPOINT"
)

const markdownWidth = 100

var (
	errorColor  = color.New(color.FgRed, color.Bold)
	statusColor = color.New(color.FgCyan)
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		errorColor.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Printf("openresponses\nVersion: %s\nBuild Time: %s\n", Version, BuildTime)
			return nil
		case "models":
			return runModels(ctx, args[1:])
		case "ask":
			args = args[1:]
		}
	}
	return runAsk(ctx, args)
}

func runAsk(ctx context.Context, args []string) error {
	var opts cli.Options
	fs := cli.NewFlagSet("openresponses", &opts)
	if err := cli.Parse(fs, &opts, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Resolve(opts.ConfigPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, opts.LogLevel)

	if err := opts.Validate(); err != nil {
		return err
	}

	prompt, err := opts.ReadPrompt(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	var input any = prompt
	if len(opts.Files) > 0 {
		atts, err := attachment.LoadAll(ctx, opts.Files, map[string]string{
			"region":   os.Getenv(envS3Region),
			"endpoint": os.Getenv(envS3Endpoint),
		})
		if err != nil {
			return err
		}
		logger.Debug("Loaded attachments", "count", len(atts))
		input = attachment.BuildInput(prompt, atts)
	}

	client := api.NewOpenAIResponsesClient(cfg.BaseURL, cfg.APIKey,
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		api.WithLogger(logger.Logger),
	)

	statusColor.Fprintln(os.Stderr, "🤖 Sending request to OpenAI...")
	return ask(ctx, client, &opts, cfg.DefaultModel, input, os.Stdout)
}

// ask sends one request and prints the reply in the selected display mode.
func ask(ctx context.Context, client api.ResponsesAPIClient, opts *cli.Options, defaultModel string, input any, w io.Writer) error {
	req := opts.ToBuilder(defaultModel, input).Build()
	resp, err := client.CreateResponse(ctx, &req)
	if err != nil {
		return err
	}

	switch opts.DisplayMode() {
	case cli.DisplayJSON:
		return cli.WriteJSON(w, resp)
	case cli.DisplayPlain:
		return cli.WritePlain(w, resp, opts.Verbose)
	default:
		renderer, err := cli.NewMarkdownRenderer(markdownStyle(), markdownWidth)
		if err != nil {
			return err
		}
		return renderer.Write(w, resp, opts.Verbose)
	}
}

func runModels(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("openresponses models", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, *logLevel)

	models, err := api.NewModelsClient(cfg.BaseURL, cfg.APIKey).ListModels(ctx)
	if err != nil {
		return err
	}
	logger.Debug("Listed models", "count", len(models))

	printModels(os.Stdout, models)
	return nil
}

func printModels(w io.Writer, models []api.ModelInfo) {
	for _, m := range models {
		if m.OwnedBy != "" {
			fmt.Fprintf(w, "%s\t(%s)\n", m.ID, m.OwnedBy)
		} else {
			fmt.Fprintln(w, m.ID)
		}
	}
}

func newLogger(cfg *config.Config, level string) *logging.Logger {
	if level == "" {
		level = cfg.Log.Level
	}
	return logging.New(logging.Config{
		Level:  level,
		Format: cfg.Log.Format,
	})
}

// markdownStyle picks a glamour style for the terminal stdout is attached to.
func markdownStyle() string {
	if color.NoColor {
		return "notty"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
