// Package cmd implements the CLI commands for crawlpage using Cobra.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/crawlpage/config"
	"github.com/gaurav-prasanna/crawlpage/page"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "crawlpage",
	Short: "crawlpage — inspect, export, and render crawled web pages",
	Long: `crawlpage works on saved HTTP response bodies: it extracts the in-domain
links a crawler would follow next, exports the canonical serialized form,
and renders page reports.

Usage:
  crawlpage links <url> [htmlfile]
  crawlpage export <url> [htmlfile]
  crawlpage render <url> [htmlfile] --markdown`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to yaml config file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildLogger constructs the slog logger from configuration.
func buildLogger(cfg config.LoggingConfig) (*slog.Logger, error) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("unsupported log level %q", cfg.Level)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Structured {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler), nil
}

// loadPage builds a Page from a saved response body. The body comes from the
// named file, or stdin when no file argument is given. The page is marked as
// a successful HTML fetch; the commands exist to exercise the engine, not to
// replay full responses.
func loadPage(rawURL, file string, cfg config.Config, extraAliases []string) (*page.Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL)
	}

	var body []byte
	if file != "" {
		body, err = os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
	} else {
		body, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	}

	code := 200
	return page.New(u, page.Options{
		Code:          &code,
		Body:          body,
		Headers:       map[string][]string{"content-type": {"text/html"}},
		DomainAliases: append(append([]string{}, cfg.Page.DomainAliases...), extraAliases...),
		SuccessCodes:  cfg.Page.SuccessCodes,
	}), nil
}

// fileArg returns the optional second positional argument.
func fileArg(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}
