// Package cmd — render command.
// Renders a page to Markdown, a JSON report, or a PDF summary and writes the
// artifact under a URL-derived filename.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/crawlpage/config"
	"github.com/gaurav-prasanna/crawlpage/core"
	"github.com/gaurav-prasanna/crawlpage/output"
	"github.com/gaurav-prasanna/crawlpage/render"
)

var (
	flagMarkdown  bool
	flagJSON      bool
	flagPDF       bool
	flagOutputDir string
)

var renderCmd = &cobra.Command{
	Use:   "render <url> [htmlfile]",
	Short: "Render a page to the specified output format",
	Long: `Render builds a page from the given URL and a saved HTML body, renders it to
the chosen format, and writes the artifact to the output directory.

Examples:
  crawlpage render https://example.com/ page.html --markdown
  crawlpage render https://example.com/ page.html --json --output_dir ./out
  crawlpage render https://example.com/ page.html --pdf`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	// Output format flags (mutually exclusive).
	renderCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	renderCmd.Flags().BoolVar(&flagJSON, "json", false, "Output a structured JSON report")
	renderCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output a PDF summary")

	renderCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: config, then current directory)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	p, err := loadPage(args[0], fileArg(args), cfg, nil)
	if err != nil {
		return err
	}

	dir := flagOutputDir
	if dir == "" {
		dir = cfg.Output.Dir
	}
	writer, err := output.New(dir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	data, err := renderer.Render(p)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	path, err := writer.Write(p.URL, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// selectRenderer checks that exactly one output format is chosen and returns
// the matching renderer.
func selectRenderer() (core.Renderer, error) {
	formatCount := 0
	for _, set := range []bool{flagMarkdown, flagJSON, flagPDF} {
		if set {
			formatCount++
		}
	}
	if formatCount == 0 {
		return nil, fmt.Errorf("exactly one output format is required: --markdown, --json, or --pdf")
	}
	if formatCount > 1 {
		return nil, fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	switch {
	case flagMarkdown:
		return render.NewMarkdown(), nil
	case flagJSON:
		return render.NewJSON(), nil
	default:
		return render.NewPDF(), nil
	}
}
