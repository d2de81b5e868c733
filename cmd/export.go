// Package cmd — export command.
// Serializes a page into its canonical JSON form, either to stdout or into
// the SQLite page store.
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/crawlpage/config"
	"github.com/gaurav-prasanna/crawlpage/store"
)

var (
	flagPretty bool
	flagToDB   bool
)

var exportCmd = &cobra.Command{
	Use:   "export <url> [htmlfile]",
	Short: "Serialize a page into its canonical JSON form",
	Long: `Export builds a page from the given URL and a saved HTML body and emits the
canonical JSON form. Empty fields are omitted; the transform is lossy by
design.

Examples:
  crawlpage export https://example.com/ page.html
  crawlpage export https://example.com/ page.html --pretty
  crawlpage export https://example.com/ page.html --db`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().BoolVar(&flagPretty, "pretty", false, "Indent the JSON output")
	exportCmd.Flags().BoolVar(&flagToDB, "db", false, "Save into the page store instead of printing")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	p, err := loadPage(args[0], fileArg(args), cfg, nil)
	if err != nil {
		return err
	}

	if flagToDB {
		logger, err := buildLogger(cfg.Logging)
		if err != nil {
			return err
		}
		db, err := store.Open(cfg.DB.Path, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Save(p); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "✓ Stored: %s\n", p.URL)
		return nil
	}

	data, err := p.ToJSON()
	if err != nil {
		return err
	}
	if flagPretty {
		var indented bytes.Buffer
		if err := json.Indent(&indented, data, "", "  "); err != nil {
			return fmt.Errorf("indenting JSON: %w", err)
		}
		data = indented.Bytes()
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
