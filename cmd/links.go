// Package cmd — links command.
// Prints the absolute, in-domain, followable links a crawler would discover
// on the given page body.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/crawlpage/config"
)

var flagDomainAliases []string

var linksCmd = &cobra.Command{
	Use:   "links <url> [htmlfile]",
	Short: "Extract the followable in-domain links from a page body",
	Long: `Links constructs a page from the given URL and a saved HTML body (file or
stdin) and prints every absolute in-domain link a crawler would follow,
one per line.

Examples:
  crawlpage links https://example.com/ page.html
  curl -s https://example.com/ | crawlpage links https://example.com/
  crawlpage links https://example.com/ page.html --domain-alias example.org`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLinks,
}

func init() {
	rootCmd.AddCommand(linksCmd)
	linksCmd.Flags().StringArrayVar(&flagDomainAliases, "domain-alias", nil,
		"Hostname treated as the same site (repeatable)")
}

func runLinks(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	p, err := loadPage(args[0], fileArg(args), cfg, flagDomainAliases)
	if err != nil {
		return err
	}

	for _, link := range p.Links() {
		fmt.Fprintln(os.Stdout, link.String())
	}
	return nil
}
