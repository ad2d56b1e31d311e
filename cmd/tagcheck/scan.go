package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tagcheck/internal/diagfmt"
	"tagcheck/internal/driver"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [flags] file",
		Short: "List the tags of a document",
		Long:  `Scan prints every tag the checker sees, line by line, marking the ones it ignores`,
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	result, err := driver.Scan(args[0])
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Lines)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Lines)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
