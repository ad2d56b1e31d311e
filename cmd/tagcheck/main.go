package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tagcheck/internal/version"
)

var interruptSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
}

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "tagcheck",
		Short:             "Check tag nesting in markup documents",
		Long:              `tagcheck reports mismatched, unclosed and stray closing tags in XML-like documents`,
		Version:           version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(cmd, args); err != nil {
				return err
			}
			return setupProfiling(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return stopProfiling()
		},
	}

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per document (0 = unlimited)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (trace|debug|info|warn|error|disabled)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console|json)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write runtime trace to file")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCacheCmd())
	return rootCmd
}

// main runs the root command under a context cancelled by SIGINT/SIGTERM.
// A returned error exits with status 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), interruptSignals...)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	// при ошибке PersistentPostRunE не вызывается
	if perr := stopProfiling(); perr != nil {
		fmt.Fprintln(os.Stderr, perr)
	}
	if err != nil {
		stop()
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
