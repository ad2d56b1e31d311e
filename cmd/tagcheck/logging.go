package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// setupLogging configures the global logger from --log-level/--log-format and
// attaches it to the command context for zerolog.Ctx.
func setupLogging(cmd *cobra.Command, _ []string) error {
	levelFlag, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	formatFlag, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return fmt.Errorf("failed to get log-format flag: %w", err)
	}
	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	logger, err := newLogger(cmd.ErrOrStderr(), levelFlag, formatFlag, colorEnabled(colorFlag, os.Stderr))
	if err != nil {
		return err
	}
	log.Logger = logger
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

func newLogger(out io.Writer, level, format string, color bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid --log-level value %q: %w", level, err)
	}
	switch strings.ToLower(format) {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: out, NoColor: !color, TimeFormat: time.TimeOnly}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("invalid --log-format value %q (expected console|json)", format)
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
