package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tagcheck/internal/prof"
)

// activeProfile is stopped by PersistentPostRunE, or by main when the command failed.
var activeProfile *prof.Session

func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var (
		opts prof.Options
		err  error
	)
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !opts.Enabled() {
		return nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return err
	}
	activeProfile = session
	zerolog.Ctx(cmd.Context()).Debug().
		Str("cpu", opts.CPU).Str("mem", opts.Mem).Str("trace", opts.Trace).
		Msg("profiling enabled")
	return nil
}

func stopProfiling() error {
	session := activeProfile
	activeProfile = nil
	return session.Stop()
}
