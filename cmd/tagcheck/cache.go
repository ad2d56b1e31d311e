package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tagcheck/internal/driver"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the disk cache of check results",
	}
	cmd.PersistentFlags().String("config", "", "path to tagcheck.toml (default: nearest above the working directory)")

	clean := &cobra.Command{
		Use:   "clean",
		Short: "Drop every cached result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cache, err := openConfiguredCache(cmd)
			if err != nil {
				return err
			}
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clean cache %s: %w", cache.Dir(), err)
			}
			if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "cleaned %s\n", cache.Dir())
			}
			return nil
		},
	}

	dir := &cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := openConfiguredCache(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cache.Dir())
			return nil
		},
	}

	cmd.AddCommand(clean, dir)
	return cmd
}

func openConfiguredCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	project, err := loadProjectConfig(configPath, ".")
	if err != nil {
		return nil, err
	}
	if dir := project.cacheDir(); dir != "" {
		return driver.OpenDiskCacheAt(dir)
	}
	return driver.OpenDiskCache(cacheApp)
}
