package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/swgoh-tools/holotable/internal/cache"
	"github.com/swgoh-tools/holotable/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the API response cache",
}

func init() {
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached API responses",
		RunE:  runCacheClear,
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the cache database path",
		RunE:  runCachePath,
	}

	cacheCmd.AddCommand(clearCmd)
	cacheCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	store, err := cache.Open(ctx, cfg.Cache.Path, time.Duration(cfg.Cache.TTLHours)*time.Hour)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	n, err := store.Len(ctx)
	if err != nil {
		return err
	}
	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "cleared %d cached responses\n", n)
	return nil
}

func runCachePath(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	fmt.Fprintln(cmd.OutOrStdout(), cfg.Cache.Path)
	return nil
}
